package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadforge/leadscout/internal/report"
	"github.com/leadforge/leadscout/internal/store"
)

var (
	exportOut      string
	exportMinScore float64
	exportLimit    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export leads to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		leads, err := e.store.ListLeads(ctx, store.LeadFilter{
			MinScore: exportMinScore,
			OrderBy:  store.OrderByScore,
			Limit:    exportLimit,
		})
		if err != nil {
			return err
		}

		if err := report.WriteLeadsXLSX(exportOut, leads); err != nil {
			return err
		}
		fmt.Printf("Exported %d leads to %s.\n", len(leads), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "leads.xlsx", "output file path")
	exportCmd.Flags().Float64Var(&exportMinScore, "min-score", 0, "only export leads scoring at least this")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 1000, "maximum leads to export")
	rootCmd.AddCommand(exportCmd)
}
