package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadforge/leadscout/internal/collect"
	"github.com/leadforge/leadscout/internal/report"
	"github.com/leadforge/leadscout/internal/store"
)

var (
	leadsNiche string
	leadsLimit int
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect and import stored leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		leads, err := e.store.ListLeads(ctx, store.LeadFilter{
			Niche:   leadsNiche,
			OrderBy: store.OrderByScore,
			Limit:   leadsLimit,
		})
		if err != nil {
			return err
		}
		if len(leads) == 0 {
			fmt.Println("No leads stored.")
			return nil
		}

		printLeadTable(leads)
		return nil
	},
}

var leadsImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import leads from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		leads, err := report.ReadLeadsCSV(args[0])
		if err != nil {
			return err
		}

		cleaned := collect.Clean(leads)
		pipeline := collect.NewPipeline(e.store, e.calc, e.bus)
		stats, err := pipeline.SaveAll(ctx, cleaned)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d of %d leads (%d duplicates, %d blacklisted, %d failed).\n",
			stats.Saved, len(leads), stats.Duplicates, stats.Blacklisted, stats.Failed)
		return nil
	},
}

func init() {
	leadsListCmd.Flags().StringVar(&leadsNiche, "niche", "", "filter by niche")
	leadsListCmd.Flags().IntVar(&leadsLimit, "limit", 50, "maximum leads to list")
	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsImportCmd)
	rootCmd.AddCommand(leadsCmd)
}
