package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/store"
)

var similarLimit int

var similarCmd = &cobra.Command{
	Use:   "similar <lead-id>",
	Short: "Find leads similar to a target lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		// The pool is the most recent candidates; the target is fetched
		// separately in case it fell outside the recency window.
		pool, err := e.store.ListLeads(ctx, store.LeadFilter{
			OrderBy: store.OrderByCreated,
			Limit:   cfg.Recommend.CandidateLimit,
		})
		if err != nil {
			return err
		}

		targetID := args[0]
		if !containsLead(pool, targetID) {
			target, err := e.store.GetLead(ctx, targetID)
			if err != nil {
				return err
			}
			if target != nil {
				pool = append(pool, *target)
			}
		}

		result := e.engine.Similar(targetID, pool, similarLimit)
		if len(result.Matches) == 0 {
			fmt.Println("No similar leads found.")
			return nil
		}

		for i, m := range result.Matches {
			fmt.Printf("%2d. %-30s %-20s %.3f\n",
				i+1, m.Lead.DisplayName(), m.Lead.Niche, m.Similarity)
		}
		return nil
	},
}

func containsLead(leads []model.Lead, id string) bool {
	for _, l := range leads {
		if l.ID == id {
			return true
		}
	}
	return false
}

func init() {
	similarCmd.Flags().IntVar(&similarLimit, "limit", 5, "maximum matches to return")
	rootCmd.AddCommand(similarCmd)
}
