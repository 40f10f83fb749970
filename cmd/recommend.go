package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadforge/leadscout/internal/events"
	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/recommend"
	"github.com/leadforge/leadscout/internal/scoring"
	"github.com/leadforge/leadscout/internal/store"
)

var (
	recommendDays  int
	recommendLimit int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend high-scoring leads in trending niches",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		since := time.Now().UTC().AddDate(0, 0, -recommendDays)
		recent, err := e.store.ListLeads(ctx, store.LeadFilter{
			Since: since,
			Limit: cfg.Recommend.CandidateLimit,
		})
		if err != nil {
			return err
		}
		trending := recommend.Trending(recent, recommendDays, cfg.Recommend.TopNiches)

		candidates, err := e.store.ListLeads(ctx, store.LeadFilter{
			OrderBy: store.OrderByScore,
			Limit:   cfg.Recommend.CandidateLimit,
		})
		if err != nil {
			return err
		}

		picked := e.engine.Recommend(candidates, trending, recommendLimit)
		if len(picked) == 0 {
			fmt.Println("No leads to recommend.")
			return nil
		}

		ids := make([]string, len(picked))
		for i, lead := range picked {
			ids[i] = lead.ID
		}
		e.bus.Publish(ctx, events.LeadRecommended{
			BaseEvent: events.NewBaseEvent(),
			LeadIDs:   ids,
		})

		printLeadTable(picked)
		return nil
	},
}

func printLeadTable(leads []model.Lead) {
	fmt.Printf("%-30s %-20s %7s  %s\n", "LEAD", "NICHE", "SCORE", "QUALITY")
	for _, lead := range leads {
		fmt.Printf("%-30s %-20s %7.2f  %s\n",
			lead.DisplayName(), lead.Niche, lead.Score, scoring.Interpret(lead.Score))
	}
}

func init() {
	recommendCmd.Flags().IntVar(&recommendDays, "days", 7, "trending window in days")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 10, "maximum leads to recommend")
	rootCmd.AddCommand(recommendCmd)
}
