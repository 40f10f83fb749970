package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadforge/leadscout/internal/recommend"
	"github.com/leadforge/leadscout/internal/store"
)

var (
	trendingDays  int
	trendingLimit int
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show niches with the most recent lead volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		since := time.Now().UTC().AddDate(0, 0, -trendingDays)
		leads, err := e.store.ListLeads(ctx, store.LeadFilter{
			Since: since,
			Limit: cfg.Recommend.CandidateLimit,
		})
		if err != nil {
			return err
		}

		entries := recommend.Trending(leads, trendingDays, trendingLimit)
		if len(entries) == 0 {
			fmt.Println("No trending niches in the window.")
			return nil
		}

		fmt.Printf("Trending niches (last %d days):\n", trendingDays)
		for i, entry := range entries {
			fmt.Printf("%2d. %-25s %4d leads  %s\n", i+1, entry.Niche, entry.Count, entry.Trend)
		}
		return nil
	},
}

func init() {
	trendingCmd.Flags().IntVar(&trendingDays, "days", 7, "window length in days")
	trendingCmd.Flags().IntVar(&trendingLimit, "limit", 10, "maximum niches to show")
	rootCmd.AddCommand(trendingCmd)
}
