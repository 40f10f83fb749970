package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/scoring"
	"github.com/leadforge/leadscout/internal/store"
)

var (
	scoreLeadID  string
	scoreAll     bool
	scoreWorkers int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute and persist lead quality scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scoreLeadID == "" && !scoreAll {
			return eris.New("either --id or --all is required")
		}

		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		if scoreLeadID != "" {
			lead, err := e.store.GetLead(ctx, scoreLeadID)
			if err != nil {
				return err
			}
			if lead == nil {
				return eris.Errorf("lead not found: %s", scoreLeadID)
			}

			result := e.calc.Score(*lead)
			// The computation stands even when the write-back fails.
			if err := scoring.NewPersister(e.store, e.bus).Save(ctx, result); err != nil {
				zap.L().Error("score computed but not persisted",
					zap.String("lead_id", result.LeadID),
					zap.Error(err))
			}
			printScore(*lead, result)
			return nil
		}

		workers := scoreWorkers
		if workers <= 0 {
			workers = cfg.Collect.Concurrency
		}

		scored, err := scoreAllUnscored(ctx, e, workers, cfg.Recommend.CandidateLimit)
		if err != nil {
			return err
		}
		if scored == 0 {
			fmt.Println("No unscored leads.")
			return nil
		}
		fmt.Printf("Scored %d leads.\n", scored)
		return nil
	},
}

// scoreAllUnscored scores every lead that has never been scored, one page
// at a time. Scored leads drop out of the unscored filter, so repeated
// first-page queries walk the whole backlog without offset bookkeeping.
func scoreAllUnscored(ctx context.Context, e *env, workers, pageSize int) (int, error) {
	persister := scoring.NewPersister(e.store, e.bus)

	var total int
	for {
		leads, err := e.store.ListLeads(ctx, store.LeadFilter{
			Unscored: true,
			Limit:    pageSize,
		})
		if err != nil {
			return total, err
		}
		if len(leads) == 0 {
			return total, nil
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, lead := range leads {
			g.Go(func() error {
				return persister.Save(gctx, e.calc.Score(lead))
			})
		}
		if err := g.Wait(); err != nil {
			return total, eris.Wrap(err, "score batch")
		}
		total += len(leads)

		if len(leads) < pageSize {
			return total, nil
		}
	}
}

func printScore(lead model.Lead, result model.ScoreResult) {
	fmt.Printf("Lead:    %s (%s)\n", lead.DisplayName(), lead.ID)
	fmt.Printf("Score:   %.2f (%s)\n", result.Score, scoring.Interpret(result.Score))
	for _, name := range scoring.FeatureNames {
		fmt.Printf("  %-22s %6.2f\n", name, result.Features[name])
	}
}

func init() {
	scoreCmd.Flags().StringVar(&scoreLeadID, "id", "", "score a single lead by id")
	scoreCmd.Flags().BoolVar(&scoreAll, "all", false, "score every unscored lead")
	scoreCmd.Flags().IntVar(&scoreWorkers, "workers", 0, "concurrent scoring workers (default from config)")
	rootCmd.AddCommand(scoreCmd)
}
