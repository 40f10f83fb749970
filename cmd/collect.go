package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/leadforge/leadscout/internal/collect"
	"github.com/leadforge/leadscout/internal/model"
)

var (
	collectNiche   string
	collectSamples int
	collectSeed    int64
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect sample leads and run them through the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		profile := collect.DefaultProfile()
		if cfg.Collect.ProfilePath != "" {
			profile, err = collect.LoadProfile(cfg.Collect.ProfilePath)
			if err != nil {
				return err
			}
		}

		seed := collectSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rate := cfg.Collect.RatePerSec

		collectors := []collect.Collector{
			collect.NewRealEstateCollector(profile, seed, rate),
			collect.NewServiceProviderCollector(profile, seed+1, rate),
			collect.NewTutorCollector(profile, seed+2, rate),
		}
		if collectNiche != "" {
			collectors = filterCollectors(collectors, collectNiche)
			if len(collectors) == 0 {
				return eris.Errorf("unknown niche %q", collectNiche)
			}
		}

		var mu sync.Mutex
		var collected []model.Lead

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Collect.Concurrency)
		for _, c := range collectors {
			g.Go(func() error {
				leads, err := c.Collect(gctx, collectSamples)
				if err != nil {
					return eris.Wrapf(err, "collect %s", c.Niche())
				}
				mu.Lock()
				collected = append(collected, leads...)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		cleaned := collect.Clean(collected)
		zap.L().Info("cleaned collected leads",
			zap.Int("collected", len(collected)),
			zap.Int("kept", len(cleaned)))

		pipeline := collect.NewPipeline(e.store, e.calc, e.bus)
		stats, err := pipeline.SaveAll(ctx, cleaned)
		if err != nil {
			return err
		}

		fmt.Printf("Saved %d leads (%d duplicates, %d blacklisted, %d failed).\n",
			stats.Saved, stats.Duplicates, stats.Blacklisted, stats.Failed)
		return nil
	},
}

func filterCollectors(collectors []collect.Collector, niche string) []collect.Collector {
	var out []collect.Collector
	for _, c := range collectors {
		if c.Niche() == niche {
			out = append(out, c)
		}
	}
	return out
}

func init() {
	collectCmd.Flags().StringVar(&collectNiche, "niche", "", "collect only this niche")
	collectCmd.Flags().IntVar(&collectSamples, "samples", 50, "samples per collector")
	collectCmd.Flags().Int64Var(&collectSeed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.AddCommand(collectCmd)
}
