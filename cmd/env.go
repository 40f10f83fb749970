package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadforge/leadscout/internal/events"
	"github.com/leadforge/leadscout/internal/recommend"
	"github.com/leadforge/leadscout/internal/scoring"
	"github.com/leadforge/leadscout/internal/store"
)

// env bundles the long-lived collaborators a command needs.
type env struct {
	store  store.Store
	calc   *scoring.Calculator
	engine *recommend.Engine
	bus    events.Bus
}

// initEnv opens the configured store, runs migrations, and wires the
// scoring and recommendation services.
func initEnv(ctx context.Context) (*env, error) {
	if err := scoring.Validate(cfg.Scoring); err != nil {
		return nil, err
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	return &env{
		store:  st,
		calc:   scoring.NewCalculator(cfg.Scoring),
		engine: recommend.NewEngine(cfg.Recommend),
		bus:    newBus(),
	}, nil
}

// newBus creates the process bus with the logging subscriber attached,
// so every published score and recommendation lands on the log.
func newBus() events.Bus {
	bus := events.NewMemoryBus()
	logHandler := events.NewLoggingHandler(zap.L())
	bus.Subscribe(events.LeadScoredName, logHandler)
	bus.Subscribe(events.LeadRecommendedName, logHandler)
	return bus
}

func (e *env) Close() {
	_ = e.store.Close()
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
