package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leadforge/leadscout/internal/events"
)

func TestBusLogsPublishedEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	bus := newBus()
	bus.Publish(context.Background(), events.LeadScored{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    "lead-1",
		Score:     72.5,
	})
	bus.Publish(context.Background(), events.LeadRecommended{
		BaseEvent: events.NewBaseEvent(),
		LeadIDs:   []string{"lead-1"},
	})

	require.Len(t, logs.All(), 2)
}
