package events

import (
	"context"

	"go.uber.org/zap"
)

// LoggingHandler records each domain event on the application log. It is
// the default subscriber, so score and recommendation emissions stay
// observable even when no other delivery is wired.
type LoggingHandler struct {
	log *zap.Logger
}

// NewLoggingHandler creates a LoggingHandler. A nil logger falls back to
// the global one.
func NewLoggingHandler(log *zap.Logger) LoggingHandler {
	if log == nil {
		log = zap.L()
	}
	return LoggingHandler{log: log}
}

// Handle logs the event.
func (h LoggingHandler) Handle(_ context.Context, event Event) error {
	switch e := event.(type) {
	case LeadScored:
		h.log.Info("lead scored",
			zap.String("lead_id", e.LeadID),
			zap.Float64("score", e.Score))
	case LeadRecommended:
		h.log.Info("leads recommended",
			zap.Int("count", len(e.LeadIDs)))
	default:
		h.log.Info("event published", zap.String("event", event.EventName()))
	}
	return nil
}
