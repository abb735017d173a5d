// Package notification delivers generated signals to external channels.
package notification

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smc-engine/models"
)

// Notifier is the interface for all notification backends.
type Notifier interface {
	// NotifySignal delivers one signal. Returns error if delivery fails.
	NotifySignal(ctx context.Context, sig models.Signal) error
}

// LogNotifier writes signals to the structured log (useful for development).
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) NotifySignal(_ context.Context, sig models.Signal) error {
	evt := n.logger.Info().
		Str("market", sig.Market).
		Str("timeframe", sig.Timeframe).
		Str("action", string(sig.Action)).
		Float64("confidence", sig.Confidence)
	if sig.Entry != nil {
		evt = evt.Float64("entry", *sig.Entry)
	}
	evt.Msg(sig.Reason)
	return nil
}
