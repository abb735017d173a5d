package notification

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smc-engine/models"
)

// TelegramNotifier pushes signals to a Telegram chat via the Bot API.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a Telegram notifier from a @BotFather token and
// a target chat/group/channel ID.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram").Logger(),
	}, nil
}

// NotifySignal delivers actionable signals to the configured chat. WAITs are
// dropped silently; a chat full of hold-off messages trains people to mute it.
func (t *TelegramNotifier) NotifySignal(ctx context.Context, sig models.Signal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !sig.IsActionable() {
		t.logger.Debug().Str("market", sig.Market).Msg("wait signal, skipping delivery")
		return nil
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatSignal(sig))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	t.logger.Info().Str("market", sig.Market).Str("action", string(sig.Action)).Msg("signal delivered")
	return nil
}

// FormatSignal renders a signal as a plain-text Telegram message.
func FormatSignal(sig models.Signal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s (%s)\n", actionEmoji(sig.Action), sig.Action, sig.Market, sig.Timeframe)

	if sig.IsActionable() {
		fmt.Fprintf(&b, "Entry: %s\n", formatLevel(sig.Entry))
		fmt.Fprintf(&b, "Stop Loss: %s\n", formatLevel(sig.StopLoss))
		fmt.Fprintf(&b, "TP1: %s | TP2: %s\n", formatLevel(sig.TakeProfit1), formatLevel(sig.TakeProfit2))
		fmt.Fprintf(&b, "Risk/Reward: 1:%.0f\n", sig.RiskReward)
		fmt.Fprintf(&b, "Confidence: %.0f%%\n", sig.Confidence)
	}
	fmt.Fprintf(&b, "Reason: %s", sig.Reason)

	return b.String()
}

func actionEmoji(action models.SignalAction) string {
	switch action {
	case models.ActionBuy:
		return "🟢"
	case models.ActionSell:
		return "🔴"
	default:
		return "⏸"
	}
}

func formatLevel(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}
