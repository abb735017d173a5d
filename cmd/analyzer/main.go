package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"smc-engine/internal/cache"
	"smc-engine/internal/config"
	"smc-engine/internal/database"
	"smc-engine/internal/engine"
	"smc-engine/internal/feed"
	"smc-engine/internal/notification"
	"smc-engine/internal/risk"
	"smc-engine/internal/sentiment"
	"smc-engine/models"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting market structure analyzer")

	// 3. Print configuration
	printConfig(cfg)

	// 4. Setup collaborators
	feedClient := feed.NewClient(cfg.BinanceBaseURL, cfg.RequestTimeout)

	var provider models.InsightProvider
	if cfg.KolAPIURL != "" {
		provider = sentiment.NewClient(cfg.KolAPIURL, cfg.KolAPIKey)
	}

	eng := engine.New(cfg.Engine(), provider)

	// 5. Run one analysis pass
	result, err := runAnalysis(ctx, feedClient, eng, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	printResult(result)

	// 6. Size the position for actionable signals
	if result.Signal.IsActionable() {
		printPositionSize(cfg, result.Signal)
	}

	// 7. Persist and notify, best effort
	persistResult(ctx, cfg, result)
	notify(ctx, cfg, result.Signal)
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
		os.Exit(0)
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	// Set log level from config
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	log.Info().
		Str("Symbol", cfg.Symbol).
		Str("Timeframe", cfg.Timeframe).
		Int("CandleCount", cfg.CandleCount).
		Int("SwingLookback", cfg.SwingLookback).
		Bool("BodyCloseOnly", cfg.BodyCloseOnly).
		Bool("UseZigZag", cfg.UseZigZag).
		Float64("ZigZagDeviationPercent", cfg.ZigZagDeviationPercent).
		Bool("AIEnabled", cfg.AIEnabled).
		Msg("Configuration loaded")
}

// runAnalysis fetches candles and walks them through the pipeline
func runAnalysis(ctx context.Context, client *feed.Client, eng *engine.Engine, cfg *config.Config) (*engine.Result, error) {
	log.Info().Msg("Fetching latest market data...")
	candles, err := client.GetCandles(ctx, cfg.Symbol, cfg.Timeframe, cfg.CandleCount)
	if err != nil {
		return nil, fmt.Errorf("fetching candles: %w", err)
	}

	return eng.Analyze(ctx, candles)
}

// printResult outputs the analysis summary
func printResult(res *engine.Result) {
	fmt.Println("\n===== MARKET STRUCTURE =====")
	fmt.Printf("Symbol: %s | Timeframe: %s\n", res.Symbol, res.Timeframe)
	fmt.Printf("Trend: %s (Strength: %.0f) | EMA9: %.5f, EMA21: %.5f\n",
		res.Trend.Direction, res.Trend.Strength, res.Trend.EMA9, res.Trend.EMA21)

	fmt.Printf("\nSwing Points: %d\n", len(res.Swings))
	for _, s := range res.Swings {
		if s.Type != "" {
			fmt.Printf("- %s %s at %.5f\n", s.Type, s.Kind, s.Price)
		}
	}

	if len(res.Breaks) > 0 {
		fmt.Printf("\nStructure Breaks:\n")
		for _, b := range res.Breaks {
			fmt.Printf("- %s %s at %.5f (broken swing %.5f)\n",
				b.Kind, b.Direction, b.Price, b.BrokenSwing.Price)
		}
	}

	if len(res.Zones) > 0 {
		fmt.Printf("\nActive Zones:\n")
		for _, z := range res.Zones {
			fmt.Printf("- %s [%.5f - %.5f] %s, %s, touches: %d\n",
				z.Kind, z.Bottom, z.Top, z.Strength, z.Status, z.TouchCount)
		}
	}

	fmt.Println("\n===== SIGNAL =====")
	fmt.Println(notification.FormatSignal(res.Signal))
	fmt.Println()
}

// printPositionSize runs the risk calculation for the generated signal
func printPositionSize(cfg *config.Config, sig models.Signal) {
	manager := risk.NewManager(cfg.AccountBalance, 100, "standard")
	ps := manager.CalculatePositionSize(sig.Market, *sig.Entry, *sig.StopLoss, *sig.TakeProfit1, cfg.RiskPercent)

	fmt.Println("===== POSITION SIZING =====")
	fmt.Printf("Lot Size: %.4f (%d units) | Risk: $%.2f (%.1f%%)\n",
		ps.LotSize, ps.Units, ps.RiskAmount, ps.RiskPercent)
	fmt.Printf("SL Distance: %.1f pips | Margin Required: $%.2f\n",
		ps.StopLossPips, ps.MarginRequired)
	if !ps.IsValid {
		fmt.Printf("WARNING: %s\n", ps.Warning)
	}
	fmt.Println()
}

// persistResult writes the outcome to Postgres and Redis when configured.
// Failures are logged, not fatal: the analysis already happened.
func persistResult(ctx context.Context, cfg *config.Config, res *engine.Result) {
	if cfg.DatabaseURL != "" {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			log.Error().Err(err).Msg("Database connection failed")
		} else {
			defer db.Close()
			if id, err := db.SaveSignal(ctx, res.Signal); err != nil {
				log.Error().Err(err).Msg("Saving signal failed")
			} else {
				log.Info().Int64("id", id).Msg("Signal stored")
			}
		}
	}

	if cfg.RedisAddr != "" {
		store, err := cache.New(cache.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			log.Error().Err(err).Msg("Redis connection failed")
			return
		}
		defer store.Close()
		if err := store.SaveSnapshot(ctx, res.Symbol, res.Timeframe, res); err != nil {
			log.Error().Err(err).Msg("Caching snapshot failed")
		}
	}
}

// notify pushes actionable signals to Telegram when configured; WAITs and
// unconfigured runs go to the log.
func notify(ctx context.Context, cfg *config.Config, sig models.Signal) {
	var notifier notification.Notifier
	if sig.IsActionable() && cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notification.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Error().Err(err).Msg("Telegram init failed, falling back to log")
			notifier = notification.NewLogNotifier()
		} else {
			notifier = tg
		}
	} else {
		notifier = notification.NewLogNotifier()
	}

	if err := notifier.NotifySignal(ctx, sig); err != nil {
		log.Error().Err(err).Msg("Notification failed")
	}
}
