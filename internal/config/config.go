package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"smc-engine/models"
)

// Config holds all application configuration
type Config struct {
	// Analysis
	Symbol                 string
	Timeframe              string
	CandleCount            int
	SwingLookback          int
	BodyCloseOnly          bool
	ZigZagDeviationPercent float64
	UseZigZag              bool
	AIEnabled              bool

	// Market data feed
	BinanceBaseURL string
	RequestTimeout int // seconds

	// Enrichment collaborator
	KolAPIURL string
	KolAPIKey string

	// Risk
	AccountBalance float64
	RiskPercent    float64

	// Storage
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Notifications
	TelegramToken  string
	TelegramChatID int64

	LogLevel string
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		Symbol:                 getEnvWithDefault("SYMBOL", "BTCUSDT"),
		Timeframe:              getEnvWithDefault("TIMEFRAME", "1h"),
		CandleCount:            getEnvIntWithDefault("CANDLE_COUNT", 250),
		SwingLookback:          getEnvIntWithDefault("SWING_LOOKBACK", 5),
		BodyCloseOnly:          getEnvBoolWithDefault("BODY_CLOSE_ONLY", true),
		ZigZagDeviationPercent: getEnvFloatWithDefault("ZIGZAG_DEVIATION_PERCENT", 0.5),
		UseZigZag:              getEnvBoolWithDefault("USE_ZIGZAG", false),
		AIEnabled:              getEnvBoolWithDefault("AI_ENABLED", true),

		BinanceBaseURL: getEnvWithDefault("BINANCE_BASE_URL", "https://api.binance.com"),
		RequestTimeout: getEnvIntWithDefault("REQUEST_TIMEOUT", 30),

		KolAPIURL: os.Getenv("KOL_API_URL"),
		KolAPIKey: os.Getenv("KOL_API_KEY"),

		AccountBalance: getEnvFloatWithDefault("ACCOUNT_BALANCE", 10000),
		RiskPercent:    getEnvFloatWithDefault("RISK_PERCENT", 1.0),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntWithDefault("REDIS_DB", 0),

		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// Engine maps the application config onto the per-run analysis options.
func (c *Config) Engine() models.EngineConfig {
	return models.EngineConfig{
		Symbol:                 c.Symbol,
		Timeframe:              c.Timeframe,
		SwingLookback:          c.SwingLookback,
		BodyCloseOnly:          c.BodyCloseOnly,
		ZigZagDeviationPercent: c.ZigZagDeviationPercent,
		UseZigZag:              c.UseZigZag,
		AIEnabled:              c.AIEnabled,
	}
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
