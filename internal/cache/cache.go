// Package cache keeps the latest analysis snapshot per symbol/timeframe in
// Redis so dashboards can read it without re-running the pipeline.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultSnapshotTTL = 30 * time.Minute

// Config configures the Redis connection.
type Config struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
}

// Store writes and reads analysis snapshots.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a Store and pings the server.
func New(cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger := log.With().Str("component", "cache").Logger()
	logger.Info().Str("addr", cfg.Addr).Msg("connected to redis")

	return &Store{client: client, ttl: defaultSnapshotTTL, logger: logger}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.client.Close() }

func snapshotKey(symbol, timeframe string) string {
	return fmt.Sprintf("analysis:latest:%s:%s", symbol, timeframe)
}

// SaveSnapshot stores the JSON-encoded analysis result under the
// symbol/timeframe key with a TTL.
func (s *Store) SaveSnapshot(ctx context.Context, symbol, timeframe string, result any) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	key := snapshotKey(symbol, timeframe)
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", key, err)
	}
	s.logger.Debug().Str("key", key).Int("bytes", len(payload)).Msg("snapshot saved")
	return nil
}

// LoadSnapshot reads the latest snapshot into out. Returns false when no
// snapshot exists or it has expired.
func (s *Store) LoadSnapshot(ctx context.Context, symbol, timeframe string, out any) (bool, error) {
	payload, err := s.client.Get(ctx, snapshotKey(symbol, timeframe)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("decoding snapshot: %w", err)
	}
	return true, nil
}
