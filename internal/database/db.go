// Package database persists generated signals to PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"smc-engine/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// New opens a PostgreSQL connection from a connection URL and makes sure the
// schema exists.
func New(connURL string) (*DB, error) {
	db, err := sql.Open("postgres", connURL)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS signals (
			id BIGSERIAL PRIMARY KEY,
			market TEXT NOT NULL,
			timeframe TEXT NOT NULL,
			action TEXT NOT NULL,
			entry DOUBLE PRECISION,
			stop_loss DOUBLE PRECISION,
			take_profit_1 DOUBLE PRECISION,
			take_profit_2 DOUBLE PRECISION,
			risk_reward DOUBLE PRECISION NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			reason TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS signals_market_created_idx
		ON signals (market, created_at DESC)
	`)
	return err
}

// SaveSignal stores one generated signal and returns its row id.
func (db *DB) SaveSignal(ctx context.Context, sig models.Signal) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO signals (
			market, timeframe, action, entry, stop_loss,
			take_profit_1, take_profit_2, risk_reward, confidence, reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		sig.Market, sig.Timeframe, sig.Action,
		nullable(sig.Entry), nullable(sig.StopLoss),
		nullable(sig.TakeProfit1), nullable(sig.TakeProfit2),
		sig.RiskReward, sig.Confidence, sig.Reason, sig.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("saving signal: %w", err)
	}
	return id, nil
}

// LatestSignal returns the most recent signal for a market/timeframe, or nil
// when none has been stored yet.
func (db *DB) LatestSignal(ctx context.Context, market, timeframe string) (*models.Signal, error) {
	var (
		sig                   models.Signal
		entry, stop, tp1, tp2 sql.NullFloat64
	)

	err := db.QueryRowContext(ctx, `
		SELECT market, timeframe, action, entry, stop_loss,
			take_profit_1, take_profit_2, risk_reward, confidence, reason, created_at
		FROM signals
		WHERE market = $1 AND timeframe = $2
		ORDER BY created_at DESC
		LIMIT 1
	`, market, timeframe).Scan(
		&sig.Market, &sig.Timeframe, &sig.Action, &entry, &stop,
		&tp1, &tp2, &sig.RiskReward, &sig.Confidence, &sig.Reason, &sig.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sig.Entry = fromNullable(entry)
	sig.StopLoss = fromNullable(stop)
	sig.TakeProfit1 = fromNullable(tp1)
	sig.TakeProfit2 = fromNullable(tp2)
	return &sig, nil
}

// ActionableSignals returns the last limit BUY/SELL signals for a market,
// newest first.
func (db *DB) ActionableSignals(ctx context.Context, market string, limit int) ([]models.Signal, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT market, timeframe, action, entry, stop_loss,
			take_profit_1, take_profit_2, risk_reward, confidence, reason, created_at
		FROM signals
		WHERE market = $1 AND action IN ('BUY', 'SELL')
		ORDER BY created_at DESC
		LIMIT $2
	`, market, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []models.Signal
	for rows.Next() {
		var (
			sig                   models.Signal
			entry, stop, tp1, tp2 sql.NullFloat64
		)
		if err := rows.Scan(
			&sig.Market, &sig.Timeframe, &sig.Action, &entry, &stop,
			&tp1, &tp2, &sig.RiskReward, &sig.Confidence, &sig.Reason, &sig.Timestamp,
		); err != nil {
			return nil, err
		}
		sig.Entry = fromNullable(entry)
		sig.StopLoss = fromNullable(stop)
		sig.TakeProfit1 = fromNullable(tp1)
		sig.TakeProfit2 = fromNullable(tp2)
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
