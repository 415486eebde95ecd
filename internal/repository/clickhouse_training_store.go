package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"FinRisk/internal/domain/models"
	pkgch "FinRisk/pkg/clickhouse"
	applogger "FinRisk/pkg/logger"
)

// CHTrainingStore persists labeled training rows in ClickHouse so that
// past training runs can be inspected and replayed.
type CHTrainingStore struct {
	db *sql.DB
	ch *pkgch.Client
	l  *applogger.Logger
}

func NewCHTrainingStore(ch *pkgch.Client) *CHTrainingStore {
	return &CHTrainingStore{db: ch.DB(), ch: ch}
}

// SetLogger injects a structured logger.
func (s *CHTrainingStore) SetLogger(l *applogger.Logger) { s.l = l }

// Init ensures the database and training table exist (idempotent).
func (s *CHTrainingStore) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE DATABASE IF NOT EXISTS finrisk`,
		`CREATE TABLE IF NOT EXISTS finrisk.training_rows (
            run_ts       DateTime,
            symbol       String,
            window_days  Int32,
            volatility   Float64,
            max_drawdown Float64,
            mean_return  Float64,
            risk_level   String
        ) ENGINE = MergeTree()
        ORDER BY (run_ts, symbol)`,
	}
	return s.ch.InitSchema(ctx, stmts)
}

// InsertRows writes a batch of training rows inside a single transaction.
func (s *CHTrainingStore) InsertRows(ctx context.Context, rows []models.TrainingRow) error {
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()
	runTS := start.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO finrisk.training_rows
            (run_ts, symbol, window_days, volatility, max_drawdown, mean_return, risk_level)
         VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			runTS, r.Symbol, int32(r.WindowDays),
			r.Volatility, r.MaxDrawdown, r.MeanReturn,
			string(r.Label),
		); err != nil {
			_ = tx.Rollback()
			if s.l != nil {
				s.l.Error("clickhouse training insert error",
					applogger.String("symbol", r.Symbol),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert training row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse training rows stored",
			applogger.Int("rows", len(rows)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *CHTrainingStore) Close() error {
	return s.ch.Close()
}
