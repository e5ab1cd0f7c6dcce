package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"SignalDeck/internal/domain/models"
)

// ClickHouseArchive records live signal fetches into a history table for
// offline backtesting. Writes are best effort; the refresh cycle drops
// archive errors after logging them.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseArchive creates the archive repository.
func NewClickHouseArchive(db *sql.DB, table string) *ClickHouseArchive {
	return &ClickHouseArchive{db: db, table: table}
}

// Schema returns the idempotent DDL for the history table.
func Schema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			symbol String,
			signal_type String,
			confidence Float64,
			price Float64,
			ts DateTime,
			reasons Array(String),
			rsi Float64,
			volume_ratio Float64,
			price_change_5d Float64,
			macd Float64,
			sma_20 Float64,
			signal_score Float64
		) ENGINE=MergeTree ORDER BY (symbol, ts)`, table),
	}
}

// ArchiveBatch inserts the signals in one statement.
func (a *ClickHouseArchive) ArchiveBatch(ctx context.Context, signals []models.Signal) error {
	if len(signals) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(signals))
	args := make([]interface{}, 0, len(signals)*12)
	for _, s := range signals {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			s.Symbol,
			s.SignalType,
			s.Confidence,
			s.Price,
			s.Timestamp,
			s.Reasons,
			s.Technical.At(models.IndRSI),
			s.Technical.At(models.IndVolumeRatio),
			s.Technical.At(models.IndPriceChange5d),
			s.Technical.At(models.IndMACD),
			s.Technical.At(models.IndSMA20),
			s.Technical.At(models.IndSignalScore),
		)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (symbol, signal_type, confidence, price, ts, reasons, rsi, volume_ratio, price_change_5d, macd, sma_20, signal_score) VALUES %s",
		a.table, strings.Join(placeholders, ", "),
	)
	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("archive insert: %w", err)
	}
	return nil
}

// Close is a no-op; the pooled client owns the connection.
func (a *ClickHouseArchive) Close() error { return nil }
