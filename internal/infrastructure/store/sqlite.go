// Package store persists price history in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dealscout/backend/internal/domain"
)

// Two views over one database: observations is the raw append-style log,
// one row per product/source pair, feeding the MIN/AVG summary; best_prices
// holds the single best-known record per product name and is mutated only
// through the compare-and-update in RecordIfBetter.
const schema = `
CREATE TABLE IF NOT EXISTS observations (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	price REAL NOT NULL,
	source TEXT NOT NULL,
	url TEXT NOT NULL,
	observed_at TEXT NOT NULL,
	UNIQUE(name, source)
);
CREATE TABLE IF NOT EXISTS best_prices (
	name TEXT PRIMARY KEY,
	price REAL NOT NULL,
	source TEXT NOT NULL,
	url TEXT NOT NULL,
	observed_at TEXT NOT NULL
);`

// SQLiteLedger implements domain.Ledger on a local SQLite database.
type SQLiteLedger struct {
	db *sql.DB

	// Serializes the read-check-write in RecordIfBetter so concurrent
	// callers cannot interleave and let a worse price through.
	mu sync.Mutex
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", domain.ErrStoreUnavailable, err)
	}

	return &SQLiteLedger{db: db}, nil
}

// Close closes the underlying database.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// RecordObservation upserts one observed offer into the raw log, keeping the
// latest observation per product/source pair.
func (l *SQLiteLedger) RecordObservation(ctx context.Context, offer domain.Offer) error {
	if offer.ProductName == "" {
		return nil
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO observations (name, price, source, url, observed_at)
		VALUES (?, ?, ?, ?, ?)`,
		offer.ProductName, offer.Price, offer.Source, offer.URL, formatTime(offer.ObservedAt),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// RecordIfBetter replaces the best-price record for the offer's name only
// when no record exists or the stored price is strictly greater. The
// read-check-write is atomic with respect to other RecordIfBetter callers.
func (l *SQLiteLedger) RecordIfBetter(ctx context.Context, offer domain.Offer) (bool, error) {
	if offer.ProductName == "" {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var stored float64
	err := l.db.QueryRowContext(ctx,
		`SELECT price FROM best_prices WHERE name = ?`, offer.ProductName,
	).Scan(&stored)

	switch {
	case err == nil:
		if stored <= offer.Price {
			return false, nil
		}
	case errors.Is(err, sql.ErrNoRows):
		// first sighting, record it
	default:
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO best_prices (name, price, source, url, observed_at)
		VALUES (?, ?, ?, ?, ?)`,
		offer.ProductName, offer.Price, offer.Source, offer.URL, formatTime(offer.ObservedAt),
	)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return true, nil
}

// BestPrice returns the best-known record for a product name.
func (l *SQLiteLedger) BestPrice(ctx context.Context, name string) (*domain.BestPriceRecord, error) {
	var record domain.BestPriceRecord
	var observedAt string

	err := l.db.QueryRowContext(ctx, `
		SELECT name, price, source, url, observed_at
		FROM best_prices WHERE name = ?`, name,
	).Scan(&record.Name, &record.Price, &record.Source, &record.URL, &observedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoOffers
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	record.ObservedAt, _ = time.Parse(time.RFC3339, observedAt)
	return &record, nil
}

// Summary aggregates minimum and average price per product name over the
// full observation log, most recently first-seen products first.
func (l *SQLiteLedger) Summary(ctx context.Context) ([]domain.ProductSummary, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT name, MIN(price), AVG(price)
		FROM observations
		GROUP BY name
		ORDER BY MIN(observed_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var summaries []domain.ProductSummary
	for rows.Next() {
		var s domain.ProductSummary
		if err := rows.Scan(&s.Name, &s.MinPrice, &s.AvgPrice); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return summaries, nil
}

// Clear irreversibly deletes all persisted history, both views at once.
func (l *SQLiteLedger) Clear(ctx context.Context) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM observations`); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM best_prices`); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// formatTime stores timestamps as RFC3339 so lexicographic ordering in SQL
// matches chronological ordering.
func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
