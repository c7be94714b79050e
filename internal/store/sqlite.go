package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	"MarketAnalyzer/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists cached series to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so range queries can proceed while a refresh commits.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prices (
			symbol   TEXT NOT NULL,
			date     TEXT NOT NULL,
			interval TEXT NOT NULL DEFAULT '1d',
			close    REAL NOT NULL,
			PRIMARY KEY (symbol, date, interval)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_symbol_date ON prices(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS dividend_yields (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			value  REAL NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_divy_symbol_date ON dividend_yields(symbol, date)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) LatestPriceDates(ctx context.Context, symbols []string, interval string) (map[string]string, error) {
	latest := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		var maxDate sql.NullString
		err := s.db.QueryRowContext(ctx,
			`SELECT MAX(date) FROM prices WHERE symbol = ? AND interval = ?`,
			sym, interval,
		).Scan(&maxDate)
		if err != nil {
			return nil, fmt.Errorf("latest price date for %s: %w", sym, err)
		}
		if maxDate.Valid {
			latest[sym] = maxDate.String
		}
	}
	return latest, nil
}

func (s *SQLiteStore) LatestYieldDate(ctx context.Context, symbol string) (string, error) {
	var maxDate sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(date) FROM dividend_yields WHERE symbol = ?`,
		symbol,
	).Scan(&maxDate)
	if err != nil {
		return "", fmt.Errorf("latest yield date for %s: %w", symbol, err)
	}
	if !maxDate.Valid {
		return "", nil
	}
	return maxDate.String, nil
}

func (s *SQLiteStore) UpsertPrices(ctx context.Context, payload *model.PricePayload, interval string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert prices: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO prices (symbol, date, interval, close)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol, date, interval) DO UPDATE SET close = excluded.close`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert prices: %w", err)
	}
	defer stmt.Close()

	for _, sym := range payload.Symbols {
		rows := payload.Series[sym]
		if len(rows) == 0 {
			continue
		}
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, sym, r.Date, interval, r.Value); err != nil {
				tx.Rollback()
				return fmt.Errorf("upsert price %s %s: %w", sym, r.Date, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert prices: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpsertYields(ctx context.Context, payload *model.YieldPayload) error {
	if len(payload.Series) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert yields: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO dividend_yields (symbol, date, value)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET value = excluded.value`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert yields: %w", err)
	}
	defer stmt.Close()

	for _, r := range payload.Series {
		if _, err := stmt.ExecContext(ctx, payload.Symbol, r.Date, r.Value); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert yield %s %s: %w", payload.Symbol, r.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert yields: %w", err)
	}
	return nil
}

func (s *SQLiteStore) QueryPricesRange(ctx context.Context, symbols []string, start, end, interval string) (*model.PricePayload, error) {
	result := &model.PricePayload{
		Symbols: symbols,
		Series:  make(map[string][]model.SeriesPoint, len(symbols)),
	}
	// Requested symbols always appear in the result, even when empty.
	for _, sym := range symbols {
		result.Series[sym] = []model.SeriesPoint{}
	}
	if len(symbols) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(symbols))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(symbols)+3)
	for _, sym := range symbols {
		args = append(args, sym)
	}
	args = append(args, interval, start, end)

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT symbol, date, close
		FROM prices
		WHERE symbol IN (%s) AND interval = ? AND date >= ? AND date <= ?
		ORDER BY symbol, date`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("query prices range: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sym string
		var p model.SeriesPoint
		if err := rows.Scan(&sym, &p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		result.Series[sym] = append(result.Series[sym], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price rows: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) QueryYieldRange(ctx context.Context, symbol, start, end string) (*model.YieldPayload, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, value
		FROM dividend_yields
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date`, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("query yield range: %w", err)
	}
	defer rows.Close()

	result := &model.YieldPayload{Symbol: symbol, Series: []model.SeriesPoint{}}
	for rows.Next() {
		var p model.SeriesPoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, fmt.Errorf("scan yield row: %w", err)
		}
		result.Series = append(result.Series, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate yield rows: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
