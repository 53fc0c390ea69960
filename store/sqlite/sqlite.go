/*
Package sqlite provides a SQLite-backed implementation of store.Store.

KEY TABLES:
  holidays:          Company-specific and global (company_id = '') holidays
  company_calendars: Weekend scheme per company

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer.

USAGE:
  st, err := sqlite.New("./data/labor.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - store/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/labor-engine/calendar"
	"github.com/warp/labor-engine/store"
)

const dateLayout = "2006-01-02"

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the connection; used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	schema := `
	-- Holidays (company-specific and global)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		recurring BOOLEAN DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_company_date
		ON holidays(company_id, date);

	-- Weekend scheme per company
	CREATE TABLE IF NOT EXISTS company_calendars (
		company_id TEXT PRIMARY KEY,
		scheme TEXT NOT NULL,
		days_json TEXT NOT NULL DEFAULT '[]',
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// SaveHoliday inserts a holiday, or updates it when the ID exists.
func (s *Store) SaveHoliday(ctx context.Context, h calendar.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, company_id, date, name, recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_id = excluded.company_id,
			date = excluded.date,
			name = excluded.name,
			recurring = excluded.recurring
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID,
		h.CompanyID,
		h.Date.Format(dateLayout),
		h.Name,
		h.Recurring,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save holiday %s: %w", h.ID, err)
	}
	return nil
}

// DeleteHoliday deletes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete holiday %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrHolidayNotFound
	}
	return nil
}

// ListHolidays returns company-specific and global holidays ordered by date.
func (s *Store) ListHolidays(ctx context.Context, companyID string) ([]calendar.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, company_id, date, name, recurring
		FROM holidays
		WHERE company_id = ? OR company_id = ''
		ORDER BY date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &h.CompanyID, &dateStr, &h.Name, &h.Recurring); err != nil {
			return nil, err
		}
		t, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("holiday %s: bad date %q: %w", h.ID, dateStr, err)
		}
		h.Date = t
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// =============================================================================
// COMPANY CALENDARS
// =============================================================================

func (s *Store) SaveCalendar(ctx context.Context, companyID string, cfg calendar.WeekendConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := make([]int, 0, len(cfg.Days))
	for _, d := range cfg.Days {
		days = append(days, int(d))
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO company_calendars (company_id, scheme, days_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(company_id) DO UPDATE SET
			scheme = excluded.scheme,
			days_json = excluded.days_json,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query, companyID, string(cfg.Scheme), string(daysJSON),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save calendar %q: %w", companyID, err)
	}
	return nil
}

func (s *Store) GetCalendar(ctx context.Context, companyID string) (calendar.WeekendConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var scheme, daysJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT scheme, days_json FROM company_calendars WHERE company_id = ?", companyID,
	).Scan(&scheme, &daysJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return calendar.WeekendConfig{}, store.ErrCalendarNotFound
	}
	if err != nil {
		return calendar.WeekendConfig{}, err
	}

	var days []int
	if err := json.Unmarshal([]byte(daysJSON), &days); err != nil {
		return calendar.WeekendConfig{}, fmt.Errorf("calendar %q: bad days: %w", companyID, err)
	}
	cfg := calendar.WeekendConfig{Scheme: calendar.WeekendScheme(scheme)}
	for _, d := range days {
		cfg.Days = append(cfg.Days, time.Weekday(d))
	}
	return cfg, nil
}
