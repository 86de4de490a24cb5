package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vodintech/caragecarcare/internal/models"
)

// Record names, fixed by the store contract
const (
	RecordSelection = "vehicleSelection"
	RecordCart      = "cart"
)

// Store persists per-session records in sqlite. Records are JSON blobs keyed
// by (session_id, record name); a session maps to one browser tab.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and runs migrations.
// Use ":memory:" for tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing database handle without running migrations.
// Tests use this with sqlmock to exercise failure paths.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session_records (
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_records_updated ON session_records(updated_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// get reads the raw JSON value of one record
func (s *Store) get(ctx context.Context, sessionID, name string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_records WHERE session_id = ? AND name = ?`,
		sessionID, name).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// put upserts one record, refreshing its timestamp
func (s *Store) put(ctx context.Context, sessionID, name string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session_records (session_id, name, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id, name)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		sessionID, name, string(value))
	return err
}

// delete removes one record; deleting a missing record is not an error
func (s *Store) delete(ctx context.Context, sessionID, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_records WHERE session_id = ? AND name = ?`,
		sessionID, name)
	return err
}

// GetSelection reads the committed vehicle selection for a session
func (s *Store) GetSelection(ctx context.Context, sessionID string) (models.Selection, error) {
	raw, err := s.get(ctx, sessionID, RecordSelection)
	if err != nil {
		return models.Selection{}, err
	}
	var sel models.Selection
	if err := json.Unmarshal(raw, &sel); err != nil {
		return models.Selection{}, err
	}
	return sel, nil
}

// PutSelection writes the committed vehicle selection for a session
func (s *Store) PutSelection(ctx context.Context, sessionID string, sel models.Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return s.put(ctx, sessionID, RecordSelection, raw)
}

// GetCart reads the cart for a session, preserving item order
func (s *Store) GetCart(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	raw, err := s.get(ctx, sessionID, RecordCart)
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// PutCart writes the cart for a session
func (s *Store) PutCart(ctx context.Context, sessionID string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.put(ctx, sessionID, RecordCart, raw)
}

// DeleteCart removes the cart record after a successful order placement.
// The selection record stays so the vehicle can be reused.
func (s *Store) DeleteCart(ctx context.Context, sessionID string) error {
	return s.delete(ctx, sessionID, RecordCart)
}

// Clear drops every record held for a session
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_records WHERE session_id = ?`, sessionID)
	return err
}

// PurgeOlderThan removes records not touched within age and reports how many
// went away. Abandoned tabs never clean up after themselves, so the app runs
// this on a timer.
func (s *Store) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM session_records WHERE updated_at < ?`,
		cutoff.Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
