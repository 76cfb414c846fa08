// Package sqlite provides the SQLite-backed implementation of the panel
// storage interfaces.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/constellation/internal/panel/storage/sqlite/migrations"
	"github.com/louisbranch/constellation/internal/platform/storage/sqlitemigrate"
)

// Store is a SQLite-backed store implementing storage.Store.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite panel store at the provided path and applies embedded
// migrations before the store is handed to higher layers.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.PanelFS, "panel"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
//
// Close is intentionally nil-safe so callers can defer it in all startup paths.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// toNullInt maps optional integer columns to sql.NullInt64.
func toNullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

// fromNullInt maps nullable integer columns back to optional values.
func fromNullInt(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

// toJSONColumn marshals a slice column, mapping nil to SQL NULL so absent
// collections stay distinguishable from empty ones.
func toJSONColumn(value any, isNil bool) (sql.NullString, error) {
	if isNil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal json column: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// fromJSONColumn unmarshals a nullable JSON column into out. NULL leaves out
// untouched.
func fromJSONColumn(raw sql.NullString, out any) error {
	if !raw.Valid {
		return nil
	}
	if err := json.Unmarshal([]byte(raw.String), out); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}
