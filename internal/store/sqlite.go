package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "userdir.sqlite"

// SQLite is the default KV backend: one small table in a per-profile SQLite file.
type SQLite struct {
	path string
	db   *sql.DB
}

func OpenSQLite(ctx context.Context, dir string) (*SQLite, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store: missing dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, sqliteFileName)
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read while a TUI session holds the file open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{path: path, db: db}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Path() string { return s.path }

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) Get(key string, v any) bool {
	raw, ok := s.GetRaw(key)
	if !ok {
		return false
	}
	return decode(raw, v)
}

func (s *SQLite) Set(key string, v any) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	raw, err := encode(v)
	if err != nil {
		return err
	}
	return s.SetRaw(k, raw)
}

// SetRaw stores text without encoding it.
func (s *SQLite) SetRaw(key, raw string) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(context.Background(),
		`INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		k, raw, time.Now().UTC().UnixMilli())
	return err
}

func (s *SQLite) GetRaw(key string) (string, bool) {
	k, err := normalizeKey(key)
	if err != nil {
		return "", false
	}
	var raw string
	err = s.db.QueryRowContext(context.Background(), `SELECT v FROM kv WHERE k = ?`, k).Scan(&raw)
	if err != nil {
		// sql.ErrNoRows and read failures both mean "absent" to callers.
		return "", false
	}
	return raw, true
}

func (s *SQLite) Keys() ([]string, error) {
	rows, err := s.db.QueryContext(context.Background(), `SELECT k FROM kv ORDER BY k`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}
