package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// opened_at хранится как текст RFC3339Nano в UTC.
const schema = `
CREATE TABLE IF NOT EXISTS gifts (
	gift_number  INTEGER PRIMARY KEY CHECK (gift_number > 0),
	storage_path TEXT NOT NULL,
	media_type   TEXT NOT NULL CHECK (media_type IN ('image', 'video')),
	caption      TEXT,
	opened_at    TEXT
);
`

type Storage struct {
	db *sql.DB
}

// New opens a SQLite database and configures pragmas.
// The dsn may carry a "sqlite://" or "file:" prefix.
func New(dsn string) (*Storage, error) {
	const op = "storage.sqlite.New"

	path := strings.TrimPrefix(dsn, "sqlite://")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Одно соединение: in-memory база живёт внутри соединения,
	// а прагмы ниже действуют только на то соединение, где выполнены.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: setting pragma %q: %w", op, p, err)
		}
	}

	return &Storage{db: db}, nil
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.sqlite.EnsureSchema"

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}
