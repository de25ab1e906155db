package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// schema создаёт таблицу подарков. Строки заполняются отдельно.
const schema = `
CREATE TABLE IF NOT EXISTS gifts (
	gift_number  INT PRIMARY KEY CHECK (gift_number > 0),
	storage_path TEXT NOT NULL,
	media_type   TEXT NOT NULL CHECK (media_type IN ('image', 'video')),
	caption      TEXT,
	opened_at    TIMESTAMPTZ
);
`

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, storagePath string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		db: db,
	}, nil
}

// Pool returns the underlying connection pool.
func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.postgresql.EnsureSchema"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}
