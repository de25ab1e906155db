package repository

import (
	"context"
	"fmt"
	"strings"

	"giftbox/internal/storage/postgresql"
	"giftbox/internal/storage/sqlite"
)

type Repository struct {
	Gifts GiftRepository

	ping func(ctx context.Context) error
	stop func()
}

// NewRepository picks the backend from the DSN: postgres:// and
// postgresql:// go to PostgreSQL, everything else is a SQLite path.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	const op = "repository.NewRepository"

	if isPostgres(dsn) {
		pg, err := postgresql.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Stop()
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return &Repository{
			Gifts: NewGiftRepository(pg.Pool()),
			ping:  pg.Ping,
			stop:  pg.Stop,
		}, nil
	}

	lite, err := sqlite.New(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}
	if err := lite.EnsureSchema(ctx); err != nil {
		lite.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Repository{
		Gifts: NewSQLiteGiftRepository(lite.DB()),
		ping:  lite.Ping,
		stop:  lite.Stop,
	}, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.ping(ctx)
}

func (r *Repository) Close() {
	r.stop()
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
