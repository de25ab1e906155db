package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"giftbox/internal/domain/models"
	"giftbox/internal/storage"

	sq "github.com/Masterminds/squirrel"
)

// SQLiteGiftRepo is the SQLite implementation of GiftRepository.
// opened_at is stored as RFC3339Nano text in UTC.
type SQLiteGiftRepo struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewSQLiteGiftRepository(db *sql.DB) *SQLiteGiftRepo {
	return &SQLiteGiftRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
}

func (r *SQLiteGiftRepo) ListGifts(ctx context.Context) ([]models.Gift, error) {
	const op = "repository.gift_sqlite_repository.ListGifts"

	query, args, err := r.sb.Select(giftColumns...).
		From(giftsTable).
		OrderBy("gift_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	gifts := make([]models.Gift, 0)
	for rows.Next() {
		g, err := scanSQLiteGift(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		gifts = append(gifts, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return gifts, nil
}

func (r *SQLiteGiftRepo) OpenGift(ctx context.Context, number int, openedAt time.Time) (models.OpenedGift, error) {
	const op = "repository.gift_sqlite_repository.OpenGift"

	query, args, err := r.sb.Update(giftsTable).
		Set("opened_at", formatTime(openedAt)).
		Where(sq.Eq{"gift_number": number}).
		Where(sq.Eq{"opened_at": nil}).
		Suffix("RETURNING gift_number, opened_at").
		ToSql()
	if err != nil {
		return models.OpenedGift{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var (
		opened models.OpenedGift
		raw    string
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&opened.Number, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.OpenedGift{}, fmt.Errorf("%s: %w", op, storage.ErrGiftAlreadyOpened)
	}
	if err != nil {
		return models.OpenedGift{}, fmt.Errorf("%s: failed to open gift: %w", op, err)
	}

	opened.OpenedAt, err = parseTime(raw)
	if err != nil {
		return models.OpenedGift{}, fmt.Errorf("%s: %w", op, err)
	}

	return opened, nil
}

func (r *SQLiteGiftRepo) GetGift(ctx context.Context, number int) (models.Gift, error) {
	const op = "repository.gift_sqlite_repository.GetGift"

	query, args, err := r.sb.Select(giftColumns...).
		From(giftsTable).
		Where(sq.Eq{"gift_number": number}).
		ToSql()
	if err != nil {
		return models.Gift{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	g, err := scanSQLiteGift(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Gift{}, fmt.Errorf("%s: %w", op, storage.ErrGiftNotFound)
	}
	if err != nil {
		return models.Gift{}, fmt.Errorf("%s: failed to get gift: %w", op, err)
	}

	return g, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteGift(row rowScanner) (models.Gift, error) {
	var (
		g         models.Gift
		mediaType string
		caption   sql.NullString
		openedAt  sql.NullString
	)

	if err := row.Scan(&g.Number, &g.StoragePath, &mediaType, &caption, &openedAt); err != nil {
		return models.Gift{}, err
	}

	g.MediaType = models.MediaType(mediaType)
	if caption.Valid {
		c := caption.String
		g.Caption = &c
	}
	if openedAt.Valid {
		t, err := parseTime(openedAt.String)
		if err != nil {
			return models.Gift{}, err
		}
		g.OpenedAt = &t
	}

	return g, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad opened_at %q: %w", raw, err)
	}
	return t.UTC(), nil
}
