package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftbox/internal/domain/models"
	"giftbox/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const giftsTable = "gifts"

var giftColumns = []string{
	"gift_number",
	"storage_path",
	"media_type",
	"caption",
	"opened_at",
}

// GiftRepo is the PostgreSQL implementation of GiftRepository.
type GiftRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGiftRepository(db *pgxpool.Pool) *GiftRepo {
	return &GiftRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *GiftRepo) ListGifts(ctx context.Context) ([]models.Gift, error) {
	const op = "repository.gift_repository.ListGifts"

	query, args, err := r.sb.Select(giftColumns...).
		From(giftsTable).
		OrderBy("gift_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	gifts := make([]models.Gift, 0)
	for rows.Next() {
		g, err := scanGift(rows)
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

// OpenGift
// UPDATE gifts SET opened_at = $1
// WHERE gift_number = $2 AND opened_at IS NULL
// RETURNING gift_number, opened_at
func (r *GiftRepo) OpenGift(ctx context.Context, number int, openedAt time.Time) (models.OpenedGift, error) {
	const op = "repository.gift_repository.OpenGift"

	query, args, err := r.sb.Update(giftsTable).
		Set("opened_at", openedAt.UTC()).
		Where(sq.Eq{"gift_number": number}).
		Where(sq.Eq{"opened_at": nil}).
		Suffix("RETURNING gift_number, opened_at").
		ToSql()
	if err != nil {
		return models.OpenedGift{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var opened models.OpenedGift
	err = r.db.QueryRow(ctx, query, args...).Scan(&opened.Number, &opened.OpenedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.OpenedGift{}, fmt.Errorf("%s: %w", op, storage.ErrGiftAlreadyOpened)
	}
	if err != nil {
		return models.OpenedGift{}, fmt.Errorf("%s: failed to open gift: %w", op, err)
	}

	opened.OpenedAt = opened.OpenedAt.UTC()

	return opened, nil
}

func (r *GiftRepo) GetGift(ctx context.Context, number int) (models.Gift, error) {
	const op = "repository.gift_repository.GetGift"

	query, args, err := r.sb.Select(giftColumns...).
		From(giftsTable).
		Where(sq.Eq{"gift_number": number}).
		ToSql()
	if err != nil {
		return models.Gift{}, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	g, err := scanGift(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Gift{}, fmt.Errorf("%s: %w", op, storage.ErrGiftNotFound)
	}
	if err != nil {
		return models.Gift{}, fmt.Errorf("%s: failed to get gift: %w", op, err)
	}

	return g, nil
}

func scanGift(row pgx.Row) (models.Gift, error) {
	var (
		g         models.Gift
		mediaType string
		openedAt  *time.Time
	)

	if err := row.Scan(&g.Number, &g.StoragePath, &mediaType, &g.Caption, &openedAt); err != nil {
		return models.Gift{}, err
	}

	g.MediaType = models.MediaType(mediaType)
	if openedAt != nil {
		utc := openedAt.UTC()
		g.OpenedAt = &utc
	}

	return g, nil
}
