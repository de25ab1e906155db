package repository

import (
	"context"
	"time"

	"giftbox/internal/domain/models"
)

type GiftRepository interface {
	// ListGifts returns every gift ordered by gift_number.
	ListGifts(ctx context.Context) ([]models.Gift, error)
	// OpenGift sets opened_at only if it is still NULL. It returns
	// storage.ErrGiftAlreadyOpened when no row matched the condition.
	OpenGift(ctx context.Context, number int, openedAt time.Time) (models.OpenedGift, error)
	GetGift(ctx context.Context, number int) (models.Gift, error)
}

// GiftCache хранит снимки списка подарков, привязанные к поколению.
// Поколение увеличивается после каждого открытия.
type GiftCache interface {
	Generation(ctx context.Context) (int64, error)
	Bump(ctx context.Context) error
	GetList(ctx context.Context, generation int64) ([]models.Gift, bool, error)
	SetList(ctx context.Context, generation int64, gifts []models.Gift) error
}
