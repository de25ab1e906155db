package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"giftbox/internal/domain/models"
	"giftbox/internal/lib/logger/sl"
	"giftbox/internal/metrics"
	"giftbox/internal/repository"
	"giftbox/internal/storage"
	filestorage "giftbox/internal/storage/filestorage"
)

// ErrStoreUnavailable оборачивает любые ошибки хранилища, кроме "не найдено".
var ErrStoreUnavailable = errors.New("gift store unavailable")

type GiftService struct {
	log   *slog.Logger
	repo  repository.GiftRepository
	cache repository.GiftCache
	urls  filestorage.URLResolver
	total int
	now   func() time.Time
}

type Option func(*GiftService)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *GiftService) {
		s.now = now
	}
}

// NewGiftService creates the open-state service. cache may be nil.
func NewGiftService(
	log *slog.Logger,
	repo repository.GiftRepository,
	cache repository.GiftCache,
	urls filestorage.URLResolver,
	total int,
	opts ...Option,
) *GiftService {
	s := &GiftService{
		log:   log,
		repo:  repo,
		cache: cache,
		urls:  urls,
		total: total,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *GiftService) Total() int {
	return s.total
}

// ListGifts returns every gift ordered by number with public URLs resolved.
func (s *GiftService) ListGifts(ctx context.Context) ([]models.Gift, error) {
	const op = "gift_service.ListGifts"

	log := s.log.With(slog.String("op", op))

	generation, cached := s.cachedList(ctx, log)
	if cached != nil {
		return s.withURLs(cached), nil
	}

	gifts, err := s.repo.ListGifts(ctx)
	if err != nil {
		log.Error("failed to list gifts", sl.Err(err))

		return nil, fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}

	if gifts == nil {
		gifts = []models.Gift{}
	}

	sort.SliceStable(gifts, func(i, j int) bool {
		return gifts[i].Number < gifts[j].Number
	})

	if s.cache != nil && generation >= 0 {
		if err := s.cache.SetList(ctx, generation, gifts); err != nil {
			log.Warn("failed to cache gift list", sl.Err(err))
		}
	}

	return s.withURLs(gifts), nil
}

// cachedList returns the generation observed before the store read and the
// snapshot for it, if any. A negative generation disables the write-back.
func (s *GiftService) cachedList(ctx context.Context, log *slog.Logger) (int64, []models.Gift) {
	if s.cache == nil {
		return -1, nil
	}

	generation, err := s.cache.Generation(ctx)
	if err != nil {
		log.Warn("gift cache unavailable", sl.Err(err))
		metrics.GiftListCacheTotal.WithLabelValues("error").Inc()

		return -1, nil
	}

	gifts, ok, err := s.cache.GetList(ctx, generation)
	if err != nil {
		log.Warn("failed to read cached gift list", sl.Err(err))
		metrics.GiftListCacheTotal.WithLabelValues("error").Inc()

		return generation, nil
	}
	if !ok {
		metrics.GiftListCacheTotal.WithLabelValues("miss").Inc()

		return generation, nil
	}

	metrics.GiftListCacheTotal.WithLabelValues("hit").Inc()
	if gifts == nil {
		gifts = []models.Gift{}
	}

	return generation, gifts
}

func (s *GiftService) withURLs(gifts []models.Gift) []models.Gift {
	if s.urls == nil {
		return gifts
	}

	for i := range gifts {
		gifts[i].PublicURL = s.urls.PublicURL(gifts[i].StoragePath)
	}

	return gifts
}

// OpenGift sets opened_at for the gift if it is still null. Repeated or
// concurrent calls all observe the first stored timestamp.
func (s *GiftService) OpenGift(ctx context.Context, number int) (models.OpenedGift, error) {
	const op = "gift_service.OpenGift"

	log := s.log.With(
		slog.String("op", op),
		slog.Int("gift_number", number),
	)

	if err := models.ValidateGiftNumber(number, s.total); err != nil {
		log.Warn("invalid gift number", sl.Err(err))
		metrics.GiftOpensTotal.WithLabelValues("invalid").Inc()

		return models.OpenedGift{}, fmt.Errorf("%s: %w", op, err)
	}

	openedAt := s.now().UTC().Truncate(time.Microsecond)

	opened, err := s.repo.OpenGift(ctx, number, openedAt)
	switch {
	case err == nil:
		log.Info("gift opened", slog.Time("opened_at", opened.OpenedAt))
		metrics.GiftOpensTotal.WithLabelValues("opened").Inc()
		s.invalidate(ctx, log)

		return opened, nil
	case errors.Is(err, storage.ErrGiftAlreadyOpened):
		// строка не обновилась: либо уже открыт, либо такого номера нет
	default:
		log.Error("failed to open gift", sl.Err(err))
		metrics.GiftOpensTotal.WithLabelValues("error").Inc()

		return models.OpenedGift{}, fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}

	gift, err := s.repo.GetGift(ctx, number)
	if err != nil {
		if errors.Is(err, storage.ErrGiftNotFound) {
			log.Warn("gift not found")
			metrics.GiftOpensTotal.WithLabelValues("not_found").Inc()

			return models.OpenedGift{}, fmt.Errorf("%s: %w", op, storage.ErrGiftNotFound)
		}

		log.Error("failed to re-read gift", sl.Err(err))
		metrics.GiftOpensTotal.WithLabelValues("error").Inc()

		return models.OpenedGift{}, fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}

	if gift.OpenedAt == nil {
		log.Error("conditional update matched no row but gift is unopened")
		metrics.GiftOpensTotal.WithLabelValues("error").Inc()

		return models.OpenedGift{}, fmt.Errorf("%s: %w: gift %d still unopened", op, ErrStoreUnavailable, number)
	}

	log.Info("gift already opened", slog.Time("opened_at", *gift.OpenedAt))
	metrics.GiftOpensTotal.WithLabelValues("already_opened").Inc()
	s.invalidate(ctx, log)

	return models.OpenedGift{
		Number:        gift.Number,
		OpenedAt:      gift.OpenedAt.UTC(),
		AlreadyOpened: true,
	}, nil
}

func (s *GiftService) invalidate(ctx context.Context, log *slog.Logger) {
	if s.cache == nil {
		return
	}

	// при ошибке список может быть устаревшим до истечения TTL
	if err := s.cache.Bump(ctx); err != nil {
		log.Warn("failed to invalidate gift list cache", sl.Err(err))
	}
}
