package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"giftbox/internal/domain/models"
	"giftbox/internal/repository"
	services "giftbox/internal/services/gift_service"
	"giftbox/internal/storage"
	filestorage "giftbox/internal/storage/filestorage"
	"giftbox/internal/storage/sqlite"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStoreService собирает сервис поверх SQLite в памяти с total подарками.
func newStoreService(t *testing.T, total int, rows []int) (*services.GiftService, *repository.SQLiteGiftRepo) {
	t.Helper()

	s := sqlite.NewTestStorage(t)
	for _, n := range rows {
		_, err := s.DB().ExecContext(context.Background(),
			`INSERT INTO gifts (gift_number, storage_path, media_type, caption) VALUES (?, ?, ?, ?)`,
			n, fmt.Sprintf("%02d.jpg", n), models.MediaTypeImage, gofakeit.FirstName())
		require.NoError(t, err)
	}

	repo := repository.NewSQLiteGiftRepository(s.DB())
	urls := filestorage.NewLocalFileStorage("", "http://localhost:8080/media", "gift-photos")
	svc := services.NewGiftService(testLogger(), repo, repository.NewMemoryGiftCache(time.Minute), urls, total)

	return svc, repo
}

func numbersUpTo(n int) []int {
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}

func TestGiftService_Store_OpenTwice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t, 53, numbersUpTo(53))

	first, err := svc.OpenGift(ctx, 7)
	require.NoError(t, err)
	assert.False(t, first.AlreadyOpened)

	second, err := svc.OpenGift(ctx, 7)
	require.NoError(t, err)
	assert.True(t, second.AlreadyOpened)
	assert.True(t, first.OpenedAt.Equal(second.OpenedAt))

	gifts, err := svc.ListGifts(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, 53)

	for _, g := range gifts {
		if g.Number == 7 {
			require.NotNil(t, g.OpenedAt)
			assert.True(t, first.OpenedAt.Equal(*g.OpenedAt))
			continue
		}
		assert.Nil(t, g.OpenedAt, "gift %d", g.Number)
	}
	assert.Equal(t, "http://localhost:8080/media/gift-photos/07.jpg", gifts[6].PublicURL)
}

func TestGiftService_Store_ListReflectsOpenAfterCaching(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t, 53, []int{1, 2})

	// прогреваем кэш
	gifts, err := svc.ListGifts(ctx)
	require.NoError(t, err)
	assert.Nil(t, gifts[0].OpenedAt)

	_, err = svc.OpenGift(ctx, 1)
	require.NoError(t, err)

	gifts, err = svc.ListGifts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, gifts[0].OpenedAt)
}

func TestGiftService_Store_InvalidNumbersLeaveRowsUntouched(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStoreService(t, 53, numbersUpTo(53))

	for _, n := range []int{0, 54, -3} {
		_, err := svc.OpenGift(ctx, n)
		assert.True(t, models.IsGiftValidationError(err))
	}

	gifts, err := repo.ListGifts(ctx)
	require.NoError(t, err)
	for _, g := range gifts {
		assert.Nil(t, g.OpenedAt)
	}
}

func TestGiftService_Store_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t, 1000, numbersUpTo(53))

	_, err := svc.OpenGift(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrGiftNotFound)
}

func TestGiftService_Store_ConcurrentOpens(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStoreService(t, 53, numbersUpTo(10))

	const callers = 12

	var (
		wg      sync.WaitGroup
		results = make([]models.OpenedGift, callers)
		errs    = make([]error, callers)
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.OpenGift(ctx, 4)
		}(i)
	}
	wg.Wait()

	fresh := 0
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		if !results[i].AlreadyOpened {
			fresh++
		}
		assert.True(t, results[0].OpenedAt.Equal(results[i].OpenedAt))
	}
	assert.Equal(t, 1, fresh)

	stored, err := repo.GetGift(ctx, 4)
	require.NoError(t, err)
	assert.True(t, results[0].OpenedAt.Equal(*stored.OpenedAt))
}
