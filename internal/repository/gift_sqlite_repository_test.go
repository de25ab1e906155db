package repository_test

import (
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"giftbox/internal/domain/models"
	"giftbox/internal/repository"
	"giftbox/internal/storage"
	"giftbox/internal/storage/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSQLite(t *testing.T, db *sql.DB, numbers ...int) {
	t.Helper()

	for _, n := range numbers {
		_, err := db.ExecContext(testCtx,
			`INSERT INTO gifts (gift_number, storage_path, media_type) VALUES (?, ?, ?)`,
			n, fmt.Sprintf("%02d.jpg", n), models.MediaTypeImage)
		require.NoError(t, err)
	}
}

func TestSQLiteGiftRepo_ListGifts_Ordered(t *testing.T) {
	s := sqlite.NewTestStorage(t)
	repo := repository.NewSQLiteGiftRepository(s.DB())

	seedSQLite(t, s.DB(), 5, 1, 4, 2, 3)

	gifts, err := repo.ListGifts(testCtx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, giftNumbers(gifts))
	assert.Nil(t, gifts[0].Caption)
	assert.Equal(t, "01.jpg", gifts[0].StoragePath)
}

func TestSQLiteGiftRepo_ListGifts_Empty(t *testing.T) {
	s := sqlite.NewTestStorage(t)
	repo := repository.NewSQLiteGiftRepository(s.DB())

	gifts, err := repo.ListGifts(testCtx)
	require.NoError(t, err)
	assert.NotNil(t, gifts)
	assert.Empty(t, gifts)
}

func TestSQLiteGiftRepo_OpenGift(t *testing.T) {
	s := sqlite.NewTestStorage(t)
	repo := repository.NewSQLiteGiftRepository(s.DB())
	seedSQLite(t, s.DB(), 1, 2, 3)

	first := time.Date(2026, 2, 14, 9, 30, 0, 123456000, time.UTC)

	opened, err := repo.OpenGift(testCtx, 2, first)
	require.NoError(t, err)
	assert.Equal(t, 2, opened.Number)
	assert.True(t, first.Equal(opened.OpenedAt))

	_, err = repo.OpenGift(testCtx, 2, first.Add(time.Minute))
	assert.ErrorIs(t, err, storage.ErrGiftAlreadyOpened)

	gift, err := repo.GetGift(testCtx, 2)
	require.NoError(t, err)
	require.NotNil(t, gift.OpenedAt)
	assert.True(t, first.Equal(*gift.OpenedAt), "first write must win")

	others, err := repo.GetGift(testCtx, 3)
	require.NoError(t, err)
	assert.Nil(t, others.OpenedAt)
}

func TestSQLiteGiftRepo_GetGift_NotFound(t *testing.T) {
	s := sqlite.NewTestStorage(t)
	repo := repository.NewSQLiteGiftRepository(s.DB())

	_, err := repo.GetGift(testCtx, 999)
	assert.ErrorIs(t, err, storage.ErrGiftNotFound)

	_, err = repo.OpenGift(testCtx, 999, time.Now())
	assert.ErrorIs(t, err, storage.ErrGiftAlreadyOpened)
}

func TestSQLiteGiftRepo_ConcurrentOpen(t *testing.T) {
	s := sqlite.NewTestStorage(t)
	repo := repository.NewSQLiteGiftRepository(s.DB())
	seedSQLite(t, s.DB(), 7)

	const callers = 20
	base := time.Now().UTC().Truncate(time.Microsecond)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []time.Time
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opened, err := repo.OpenGift(testCtx, 7, base.Add(time.Duration(i)*time.Second))
			if err != nil {
				assert.ErrorIs(t, err, storage.ErrGiftAlreadyOpened)
				return
			}
			mu.Lock()
			winners = append(winners, opened.OpenedAt)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, winners, 1)

	gift, err := repo.GetGift(testCtx, 7)
	require.NoError(t, err)
	assert.True(t, winners[0].Equal(*gift.OpenedAt))
}
