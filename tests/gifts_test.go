package tests

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"giftbox/internal/client"
	"giftbox/internal/domain/models"
	"giftbox/tests/suite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGifts_OpenSevenScenario(t *testing.T) {
	ctx, st := suite.New(t)

	gifts, err := st.Client.ListGifts(ctx)
	require.NoError(t, err)
	require.Len(t, gifts, st.Cfg.Gifts.Total)

	for i, g := range gifts {
		assert.Equal(t, i+1, g.Number)
		assert.Nil(t, g.OpenedAt)
		assert.True(t, strings.HasSuffix(g.PublicURL, "/"+st.Cfg.Gifts.Bucket+"/"+g.StoragePath), g.PublicURL)
	}

	opened, err := st.Client.OpenGift(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, opened.Number)
	assert.False(t, opened.AlreadyOpened)

	again, err := st.Client.OpenGift(ctx, 7)
	require.NoError(t, err)
	assert.True(t, again.AlreadyOpened)
	assert.True(t, opened.OpenedAt.Equal(again.OpenedAt))

	gifts, err = st.Client.ListGifts(ctx)
	require.NoError(t, err)
	for _, g := range gifts {
		if g.Number == 7 {
			require.NotNil(t, g.OpenedAt)
			assert.True(t, opened.OpenedAt.Equal(*g.OpenedAt))
			continue
		}
		assert.Nil(t, g.OpenedAt, "gift %d", g.Number)
	}
}

func TestGifts_OutOfRangeIsValidationError(t *testing.T) {
	ctx, st := suite.New(t)

	for _, n := range []int{0, st.Cfg.Gifts.Total + 1, 999} {
		_, err := st.Client.OpenGift(ctx, n)
		assert.ErrorIs(t, err, client.ErrInvalidGiftNumber, "gift %d", n)
	}

	gifts, err := st.Client.ListGifts(ctx)
	require.NoError(t, err)
	for _, g := range gifts {
		assert.Nil(t, g.OpenedAt)
	}
}

func TestGifts_ConcurrentOpensConverge(t *testing.T) {
	ctx, st := suite.New(t)

	const callers = 10

	var (
		wg      sync.WaitGroup
		results = make([]models.OpenedGift, callers)
		errs    = make([]error, callers)
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = st.Client.OpenGift(ctx, 12)
		}(i)
	}
	wg.Wait()

	fresh := 0
	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, results[0].OpenedAt.Equal(results[i].OpenedAt))
		if !results[i].AlreadyOpened {
			fresh++
		}
	}
	assert.Equal(t, 1, fresh)
}

func TestGifts_HealthAndMetrics(t *testing.T) {
	_, st := suite.New(t)

	for _, path := range []string{"/health", "/metrics"} {
		resp, err := http.Get(st.Server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
