package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"giftbox/internal/domain/models"
	redisapp "giftbox/internal/storage/redis"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	giftListKeyPrefix = "giftbox:gifts:list:"
	giftGenerationKey = "giftbox:gifts:generation"
)

// RedisGiftCache shares list snapshots between server instances.
type RedisGiftCache struct {
	Client *redisapp.Client
	ttl    time.Duration
}

func NewRedisGiftCache(client *redisapp.Client, ttl time.Duration) *RedisGiftCache {
	return &RedisGiftCache{Client: client, ttl: ttl}
}

func (c *RedisGiftCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.Client.Get(ctx, giftGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("repository.RedisGiftCache.Generation: %w", err)
	}
	return gen, nil
}

func (c *RedisGiftCache) Bump(ctx context.Context) error {
	return c.Client.Incr(ctx, giftGenerationKey).Err()
}

func (c *RedisGiftCache) GetList(ctx context.Context, generation int64) ([]models.Gift, bool, error) {
	const op = "repository.RedisGiftCache.GetList"

	data, err := c.Client.Get(ctx, giftListKey(generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var gifts []models.Gift
	if err := json.Unmarshal(data, &gifts); err != nil {
		return nil, false, fmt.Errorf("%s: corrupt snapshot: %w", op, err)
	}

	return gifts, true, nil
}

func (c *RedisGiftCache) SetList(ctx context.Context, generation int64, gifts []models.Gift) error {
	data, err := json.Marshal(gifts)
	if err != nil {
		return fmt.Errorf("repository.RedisGiftCache.SetList: %w", err)
	}

	return c.Client.Set(ctx, giftListKey(generation), data, c.ttl).Err()
}

func giftListKey(generation int64) string {
	return giftListKeyPrefix + strconv.FormatInt(generation, 10)
}

// MemoryGiftCache is the in-process fallback used when Redis is not configured.
type MemoryGiftCache struct {
	c *cache.Cache
}

func NewMemoryGiftCache(ttl time.Duration) *MemoryGiftCache {
	c := cache.New(ttl, 2*ttl)
	c.Set(giftGenerationKey, int64(0), cache.NoExpiration)

	return &MemoryGiftCache{c: c}
}

func (m *MemoryGiftCache) Generation(_ context.Context) (int64, error) {
	v, ok := m.c.Get(giftGenerationKey)
	if !ok {
		return 0, nil
	}
	return v.(int64), nil
}

func (m *MemoryGiftCache) Bump(_ context.Context) error {
	_, err := m.c.IncrementInt64(giftGenerationKey, 1)
	return err
}

func (m *MemoryGiftCache) GetList(_ context.Context, generation int64) ([]models.Gift, bool, error) {
	v, ok := m.c.Get(giftListKey(generation))
	if !ok {
		return nil, false, nil
	}

	cached := v.([]models.Gift)
	gifts := make([]models.Gift, len(cached))
	copy(gifts, cached)

	return gifts, true, nil
}

func (m *MemoryGiftCache) SetList(_ context.Context, generation int64, gifts []models.Gift) error {
	snapshot := make([]models.Gift, len(gifts))
	copy(snapshot, gifts)

	m.c.SetDefault(giftListKey(generation), snapshot)

	return nil
}
