package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "giftbox/internal/app/http"
	"giftbox/internal/config"
	"giftbox/internal/lib/logger/sl"
	"giftbox/internal/repository"
	services "giftbox/internal/services/gift_service"
	filestorage "giftbox/internal/storage/filestorage"
	redisapp "giftbox/internal/storage/redis"
	httprouters "giftbox/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	Gifts      *services.GiftService

	log   *slog.Logger
	repo  *repository.Repository
	redis *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	repo, err := repository.NewRepository(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cache, redisClient := newGiftCache(ctx, log, cfg)

	urls := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.Gifts.Bucket)

	giftService := services.NewGiftService(log, repo.Gifts, cache, urls, cfg.Gifts.Total)

	var media httprouters.MediaFiles
	mediaPrefix := ""
	if urls.GetBaseDir() != "" {
		media = urls
		mediaPrefix = "/media/" + cfg.Gifts.Bucket
	}

	routers := httprouters.NewRouter(log, giftService, repo, media)

	server := httpapp.New(log, httpapp.Options{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		MediaPrefix:  mediaPrefix,
		Debug:        cfg.Env != "prod",
	}, routers)

	return &App{
		HTTPServer: server,
		Gifts:      giftService,
		log:        log,
		repo:       repo,
		redis:      redisClient,
	}, nil
}

// newGiftCache выбирает Redis, если он настроен и отвечает, иначе go-cache в памяти.
func newGiftCache(ctx context.Context, log *slog.Logger, cfg *config.Config) (repository.GiftCache, *redisapp.Client) {
	const op = "app.newGiftCache"

	log = log.With(slog.String("op", op))

	if cfg.Redis.RedisAddr == "" {
		log.Info("using in-memory gift cache")
		return repository.NewMemoryGiftCache(cfg.Cache.TTL), nil
	}

	client := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := client.HealthCheck(ctx); err != nil {
		log.Warn("redis unavailable, falling back to in-memory gift cache", sl.Err(err))
		_ = client.Close()
		return repository.NewMemoryGiftCache(cfg.Cache.TTL), nil
	}

	log.Info("using redis gift cache", slog.String("addr", cfg.Redis.RedisAddr))
	return repository.NewRedisGiftCache(client, cfg.Cache.TTL), client
}

func (a *App) Stop() {
	const op = "app.Stop"

	log := a.log.With(slog.String("op", op))

	if err := a.HTTPServer.Stop(); err != nil {
		log.Error("failed to stop http server", sl.Err(err))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Error("failed to close redis", sl.Err(err))
		}
	}

	a.repo.Close()
}
