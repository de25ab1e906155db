package suite

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"giftbox/internal/app"
	"giftbox/internal/client"
	"giftbox/internal/config"
	"giftbox/internal/domain/models"
	"giftbox/internal/storage/sqlite"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/require"
)

type Suite struct {
	*testing.T
	Cfg    *config.Config
	App    *app.App
	Server *httptest.Server
	Client *client.Client
}

// New поднимает приложение поверх временной SQLite базы с cfg.Gifts.Total подарками.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()
	t.Parallel()

	cfg := config.MustLoadPath(configPath())
	cfg.DSN = filepath.Join(t.TempDir(), "giftbox.sqlite3")
	cfg.Redis.RedisAddr = ""
	cfg.FileStorage.BaseDir = ""

	ctx, cancelCtx := context.WithTimeout(context.Background(), time.Minute)

	seed(t, cfg.DSN, cfg.Gifts.Total)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	application, err := app.New(ctx, log, cfg)
	require.NoError(t, err)

	application.HTTPServer.BuildRouters()
	server := httptest.NewServer(application.HTTPServer.Echo())

	t.Cleanup(func() {
		t.Helper()
		server.Close()
		application.Stop()
		cancelCtx()
	})

	return ctx, &Suite{
		T:      t,
		Cfg:    cfg,
		App:    application,
		Server: server,
		Client: client.New(server.URL, 5*time.Second),
	}
}

// seed вставляет подарки в обратном порядке, чтобы проверять сортировку.
func seed(t *testing.T, dsn string, total int) {
	t.Helper()

	s, err := sqlite.New(dsn)
	require.NoError(t, err)
	defer s.Stop()

	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))

	for n := total; n >= 1; n-- {
		mediaType := models.MediaTypeImage
		path := fmt.Sprintf("%02d.jpg", n)
		if n%10 == 0 {
			mediaType = models.MediaTypeVideo
			path = fmt.Sprintf("%02d.mp4", n)
		}

		var caption any
		if n%2 == 0 {
			caption = gofakeit.FirstName()
		}

		_, err := s.DB().ExecContext(ctx,
			`INSERT INTO gifts (gift_number, storage_path, media_type, caption) VALUES (?, ?, ?, ?)`,
			n, path, mediaType, caption)
		require.NoError(t, err)
	}
}

func configPath() string {
	const key = "CONFIG_PATH"

	if v := os.Getenv(key); v != "" {
		return v
	}

	return "../config/local.yaml"
}
