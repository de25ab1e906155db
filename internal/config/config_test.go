package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestMustLoadPath_Defaults(t *testing.T) {
	path := writeConfig(t, `dsn: "file:test.sqlite3"`)

	cfg := MustLoadPath(path)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 53, cfg.Gifts.Total)
	assert.Equal(t, "gift-photos", cfg.Gifts.Bucket)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Empty(t, cfg.Redis.RedisAddr)
}

func TestMustLoadPath_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
env: "dev"
dsn: "file:test.sqlite3"
gifts:
  total: 10
`)
	t.Setenv("GIFTBOX_DSN", "postgres://u:p@db:5432/gifts")
	t.Setenv("GIFTBOX_GIFTS_TOTAL", "53")
	t.Setenv("GIFTBOX_REDIS_ADDR", "redis:6379")

	cfg := MustLoadPath(path)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "postgres://u:p@db:5432/gifts", cfg.DSN)
	assert.Equal(t, 53, cfg.Gifts.Total)
	assert.Equal(t, "redis:6379", cfg.Redis.RedisAddr)
}

func TestMustLoadPath_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})

	path := writeConfig(t, `
dsn: "file:test.sqlite3"
gifts:
  total: 0
`)
	t.Setenv("GIFTBOX_GIFTS_TOTAL", "0")
	assert.Panics(t, func() {
		MustLoadPath(path)
	})
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GIFTBOX_TEST_A=file\nGIFTBOX_TEST_B=file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("GIFTBOX_TEST_A", "env")
	t.Setenv("GIFTBOX_TEST_B", "")
	os.Unsetenv("GIFTBOX_TEST_B")

	loaded := LoadDotEnv()
	assert.Equal(t, []string{".env"}, loaded)
	assert.Equal(t, "env", os.Getenv("GIFTBOX_TEST_A"))
	assert.Equal(t, "file", os.Getenv("GIFTBOX_TEST_B"))
}
