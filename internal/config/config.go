package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"GIFTBOX_ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"GIFTBOX_DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	Gifts       GiftsConfig       `yaml:"gifts"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
	Cache       CacheConfig       `yaml:"cache"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"GIFTBOX_HTTP_HOST"`
	Port         string        `yaml:"port" env:"GIFTBOX_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
}

// GiftsConfig describes the provisioned gift range 1..Total.
type GiftsConfig struct {
	Total  int    `yaml:"total" env:"GIFTBOX_GIFTS_TOTAL" env-default:"53"`
	Bucket string `yaml:"bucket" env:"GIFTBOX_BUCKET" env-default:"gift-photos"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env:"GIFTBOX_MEDIA_DIR"`
	BaseURL string `yaml:"base_url" env:"GIFTBOX_MEDIA_URL" env-default:"http://localhost:8080/media"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"GIFTBOX_REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"GIFTBOX_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"GIFTBOX_REDIS_DB"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"GIFTBOX_CACHE_TTL" env-default:"30s"`
}

func MustLoad() *Config {
	LoadDotEnv()

	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	if cfg.Gifts.Total < 1 {
		panic("gifts.total must be positive")
	}

	return &cfg
}

// LoadDotEnv loads .env files with priority: .env.local > .env.
// Variables already present in the environment are never overwritten.
func LoadDotEnv() []string {
	candidates := []string{".env.local", ".env"}
	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
