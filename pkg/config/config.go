package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		RateLimit int    `env:"APP_RATE_LIMIT" env-default:"20" env-description:"requests per second per user on the http surface"`
		RateBurst int    `env:"APP_RATE_BURST" env-default:"40"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Stories struct {
		Duration        time.Duration `env:"STORY_DURATION" env-default:"5s" env-description:"how long a single story plays"`
		Tick            time.Duration `env:"STORY_TICK" env-default:"50ms" env-description:"progress bar update cadence"`
		SwipeThreshold  float64       `env:"STORY_SWIPE_THRESHOLD" env-default:"50"`
		RetreatZone     float64       `env:"STORY_RETREAT_ZONE" env-default:"0.3333" env-description:"fraction of the screen width, from the left, that goes back"`
		RefreshInterval time.Duration `env:"STORY_REFRESH_INTERVAL" env-default:"30s"`
	}
	Tracker struct {
		Workers   int           `env:"TRACKER_WORKERS" env-default:"16"`
		Timeout   time.Duration `env:"TRACKER_TIMEOUT" env-default:"5s"`
		CacheSize int           `env:"TRACKER_CACHE_SIZE" env-default:"4096"`
	}
}

// GetDSN returns the postgres connection string for database/sql and pgx.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
