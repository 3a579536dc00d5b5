package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	ReadTimeout             time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout            time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`

	Store    Store
	Postgres Postgres
	Redis    Redis
	Trivia   Trivia
	CORS     CORS
}

// Store selects the persistence backend.
type Store struct {
	Driver     string `env:"STORE_DRIVER" envDefault:"postgres" validate:"oneof=postgres sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"trivia.db" validate:"required_if=Driver sqlite"`
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432" validate:"min=1,max=65535"`
	User     string `env:"PG_USER" envDefault:"postgres"`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10" validate:"min=0"`
}

// DSN renders the key/value connection string understood by pgx.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds cache configuration. An empty Addr disables caching.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"" validate:"omitempty,hostname_port"`
	DB       int    `env:"REDIS_DB" envDefault:"0" validate:"min=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20" validate:"min=1"`
}

// Trivia groups listing and quiz defaults.
type Trivia struct {
	QuestionsPerPage     int           `env:"QUESTIONS_PER_PAGE" envDefault:"10" validate:"min=1"`
	QuizRandomSeed       int64         `env:"QUIZ_RANDOM_SEED" envDefault:"0"`
	CategoryCacheTTL     time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
	CategoryCacheRefresh time.Duration `env:"CATEGORY_CACHE_REFRESH_INTERVAL" envDefault:"1m"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPostgres parses only the Postgres group, for tools that need nothing else.
func LoadPostgres() (*Postgres, error) {
	cfg := &Postgres{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	return cfg, nil
}

func (c *App) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
