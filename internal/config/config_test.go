package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "trivia-api", cfg.Name)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Trivia.QuestionsPerPage)
	assert.Equal(t, 5*time.Minute, cfg.Trivia.CategoryCacheTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"GET", "POST", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type", "Authorization"}, cfg.CORS.AllowedHeaders)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/trivia-test.db")
	t.Setenv("QUESTIONS_PER_PAGE", "25")
	t.Setenv("QUIZ_RANDOM_SEED", "42")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://trivia.example.com")
	t.Setenv("GRACEFUL_SHUTDOWN_SECONDS", "5s")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/trivia-test.db", cfg.Store.SQLitePath)
	assert.Equal(t, 25, cfg.Trivia.QuestionsPerPage)
	assert.Equal(t, int64(42), cfg.Trivia.QuizRandomSeed)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "https://trivia.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string][2]string{
		"unknown driver":     {"STORE_DRIVER", "mongo"},
		"zero page size":     {"QUESTIONS_PER_PAGE", "0"},
		"non-numeric port":   {"PG_PORT", "five"},
		"port out of range":  {"PG_PORT", "70000"},
		"redis without port": {"REDIS_ADDR", "localhost"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_PASSWORD", "secret")

	pg, err := LoadPostgres()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=trivia sslmode=disable", pg.DSN())
}
