package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store *StoreHandle
	redis *redis.Client
	http  *http.Server

	cacheWarmer *question.CacheWarmer
	bgCancels   []context.CancelFunc
}

// New bootstraps logger, store, optional Redis cache and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	a := &Application{
		cfg:       cfg,
		logger:    logger,
		bgCancels: make([]context.CancelFunc, 0, 1),
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.store = store
	checks := store.Checks

	var cache question.CategoryCache
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		redisCache := question.NewCache(a.redis, cfg.Trivia.CategoryCacheTTL)
		cache = redisCache
		checks = append(checks, server.Check{Name: "redis", Ping: redisCache.Ping})
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	questionSvc := question.NewService(store.Store, cache, question.ServiceOptions{
		PageSize: cfg.Trivia.QuestionsPerPage,
		Rand:     question.NewRandSource(cfg.Trivia.QuizRandomSeed),
		Outcomes: m,
		Logger:   logger,
	})
	if cache != nil {
		a.cacheWarmer = question.NewCacheWarmer(questionSvc, cfg.Trivia.CategoryCacheRefresh, logger)
	}

	handlers := question.NewHTTPHandlers(questionSvc, logger)
	a.http = server.NewHTTPServer(cfg, logger, handlers, m, checks)

	return a, nil
}

// StoreHandle is an opened question store plus what it takes to probe and close it.
type StoreHandle struct {
	Store  question.Store
	Checks []server.Check

	pool   *pgxpool.Pool
	sqlite *sqlite.Store
}

// OpenStore connects the backend selected by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.App) (*StoreHandle, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &StoreHandle{
			Store:  repository.NewQuestionRepository(store),
			Checks: []server.Check{{Name: "sqlite", Ping: store.Ping}},
			sqlite: store,
		}, nil
	default:
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse postgres config: %w", err)
		}
		if cfg.Postgres.MaxConns > 0 {
			poolCfg.MaxConns = int32(cfg.Postgres.MaxConns)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &StoreHandle{
			Store:  repository.NewQuestionRepository(queries.New(pool)),
			Checks: []server.Check{{Name: "postgres", Ping: pool.Ping}},
			pool:   pool,
		}, nil
	}
}

// Close releases the underlying connections.
func (h *StoreHandle) Close() error {
	if h.pool != nil {
		h.pool.Close()
	}
	if h.sqlite != nil {
		return h.sqlite.Close()
	}
	return nil
}

// Run starts the HTTP server and background workers and blocks until ctx is
// canceled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Info().Msg("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.closeStores()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) closeStores() {
	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("store shutdown error")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.cacheWarmer != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.cacheWarmer.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("category cache warmer stopped")
			}
		}()
	}
}
