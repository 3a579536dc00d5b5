package question

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheWarmer periodically reloads the category cache from the store, so
// categories seeded outside the service show up without waiting for the TTL.
type CacheWarmer struct {
	service  *Service
	logger   zerolog.Logger
	interval time.Duration
	timeout  time.Duration
}

func NewCacheWarmer(service *Service, interval time.Duration, logger zerolog.Logger) *CacheWarmer {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheWarmer{
		service:  service,
		logger:   logger.With().Str("component", "category_cache_warmer").Logger(),
		interval: interval,
		timeout:  4 * time.Second,
	}
}

// Run blocks until context cancellation.
func (w *CacheWarmer) Run(ctx context.Context) error {
	if w.service == nil || w.service.cache == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *CacheWarmer) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	n, err := w.service.RefreshCategoryCache(tickCtx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("category cache refresh failed")
		return
	}
	w.logger.Debug().Int("categories", n).Msg("category cache refreshed")
}
