package question

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheWarmer_RefreshesUntilCanceled(t *testing.T) {
	cache := &mapCache{}
	svc := NewService(newMemStore(defaultCategories()), cache, ServiceOptions{Logger: zerolog.Nop()})
	w := NewCacheWarmer(svc, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	assert.Eventually(t, func() bool {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		return cache.sets >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop")
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Len(t, cache.value, 3)
}

func TestCacheWarmer_NoCacheReturnsImmediately(t *testing.T) {
	svc := NewService(newMemStore(defaultCategories()), nil, ServiceOptions{Logger: zerolog.Nop()})
	w := NewCacheWarmer(svc, time.Millisecond, zerolog.Nop())
	assert.NoError(t, w.Run(context.Background()))
}

func TestCacheWarmer_SurvivesStoreFailure(t *testing.T) {
	store := newMemStore(defaultCategories())
	store.failWith = errStoreDown
	cache := &mapCache{}
	svc := NewService(store, cache, ServiceOptions{Logger: zerolog.Nop()})
	w := NewCacheWarmer(svc, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := w.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, cache.sets)
}

func TestCache_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewCache(client, 0)
	assert.Equal(t, defaultCacheTTL, c.ttl)

	_, err := c.Get(context.Background())
	require.Error(t, err)
	assert.Error(t, c.Ping(context.Background()))

	// a broken cache degrades to store reads
	svc := NewService(newMemStore(defaultCategories()), c, ServiceOptions{Logger: zerolog.Nop()})
	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 3)
}
