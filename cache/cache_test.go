package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teedgg/linkintel/models"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := Open(Config{
		InMemory: true,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err, "failed to open in-memory cache")
	t.Cleanup(func() {
		assert.NoError(t, c.Close())
	})
	return c
}

// expiresIn reports the remaining TTL of a raw key
func expiresIn(t *testing.T, c *Cache, key string) time.Duration {
	t.Helper()
	var expires uint64
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		expires = item.ExpiresAt()
		return nil
	})
	require.NoError(t, err)
	return time.Until(time.Unix(int64(expires), 0))
}

func TestOEmbedRoundTrip(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	_, ok := c.GetOEmbed(ctx, url)
	assert.False(t, ok, "empty cache reported a hit")

	meta := &models.OEmbedMetadata{Type: "video", Version: "1.0", Title: "Never Gonna Give You Up", Width: 200}
	require.NoError(t, c.SetOEmbed(ctx, url, meta))

	got, ok := c.GetOEmbed(ctx, url)
	require.True(t, ok)
	assert.Equal(t, meta, got)
}

func TestOEmbedTTL(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetOEmbed(ctx, "https://a.example/v/1", &models.OEmbedMetadata{Type: "video"}))
	require.NoError(t, c.SetOEmbed(ctx, "https://a.example/v/2", &models.OEmbedMetadata{Type: "video", CacheAge: 600}))

	assert.InDelta(t, DefaultOEmbedTTL.Seconds(), expiresIn(t, c, oembedPrefix+"https://a.example/v/1").Seconds(), 5)
	assert.InDelta(t, 600, expiresIn(t, c, oembedPrefix+"https://a.example/v/2").Seconds(), 5)
}

func TestOEmbedTTLClampsCacheAge(t *testing.T) {
	c := setupTestCache(t)

	for _, age := range []int{1e12, int(MaxOEmbedTTL / time.Second), 1 << 62} {
		assert.Equal(t, MaxOEmbedTTL, c.oembedTTLFor(&models.OEmbedMetadata{CacheAge: age}), "cache_age %d", age)
	}
	assert.Equal(t, time.Hour, c.oembedTTLFor(&models.OEmbedMetadata{CacheAge: 3600}))

	require.NoError(t, c.SetOEmbed(context.Background(), "https://a.example/v/3", &models.OEmbedMetadata{Type: "video", CacheAge: 1e12}))
	assert.InDelta(t, MaxOEmbedTTL.Seconds(), expiresIn(t, c, oembedPrefix+"https://a.example/v/3").Seconds(), 5)
}

func TestSetOEmbedNil(t *testing.T) {
	c := setupTestCache(t)
	require.NoError(t, c.SetOEmbed(context.Background(), "https://a.example/v/1", nil))

	n, err := c.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHealthRoundTrip(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()
	url := "https://shop.example.com/products/widget"

	result := models.HealthResult{
		URL:        url,
		Alive:      true,
		Status:     models.HealthHealthy,
		HTTPStatus: 200,
		CheckedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, c.SetHealth(ctx, url, result))

	got, ok := c.GetHealth(ctx, url)
	require.True(t, ok)
	assert.Equal(t, result, *got)
	assert.InDelta(t, DefaultHealthTTL.Seconds(), expiresIn(t, c, healthPrefix+url).Seconds(), 5)
}

func TestHealthSkipsTransientFailures(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	for _, status := range []models.HealthStatus{models.HealthTimeout, models.HealthError} {
		require.NoError(t, c.SetHealth(ctx, "https://slow.example", models.HealthResult{Status: status}))
	}
	_, ok := c.GetHealth(ctx, "https://slow.example")
	assert.False(t, ok, "transient failures should not be cached")

	require.NoError(t, c.SetHealth(ctx, "https://gone.example", models.HealthResult{Status: models.HealthBroken}))
	_, ok = c.GetHealth(ctx, "https://gone.example")
	assert.True(t, ok, "definitive results should be cached")
}

func TestInvalidate(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()
	url := "https://open.spotify.com/track/abc"

	require.NoError(t, c.SetOEmbed(ctx, url, &models.OEmbedMetadata{Type: "rich"}))
	require.NoError(t, c.SetHealth(ctx, url, models.HealthResult{Status: models.HealthHealthy}))
	require.NoError(t, c.SetHealth(ctx, "https://other.example", models.HealthResult{Status: models.HealthHealthy}))

	require.NoError(t, c.Invalidate(url))

	_, ok := c.GetOEmbed(ctx, url)
	assert.False(t, ok)
	_, ok = c.GetHealth(ctx, url)
	assert.False(t, ok)

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "unrelated entries survive invalidation")
}

func TestCancelledContext(t *testing.T) {
	c := setupTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, c.SetHealth(ctx, "https://a.example", models.HealthResult{Status: models.HealthHealthy}))
	_, ok := c.GetHealth(ctx, "https://a.example")
	assert.False(t, ok)
}

func TestRunGCStopsOnCancel(t *testing.T) {
	c := setupTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		c.RunGC(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunGC did not return after cancellation")
	}
}
