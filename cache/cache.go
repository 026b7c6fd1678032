// Package cache stores oEmbed metadata and link health results in BadgerDB
// so repeated lookups of the same URL skip the network.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/teedgg/linkintel/models"
)

const (
	oembedPrefix = "oembed:"
	healthPrefix = "health:"

	// DefaultOEmbedTTL applies when a provider sends no cache_age
	DefaultOEmbedTTL = 24 * time.Hour
	// MaxOEmbedTTL caps provider-supplied cache_age values
	MaxOEmbedTTL = 30 * 24 * time.Hour
	// DefaultHealthTTL is how long a health result is reused
	DefaultHealthTTL = time.Hour
)

// Config contains cache configuration
type Config struct {
	Path      string // data directory, ignored when InMemory is set
	InMemory  bool
	OEmbedTTL time.Duration
	HealthTTL time.Duration
	Logger    *slog.Logger
}

// Cache is a TTL cache of enrichment results backed by BadgerDB
type Cache struct {
	db        *badger.DB
	oembedTTL time.Duration
	healthTTL time.Duration
	log       *slog.Logger
}

// Open opens or creates the cache
func Open(cfg Config) (*Cache, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.OEmbedTTL <= 0 {
		cfg.OEmbedTTL = DefaultOEmbedTTL
	}
	if cfg.HealthTTL <= 0 {
		cfg.HealthTTL = DefaultHealthTTL
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLogger{cfg.Logger.With("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db at %s: %w", cfg.Path, err)
	}

	return &Cache{
		db:        db,
		oembedTTL: cfg.OEmbedTTL,
		healthTTL: cfg.HealthTTL,
		log:       cfg.Logger.With("component", "cache"),
	}, nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetOEmbed returns cached oEmbed metadata for a content URL
func (c *Cache) GetOEmbed(ctx context.Context, contentURL string) (*models.OEmbedMetadata, bool) {
	var meta models.OEmbedMetadata
	if !c.get(ctx, oembedPrefix+contentURL, &meta) {
		return nil, false
	}
	return &meta, true
}

// SetOEmbed caches oEmbed metadata. The provider's cache_age, when
// present, replaces the configured TTL.
func (c *Cache) SetOEmbed(ctx context.Context, contentURL string, meta *models.OEmbedMetadata) error {
	if meta == nil {
		return nil
	}
	return c.set(ctx, oembedPrefix+contentURL, meta, c.oembedTTLFor(meta))
}

func (c *Cache) oembedTTLFor(meta *models.OEmbedMetadata) time.Duration {
	if meta.CacheAge > 0 {
		if meta.CacheAge >= int(MaxOEmbedTTL/time.Second) {
			return MaxOEmbedTTL
		}
		return time.Duration(meta.CacheAge) * time.Second
	}
	return c.oembedTTL
}

// GetHealth returns a cached health result for a URL
func (c *Cache) GetHealth(ctx context.Context, target string) (*models.HealthResult, bool) {
	var result models.HealthResult
	if !c.get(ctx, healthPrefix+target, &result) {
		return nil, false
	}
	return &result, true
}

// SetHealth caches a health result. Timeouts and transport errors are not
// cached so the next check retries the network.
func (c *Cache) SetHealth(ctx context.Context, target string, result models.HealthResult) error {
	if result.Status == models.HealthTimeout || result.Status == models.HealthError {
		return nil
	}
	return c.set(ctx, healthPrefix+target, result, c.healthTTL)
}

// Invalidate drops every cached entry for a URL
func (c *Cache) Invalidate(target string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		for _, prefix := range []string{oembedPrefix, healthPrefix} {
			if err := txn.Delete([]byte(prefix + target)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", target, err)
	}
	return nil
}

// Len counts live entries, oEmbed and health combined
func (c *Cache) Len() (int, error) {
	count := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims value log space every interval until ctx is done
func (c *Cache) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := c.db.RunValueLogGC(0.7)
			switch {
			case err == nil:
				c.log.Debug("value log GC completed")
			case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			case errors.Is(err, badger.ErrDBClosed):
				return
			default:
				c.log.Warn("value log GC failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Cache) get(ctx context.Context, key string, dst any) bool {
	if ctx.Err() != nil {
		return false
	}
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dst)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.log.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(ttl))
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// badgerLogger adapts slog to Badger's logger interface
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(f, v...))
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(f, v...))
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(f, v...))
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(f, v...))
}
