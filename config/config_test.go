package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// empty variables count as unset
	t.Setenv("PORT", "")
	t.Setenv("DB_HOST", "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.CORSEnabled)
	assert.Equal(t, "fs", cfg.Storage.Backend)
	assert.Equal(t, "./storage", cfg.Storage.BasePath)
	assert.Equal(t, 24*time.Hour, cfg.Cache.OEmbedTTL)
	assert.Equal(t, time.Hour, cfg.Cache.HealthTTL)
	assert.Equal(t, 5*time.Second, cfg.Client.OEmbedTimeout)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Empty(t, cfg.DB.Host)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
port: "9090"
cors_enabled: false
db:
  host: db.internal
  name: links
cache:
  in_memory: true
  oembed_ttl: 2h
ai:
  url: http://ai.internal:3000
client:
  health_timeout: 3s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.CORSEnabled)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "links", cfg.DB.Name)
	assert.Equal(t, "linkintel", cfg.DB.User, "unset keys keep their defaults")
	assert.True(t, cfg.Cache.InMemory)
	assert.Equal(t, 2*time.Hour, cfg.Cache.OEmbedTTL)
	assert.Equal(t, "http://ai.internal:3000", cfg.AI.URL)
	assert.Equal(t, 3*time.Second, cfg.Client.HealthTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("port: \"9090\"\n"), 0644))

	t.Setenv("PORT", "7070")
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("STORAGE_BASE_PATH", "/var/lib/linkintel")
	t.Setenv("AI_URL", "http://localhost:3000")
	t.Setenv("CACHE_HEALTH_TTL", "15m")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "postgres", cfg.DB.Host)
	assert.Equal(t, "/var/lib/linkintel", cfg.Storage.BasePath)
	assert.Equal(t, "http://localhost:3000", cfg.AI.URL)
	assert.Equal(t, 15*time.Minute, cfg.Cache.HealthTTL)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("port: [unterminated\n"), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:    "8080",
			Storage: StorageConfig{Backend: "fs", BasePath: "./storage"},
			Cache:   CacheConfig{Path: "./badger_data"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid fs", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "ftp" }, true},
		{"fs without path", func(c *Config) { c.Storage.BasePath = "" }, true},
		{"s3 without bucket", func(c *Config) {
			c.Storage.Backend = "s3"
			c.Storage.S3.Region = "us-east-1"
		}, true},
		{"s3 complete", func(c *Config) {
			c.Storage.Backend = "s3"
			c.Storage.S3 = S3Config{Region: "us-east-1", Bucket: "snapshots"}
		}, false},
		{"cache without path", func(c *Config) { c.Cache.Path = "" }, true},
		{"in-memory cache", func(c *Config) {
			c.Cache.Path = ""
			c.Cache.InMemory = true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "localhost", Port: "5432", User: "u", Password: "p", Name: "links", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=links sslmode=disable", c.DSN())
}
