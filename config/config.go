// Package config loads service configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
// Nested keys map to environment variables with dots replaced by
// underscores, so db.host is read from DB_HOST.
type Config struct {
	Port        string `mapstructure:"port"`
	CORSEnabled bool   `mapstructure:"cors_enabled"`
	LogLevel    string `mapstructure:"log_level"`

	DB      DBConfig      `mapstructure:"db"`
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`
	AI      AIConfig      `mapstructure:"ai"`
	Render  RenderConfig  `mapstructure:"render"`
	Client  ClientConfig  `mapstructure:"client"`
}

// DBConfig holds PostgreSQL connection settings
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the lib/pq connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// StorageConfig selects where extraction snapshots are archived
type StorageConfig struct {
	Backend  string   `mapstructure:"backend"` // fs or s3
	BasePath string   `mapstructure:"base_path"`
	S3       S3Config `mapstructure:"s3"`
}

// S3Config holds S3-compatible object storage settings
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// CacheConfig holds the Badger enrichment cache settings
type CacheConfig struct {
	Path      string        `mapstructure:"path"`
	InMemory  bool          `mapstructure:"in_memory"`
	OEmbedTTL time.Duration `mapstructure:"oembed_ttl"`
	HealthTTL time.Duration `mapstructure:"health_ttl"`
}

// AIConfig points at the product identification endpoint
type AIConfig struct {
	URL   string `mapstructure:"url"`
	Model string `mapstructure:"model"`
}

// RenderConfig controls the headless browser fallback
type RenderConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Bin     string        `mapstructure:"bin"` // browser binary, empty to look it up
	Timeout time.Duration `mapstructure:"timeout"`
}

// ClientConfig holds library timeouts and behaviour switches
type ClientConfig struct {
	HTTPTimeout       time.Duration `mapstructure:"http_timeout"`
	OEmbedTimeout     time.Duration `mapstructure:"oembed_timeout"`
	HealthTimeout     time.Duration `mapstructure:"health_timeout"`
	AnalyzeTimeout    time.Duration `mapstructure:"analyze_timeout"`
	UserAgent         string        `mapstructure:"user_agent"`
	BrowserUserAgents bool          `mapstructure:"browser_user_agents"`
}

var defaults = map[string]any{
	"port":         "8080",
	"cors_enabled": true,
	"log_level":    "info",

	"db.host":     "",
	"db.port":     "5432",
	"db.user":     "linkintel",
	"db.password": "linkintel_dev_pass",
	"db.name":     "linkintel",
	"db.sslmode":  "disable",

	"storage.backend":              "fs",
	"storage.base_path":            "./storage",
	"storage.s3.endpoint":          "",
	"storage.s3.region":            "",
	"storage.s3.bucket":            "",
	"storage.s3.access_key_id":     "",
	"storage.s3.secret_access_key": "",
	"storage.s3.use_path_style":    false,

	"cache.path":       "./badger_data",
	"cache.in_memory":  false,
	"cache.oembed_ttl": 24 * time.Hour,
	"cache.health_ttl": time.Hour,

	"ai.url":   "",
	"ai.model": "",

	"render.enabled": false,
	"render.bin":     "",
	"render.timeout": 20 * time.Second,

	"client.http_timeout":        30 * time.Second,
	"client.oembed_timeout":      5 * time.Second,
	"client.health_timeout":      10 * time.Second,
	"client.analyze_timeout":     30 * time.Second,
	"client.user_agent":          "",
	"client.browser_user_agents": false,
}

// Load reads config.yaml from path when present, then applies environment
// variable overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.AddConfigPath(path)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at startup
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is not set")
	}
	switch c.Storage.Backend {
	case "fs":
		if c.Storage.BasePath == "" {
			return fmt.Errorf("storage.base_path is required for the fs backend")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" || c.Storage.S3.Region == "" {
			return fmt.Errorf("storage.s3.bucket and storage.s3.region are required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if !c.Cache.InMemory && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required unless cache.in_memory is set")
	}
	return nil
}
