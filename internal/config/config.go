package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers for the draft key-value store
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Storage     StorageConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Catalog     CatalogConfig
	Storefront  StorefrontConfig
	Session     SessionConfig
	API         APIConfig
	DeepLink    DeepLinkConfig
}

// StorageConfig selects where drafts live
type StorageConfig struct {
	Driver   string        // STORAGE_DRIVER: memory, redis or postgres
	DraftTTL time.Duration // DRAFT_TTL: redis key expiry / postgres prune age; 0 keeps drafts forever
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig points at the YAML catalog; empty File means the embedded default
type CatalogConfig struct {
	File         string
	SyncInterval time.Duration
}

// StorefrontConfig is used to read product listings from the storefront REST API
type StorefrontConfig struct {
	BaseURL string // e.g. https://api.example-store.id; empty disables catalog sync
	APIKey  string // STOREFRONT_API_KEY, sent as a bearer token when set
}

type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	CookieMaxAge time.Duration
}

type APIConfig struct {
	AdminKeyHash string // bcrypt hash of the admin API key; empty disables admin routes
}

// DeepLinkConfig is the messaging URL the order summary is handed to
type DeepLinkConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("DRAFT_TTL", "720h")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "topup")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_SYNC_INTERVAL", "10m")
	v.SetDefault("SESSION_COOKIE_NAME", "topup_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_COOKIE_MAX_AGE", "720h")
	v.SetDefault("DEEPLINK_BASE_URL", "https://wa.me/6281234567890")

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Storage: StorageConfig{
			Driver:   strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
			DraftTTL: v.GetDuration("DRAFT_TTL"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Catalog: CatalogConfig{
			File:         strings.TrimSpace(v.GetString("CATALOG_FILE")),
			SyncInterval: v.GetDuration("CATALOG_SYNC_INTERVAL"),
		},
		Storefront: StorefrontConfig{
			BaseURL: strings.TrimSpace(v.GetString("STOREFRONT_API_URL")),
			APIKey:  strings.TrimSpace(v.GetString("STOREFRONT_API_KEY")),
		},
		Session: SessionConfig{
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
			CookieMaxAge: v.GetDuration("SESSION_COOKIE_MAX_AGE"),
		},
		API: APIConfig{
			AdminKeyHash: strings.TrimSpace(v.GetString("ADMIN_API_KEY_HASH")),
		},
		DeepLink: DeepLinkConfig{
			BaseURL: strings.TrimSpace(v.GetString("DEEPLINK_BASE_URL")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values Load cannot default its way out of
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, redis, postgres (got %q)", c.Storage.Driver)
	}
	if c.Storage.DraftTTL < 0 {
		return fmt.Errorf("DRAFT_TTL must not be negative")
	}
	if c.Catalog.SyncInterval <= 0 {
		return fmt.Errorf("CATALOG_SYNC_INTERVAL must be positive")
	}
	if c.DeepLink.BaseURL == "" {
		return fmt.Errorf("DEEPLINK_BASE_URL is required")
	}
	return nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
