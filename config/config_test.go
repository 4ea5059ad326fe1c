package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("PRICEPEEK_SERVER_PORT")
		os.Unsetenv("PRICEPEEK_SERVER_ENVIRONMENT")
		os.Unsetenv("PRICEPEEK_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("PRICEPEEK_CATALOG_BASE_URL")
		os.Unsetenv("PRICEPEEK_CATALOG_TIMEOUT")
		os.Unsetenv("PRICEPEEK_CACHE_TYPE")
		os.Unsetenv("PRICEPEEK_CACHE_REDIS_URL")
		os.Unsetenv("PRICEPEEK_CACHE_TTL")
		os.Unsetenv("PRICEPEEK_COMPARE_DEFAULT_QUERY")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required catalog URL
		os.Setenv("PRICEPEEK_CATALOG_BASE_URL", "http://localhost:8000")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.Timeout != 30*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 30s", cfg.Catalog.Timeout)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 15*time.Minute {
			t.Errorf("Cache.TTL = %v, want 15m", cfg.Cache.TTL)
		}
		if len(cfg.Compare.Stores) != 2 || cfg.Compare.Stores[0] != "gjirafamall" || cfg.Compare.Stores[1] != "neptun" {
			t.Errorf("Compare.Stores = %v, want [gjirafamall neptun]", cfg.Compare.Stores)
		}
		if cfg.Compare.DefaultQuery != "iphone" {
			t.Errorf("Compare.DefaultQuery = %s, want iphone", cfg.Compare.DefaultQuery)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PRICEPEEK_SERVER_PORT", "9090")
		os.Setenv("PRICEPEEK_SERVER_ENVIRONMENT", "production")
		os.Setenv("PRICEPEEK_CATALOG_BASE_URL", "https://catalog.example.com")
		os.Setenv("PRICEPEEK_CATALOG_TIMEOUT", "10s")
		os.Setenv("PRICEPEEK_CACHE_TYPE", "redis")
		os.Setenv("PRICEPEEK_CACHE_REDIS_URL", "redis://localhost:6379")
		os.Setenv("PRICEPEEK_CACHE_TTL", "1h")
		os.Setenv("PRICEPEEK_COMPARE_DEFAULT_QUERY", "iphone 17 pro max")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://catalog.example.com" {
			t.Errorf("Catalog.BaseURL = %s, want https://catalog.example.com", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.Timeout != 10*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 10s", cfg.Catalog.Timeout)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 1*time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.Compare.DefaultQuery != "iphone 17 pro max" {
			t.Errorf("Compare.DefaultQuery = %s, want 'iphone 17 pro max'", cfg.Compare.DefaultQuery)
		}
	})

	t.Run("fails validation when catalog URL is missing", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing catalog URL")
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PRICEPEEK_CATALOG_BASE_URL", "http://localhost:8000")
		os.Setenv("PRICEPEEK_CACHE_TYPE", "invalid")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when redis URL missing for redis cache", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PRICEPEEK_CATALOG_BASE_URL", "http://localhost:8000")
		os.Setenv("PRICEPEEK_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing Redis URL")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("validates successfully with all required fields", func(t *testing.T) {
		cfg := &Config{
			Catalog: CatalogConfig{
				BaseURL: "http://localhost:8000",
			},
			Cache: CacheConfig{
				Type: "memory",
			},
			Compare: CompareConfig{
				Stores: []string{"gjirafamall", "neptun"},
			},
		}

		err := validate(cfg)
		if err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when catalog URL is empty", func(t *testing.T) {
		cfg := &Config{
			Cache: CacheConfig{
				Type: "memory",
			},
			Compare: CompareConfig{
				Stores: []string{"gjirafamall"},
			},
		}

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for empty catalog URL")
		}
	})

	t.Run("fails for invalid cache type", func(t *testing.T) {
		cfg := &Config{
			Catalog: CatalogConfig{
				BaseURL: "http://localhost:8000",
			},
			Cache: CacheConfig{
				Type: "invalid-type",
			},
			Compare: CompareConfig{
				Stores: []string{"gjirafamall"},
			},
		}

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for invalid cache type")
		}
	})

	t.Run("validates redis cache type with URL", func(t *testing.T) {
		cfg := &Config{
			Catalog: CatalogConfig{
				BaseURL: "http://localhost:8000",
			},
			Cache: CacheConfig{
				Type:     "redis",
				RedisURL: "redis://localhost:6379",
			},
			Compare: CompareConfig{
				Stores: []string{"gjirafamall"},
			},
		}

		err := validate(cfg)
		if err != nil {
			t.Errorf("validate() error = %v, want nil for valid redis config", err)
		}
	})

	t.Run("fails for redis cache without URL", func(t *testing.T) {
		cfg := &Config{
			Catalog: CatalogConfig{
				BaseURL: "http://localhost:8000",
			},
			Cache: CacheConfig{
				Type:     "redis",
				RedisURL: "",
			},
			Compare: CompareConfig{
				Stores: []string{"gjirafamall"},
			},
		}

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for redis without URL")
		}
	})

	t.Run("fails when no compare stores configured", func(t *testing.T) {
		cfg := &Config{
			Catalog: CatalogConfig{
				BaseURL: "http://localhost:8000",
			},
			Cache: CacheConfig{
				Type: "memory",
			},
		}

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for empty store list")
		}
	})
}
