package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricepeek/backend/config"
	httpDelivery "github.com/pricepeek/backend/internal/delivery/http"
	"github.com/pricepeek/backend/internal/domain"
	"github.com/pricepeek/backend/internal/infrastructure/cache"
	"github.com/pricepeek/backend/internal/infrastructure/catalog"
	"github.com/pricepeek/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PricePeek Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)
	log.Printf("Catalog API: %s", cfg.Catalog.BaseURL)

	// Initialize infrastructure dependencies
	cacheRepo, err := buildCache(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	// Resolve the configured store labels to canonical codes
	stores := make([]domain.StoreCode, 0, len(cfg.Compare.Stores))
	for _, store := range cfg.Compare.Stores {
		stores = append(stores, usecase.NormalizeStoreCode(store))
	}
	log.Printf("Comparing stores: %v", stores)

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		cacheRepo,
		catalogClient,
		usecase.ComparisonServiceConfig{
			CacheTTL:       cfg.Cache.TTL,
			RelevantStores: stores,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(comparisonService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildCache selects the cache backend from configuration.
func buildCache(cfg *config.Config) (domain.CacheRepository, error) {
	if cfg.Cache.Type == "redis" {
		return cache.NewRedisCache(cfg.Cache.RedisURL)
	}
	return cache.NewMemoryCache(), nil
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
