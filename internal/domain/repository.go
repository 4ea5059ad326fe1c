package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching serialized values.
// Implementations return ErrCacheMiss for absent or expired keys.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient defines the interface for the upstream catalog REST API
// that delivers products and their per-retailer price observations.
type CatalogClient interface {
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	GetProduct(ctx context.Context, sku string) (*Product, error)
	GetProductPrices(ctx context.Context, sku string) ([]RawOffer, error)
}
