package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pricepeek/backend/internal/domain"
)

// nonAlphanumericRegex strips cache-key-hostile characters; whitespace
// collapsing reuses multiSpaceRegex from the normalizer.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL       time.Duration
	RelevantStores []domain.StoreCode
}

// ComparisonService orchestrates a price comparison: fetch products and
// offers from the upstream catalog, aggregate them into ranked rows, and
// cache the result. The aggregation itself is pure; all I/O happens before
// the engine is invoked.
type ComparisonService struct {
	cache      domain.CacheRepository
	catalog    domain.CatalogClient
	aggregator *OfferAggregator
	relevant   []domain.StoreCode
	cacheTTL   time.Duration
}

// NewComparisonService creates a new comparison service with dependencies
func NewComparisonService(
	cache domain.CacheRepository,
	catalog domain.CatalogClient,
	config ComparisonServiceConfig,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	relevant := config.RelevantStores
	if len(relevant) == 0 {
		relevant = []domain.StoreCode{domain.StoreGjirafaMall, domain.StoreNeptun}
	}

	return &ComparisonService{
		cache:      cache,
		catalog:    catalog,
		aggregator: NewOfferAggregator(),
		relevant:   relevant,
		cacheTTL:   cacheTTL,
	}
}

// RelevantStores returns the store codes this service compares across.
func (s *ComparisonService) RelevantStores() []domain.StoreCode {
	stores := make([]domain.StoreCode, len(s.relevant))
	copy(stores, s.relevant)
	return stores
}

// CompareSearch compares prices for every product matching a search term.
// Flow: check cache -> search catalog -> aggregate -> cache -> return.
func (s *ComparisonService) CompareSearch(ctx context.Context, query string) ([]domain.ComparisonRow, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}

	cacheKey := s.searchCacheKey(query)
	if rows, err := s.getCachedRows(ctx, cacheKey); err == nil {
		return rows, nil
	}

	products, err := s.catalog.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := s.aggregator.Aggregate(products, s.relevant)
	if err != nil {
		return nil, err
	}

	s.setCachedRows(ctx, cacheKey, rows)
	return rows, nil
}

// CompareSKU compares prices for a single catalog product.
func (s *ComparisonService) CompareSKU(ctx context.Context, sku string) ([]domain.ComparisonRow, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.ErrInvalidQuery
	}

	product, err := s.fetchProductWithPrices(ctx, sku)
	if err != nil {
		return nil, err
	}

	return s.aggregator.Aggregate([]domain.Product{*product}, s.relevant)
}

// CompareSKUs compares prices across a set of catalog products, fetching
// them concurrently. Failed fetches are discarded and only the successfully
// retrieved products are aggregated; partial results are expected, never a
// hard failure of the whole comparison. Only when nothing at all could be
// retrieved does the call fail.
func (s *ComparisonService) CompareSKUs(ctx context.Context, skus []string) ([]domain.ComparisonRow, error) {
	cleaned := make([]string, 0, len(skus))
	for _, sku := range skus {
		if sku = strings.TrimSpace(sku); sku != "" {
			cleaned = append(cleaned, sku)
		}
	}
	if len(cleaned) == 0 {
		return nil, domain.ErrInvalidQuery
	}

	// Indexed results keep the caller's SKU order, so aggregation output
	// stays deterministic regardless of fetch completion order.
	fetched := make([]*domain.Product, len(cleaned))
	var wg sync.WaitGroup
	for i, sku := range cleaned {
		wg.Add(1)
		go func(i int, sku string) {
			defer wg.Done()
			product, err := s.fetchProductWithPrices(ctx, sku)
			if err != nil {
				log.Printf("[COMPARE] Skipping SKU %q: %v", sku, err)
				return
			}
			fetched[i] = product
		}(i, sku)
	}
	wg.Wait()

	products := make([]domain.Product, 0, len(cleaned))
	for _, product := range fetched {
		if product != nil {
			products = append(products, *product)
		}
	}
	if len(products) == 0 {
		return nil, domain.ErrNoComparableOffers
	}

	return s.aggregator.Aggregate(products, s.relevant)
}

// fetchProductWithPrices retrieves a product and attaches its latest offers.
func (s *ComparisonService) fetchProductWithPrices(ctx context.Context, sku string) (*domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, sku)
	if err != nil {
		return nil, err
	}

	offers, err := s.catalog.GetProductPrices(ctx, sku)
	if err != nil {
		return nil, err
	}

	enriched := *product
	enriched.Offers = offers
	return &enriched, nil
}

// searchCacheKey creates a normalized cache key for a search comparison.
// Format: "compare:{stores}:{normalized_query}"
func (s *ComparisonService) searchCacheKey(query string) string {
	codes := make([]string, len(s.relevant))
	for i, store := range s.relevant {
		codes[i] = string(store)
	}
	return fmt.Sprintf("compare:%s:%s", strings.Join(codes, "+"), normalizeForCacheKey(query))
}

// normalizeForCacheKey lowercases, strips special characters, and collapses
// whitespace so equivalent queries share a cache entry.
func normalizeForCacheKey(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multiSpaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getCachedRows retrieves comparison rows from cache
func (s *ComparisonService) getCachedRows(ctx context.Context, key string) ([]domain.ComparisonRow, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var rows []domain.ComparisonRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: corrupt cache entry", domain.ErrCacheMiss)
	}
	return rows, nil
}

// setCachedRows stores comparison rows in cache. Caching is best-effort;
// failures are logged and never fail the comparison.
func (s *ComparisonService) setCachedRows(ctx context.Context, key string, rows []domain.ComparisonRow) {
	data, err := json.Marshal(rows)
	if err != nil {
		log.Printf("[COMPARE] Failed to marshal rows for cache key %q: %v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		log.Printf("[COMPARE] Failed to cache rows for key %q: %v", key, err)
	}
}
