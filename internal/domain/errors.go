package domain

import "errors"

var (
	// ErrProductNotFound is returned when the catalog has no product for a SKU or query
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidQuery is returned when a search query is empty or unusable
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrInvalidStoreSet is returned when the relevant-store set is nil or empty.
	// This is a caller precondition violation and fails fast rather than
	// producing a misleading empty comparison.
	ErrInvalidStoreSet = errors.New("relevant store set must not be empty")

	// ErrNoComparableOffers is returned when none of the requested products
	// could be fetched, so there is nothing to aggregate
	ErrNoComparableOffers = errors.New("no comparable offers retrieved")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when a catalog API request fails
	ErrCatalogUnavailable = errors.New("catalog API request failed")
)
