package usecase

import (
	"sort"
	"strings"

	"github.com/pricepeek/backend/internal/domain"
)

// OfferAggregator turns a list of products with embedded per-retailer offers
// into ranked comparison rows: products are grouped by normalized product
// identity (never by catalog SKU, since retailers assign their own SKUs to
// the same physical product), each group keeps the best offer per store, and
// rows are ordered cheapest first.
//
// The aggregator is pure and holds no state between calls, so it is safe to
// share across goroutines.
type OfferAggregator struct {
	normalizer *NameNormalizer
}

// NewOfferAggregator creates a new offer aggregator
func NewOfferAggregator() *OfferAggregator {
	return &OfferAggregator{normalizer: NewNameNormalizer()}
}

// offerGroup is the working state for one canonical product while grouping.
// order records the first-seen order of store entries so tie-breaks and
// currency fallback stay deterministic for a given input ordering.
type offerGroup struct {
	summary domain.ProductSummary
	byStore map[domain.StoreCode]domain.RawOffer
	order   []domain.StoreCode
}

// Aggregate builds one ComparisonRow per canonical product found in the
// input. Offers from stores outside relevantStores are discarded; products
// with no offers left after filtering are dropped. A nil or empty
// relevantStores set is a caller precondition violation and fails fast.
func (a *OfferAggregator) Aggregate(
	products []domain.Product,
	relevantStores []domain.StoreCode,
) ([]domain.ComparisonRow, error) {
	if len(relevantStores) == 0 {
		return nil, domain.ErrInvalidStoreSet
	}

	relevant := make(map[domain.StoreCode]bool, len(relevantStores))
	for _, store := range relevantStores {
		relevant[store] = true
	}

	groups := make(map[string]*offerGroup)
	var keyOrder []string

	for _, product := range products {
		if len(product.Offers) == 0 {
			continue
		}

		baseName, key := a.groupingKey(product)
		group, ok := groups[key]
		if !ok {
			group = &offerGroup{
				summary: domain.ProductSummary{
					Name:     baseName,
					SKU:      product.SKU,
					ImageURL: product.Image(),
				},
				byStore: make(map[domain.StoreCode]domain.RawOffer),
			}
			groups[key] = group
			keyOrder = append(keyOrder, key)
		} else if group.summary.Name == "" && baseName != "" {
			group.summary.Name = baseName
		}

		for _, offer := range product.Offers {
			store := NormalizeStoreCode(string(offer.Store))
			if !relevant[store] {
				continue
			}
			if offer.Price.IsNegative() {
				// Malformed observation; drop it rather than abort the run.
				continue
			}

			candidate := offer
			candidate.Store = store

			existing, seen := group.byStore[store]
			if !seen {
				group.byStore[store] = candidate
				group.order = append(group.order, store)
				continue
			}
			if replacesStoreEntry(candidate, existing) {
				group.byStore[store] = candidate
			}
		}
	}

	rows := make([]domain.ComparisonRow, 0, len(keyOrder))
	for _, key := range keyOrder {
		group := groups[key]
		if len(group.order) == 0 {
			continue
		}
		rows = append(rows, buildRow(group))
	}

	// Cheapest first; rows with no in-stock offer at all sort after every
	// priced row, keeping their stable input order among themselves.
	sort.SliceStable(rows, func(i, j int) bool {
		bi, bj := rows[i].Best, rows[j].Best
		switch {
		case bi == nil:
			return false
		case bj == nil:
			return true
		default:
			return bi.Price.LessThan(bj.Price)
		}
	})

	return rows, nil
}

// groupingKey derives the canonical key and display base name for a product.
// Falls back to the raw name, then the SKU, when normalization yields an
// empty key.
func (a *OfferAggregator) groupingKey(product domain.Product) (baseName, key string) {
	baseName = a.normalizer.Normalize(product.Name).SimplifiedName
	if baseName == "" {
		baseName = product.Name
	}
	if baseName == "" {
		baseName = product.SKU
	}
	return baseName, strings.ToLower(baseName)
}

// replacesStoreEntry reports whether candidate should replace the store's
// current entry. In-stock offers always beat out-of-stock ones regardless of
// price; within the same stock class only a strictly lower price wins, so
// the first-seen offer is kept on price ties.
func replacesStoreEntry(candidate, existing domain.RawOffer) bool {
	if candidate.InStock != existing.InStock {
		return candidate.InStock
	}
	return candidate.Price.LessThan(existing.Price)
}

// buildRow reduces a group's per-store entries to a ranked comparison row.
// Winner/loser selection considers in-stock entries only: out-of-stock
// observations stay visible in OffersByStore but never participate in price
// ranking or savings.
func buildRow(group *offerGroup) domain.ComparisonRow {
	entries := make([]domain.RawOffer, 0, len(group.order))
	for _, store := range group.order {
		entries = append(entries, group.byStore[store])
	}

	inStock := make([]domain.RawOffer, 0, len(entries))
	for _, entry := range entries {
		if entry.InStock {
			inStock = append(inStock, entry)
		}
	}
	sort.SliceStable(inStock, func(i, j int) bool {
		return inStock[i].Price.LessThan(inStock[j].Price)
	})

	row := domain.ComparisonRow{
		Product:       group.summary,
		OffersByStore: make(map[domain.StoreCode]domain.RawOffer, len(entries)),
	}
	for store, offer := range group.byStore {
		row.OffersByStore[store] = offer
	}

	if len(inStock) > 0 {
		best := inStock[0]
		row.Best = &best
	}
	if len(inStock) > 1 {
		worst := inStock[len(inStock)-1]
		row.Worst = &worst
		savings := worst.Price.Sub(row.Best.Price)
		row.Savings = &savings
	}
	row.Currency = resolveCurrency(row.Best, entries)

	return row
}

// resolveCurrency picks the row currency: best offer's currency, then the
// first recorded offer carrying one, then the default.
func resolveCurrency(best *domain.RawOffer, entries []domain.RawOffer) string {
	if best != nil && best.Currency != "" {
		return strings.ToUpper(best.Currency)
	}
	for _, entry := range entries {
		if entry.Currency != "" {
			return strings.ToUpper(entry.Currency)
		}
	}
	return domain.DefaultCurrency
}
