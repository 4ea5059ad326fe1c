package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed whenever an offer carries no currency code.
const DefaultCurrency = "EUR"

// NormalizedName is the result of canonicalizing a product title.
// CanonicalKey is the lower-cased grouping key; SimplifiedName keeps the
// retailer's own casing and is meant for display.
type NormalizedName struct {
	CanonicalKey   string `json:"canonicalKey"`
	SimplifiedName string `json:"simplifiedName"`
}

// ProductSummary identifies the canonical product a comparison row is about.
// Name is the first non-empty simplified name seen for the group.
type ProductSummary struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ComparisonRow is the aggregated, ranked result for one canonical product
// across the considered retailers. OffersByStore holds at most one entry per
// normalized store code (the cheapest in-stock offer seen for that store).
// Best and Worst are nil when no, or fewer than two, in-stock offers exist;
// Savings is Worst.Price - Best.Price when both are present.
//
// Rows are constructed fresh on every aggregation and never mutated.
type ComparisonRow struct {
	Product       ProductSummary         `json:"product"`
	OffersByStore map[StoreCode]RawOffer `json:"offersByStore"`
	Best          *RawOffer              `json:"best,omitempty"`
	Worst         *RawOffer              `json:"worst,omitempty"`
	Savings       *decimal.Decimal       `json:"savings,omitempty"`
	Currency      string                 `json:"currency"`
}

// FormatMoney renders a price for display with the currency's conventional
// two-decimal precision. The engine itself keeps full precision; rounding
// happens only here, at the formatting edge.
func FormatMoney(price decimal.Decimal, currency string) string {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = DefaultCurrency
	}
	return price.StringFixed(2) + " " + cur
}
