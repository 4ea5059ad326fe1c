package catalog

import (
	"encoding/json"
	"time"

	"github.com/pricepeek/backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Wire DTOs for the upstream catalog API. Field names in transit use the
// flattened snake_cased shape (image_url, product_url, in_stock); the
// domain model uses semantic fields regardless of wire naming.

type wireProduct struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"image_url"`
	ImageURLs    []string        `json:"image_urls"`
	LatestPrices json.RawMessage `json:"latest_prices"`
}

type wireOffer struct {
	Store      string           `json:"store"`
	Price      *decimal.Decimal `json:"price"`
	Currency   string           `json:"currency"`
	ProductURL string           `json:"product_url"`
	InStock    *bool            `json:"in_stock"`
	Timestamp  *time.Time       `json:"timestamp"`
}

// mapProduct converts a wire product to the domain model, attaching any
// embedded latest_prices.
func mapProduct(w wireProduct) domain.Product {
	return domain.Product{
		SKU:       w.SKU,
		Name:      w.Name,
		ImageURL:  w.ImageURL,
		ImageURLs: w.ImageURLs,
		Offers:    mapOffers(w.LatestPrices),
	}
}

func mapProducts(wires []wireProduct) []domain.Product {
	products := make([]domain.Product, 0, len(wires))
	for _, w := range wires {
		products = append(products, mapProduct(w))
	}
	return products
}

// mapOffers decodes a raw offer array. The upstream serves scraped data, so
// the payload is treated as best-effort: a non-array payload yields no
// offers and individually malformed records are dropped instead of aborting
// the whole response.
func mapOffers(raw json.RawMessage) []domain.RawOffer {
	if len(raw) == 0 {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	offers := make([]domain.RawOffer, 0, len(items))
	for _, item := range items {
		if offer, ok := mapOffer(item); ok {
			offers = append(offers, offer)
		}
	}
	return offers
}

// mapOffer converts one wire offer record. Records with a missing,
// unparsable, or negative price are droppable. in_stock defaults to true
// and currency to EUR when absent.
func mapOffer(raw json.RawMessage) (domain.RawOffer, bool) {
	var w wireOffer
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.RawOffer{}, false
	}
	if w.Price == nil || w.Price.IsNegative() {
		return domain.RawOffer{}, false
	}

	inStock := true
	if w.InStock != nil {
		inStock = *w.InStock
	}

	currency := w.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	offer := domain.RawOffer{
		Store:      domain.StoreCode(w.Store),
		Price:      *w.Price,
		Currency:   currency,
		ProductURL: w.ProductURL,
		InStock:    inStock,
	}
	if w.Timestamp != nil {
		offer.Timestamp = *w.Timestamp
	}
	return offer, true
}
