package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreCode is the canonical identifier for a retailer after alias
// normalization (e.g. "Gjirafa Mall" and "gjirafamall" both map to
// StoreGjirafaMall).
type StoreCode string

// Canonical codes for the retailers the scrapers cover.
const (
	StoreGjirafaMall StoreCode = "gjirafamall"
	StoreNeptun      StoreCode = "neptun"
	StoreTecStore    StoreCode = "tecstore"
	StoreAztech      StoreCode = "aztech"
	StoreShopAz      StoreCode = "shopaz"
)

// RawOffer is a single price observation from one retailer for one listing.
// Price is only meaningful when InStock is true; an out-of-stock offer must
// never be selected as a retailer's best price.
type RawOffer struct {
	Store      StoreCode       `json:"store"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency,omitempty"`
	ProductURL string          `json:"productUrl,omitempty"`
	InStock    bool            `json:"inStock"`
	Timestamp  time.Time       `json:"timestamp,omitzero"`
}

// Product is a catalog item as delivered by the upstream API. SKU is unique
// per catalog entry but NOT across the comparison grouping: two SKUs from
// different retailers may represent the same physical product.
type Product struct {
	SKU       string     `json:"sku"`
	Name      string     `json:"name"`
	ImageURL  string     `json:"imageUrl,omitempty"`
	ImageURLs []string   `json:"imageUrls,omitempty"`
	Offers    []RawOffer `json:"offers"`
}

// Image returns the product's primary image URL, falling back to the first
// entry of the gallery list.
func (p Product) Image() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return ""
}
