package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricepeek/backend/internal/domain"
)

func TestMapProduct(t *testing.T) {
	tests := []struct {
		name string
		wire wireProduct
		want domain.Product
	}{
		{
			name: "complete product with embedded prices",
			wire: wireProduct{
				SKU:       "gj-101",
				Name:      "Apple iPhone 15 128GB Black",
				ImageURL:  "https://cdn.example.com/ip15.jpg",
				ImageURLs: []string{"https://cdn.example.com/ip15-front.jpg"},
				LatestPrices: json.RawMessage(
					`[{"store": "gjirafamall", "price": "699.00", "currency": "EUR", "in_stock": true}]`,
				),
			},
			want: domain.Product{
				SKU:       "gj-101",
				Name:      "Apple iPhone 15 128GB Black",
				ImageURL:  "https://cdn.example.com/ip15.jpg",
				ImageURLs: []string{"https://cdn.example.com/ip15-front.jpg"},
			},
		},
		{
			name: "product without prices",
			wire: wireProduct{SKU: "np-202", Name: "iPhone 15 128GB"},
			want: domain.Product{SKU: "np-202", Name: "iPhone 15 128GB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapProduct(tt.wire)

			assert.Equal(t, tt.want.SKU, got.SKU)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.ImageURL, got.ImageURL)
			assert.Equal(t, tt.want.ImageURLs, got.ImageURLs)
			if len(tt.wire.LatestPrices) == 0 {
				assert.Empty(t, got.Offers)
			} else {
				assert.NotEmpty(t, got.Offers)
			}
		})
	}
}

func TestMapOffers(t *testing.T) {
	t.Run("decodes a well-formed array", func(t *testing.T) {
		ts := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
		raw := json.RawMessage(`[
			{"store": "neptun", "price": "650.00", "currency": "EUR", "product_url": "https://neptun.example/p/1", "in_stock": true, "timestamp": "2026-08-30T14:00:00Z"},
			{"store": "tecstore", "price": "665.00", "in_stock": false}
		]`)

		offers := mapOffers(raw)

		require.Len(t, offers, 2)
		assert.Equal(t, domain.StoreCode("neptun"), offers[0].Store)
		assert.Equal(t, "650", offers[0].Price.String())
		assert.Equal(t, "EUR", offers[0].Currency)
		assert.Equal(t, "https://neptun.example/p/1", offers[0].ProductURL)
		assert.True(t, offers[0].InStock)
		assert.True(t, ts.Equal(offers[0].Timestamp))

		assert.Equal(t, domain.StoreCode("tecstore"), offers[1].Store)
		assert.False(t, offers[1].InStock)
	})

	t.Run("drops malformed records and keeps the rest", func(t *testing.T) {
		raw := json.RawMessage(`[
			{"store": "neptun", "price": "650.00"},
			{"store": "gjirafamall"},
			{"store": "aztech", "price": "not-a-number"},
			{"store": "shopaz", "price": "-10.00"},
			"just a string",
			{"store": "tecstore", "price": "660.00"}
		]`)

		offers := mapOffers(raw)

		require.Len(t, offers, 2)
		assert.Equal(t, domain.StoreCode("neptun"), offers[0].Store)
		assert.Equal(t, domain.StoreCode("tecstore"), offers[1].Store)
	})

	t.Run("non-array payload yields no offers", func(t *testing.T) {
		for _, raw := range []json.RawMessage{
			nil,
			json.RawMessage(``),
			json.RawMessage(`null`),
			json.RawMessage(`{"detail": "error"}`),
			json.RawMessage(`"oops"`),
		} {
			assert.Empty(t, mapOffers(raw))
		}
	})
}

func TestMapOffer_Defaults(t *testing.T) {
	t.Run("in_stock defaults to true", func(t *testing.T) {
		offer, ok := mapOffer(json.RawMessage(`{"store": "neptun", "price": "100.00"}`))
		require.True(t, ok)
		assert.True(t, offer.InStock)
	})

	t.Run("explicit in_stock false is kept", func(t *testing.T) {
		offer, ok := mapOffer(json.RawMessage(`{"store": "neptun", "price": "100.00", "in_stock": false}`))
		require.True(t, ok)
		assert.False(t, offer.InStock)
	})

	t.Run("currency defaults when missing", func(t *testing.T) {
		offer, ok := mapOffer(json.RawMessage(`{"store": "neptun", "price": "100.00"}`))
		require.True(t, ok)
		assert.Equal(t, domain.DefaultCurrency, offer.Currency)
	})

	t.Run("zero price is a valid observation", func(t *testing.T) {
		offer, ok := mapOffer(json.RawMessage(`{"store": "neptun", "price": "0"}`))
		require.True(t, ok)
		assert.True(t, offer.Price.IsZero())
	})

	t.Run("missing price drops the record", func(t *testing.T) {
		_, ok := mapOffer(json.RawMessage(`{"store": "neptun"}`))
		assert.False(t, ok)
	})

	t.Run("negative price drops the record", func(t *testing.T) {
		_, ok := mapOffer(json.RawMessage(`{"store": "neptun", "price": "-1.00"}`))
		assert.False(t, ok)
	})
}
