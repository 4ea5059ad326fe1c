package usecase

import (
	"strings"

	"github.com/pricepeek/backend/internal/domain"
)

// storeAlias maps a substring found in raw retailer labels to a canonical
// store code. Scraped labels are noisy ("Gjirafa Mall", "gjirafamall",
// "Neptun KS"), so recognition is by case- and whitespace-insensitive
// containment.
type storeAlias struct {
	pattern string
	code    domain.StoreCode
}

// storeAliases is ordered; the first matching pattern wins.
var storeAliases = []storeAlias{
	{"gjirafa", domain.StoreGjirafaMall},
	{"neptun", domain.StoreNeptun},
	{"tecstore", domain.StoreTecStore},
	{"aztech", domain.StoreAztech},
	{"shopaz", domain.StoreShopAz},
}

// storeLabels are the human display names for known retailers.
var storeLabels = map[domain.StoreCode]string{
	domain.StoreGjirafaMall: "GjirafaMall",
	domain.StoreNeptun:      "Neptun KS",
	domain.StoreTecStore:    "TecStore",
	domain.StoreAztech:      "Aztech",
	domain.StoreShopAz:      "ShopAz",
}

// NormalizeStoreCode resolves a raw retailer label to its canonical store
// code. Unrecognized retailers normalize to a lower-cased,
// whitespace-stripped version of themselves so callers can still opt into
// comparing them by naming that code in the relevant-store set.
func NormalizeStoreCode(raw string) domain.StoreCode {
	if raw == "" {
		return ""
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(raw)), "")
	for _, alias := range storeAliases {
		if strings.Contains(normalized, alias.pattern) {
			return alias.code
		}
	}
	return domain.StoreCode(normalized)
}

// StoreLabel returns the display name for a store code, falling back to the
// code itself for retailers outside the alias table.
func StoreLabel(code domain.StoreCode) string {
	if label, ok := storeLabels[code]; ok {
		return label
	}
	return string(code)
}

// KnownStoreCodes lists every canonical retailer code, in alias-table order.
func KnownStoreCodes() []domain.StoreCode {
	codes := make([]domain.StoreCode, 0, len(storeAliases))
	for _, alias := range storeAliases {
		codes = append(codes, alias.code)
	}
	return codes
}
