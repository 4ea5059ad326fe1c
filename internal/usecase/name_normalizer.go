package usecase

import (
	"regexp"
	"strings"

	"github.com/pricepeek/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	numericTokenRegex = regexp.MustCompile(`^\d+$`)

	// Matches a storage capacity anywhere in the title, e.g. "256GB", "64 gb", "1TB"
	storageRegex = regexp.MustCompile(`(?i)(\d+)\s?(gb|tb)`)

	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

// variantMarkers are the fixed model-variant tokens consumed after the model
// number. Consumption stops at the first non-marker token, so markers keep
// the order they were found in ("Pro Max" never becomes "Max Pro").
var variantMarkers = map[string]bool{
	"pro":  true,
	"max":  true,
	"plus": true,
	"mini": true,
	"air":  true,
	"se":   true,
}

// NameNormalizer canonicalizes free-text product titles into a comparable
// grouping key and a display-friendly simplified name. Retailers surround
// titles with brand names, colors, carrier info and marketing text in
// inconsistent order; only the tokens that identify which phone it is
// survive, so the same physical product collapses to one key across shops.
type NameNormalizer struct{}

// NewNameNormalizer creates a new name normalizer
func NewNameNormalizer() *NameNormalizer {
	return &NameNormalizer{}
}

// Normalize maps a possibly noisy product title to a NormalizedName. It is
// deterministic, locale-invariant, and never fails: titles without a phone
// anchor token pass through verbatim, and an empty title yields empty fields.
func (n *NameNormalizer) Normalize(rawName string) domain.NormalizedName {
	collapsed := strings.ReplaceAll(rawName, ",", " ")
	collapsed = multiSpaceRegex.ReplaceAllString(collapsed, " ")
	collapsed = strings.TrimSpace(collapsed)
	if collapsed == "" {
		return domain.NormalizedName{}
	}

	tokens := strings.Fields(collapsed)
	anchor := -1
	for i, token := range tokens {
		if strings.EqualFold(token, "iphone") {
			anchor = i
			break
		}
	}
	if anchor == -1 {
		return domain.NormalizedName{
			CanonicalKey:   strings.ToLower(collapsed),
			SimplifiedName: collapsed,
		}
	}

	// Keep the retailer's own casing of the anchor token ("iPhone", "IPHONE").
	parts := []string{tokens[anchor]}
	idx := anchor + 1

	// Model number immediately after the anchor, e.g. "15", "17".
	if idx < len(tokens) && numericTokenRegex.MatchString(tokens[idx]) {
		parts = append(parts, tokens[idx])
		idx++
	}

	for idx < len(tokens) && variantMarkers[strings.ToLower(tokens[idx])] {
		parts = append(parts, tokens[idx])
		idx++
	}

	// Storage can appear before the model line in some titles, so scan the
	// whole collapsed string rather than the consumed tokens.
	if m := storageRegex.FindStringSubmatch(collapsed); m != nil {
		parts = append(parts, m[1]+strings.ToUpper(m[2]))
	}

	simplified := strings.Join(parts, " ")
	return domain.NormalizedName{
		CanonicalKey:   strings.ToLower(simplified),
		SimplifiedName: simplified,
	}
}
