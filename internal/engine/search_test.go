package engine

import (
	"testing"

	"github.com/tienoi-one/catalog-service/internal/catalog"
)

var searchProducts = []catalog.Product{
	{Name: "VinFast Evo 200", Type: "xe máy điện"},
	{Name: "Yadea Voltguard U", Type: "xe máy điện"},
	{Name: "Xiaomi Scooter 4 Pro", Type: "xe trượt điện"},
	{Name: "Giant Momentum Vida E+", Type: "xe đạp điện"},
}

// TestSearchExactType tests that a type match wins even when names also match
func TestSearchExactType(t *testing.T) {
	result := Search("xe máy điện", searchProducts)

	if result.Tier != TierExactType {
		t.Fatalf("Expected tier %s, got %s", TierExactType, result.Tier)
	}
	if len(result.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result.Results))
	}
	if result.Results[0].Name != "VinFast Evo 200" || result.Results[1].Name != "Yadea Voltguard U" {
		t.Errorf("Results out of collection order: %v", result.Results)
	}
}

// TestSearchTypeMatchIsCaseAndSpaceInsensitive tests query normalization
func TestSearchTypeMatchIsCaseAndSpaceInsensitive(t *testing.T) {
	result := Search("  XE MÁY ĐIỆN  ", searchProducts)
	if result.Tier != TierExactType {
		t.Errorf("Expected tier %s, got %s", TierExactType, result.Tier)
	}
}

// TestSearchNameSubstringFallback tests tier 2 when no type matches
func TestSearchNameSubstringFallback(t *testing.T) {
	result := Search("scooter", searchProducts)

	if result.Tier != TierNameSubstring {
		t.Fatalf("Expected tier %s, got %s", TierNameSubstring, result.Tier)
	}
	if len(result.Results) != 1 || result.Results[0].Name != "Xiaomi Scooter 4 Pro" {
		t.Errorf("Unexpected results: %v", result.Results)
	}
}

// TestSearchNoMatch tests the empty third tier
func TestSearchNoMatch(t *testing.T) {
	result := Search("ô tô điện", searchProducts)

	if result.Tier != TierNone {
		t.Fatalf("Expected tier %s, got %s", TierNone, result.Tier)
	}
	if result.Results == nil || len(result.Results) != 0 {
		t.Errorf("Expected an empty non-nil result slice, got %v", result.Results)
	}
}

// TestSearchEmptyQuery tests that whitespace-only queries resolve to no tier
func TestSearchEmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		result := Search(q, searchProducts)
		if result.Tier != TierNone {
			t.Errorf("Query %q: expected tier %s, got %s", q, TierNone, result.Tier)
		}
		if len(result.Results) != 0 {
			t.Errorf("Query %q: expected no results, got %d", q, len(result.Results))
		}
	}
}
