// search.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package engine

import (
	"strings"

	"github.com/tienoi-one/catalog-service/internal/catalog"
)

// Tier identifies which fallback stage of the search produced the result set.
type Tier string

const (
	TierExactType     Tier = "EXACT_TYPE"
	TierNameSubstring Tier = "NAME_SUBSTRING"
	TierNone          Tier = "NONE"
)

// SearchResult is the outcome of one resolved query.
type SearchResult struct {
	Tier    Tier              `json:"tier"`
	Results []catalog.Product `json:"results"`
}

// Search resolves a free-text query against the product collection using the
// three-tier fallback: exact type match, then name substring match, then an
// empty result. Results stay in original collection order. An empty trimmed
// query is "no active query" and must be handled by the caller before this
// point (the page shows the featured view instead of a search).
func Search(query string, products []catalog.Product) SearchResult {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	if lowerQuery == "" {
		return SearchResult{Tier: TierNone, Results: []catalog.Product{}}
	}

	// Tier 1: exact match on product type
	var matched []catalog.Product
	for _, p := range products {
		if strings.ToLower(strings.TrimSpace(p.Type)) == lowerQuery {
			matched = append(matched, p)
		}
	}
	if len(matched) > 0 {
		return SearchResult{Tier: TierExactType, Results: matched}
	}

	// Tier 2: substring match within the product name
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lowerQuery) {
			matched = append(matched, p)
		}
	}
	if len(matched) > 0 {
		return SearchResult{Tier: TierNameSubstring, Results: matched}
	}

	return SearchResult{Tier: TierNone, Results: []catalog.Product{}}
}
