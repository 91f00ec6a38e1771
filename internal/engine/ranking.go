// ranking.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package engine holds the pure, in-memory catalog algorithms: popularity
// ranking, tiered search, comment relevance matching and pagination. Every
// function takes its inputs explicitly and returns plain data; nothing here
// touches the store or the network.
package engine

import (
	"sort"
	"strings"

	"github.com/tienoi-one/catalog-service/internal/catalog"
)

// DefaultFeaturedLimit caps the featured view.
const DefaultFeaturedLimit = 12

// Suggestion is one trending-type chip: a distinct product type and the raw
// aggregate click score over products of that type.
type Suggestion struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

// ComputeFeatured returns the popularity-ranked featured slice: products
// sorted descending by click count, ties keeping the original collection
// order, truncated to maxItems. The stable tie-break is a hard requirement so
// positions stay deterministic for a fixed counter state.
func ComputeFeatured(products []catalog.Product, clicks map[string]int, maxItems int) []catalog.Product {
	if maxItems <= 0 {
		maxItems = DefaultFeaturedLimit
	}

	featured := make([]catalog.Product, len(products))
	copy(featured, products)
	sort.SliceStable(featured, func(i, j int) bool {
		return clicks[featured[i].Name] > clicks[featured[j].Name]
	})

	if len(featured) > maxItems {
		featured = featured[:maxItems]
	}
	return featured
}

// TrendScore sums click counts over all products of the given type. The fixed
// display multiplier the page applies on top is a presentation concern and is
// not part of this score.
func TrendScore(productType string, products []catalog.Product, clicks map[string]int) int {
	sum := 0
	for _, p := range products {
		if p.Type == productType {
			sum += clicks[p.Name]
		}
	}
	return sum
}

// SuggestionOrder collects the distinct non-empty product types with their
// trend scores, sorted descending by score. Ties keep first-seen order among
// the distinct types in the source collection.
func SuggestionOrder(products []catalog.Product, clicks map[string]int) []Suggestion {
	seen := make(map[string]struct{})
	var suggestions []Suggestion
	for _, p := range products {
		if strings.TrimSpace(p.Type) == "" {
			continue
		}
		if _, ok := seen[p.Type]; ok {
			continue
		}
		seen[p.Type] = struct{}{}
		suggestions = append(suggestions, Suggestion{
			Type:  p.Type,
			Score: TrendScore(p.Type, products, clicks),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions
}

// RelatedProducts returns up to maxItems products sharing the given product's
// type, excluding the product itself, in collection order.
func RelatedProducts(product catalog.Product, products []catalog.Product, maxItems int) []catalog.Product {
	var related []catalog.Product
	for _, p := range products {
		if p.Type == product.Type && p.Name != product.Name {
			related = append(related, p)
			if len(related) == maxItems {
				break
			}
		}
	}
	return related
}
