// relevance.go
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
	"math/rand"
	"strings"

	"github.com/tienoi-one/catalog-service/internal/catalog"
)

// CommentsPerPage is the default density of the comments tab.
const CommentsPerPage = 5

// RelevantComments filters the comment collection to those relevant to the
// product: the comment's type must equal the product's type (trimmed,
// case-insensitive) AND the comment text must contain at least one keyword
// from the product's name. Keyword containment is substring, not whole-word;
// short keywords can match inside unrelated words, which is the page's
// long-standing behavior.
func RelevantComments(product catalog.Product, comments []catalog.Comment) []catalog.Comment {
	productTypeLower := strings.ToLower(strings.TrimSpace(product.Type))
	if productTypeLower == "" {
		return nil
	}

	keywords := strings.Fields(strings.ToLower(strings.TrimSpace(product.Name)))
	if len(keywords) == 0 {
		return nil
	}

	var relevant []catalog.Comment
	for _, c := range comments {
		if strings.ToLower(strings.TrimSpace(c.ProductType)) != productTypeLower {
			continue
		}
		textLower := strings.ToLower(c.Text)
		for _, keyword := range keywords {
			if strings.Contains(textLower, keyword) {
				relevant = append(relevant, c)
				break
			}
		}
	}
	return relevant
}

// Shuffle returns an unbiased Fisher-Yates permutation of the comments. The
// source is injectable for tests; a nil source uses the shared default, which
// is the unseeded production behavior.
func Shuffle(comments []catalog.Comment, src rand.Source) []catalog.Comment {
	intn := rand.Intn
	if src != nil {
		intn = rand.New(src).Intn
	}

	shuffled := make([]catalog.Comment, len(comments))
	copy(shuffled, comments)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// PaginateComments pages a shuffled comment set with the same clamp rule as
// Paginate.
func PaginateComments(shuffled []catalog.Comment, pageSize, page int) Page[catalog.Comment] {
	if pageSize <= 0 {
		pageSize = CommentsPerPage
	}
	return Paginate(shuffled, pageSize, page)
}
