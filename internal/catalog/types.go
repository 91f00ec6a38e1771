// types.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package catalog

import "strings"

// Product is a catalog entry. Name is the identity key: non-empty, unique
// within a collection, and edits always replace by name, never by position.
type Product struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Price             string `json:"price"`
	Link              string `json:"link"`
	Image             string `json:"image"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	DescriptionDetail string `json:"description_detail,omitempty"`
	ButtonText        string `json:"button_text,omitempty"`
}

// Article is a blog entry, deep-linked by slug.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	ImageURL    string `json:"imageURL"`
	Content     string `json:"content"`
}

// Comment is display-only feedback eligible for products whose type matches.
type Comment struct {
	ProductType string `json:"product_type"`
	Author      string `json:"author"`
	Text        string `json:"text"`
	Date        string `json:"date,omitempty"`
}

// ExpertAdvice is the structured payload of the advice generator.
type ExpertAdvice struct {
	Advantages     []string `json:"advantages"`
	Considerations []string `json:"considerations"`
	Summary        string   `json:"summary"`
}

// Validators check fetched records against the shape contracts before they
// are admitted into a collection. They operate on the raw decoded object so a
// field that is absent or has the wrong JSON type disqualifies the record,
// while an empty string is acceptable everywhere but the identity fields.

// ValidProduct requires a non-empty trimmed name plus string-typed
// description, price, link, image and type fields.
func ValidProduct(item map[string]any) bool {
	return nonEmptyString(item, "name") &&
		isString(item, "description") &&
		isString(item, "price") &&
		isString(item, "link") &&
		isString(item, "image") &&
		isString(item, "type")
}

// ValidArticle requires a non-empty trimmed title and slug plus string-typed
// imageURL and content fields.
func ValidArticle(item map[string]any) bool {
	return nonEmptyString(item, "title") &&
		nonEmptyString(item, "slug") &&
		isString(item, "imageURL") &&
		isString(item, "content")
}

// ValidComment requires a non-empty trimmed product_type plus string-typed
// author and text fields.
func ValidComment(item map[string]any) bool {
	return nonEmptyString(item, "product_type") &&
		isString(item, "author") &&
		isString(item, "text")
}

func isString(item map[string]any, key string) bool {
	_, ok := item[key].(string)
	return ok
}

func nonEmptyString(item map[string]any, key string) bool {
	s, ok := item[key].(string)
	return ok && strings.TrimSpace(s) != ""
}
