// loader.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package loader fetches the three catalog collections from their configured
// sources. Transient failures are retried with a linear backoff; exhausted
// retries degrade to an empty collection instead of failing the caller.
// Records that violate their shape contract are dropped individually.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tienoi-one/catalog-service/data"
	"github.com/tienoi-one/catalog-service/internal/catalog"
)

// Collection source paths, relative to the configured base URL. The same
// paths key the bundled seed documents.
const (
	PathProducts = "/products.json"
	PathArticles = "/blog.json"
	PathComments = "/comments.json"
)

// Loader fetches catalog collections. An empty BaseURL selects the bundled
// seed documents instead of the network.
type Loader struct {
	BaseURL   string
	Client    *http.Client
	Retries   int
	BaseDelay time.Duration

	// CacheFirst lets intermediaries serve cached copies (production); when
	// false every fetch demands a fresh response.
	CacheFirst bool
}

// New creates a Loader with the default HTTP client.
func New(baseURL string, retries int, baseDelay time.Duration, cacheFirst bool) *Loader {
	return &Loader{
		BaseURL:    baseURL,
		Client:     &http.Client{Timeout: 15 * time.Second},
		Retries:    retries,
		BaseDelay:  baseDelay,
		CacheFirst: cacheFirst,
	}
}

// LoadProducts fetches and validates the product collection.
func (l *Loader) LoadProducts(ctx context.Context) []catalog.Product {
	return fetchCollection[catalog.Product](ctx, l, PathProducts, catalog.ValidProduct)
}

// LoadArticles fetches and validates the article collection.
func (l *Loader) LoadArticles(ctx context.Context) []catalog.Article {
	return fetchCollection[catalog.Article](ctx, l, PathArticles, catalog.ValidArticle)
}

// LoadComments fetches and validates the comment collection.
func (l *Loader) LoadComments(ctx context.Context) []catalog.Comment {
	return fetchCollection[catalog.Comment](ctx, l, PathComments, catalog.ValidComment)
}

// fetchCollection retrieves one JSON array resource, retrying transient
// failures up to l.Retries attempts with a linearly increasing delay. A body
// whose top level is not an array counts as a failure. After all retries are
// exhausted it returns an empty slice; the caller treats that as "no data
// available", never as an error.
func fetchCollection[T any](ctx context.Context, l *Loader, path string, validator func(map[string]any) bool) []T {
	if l.BaseURL == "" {
		raw, err := data.Seed(path)
		if err != nil {
			log.Printf("No bundled data for %s: %v", path, err)
			return []T{}
		}
		items, err := decodeCollection[T](raw, path, validator)
		if err != nil {
			log.Printf("Bundled data for %s is unusable: %v", path, err)
			return []T{}
		}
		return items
	}

	url := l.BaseURL + path
	for attempt := 1; attempt <= l.Retries; attempt++ {
		items, err := fetchOnce[T](ctx, l, url, validator)
		if err == nil {
			return items
		}

		log.Printf("Fetch attempt %d/%d failed for %s: %v", attempt, l.Retries, url, err)
		if attempt < l.Retries {
			select {
			case <-time.After(l.BaseDelay * time.Duration(attempt)):
			case <-ctx.Done():
				log.Printf("Fetch canceled for %s, returning empty collection", url)
				return []T{}
			}
		}
	}

	log.Printf("All retry attempts failed for %s, returning empty collection", url)
	return []T{}
}

func fetchOnce[T any](ctx context.Context, l *Loader, url string, validator func(map[string]any) bool) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if !l.CacheFirst {
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return decodeCollection[T](body, url, validator)
}

// decodeCollection decodes a JSON array and filters each element through the
// shape validator. Invalid elements are dropped with a warning; only a
// non-array top level fails the whole decode.
func decodeCollection[T any](body []byte, source string, validator func(map[string]any) bool) ([]T, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(body, &rawItems); err != nil {
		return nil, fmt.Errorf("fetched data is not an array: %w", err)
	}

	items := make([]T, 0, len(rawItems))
	for _, raw := range rawItems {
		var shape map[string]any
		if err := json.Unmarshal(raw, &shape); err != nil || !validator(shape) {
			log.Printf("Invalid record filtered out of %s: %s", source, raw)
			continue
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Printf("Invalid record filtered out of %s: %s", source, raw)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
