// session.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package session owns the in-memory catalog state served by the handlers.
// Products are loaded on the critical path at startup; articles and comments
// arrive from background loads and the page degrades gracefully until they do.
// An admin-managed product collection in the store takes precedence over the
// remote source on every boot.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/tienoi-one/catalog-service/internal/catalog"
	"github.com/tienoi-one/catalog-service/internal/loader"
	"github.com/tienoi-one/catalog-service/internal/store"
)

// Audit actions recorded on admin catalog mutations.
const (
	AuditUpsert = "upsert"
	AuditDelete = "delete"
)

// Session holds the live catalog collections.
type Session struct {
	mu       sync.RWMutex
	products []catalog.Product
	articles []catalog.Article
	comments []catalog.Comment

	store *store.Store
}

// New creates an empty session backed by the given store.
func New(st *store.Store) *Session {
	return &Session{store: st}
}

// Bootstrap fills the session from the managed override when one exists,
// falling back to the loader's product source. Articles and comments are
// fetched concurrently in the background; Bootstrap returns as soon as
// products are available.
func (s *Session) Bootstrap(ctx context.Context, l *loader.Loader) {
	if managed := s.store.ManagedProducts(); managed != nil {
		log.Printf("Serving %d admin-managed products", len(managed))
		s.SetProducts(managed)
	} else {
		s.SetProducts(l.LoadProducts(ctx))
	}

	go func() {
		s.SetArticles(l.LoadArticles(ctx))
	}()
	go func() {
		s.SetComments(l.LoadComments(ctx))
	}()
}

// Products returns a copy of the current product collection.
func (s *Session) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Product(nil), s.products...)
}

// SetProducts replaces the product collection.
func (s *Session) SetProducts(products []catalog.Product) {
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

// SetArticles replaces the article collection.
func (s *Session) SetArticles(articles []catalog.Article) {
	s.mu.Lock()
	s.articles = articles
	s.mu.Unlock()
}

// SetComments replaces the comment collection.
func (s *Session) SetComments(comments []catalog.Comment) {
	s.mu.Lock()
	s.comments = comments
	s.mu.Unlock()
}

// Articles returns a copy of the current article collection.
func (s *Session) Articles() []catalog.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Article(nil), s.articles...)
}

// Comments returns a copy of the current comment collection.
func (s *Session) Comments() []catalog.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Comment(nil), s.comments...)
}

// ProductByName looks up a product by exact name.
func (s *Session) ProductByName(name string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Name == name {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// ArticleBySlug looks up an article by its slug.
func (s *Session) ArticleBySlug(slug string) (catalog.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			return a, true
		}
	}
	return catalog.Article{}, false
}

// UpsertProducts replaces each existing product with the same name in place
// and prepends the rest, preserving the incoming order among new products.
// The full resulting collection becomes the managed override. A non-zero
// expectedVersion guards against concurrent admin writes. The mutex is held
// across the store write so memory never diverges from the persisted
// override.
func (s *Session) UpsertProducts(incoming []catalog.Product, expectedVersion uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]catalog.Product(nil), s.products...)
	fresh := make([]catalog.Product, 0, len(incoming))
	for _, product := range incoming {
		replaced := false
		for i, p := range next {
			if p.Name == product.Name {
				next[i] = product
				replaced = true
				break
			}
		}
		if !replaced {
			fresh = append(fresh, product)
		}
	}
	next = append(fresh, next...)

	newVersion, err := s.store.SaveManagedProducts(next, expectedVersion)
	if err != nil {
		return 0, err
	}
	s.products = next

	for _, product := range incoming {
		if err := s.store.AppendAudit(AuditUpsert, product.Name, product); err != nil {
			log.Printf("Could not record audit for %q: %v", product.Name, err)
		}
	}
	return newVersion, nil
}

// RemoveProduct deletes a product by name and reports whether it existed. The
// shrunk collection becomes the managed override.
func (s *Session) RemoveProduct(name string, expectedVersion uint64) (bool, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]catalog.Product, 0, len(s.products))
	removed := false
	for _, p := range s.products {
		if !removed && p.Name == name {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, 0, nil
	}

	newVersion, err := s.store.SaveManagedProducts(kept, expectedVersion)
	if err != nil {
		return true, 0, err
	}
	s.products = kept

	if err := s.store.AppendAudit(AuditDelete, name, nil); err != nil {
		log.Printf("Could not record audit for %q: %v", name, err)
	}
	return true, newVersion, nil
}

// CatalogVersion exposes the managed catalog's current write version.
func (s *Session) CatalogVersion() uint64 {
	return s.store.CatalogVersion()
}
