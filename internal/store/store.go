// store.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package store is the durable per-profile key/value layer behind the catalog
// page: recent searches, recently viewed products, click counters and the
// admin-managed product override. Corrupted entries are treated as absent and
// proactively erased so they do not fail on every read. Every read-modify-write
// runs inside a single transaction per key.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/tienoi-one/catalog-service/internal/catalog"
	"github.com/tienoi-one/catalog-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// Persisted keys. These mirror the browser origin's localStorage slots.
const (
	KeyRecentSearches  = "recent_searches"
	KeyRecentlyViewed  = "recently_viewed"
	KeyProductClicks   = "product_clicks"
	KeyManagedProducts = "managed_products"
	KeyCatalogVersion  = "catalog_version"
)

// ErrVersionConflict is returned when a managed-catalog write carries a stale
// expected version.
var ErrVersionConflict = errors.New("E_VERSION - Refresh and reconcile with current version and retry.")

// History sequences keep at most this many entries, most recent first.
const MaxRecent = 5

// Store is the persistent key/value store.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get reads a key into out and reports whether a usable value was found. A
// value that fails to decode is logged, erased, and reported as absent; out is
// left untouched in that case so the caller's default survives.
func (s *Store) Get(key string, out any) bool {
	return s.get(s.db, key, out)
}

// Set writes a key. A failed write leaves the prior state untouched and
// returns the error; callers surface it as a non-fatal warning.
func (s *Store) Set(key string, value any) error {
	return s.set(s.db, key, value)
}

// RecentSearches returns the recorded queries, most recent first.
func (s *Store) RecentSearches() []string {
	searches := []string{}
	s.Get(KeyRecentSearches, &searches)
	return searches
}

// SaveRecentSearch records a query: case-insensitive de-dup against existing
// entries, push to front, truncate to MaxRecent.
func (s *Store) SaveRecentSearch(query string) error {
	if query == "" {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		searches := []string{}
		s.get(lockForUpdate(tx), KeyRecentSearches, &searches)

		kept := make([]string, 0, len(searches)+1)
		kept = append(kept, query)
		for _, q := range searches {
			if !strings.EqualFold(q, query) {
				kept = append(kept, q)
			}
		}
		if len(kept) > MaxRecent {
			kept = kept[:MaxRecent]
		}
		return s.set(tx, KeyRecentSearches, kept)
	})
}

// RecentlyViewed returns the recorded product snapshots, most recent first.
func (s *Store) RecentlyViewed() []catalog.Product {
	viewed := []catalog.Product{}
	s.Get(KeyRecentlyViewed, &viewed)
	return viewed
}

// SaveRecentlyViewed records a full product snapshot: de-dup by name, push to
// front, truncate to MaxRecent.
func (s *Store) SaveRecentlyViewed(product catalog.Product) error {
	if product.Name == "" {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		viewed := []catalog.Product{}
		s.get(lockForUpdate(tx), KeyRecentlyViewed, &viewed)

		kept := make([]catalog.Product, 0, len(viewed)+1)
		kept = append(kept, product)
		for _, p := range viewed {
			if p.Name != product.Name {
				kept = append(kept, p)
			}
		}
		if len(kept) > MaxRecent {
			kept = kept[:MaxRecent]
		}
		return s.set(tx, KeyRecentlyViewed, kept)
	})
}

// ClickCounts returns the full product click counter map.
func (s *Store) ClickCounts() map[string]int {
	clicks := map[string]int{}
	s.Get(KeyProductClicks, &clicks)
	return clicks
}

// ClickCount returns the click count for one product, defaulting to zero.
func (s *Store) ClickCount(productName string) int {
	return s.ClickCounts()[productName]
}

// IncrementClick adds one visit to a product's counter and returns the new
// count. Counters only ever grow; there is no decrement.
func (s *Store) IncrementClick(productName string) (int, error) {
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		clicks := map[string]int{}
		s.get(lockForUpdate(tx).Clauses(hints.Comment("select", "click-increment")), KeyProductClicks, &clicks)

		count = clicks[productName] + 1
		clicks[productName] = count
		return s.set(tx, KeyProductClicks, clicks)
	})
	return count, err
}

// ManagedProducts returns the admin-managed catalog override, or nil when no
// override exists. An empty stored collection counts as no override.
func (s *Store) ManagedProducts() []catalog.Product {
	products := []catalog.Product{}
	if !s.Get(KeyManagedProducts, &products) || len(products) == 0 {
		return nil
	}
	return products
}

// CatalogVersion returns the managed catalog's write version, zero before the
// first admin mutation.
func (s *Store) CatalogVersion() uint64 {
	var version uint64
	s.Get(KeyCatalogVersion, &version)
	return version
}

// SaveManagedProducts replaces the catalog override with the full collection
// and bumps the catalog version. A non-zero expectedVersion that does not
// match the stored version fails with ErrVersionConflict and writes nothing.
func (s *Store) SaveManagedProducts(products []catalog.Product, expectedVersion uint64) (uint64, error) {
	var newVersion uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current uint64
		s.get(lockForUpdate(tx), KeyCatalogVersion, &current)
		if expectedVersion != 0 && expectedVersion != current {
			return ErrVersionConflict
		}

		if err := s.set(tx, KeyManagedProducts, products); err != nil {
			return err
		}
		newVersion = current + 1
		return s.set(tx, KeyCatalogVersion, newVersion)
	})
	return newVersion, err
}

// AppendAudit records an admin catalog mutation.
func (s *Store) AppendAudit(action, productName string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode audit payload: %w", err)
	}
	audit := models.AdminAudit{
		AuditID:     uuid.New().String(),
		Action:      action,
		ProductName: productName,
	}
	audit.Payload.JSON = raw
	return s.db.Create(&audit).Error
}

func (s *Store) get(db *gorm.DB, key string, out any) bool {
	var entry models.StoreEntry
	if err := db.Where("entry_key = ?", key).First(&entry).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Could not read store key %q: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(entry.EntryValue.JSON, out); err != nil {
		log.Printf("Could not parse store key %q, clearing corrupted entry: %v", key, err)
		if delErr := db.Delete(&models.StoreEntry{}, "entry_key = ?", key).Error; delErr != nil {
			log.Printf("Could not clear corrupted store key %q: %v", key, delErr)
		}
		return false
	}
	return true
}

func (s *Store) set(db *gorm.DB, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode store key %q: %w", key, err)
	}

	entry := models.StoreEntry{EntryKey: key}
	entry.EntryValue.JSON = raw
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
}

// lockForUpdate adds row locking on engines that support it. SQLite has no
// FOR UPDATE syntax; its transactions serialize writers anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
