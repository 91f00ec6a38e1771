// data.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package helpers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/tienoi-one/catalog-service/internal/catalog"
	"github.com/tienoi-one/catalog-service/internal/models"
	"gorm.io/gorm"
)

// TestProducts builds a small complete product collection
func TestProducts(count int) []catalog.Product {
	products := make([]catalog.Product, 0, count)
	for i := 0; i < count; i++ {
		products = append(products, catalog.Product{
			Name:        fmt.Sprintf("Product %d", i),
			Description: "mô tả",
			Price:       fmt.Sprintf("%d.000.000₫", i+1),
			Link:        fmt.Sprintf("https://tienoi.one/p/%d", i),
			Image:       fmt.Sprintf("https://cdn.tienoi.one/p/%d.webp", i),
			Type:        "xe máy điện",
		})
	}
	return products
}

// CreateStoreEntry writes a raw store entry, bypassing the Store layer
func CreateStoreEntry(t *testing.T, db *gorm.DB, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("Failed to marshal store value: %v", err)
	}

	entry := models.StoreEntry{EntryKey: key}
	entry.EntryValue.JSON = raw
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to create store entry: %v", err)
	}
}

// CorruptStoreEntry plants an undecodable value under a key
func CorruptStoreEntry(t *testing.T, db *gorm.DB, key string) {
	entry := models.StoreEntry{EntryKey: key}
	entry.EntryValue.JSON = []byte(`{broken`)
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to corrupt store entry: %v", err)
	}
}
