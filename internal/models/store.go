// store.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package models

import (
	"time"
)

// StoreEntry is one durable key/value pair of the persistent store. The value
// is always a JSON document; readers treat an undecodable value as absent.
type StoreEntry struct {
	EntryKey   string `gorm:"primaryKey;size:255"`
	EntryValue JSON   `gorm:"type:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for StoreEntry
func (StoreEntry) TableName() string {
	return "store_entries"
}

// AdminAudit records one admin catalog mutation.
type AdminAudit struct {
	AuditID     string `gorm:"primaryKey;type:char(36)"`
	Action      string `gorm:"size:32;not null"`
	ProductName string `gorm:"size:255;not null"`
	Payload     JSON   `gorm:"type:json"`
	CreatedAt   time.Time
}

// TableName overrides the table name for AdminAudit
func (AdminAudit) TableName() string {
	return "admin_audits"
}
