// common.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package handlers

import (
	"math"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageSize is the featured grid's page size when the client does not
// ask for one.
const DefaultPageSize = 6

// TrendDisplayFactor scales the raw trend score for display; the ranking
// itself always orders by the raw score.
const TrendDisplayFactor = 1.6

// parsePage extracts a positive page number from the query, defaulting to 1.
// Out-of-range values are clamped downstream against the real page count, so
// only non-numeric and non-positive input falls back here.
func parsePage(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parsePageSize extracts a positive page size from the query.
func parsePageSize(c *fiber.Ctx, fallback int) int {
	size, err := strconv.Atoi(c.Query("pageSize", strconv.Itoa(fallback)))
	if err != nil || size < 1 {
		return fallback
	}
	return size
}

// paramName extracts a product name or slug path segment, undoing the
// percent-encoding Vietnamese names arrive with.
func paramName(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// displayScore converts a raw trend score to its displayed value.
func displayScore(raw int) int {
	return int(math.Round(float64(raw) * TrendDisplayFactor))
}
