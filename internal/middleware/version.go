// version.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// VersionHeader carries the catalog API version a client was built against.
	VersionHeader = "X-Api-Version"

	// CurrentAPIVersion is assumed when a client sends no version header.
	CurrentAPIVersion = "1.0.0"
)

// APIVersion returns the negotiated catalog API version for the request, or
// CurrentAPIVersion when the middleware did not run.
func APIVersion(c *fiber.Ctx) string {
	if v, ok := c.Locals("apiVersion").(string); ok {
		return v
	}
	return CurrentAPIVersion
}

// VersionMiddleware negotiates the catalog API version: it normalizes the
// client's X-Api-Version header, stores the result in request locals and
// echoes it on the response so clients can detect a server-side upgrade.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get(VersionHeader, CurrentAPIVersion)

		// Support version aliases
		if version == "1.0" {
			version = CurrentAPIVersion
		}

		c.Locals("apiVersion", version)
		c.Set(VersionHeader, version)

		return c.Next()
	}
}
