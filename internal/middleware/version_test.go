// version_test.go
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
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// TestVersionMiddleware tests version negotiation, aliasing and the response echo.
func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(VersionMiddleware())

	var seen string
	app.Get("/probe", func(c *fiber.Ctx) error {
		seen = APIVersion(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"default when absent", "", "1.0.0"},
		{"alias normalized", "1.0", "1.0.0"},
		{"explicit version kept", "1.1.0", "1.1.0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/probe", nil)
			if tc.header != "" {
				req.Header.Set(VersionHeader, tc.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if seen != tc.want {
				t.Errorf("expected negotiated version %q, got %q", tc.want, seen)
			}
			if got := resp.Header.Get(VersionHeader); got != tc.want {
				t.Errorf("expected echoed header %q, got %q", tc.want, got)
			}
		})
	}
}

// TestAPIVersionWithoutMiddleware tests the fallback when the middleware did not run.
func TestAPIVersionWithoutMiddleware(t *testing.T) {
	app := fiber.New()

	var seen string
	app.Get("/bare", func(c *fiber.Ctx) error {
		seen = APIVersion(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/bare", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if seen != CurrentAPIVersion {
		t.Errorf("expected fallback version %q, got %q", CurrentAPIVersion, seen)
	}
}
