// admin.go
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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tienoi-one/catalog-service/internal/catalog"
	"github.com/tienoi-one/catalog-service/internal/session"
	"github.com/tienoi-one/catalog-service/internal/store"
	"github.com/tienoi-one/catalog-service/internal/types"
	"github.com/tienoi-one/catalog-service/internal/utils"
)

// AdminHandler handles catalog mutation routes
type AdminHandler struct {
	Session *session.Session
}

// UpsertProducts handles POST /api/admin/products
// @Summary Upsert products
// @Description Replace products with matching names in place and prepend the rest. The result becomes the managed catalog.
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body object true "Products to upsert, with optional expected version"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/products [post]
func (h *AdminHandler) UpsertProducts(c *fiber.Ctx) error {
	var body struct {
		Version  types.FlexUint64                `json:"version"`
		Products types.FlexList[json.RawMessage] `json:"products"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "admin.validation.input")
	}
	items := body.Products.Slice()
	if len(items) == 0 {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "admin.validation.input")
	}

	incoming := make([]catalog.Product, 0, len(items))
	for _, raw := range items {
		var shape map[string]any
		if err := json.Unmarshal(raw, &shape); err != nil || !catalog.ValidProduct(shape) {
			return utils.ErrorResponse(c, "Invalid product", fiber.StatusBadRequest, "admin.validation.product")
		}
		var product catalog.Product
		if err := json.Unmarshal(raw, &product); err != nil {
			return utils.ErrorResponse(c, "Invalid product", fiber.StatusBadRequest, "admin.validation.product")
		}
		incoming = append(incoming, product)
	}

	newVersion, err := h.Session.UpsertProducts(incoming, body.Version.Uint64())
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return utils.VersionErrorResponse(c)
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "upsertProducts")
	}

	return utils.MutationSuccessResponse(c, newVersion, int64(len(incoming)))
}

// DeleteProduct handles DELETE /api/admin/products/:name
// @Summary Delete a product
// @Description Remove a product by name from the managed catalog
// @Tags Admin
// @Accept json
// @Produce json
// @Param name path string true "Product name"
// @Param body body object false "Optional expected version"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/products/{name} [delete]
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	name := paramName(c, "name")

	var body struct {
		Version types.FlexUint64 `json:"version"`
	}
	// An empty body means no version check.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "admin.validation.input")
		}
	}

	found, newVersion, err := h.Session.RemoveProduct(name, body.Version.Uint64())
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			return utils.VersionErrorResponse(c)
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteProduct")
	}
	if !found {
		return utils.NotFoundResponse(c, fmt.Sprintf("Product '%s' not found", name))
	}

	return utils.MutationSuccessResponse(c, newVersion, 1)
}
