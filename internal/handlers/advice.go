// advice.go
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
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tienoi-one/catalog-service/internal/advice"
	"github.com/tienoi-one/catalog-service/internal/catalog"
	"github.com/tienoi-one/catalog-service/internal/utils"
)

// AdviceHandler handles the expert advice route
type AdviceHandler struct {
	// Generator may be nil when no API key is configured; the route then
	// serves the degraded message.
	Generator *advice.Generator
}

// GenerateAdvice handles POST /api/generate-advice
// @Summary Generate expert product advice
// @Description Generate a structured Vietnamese product analysis for the given product
// @Tags Advice
// @Accept json
// @Produce json
// @Param body body object true "Product to analyze"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /generate-advice [post]
func (h *AdviceHandler) GenerateAdvice(c *fiber.Ctx) error {
	var body struct {
		Product json.RawMessage `json:"product"`
	}

	if err := c.BodyParser(&body); err != nil || len(body.Product) == 0 {
		return utils.ErrorResponse(c, "Product data is missing from the request", fiber.StatusBadRequest, "advice.validation.input")
	}

	// The product arrives as a full record or as bare free text.
	var product catalog.Product
	if err := json.Unmarshal(body.Product, &product); err != nil {
		var freeText string
		if err := json.Unmarshal(body.Product, &freeText); err != nil {
			return utils.ErrorResponse(c, "Product data is missing from the request", fiber.StatusBadRequest, "advice.validation.input")
		}
		product = catalog.Product{Name: freeText}
	}
	if strings.TrimSpace(product.Name) == "" {
		return utils.ErrorResponse(c, "Product data is missing from the request", fiber.StatusBadRequest, "advice.validation.input")
	}

	if h.Generator == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": advice.Unavailable})
	}

	result, err := h.Generator.Generate(c.UserContext(), product)
	if err != nil {
		log.Printf("Could not generate advice for %q: %v", product.Name, err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": advice.Unavailable})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"advice": result})
}
