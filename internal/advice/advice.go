// advice.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package advice generates the expert product consultation shown on the
// product detail page. The generator asks Gemini for a structured Vietnamese
// analysis of a single product; callers degrade to a static message when no
// generator is configured or a request fails.
package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tienoi-one/catalog-service/internal/catalog"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Unavailable is the degraded message served when advice cannot be generated.
const Unavailable = "Hiện chưa thể tạo tư vấn cho sản phẩm này. Vui lòng thử lại sau."

// Generator produces structured product advice.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a Gemini-backed advice generator.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Generator{client: client, model: model}, nil
}

// Generate asks the model for a product analysis and decodes the structured
// response.
func (g *Generator) Generate(ctx context.Context, product catalog.Product) (catalog.ExpertAdvice, error) {
	detail := product.DescriptionDetail
	if detail == "" {
		detail = product.Description
	}

	prompt := fmt.Sprintf(`Act as an impartial expert product consultant. Based on the following product information, provide a concise analysis in Vietnamese for a potential customer.
Product Name: %s
Product Price: %s
Product Description: %s

Your analysis should highlight key advantages, points to consider (including an evaluation of the price in relation to the described features and benefits), and a final summary about its overall value.`,
		product.Name, product.Price, detail)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   adviceSchema(),
	})
	if err != nil {
		return catalog.ExpertAdvice{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return catalog.ExpertAdvice{}, fmt.Errorf("empty advice response")
	}

	var parsed catalog.ExpertAdvice
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return catalog.ExpertAdvice{}, fmt.Errorf("failed to parse advice response: %w", err)
	}
	return parsed, nil
}

// Name identifies the backing model.
func (g *Generator) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}

func adviceSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"advantages": {
				Type:        genai.TypeArray,
				Description: "Key advantages of the product, in Vietnamese.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"considerations": {
				Type:        genai.TypeArray,
				Description: "Points for the customer to consider, or potential drawbacks, in Vietnamese. This should include a comment on the price vs. value.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A final summary and recommendation about the product's overall value, in Vietnamese.",
			},
		},
		Required: []string{"advantages", "considerations", "summary"},
	}
}
