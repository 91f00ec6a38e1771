// catalog.go
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
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tienoi-one/catalog-service/internal/engine"
	"github.com/tienoi-one/catalog-service/internal/session"
	"github.com/tienoi-one/catalog-service/internal/store"
	"github.com/tienoi-one/catalog-service/internal/utils"
)

// RatedClickThreshold is the click count at which a product earns the
// "highly rated" badge.
const RatedClickThreshold = 10

// RelatedLimit caps the related products strip on the detail page.
const RelatedLimit = 4

// CatalogHandler handles catalog read routes
type CatalogHandler struct {
	Session *session.Session
	Store   *store.Store

	// ShuffleSource randomizes comment order when set; nil uses the
	// process-wide source.
	ShuffleSource rand.Source
}

// GetFeatured handles GET /api/catalog/featured
// @Summary Get featured products
// @Description Get the click-ranked featured products, paginated
// @Tags Catalog
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Products per page" default(6)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /catalog/featured [get]
func (h *CatalogHandler) GetFeatured(c *fiber.Ctx) error {
	products := h.Session.Products()
	clicks := h.Store.ClickCounts()

	featured := engine.ComputeFeatured(products, clicks, engine.DefaultFeaturedLimit)
	page := engine.Paginate(featured, parsePageSize(c, DefaultPageSize), parsePage(c))

	return c.Status(fiber.StatusOK).JSON(page)
}

// SearchProducts handles GET /api/catalog/search
// @Summary Search products
// @Description Search products by type, falling back to a name substring match
// @Tags Catalog
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} map[string]interface{}
// @Router /catalog/search [get]
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	query := c.Query("q")

	result := engine.Search(query, h.Session.Products())
	payload := fiber.Map{"tier": result.Tier, "results": result.Results}

	// Every non-empty query joins the search history, hits or not. A failed
	// history write degrades to a warning; the results still go out.
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		if err := h.Store.SaveRecentSearch(trimmed); err != nil {
			log.Printf("Could not record recent search %q: %v", trimmed, err)
			payload["warning"] = "Search history is temporarily unavailable"
		}
	}

	return c.Status(fiber.StatusOK).JSON(payload)
}

// GetSuggestions handles GET /api/catalog/suggestions
// @Summary Get trending type suggestions
// @Description Get the distinct product types ordered by their trend score
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /catalog/suggestions [get]
func (h *CatalogHandler) GetSuggestions(c *fiber.Ctx) error {
	suggestions := engine.SuggestionOrder(h.Session.Products(), h.Store.ClickCounts())

	out := make([]fiber.Map, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, fiber.Map{
			"type":         s.Type,
			"score":        s.Score,
			"displayScore": displayScore(s.Score),
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetProduct handles GET /api/catalog/products/:name
// @Summary Get product detail
// @Description Get one product with its click count, badge, and related products. Records the visit.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param name path string true "Product name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/products/{name} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	name := paramName(c, "name")

	product, ok := h.Session.ProductByName(name)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Product '%s' not found", name))
	}

	// Counter and history writes degrade to a warning; the detail view
	// still renders.
	degraded := false
	clicks, err := h.Store.IncrementClick(product.Name)
	if err != nil {
		log.Printf("Could not record click for %q: %v", product.Name, err)
		degraded = true
	}
	if err := h.Store.SaveRecentlyViewed(product); err != nil {
		log.Printf("Could not record visit for %q: %v", product.Name, err)
		degraded = true
	}

	payload := fiber.Map{
		"product": product,
		"clicks":  clicks,
		"rated":   clicks >= RatedClickThreshold,
		"related": engine.RelatedProducts(product, h.Session.Products(), RelatedLimit),
	}
	if degraded {
		payload["warning"] = "Visit history is temporarily unavailable"
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}

// GetProductComments handles GET /api/catalog/products/:name/comments
// @Summary Get product comments
// @Description Get the shuffled comments relevant to a product, paginated
// @Tags Catalog
// @Accept json
// @Produce json
// @Param name path string true "Product name"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/products/{name}/comments [get]
func (h *CatalogHandler) GetProductComments(c *fiber.Ctx) error {
	name := paramName(c, "name")

	product, ok := h.Session.ProductByName(name)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Product '%s' not found", name))
	}

	relevant := engine.RelevantComments(product, h.Session.Comments())
	shuffled := engine.Shuffle(relevant, h.ShuffleSource)
	page := engine.PaginateComments(shuffled, engine.CommentsPerPage, parsePage(c))

	return c.Status(fiber.StatusOK).JSON(page)
}

// GetArticles handles GET /api/catalog/articles
// @Summary Get articles
// @Description Get the full article collection
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {array} catalog.Article
// @Router /catalog/articles [get]
func (h *CatalogHandler) GetArticles(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Session.Articles(), fiber.StatusOK)
}

// GetArticle handles GET /api/catalog/articles/:slug
// @Summary Get one article
// @Description Get an article by its slug
// @Tags Catalog
// @Accept json
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} catalog.Article
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /catalog/articles/{slug} [get]
func (h *CatalogHandler) GetArticle(c *fiber.Ctx) error {
	slug := paramName(c, "slug")

	article, ok := h.Session.ArticleBySlug(slug)
	if !ok {
		return utils.NotFoundResponse(c, fmt.Sprintf("Article '%s' not found", slug))
	}
	return c.Status(fiber.StatusOK).JSON(article)
}

// GetRecentSearches handles GET /api/catalog/recent-searches
// @Summary Get recent searches
// @Description Get the recorded search queries, most recent first
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {array} string
// @Router /catalog/recent-searches [get]
func (h *CatalogHandler) GetRecentSearches(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.RecentSearches(), fiber.StatusOK)
}

// GetRecentlyViewed handles GET /api/catalog/recently-viewed
// @Summary Get recently viewed products
// @Description Get the recorded product visits, most recent first
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {array} catalog.Product
// @Router /catalog/recently-viewed [get]
func (h *CatalogHandler) GetRecentlyViewed(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.RecentlyViewed(), fiber.StatusOK)
}
