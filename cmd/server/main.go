// main.go
//
// A scalable, high performance server-side replacement for the tienoi.one catalog page engine
// Copyright (c) 2026 Tienoi One (https://tienoi.one)
//
// This file is part of catalog-service.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/tienoi-one/catalog-service/internal/advice"
	"github.com/tienoi-one/catalog-service/internal/config"
	"github.com/tienoi-one/catalog-service/internal/database"
	"github.com/tienoi-one/catalog-service/internal/handlers"
	"github.com/tienoi-one/catalog-service/internal/loader"
	"github.com/tienoi-one/catalog-service/internal/middleware"
	"github.com/tienoi-one/catalog-service/internal/services"
	"github.com/tienoi-one/catalog-service/internal/session"
	"github.com/tienoi-one/catalog-service/internal/store"

	_ "github.com/tienoi-one/catalog-service/docs/api" // Swagger docs
)

// @title Catalog Service API
// @version 1.0.0
// @description Go Fiber catalog discovery service for the tienoi.one storefront
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/tienoi-one/catalog-service
// @contact.email info@tienoi.one

// @license.name Apache-2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the store database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	st := store.New(db)

	// Load the catalog. Products block startup; articles and comments
	// stream in behind the first request.
	ld := loader.New(cfg.DataBaseURL, cfg.FetchRetries, cfg.FetchBaseDelay, cfg.Production())
	sess := session.New(st)
	sess.Bootstrap(context.Background(), ld)

	// Advice generator; the route degrades gracefully without a key
	var generator *advice.Generator
	if cfg.GenAIAPIKey != "" {
		generator, err = advice.NewGenerator(context.Background(), cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			log.Fatalf("Failed to create advice generator: %v", err)
		}
	} else {
		log.Printf("GENAI_API_KEY not set; advice generation disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("catalog_service")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	catalogHandler := &handlers.CatalogHandler{Session: sess, Store: st}
	adminHandler := &handlers.AdminHandler{Session: sess}
	adviceHandler := &handlers.AdviceHandler{Generator: generator}

	// Catalog read routes
	cat := api.Group("/catalog")
	cat.Get("/featured", catalogHandler.GetFeatured)
	cat.Get("/search", catalogHandler.SearchProducts)
	cat.Get("/suggestions", catalogHandler.GetSuggestions)
	cat.Get("/products/:name/comments", catalogHandler.GetProductComments)
	cat.Get("/products/:name", catalogHandler.GetProduct)
	cat.Get("/articles/:slug", catalogHandler.GetArticle)
	cat.Get("/articles", catalogHandler.GetArticles)
	cat.Get("/recent-searches", catalogHandler.GetRecentSearches)
	cat.Get("/recently-viewed", catalogHandler.GetRecentlyViewed)

	// Admin catalog mutation routes
	admin := api.Group("/admin")
	admin.Post("/products", adminHandler.UpsertProducts)
	admin.Delete("/products/:name", adminHandler.DeleteProduct)

	// Advice route, matching the browser origin's proxy path
	api.Post("/generate-advice", adviceHandler.GenerateAdvice)

	// Health route
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check for version errors
	versionError := false
	if code == fiber.StatusConflict || (message != "" && len(message) >= 9 && message[:9] == "E_VERSION") {
		versionError = true
		errorType = "version"
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       code,
		"message":      message,
		"ok":           false,
		"versionError": versionError,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         errorType,
	})
}
