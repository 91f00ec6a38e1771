package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tienoi-one/catalog-service/internal/config"
	"github.com/tienoi-one/catalog-service/internal/database"
	"github.com/tienoi-one/catalog-service/internal/handlers"
	"github.com/tienoi-one/catalog-service/internal/session"
	"github.com/tienoi-one/catalog-service/internal/store"
	"github.com/tienoi-one/catalog-service/tests/helpers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestWithMariaDB tests the store and the admin flow against a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	dbImage := os.Getenv("DB_IMAGE")
	if dbImage == "" {
		dbImage = "mariadb:11"
	}

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        dbImage,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("StoreRoundTrip", func(t *testing.T) {
		testStoreRoundTrip(t, db)
	})

	t.Run("ClickCounterConcurrency", func(t *testing.T) {
		testClickCounterConcurrency(t, db)
	})

	t.Run("CorruptedEntryRecovery", func(t *testing.T) {
		testCorruptedEntryRecovery(t, db)
	})

	t.Run("AdminFlow", func(t *testing.T) {
		testAdminFlow(t, db)
	})
}

func testStoreRoundTrip(t *testing.T, db *gorm.DB) {
	st := store.New(db)

	if err := st.SaveRecentSearch("pin lfp"); err != nil {
		t.Fatalf("Failed to save search: %v", err)
	}
	if err := st.SaveRecentSearch("xe máy điện"); err != nil {
		t.Fatalf("Failed to save search: %v", err)
	}

	searches := st.RecentSearches()
	if len(searches) != 2 || searches[0] != "xe máy điện" {
		t.Errorf("Unexpected search history: %v", searches)
	}
}

func testClickCounterConcurrency(t *testing.T, db *gorm.DB) {
	st := store.New(db)

	const writers = 8
	const perWriter = 5

	// Seed the counter row so every writer contends on an existing key
	if _, err := st.IncrementClick("concurrent-product"); err != nil {
		t.Fatalf("Failed to seed counter: %v", err)
	}

	errs := make(chan error, writers)
	for w := 0; w < writers; w++ {
		go func() {
			for i := 0; i < perWriter; i++ {
				if _, err := st.IncrementClick("concurrent-product"); err != nil {
					errs <- err
					return
				}
			}
			errs <- nil
		}()
	}
	for w := 0; w < writers; w++ {
		if err := <-errs; err != nil {
			t.Fatalf("Concurrent increment failed: %v", err)
		}
	}

	if got := st.ClickCount("concurrent-product"); got != writers*perWriter+1 {
		t.Errorf("Expected %d clicks, got %d", writers*perWriter+1, got)
	}
}

func testCorruptedEntryRecovery(t *testing.T, db *gorm.DB) {
	st := store.New(db)

	helpers.CorruptStoreEntry(t, db, store.KeyRecentlyViewed)

	if got := st.RecentlyViewed(); len(got) != 0 {
		t.Errorf("Expected empty history from a corrupted entry, got %v", got)
	}

	products := helpers.TestProducts(1)
	if err := st.SaveRecentlyViewed(products[0]); err != nil {
		t.Fatalf("Failed to save after corruption: %v", err)
	}
	if got := st.RecentlyViewed(); len(got) != 1 {
		t.Errorf("Expected a clean restart, got %v", got)
	}
}

func testAdminFlow(t *testing.T, db *gorm.DB) {
	st := store.New(db)
	sess := session.New(st)
	sess.SetProducts(helpers.TestProducts(3))

	app := fiber.New()
	adminHandler := &handlers.AdminHandler{Session: sess}
	app.Post("/api/admin/products", adminHandler.UpsertProducts)
	app.Delete("/api/admin/products/:name", adminHandler.DeleteProduct)

	// Upsert a new product
	body, _ := json.Marshal(map[string]any{
		"products": []map[string]any{
			{"name": "New Product", "description": "d", "price": "1₫", "link": "l", "image": "i", "type": "xe máy điện"},
		},
	})
	req := httptest.NewRequest("POST", "/api/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Failed to execute upsert: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	result := helpers.AssertOK(t, resp)
	version := result["newVersion"]

	if st.ManagedProducts() == nil {
		t.Fatal("Expected a managed override after the upsert")
	}

	// A fresh session boots from the override
	rebooted := session.New(st)
	if managed := st.ManagedProducts(); len(managed) != 4 {
		t.Errorf("Expected 4 managed products, got %d", len(managed))
	}
	rebooted.SetProducts(st.ManagedProducts())
	if _, ok := rebooted.ProductByName("New Product"); !ok {
		t.Error("Expected the upserted product to survive a reboot")
	}

	// Stale version conflicts
	body, _ = json.Marshal(map[string]any{
		"version": "999",
		"products": []map[string]any{
			{"name": "Another", "description": "d", "price": "1₫", "link": "l", "image": "i", "type": "t"},
		},
	})
	req = httptest.NewRequest("POST", "/api/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Failed to execute conflicting upsert: %v", err)
	}
	helpers.AssertStatus(t, resp, 409)

	// Delete with the current version
	path := "/api/admin/products/" + url.PathEscape("New Product")
	delBody, _ := json.Marshal(map[string]any{"version": version})
	req = httptest.NewRequest("DELETE", path, bytes.NewReader(delBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, 30000)
	if err != nil {
		t.Fatalf("Failed to execute delete: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	helpers.AssertOK(t, resp)
}
