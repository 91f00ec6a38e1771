package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/tienoi-one/catalog-service/internal/catalog"
	"github.com/tienoi-one/catalog-service/internal/loader"
	"github.com/tienoi-one/catalog-service/internal/models"
	"github.com/tienoi-one/catalog-service/internal/session"
	"github.com/tienoi-one/catalog-service/internal/store"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *store.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}, &models.AdminAudit{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return store.New(db)
}

func seedSession(t *testing.T, st *store.Store, names ...string) *session.Session {
	sess := session.New(st)
	products := make([]catalog.Product, 0, len(names))
	for _, n := range names {
		products = append(products, catalog.Product{Name: n, Type: "xe máy điện"})
	}
	sess.SetProducts(products)
	return sess
}

// TestBootstrapPrefersManagedOverride tests the override beats the loader
func TestBootstrapPrefersManagedOverride(t *testing.T) {
	st := setupTestStore(t)
	managed := []catalog.Product{{Name: "Managed", Type: "xe máy điện"}}
	if _, err := st.SaveManagedProducts(managed, 0); err != nil {
		t.Fatalf("Failed to save override: %v", err)
	}

	sess := session.New(st)
	sess.Bootstrap(context.Background(), loader.New("", 1, time.Millisecond, false))

	products := sess.Products()
	if len(products) != 1 || products[0].Name != "Managed" {
		t.Errorf("Expected the managed override, got %v", products)
	}
}

// TestBootstrapFallsBackToLoader tests the seed path without an override
func TestBootstrapFallsBackToLoader(t *testing.T) {
	sess := session.New(setupTestStore(t))
	sess.Bootstrap(context.Background(), loader.New("", 1, time.Millisecond, false))

	if len(sess.Products()) == 0 {
		t.Error("Expected bundled products without an override")
	}
}

// TestProductByName tests the detail lookup
func TestProductByName(t *testing.T) {
	sess := seedSession(t, setupTestStore(t), "A", "B")

	if p, ok := sess.ProductByName("B"); !ok || p.Name != "B" {
		t.Errorf("Expected to find B, got %v %v", p, ok)
	}
	if _, ok := sess.ProductByName("Z"); ok {
		t.Error("Expected a miss for an unknown name")
	}
}

// TestUpsertReplacesInPlace tests that an existing name keeps its position
func TestUpsertReplacesInPlace(t *testing.T) {
	st := setupTestStore(t)
	sess := seedSession(t, st, "A", "B", "C")

	v, err := sess.UpsertProducts([]catalog.Product{{Name: "B", Type: "t2", Price: "9₫"}}, 0)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if v != 1 {
		t.Errorf("Expected version 1, got %d", v)
	}

	products := sess.Products()
	if len(products) != 3 {
		t.Fatalf("Expected 3 products, got %d", len(products))
	}
	if products[1].Name != "B" || products[1].Price != "9₫" {
		t.Errorf("Expected B replaced in place, got %+v", products[1])
	}

	// The override now persists the full collection
	managed := st.ManagedProducts()
	if len(managed) != 3 || managed[1].Price != "9₫" {
		t.Errorf("Override not persisted: %v", managed)
	}
}

// TestUpsertPrependsNew tests that an unknown name goes to the front
func TestUpsertPrependsNew(t *testing.T) {
	sess := seedSession(t, setupTestStore(t), "A", "B")

	if _, err := sess.UpsertProducts([]catalog.Product{{Name: "New", Type: "t"}}, 0); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	products := sess.Products()
	want := []string{"New", "A", "B"}
	for i, name := range want {
		if products[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, products[i].Name)
		}
	}
}

// TestUpsertVersionConflict tests that a stale version mutates nothing
func TestUpsertVersionConflict(t *testing.T) {
	st := setupTestStore(t)
	sess := seedSession(t, st, "A")

	if _, err := sess.UpsertProducts([]catalog.Product{{Name: "B", Type: "t"}}, 0); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	_, err := sess.UpsertProducts([]catalog.Product{{Name: "C", Type: "t"}}, 99)
	if !errors.Is(err, store.ErrVersionConflict) {
		t.Fatalf("Expected ErrVersionConflict, got %v", err)
	}

	for _, p := range sess.Products() {
		if p.Name == "C" {
			t.Error("Conflicting upsert leaked into the session")
		}
	}
	if len(st.ManagedProducts()) != 2 {
		t.Errorf("Conflicting upsert leaked into the override: %v", st.ManagedProducts())
	}
}

// TestRemoveProduct tests deletion with override persistence
func TestRemoveProduct(t *testing.T) {
	st := setupTestStore(t)
	sess := seedSession(t, st, "A", "B")

	found, v, err := sess.RemoveProduct("A", 0)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !found {
		t.Fatal("Expected A to be found")
	}
	if v != 1 {
		t.Errorf("Expected version 1, got %d", v)
	}

	products := sess.Products()
	if len(products) != 1 || products[0].Name != "B" {
		t.Errorf("Expected only B to remain, got %v", products)
	}

	found, _, err = sess.RemoveProduct("A", 0)
	if err != nil {
		t.Fatalf("Second remove errored: %v", err)
	}
	if found {
		t.Error("Expected a miss on the second remove")
	}
}

// TestArticleBySlug tests the deep link lookup
func TestArticleBySlug(t *testing.T) {
	sess := session.New(setupTestStore(t))
	sess.Bootstrap(context.Background(), loader.New("", 1, time.Millisecond, false))

	// Articles load in the background; poll until they arrive
	deadline := time.Now().Add(5 * time.Second)
	for len(sess.Articles()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	articles := sess.Articles()
	if len(articles) == 0 {
		t.Fatal("Articles never arrived")
	}

	a, ok := sess.ArticleBySlug(articles[0].Slug)
	if !ok || a.Title != articles[0].Title {
		t.Errorf("Expected article %q, got %v %v", articles[0].Slug, a, ok)
	}
	if _, ok := sess.ArticleBySlug("khong-ton-tai"); ok {
		t.Error("Expected a miss for an unknown slug")
	}
}
