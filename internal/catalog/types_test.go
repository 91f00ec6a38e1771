package catalog

import "testing"

func validProductShape() map[string]any {
	return map[string]any{
		"name":        "VinFast Evo 200",
		"description": "Xe máy điện đô thị",
		"price":       "22.000.000₫",
		"link":        "https://tienoi.one/p/evo-200",
		"image":       "https://cdn.tienoi.one/evo-200.webp",
		"type":        "xe máy điện",
	}
}

// TestValidProduct tests the product shape contract
func TestValidProduct(t *testing.T) {
	if !ValidProduct(validProductShape()) {
		t.Fatal("Expected a complete product to validate")
	}

	// Empty strings are fine everywhere but the name
	item := validProductShape()
	item["description"] = ""
	if !ValidProduct(item) {
		t.Error("Expected an empty description string to validate")
	}

	item = validProductShape()
	item["name"] = "   "
	if ValidProduct(item) {
		t.Error("Expected a blank name to fail")
	}

	// A required field that is absent disqualifies the record
	for _, field := range []string{"description", "price", "link", "image", "type"} {
		item = validProductShape()
		delete(item, field)
		if ValidProduct(item) {
			t.Errorf("Expected missing %s to fail", field)
		}
	}

	// So does a field with the wrong JSON type
	item = validProductShape()
	item["price"] = 22000000
	if ValidProduct(item) {
		t.Error("Expected a numeric price to fail")
	}
}

// TestValidArticle tests the article shape contract
func TestValidArticle(t *testing.T) {
	article := map[string]any{
		"title":    "So sánh pin LFP và NMC",
		"slug":     "so-sanh-pin",
		"imageURL": "",
		"content":  "Nội dung bài viết.",
	}
	if !ValidArticle(article) {
		t.Fatal("Expected a complete article to validate")
	}

	article["slug"] = ""
	if ValidArticle(article) {
		t.Error("Expected a blank slug to fail")
	}

	article["slug"] = "so-sanh-pin"
	delete(article, "content")
	if ValidArticle(article) {
		t.Error("Expected missing content to fail")
	}
}

// TestValidComment tests the comment shape contract
func TestValidComment(t *testing.T) {
	comment := map[string]any{
		"product_type": "xe máy điện",
		"author":       "Minh Anh",
		"text":         "",
	}
	if !ValidComment(comment) {
		t.Fatal("Expected a complete comment to validate")
	}

	comment["product_type"] = " "
	if ValidComment(comment) {
		t.Error("Expected a blank product_type to fail")
	}

	comment["product_type"] = "xe máy điện"
	comment["author"] = 17
	if ValidComment(comment) {
		t.Error("Expected a non-string author to fail")
	}
}
