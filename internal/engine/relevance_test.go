package engine

import (
	"math/rand"
	"testing"

	"github.com/tienoi-one/catalog-service/internal/catalog"
)

var vinfast = catalog.Product{Name: "VinFast Evo 200", Type: "xe máy điện"}

var commentPool = []catalog.Comment{
	{ProductType: "xe máy điện", Author: "a", Text: "Mình chạy VinFast được 6 tháng, rất ổn."},
	{ProductType: "xe máy điện", Author: "b", Text: "Pin 200 km mỗi lần sạc là thật."},
	{ProductType: "xe máy điện", Author: "c", Text: "Giao hàng nhanh, đóng gói cẩn thận."},
	{ProductType: "xe đạp điện", Author: "d", Text: "VinFast làm xe tốt."},
	{ProductType: "XE MÁY ĐIỆN ", Author: "e", Text: "evo chạy êm hơn mong đợi."},
}

// TestRelevantComments tests type equality plus name-keyword containment
func TestRelevantComments(t *testing.T) {
	relevant := RelevantComments(vinfast, commentPool)

	if len(relevant) != 3 {
		t.Fatalf("Expected 3 relevant comments, got %d", len(relevant))
	}
	authors := []string{relevant[0].Author, relevant[1].Author, relevant[2].Author}
	want := []string{"a", "b", "e"}
	for i := range want {
		if authors[i] != want[i] {
			t.Errorf("Position %d: expected author %s, got %s", i, want[i], authors[i])
		}
	}
}

// TestRelevantCommentsWrongType tests that a matching text alone is not enough
func TestRelevantCommentsWrongType(t *testing.T) {
	bike := catalog.Product{Name: "VinFast Evo 200", Type: "xe trượt điện"}
	if got := RelevantComments(bike, commentPool); len(got) != 0 {
		t.Errorf("Expected no relevant comments across types, got %d", len(got))
	}
}

// TestRelevantCommentsBlankIdentity tests products without type or name
func TestRelevantCommentsBlankIdentity(t *testing.T) {
	if got := RelevantComments(catalog.Product{Name: "X", Type: " "}, commentPool); got != nil {
		t.Errorf("Expected nil for blank type, got %v", got)
	}
	if got := RelevantComments(catalog.Product{Name: "  ", Type: "xe máy điện"}, commentPool); got != nil {
		t.Errorf("Expected nil for blank name, got %v", got)
	}
}

// TestShufflePreservesElements tests the shuffle is a permutation
func TestShufflePreservesElements(t *testing.T) {
	shuffled := Shuffle(commentPool, rand.NewSource(42))

	if len(shuffled) != len(commentPool) {
		t.Fatalf("Expected %d comments, got %d", len(commentPool), len(shuffled))
	}

	counts := map[string]int{}
	for _, c := range commentPool {
		counts[c.Author]++
	}
	for _, c := range shuffled {
		counts[c.Author]--
	}
	for author, n := range counts {
		if n != 0 {
			t.Errorf("Author %s: element count off by %d after shuffle", author, n)
		}
	}

	// Same seed, same order
	again := Shuffle(commentPool, rand.NewSource(42))
	for i := range shuffled {
		if shuffled[i].Author != again[i].Author {
			t.Errorf("Shuffle with a fixed source is not deterministic at %d", i)
		}
	}
}

// TestShuffleDoesNotMutateInput tests the source slice is untouched
func TestShuffleDoesNotMutateInput(t *testing.T) {
	before := make([]catalog.Comment, len(commentPool))
	copy(before, commentPool)

	Shuffle(commentPool, rand.NewSource(7))
	for i := range before {
		if commentPool[i].Author != before[i].Author {
			t.Fatalf("Source slice was reordered at %d", i)
		}
	}
}

// TestPaginateComments tests the fixed comment page density
func TestPaginateComments(t *testing.T) {
	comments := make([]catalog.Comment, 12)
	for i := range comments {
		comments[i].Author = string(rune('a' + i))
	}

	page := PaginateComments(comments, CommentsPerPage, 3)
	if page.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", page.TotalPages)
	}
	if page.CurrentPage != 3 {
		t.Errorf("Expected current page 3, got %d", page.CurrentPage)
	}
	if len(page.Items) != 2 {
		t.Errorf("Expected 2 items on the last page, got %d", len(page.Items))
	}
}
