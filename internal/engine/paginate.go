package engine

// Page is one clamped window over an ordered sequence.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// Paginate slices items into the requested page. The current page is clamped
// into [1, totalPages]; a zero totalPages yields page 1 with no items. Page
// size is caller-supplied density, not computed here.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	currentPage := page
	if currentPage < 1 {
		currentPage = 1
	}
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	if totalPages == 0 {
		return Page[T]{Items: []T{}, CurrentPage: 1, TotalPages: 0}
	}

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], CurrentPage: currentPage, TotalPages: totalPages}
}
