package pagination

// Page describes one page of a fixed-size pagination over a resolved list.
type Page struct {
	Number     int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// Clamp normalizes a raw page number to the minimum of 1.
func Clamp(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// TotalPages returns ceil(total/perPage). Zero items is zero pages.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}

// Slice returns the page-th slice (1-based) of at most perPage items.
// Pages beyond the end yield an empty slice, never an error: the resolved
// list may have shrunk between requests and callers just render nothing.
func Slice[T any](items []T, page, perPage int) []T {
	page = Clamp(page)
	if perPage <= 0 {
		return []T{}
	}

	offset := (page - 1) * perPage
	if offset >= len(items) {
		return []T{}
	}

	end := offset + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// Paginate slices items and reports the page metadata in one call.
func Paginate[T any](items []T, page, perPage int) ([]T, Page) {
	page = Clamp(page)
	return Slice(items, page, perPage), Page{
		Number:     page,
		TotalPages: TotalPages(len(items), perPage),
		TotalCount: len(items),
	}
}
