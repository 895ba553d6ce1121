// Package pagination slices an in-memory collection into 1-based pages.
package pagination

// Page is one page of a paginated collection.
type Page[T any] struct {
	Items      []T
	Number     int // 1-based page number as requested
	Size       int // configured page size
	TotalPages int // at least 1, even for an empty collection
	Total      int // size of the whole collection
}

// TotalPages computes ceil(total/pageSize), normalized to a minimum of 1 so
// an empty collection still presents as "page 1 of 1, empty".
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of items with the given size. The slice
// is the standard half-open window [(page-1)*pageSize, page*pageSize); a page
// beyond the last yields an empty slice rather than an error. No bounds
// clamping is performed: callers keep page valid by resetting to 1 whenever
// the underlying collection or its filters change.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	p := Page[T]{
		Items:      []T{},
		Number:     page,
		Size:       pageSize,
		TotalPages: TotalPages(len(items), pageSize),
		Total:      len(items),
	}
	if page < 1 || pageSize < 1 {
		return p
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return p
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[start:end]
	return p
}
