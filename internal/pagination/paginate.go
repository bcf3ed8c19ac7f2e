package pagination

import (
	"fmt"
	"slices"
)

// InvalidPageSizeError is returned when a page size is not positive.
type InvalidPageSizeError struct {
	Size int
}

func (e *InvalidPageSizeError) Error() string {
	return fmt.Sprintf("invalid page size %d: must be greater than zero", e.Size)
}

// Page is one slice of a paginated list. Number is 1-based. Previous and Next
// are 0 when there is no such page.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Previous   int
	Next       int
}

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Previous > 0 }

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Next > 0 }

// URLPath returns the output file name of this page under base.
func (p Page[T]) URLPath(base string) string {
	return PagePath(base, p.Number)
}

// Paginate splits items into ceil(len(items)/size) pages. The input slice is
// not retained. An empty input yields no pages.
func Paginate[T any](items []T, size int) ([]Page[T], error) {
	if size <= 0 {
		return nil, &InvalidPageSizeError{Size: size}
	}
	if len(items) == 0 {
		return nil, nil
	}

	total := (len(items) + size - 1) / size
	pages := make([]Page[T], 0, total)
	for n := 1; n <= total; n++ {
		start := (n - 1) * size
		end := min(start+size, len(items))

		page := Page[T]{
			Items:      slices.Clone(items[start:end]),
			Number:     n,
			TotalPages: total,
		}
		if n > 1 {
			page.Previous = n - 1
		}
		if n < total {
			page.Next = n + 1
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// PagePath names page n of a list: base.html for the first page and
// base-n.html for the rest.
func PagePath(base string, n int) string {
	if n <= 1 {
		return base + ".html"
	}
	return fmt.Sprintf("%s-%d.html", base, n)
}
