package page

import "github.com/opencatalogue/catalogd/internal/domain"

// Page is a 1-based pagination request.
type Page struct {
	number int
	size   int
}

// New validates and creates a Page. Number and size must both be >= 1.
func New(number, size int) (Page, error) {
	if number < 1 {
		return Page{}, domain.Invalid("page_number", "must be >= 1")
	}
	if size < 1 {
		return Page{}, domain.Invalid("page_size", "must be >= 1")
	}
	return Page{number: number, size: size}, nil
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// OffsetLimit translates the page to storage offset and limit.
func (p Page) OffsetLimit() (offset, limit int) {
	return (p.number - 1) * p.size, p.size
}

// TotalPages computes the page count for a total item count, 0 for 0.
func (p Page) TotalPages(totalItems int) int {
	if totalItems <= 0 {
		return 0
	}
	return (totalItems + p.size - 1) / p.size
}

// Paginated is one page of results with its pagination metadata. Pages
// past the end carry an empty item list and unchanged totals.
type Paginated[T any] struct {
	Items      []T
	TotalItems int
	TotalPages int
}

// NewPaginated builds the response envelope for a page.
func NewPaginated[T any](items []T, totalItems int, p Page) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{Items: items, TotalItems: totalItems, TotalPages: p.TotalPages(totalItems)}
}
