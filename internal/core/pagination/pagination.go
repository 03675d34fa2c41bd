// Package pagination splits listings into fixed-size pages.
package pagination

import "strconv"

// PageSize is the number of posts shown on every listing page.
const PageSize = 10

// Page describes one window over a listing of Count items.
type Page struct {
	Number   int
	NumPages int
	Count    int64
	Offset   int
	Limit    int
}

func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) HasPrevious() bool { return p.Number > 1 }

// ParseNumber reads a page number from a query value. Anything that is not an
// integer resolves to the first page.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// Paginate resolves the requested page against count items. An empty listing
// still has one (empty) page, and a number outside 1..NumPages lands on the
// last page.
func Paginate(requested int, count int64) Page {
	numPages := 1
	if count > 0 {
		numPages = int((count + PageSize - 1) / PageSize)
	}

	number := requested
	if number < 1 || number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Count:    count,
		Offset:   (number - 1) * PageSize,
		Limit:    PageSize,
	}
}
