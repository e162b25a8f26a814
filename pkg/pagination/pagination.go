// Package pagination tracks page position, page size and the server-reported
// total for a paginated collection, and debounces search input for it.
package pagination

import (
	"strconv"
	"strings"
)

// DefaultPageSize is used when a caller asks for a non-positive page size
const DefaultPageSize = 10

// Info describes the pagination of a collection. Pages are 1-based.
type Info struct {
	Page     int
	PageSize int
	Total    int
}

// TotalPages returns the number of pages. An empty collection still has one page.
func (i Info) TotalPages() int {
	if i.PageSize <= 0 || i.Total <= 0 {
		return 1
	}
	return (i.Total + i.PageSize - 1) / i.PageSize
}

// InBounds reports whether page is a valid page number
func (i Info) InBounds(page int) bool {
	return page >= 1 && page <= i.TotalPages()
}

func (i Info) HasPrev() bool { return i.Page > 1 }
func (i Info) HasNext() bool { return i.Page < i.TotalPages() }

// Params are the request parameters for the current page
type Params struct {
	Offset int
	Limit  int
}

// Query renders the params as query string values
func (p Params) Query() map[string]string {
	return map[string]string{
		"offset": strconv.Itoa(p.Offset),
		"limit":  strconv.Itoa(p.Limit),
	}
}

// State owns the pagination of one collection. The total is never guessed:
// it only changes through UpdateTotal with the value the data source reported.
type State struct {
	page     int
	pageSize int
	total    int
	search   string
}

// New creates a State positioned on the first page
func New(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{page: 1, pageSize: pageSize}
}

// Info returns a snapshot of the current pagination
func (s *State) Info() Info {
	return Info{Page: s.page, PageSize: s.pageSize, Total: s.total}
}

func (s *State) Page() int { return s.page }
func (s *State) PageSize() int { return s.pageSize }
func (s *State) Total() int { return s.total }
func (s *State) Search() string { return s.search }

// SetPage moves to page, clamped into the valid range. It reports whether the
// page changed.
func (s *State) SetPage(page int) bool {
	page = s.clamp(page)
	if page == s.page {
		return false
	}
	s.page = page
	return true
}

// UpdateTotal records the total reported by the data source and pulls the
// current page back in range if the collection shrank.
func (s *State) UpdateTotal(total int) {
	if total < 0 {
		total = 0
	}
	s.total = total
	s.page = s.clamp(s.page)
}

// SetSearch records new search text. A different query starts over on page 1.
// It reports whether the query changed.
func (s *State) SetSearch(text string) bool {
	text = strings.TrimSpace(text)
	if text == s.search {
		return false
	}
	s.search = text
	s.page = 1
	return true
}

// Params returns offset and limit for the current page
func (s *State) Params() Params {
	return Params{Offset: (s.page - 1) * s.pageSize, Limit: s.pageSize}
}

func (s *State) clamp(page int) int {
	if page < 1 {
		return 1
	}
	if last := s.Info().TotalPages(); page > last {
		return last
	}
	return page
}
