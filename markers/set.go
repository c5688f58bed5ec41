package markers

import "sort"

// Set holds marker sets keyed by 0-based page index. Pages are created
// lazily on first access; pages whose markers produce at least one cell
// are considered marked.
type Set struct {
	Tolerance float64

	pages map[int]*Markers
}

// NewSet creates an empty set with the default tolerance.
func NewSet() *Set {
	return &Set{Tolerance: DefaultTolerance, pages: make(map[int]*Markers)}
}

// Page returns the marker set for the given page, creating an empty one
// on first access.
func (s *Set) Page(page int) *Markers {
	if m, ok := s.pages[page]; ok {
		return m
	}
	m := NewWithTolerance(s.Tolerance)
	s.pages[page] = m
	return m
}

// Has reports whether the given page has any markers at all.
func (s *Set) Has(page int) bool {
	m, ok := s.pages[page]
	return ok && (m.ColumnCount() > 0 || m.RowCount() > 0)
}

// Pages returns the ascending page indices holding any markers,
// complete grid or not.
func (s *Set) Pages() []int {
	var pages []int
	for page, m := range s.pages {
		if m.ColumnCount() > 0 || m.RowCount() > 0 {
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)
	return pages
}

// Marked returns the ascending page indices whose markers produce at
// least one cell.
func (s *Set) Marked() []int {
	var pages []int
	for page, m := range s.pages {
		if m.CellCount() > 0 {
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)
	return pages
}

// Remove deletes the marker set for a page, if present.
func (s *Set) Remove(page int) {
	delete(s.pages, page)
}

// Reset deletes every page's markers.
func (s *Set) Reset() {
	s.pages = make(map[int]*Markers)
}
