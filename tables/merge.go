package tables

import (
	"fmt"
	"sort"

	"github.com/tsawler/gridmark/model"
)

// Direction selects how per-page tables combine into one dataset.
type Direction int

const (
	// Vertical stacks pages top to bottom; every page must have the
	// same column count.
	Vertical Direction = iota
	// Horizontal places pages side by side; every page must have the
	// same row count.
	Horizontal
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MismatchError reports a page whose table shape is incompatible with
// the merge direction.
type MismatchError struct {
	Direction Direction
	Page      int // 0-based page index
	Want      int // expected row or column count
	Got       int
}

func (e *MismatchError) Error() string {
	dim := "columns"
	if e.Direction == Horizontal {
		dim = "rows"
	}
	return fmt.Sprintf("%s merge: page %d has %d %s, expected %d", e.Direction, e.Page, e.Got, dim, e.Want)
}

// Merger collects per-page tables and combines them into a single
// dataset. Tables are keyed by page index, so re-extracting a page
// replaces its previous table.
type Merger struct {
	tables map[int]*model.PageTable
}

// NewMerger creates an empty merger.
func NewMerger() *Merger {
	return &Merger{tables: make(map[int]*model.PageTable)}
}

// Add stores the table extracted from a page, replacing any earlier
// table for the same page.
func (m *Merger) Add(page int, table *model.PageTable) {
	m.tables[page] = table
}

// Remove discards the table for a page, if present.
func (m *Merger) Remove(page int) {
	delete(m.tables, page)
}

// Len returns the number of pages with a stored table.
func (m *Merger) Len() int {
	return len(m.tables)
}

// Pages returns the ascending page indices with a stored table.
func (m *Merger) Pages() []int {
	pages := make([]int, 0, len(m.tables))
	for page := range m.tables {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

// Table returns the stored table for a page, or nil.
func (m *Merger) Table(page int) *model.PageTable {
	return m.tables[page]
}

// Merge combines the stored tables in ascending page order into a new
// dataset. Vertical merging requires every table to share a column
// count; horizontal merging requires a shared row count. The first
// incompatible page aborts the merge with a MismatchError. Merging
// never modifies the stored tables, and an empty merger yields an
// empty dataset.
func (m *Merger) Merge(dir Direction) (*model.Dataset, error) {
	pages := m.Pages()
	if len(pages) == 0 {
		return &model.Dataset{}, nil
	}

	first := m.tables[pages[0]]
	if dir == Vertical {
		cols := first.ColCount()
		rows := 0
		for _, page := range pages {
			t := m.tables[page]
			if t.ColCount() != cols {
				return nil, &MismatchError{Direction: dir, Page: page, Want: cols, Got: t.ColCount()}
			}
			rows += t.RowCount()
		}

		out := model.NewDataset(rows, cols)
		i := 0
		for _, page := range pages {
			for _, row := range m.tables[page].Cells {
				copy(out.Rows[i], row)
				i++
			}
		}
		return out, nil
	}

	rows := first.RowCount()
	cols := 0
	for _, page := range pages {
		t := m.tables[page]
		if t.RowCount() != rows {
			return nil, &MismatchError{Direction: dir, Page: page, Want: rows, Got: t.RowCount()}
		}
		cols += t.ColCount()
	}

	out := model.NewDataset(rows, cols)
	offset := 0
	for _, page := range pages {
		t := m.tables[page]
		for i, row := range t.Cells {
			copy(out.Rows[i][offset:], row)
		}
		offset += t.ColCount()
	}
	return out, nil
}
