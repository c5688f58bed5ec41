package model

// Cell is a rectangle bounded by two consecutive column markers and two
// consecutive row markers. Cells are derived from marker positions on
// demand and never stored independently.
type Cell struct {
	Row  int // 0-based row index
	Col  int // 0-based column index
	BBox BBox
}

// PageTable holds the corrected cell strings extracted from one marked
// page. Review is a parallel grid flagging cells whose text orientation
// was ambiguous and should be checked manually.
type PageTable struct {
	Cells  [][]string
	Review [][]bool
}

// NewPageTable creates an empty table with the given dimensions.
func NewPageTable(rows, cols int) *PageTable {
	t := &PageTable{
		Cells:  make([][]string, rows),
		Review: make([][]bool, rows),
	}
	for i := 0; i < rows; i++ {
		t.Cells[i] = make([]string, cols)
		t.Review[i] = make([]bool, cols)
	}
	return t
}

// RowCount returns the number of rows.
func (t *PageTable) RowCount() int {
	return len(t.Cells)
}

// ColCount returns the number of columns.
func (t *PageTable) ColCount() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// NeedsReview reports whether any cell in the table is flagged for
// manual orientation review.
func (t *PageTable) NeedsReview() bool {
	for _, row := range t.Review {
		for _, flagged := range row {
			if flagged {
				return true
			}
		}
	}
	return false
}

// Transpose returns a new table with rows and columns swapped.
// The receiver is not modified.
func (t *PageTable) Transpose() *PageTable {
	out := NewPageTable(t.ColCount(), t.RowCount())
	for i, row := range t.Cells {
		for j, cell := range row {
			out.Cells[j][i] = cell
			out.Review[j][i] = t.Review[i][j]
		}
	}
	return out
}

// Dataset is the final 2-D grid of strings produced by merging the
// tables of all marked pages. A Dataset is immutable by convention:
// merging again produces a new one.
type Dataset struct {
	Rows [][]string
}

// NewDataset creates an empty dataset with the given dimensions.
func NewDataset(rows, cols int) *Dataset {
	d := &Dataset{Rows: make([][]string, rows)}
	for i := 0; i < rows; i++ {
		d.Rows[i] = make([]string, cols)
	}
	return d
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColCount returns the number of columns.
func (d *Dataset) ColCount() int {
	if len(d.Rows) == 0 {
		return 0
	}
	return len(d.Rows[0])
}

// Transpose returns a new dataset with rows and columns swapped.
func (d *Dataset) Transpose() *Dataset {
	out := NewDataset(d.ColCount(), d.RowCount())
	for i, row := range d.Rows {
		for j, cell := range row {
			out.Rows[j][i] = cell
		}
	}
	return out
}
