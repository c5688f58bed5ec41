package markers

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/gridmark/model"
)

// DefaultTolerance is the minimum distance, in page units, between two
// distinct markers on the same axis.
const DefaultTolerance = 2.0

// Axis identifies a marker axis.
type Axis string

const (
	// AxisColumn markers are vertical lines positioned by x coordinate.
	AxisColumn Axis = "column"
	// AxisRow markers are horizontal lines positioned by y coordinate.
	AxisRow Axis = "row"
)

// DuplicateError reports an attempt to place a marker within tolerance
// of an existing one. The marker set is left unchanged.
type DuplicateError struct {
	Axis     Axis
	Coord    float64
	Existing float64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s marker at %.2f (existing marker at %.2f)", e.Axis, e.Coord, e.Existing)
}

// Markers holds the column and row marker coordinates for a single page.
// Coordinates are kept sorted ascending. The zero value is not usable;
// use New.
type Markers struct {
	// Tolerance is the minimum spacing between markers on one axis.
	Tolerance float64

	cols []float64
	rows []float64

	// Insertion-order stacks backing RemoveLastColumn/RemoveLastRow.
	colHistory []float64
	rowHistory []float64
}

// New creates an empty marker set with the default tolerance.
func New() *Markers {
	return &Markers{Tolerance: DefaultTolerance}
}

// NewWithTolerance creates an empty marker set with a custom tolerance.
// Non-positive tolerances fall back to the default.
func NewWithTolerance(tolerance float64) *Markers {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Markers{Tolerance: tolerance}
}

// AddColumn inserts a column marker at the given x coordinate,
// maintaining sorted order. Returns a DuplicateError and leaves the set
// unchanged if an existing column marker lies within tolerance.
func (m *Markers) AddColumn(x float64) error {
	if err := m.insert(&m.cols, x, AxisColumn); err != nil {
		return err
	}
	m.colHistory = append(m.colHistory, x)
	return nil
}

// AddRow inserts a row marker at the given y coordinate, maintaining
// sorted order. Returns a DuplicateError and leaves the set unchanged
// if an existing row marker lies within tolerance.
func (m *Markers) AddRow(y float64) error {
	if err := m.insert(&m.rows, y, AxisRow); err != nil {
		return err
	}
	m.rowHistory = append(m.rowHistory, y)
	return nil
}

// insert places coord into the sorted slice, rejecting near-duplicates.
func (m *Markers) insert(s *[]float64, coord float64, axis Axis) error {
	idx := sort.SearchFloat64s(*s, coord)
	if idx < len(*s) && math.Abs((*s)[idx]-coord) < m.Tolerance {
		return &DuplicateError{Axis: axis, Coord: coord, Existing: (*s)[idx]}
	}
	if idx > 0 && math.Abs((*s)[idx-1]-coord) < m.Tolerance {
		return &DuplicateError{Axis: axis, Coord: coord, Existing: (*s)[idx-1]}
	}
	*s = append(*s, 0)
	copy((*s)[idx+1:], (*s)[idx:])
	(*s)[idx] = coord
	return nil
}

// RemoveLastColumn removes the most recently added column marker.
// It is a no-op when no column markers exist.
func (m *Markers) RemoveLastColumn() {
	if len(m.colHistory) == 0 {
		return
	}
	last := m.colHistory[len(m.colHistory)-1]
	m.colHistory = m.colHistory[:len(m.colHistory)-1]
	removeValue(&m.cols, last)
}

// RemoveLastRow removes the most recently added row marker.
// It is a no-op when no row markers exist.
func (m *Markers) RemoveLastRow() {
	if len(m.rowHistory) == 0 {
		return
	}
	last := m.rowHistory[len(m.rowHistory)-1]
	m.rowHistory = m.rowHistory[:len(m.rowHistory)-1]
	removeValue(&m.rows, last)
}

func removeValue(s *[]float64, v float64) {
	idx := sort.SearchFloat64s(*s, v)
	if idx < len(*s) && (*s)[idx] == v {
		*s = append((*s)[:idx], (*s)[idx+1:]...)
	}
}

// Apply merges detector candidates into the marker set, silently
// skipping candidates that fall within tolerance of an existing marker.
// Accepted candidates join the undo history like manually placed ones.
// Returns the number of markers actually added.
func (m *Markers) Apply(columns, rows []float64) int {
	added := 0
	for _, x := range columns {
		if m.AddColumn(x) == nil {
			added++
		}
	}
	for _, y := range rows {
		if m.AddRow(y) == nil {
			added++
		}
	}
	return added
}

// Clear removes all markers and the undo history.
func (m *Markers) Clear() {
	m.cols = nil
	m.rows = nil
	m.colHistory = nil
	m.rowHistory = nil
}

// Columns returns a copy of the sorted column marker coordinates.
func (m *Markers) Columns() []float64 {
	out := make([]float64, len(m.cols))
	copy(out, m.cols)
	return out
}

// Rows returns a copy of the sorted row marker coordinates.
func (m *Markers) Rows() []float64 {
	out := make([]float64, len(m.rows))
	copy(out, m.rows)
	return out
}

// ColumnCount returns the number of column markers.
func (m *Markers) ColumnCount() int {
	return len(m.cols)
}

// RowCount returns the number of row markers.
func (m *Markers) RowCount() int {
	return len(m.rows)
}

// GridSize returns the cell grid dimensions (rows, cols) derived from
// the current markers. Either dimension is zero when fewer than two
// markers exist on the corresponding axis.
func (m *Markers) GridSize() (rows, cols int) {
	if len(m.rows) < 2 || len(m.cols) < 2 {
		return 0, 0
	}
	return len(m.rows) - 1, len(m.cols) - 1
}

// CellCount returns the number of cells the current markers produce.
func (m *Markers) CellCount() int {
	rows, cols := m.GridSize()
	return rows * cols
}

// Cells returns the cell rectangles for the current marker set in
// row-major order. Returns nil when fewer than two markers exist on
// either axis.
func (m *Markers) Cells() []model.Cell {
	rows, cols := m.GridSize()
	if rows == 0 {
		return nil
	}
	cells := make([]model.Cell, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			cells = append(cells, model.Cell{
				Row: i,
				Col: j,
				BBox: model.BBox{
					X:      m.cols[j],
					Y:      m.rows[i],
					Width:  m.cols[j+1] - m.cols[j],
					Height: m.rows[i+1] - m.rows[i],
				},
			})
		}
	}
	return cells
}

// CellBBox returns the bounding box of the cell at the given address.
// ok is false when the address is outside the current grid.
func (m *Markers) CellBBox(row, col int) (bbox model.BBox, ok bool) {
	rows, cols := m.GridSize()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return model.BBox{}, false
	}
	return model.BBox{
		X:      m.cols[col],
		Y:      m.rows[row],
		Width:  m.cols[col+1] - m.cols[col],
		Height: m.rows[row+1] - m.rows[row],
	}, true
}

// HitTest returns the address of the cell containing the given point.
// ok is false when the point lies outside the grid or the marker set
// produces no cells.
func (m *Markers) HitTest(p model.Point) (row, col int, ok bool) {
	if rows, _ := m.GridSize(); rows == 0 {
		return 0, 0, false
	}
	col = band(m.cols, p.X)
	row = band(m.rows, p.Y)
	if col < 0 || row < 0 {
		return 0, 0, false
	}
	return row, col, true
}

// band returns the index i such that bounds[i] <= v < bounds[i+1],
// or -1 when v is outside [bounds[0], bounds[len-1]). The final bound
// is inclusive so points on the outer edge still hit the last cell.
func band(bounds []float64, v float64) int {
	if v < bounds[0] || v > bounds[len(bounds)-1] {
		return -1
	}
	idx := sort.SearchFloat64s(bounds, v)
	if idx == len(bounds)-1 && v == bounds[idx] {
		return idx - 1
	}
	if idx < len(bounds) && bounds[idx] == v {
		return idx
	}
	return idx - 1
}
