package tables

import (
	"github.com/tsawler/gridmark/model"
	"github.com/tsawler/gridmark/orient"
)

// Assembler fills a page's grid cells with text assembled from the
// runs that fall inside them.
type Assembler struct {
	// Corrector rebuilds each cell's text in its voted reading order.
	Corrector *orient.Corrector
}

// NewAssembler creates an assembler with a default corrector.
func NewAssembler() *Assembler {
	return &Assembler{Corrector: orient.NewCorrector()}
}

// Assign groups runs by the row-major index of the cell each one
// dominantly overlaps. A run belongs to the cell sharing the largest
// area with its bounding box; on an exact tie the earliest cell in
// row-major order wins, so assignment is deterministic. Runs that
// overlap no cell are discarded. Within a cell, runs keep their input
// order.
func (a *Assembler) Assign(runs []model.TextRun, cells []model.Cell) map[int][]model.TextRun {
	assigned := make(map[int][]model.TextRun)
	for _, r := range runs {
		best := -1
		bestArea := 0.0
		for i, cell := range cells {
			area := cell.BBox.OverlapArea(r.BBox)
			if area > bestArea {
				best = i
				bestArea = area
			}
		}
		if best >= 0 {
			assigned[best] = append(assigned[best], r)
		}
	}
	return assigned
}

// Assemble builds the page table for a grid of cells: runs are assigned
// to cells, each cell's runs pass through orientation correction, and
// cells that received no runs stay empty. The cells slice must be in
// row-major order and cover rows x cols entries, as produced by the
// marker grid.
func (a *Assembler) Assemble(runs []model.TextRun, cells []model.Cell, rows, cols int) *model.PageTable {
	table := model.NewPageTable(rows, cols)
	if rows == 0 || cols == 0 {
		return table
	}

	assigned := a.Assign(runs, cells)
	for i, cellRuns := range assigned {
		cell := cells[i]
		corrected := a.Corrector.Correct(cellRuns)
		table.Cells[cell.Row][cell.Col] = corrected.Text
		table.Review[cell.Row][cell.Col] = corrected.NeedsReview
	}
	return table
}
