// Package tables turns positioned text runs into table content. The
// assembler assigns each run to the grid cell it dominantly overlaps
// and hands the cell's runs to the orientation corrector; the merger
// combines the per-page tables of a multi-page document into one
// dataset, stacking vertically or side by side.
package tables
