// Package markers implements the geometry model for marker-driven table
// extraction: ordered column and row marker coordinates per page, the
// grid of cells they derive, and the bounded undo history for the most
// recently placed markers.
//
// Markers within a page are kept strictly increasing and deduplicated;
// two markers closer than the tolerance are considered the same line.
// A page needs at least two markers on each axis to produce any cells.
package markers
