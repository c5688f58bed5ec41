// Package model defines the shared data types for marker-driven table
// extraction: page-space geometry, positioned text runs with orientation
// hints, per-page tables, and the merged dataset.
//
// All coordinates are in page space with the origin at the top-left corner
// and y increasing downward, matching rendered page bitmaps. Values are in
// page units (PDF points at zoom 1.0) regardless of the zoom factor used
// for rendering.
package model
