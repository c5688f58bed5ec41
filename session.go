package gridmark

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/tsawler/gridmark/config"
	"github.com/tsawler/gridmark/detect"
	"github.com/tsawler/gridmark/markers"
	"github.com/tsawler/gridmark/model"
	"github.com/tsawler/gridmark/reader"
	"github.com/tsawler/gridmark/tables"
)

// Session drives the extraction workflow for one document: marker
// placement, optional line detection, per-page extraction, and the
// final merge.
type Session struct {
	path       string
	source     reader.TextSource
	renderer   reader.Renderer
	ownsSource bool

	markers   *markers.Set
	merger    *tables.Merger
	detector  *detect.Detector
	assembler *tables.Assembler
	options   extractOptions
}

func newSession(src reader.TextSource) *Session {
	return &Session{
		source:    src,
		markers:   markers.NewSet(),
		merger:    tables.NewMerger(),
		detector:  detect.New(),
		assembler: tables.NewAssembler(),
		options:   defaultOptions(),
	}
}

// Close releases the underlying document, if the session owns one.
func (s *Session) Close() error {
	if !s.ownsSource {
		return nil
	}
	if c, ok := s.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WithRenderer attaches a page renderer, enabling line detection.
func (s *Session) WithRenderer(r reader.Renderer) *Session {
	s.renderer = r
	return s
}

// WithSettings replaces the detector thresholds.
func (s *Session) WithSettings(settings config.Settings) *Session {
	s.detector = detect.NewWithConfig(settings.DetectorConfig())
	return s
}

// PageCount returns the number of pages in the document.
func (s *Session) PageCount() int {
	return s.source.PageCount()
}

// Page returns the marker set for a page, creating an empty one on
// first access.
func (s *Session) Page(page int) *markers.Markers {
	return s.markers.Page(page)
}

// Markers returns the document's full marker set, for persistence via
// the config package.
func (s *Session) Markers() *markers.Set {
	return s.markers
}

// UseMarkers replaces the session's marker set, typically with one
// loaded from disk. Previously extracted tables are discarded since
// they no longer match the markers.
func (s *Session) UseMarkers(set *markers.Set) *Session {
	s.markers = set
	s.merger = tables.NewMerger()
	return s
}

// MarkedPages returns the ascending page indices whose markers form at
// least one complete cell.
func (s *Session) MarkedPages() []int {
	return s.markers.Marked()
}

// DetectLines renders a page region and returns line candidates in page
// space. A renderer must be attached. Zoom is the render scale; higher
// zoom resolves closely spaced lines better.
func (s *Session) DetectLines(page int, region model.BBox, zoom float64) (detect.Candidates, error) {
	if s.renderer == nil {
		return detect.Candidates{}, fmt.Errorf("line detection needs a renderer; attach one with WithRenderer")
	}
	if region.IsEmpty() {
		return detect.Candidates{}, nil
	}
	if zoom <= 0 {
		zoom = 1.0
	}

	rendered, err := s.renderer.Render(page, zoom)
	if err != nil {
		return detect.Candidates{}, fmt.Errorf("render page %d: %w", page, err)
	}

	crop, offsetX, offsetY := cropRegion(rendered, region, zoom)
	if crop == nil {
		return detect.Candidates{}, nil
	}

	return s.detector.Detect(crop, detect.Region{
		OffsetX: offsetX,
		OffsetY: offsetY,
		Scale:   zoom,
	}), nil
}

// ApplyDetected adds detected line candidates to a page's markers,
// skipping candidates that duplicate existing markers. It returns the
// number of markers added.
func (s *Session) ApplyDetected(page int, cands detect.Candidates) int {
	return s.markers.Page(page).Apply(cands.Columns, cands.Rows)
}

// ExtractPage assembles the table for one marked page and stores it for
// merging, replacing any earlier extraction of the same page.
func (s *Session) ExtractPage(page int) (*model.PageTable, error) {
	m := s.markers.Page(page)
	if m.CellCount() == 0 {
		return nil, fmt.Errorf("page %d has no complete cells; need at least 2 column and 2 row markers", page)
	}

	runs, err := s.source.TextRuns(page)
	if err != nil {
		return nil, fmt.Errorf("extract page %d: %w", page, err)
	}

	rows, cols := m.GridSize()
	table := s.assembler.Assemble(runs, m.Cells(), rows, cols)
	s.merger.Add(page, table)
	return table, nil
}

// ExtractMarked extracts every marked page in ascending order. The
// first failing page aborts the pass.
func (s *Session) ExtractMarked() error {
	for _, page := range s.MarkedPages() {
		if _, err := s.ExtractPage(page); err != nil {
			return err
		}
	}
	return nil
}

// Merge combines the extracted tables into a single dataset, applying
// the session's transpose option.
func (s *Session) Merge(dir tables.Direction) (*model.Dataset, error) {
	ds, err := s.merger.Merge(dir)
	if err != nil {
		return nil, err
	}
	if s.options.transpose {
		ds = ds.Transpose()
	}
	return ds, nil
}

// Tables returns the stored table for a page, or nil if the page has
// not been extracted.
func (s *Session) Table(page int) *model.PageTable {
	return s.merger.Table(page)
}

// cropRegion copies the page-space region out of a rendered bitmap and
// reports the page-space position of the crop's top-left corner, which
// can differ from the region's when the selection spills off the page.
// Returns a nil image when the region falls outside the bitmap.
func cropRegion(img image.Image, region model.BBox, zoom float64) (image.Image, float64, float64) {
	b := img.Bounds()
	rect := image.Rect(
		b.Min.X+int(region.X*zoom),
		b.Min.Y+int(region.Y*zoom),
		b.Min.X+int(region.Right()*zoom),
		b.Min.Y+int(region.Bottom()*zoom),
	).Intersect(b)
	if rect.Empty() {
		return nil, 0, 0
	}

	crop := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(crop, crop.Bounds(), img, rect.Min, draw.Src)

	offsetX := float64(rect.Min.X-b.Min.X) / zoom
	offsetY := float64(rect.Min.Y-b.Min.Y) / zoom
	return crop, offsetX, offsetY
}
