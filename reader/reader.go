package reader

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/gridmark/model"
)

// TextSource provides positioned text runs for the pages of a document.
// Page indices are 0-based.
type TextSource interface {
	PageCount() int
	TextRuns(page int) ([]model.TextRun, error)
}

// Renderer provides page bitmaps for line detection. Zoom is the render
// scale in pixels per page unit.
type Renderer interface {
	Render(page int, zoom float64) (image.Image, error)
}

// letterHeight is the US Letter page height in points, used when a
// page's dimensions cannot be determined.
const letterHeight = 792.0

// ascentRatio approximates how far above the baseline a glyph reaches,
// as a fraction of the font size.
const ascentRatio = 0.8

// Document reads a PDF file and serves its text runs. It validates the
// file on open and converts the PDF's bottom-up coordinates into page
// space.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	dims   []types.Dim
}

var _ TextSource = (*Document)(nil)

// OpenDocument opens and validates a PDF file.
func OpenDocument(path string) (*Document, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page dimensions of %s: %w", path, err)
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &Document{
		path:   path,
		file:   file,
		reader: reader,
		dims:   dims,
	}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageSize returns a page's width and height in page units.
func (d *Document) PageSize(page int) (width, height float64) {
	if page >= 0 && page < len(d.dims) {
		return d.dims[page].Width, d.dims[page].Height
	}
	return letterHeight * 8.5 / 11, letterHeight
}

// TextRuns extracts the positioned text runs of a page, with glyph
// fragments on a shared baseline grouped into words. Malformed content
// streams surface as errors rather than panics.
func (d *Document) TextRuns(page int) (runs []model.TextRun, err error) {
	if page < 0 || page >= d.PageCount() {
		return nil, fmt.Errorf("page %d out of range [0,%d)", page, d.PageCount())
	}

	// The content stream parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extract text from page %d: %v", page, r)
		}
	}()

	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, nil
	}

	_, pageHeight := d.PageSize(page)
	return buildRuns(p.Content().Text, pageHeight), nil
}

// buildRuns groups raw text items into runs and converts their
// positions from bottom-up PDF coordinates into top-down page space.
func buildRuns(texts []pdf.Text, pageHeight float64) []model.TextRun {
	var runs []model.TextRun
	var group []pdf.Text

	flush := func() {
		if len(group) > 0 {
			runs = append(runs, runFromGroup(group, pageHeight))
			group = nil
		}
	}

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			flush()
			continue
		}
		if len(group) > 0 && !adjacent(group[len(group)-1], t) {
			flush()
		}
		group = append(group, t)
	}
	flush()
	return runs
}

// adjacent reports whether two text items continue the same word: same
// baseline and no more than a sliver of horizontal gap.
func adjacent(prev, next pdf.Text) bool {
	size := prev.FontSize
	if next.FontSize > size {
		size = next.FontSize
	}
	if size <= 0 {
		size = 1
	}

	dy := next.Y - prev.Y
	if dy < 0 {
		dy = -dy
	}
	if dy > size*0.2 {
		return false
	}

	gap := next.X - (prev.X + prev.W)
	return gap > -size && gap < size*0.3
}

// runFromGroup merges a word's items into a single run. A run much
// taller than it is wide is treated as rotated vertical text; all other
// runs get no orientation hint, since the text extractor does not
// expose the text matrix.
func runFromGroup(group []pdf.Text, pageHeight float64) model.TextRun {
	first, last := group[0], group[len(group)-1]

	size := 0.0
	var b strings.Builder
	for _, t := range group {
		if t.FontSize > size {
			size = t.FontSize
		}
		b.WriteString(t.S)
	}

	width := last.X + last.W - first.X
	if width < 0 {
		width = 0
	}
	bbox := model.BBox{
		X:      first.X,
		Y:      pageHeight - first.Y - size*ascentRatio,
		Width:  width,
		Height: size,
	}

	orientation := model.OrientationUnknown
	if bbox.Height > 3*bbox.Width && bbox.Height > 20 {
		orientation = model.Orientation90
	}

	return model.TextRun{
		Text:        b.String(),
		BBox:        bbox,
		Orientation: orientation,
	}
}
