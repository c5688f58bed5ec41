package detect

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Config holds detector thresholds.
type Config struct {
	// InkThreshold is the intensity cutoff (0-255); pixels strictly
	// darker count as ink.
	InkThreshold uint8

	// MinLineFraction is the fraction of the region's perpendicular
	// dimension an ink column/row must cover to be a line candidate.
	MinLineFraction float64

	// MinSpacingPx is the minimum spacing, in region pixels, between
	// distinct lines. Candidates closer than this merge into one at
	// their mean position.
	MinSpacingPx int

	// MaxDimension caps the analyzed region size. Regions larger on
	// either axis are downsampled before projection, with candidate
	// positions mapped back through the downsample factor.
	MaxDimension int
}

// DefaultConfig returns the default detector thresholds.
func DefaultConfig() Config {
	return Config{
		InkThreshold:    128,
		MinLineFraction: 0.4,
		MinSpacingPx:    5,
		MaxDimension:    4096,
	}
}

// Region describes where an analyzed bitmap sits in page space.
type Region struct {
	// OffsetX, OffsetY are the page-space coordinates of the bitmap's
	// top-left corner.
	OffsetX float64
	OffsetY float64

	// Scale is the render zoom: bitmap pixels per page unit.
	// A non-positive scale is treated as 1.0.
	Scale float64

	// Inset crops this many page units inward from each edge before
	// analysis, so the borders of the user's selection rectangle do not
	// register as detected lines.
	Inset float64
}

// Candidates holds detected line positions in page space, sorted
// ascending. Both lists may be empty when nothing in the region clears
// the thresholds.
type Candidates struct {
	Columns []float64 // x coordinates of vertical line candidates
	Rows    []float64 // y coordinates of horizontal line candidates
}

// Empty reports whether no lines were detected on either axis.
func (c Candidates) Empty() bool {
	return len(c.Columns) == 0 && len(c.Rows) == 0
}

// Detector finds ruled-line candidates in rendered page regions.
type Detector struct {
	config Config
}

// New creates a detector with default thresholds.
func New() *Detector {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a detector with custom thresholds. Zero-valued
// fields fall back to their defaults.
func NewWithConfig(config Config) *Detector {
	def := DefaultConfig()
	if config.InkThreshold == 0 {
		config.InkThreshold = def.InkThreshold
	}
	if config.MinLineFraction <= 0 {
		config.MinLineFraction = def.MinLineFraction
	}
	if config.MinSpacingPx <= 0 {
		config.MinSpacingPx = def.MinSpacingPx
	}
	if config.MaxDimension <= 0 {
		config.MaxDimension = def.MaxDimension
	}
	return &Detector{config: config}
}

// Config returns the detector's thresholds.
func (d *Detector) Config() Config {
	return d.config
}

// Detect analyzes a rendered bitmap region and returns column and row
// line candidates translated into page space. An empty result is a
// normal outcome for regions without ruled lines.
func (d *Detector) Detect(img image.Image, region Region) Candidates {
	scale := region.Scale
	if scale <= 0 {
		scale = 1.0
	}

	gray, downsample := d.grayscale(img)
	bounds := gray.Bounds()

	// Apply the inset in (possibly downsampled) pixel space.
	insetPx := int(region.Inset * scale * downsample)
	window := image.Rect(
		bounds.Min.X+insetPx,
		bounds.Min.Y+insetPx,
		bounds.Max.X-insetPx,
		bounds.Max.Y-insetPx,
	)
	if window.Dx() <= 0 || window.Dy() <= 0 {
		return Candidates{}
	}

	colPeaks := d.peaks(d.columnProfile(gray, window), window.Dy())
	rowPeaks := d.peaks(d.rowProfile(gray, window), window.Dx())

	// Translate window-relative pixel positions into page space: undo
	// the inset, the downsample factor, and the render scale, then add
	// the region offset.
	cands := Candidates{}
	for _, px := range colPeaks {
		cands.Columns = append(cands.Columns, region.OffsetX+(float64(insetPx)+px)/downsample/scale)
	}
	for _, py := range rowPeaks {
		cands.Rows = append(cands.Rows, region.OffsetY+(float64(insetPx)+py)/downsample/scale)
	}
	return cands
}

// grayscale converts the image to single-channel intensity, downsampling
// oversized regions first. Returns the gray image and the downsample
// factor (output pixels per input pixel, <= 1).
func (d *Detector) grayscale(img image.Image) (*image.Gray, float64) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	factor := 1.0
	max := w
	if h > max {
		max = h
	}
	if max > d.config.MaxDimension {
		factor = float64(d.config.MaxDimension) / float64(max)
		w = int(float64(w) * factor)
		h = int(float64(h) * factor)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	gray := image.NewGray(image.Rect(0, 0, w, h))
	if factor == 1.0 {
		xdraw.Draw(gray, gray.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(gray, gray.Bounds(), img, b, xdraw.Src, nil)
	}
	return gray, factor
}

// columnProfile counts ink pixels per column within the window.
func (d *Detector) columnProfile(gray *image.Gray, window image.Rectangle) []int {
	profile := make([]int, window.Dx())
	for y := window.Min.Y; y < window.Max.Y; y++ {
		rowStart := gray.PixOffset(window.Min.X, y)
		for i := 0; i < window.Dx(); i++ {
			if gray.Pix[rowStart+i] < d.config.InkThreshold {
				profile[i]++
			}
		}
	}
	return profile
}

// rowProfile counts ink pixels per row within the window.
func (d *Detector) rowProfile(gray *image.Gray, window image.Rectangle) []int {
	profile := make([]int, window.Dy())
	for y := window.Min.Y; y < window.Max.Y; y++ {
		rowStart := gray.PixOffset(window.Min.X, y)
		count := 0
		for i := 0; i < window.Dx(); i++ {
			if gray.Pix[rowStart+i] < d.config.InkThreshold {
				count++
			}
		}
		profile[y-window.Min.Y] = count
	}
	return profile
}

// peaks scans a projection profile for line candidates: positions whose
// ink count clears the line fraction of the perpendicular extent and is
// a local maximum within the spacing window. Candidates closer than the
// spacing window merge into one at their mean position.
func (d *Detector) peaks(profile []int, extent int) []float64 {
	required := int(d.config.MinLineFraction * float64(extent))
	if required < 1 {
		required = 1
	}

	var raw []int
	for i, v := range profile {
		if v < required {
			continue
		}
		if isWindowMax(profile, i, d.config.MinSpacingPx) {
			raw = append(raw, i)
		}
	}

	return mergeNearby(raw, d.config.MinSpacingPx)
}

// isWindowMax reports whether profile[i] is >= every value within the
// spacing window around i.
func isWindowMax(profile []int, i, spacing int) bool {
	lo := i - spacing
	if lo < 0 {
		lo = 0
	}
	hi := i + spacing
	if hi > len(profile)-1 {
		hi = len(profile) - 1
	}
	for j := lo; j <= hi; j++ {
		if profile[j] > profile[i] {
			return false
		}
	}
	return true
}

// mergeNearby clusters sorted positions closer than the spacing
// threshold and returns the mean of each cluster. Anti-aliased line
// edges and plateau maxima collapse into a single candidate this way.
func mergeNearby(positions []int, spacing int) []float64 {
	if len(positions) == 0 {
		return nil
	}

	var merged []float64
	start := 0
	for i := 1; i <= len(positions); i++ {
		if i < len(positions) && positions[i]-positions[i-1] <= spacing {
			continue
		}
		sum := 0
		for _, p := range positions[start:i] {
			sum += p
		}
		merged = append(merged, float64(sum)/float64(i-start))
		start = i
	}
	return merged
}
