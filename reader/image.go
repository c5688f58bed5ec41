package reader

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	xdraw "golang.org/x/image/draw"
)

// ImageRenderer serves pre-rendered page bitmaps. Pages are registered
// at their 1:1 scale (one pixel per page unit); Render scales them to
// the requested zoom. It satisfies line detection for workflows where
// pages were rasterized out of band.
type ImageRenderer struct {
	pages map[int]image.Image
}

var _ Renderer = (*ImageRenderer)(nil)

// NewImageRenderer creates a renderer with no pages registered.
func NewImageRenderer() *ImageRenderer {
	return &ImageRenderer{pages: make(map[int]image.Image)}
}

// AddPage registers the bitmap for a page, replacing any earlier one.
// The bitmap must be rendered at one pixel per page unit.
func (r *ImageRenderer) AddPage(page int, img image.Image) {
	r.pages[page] = img
}

// LoadFile decodes an image file and registers it for a page. PNG and
// JPEG are supported.
func (r *ImageRenderer) LoadFile(page int, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	r.AddPage(page, img)
	return nil
}

// Render returns the page bitmap scaled to the requested zoom. A
// non-positive zoom is treated as 1.0.
func (r *ImageRenderer) Render(page int, zoom float64) (image.Image, error) {
	img, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("page %d: no bitmap registered", page)
	}

	if zoom <= 0 {
		zoom = 1.0
	}
	if zoom == 1.0 {
		return img, nil
	}

	b := img.Bounds()
	w := int(float64(b.Dx()) * zoom)
	h := int(float64(b.Dy()) * zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
	return scaled, nil
}
