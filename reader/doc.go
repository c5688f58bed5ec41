// Package reader supplies page content to the extraction pipeline. A
// Document wraps a PDF file and exposes its pages as positioned text
// runs in page space, with the top-left corner as origin and y growing
// downward. Rendering is a separate concern: line detection needs a
// bitmap of the page, which a Renderer provides; ImageRenderer serves
// pre-rendered page bitmaps when no rasterizer is wired in.
package reader
