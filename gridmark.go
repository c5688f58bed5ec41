// Package gridmark extracts tables from PDF documents using explicit
// marker positions. The caller (or the line detector) places column and
// row markers on each page; gridmark assigns the page's text to the
// resulting grid cells, corrects rotated text, and merges the per-page
// tables into one dataset.
//
// Basic usage:
//
//	s, err := gridmark.Open("report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer s.Close()
//
//	m := s.Page(0)
//	m.Apply([]float64{50, 150, 250}, []float64{100, 130, 160})
//
//	if err := s.ExtractMarked(); err != nil {
//	    // handle error
//	}
//	ds, err := s.Merge(tables.Vertical)
//
// For advanced use cases, the lower-level reader, markers, detect, and
// tables packages are also available.
package gridmark

import (
	"github.com/tsawler/gridmark/reader"
)

// Open opens a PDF file and returns a Session for marking and
// extraction. The returned Session must be closed when done.
func Open(path string) (*Session, error) {
	doc, err := reader.OpenDocument(path)
	if err != nil {
		return nil, err
	}

	s := newSession(doc)
	s.path = path
	s.ownsSource = true
	return s, nil
}

// FromSource creates a Session over an already-constructed text source.
// This is useful for testing and for documents whose text comes from
// somewhere other than a PDF file. The caller keeps ownership of the
// source.
func FromSource(src reader.TextSource) *Session {
	return newSession(src)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	ds := gridmark.Must(s.Merge(tables.Vertical))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
