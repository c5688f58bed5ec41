package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tsawler/gridmark/markers"
)

// markerFileDescription identifies marker files written by this
// package.
const markerFileDescription = "Multi-page table markers"

// FilenameMismatchError reports that a marker file was created for a
// different document. The markers still load; the caller decides
// whether to use them anyway.
type FilenameMismatchError struct {
	Saved   string // document the file was created for
	Current string // document being processed now
}

func (e *FilenameMismatchError) Error() string {
	return fmt.Sprintf("markers were saved for %q, current document is %q", e.Saved, e.Current)
}

type markerFile struct {
	PageMarkers map[string]pageMarkers `json:"page_markers"`
	CreatedDate string                 `json:"created_date"`
	Description string                 `json:"description"`
	Filename    string                 `json:"filename"`
}

type pageMarkers struct {
	Columns []float64 `json:"columns"`
	Rows    []float64 `json:"rows"`
}

// SaveMarkers writes every page's marker positions to a JSON file,
// tagged with the document's base name so a later load can warn when
// applied to a different document.
func SaveMarkers(path string, set *markers.Set, documentPath string) error {
	file := markerFile{
		PageMarkers: make(map[string]pageMarkers),
		CreatedDate: time.Now().Format("2006-01-02 15:04:05"),
		Description: markerFileDescription,
		Filename:    filepath.Base(documentPath),
	}
	for _, page := range set.Pages() {
		m := set.Page(page)
		file.PageMarkers[strconv.Itoa(page)] = pageMarkers{
			Columns: m.Columns(),
			Rows:    m.Rows(),
		}
	}

	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write markers to %s: %w", path, err)
	}
	return nil
}

// LoadMarkers reads marker positions from a JSON file. When the file
// was saved for a different document than documentPath, the markers are
// still returned along with a FilenameMismatchError, so callers can
// choose to apply them regardless. An empty documentPath skips the
// check.
func LoadMarkers(path string, documentPath string) (*markers.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markers from %s: %w", path, err)
	}

	var file markerFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode markers from %s: %w", path, err)
	}
	if file.PageMarkers == nil {
		return nil, fmt.Errorf("%s is not a marker file", path)
	}

	set := markers.NewSet()
	for key, pm := range file.PageMarkers {
		page, err := strconv.Atoi(key)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("invalid page key %q in %s", key, path)
		}
		set.Page(page).Apply(pm.Columns, pm.Rows)
	}

	if documentPath != "" && file.Filename != "" {
		current := filepath.Base(documentPath)
		if file.Filename != current {
			return set, &FilenameMismatchError{Saved: file.Filename, Current: current}
		}
	}
	return set, nil
}
