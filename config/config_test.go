package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/gridmark/markers"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.InkThreshold != DefaultInkThreshold {
		t.Errorf("expected ink threshold %d, got %d", DefaultInkThreshold, s.InkThreshold)
	}
	if s.MinLineFraction != DefaultMinLineFraction {
		t.Errorf("expected line fraction %v, got %v", DefaultMinLineFraction, s.MinLineFraction)
	}
	if s.MinSpacingPx != DefaultMinSpacingPx {
		t.Errorf("expected spacing %d, got %d", DefaultMinSpacingPx, s.MinSpacingPx)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridmark.yaml")
	content := "ink_threshold: 100\nmin_line_fraction: 0.5\nmin_spacing_px: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.InkThreshold != 100 || s.MinLineFraction != 0.5 || s.MinSpacingPx != 3 {
		t.Errorf("file values not applied: %+v", s)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GRIDMARK_INK_THRESHOLD", "64")

	s, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.InkThreshold != 64 {
		t.Errorf("environment override not applied, got %d", s.InkThreshold)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"defaults", DefaultSettings(), false},
		{"threshold too high", Settings{InkThreshold: 300, MinLineFraction: 0.4, MinSpacingPx: 5}, true},
		{"negative threshold", Settings{InkThreshold: -1, MinLineFraction: 0.4, MinSpacingPx: 5}, true},
		{"zero fraction", Settings{InkThreshold: 128, MinLineFraction: 0, MinSpacingPx: 5}, true},
		{"fraction above one", Settings{InkThreshold: 128, MinLineFraction: 1.5, MinSpacingPx: 5}, true},
		{"zero spacing", Settings{InkThreshold: 128, MinLineFraction: 0.4, MinSpacingPx: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDetectorConfig(t *testing.T) {
	s := Settings{InkThreshold: 100, MinLineFraction: 0.3, MinSpacingPx: 7}
	cfg := s.DetectorConfig()
	if cfg.InkThreshold != 100 || cfg.MinLineFraction != 0.3 || cfg.MinSpacingPx != 7 {
		t.Errorf("settings not mapped: %+v", cfg)
	}
	if cfg.MaxDimension <= 0 {
		t.Error("mapping must keep the default max dimension")
	}
}

func TestSaveLoadMarkers_RoundTrip(t *testing.T) {
	set := markers.NewSet()
	set.Page(0).Apply([]float64{10, 100, 200}, []float64{20, 60})
	set.Page(3).Apply([]float64{5, 50}, []float64{5, 25, 45})

	path := filepath.Join(t.TempDir(), "markers.json")
	if err := SaveMarkers(path, set, "report.pdf"); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadMarkers(path, "report.pdf")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	pages := loaded.Pages()
	if len(pages) != 2 || pages[0] != 0 || pages[1] != 3 {
		t.Fatalf("expected pages [0 3], got %v", pages)
	}
	cols := loaded.Page(0).Columns()
	if len(cols) != 3 || cols[0] != 10 || cols[2] != 200 {
		t.Errorf("page 0 columns not restored: %v", cols)
	}
	rows := loaded.Page(3).Rows()
	if len(rows) != 3 || rows[1] != 25 {
		t.Errorf("page 3 rows not restored: %v", rows)
	}
}

func TestLoadMarkers_FilenameMismatch(t *testing.T) {
	set := markers.NewSet()
	set.Page(0).Apply([]float64{10, 100}, []float64{20, 60})

	path := filepath.Join(t.TempDir(), "markers.json")
	if err := SaveMarkers(path, set, "/data/original.pdf"); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadMarkers(path, "/data/other.pdf")
	var mismatch *FilenameMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected FilenameMismatchError, got %v", err)
	}
	if mismatch.Saved != "original.pdf" || mismatch.Current != "other.pdf" {
		t.Errorf("unexpected mismatch detail: %+v", mismatch)
	}
	// Markers still load so the caller can proceed deliberately.
	if loaded == nil || len(loaded.Pages()) != 1 {
		t.Error("markers must still be returned on mismatch")
	}

	// Same base name passes the guard.
	if _, err := LoadMarkers(path, "/elsewhere/original.pdf"); err != nil {
		t.Errorf("matching filename must load cleanly: %v", err)
	}
}

func TestLoadMarkers_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.json")
	if err := os.WriteFile(path, []byte(`{"unrelated": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMarkers(path, ""); err == nil {
		t.Error("expected error for non-marker JSON")
	}
}
