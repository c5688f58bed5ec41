package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tsawler/gridmark"
	"github.com/tsawler/gridmark/config"
	"github.com/tsawler/gridmark/export"
	"github.com/tsawler/gridmark/tables"
)

var version = "dev" // set by build flags

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix("gridmark: ")

	var (
		pdfPath     string
		markersPath string
		configPath  string
		direction   string
		join        string
		transpose   bool
		outPath     string
		force       bool
		showVersion bool
	)

	pflag.StringVar(&pdfPath, "pdf", "", "PDF file to extract from (required)")
	pflag.StringVar(&markersPath, "markers", "", "marker file saved by a marking session (required)")
	pflag.StringVar(&configPath, "config", "", "optional settings file")
	pflag.StringVar(&direction, "direction", "vertical", "merge direction: vertical or horizontal")
	pflag.StringVar(&join, "join", "auto", "cell text join mode: auto, space, or newline")
	pflag.BoolVar(&transpose, "transpose", false, "swap rows and columns in the output")
	pflag.StringVar(&outPath, "out", "", "output file; format chosen by extension (.csv or .xlsx, default csv to stdout)")
	pflag.BoolVar(&force, "force", false, "use markers saved for a different document")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("gridmark %s\n", version)
		return
	}

	if err := run(pdfPath, markersPath, configPath, direction, join, transpose, outPath, force); err != nil {
		log.Fatal(err)
	}
}

func run(pdfPath, markersPath, configPath, direction, join string, transpose bool, outPath string, force bool) error {
	if pdfPath == "" || markersPath == "" {
		pflag.Usage()
		return fmt.Errorf("--pdf and --markers are required")
	}

	dir, err := parseDirection(direction)
	if err != nil {
		return err
	}

	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	set, err := config.LoadMarkers(markersPath, pdfPath)
	if err != nil {
		var mismatch *config.FilenameMismatchError
		if !force || !errors.As(err, &mismatch) {
			return err
		}
		log.Printf("warning: %v (continuing due to --force)", mismatch)
	}

	s, err := gridmark.Open(pdfPath)
	if err != nil {
		return err
	}
	defer s.Close()

	s.WithSettings(settings).UseMarkers(set)
	switch join {
	case "auto":
	case "space":
		s.JoinWithSpaces()
	case "newline":
		s.JoinWithNewlines()
	default:
		return fmt.Errorf("unknown join mode %q (want auto, space, or newline)", join)
	}
	if transpose {
		s.Transpose()
	}

	marked := s.MarkedPages()
	if len(marked) == 0 {
		return fmt.Errorf("no page in %s has a complete marker grid", markersPath)
	}
	log.Printf("extracting %d marked page(s) from %s", len(marked), filepath.Base(pdfPath))

	if err := s.ExtractMarked(); err != nil {
		return err
	}
	ds, err := s.Merge(dir)
	if err != nil {
		return err
	}
	log.Printf("merged %dx%d dataset", ds.RowCount(), ds.ColCount())

	if outPath == "" {
		return export.WriteCSV(os.Stdout, ds)
	}
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".xlsx":
		return export.SaveXLSX(outPath, ds)
	case ".csv":
		return export.SaveCSV(outPath, ds)
	default:
		return fmt.Errorf("unsupported output extension on %s (want .csv or .xlsx)", outPath)
	}
}

func parseDirection(s string) (tables.Direction, error) {
	switch s {
	case "vertical":
		return tables.Vertical, nil
	case "horizontal":
		return tables.Horizontal, nil
	default:
		return tables.Vertical, fmt.Errorf("unknown direction %q (want vertical or horizontal)", s)
	}
}
