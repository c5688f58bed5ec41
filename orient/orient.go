package orient

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/gridmark/model"
)

// JoinMode controls the separator placed between runs when building
// cell text.
type JoinMode int

const (
	// JoinAuto separates runs on the same visual line with a space and
	// distinct lines with a newline.
	JoinAuto JoinMode = iota
	// JoinSpace separates every run with a space, collapsing line
	// breaks.
	JoinSpace
	// JoinNewline places every run on its own line.
	JoinNewline
)

// Join builds a single string from upright runs in reading order: left
// to right within a line, lines top to bottom. The result is normalized
// to NFC.
func Join(runs []model.TextRun, mode JoinMode) string {
	if len(runs) == 0 {
		return ""
	}

	ordered := sortReading(runs)

	var b strings.Builder
	for i, r := range ordered {
		if i > 0 {
			b.WriteString(separator(ordered[i-1], r, mode))
		}
		b.WriteString(r.Text)
	}
	return norm.NFC.String(b.String())
}

func separator(prev, next model.TextRun, mode JoinMode) string {
	switch mode {
	case JoinSpace:
		return " "
	case JoinNewline:
		return "\n"
	default:
		if sameLine(prev, next) {
			return " "
		}
		return "\n"
	}
}

// sameLine reports whether two runs sit on the same visual line, judged
// by vertical center distance against the smaller run height.
func sameLine(a, b model.TextRun) bool {
	tol := a.BBox.Height
	if b.BBox.Height < tol {
		tol = b.BBox.Height
	}
	tol /= 2
	diff := a.BBox.Center().Y - b.BBox.Center().Y
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}

// sortReading orders runs top to bottom, then left to right, grouping
// runs on the same visual line so small baseline jitter does not split
// a line. The input is not modified.
func sortReading(runs []model.TextRun) []model.TextRun {
	ordered := make([]model.TextRun, len(runs))
	copy(ordered, runs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if sameLine(ordered[i], ordered[j]) {
			return ordered[i].BBox.X < ordered[j].BBox.X
		}
		return ordered[i].BBox.Y < ordered[j].BBox.Y
	})
	return ordered
}

// Corrected is the outcome of orientation correction for one cell.
type Corrected struct {
	// Text is the cell's content in corrected reading order.
	Text string

	// NeedsReview is set when the orientation vote tied, meaning the
	// reading order is a guess that a human should confirm.
	NeedsReview bool
}

// Corrector turns a cell's runs into readable text by voting on their
// orientation hints and reordering accordingly.
type Corrector struct {
	// JoinMode applies when the winning orientation is horizontal.
	// Rotated text concatenates without separators, since its runs are
	// glyph fragments of a single vertical string.
	JoinMode JoinMode
}

// NewCorrector creates a corrector with automatic join behavior.
func NewCorrector() *Corrector {
	return &Corrector{JoinMode: JoinAuto}
}

// Correct votes over the runs' orientation hints and rebuilds the text
// in the winning orientation's reading order. Unknown hints abstain; a
// cell with no votes is treated as upright. A tied vote falls back to
// upright order and flags the result for review. Correction is pure:
// the same runs always produce the same result, and the input is never
// modified.
func (c *Corrector) Correct(runs []model.TextRun) Corrected {
	if len(runs) == 0 {
		return Corrected{}
	}

	winner, tied := vote(runs)
	if tied {
		return Corrected{Text: Join(runs, c.JoinMode), NeedsReview: true}
	}

	switch winner {
	case model.Orientation90:
		return Corrected{Text: concat(sortBy(runs, topToBottom))}
	case model.Orientation270:
		return Corrected{Text: concat(sortBy(runs, bottomToTop))}
	case model.Orientation180:
		return Corrected{Text: joinReversed(sortBy(runs, reverseReading))}
	default:
		return Corrected{Text: Join(runs, c.JoinMode)}
	}
}

// vote counts orientation hints and returns the plurality winner.
// Unknown hints abstain. tied is set when two or more orientations
// share the top count.
func vote(runs []model.TextRun) (winner model.Orientation, tied bool) {
	counts := make(map[model.Orientation]int)
	for _, r := range runs {
		if r.Orientation == model.OrientationUnknown {
			continue
		}
		counts[r.Orientation]++
	}
	if len(counts) == 0 {
		return model.Orientation0, false
	}

	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	leaders := 0
	for o, n := range counts {
		if n == best {
			leaders++
			winner = o
		}
	}
	return winner, leaders > 1
}

func topToBottom(a, b model.TextRun) bool {
	if a.BBox.Y != b.BBox.Y {
		return a.BBox.Y < b.BBox.Y
	}
	return a.BBox.X < b.BBox.X
}

func bottomToTop(a, b model.TextRun) bool {
	if a.BBox.Y != b.BBox.Y {
		return a.BBox.Y > b.BBox.Y
	}
	return a.BBox.X < b.BBox.X
}

func reverseReading(a, b model.TextRun) bool {
	if a.BBox.Y != b.BBox.Y {
		return a.BBox.Y > b.BBox.Y
	}
	return a.BBox.X > b.BBox.X
}

func sortBy(runs []model.TextRun, less func(a, b model.TextRun) bool) []model.TextRun {
	ordered := make([]model.TextRun, len(runs))
	copy(ordered, runs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})
	return ordered
}

// concat joins rotated runs without separators: vertical runs are glyph
// fragments of one string, not words.
func concat(runs []model.TextRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return norm.NFC.String(b.String())
}

// joinReversed rebuilds upside-down text: run order is already reversed
// by the sort, and each run's characters read back to front.
func joinReversed(runs []model.TextRun) string {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(reverseRunes(r.Text))
	}
	return norm.NFC.String(b.String())
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
