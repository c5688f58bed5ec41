package orient

import (
	"testing"

	"github.com/tsawler/gridmark/model"
)

func run(text string, x, y, w, h float64, o model.Orientation) model.TextRun {
	return model.TextRun{
		Text:        text,
		BBox:        model.BBox{X: x, Y: y, Width: w, Height: h},
		Orientation: o,
	}
}

func TestJoin_ReadingOrder(t *testing.T) {
	runs := []model.TextRun{
		run("world", 60, 10, 40, 10, model.Orientation0),
		run("hello", 10, 10, 40, 10, model.Orientation0),
		run("below", 10, 30, 40, 10, model.Orientation0),
	}

	if got := Join(runs, JoinAuto); got != "hello world\nbelow" {
		t.Errorf("auto join: expected %q, got %q", "hello world\nbelow", got)
	}
	if got := Join(runs, JoinSpace); got != "hello world below" {
		t.Errorf("space join: expected %q, got %q", "hello world below", got)
	}
	if got := Join(runs, JoinNewline); got != "hello\nworld\nbelow" {
		t.Errorf("newline join: expected %q, got %q", "hello\nworld\nbelow", got)
	}
}

func TestJoin_BaselineJitter(t *testing.T) {
	// Runs a couple of units apart vertically are still one line.
	runs := []model.TextRun{
		run("b", 50, 12, 20, 10, model.Orientation0),
		run("a", 10, 10, 20, 10, model.Orientation0),
	}
	if got := Join(runs, JoinAuto); got != "a b" {
		t.Errorf("expected %q, got %q", "a b", got)
	}
}

func TestJoin_Empty(t *testing.T) {
	if got := Join(nil, JoinAuto); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestCorrect_VerticalTopToBottom(t *testing.T) {
	// Three stacked 90-degree fragments read top to bottom as one word.
	runs := []model.TextRun{
		run("tal", 10, 40, 10, 30, model.Orientation90),
		run("To", 10, 10, 10, 20, model.Orientation90),
		run("s", 10, 75, 10, 10, model.Orientation90),
	}

	c := NewCorrector()
	got := c.Correct(runs)
	if got.Text != "Totals" {
		t.Errorf("expected %q, got %q", "Totals", got.Text)
	}
	if got.NeedsReview {
		t.Error("unanimous vote must not flag review")
	}
}

func TestCorrect_VerticalBottomToTop(t *testing.T) {
	runs := []model.TextRun{
		run("To", 10, 75, 10, 20, model.Orientation270),
		run("tal", 10, 40, 10, 30, model.Orientation270),
		run("s", 10, 10, 10, 10, model.Orientation270),
	}

	got := NewCorrector().Correct(runs)
	if got.Text != "Totals" {
		t.Errorf("expected %q, got %q", "Totals", got.Text)
	}
}

func TestCorrect_UpsideDown(t *testing.T) {
	// "dlrow olleh" printed upside down: visual order is reversed on
	// both axes and each fragment's characters read back to front.
	runs := []model.TextRun{
		run("olleh", 60, 10, 40, 10, model.Orientation180),
		run("dlrow", 10, 10, 40, 10, model.Orientation180),
	}

	got := NewCorrector().Correct(runs)
	if got.Text != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", got.Text)
	}
	if got.NeedsReview {
		t.Error("unanimous vote must not flag review")
	}
}

func TestCorrect_PluralityWithDissent(t *testing.T) {
	// Two upright votes beat one rotated vote; no review needed.
	runs := []model.TextRun{
		run("a", 10, 10, 10, 10, model.Orientation0),
		run("b", 25, 10, 10, 10, model.Orientation0),
		run("c", 40, 10, 10, 10, model.Orientation90),
	}

	got := NewCorrector().Correct(runs)
	if got.Text != "a b c" {
		t.Errorf("expected %q, got %q", "a b c", got.Text)
	}
	if got.NeedsReview {
		t.Error("plurality winner must not flag review")
	}
}

func TestCorrect_TieFlagsReview(t *testing.T) {
	runs := []model.TextRun{
		run("a", 10, 10, 10, 10, model.Orientation0),
		run("b", 25, 10, 10, 10, model.Orientation90),
	}

	got := NewCorrector().Correct(runs)
	if !got.NeedsReview {
		t.Error("tied vote must flag review")
	}
	// Tie falls back to upright reading order.
	if got.Text != "a b" {
		t.Errorf("expected fallback %q, got %q", "a b", got.Text)
	}
}

func TestCorrect_UnknownAbstains(t *testing.T) {
	// One real vote plus unknowns: the unknowns must not force a tie.
	runs := []model.TextRun{
		run("tal", 10, 40, 10, 30, model.Orientation90),
		run("To", 10, 10, 10, 20, model.OrientationUnknown),
		run("s", 10, 75, 10, 10, model.OrientationUnknown),
	}

	got := NewCorrector().Correct(runs)
	if got.Text != "Totals" {
		t.Errorf("expected %q, got %q", "Totals", got.Text)
	}
	if got.NeedsReview {
		t.Error("single vote with abstentions is not a tie")
	}
}

func TestCorrect_AllUnknownTreatedUpright(t *testing.T) {
	runs := []model.TextRun{
		run("plain", 10, 10, 40, 10, model.OrientationUnknown),
		run("text", 60, 10, 30, 10, model.OrientationUnknown),
	}

	got := NewCorrector().Correct(runs)
	if got.Text != "plain text" {
		t.Errorf("expected %q, got %q", "plain text", got.Text)
	}
	if got.NeedsReview {
		t.Error("no votes at all is not ambiguous")
	}
}

func TestCorrect_Deterministic(t *testing.T) {
	runs := []model.TextRun{
		run("x", 10, 10, 10, 10, model.Orientation90),
		run("y", 10, 30, 10, 10, model.Orientation270),
		run("z", 10, 50, 10, 10, model.Orientation0),
	}

	c := NewCorrector()
	first := c.Correct(runs)
	for i := 0; i < 20; i++ {
		if got := c.Correct(runs); got != first {
			t.Fatalf("correction not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestCorrect_Empty(t *testing.T) {
	got := NewCorrector().Correct(nil)
	if got.Text != "" || got.NeedsReview {
		t.Errorf("empty input should yield zero result, got %+v", got)
	}
}
