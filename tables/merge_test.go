package tables

import (
	"errors"
	"testing"

	"github.com/tsawler/gridmark/model"
)

// fill builds a page table from literal rows.
func fill(t *testing.T, rows ...[]string) *model.PageTable {
	t.Helper()
	if len(rows) == 0 {
		return model.NewPageTable(0, 0)
	}
	table := model.NewPageTable(len(rows), len(rows[0]))
	for i, row := range rows {
		copy(table.Cells[i], row)
	}
	return table
}

func TestMerge_VerticalStacksPagesInOrder(t *testing.T) {
	m := NewMerger()
	// Added out of page order; merge must still stack ascending.
	m.Add(1, fill(t, []string{"c", "d"}, []string{"e", "f"}))
	m.Add(0, fill(t, []string{"a", "b"}, []string{"g", "h"}))

	ds, err := m.Merge(Vertical)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if ds.RowCount() != 4 || ds.ColCount() != 2 {
		t.Fatalf("expected 4x2 dataset, got %dx%d", ds.RowCount(), ds.ColCount())
	}
	if ds.Rows[0][0] != "a" || ds.Rows[2][0] != "c" {
		t.Errorf("pages out of order: %v", ds.Rows)
	}
}

func TestMerge_HorizontalPlacesPagesSideBySide(t *testing.T) {
	m := NewMerger()
	m.Add(0, fill(t, []string{"a"}, []string{"b"}))
	m.Add(3, fill(t, []string{"c", "d"}, []string{"e", "f"}))

	ds, err := m.Merge(Horizontal)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if ds.RowCount() != 2 || ds.ColCount() != 3 {
		t.Fatalf("expected 2x3 dataset, got %dx%d", ds.RowCount(), ds.ColCount())
	}
	if ds.Rows[0][0] != "a" || ds.Rows[0][1] != "c" || ds.Rows[1][2] != "f" {
		t.Errorf("unexpected layout: %v", ds.Rows)
	}
}

func TestMerge_ColumnMismatch(t *testing.T) {
	m := NewMerger()
	m.Add(0, fill(t, []string{"a", "b"}))
	m.Add(2, fill(t, []string{"c", "d", "e"}))

	_, err := m.Merge(Vertical)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mismatch.Page != 2 {
		t.Errorf("expected offending page 2, got %d", mismatch.Page)
	}
	if mismatch.Want != 2 || mismatch.Got != 3 {
		t.Errorf("expected want=2 got=3, have want=%d got=%d", mismatch.Want, mismatch.Got)
	}
}

func TestMerge_RowMismatch(t *testing.T) {
	m := NewMerger()
	m.Add(0, fill(t, []string{"a"}, []string{"b"}))
	m.Add(1, fill(t, []string{"c"}))

	_, err := m.Merge(Horizontal)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mismatch.Direction != Horizontal || mismatch.Page != 1 {
		t.Errorf("unexpected mismatch detail: %+v", mismatch)
	}
}

func TestMerge_EmptyMerger(t *testing.T) {
	ds, err := NewMerger().Merge(Vertical)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if ds.RowCount() != 0 {
		t.Errorf("expected empty dataset, got %d rows", ds.RowCount())
	}
}

func TestMerge_DoesNotModifySources(t *testing.T) {
	m := NewMerger()
	src := fill(t, []string{"a", "b"})
	m.Add(0, src)

	ds, err := m.Merge(Vertical)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	ds.Rows[0][0] = "changed"
	if src.Cells[0][0] != "a" {
		t.Error("merge must copy cell data, not alias it")
	}

	// Merging twice yields independent, equal datasets.
	again, err := m.Merge(Vertical)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if again.Rows[0][0] != "a" {
		t.Errorf("second merge saw mutation: %v", again.Rows)
	}
}

func TestMerger_AddReplacesAndRemove(t *testing.T) {
	m := NewMerger()
	m.Add(0, fill(t, []string{"old"}))
	m.Add(0, fill(t, []string{"new"}))
	if m.Len() != 1 {
		t.Fatalf("expected 1 stored table, got %d", m.Len())
	}
	if m.Table(0).Cells[0][0] != "new" {
		t.Error("re-adding a page must replace its table")
	}

	m.Remove(0)
	if m.Len() != 0 {
		t.Error("remove should discard the table")
	}
}
