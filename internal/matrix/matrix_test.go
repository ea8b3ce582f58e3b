package matrix

import (
	"errors"
	"testing"
)

func TestAddDuplicatePosition(t *testing.T) {
	m := New()
	if err := m.Add(NewElement(2, 3, "first")); err != nil {
		t.Fatalf("add first: %v", err)
	}
	err := m.Add(NewElement(2, 3, "second"))
	if !errors.Is(err, ErrPositionConflict) {
		t.Fatalf("expected ErrPositionConflict, got %v", err)
	}
	// A later add at a free position still succeeds.
	if err := m.Add(NewElement(2, 4, "third")); err != nil {
		t.Fatalf("add after conflict: %v", err)
	}
}

func TestLastRowMonotonic(t *testing.T) {
	m := New()
	for _, row := range []int{1, 7, 3} {
		if err := m.Add(NewElement(row, 0, "x")); err != nil {
			t.Fatalf("add row %d: %v", row, err)
		}
	}
	if m.LastRow() != 7 {
		t.Fatalf("LastRow = %d, want 7", m.LastRow())
	}
}

func TestMergeCreatesJoinedPlaceholders(t *testing.T) {
	m := New()
	root := NewElement(0, 0, "header")
	root.MergeH = 1
	root.MergeV = 1
	if err := m.Add(root); err != nil {
		t.Fatalf("add: %v", err)
	}
	if m.Len() != 4 {
		t.Fatalf("expected 4 cells, got %d", m.Len())
	}
	for _, pos := range [][2]int{{0, 1}, {1, 0}, {1, 1}} {
		cell, ok := m.Get(pos[0], pos[1])
		if !ok {
			t.Fatalf("missing placeholder at %v", pos)
		}
		if !cell.Joined() {
			t.Errorf("cell %v not joined", pos)
		}
		if cell.JoinedWith != "0,0" {
			t.Errorf("cell %v joinedWith = %q, want %q", pos, cell.JoinedWith, "0,0")
		}
	}
	if root.Joined() {
		t.Error("root must not be joined to itself")
	}
}

func TestMergeOverwritesExistingCell(t *testing.T) {
	m := New()
	if err := m.Add(NewElement(0, 1, "doomed")); err != nil {
		t.Fatalf("add: %v", err)
	}
	root := NewElement(0, 0, "header")
	if err := m.Add(root); err != nil {
		t.Fatalf("add root: %v", err)
	}
	root.Merge(m, 1, 0)
	cell, _ := m.Get(0, 1)
	if cell.JoinedWith != "0,0" {
		t.Fatalf("overwritten cell joinedWith = %q, want %q", cell.JoinedWith, "0,0")
	}
}

func TestJoinedStyles(t *testing.T) {
	m := New()
	if err := m.Add(NewElement(0, 1, "", "styleText")); err != nil {
		t.Fatalf("add: %v", err)
	}
	root := NewElement(0, 0, "h", "styleSubHeader")
	if err := m.Add(root); err != nil {
		t.Fatalf("add root: %v", err)
	}
	root.Merge(m, 1, 1)
	styles := m.JoinedStyles(root)
	want := []string{"styleSubHeader", "styleText"}
	if len(styles) != len(want) {
		t.Fatalf("styles = %v, want %v", styles, want)
	}
	for i := range want {
		if styles[i] != want[i] {
			t.Fatalf("styles = %v, want %v", styles, want)
		}
	}
}

func TestBoxRange(t *testing.T) {
	m := New()
	m.BoxRange(0, 0, 3, 2)

	check := func(row, col int, style string) {
		t.Helper()
		cell, ok := m.Get(row, col)
		if !ok {
			t.Fatalf("no cell at (%d,%d)", row, col)
		}
		for _, s := range cell.Styles {
			if s == style {
				return
			}
		}
		t.Errorf("cell (%d,%d) styles %v missing %q", row, col, cell.Styles, style)
	}

	for r := 0; r < 3; r++ {
		check(r, 0, StyleBoxLeft)
		check(r, 2, StyleBoxRight)
	}
	for c := 0; c <= 2; c++ {
		check(0, c, StyleBoxTop)
		check(2, c, StyleBoxBottom)
	}
}

func TestBoxRangePreservesExistingCells(t *testing.T) {
	m := New()
	if err := m.Add(NewElement(0, 0, "corner", "styleSubHeader")); err != nil {
		t.Fatalf("add: %v", err)
	}
	m.BoxRange(0, 0, 2, 1)
	cell, _ := m.Get(0, 0)
	if cell.Text != "corner" {
		t.Fatalf("existing cell text clobbered: %q", cell.Text)
	}
	if len(cell.Styles) != 3 { // styleSubHeader + boxL + boxT
		t.Fatalf("styles = %v, want original plus boxL and boxT", cell.Styles)
	}
}

func TestElementsRowMajorOrder(t *testing.T) {
	m := New()
	for _, p := range [][2]int{{1, 1}, {0, 2}, {0, 0}, {1, 0}} {
		if err := m.Add(NewElement(p[0], p[1], "x")); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	var got [][2]int
	for _, e := range m.Elements() {
		got = append(got, [2]int{e.Row, e.Col})
	}
	want := [][2]int{{0, 0}, {0, 2}, {1, 0}, {1, 1}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCellRef(t *testing.T) {
	cases := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{2, 3, "D3"},
		{9, 26, "AA10"},
	}
	for _, c := range cases {
		got, err := CellRef(c.row, c.col)
		if err != nil {
			t.Fatalf("CellRef(%d,%d): %v", c.row, c.col, err)
		}
		if got != c.want {
			t.Errorf("CellRef(%d,%d) = %q, want %q", c.row, c.col, got, c.want)
		}
	}
}

func TestCursorHelpers(t *testing.T) {
	e := NewElement(2, 3, "x")
	e.MergeH = 2
	e.MergeV = 1
	if e.NextRow() != 4 {
		t.Errorf("NextRow = %d, want 4", e.NextRow())
	}
	if e.NextCol() != 6 {
		t.Errorf("NextCol = %d, want 6", e.NextCol())
	}
}
