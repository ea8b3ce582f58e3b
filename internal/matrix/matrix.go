// Package matrix holds layout data ready for export to a concrete format
// such as a spreadsheet or a PDF document. Cells are kept sparse, keyed
// by position, each with display text, style tags and an optional merge
// span. A Matrix carries no question semantics; the survey layer writes
// into it and an external serializer reads it back out.
package matrix

import "sort"

// Border style tags applied by BoxRange.
const (
	StyleBoxLeft   = "boxL"
	StyleBoxRight  = "boxR"
	StyleBoxTop    = "boxT"
	StyleBoxBottom = "boxB"
)

// Matrix is a sparse grid of elements keyed by position. It is
// append-only during a layout pass and must only be written by a single
// goroutine: position-uniqueness checks are not atomic across calls.
type Matrix struct {
	cells   map[string]*Element
	lastRow int
}

func New() *Matrix {
	return &Matrix{cells: make(map[string]*Element)}
}

// Add inserts e at its primary position. Inserting at an occupied
// position fails with ErrPositionConflict, which is fatal to the layout
// pass. If e already carries a merge span the covered cells are joined
// immediately.
func (m *Matrix) Add(e *Element) error {
	pos := e.Pos()
	if have, ok := m.cells[pos]; ok {
		return conflictError(pos, have, e)
	}
	m.cells[pos] = e
	if e.Merged() {
		m.JoinElements(e)
	}
	if e.Row > m.lastRow {
		m.lastRow = e.Row
	}
	return nil
}

// Get returns the element at (row, col), if any.
func (m *Matrix) Get(row, col int) (*Element, bool) {
	e, ok := m.cells[posKey(row, col)]
	return e, ok
}

// Len returns the number of cells, placeholders included.
func (m *Matrix) Len() int {
	return len(m.cells)
}

// LastRow is the highest row index ever inserted.
func (m *Matrix) LastRow() int {
	return m.lastRow
}

// Elements returns every cell in row-major order. The export writer
// relies on this ordering being stable.
func (m *Matrix) Elements() []*Element {
	out := make([]*Element, 0, len(m.cells))
	for _, e := range m.cells {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// JoinElements marks every cell covered by root's merge span as joined
// to root. A covered cell that already holds data keeps nothing visible:
// it is marked joined and its data is discarded, a known trade-off of
// merging. Empty covered positions receive blank placeholders.
func (m *Matrix) JoinElements(root *Element) {
	rootPos := root.Pos()
	for v := 0; v <= root.MergeV; v++ {
		for h := 0; h <= root.MergeH; h++ {
			pos := posKey(root.Row+v, root.Col+h)
			if pos == rootPos {
				continue
			}
			if cell, ok := m.cells[pos]; ok {
				if cell.JoinedWith == rootPos {
					continue
				}
				cell.JoinedWith = rootPos
				continue
			}
			placeholder := NewElement(root.Row+v, root.Col+h, "")
			placeholder.JoinedWith = rootPos
			m.cells[pos] = placeholder
		}
	}
}

// JoinedStyles returns the styles of every cell covered by root's merge
// span, concatenated in row-major scan order. A merged region inherits
// the combined styling of the cells it covers.
func (m *Matrix) JoinedStyles(root *Element) []string {
	var styles []string
	for v := 0; v <= root.MergeV; v++ {
		for h := 0; h <= root.MergeH; h++ {
			if cell, ok := m.cells[posKey(root.Row+v, root.Col+h)]; ok {
				styles = append(styles, cell.Styles...)
			}
		}
	}
	return styles
}

// BoxRange draws a border box around a region: boxL/boxR down the two
// vertical edges for rows [startRow, endRow), boxT/boxB along the two
// horizontal edges for columns [startCol, endCol]. The bottom border
// lands on row endRow-1; rows are half-open and columns inclusive, which
// keeps boxes aligned with merged header cells.
func (m *Matrix) BoxRange(startRow, startCol, endRow, endCol int) {
	for r := startRow; r < endRow; r++ {
		m.styleOrCreate(r, startCol, StyleBoxLeft)
		m.styleOrCreate(r, endCol, StyleBoxRight)
	}
	for c := startCol; c <= endCol; c++ {
		m.styleOrCreate(startRow, c, StyleBoxTop)
		m.styleOrCreate(endRow-1, c, StyleBoxBottom)
	}
}

func (m *Matrix) styleOrCreate(row, col int, style string) {
	if cell, ok := m.cells[posKey(row, col)]; ok {
		cell.Styles = append(cell.Styles, style)
		return
	}
	// Adding a fresh blank cell cannot conflict.
	m.cells[posKey(row, col)] = NewElement(row, col, "", style)
	if row > m.lastRow {
		m.lastRow = row
	}
}
