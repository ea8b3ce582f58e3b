package matrix

import "fmt"

// Element is a single addressable cell of a Matrix.
//
// An element occupies exactly one primary position. Setting MergeH/MergeV
// extends its visual footprint over MergeH+1 columns and MergeV+1 rows;
// the covered secondary positions hold placeholder elements whose
// JoinedWith names the primary's position. Elements never reference the
// matrices that hold them; merging is performed by handing the matrix to
// Merge explicitly.
type Element struct {
	Row, Col   int
	Text       string
	Styles     []string
	MergeH     int
	MergeV     int
	JoinedWith string // position key of the merge root, "" when unjoined
}

// NewElement creates a standalone element. It becomes part of a layout
// only once added to a Matrix.
func NewElement(row, col int, text string, styles ...string) *Element {
	return &Element{Row: row, Col: col, Text: text, Styles: styles}
}

// Pos returns the canonical "row,col" position key.
func (e *Element) Pos() string {
	return posKey(e.Row, e.Col)
}

// Merge sets the merge span and joins the covered cells in m.
// Joining cells that already hold data discards that data; this is an
// accepted consequence of merging, not an error.
func (e *Element) Merge(m *Matrix, horizontal, vertical int) {
	e.MergeH = horizontal
	e.MergeV = vertical
	m.JoinElements(e)
}

// Merged reports whether the element spans more than one cell.
func (e *Element) Merged() bool {
	return e.MergeH > 0 || e.MergeV > 0
}

// Joined reports whether the element is a secondary cell of a merge span.
func (e *Element) Joined() bool {
	return e.JoinedWith != ""
}

// NextRow is the first row below the element's footprint.
func (e *Element) NextRow() int {
	return e.Row + e.MergeV + 1
}

// NextCol is the first column right of the element's footprint.
func (e *Element) NextCol() int {
	return e.Col + e.MergeH + 1
}

func posKey(row, col int) string {
	return fmt.Sprintf("%d,%d", row, col)
}
