package question

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/relieftools/surveygrid/internal/lang"
	"github.com/relieftools/surveygrid/internal/matrix"
)

// GridType is a composite question laid out as a 2-D array of child
// cells. Metadata:
//
//	Subtitle    text for the grid's first column and row
//	QuestionNo  the number of the first child question, used in codes
//	col-cnt     number of data columns
//	row-cnt     number of data rows
//	columns     JSON array of column headings
//	rows        JSON array of row headings
//	data        JSON matrix: each cell "Blank" or a child kind name
//
// Child questions are synthesized as GridChild records with codes
// <parentCode><n> counting up from QuestionNo.
type GridType struct {
	base
}

func newGrid(r *Registry) Type {
	t := &GridType{base: newBase(r, KindGrid, "Grid")}
	return t
}

// GridBlank marks a data cell that holds no child question.
const GridBlank = "Blank"

// GridConfig is the parsed form of the grid metadata.
type GridConfig struct {
	Subtitle   string
	QuestionNo int
	ColCnt     int
	RowCnt     int
	Columns    []string
	Rows       []string
	Data       [][]string
}

// Config parses the grid metadata once into named fields.
func (t *GridType) Config() (*GridConfig, error) {
	cfg := &GridConfig{
		Subtitle:   t.Get("Subtitle", ""),
		QuestionNo: intMeta(&t.base, "QuestionNo", 1),
		ColCnt:     intMeta(&t.base, "col-cnt", 0),
		RowCnt:     intMeta(&t.base, "row-cnt", 0),
	}
	for name, dst := range map[string]*[]string{"columns": &cfg.Columns, "rows": &cfg.Rows} {
		raw := t.Get(name, "")
		if raw == "" {
			continue
		}
		if err := decodeStoredJSON(raw, dst); err != nil {
			return nil, fmt.Errorf("grid %s metadata: %w", name, err)
		}
	}
	if raw := t.Get("data", ""); raw != "" {
		if err := decodeStoredJSON(raw, &cfg.Data); err != nil {
			return nil, fmt.Errorf("grid data metadata: %w", err)
		}
	}
	return cfg, nil
}

// Heading returns the column heading for the child question with the
// given number.
func (t *GridType) Heading(number int) (string, error) {
	cfg, err := t.Config()
	if err != nil {
		return "", err
	}
	if cfg.ColCnt == 0 {
		return "", fmt.Errorf("grid %s has no col-cnt", t.question.Code)
	}
	col := (number - cfg.QuestionNo) % cfg.ColCnt
	if col < 0 || col >= len(cfg.Columns) {
		return "", fmt.Errorf("grid %s has no heading for question %d", t.question.Code, number)
	}
	return cfg.Columns[col], nil
}

// WriteMatrix draws the subtitle, a heading row (written once during
// the first data row), the row headings, and each non-blank cell via
// the child's real kind. The cursor advances past the tallest child.
func (t *GridType) WriteMatrix(m *matrix.Matrix, row, col int, dict lang.Dict, answerMap *matrix.Matrix, style LayoutStyle) (int, int, error) {
	cfg, err := t.Config()
	if err != nil {
		return 0, 0, err
	}
	startCol := col
	nextRow, nextCol := row, col
	childStyle := style
	childStyle.Label = false
	if len(cfg.Data) == 0 {
		return nextRow + 1, nextCol, nil
	}
	if err := m.Add(matrix.NewElement(row, col, lang.Translate(cfg.Subtitle, dict), StyleSubHeader)); err != nil {
		return 0, 0, err
	}
	nextRow++
	firstRun := true
	headerCol := 0
	codeNum := cfg.QuestionNo
	for rowIdx, line := range cfg.Data {
		col = startCol
		row = nextRow
		if rowIdx >= len(cfg.Rows) {
			return 0, 0, fmt.Errorf("grid %s has no row heading for data row %d", t.question.Code, rowIdx)
		}
		if err := m.Add(matrix.NewElement(row, col, lang.Translate(cfg.Rows[rowIdx], dict), StyleText)); err != nil {
			return 0, 0, err
		}
		col++
		for _, cell := range line {
			if firstRun {
				if headerCol >= len(cfg.Columns) {
					return 0, 0, fmt.Errorf("grid %s has no column heading for column %d", t.question.Code, headerCol)
				}
				// The heading row sits above the first data row; its
				// width is only known while walking that row's cells.
				heading := matrix.NewElement(row-1, col, lang.Translate(cfg.Columns[headerCol], dict), StyleSubHeader)
				if err := m.Add(heading); err != nil {
					return 0, 0, err
				}
				headerCol++
			}
			if cell == GridBlank {
				col++
				continue
			}
			child, err := t.ChildQuestion(codeNum)
			codeNum++
			if err != nil {
				return 0, 0, err
			}
			real, err := child.delegate()
			if err != nil {
				return 0, 0, err
			}
			endRow, endCol, err := real.WriteMatrix(m, row, col, dict, answerMap, childStyle)
			if err != nil {
				return 0, 0, err
			}
			col = endCol
			if endRow > nextRow {
				nextRow = endRow
			}
		}
		if col > nextCol {
			nextCol = col
		}
		firstRun = false
	}
	return nextRow + 1, nextCol, nil
}

// ChildQuestion loads the synthesized child with the given number.
func (t *GridType) ChildQuestion(number int) (*GridChildType, error) {
	code := fmt.Sprintf("%s%d", t.question.Code, number)
	q, err := t.reg.store.QuestionByCode(code)
	if err != nil {
		return nil, err
	}
	child, err := t.reg.Open(KindGridChild, q.ID)
	if err != nil {
		return nil, err
	}
	return child.(*GridChildType), nil
}

// InsertChildren synthesizes one GridChild record per non-blank data
// cell, binding each to its true kind via Type metadata. Existing
// records with the same code are updated in place.
func (t *GridType) InsertChildren() error {
	cfg, err := t.Config()
	if err != nil {
		return err
	}
	codeNum := cfg.QuestionNo
	for rowIdx, line := range cfg.Data {
		if rowIdx >= len(cfg.Rows) {
			return fmt.Errorf("grid %s has no row heading for data row %d", t.question.Code, rowIdx)
		}
		name := cfg.Rows[rowIdx]
		for _, cell := range line {
			if cell == GridBlank {
				continue
			}
			code := fmt.Sprintf("%s%d", t.question.Code, codeNum)
			codeNum++
			childMeta := map[string]string{}
			if raw := t.Get(code, ""); raw != "" {
				var extra map[string]any
				if err := decodeStoredJSON(raw, &extra); err == nil {
					for k, v := range extra {
						childMeta[k] = metaString(v)
					}
				}
			}
			childMeta["Type"] = cell
			q := Question{Code: code, Name: name, Type: KindGridChild}
			if _, err := t.reg.store.UpsertQuestion(q, childMeta); err != nil {
				return fmt.Errorf("insert grid child %s: %w", code, err)
			}
		}
	}
	return nil
}

func metaString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// GridChildType is a thin pass-through to the kind named by its Type
// metadata. The parent grid draws it; on its own it contributes nothing
// to layout.
type GridChildType struct {
	base
	parentCode   string
	parentNumber int
}

func newGridChild(r *Registry) Type {
	t := &GridChildType{base: newBase(r, KindGridChild, "Grid Child")}
	return t
}

func (t *GridChildType) Init(questionID int) error {
	if err := t.base.Init(questionID); err != nil {
		return err
	}
	// Child codes are <parentCode><number> where the parent code ends
	// with a hyphen.
	code := t.question.Code
	if idx := strings.LastIndex(code, "-"); idx >= 0 {
		t.parentCode = code[:idx+1]
		t.parentNumber, _ = strconv.Atoi(code[idx+1:])
	}
	return nil
}

// Target returns the delegate instance of the child's true kind.
func (t *GridChildType) Target() (Type, error) {
	return t.delegate()
}

// TargetKind is the kind this child really is.
func (t *GridChildType) TargetKind() Kind {
	return Kind(t.Get("Type", ""))
}

// CanonicalizeForStorage defers to the true kind.
func (t *GridChildType) CanonicalizeForStorage(raw string) (string, error) {
	real, err := t.delegate()
	if err != nil {
		return "", err
	}
	return real.CanonicalizeForStorage(raw)
}

// FullName is "<parent name> - <child name> (<column heading>)" when the
// parent grid resolves, otherwise the child's own name.
func (t *GridChildType) FullName() (string, error) {
	if t.parentCode == "" {
		return t.question.Name, nil
	}
	parentQ, err := t.reg.store.QuestionByCode(t.parentCode)
	if err != nil {
		return t.question.Name, nil
	}
	parent, err := t.reg.Open(KindGrid, parentQ.ID)
	if err != nil {
		return t.question.Name, nil
	}
	heading, err := parent.(*GridType).Heading(t.parentNumber)
	if err != nil {
		return t.question.Name, nil
	}
	return fmt.Sprintf("%s - %s (%s)", parentQ.Name, t.question.Name, heading), nil
}

// WriteMatrix is deliberately a no-op: the parent grid lays children
// out.
func (t *GridChildType) WriteMatrix(m *matrix.Matrix, row, col int, dict lang.Dict, answerMap *matrix.Matrix, style LayoutStyle) (int, int, error) {
	return row, col, nil
}
