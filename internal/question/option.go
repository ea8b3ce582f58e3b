package question

import (
	"strconv"

	"github.com/relieftools/surveygrid/internal/lang"
	"github.com/relieftools/surveygrid/internal/matrix"
)

// OptionType is a single-choice question. Metadata:
//
//	Length  the number of options
//	"1".."Length"  one entry per option label
//
// YesNo, YesNoDontKnow and OptionOther are fixed or extended variants
// of the same layout and storage behavior.
type OptionType struct {
	base
	instructions string
	// options yields the selectable labels; variants override it.
	options func() ([]string, error)
}

func newOption(r *Registry) Type {
	t := &OptionType{
		base:         newBase(r, KindOption, "Option"),
		instructions: "Type x to mark box. Select just one option",
	}
	t.options = t.metadataOptions
	return t
}

func newYesNo(r *Registry) Type {
	t := &OptionType{
		base:         newBase(r, KindYesNo, "Yes, No"),
		instructions: "Type x to mark box.",
	}
	t.Set("Length", "2")
	t.options = func() ([]string, error) {
		return []string{"Yes", "No"}, nil
	}
	return t
}

func newYesNoDontKnow(r *Registry) Type {
	t := &OptionType{
		base:         newBase(r, KindYesNoDontKnow, "Yes, No, Don't Know"),
		instructions: "Type x to mark box.",
	}
	t.Set("Length", "3")
	t.options = func() ([]string, error) {
		return []string{"Yes", "No", "Don't Know"}, nil
	}
	return t
}

func newOptionOther(r *Registry) Type {
	t := &OptionType{
		base:         newBase(r, KindOptionOther, "Option Other"),
		instructions: "Type x to mark box. Select just one option",
	}
	t.options = func() ([]string, error) {
		list, err := t.metadataOptions()
		if err != nil {
			return nil, err
		}
		return append(list, "Other"), nil
	}
	return t
}

// Options returns the selectable labels in declared order. It fails
// with ErrMissingOptions when the option count was never configured.
func (t *OptionType) Options() ([]string, error) {
	return t.options()
}

func (t *OptionType) metadataOptions() ([]string, error) {
	raw := t.Get("Length", "")
	if raw == "" {
		return nil, ErrMissingOptions
	}
	length, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ErrMissingOptions
	}
	list := make([]string, 0, length)
	for i := 1; i <= length; i++ {
		list = append(list, t.Get(strconv.Itoa(i), ""))
	}
	return list, nil
}

// WriteMatrix lays out the label, the selection instructions, and one
// text/input cell pair per option. The answer-map row carries the code,
// the option count, the labels joined by "|#|", and one cell reference
// per option's input cell.
func (t *OptionType) WriteMatrix(m *matrix.Matrix, row, col int, dict lang.Dict, answerMap *matrix.Matrix, style LayoutStyle) (int, int, error) {
	if style.Label {
		label := matrix.NewElement(row, col, t.translatedName(dict), StyleSubHeader)
		if err := m.Add(label); err != nil {
			return 0, 0, err
		}
		if style.LabelLeft {
			col++
			if t.instructions != "" {
				instr := matrix.NewElement(row, col, lang.Translate(t.instructions, dict), StyleInstructions)
				if err := m.Add(instr); err != nil {
					return 0, 0, err
				}
				col++
			}
		} else {
			label.Merge(m, 1, 0)
			row++
			if t.instructions != "" {
				instr := matrix.NewElement(row, col, lang.Translate(t.instructions, dict), StyleInstructions)
				if err := m.Add(instr); err != nil {
					return 0, 0, err
				}
				instr.Merge(m, 1, 0)
				row++
			}
		}
	}
	list, err := t.Options()
	if err != nil {
		return 0, 0, err
	}
	answerRow, answerCol := 0, 3
	if answerMap != nil {
		answerRow = answerMap.LastRow() + 1
		if err := writeAnswerMapHeader(answerMap, answerRow, t.question.Code, list); err != nil {
			return 0, 0, err
		}
	}
	for _, option := range list {
		if err := m.Add(matrix.NewElement(row, col, lang.Translate(option, dict), StyleText)); err != nil {
			return 0, 0, err
		}
		if err := m.Add(matrix.NewElement(row, col+1, "", StyleInput)); err != nil {
			return 0, 0, err
		}
		if answerMap != nil {
			ref, err := matrix.CellRef(row, col+1)
			if err != nil {
				return 0, 0, err
			}
			if err := answerMap.Add(matrix.NewElement(answerRow, answerCol, ref, StyleText)); err != nil {
				return 0, 0, err
			}
			answerCol++
		}
		row++
	}
	return row, col + 2, nil
}

func writeAnswerMapHeader(answerMap *matrix.Matrix, row int, code string, labels []string) error {
	if err := answerMap.Add(matrix.NewElement(row, 0, code, StyleSubHeader)); err != nil {
		return err
	}
	if err := answerMap.Add(matrix.NewElement(row, 1, strconv.Itoa(len(labels)), StyleSubHeader)); err != nil {
		return err
	}
	return answerMap.Add(matrix.NewElement(row, 2, joinLabels(labels), StyleSubHeader))
}

// joinLabels joins answer-map labels with the "|#|" separator the
// export consumer splits on.
func joinLabels(labels []string) string {
	out := ""
	for i, l := range labels {
		if i > 0 {
			out += "|#|"
		}
		out += l
	}
	return out
}

// MultiOptionType is a multiple-choice question whose answer is stored
// as a JSON array of the selected labels.
type MultiOptionType struct {
	OptionType
}

func newMultiOption(r *Registry) Type {
	t := &MultiOptionType{
		OptionType: OptionType{
			base:         newBase(r, KindMultiOption, "Multi-Option"),
			instructions: "Type x to mark box. Select all applicable options",
		},
	}
	t.options = t.metadataOptions
	return t
}

// DecodeSelections decodes a stored answer into the selected labels.
// Malformed JSON decodes to an empty selection, never an error.
func (t *MultiOptionType) DecodeSelections(value string) []string {
	var list []string
	if err := decodeStoredJSON(value, &list); err != nil {
		return nil
	}
	return list
}

// EncodeSelections stores the selected labels as a JSON array.
func (t *MultiOptionType) EncodeSelections(labels []string) (string, error) {
	return encodeStoredJSON(labels)
}
