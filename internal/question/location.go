package question

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/relieftools/surveygrid/internal/lang"
	"github.com/relieftools/surveygrid/internal/matrix"
)

// LocationType links an answer to the gazetteer. The answer is either a
// plain place name or a JSON structure carrying the administrative
// hierarchy:
//
//	{'raw':..,'id':..,'alternative':..,'parent':..,
//	 'L0':..,'L1':..,'L2':..,'L3':..,'L4':..,
//	 'Latitude':..,'Longitude':..}
//
// Metadata:
//
//	Hierarchy  when set, layout expands to one labelled row per level
//	Parent     code of a sibling question naming the parent location
type LocationType struct {
	base
}

func newLocation(r *Registry) Type {
	t := &LocationType{base: newBase(r, KindLocation, "Location")}
	return t
}

// LocationAnswer is the decoded JSON form of a location answer.
type LocationAnswer struct {
	Raw         string `json:"raw,omitempty"`
	ID          int    `json:"id,omitempty"`
	Alternative string `json:"alternative,omitempty"`
	Parent      string `json:"parent,omitempty"`
	L0          string `json:"L0,omitempty"`
	L1          string `json:"L1,omitempty"`
	L2          string `json:"L2,omitempty"`
	L3          string `json:"L3,omitempty"`
	L4          string `json:"L4,omitempty"`
	Latitude    string `json:"Latitude,omitempty"`
	Longitude   string `json:"Longitude,omitempty"`
}

// levels returns the administrative level values in L0..L4 order.
func (a LocationAnswer) levels() [5]string {
	return [5]string{a.L0, a.L1, a.L2, a.L3, a.L4}
}

// DecodeAnswer decodes a stored location answer. Plain-text answers
// fail the decode; the caller falls back to treating the value as a
// bare place name.
func DecodeAnswer(value string) (LocationAnswer, error) {
	var a LocationAnswer
	if err := decodeStoredJSON(value, &a); err != nil {
		return LocationAnswer{}, fmt.Errorf("decode location answer: %w", err)
	}
	return a, nil
}

// DisplayValue returns the place name to show for a stored answer: the
// raw field of a JSON answer, or the value itself.
func (t *LocationType) DisplayValue(value string) string {
	if a, err := DecodeAnswer(value); err == nil && a.Raw != "" {
		return a.Raw
	}
	return value
}

// CanonicalizeForStorage walks the hierarchy L0..L4, keeps the last
// populated level as raw and the one before it as parent, and re-encodes
// the hierarchy. A value that is not JSON is stored untouched.
func (t *LocationType) CanonicalizeForStorage(raw string) (string, error) {
	a, err := DecodeAnswer(raw)
	if err != nil {
		return raw, nil
	}
	canonical := LocationAnswer{
		L0: a.L0, L1: a.L1, L2: a.L2, L3: a.L3, L4: a.L4,
		Latitude: a.Latitude, Longitude: a.Longitude,
	}
	last, prev := "", ""
	for _, name := range a.levels() {
		if name != "" {
			prev = last
			last = name
		}
	}
	canonical.Raw = last
	canonical.Parent = prev
	return encodeStoredJSON(canonical)
}

// LookupResult is the outcome of resolving one answer against the
// gazetteer. Key identifies the lookup value; zero matches is an
// unknown location, one is known, several is a duplicate.
type LookupResult struct {
	Key        string
	CompleteID string
	Matches    []Location
}

// LookupRecord resolves a stored answer to gazetteer records: by id
// when the answer carries one, otherwise by name (preferring the
// alternative name) constrained to children of the parent hint when
// present. A miss is reported in the result, not raised.
func (t *LocationType) LookupRecord(completeID, answer string) (*LookupResult, error) {
	if answer == "" {
		return nil, nil
	}
	result := &LookupResult{CompleteID: completeID}
	a, err := DecodeAnswer(answer)
	if err != nil {
		result.Key = answer
		result.Matches, err = t.reg.store.LocationsByName(answer, "")
		if err != nil {
			return nil, err
		}
	} else if a.ID != 0 {
		result.Key = fmt.Sprintf("#%d", a.ID)
		result.Matches, err = t.reg.store.LocationByID(a.ID)
		if err != nil {
			return nil, err
		}
	} else {
		name := a.Raw
		if a.Alternative != "" {
			name = a.Alternative
		}
		result.Key = name
		if a.Parent != "" {
			result.Key = name + "|" + a.Parent
		}
		result.Matches, err = t.reg.store.LocationsByName(name, a.Parent)
		if err != nil {
			return nil, err
		}
	}
	if len(result.Matches) == 0 {
		t.reg.log.Debug("unknown location",
			zap.String("answer", answer),
			zap.String("key", result.Key),
			zap.String("complete_id", completeID))
	}
	return result, nil
}

// WriteMatrix without a Hierarchy metadata entry is the plain
// single-input layout. With it, the question name becomes a subtitle
// and each hierarchy element gets its own labelled input row.
func (t *LocationType) WriteMatrix(m *matrix.Matrix, row, col int, dict lang.Dict, answerMap *matrix.Matrix, style LayoutStyle) (int, int, error) {
	if t.Get("Hierarchy", "") == "" {
		return t.base.WriteMatrix(m, row, col, dict, answerMap, style)
	}
	if err := m.Add(matrix.NewElement(row, col, t.translatedName(dict), StyleSubHeader)); err != nil {
		return 0, 0, err
	}
	row++
	originalCol := col
	answerRow, answerPos := 0, 3
	if answerMap != nil {
		answerRow = answerMap.LastRow() + 1
		if err := writeAnswerMapHeader(answerMap, answerRow, t.question.Code, hierarchyKeys); err != nil {
			return 0, 0, err
		}
	}
	for _, label := range t.hierarchyLabels() {
		col = originalCol
		if style.Label {
			if err := m.Add(matrix.NewElement(row, col, lang.Translate(label, dict), StyleSubHeader)); err != nil {
				return 0, 0, err
			}
			if style.LabelLeft {
				col++
			} else {
				row++
			}
		}
		if err := m.Add(matrix.NewElement(row, col, "", StyleInput)); err != nil {
			return 0, 0, err
		}
		if answerMap != nil {
			ref, err := matrix.CellRef(row, col)
			if err != nil {
				return 0, 0, err
			}
			if err := answerMap.Add(matrix.NewElement(answerRow, answerPos, ref, StyleText)); err != nil {
				return 0, 0, err
			}
			answerPos++
		}
		row++
	}
	return row + 1, col + 1, nil
}

// hierarchyLabels are the display names for the hierarchy rows: the
// configured L0..L4 labels followed by Latitude and Longitude.
func (t *LocationType) hierarchyLabels() []string {
	labels := make([]string, 0, 7)
	labels = append(labels, t.reg.hierarchy[:]...)
	return append(labels, "Latitude", "Longitude")
}
