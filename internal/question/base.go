package question

import (
	"fmt"

	"github.com/relieftools/surveygrid/internal/lang"
	"github.com/relieftools/surveygrid/internal/matrix"
)

// Type is the common contract of every question kind. The unexported
// adopt method keeps the set closed to this package.
type Type interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Description is the human-readable name of the kind.
	Description() string
	// Init binds the instance to a question record, loading it and its
	// metadata. It fails with ErrUnknownQuestion for an unknown id.
	Init(questionID int) error
	// Reload re-points the instance at questionID, forcing a fresh
	// record and metadata read even if the id is unchanged.
	Reload(questionID int) error
	// Question returns the bound record, nil when unbound.
	Question() *Question
	// Get returns one metadata value, or def when the descriptor is
	// absent.
	Get(descriptor, def string) string
	// Set stores one metadata value on the instance.
	Set(descriptor, value string)
	// LoadAnswer fetches the stored value for one response instance,
	// preferring a cached value unless force is set.
	LoadAnswer(completeID string, questionID int, force bool) (string, error)
	// CanonicalizeForStorage maps a just-submitted value to the string
	// that should be persisted. The default is identity.
	CanonicalizeForStorage(raw string) (string, error)
	// FullName is the display name used in reports.
	FullName() (string, error)
	// WriteMatrix lays the question out into m starting at (row, col)
	// and returns the cursor for the next question. When answerMap is
	// non-nil a lookup row mapping the question code to destination
	// cell references is appended to it.
	WriteMatrix(m *matrix.Matrix, row, col int, dict lang.Dict, answerMap *matrix.Matrix, style LayoutStyle) (nextRow, nextCol int, err error)

	// adopt re-points the instance at an already-loaded record and
	// metadata, used by Link and GridChild delegation.
	adopt(q *Question, meta map[string]string)
}

// base carries the state and behavior shared by all kinds.
type base struct {
	reg         *Registry
	kind        Kind
	description string

	id       int
	question *Question
	meta     map[string]string

	answerCompleteID string
	answerValue      string
	answerCached     bool
}

func newBase(r *Registry, kind Kind, description string) base {
	return base{reg: r, kind: kind, description: description, meta: map[string]string{}}
}

func (b *base) Kind() Kind          { return b.kind }
func (b *base) Description() string { return b.description }
func (b *base) Question() *Question { return b.question }

func (b *base) Init(questionID int) error {
	return b.load(questionID, false)
}

func (b *base) Reload(questionID int) error {
	return b.load(questionID, true)
}

// load fetches the question record and metadata unless they are already
// held for the same id and force is unset.
func (b *base) load(questionID int, force bool) error {
	if questionID != 0 && questionID != b.id {
		b.id = questionID
		force = true
	}
	if b.question != nil && !force {
		return nil
	}
	q, err := b.reg.store.QuestionByID(b.id)
	if err != nil {
		return err
	}
	meta, err := b.reg.store.MetadataForQuestion(b.id)
	if err != nil {
		return fmt.Errorf("metadata for question %d: %w", b.id, err)
	}
	b.question = q
	if b.meta == nil {
		b.meta = map[string]string{}
	}
	// Instance-level Set calls survive a reload of the same question;
	// stored metadata wins on conflict.
	for k, v := range meta {
		b.meta[k] = v
	}
	return nil
}

func (b *base) adopt(q *Question, meta map[string]string) {
	b.question = q
	if q != nil {
		b.id = q.ID
	}
	b.meta = meta
	if b.meta == nil {
		b.meta = map[string]string{}
	}
}

func (b *base) Get(descriptor, def string) string {
	if v, ok := b.meta[descriptor]; ok {
		return v
	}
	return def
}

func (b *base) Set(descriptor, value string) {
	b.meta[descriptor] = value
}

func (b *base) LoadAnswer(completeID string, questionID int, force bool) (string, error) {
	if err := b.load(questionID, false); err != nil {
		return "", err
	}
	if b.answerCached && b.answerCompleteID == completeID && !force {
		return b.answerValue, nil
	}
	value, _, err := b.reg.store.Answer(completeID, questionID)
	if err != nil {
		return "", fmt.Errorf("answer for (%s, %d): %w", completeID, questionID, err)
	}
	b.answerCompleteID = completeID
	b.answerValue = value
	b.answerCached = true
	return value, nil
}

// Answer returns the cached answer value, empty when none is loaded.
func (b *base) Answer() string {
	return b.answerValue
}

func (b *base) CanonicalizeForStorage(raw string) (string, error) {
	return raw, nil
}

func (b *base) FullName() (string, error) {
	if b.question == nil {
		return "", fmt.Errorf("question %d not loaded", b.id)
	}
	return b.question.Name, nil
}

// translatedName is the question name passed through the phrase
// dictionary for layout.
func (b *base) translatedName(dict lang.Dict) string {
	if b.question == nil {
		return ""
	}
	return lang.Translate(b.question.Name, dict)
}

// WriteMatrix is the default single-input layout: an optional label
// cell, then one input cell, label left or above per style.
func (b *base) WriteMatrix(m *matrix.Matrix, row, col int, dict lang.Dict, answerMap *matrix.Matrix, style LayoutStyle) (int, int, error) {
	if style.Label {
		if err := m.Add(matrix.NewElement(row, col, b.translatedName(dict), StyleSubHeader)); err != nil {
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
		if err := b.writeAnswerMapRow(answerMap, row, col); err != nil {
			return 0, 0, err
		}
	}
	return row + 1, col + 1, nil
}

// writeAnswerMapRow appends a single-cell lookup row: the question code
// followed by the destination cell reference.
func (b *base) writeAnswerMapRow(answerMap *matrix.Matrix, row, col int) error {
	ref, err := matrix.CellRef(row, col)
	if err != nil {
		return err
	}
	mapRow := answerMap.LastRow() + 1
	if err := answerMap.Add(matrix.NewElement(mapRow, 0, b.question.Code, StyleSubHeader)); err != nil {
		return err
	}
	return answerMap.Add(matrix.NewElement(mapRow, 3, ref, StyleText))
}

// delegate builds an instance of the kind named by the Type metadata
// and hands it this instance's record and metadata. Link and GridChild
// forward most operations through it.
func (b *base) delegate() (Type, error) {
	kindName := b.Get("Type", "")
	if kindName == "" {
		return nil, ErrMissingType
	}
	real, err := b.reg.New(Kind(kindName))
	if err != nil {
		return nil, err
	}
	real.adopt(b.question, b.meta)
	return real, nil
}
