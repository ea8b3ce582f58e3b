// Package question models the closed set of survey question kinds: how
// each kind's metadata and answers are structured, canonicalized for
// storage, and laid out into a matrix for export. Records come from an
// external store consumed through the narrow Store interface.
package question

import (
	"go.uber.org/zap"
)

// Kind identifies one member of the closed set of question kinds.
type Kind string

const (
	KindString        Kind = "String"
	KindText          Kind = "Text"
	KindNumeric       Kind = "Numeric"
	KindDate          Kind = "Date"
	KindOption        Kind = "Option"
	KindYesNo         Kind = "YesNo"
	KindYesNoDontKnow Kind = "YesNoDontKnow"
	KindOptionOther   Kind = "OptionOther"
	KindMultiOption   Kind = "MultiOption"
	KindLocation      Kind = "Location"
	KindLink          Kind = "Link"
	KindGrid          Kind = "Grid"
	KindGridChild     Kind = "GridChild"
)

// Question is one question record from the store.
type Question struct {
	ID   int
	Code string
	Name string
	Type Kind
}

// Answer is one raw stored answer: the response instance it belongs to
// and the stored value. CompleteID is the join key across a respondent's
// answers to different questions.
type Answer struct {
	CompleteID string
	Value      string
}

// Location is one gazetteer record.
type Location struct {
	ID          int
	Name        string
	Alternative string
	Parent      string
	Level       string
	Lat         float64
	Lon         float64
}

// Store is the record-store collaborator. Implementations perform
// idempotent point reads; QuestionByID and QuestionByCode fail with
// ErrUnknownQuestion / ErrUnknownCode on a lookup miss. Metadata values
// are returned with surrounding double quotes stripped.
type Store interface {
	QuestionByID(id int) (*Question, error)
	QuestionByCode(code string) (*Question, error)
	MetadataForQuestion(id int) (map[string]string, error)
	Answer(completeID string, questionID int) (value string, ok bool, err error)
	SaveAnswer(completeID string, questionID int, value string) error
	UpsertQuestion(q Question, meta map[string]string) (int, error)
	LocationByID(id int) ([]Location, error)
	LocationsByName(name, parent string) ([]Location, error)
}

// Style tags written into layout matrices. The export writer maps these
// to concrete formatting.
const (
	StyleSubHeader    = "styleSubHeader"
	StyleInput        = "styleInput"
	StyleText         = "styleText"
	StyleInstructions = "styleInstructions"
)

// LayoutStyle controls how WriteMatrix places a question's label
// relative to its input cell.
type LayoutStyle struct {
	Label     bool
	LabelLeft bool
}

// DefaultLayout puts the label to the left of the input cell.
func DefaultLayout() LayoutStyle {
	return LayoutStyle{Label: true, LabelLeft: true}
}

// DefaultHierarchyLabels are the display names for the five
// administrative levels L0..L4 when no configuration overrides them.
var DefaultHierarchyLabels = [5]string{"Country", "Province", "District", "Community", "Village"}

// hierarchyKeys are the answer keys a Location answer may carry, in
// fixed walk order.
var hierarchyKeys = []string{"L0", "L1", "L2", "L3", "L4", "Latitude", "Longitude"}

// Registry resolves question kinds to fresh instances. The kind set is
// closed: adding a kind means extending the constructor table, which is
// a compile-time change.
type Registry struct {
	store     Store
	log       *zap.Logger
	hierarchy [5]string
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used by kinds that log (Location lookups).
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) { r.log = log }
}

// WithHierarchyLabels overrides the L0..L4 display labels.
func WithHierarchyLabels(labels [5]string) RegistryOption {
	return func(r *Registry) { r.hierarchy = labels }
}

func NewRegistry(store Store, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:     store,
		log:       zap.NewNop(),
		hierarchy: DefaultHierarchyLabels,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// constructors is the closed kind table.
var constructors = map[Kind]func(*Registry) Type{
	KindString:        newString,
	KindText:          newText,
	KindNumeric:       newNumeric,
	KindDate:          newDate,
	KindOption:        newOption,
	KindYesNo:         newYesNo,
	KindYesNoDontKnow: newYesNoDontKnow,
	KindOptionOther:   newOptionOther,
	KindMultiOption:   newMultiOption,
	KindLocation:      newLocation,
	KindLink:          newLink,
	KindGrid:          newGrid,
	KindGridChild:     newGridChild,
}

// Kinds returns every registered kind name, for validation and UIs.
func Kinds() []Kind {
	out := make([]Kind, 0, len(constructors))
	for k := range constructors {
		out = append(out, k)
	}
	return out
}

// New returns an unbound instance of the given kind.
func (r *Registry) New(kind Kind) (Type, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, unknownKindError(kind)
	}
	return ctor(r), nil
}

// Open returns an instance of kind bound to the question record and
// metadata for questionID.
func (r *Registry) Open(kind Kind, questionID int) (Type, error) {
	t, err := r.New(kind)
	if err != nil {
		return nil, err
	}
	if err := t.Init(questionID); err != nil {
		return nil, err
	}
	return t, nil
}

// ForQuestion loads the question record and dispatches on its stored
// kind.
func (r *Registry) ForQuestion(questionID int) (Type, error) {
	q, err := r.store.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	return r.Open(q.Type, questionID)
}

// Store exposes the record store for collaborators (analysis grouping
// needs sibling answers).
func (r *Registry) Store() Store {
	return r.store
}
