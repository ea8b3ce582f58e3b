// Package analysis computes per-question summaries over collected
// answer sets. Every question kind has a matching analyzer; an analyzer
// canonicalizes the raw answers (silently dropping entries that fail to
// parse), computes its statistics eagerly at construction, and exposes
// ordered result rows plus chart data for the rendering collaborator.
package analysis

import (
	"strconv"

	"github.com/relieftools/surveygrid/internal/chart"
	"github.com/relieftools/surveygrid/internal/question"
)

// Result is one labelled summary row.
type Result struct {
	Label string
	Value string
}

// Analyzer holds all the responses for a single question and the
// statistics computed over them. Instances are immutable after
// construction; a new answer set means a new Analyzer.
type Analyzer interface {
	// Kind is the question kind this analyzer matches.
	Kind() question.Kind
	// QuestionID is the analyzed question.
	QuestionID() int
	// Replies is the raw answer count.
	Replies() int
	// Valid is the count of answers that survived canonicalization.
	Valid() int
	// Summary returns the kind-specific headline rows.
	Summary() []Result
	// Count returns the basic tally rows.
	Count() []Result
	// ChartAvailable reports whether DrawChart would produce output.
	ChartAvailable() bool
	// DrawChart hands the kind's chart data to the renderer.
	DrawChart(r chart.Renderer) error
	// GroupData buckets this question's raw answers by the distinct
	// values of a second question, joined on complete id. A grouping
	// value with no matching answer yields an empty bucket, keeping
	// empty categories visible in group-by charts.
	GroupData(groupAnswers []question.Answer) map[string][]string
}

// Constructor table mirroring the question kind table. Adding a kind is
// a compile-time change in both. Populated in init because the link and
// grid-child constructors dispatch back through New.
var constructors map[question.Kind]func(*question.Registry, int, []question.Answer) (Analyzer, error)

func init() {
	constructors = map[question.Kind]func(*question.Registry, int, []question.Answer) (Analyzer, error){
		question.KindString:        newCountOnly,
		question.KindText:          newCountOnly,
		question.KindDate:          newCountOnly,
		question.KindNumeric:       newNumeric,
		question.KindOption:        newOption,
		question.KindYesNo:         newYesNo,
		question.KindYesNoDontKnow: newYesNoDontKnow,
		question.KindOptionOther:   newOptionOther,
		question.KindMultiOption:   newMultiOption,
		question.KindLocation:      newLocation,
		question.KindLink:          newLink,
		question.KindGrid:          newGrid,
		question.KindGridChild:     newGridChild,
	}
}

// New builds the analyzer matching kind over one answer-set snapshot.
func New(reg *question.Registry, kind question.Kind, questionID int, answers []question.Answer) (Analyzer, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, unknownKindError(kind)
	}
	return ctor(reg, questionID, answers)
}

// ForQuestion dispatches on the question's stored kind.
func ForQuestion(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	q, err := reg.Store().QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	return New(reg, q.Type, questionID, answers)
}

// base carries the shared state: the raw answers and the canonicalized
// string values. Kinds with typed values (numeric, multi-option,
// location) keep their own slice and leave values empty.
type base struct {
	kind       question.Kind
	questionID int
	reg        *question.Registry
	answers    []question.Answer
	values     []string
}

func newBase(reg *question.Registry, kind question.Kind, questionID int, answers []question.Answer) base {
	return base{kind: kind, questionID: questionID, reg: reg, answers: answers}
}

func (b *base) Kind() question.Kind { return b.kind }
func (b *base) QuestionID() int     { return b.questionID }
func (b *base) Replies() int        { return len(b.answers) }
func (b *base) Valid() int          { return len(b.values) }

func (b *base) Count() []Result {
	return []Result{{Label: "Replies", Value: strconv.Itoa(len(b.answers))}}
}

func (b *base) Summary() []Result {
	return b.Count()
}

func (b *base) ChartAvailable() bool { return false }

func (b *base) DrawChart(r chart.Renderer) error {
	return noChartError(b.kind)
}

// uniqueCount tallies occurrences of each canonicalized value.
func (b *base) uniqueCount() map[string]int {
	m := map[string]int{}
	for _, v := range b.values {
		m[v]++
	}
	return m
}

// countOnly serves String, Text and Date: identity canonicalization and
// a plain reply count, no chart.
type countOnly struct {
	base
}

func newCountOnly(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	a := &countOnly{base: newBase(reg, "", questionID, answers)}
	q, err := reg.Store().QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	a.kind = q.Type
	for _, ans := range answers {
		a.values = append(a.values, ans.Value)
	}
	return a, nil
}

// gridAnalysis performs no analysis of its own: grid children are
// analyzed individually under their own codes.
type gridAnalysis struct {
	base
}

func newGrid(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	return &gridAnalysis{base: newBase(reg, question.KindGrid, questionID, answers)}, nil
}
