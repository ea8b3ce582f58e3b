package analysis

import (
	"fmt"

	"github.com/relieftools/surveygrid/internal/chart"
	"github.com/relieftools/surveygrid/internal/question"
)

// LinkAnalysis delegates to an inner analyzer of the kind named by the
// link's Type metadata. With a "groupby" relation, answers are first
// regrouped so only the latest answer per distinct parent-question
// value survives.
type LinkAnalysis struct {
	inner Analyzer
	kind  question.Kind
}

func newLink(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	qt, err := reg.Open(question.KindLink, questionID)
	if err != nil {
		return nil, err
	}
	link := qt.(*question.LinkType)
	target := link.TargetKind()
	if target == "" {
		return nil, question.ErrMissingType
	}
	if link.Relation() == "groupby" {
		answers, err = regroupByParent(link, answers)
		if err != nil {
			return nil, err
		}
	}
	inner, err := New(reg, target, questionID, answers)
	if err != nil {
		return nil, fmt.Errorf("link target %q: %w", target, err)
	}
	return &LinkAnalysis{inner: inner, kind: question.KindLink}, nil
}

// regroupByParent keeps, per distinct value of the parent question, the
// last answer seen. The join is on complete id.
func regroupByParent(link *question.LinkType, answers []question.Answer) ([]question.Answer, error) {
	parentID, err := link.ParentQuestionID()
	if err != nil {
		return nil, err
	}
	byParent := map[string]question.Answer{}
	var order []string
	for _, ans := range answers {
		parentValue, err := link.LoadAnswer(ans.CompleteID, parentID, true)
		if err != nil {
			return nil, err
		}
		if _, seen := byParent[parentValue]; !seen {
			order = append(order, parentValue)
		}
		byParent[parentValue] = ans
	}
	out := make([]question.Answer, 0, len(order))
	for _, key := range order {
		out = append(out, byParent[key])
	}
	return out, nil
}

func (a *LinkAnalysis) Kind() question.Kind { return a.kind }
func (a *LinkAnalysis) QuestionID() int     { return a.inner.QuestionID() }
func (a *LinkAnalysis) Replies() int        { return a.inner.Replies() }
func (a *LinkAnalysis) Valid() int          { return a.inner.Valid() }
func (a *LinkAnalysis) Summary() []Result   { return a.inner.Summary() }
func (a *LinkAnalysis) Count() []Result     { return a.inner.Count() }

func (a *LinkAnalysis) ChartAvailable() bool { return a.inner.ChartAvailable() }

func (a *LinkAnalysis) DrawChart(r chart.Renderer) error { return a.inner.DrawChart(r) }

func (a *LinkAnalysis) GroupData(groupAnswers []question.Answer) map[string][]string {
	return a.inner.GroupData(groupAnswers)
}

// Target exposes the inner analyzer for kind-specific operations such
// as NumericAnalysis.SumFilter.
func (a *LinkAnalysis) Target() Analyzer { return a.inner }

// gridChildAnalysis resolves the child's true kind and delegates.
func newGridChild(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	qt, err := reg.Open(question.KindGridChild, questionID)
	if err != nil {
		return nil, err
	}
	child := qt.(*question.GridChildType)
	target := child.TargetKind()
	if target == "" {
		return nil, question.ErrMissingType
	}
	inner, err := New(reg, target, questionID, answers)
	if err != nil {
		return nil, fmt.Errorf("grid child target %q: %w", target, err)
	}
	return &LinkAnalysis{inner: inner, kind: question.KindGridChild}, nil
}
