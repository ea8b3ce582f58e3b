package analysis

import (
	"fmt"

	"github.com/relieftools/surveygrid/internal/chart"
	"github.com/relieftools/surveygrid/internal/question"
)

// OptionAnalysis tallies occurrences per distinct option value.
// Percentages use one decimal place and are relative to the count of
// valid answers, not the raw reply count.
type OptionAnalysis struct {
	base
	qt *question.OptionType

	order   []string
	tally   map[string]int
	percent map[string]string
}

func newOptionKind(reg *question.Registry, kind question.Kind, questionID int, answers []question.Answer) (*OptionAnalysis, error) {
	a := &OptionAnalysis{base: newBase(reg, kind, questionID, answers)}
	qt, err := reg.Open(kind, questionID)
	if err != nil {
		return nil, err
	}
	a.qt = qt.(*question.OptionType)
	for _, ans := range answers {
		if ans.Value == "" {
			continue
		}
		a.values = append(a.values, ans.Value)
	}
	a.basicResults()
	return a, nil
}

func newOption(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	return newOptionKind(reg, question.KindOption, questionID, answers)
}

func newOptionOther(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	return newOptionKind(reg, question.KindOptionOther, questionID, answers)
}

func (a *OptionAnalysis) basicResults() {
	a.tally = map[string]int{}
	for _, v := range a.values {
		if _, seen := a.tally[v]; !seen {
			a.order = append(a.order, v)
		}
		a.tally[v]++
	}
	a.percent = map[string]string{}
	if len(a.values) == 0 {
		return
	}
	for key, n := range a.tally {
		a.percent[key] = fmt.Sprintf("%3.1f%%", 100.0*float64(n)/float64(len(a.values)))
	}
}

// Tally returns the occurrence count for one option value.
func (a *OptionAnalysis) Tally(value string) int {
	return a.tally[value]
}

// Percent returns the formatted share for one option value, empty when
// there were no valid answers at all.
func (a *OptionAnalysis) Percent(value string) string {
	return a.percent[value]
}

func (a *OptionAnalysis) Summary() []Result {
	out := make([]Result, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, Result{Label: key, Value: a.percent[key]})
	}
	return out
}

func (a *OptionAnalysis) ChartAvailable() bool {
	return len(a.values) > 0
}

// DrawChart renders the option tally as a pie.
func (a *OptionAnalysis) DrawChart(r chart.Renderer) error {
	return r.Pie(a.series())
}

func (a *OptionAnalysis) series() chart.Series {
	s := chart.Series{Name: a.qt.Question().Name}
	for _, key := range a.order {
		s.Labels = append(s.Labels, key)
		s.Values = append(s.Values, float64(a.tally[key]))
	}
	return s
}

// zeroFill guarantees a fixed label appears in the summary even with
// no occurrences: "0%" when there were valid answers, blank when the
// whole answer set was empty. The two states are deliberately distinct.
func (a *OptionAnalysis) zeroFill(label string) string {
	if p, ok := a.percent[label]; ok {
		return p
	}
	if len(a.values) == 0 {
		return ""
	}
	if _, seen := a.tally[label]; !seen {
		a.order = append(a.order, label)
	}
	a.tally[label] = 0
	a.percent[label] = "0%"
	return "0%"
}

// YesNoAnalysis fixes the summary rows to Yes and No, zero-filled.
type YesNoAnalysis struct {
	OptionAnalysis
}

func newYesNo(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	inner, err := newOptionKind(reg, question.KindYesNo, questionID, answers)
	if err != nil {
		return nil, err
	}
	return &YesNoAnalysis{OptionAnalysis: *inner}, nil
}

func (a *YesNoAnalysis) Summary() []Result {
	return []Result{
		{Label: "Yes", Value: a.zeroFill("Yes")},
		{Label: "No", Value: a.zeroFill("No")},
	}
}

// YesNoDontKnowAnalysis adds the Don't Know row.
type YesNoDontKnowAnalysis struct {
	OptionAnalysis
}

func newYesNoDontKnow(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	inner, err := newOptionKind(reg, question.KindYesNoDontKnow, questionID, answers)
	if err != nil {
		return nil, err
	}
	return &YesNoDontKnowAnalysis{OptionAnalysis: *inner}, nil
}

func (a *YesNoDontKnowAnalysis) Summary() []Result {
	return []Result{
		{Label: "Yes", Value: a.zeroFill("Yes")},
		{Label: "No", Value: a.zeroFill("No")},
		{Label: "Don't Know", Value: a.zeroFill("Don't Know")},
	}
}
