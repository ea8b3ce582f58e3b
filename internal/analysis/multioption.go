package analysis

import (
	"fmt"

	"github.com/relieftools/surveygrid/internal/chart"
	"github.com/relieftools/surveygrid/internal/question"
)

// MultiOptionAnalysis tallies each individual selected option across
// all responses. Malformed answers decode to an empty selection and are
// excluded; percentages are whole numbers relative to the count of
// responses with at least one selection, not the total selection count.
type MultiOptionAnalysis struct {
	base
	qt *question.MultiOptionType

	selections [][]string
	order      []string
	tally      map[string]int
	percent    map[string]string
}

func newMultiOption(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	a := &MultiOptionAnalysis{base: newBase(reg, question.KindMultiOption, questionID, answers)}
	qt, err := reg.Open(question.KindMultiOption, questionID)
	if err != nil {
		return nil, err
	}
	a.qt = qt.(*question.MultiOptionType)
	for _, ans := range answers {
		selected := a.qt.DecodeSelections(ans.Value)
		if len(selected) == 0 {
			continue
		}
		a.selections = append(a.selections, selected)
	}
	a.basicResults()
	return a, nil
}

func (a *MultiOptionAnalysis) basicResults() {
	a.tally = map[string]int{}
	for _, selected := range a.selections {
		for _, option := range selected {
			if _, seen := a.tally[option]; !seen {
				a.order = append(a.order, option)
			}
			a.tally[option]++
		}
	}
	a.percent = map[string]string{}
	if len(a.selections) == 0 {
		return
	}
	for key, n := range a.tally {
		a.percent[key] = fmt.Sprintf("%d%%", 100*n/len(a.selections))
	}
}

func (a *MultiOptionAnalysis) Valid() int { return len(a.selections) }

// Tally returns the occurrence count for one option.
func (a *MultiOptionAnalysis) Tally(option string) int {
	return a.tally[option]
}

// Percent returns the formatted share for one option.
func (a *MultiOptionAnalysis) Percent(option string) string {
	return a.percent[option]
}

func (a *MultiOptionAnalysis) Summary() []Result {
	out := make([]Result, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, Result{Label: key, Value: a.percent[key]})
	}
	return out
}

func (a *MultiOptionAnalysis) ChartAvailable() bool {
	return len(a.selections) > 0
}

// DrawChart renders the option tally as a bar chart.
func (a *MultiOptionAnalysis) DrawChart(r chart.Renderer) error {
	s := chart.Series{Name: a.qt.Question().Name}
	for _, key := range a.order {
		s.Labels = append(s.Labels, key)
		s.Values = append(s.Values, float64(a.tally[key]))
	}
	return r.Bar(s)
}
