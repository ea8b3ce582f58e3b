package analysis

import (
	"math"
	"strconv"

	"github.com/relieftools/surveygrid/internal/chart"
	"github.com/relieftools/surveygrid/internal/question"
)

// histCutoff is the minimum number of valid values before a histogram
// is worth drawing.
const histCutoff = 10

// NumericAnalysis computes count, sum, min, max and mean eagerly, and
// population standard deviation with per-response z-scores on demand
// via Advanced. Z-scores feed the priority banding used to color map
// markers.
type NumericAnalysis struct {
	base
	qt     *question.NumericType
	nums   []float64
	scores map[string]float64

	hasValues bool
	sum       float64
	min       float64
	max       float64
	mean      float64
	std       float64
	advanced  bool
}

func newNumeric(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	a := &NumericAnalysis{base: newBase(reg, question.KindNumeric, questionID, answers)}
	qt, err := reg.Open(question.KindNumeric, questionID)
	if err != nil {
		return nil, err
	}
	a.qt = qt.(*question.NumericType)
	for _, ans := range answers {
		v, err := strconv.ParseFloat(ans.Value, 64)
		if err != nil {
			continue
		}
		a.nums = append(a.nums, v)
	}
	a.basicResults()
	return a, nil
}

func (a *NumericAnalysis) basicResults() {
	if len(a.nums) == 0 {
		return
	}
	a.hasValues = true
	a.min = a.nums[0]
	a.max = a.nums[0]
	for _, v := range a.nums {
		a.sum += v
		if v > a.max {
			a.max = v
		}
		if v < a.min {
			a.min = v
		}
	}
	a.mean = a.sum / float64(len(a.nums))
}

func (a *NumericAnalysis) Valid() int { return len(a.nums) }

// Sum, Mean, Min and Max report the eager statistics; the boolean is
// false when no answer parsed as a number.
func (a *NumericAnalysis) Sum() (float64, bool)  { return a.sum, a.hasValues }
func (a *NumericAnalysis) Mean() (float64, bool) { return a.mean, a.hasValues }
func (a *NumericAnalysis) Min() (float64, bool)  { return a.min, a.hasValues }
func (a *NumericAnalysis) Max() (float64, bool)  { return a.max, a.hasValues }

func (a *NumericAnalysis) Summary() []Result {
	if !a.hasValues {
		return nil
	}
	format := a.qt.Config().Format
	return []Result{
		{Label: "Total", Value: question.FormatNumber(a.sum, format)},
		{Label: "Average", Value: question.FormatNumber(a.mean, format)},
		{Label: "Maximum", Value: question.FormatNumber(a.max, format)},
		{Label: "Minimum", Value: question.FormatNumber(a.min, format)},
	}
}

func (a *NumericAnalysis) Count() []Result {
	return []Result{
		{Label: "Replies", Value: strconv.Itoa(len(a.answers))},
		{Label: "Valid", Value: strconv.Itoa(len(a.nums))},
	}
}

// Advanced computes the population standard deviation and a z-score per
// response. It fails with ErrNoData when no answer parsed.
func (a *NumericAnalysis) Advanced() error {
	if a.advanced {
		return nil
	}
	if len(a.nums) == 0 {
		return ErrNoData
	}
	var sq float64
	for _, v := range a.nums {
		d := v - a.mean
		sq += d * d
	}
	a.std = math.Sqrt(sq / float64(len(a.nums)))
	a.scores = make(map[string]float64, len(a.answers))
	for _, ans := range a.answers {
		v, err := strconv.ParseFloat(ans.Value, 64)
		if err != nil {
			continue
		}
		if a.std == 0 {
			a.scores[ans.CompleteID] = 0
			continue
		}
		a.scores[ans.CompleteID] = (v - a.mean) / a.std
	}
	a.advanced = true
	return nil
}

// StdDev returns the population standard deviation computed by
// Advanced.
func (a *NumericAnalysis) StdDev() (float64, bool) {
	return a.std, a.advanced
}

// ZScore returns the z-score for one response instance.
func (a *NumericAnalysis) ZScore(completeID string) (float64, bool) {
	z, ok := a.scores[completeID]
	return z, ok
}

// Priority classifies one response's z-score against the banding
// boundaries: the index of the first boundary at or above the score,
// or len(boundaries) when it exceeds them all. A response without a
// z-score is -1, no data.
func (a *NumericAnalysis) Priority(completeID string, b Banding) int {
	z, ok := a.scores[completeID]
	if !ok {
		return -1
	}
	for i, limit := range b.Boundaries {
		if z <= limit {
			return i
		}
	}
	return len(b.Boundaries)
}

// PriorityBand converts the z-score boundaries into absolute values in
// the question's units, for labelling bands. The leading entry is
// blank so indices line up with RangeText.
func (a *NumericAnalysis) PriorityBand(b Banding) []string {
	band := []string{""}
	for _, limit := range b.Boundaries {
		band = append(band, strconv.Itoa(int(a.mean+limit*a.std)))
	}
	return band
}

func (a *NumericAnalysis) ChartAvailable() bool {
	return len(a.nums) >= histCutoff
}

// DrawChart renders the value distribution as a ten-bin histogram.
func (a *NumericAnalysis) DrawChart(r chart.Renderer) error {
	h, err := a.Histogram()
	if err != nil {
		return err
	}
	return r.Hist(*h)
}

// Histogram returns the chart data for the value distribution.
func (a *NumericAnalysis) Histogram() (*chart.Histogram, error) {
	if !a.hasValues {
		return nil, ErrNoData
	}
	name := a.qt.Question().Name
	return &chart.Histogram{
		Name:   name,
		Values: append([]float64(nil), a.nums...),
		Bins:   10,
		Min:    0,
		Max:    a.max,
		XLabel: name,
		YLabel: "Count",
	}, nil
}

// SumFilter reduces grouped raw values to per-group sums. Entries that
// do not parse as numbers contribute nothing.
func (a *NumericAnalysis) SumFilter(grouped map[string][]string) map[string]float64 {
	out := make(map[string]float64, len(grouped))
	for key, values := range grouped {
		var sum float64
		for _, raw := range values {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				sum += v
			}
		}
		out[key] = sum
	}
	return out
}
