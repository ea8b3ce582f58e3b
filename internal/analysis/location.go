package analysis

import (
	"fmt"
	"strconv"

	"github.com/relieftools/surveygrid/internal/question"
)

// LocationAnalysis resolves each answer against the gazetteer and
// partitions the distinct lookup keys into known (exactly one match),
// duplicate (several matches) and unknown (none). Percentages are over
// distinct locations, not total responses.
type LocationAnalysis struct {
	base
	qt *question.LocationType

	lookups []*question.LookupResult

	occurrences map[string]int
	completeIDs map[string][]string
	known       map[string]question.Location
	duplicates  map[string][]question.Location

	knownCnt     int
	duplicateCnt int
	unknownCnt   int
	knownPct     string
	duplicatePct string
}

func newLocation(reg *question.Registry, questionID int, answers []question.Answer) (Analyzer, error) {
	a := &LocationAnalysis{base: newBase(reg, question.KindLocation, questionID, answers)}
	qt, err := reg.Open(question.KindLocation, questionID)
	if err != nil {
		return nil, err
	}
	a.qt = qt.(*question.LocationType)
	for _, ans := range answers {
		res, err := a.qt.LookupRecord(ans.CompleteID, ans.Value)
		if err != nil || res == nil {
			continue
		}
		a.lookups = append(a.lookups, res)
	}
	a.basicResults()
	return a, nil
}

func (a *LocationAnalysis) basicResults() {
	a.occurrences = map[string]int{}
	a.completeIDs = map[string][]string{}
	a.known = map[string]question.Location{}
	a.duplicates = map[string][]question.Location{}
	for _, res := range a.lookups {
		a.occurrences[res.Key]++
		a.completeIDs[res.Key] = append(a.completeIDs[res.Key], res.CompleteID)
		switch {
		case len(res.Matches) == 1:
			a.known[res.Key] = res.Matches[0]
		case len(res.Matches) > 1:
			a.duplicates[res.Key] = res.Matches
		}
	}
	a.knownCnt = len(a.known)
	a.duplicateCnt = len(a.duplicates)
	a.unknownCnt = len(a.occurrences) - a.knownCnt - a.duplicateCnt
	if len(a.occurrences) == 0 {
		a.knownPct = "0%"
		a.duplicatePct = "0%"
		return
	}
	a.knownPct = fmt.Sprintf("%d%%", 100*a.knownCnt/len(a.occurrences))
	a.duplicatePct = fmt.Sprintf("%d%%", 100*a.duplicateCnt/len(a.occurrences))
}

func (a *LocationAnalysis) Valid() int { return len(a.lookups) }

// Unique is the number of distinct lookup keys.
func (a *LocationAnalysis) Unique() int { return len(a.occurrences) }

// Known, Duplicates and Unknown report the partition sizes over
// distinct keys.
func (a *LocationAnalysis) Known() int      { return a.knownCnt }
func (a *LocationAnalysis) Duplicates() int { return a.duplicateCnt }
func (a *LocationAnalysis) Unknown() int    { return a.unknownCnt }

// KnownPercent and DuplicatePercent are shares over distinct keys.
func (a *LocationAnalysis) KnownPercent() string     { return a.knownPct }
func (a *LocationAnalysis) DuplicatePercent() string { return a.duplicatePct }

// KnownRecord returns the single gazetteer match for a key.
func (a *LocationAnalysis) KnownRecord(key string) (question.Location, bool) {
	loc, ok := a.known[key]
	return loc, ok
}

// CompleteIDs returns every response instance that named a key.
func (a *LocationAnalysis) CompleteIDs(key string) []string {
	return a.completeIDs[key]
}

func (a *LocationAnalysis) Summary() []Result {
	return []Result{
		{Label: "Known Locations", Value: strconv.Itoa(a.knownCnt)},
		{Label: "Duplicate Locations", Value: strconv.Itoa(a.duplicateCnt)},
		{Label: "Unknown Locations", Value: strconv.Itoa(a.unknownCnt)},
	}
}

func (a *LocationAnalysis) Count() []Result {
	return []Result{
		{Label: "Total Locations", Value: strconv.Itoa(len(a.lookups))},
		{Label: "Unique Locations", Value: strconv.Itoa(len(a.occurrences))},
	}
}
