// Package report renders survey analysis results as markdown, HTML and
// PDF summaries.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/relieftools/surveygrid/internal/analysis"
	"github.com/relieftools/surveygrid/internal/question"
)

// Section pairs one question with its computed analysis.
type Section struct {
	Question *question.Question
	Analyzer analysis.Analyzer
}

// BuildMarkdown renders the whole survey summary as GFM markdown. Each
// question gets its tally and summary tables; numeric questions with
// enough data additionally get the priority band table used for map
// legends.
func BuildMarkdown(title string, banding analysis.Banding, sections []Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Questions: %d\n\n", len(sections))

	for _, s := range sections {
		writeSection(&b, s, banding)
	}
	return b.String()
}

func writeSection(b *strings.Builder, s Section, banding analysis.Banding) {
	fmt.Fprintf(b, "## %s (`%s`)\n\n", s.Question.Name, s.Question.Code)
	fmt.Fprintf(b, "Kind: %s\n\n", s.Question.Type)

	writeResults(b, s.Analyzer.Count())
	if summary := s.Analyzer.Summary(); len(summary) > 0 {
		writeResults(b, summary)
	}

	if na, ok := numericAnalyzer(s.Analyzer); ok {
		writeBands(b, na, banding)
	}
}

func writeResults(b *strings.Builder, results []analysis.Result) {
	fmt.Fprintf(b, "| | |\n|---|---|\n")
	for _, r := range results {
		fmt.Fprintf(b, "| %s | %s |\n", r.Label, r.Value)
	}
	fmt.Fprintf(b, "\n")
}

// numericAnalyzer unwraps link delegation to find a numeric analysis.
func numericAnalyzer(a analysis.Analyzer) (*analysis.NumericAnalysis, bool) {
	for {
		switch v := a.(type) {
		case *analysis.NumericAnalysis:
			return v, true
		case *analysis.LinkAnalysis:
			a = v.Target()
		default:
			return nil, false
		}
	}
}

func writeBands(b *strings.Builder, na *analysis.NumericAnalysis, banding analysis.Banding) {
	if err := na.Advanced(); err != nil {
		return
	}
	bounds := na.PriorityBand(banding)
	fmt.Fprintf(b, "Priority bands:\n\n")
	fmt.Fprintf(b, "| Priority | Range |\n|---|---|\n")
	for band := 0; band <= len(banding.Boundaries); band++ {
		fmt.Fprintf(b, "| %s | %s |\n", banding.Label(band), banding.RangeText(band, bounds))
	}
	fmt.Fprintf(b, "\n")
}
