package tests

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/relieftools/surveygrid/internal/analysis"
	"github.com/relieftools/surveygrid/internal/matrix"
	"github.com/relieftools/surveygrid/internal/question"
	"github.com/relieftools/surveygrid/internal/report"
	"github.com/relieftools/surveygrid/internal/store"
)

// TestE2ESurveyPipeline runs the full pipeline against a seeded database:
// seed, lay the survey out as a grid, analyze every question, and render
// the summary report.
func TestE2ESurveyPipeline(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "survey.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	// --- 1. Seed a demo survey with 6 responses ---
	if err := store.Seed(st, 6); err != nil {
		t.Fatalf("seed: %v", err)
	}
	reg := question.NewRegistry(st)

	questions, err := st.Questions()
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(questions) != 7 {
		t.Fatalf("expected 7 seeded questions, got %d", len(questions))
	}

	// --- 2. Lay the survey out as grid cells ---
	m := matrix.New()
	answerMap := matrix.New()
	row := 0
	for _, q := range questions {
		qt, err := reg.ForQuestion(q.ID)
		if err != nil {
			t.Fatalf("open question %s: %v", q.Code, err)
		}
		row, _, err = qt.WriteMatrix(m, row, 0, nil, answerMap, question.DefaultLayout())
		if err != nil {
			t.Fatalf("write matrix for %s: %v", q.Code, err)
		}
	}
	labels := map[string]bool{}
	for _, e := range m.Elements() {
		labels[e.Text] = true
	}
	for _, want := range []string{"Name of assessor", "People affected", "Immediate needs"} {
		if !labels[want] {
			t.Errorf("layout missing label %q", want)
		}
	}
	codes := map[string]bool{}
	for _, e := range answerMap.Elements() {
		if e.Col == 0 {
			codes[e.Text] = true
		}
	}
	for _, q := range questions {
		if !codes[q.Code] {
			t.Errorf("answer map missing row for %s", q.Code)
		}
	}

	// --- 3. Analyze every question ---
	analyzers := map[string]analysis.Analyzer{}
	var sections []report.Section
	for _, q := range questions {
		answers, err := st.AnswersForQuestion(q.ID)
		if err != nil {
			t.Fatalf("answers for %s: %v", q.Code, err)
		}
		az, err := analysis.ForQuestion(reg, q.ID, answers)
		if err != nil {
			t.Fatalf("analysis for %s: %v", q.Code, err)
		}
		analyzers[q.Code] = az
		sections = append(sections, report.Section{Question: q, Analyzer: az})
	}

	// Seeded POP answers are 50, 87, 124, 161, 198, 235.
	pop := analyzers["POP"].(*analysis.NumericAnalysis)
	summary := resultMap(pop.Summary())
	if summary["Total"] != "855" {
		t.Errorf("POP total = %q, want 855", summary["Total"])
	}
	if summary["Average"] != "142" {
		t.Errorf("POP average = %q, want 142", summary["Average"])
	}
	if err := pop.Advanced(); err != nil {
		t.Fatalf("POP advanced: %v", err)
	}
	banding := analysis.DefaultBanding()
	popAnswers, _ := st.AnswersForQuestion(questionID(t, st, "POP"))
	for _, a := range popAnswers {
		if a.Value != "235" {
			continue
		}
		if got := pop.Priority(a.CompleteID, banding); got != 5 {
			t.Errorf("priority of largest response = %d, want 5", got)
		}
	}

	// DMG alternates Yes/No, so both sit at exactly half.
	dmg := resultMap(analyzers["DMG"].Summary())
	if dmg["Yes"] != "50.0%" || dmg["No"] != "50.0%" {
		t.Errorf("DMG summary = %v, want Yes/No at 50.0%%", dmg)
	}

	// NEEDS cycles three selection lists; Food is in two of them.
	needs := resultMap(analyzers["NEEDS"].Summary())
	if needs["Food"] != "66%" {
		t.Errorf("NEEDS Food = %q, want 66%%", needs["Food"])
	}

	// LOC cycles a duplicate, a known and an unknown place.
	loc := resultMap(analyzers["LOC"].Summary())
	if loc["Known Locations"] != "1" || loc["Duplicate Locations"] != "1" || loc["Unknown Locations"] != "1" {
		t.Errorf("LOC summary = %v, want one of each", loc)
	}

	// --- 4. Render the report ---
	md := report.BuildMarkdown("Rapid Assessment", banding, sections)
	for _, want := range []string{
		"# Rapid Assessment",
		"## People affected (`POP`)",
		"| Total | 855 |",
		"| Yes | 50.0% |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	htmlDoc, err := report.ToHTML("Rapid Assessment", md)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, want := range []string{"<title>Rapid Assessment</title>", "<table>", "People affected"} {
		if !strings.Contains(htmlDoc, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func resultMap(results []analysis.Result) map[string]string {
	out := map[string]string{}
	for _, r := range results {
		out[r.Label] = r.Value
	}
	return out
}

func questionID(t *testing.T, st *store.SQLiteStore, code string) int {
	t.Helper()
	q, err := st.QuestionByCode(code)
	if err != nil {
		t.Fatalf("question %s: %v", code, err)
	}
	return q.ID
}
