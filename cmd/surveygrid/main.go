// Command surveygrid seeds a survey database, lays questions out as an
// export grid, and analyzes collected answers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/relieftools/surveygrid/internal/analysis"
	"github.com/relieftools/surveygrid/internal/config"
	"github.com/relieftools/surveygrid/internal/matrix"
	"github.com/relieftools/surveygrid/internal/question"
	"github.com/relieftools/surveygrid/internal/report"
	"github.com/relieftools/surveygrid/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.SQLiteStore
	reg   *question.Registry
}

func rootCmd() *cobra.Command {
	var configPath string
	var a app

	root := &cobra.Command{
		Use:           "surveygrid",
		Short:         "Survey layout and analysis toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			a = app{
				cfg:   cfg,
				log:   log,
				store: st,
				reg: question.NewRegistry(st,
					question.WithLogger(log),
					question.WithHierarchyLabels(cfg.HierarchyLabels())),
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				_ = a.log.Sync()
			}
			if a.store != nil {
				return a.store.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "surveygrid.yaml", "path to the configuration file")

	root.AddCommand(seedCmd(&a))
	root.AddCommand(layoutCmd(&a))
	root.AddCommand(analyzeCmd(&a))
	root.AddCommand(reportCmd(&a))
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func seedCmd(a *app) *cobra.Command {
	var responses int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with a demo survey and responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Seed(a.store, responses); err != nil {
				return err
			}
			a.log.Info("seeded demo survey", zap.Int("responses", responses))
			return nil
		},
	}
	cmd.Flags().IntVar(&responses, "responses", 10, "number of demo responses")
	return cmd
}

// cellJSON is the export form of one grid cell.
type cellJSON struct {
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	Text   string   `json:"text,omitempty"`
	Styles []string `json:"styles,omitempty"`
	MergeH int      `json:"merge_h,omitempty"`
	MergeV int      `json:"merge_v,omitempty"`
	Joined string   `json:"joined_with,omitempty"`
}

func matrixJSON(m *matrix.Matrix) []cellJSON {
	elements := m.Elements()
	out := make([]cellJSON, 0, len(elements))
	for _, e := range elements {
		out = append(out, cellJSON{
			Row:    e.Row,
			Col:    e.Col,
			Text:   e.Text,
			Styles: e.Styles,
			MergeH: e.MergeH,
			MergeV: e.MergeV,
			Joined: e.JoinedWith,
		})
	}
	return out
}

func layoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Lay the survey out as grid cells for an export writer",
		Long: "Walks every question in order, writes it into the layout grid and " +
			"the companion answer map, and emits both as JSON for a spreadsheet " +
			"or document writer to consume.",
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := a.store.Questions()
			if err != nil {
				return err
			}
			m := matrix.New()
			answerMap := matrix.New()
			row := 0
			for _, q := range questions {
				if q.Type == question.KindGridChild {
					continue // drawn by the parent grid
				}
				qt, err := a.reg.ForQuestion(q.ID)
				if err != nil {
					return err
				}
				row, _, err = qt.WriteMatrix(m, row, 0, nil, answerMap, question.DefaultLayout())
				if err != nil {
					return err
				}
			}
			out := map[string][]cellJSON{
				"layout":     matrixJSON(m),
				"answer_map": matrixJSON(answerMap),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	return cmd
}

func analyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [question code]",
		Short: "Print summary statistics for one question or the whole survey",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := selectQuestions(a, args)
			if err != nil {
				return err
			}
			banding := analysis.Banding{Boundaries: a.cfg.Boundaries()}
			for _, q := range questions {
				if q.Type == question.KindGrid {
					continue // children are analyzed under their own codes
				}
				az, err := analyzeQuestion(a, q)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", q.Name, q.Code)
				printResults(cmd, az.Count())
				printResults(cmd, az.Summary())
				printBands(cmd, az, banding)
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	return cmd
}

func selectQuestions(a *app, args []string) ([]*question.Question, error) {
	if len(args) == 1 {
		q, err := a.store.QuestionByCode(args[0])
		if err != nil {
			return nil, err
		}
		return []*question.Question{q}, nil
	}
	return a.store.Questions()
}

func analyzeQuestion(a *app, q *question.Question) (analysis.Analyzer, error) {
	answers, err := a.store.AnswersForQuestion(q.ID)
	if err != nil {
		return nil, err
	}
	return analysis.ForQuestion(a.reg, q.ID, answers)
}

func printResults(cmd *cobra.Command, results []analysis.Result) {
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-22s %s\n", r.Label, r.Value)
	}
}

func printBands(cmd *cobra.Command, az analysis.Analyzer, banding analysis.Banding) {
	na, ok := az.(*analysis.NumericAnalysis)
	if !ok {
		return
	}
	if err := na.Advanced(); err != nil {
		return
	}
	bounds := na.PriorityBand(banding)
	for band := 0; band <= len(banding.Boundaries); band++ {
		fmt.Fprintf(cmd.OutOrStdout(), "  band %d: %s\n", band, banding.RangeText(band, bounds))
	}
}

func reportCmd(a *app) *cobra.Command {
	var title, htmlOut, pdfOut string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the survey summary as markdown, HTML or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := a.store.Questions()
			if err != nil {
				return err
			}
			var sections []report.Section
			for _, q := range questions {
				if q.Type == question.KindGrid {
					continue
				}
				az, err := analyzeQuestion(a, q)
				if err != nil {
					return err
				}
				sections = append(sections, report.Section{Question: q, Analyzer: az})
			}
			banding := analysis.DefaultBanding()
			banding.Boundaries = a.cfg.Boundaries()
			md := report.BuildMarkdown(title, banding, sections)

			if htmlOut == "" && pdfOut == "" {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			htmlDoc, err := report.ToHTML(title, md)
			if err != nil {
				return err
			}
			if htmlOut != "" {
				if err := os.WriteFile(htmlOut, []byte(htmlDoc), 0644); err != nil {
					return fmt.Errorf("write html: %w", err)
				}
				a.log.Info("wrote html report", zap.String("path", htmlOut))
			}
			if pdfOut != "" {
				pdf, err := report.NewPDFRenderer().Render(context.Background(), htmlDoc)
				if err != nil {
					return fmt.Errorf("render pdf: %w", err)
				}
				if err := os.WriteFile(pdfOut, pdf, 0644); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
				a.log.Info("wrote pdf report", zap.String("path", pdfOut))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Survey Summary", "report title")
	cmd.Flags().StringVar(&htmlOut, "html", "", "write the HTML report to this path")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "print the report to PDF at this path")
	return cmd
}
