package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqx/internal/mcq"
	"github.com/abhisek/mcqx/internal/output"
	"github.com/abhisek/mcqx/internal/source"
	"github.com/abhisek/mcqx/internal/store"
	"github.com/abhisek/mcqx/internal/ui/theme"
)

// ErrNoQuestions is returned when a readable source yields nothing.
var ErrNoQuestions = errors.New("no questions were extracted from the PDF")

var extractCmd = &cobra.Command{
	Use:   "extract [pdf]",
	Short: "Extract questions from the PDF and write the questions file",
	Long: `Read every page of the PDF, scan the text for numbered questions with
four lettered options, and write them as a JSON array.

Exits non-zero when the PDF cannot be read or no question is found. A count
different from --expected is reported but does not fail the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringP("out", "o", "", "JSON output path (default from config: public/questions.json)")
	f.String("xlsx", "", "Also write an Excel workbook to this path")
	f.Int("expected", -1, "Expected question count; 0 disables the check (default from config: 213)")
	f.Bool("archive", false, "Save the run to the SQLite archive")
	f.Int("question-min-len", -1, "Stem length below which the next line is joined")
	f.Int("option-min-len", -1, "Option length below which the next line is joined")
	f.Int("option-scan-limit", -1, "Max lines past the question line to look for options")
	f.Int("answer-window", -1, "Lines after the options searched for an answer")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := applyExtractFlags(cmd, args); err != nil {
		return err
	}

	logger.Info("reading PDF", "path", cfg.Source)
	doc, err := source.ReadPDF(cfg.Source)
	if err != nil {
		logger.Error("cannot read source", "err", err)
		return err
	}
	logger.Info("text extracted", "pages", len(doc.Pages), "chars", doc.Chars())

	res := mcq.Scan(mcq.SplitLines(doc.Pages), cfg.Extract)
	logger.Debug("scan finished", "anchors", res.Anchors, "discarded", res.Discarded)

	if len(res.Questions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), theme.Fail.Render("✗ No questions were extracted from the PDF"))
		return ErrNoQuestions
	}

	if err := output.WriteJSON(cfg.Output, res.Questions); err != nil {
		return err
	}
	if cfg.XLSX != "" {
		if err := output.WriteXLSX(cfg.XLSX, res.Questions); err != nil {
			return err
		}
		logger.Info("workbook written", "path", cfg.XLSX)
	}
	if archive, _ := cmd.Flags().GetBool("archive"); archive {
		if err := archiveRun(cmd, res); err != nil {
			return err
		}
	}

	return printExtractSummary(cmd, res.Questions)
}

// applyExtractFlags layers command-line values over the loaded config.
func applyExtractFlags(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.Source = args[0]
	}
	f := cmd.Flags()
	if v, _ := f.GetString("out"); v != "" {
		cfg.Output = v
	}
	if v, _ := f.GetString("xlsx"); v != "" {
		cfg.XLSX = v
	}

	ints := []struct {
		flag string
		dst  *int
	}{
		{"expected", &cfg.Expected},
		{"question-min-len", &cfg.Extract.QuestionMinLen},
		{"option-min-len", &cfg.Extract.OptionMinLen},
		{"option-scan-limit", &cfg.Extract.OptionScanLimit},
		{"answer-window", &cfg.Extract.AnswerWindow},
	}
	for _, i := range ints {
		if v, _ := f.GetInt(i.flag); v >= 0 {
			*i.dst = v
		}
	}
	return cfg.Validate()
}

func archiveRun(cmd *cobra.Command, res mcq.Result) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	run := store.NewRun(cfg.Source, res)
	if err := s.SaveRun(cmd.Context(), run); err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	logger.Info("run archived", "run", run.ID)
	return nil
}

func printExtractSummary(cmd *cobra.Command, questions []mcq.Question) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.OK.Render(fmt.Sprintf("✓ Created %s with %d questions", cfg.Output, len(questions))))

	sample, err := json.MarshalIndent(questions[0], "", "  ")
	if err != nil {
		return fmt.Errorf("encode sample: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render("Sample question:"))
	fmt.Fprintln(out, string(sample))

	if cfg.Expected > 0 && len(questions) != cfg.Expected {
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Warn.Render(fmt.Sprintf("Note: expected %d questions but found %d", cfg.Expected, len(questions))))
	}
	return nil
}
