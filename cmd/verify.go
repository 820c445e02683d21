package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqx/internal/ui/theme"
	"github.com/abhisek/mcqx/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Check a questions file before handing it to the quiz app",
	Long: `Validate the questions file against its JSON schema and per-question
rules: exactly four options, an answer index of 0-3, a non-empty stem.
Out-of-order ids, empty options and a count different from --expected are
warnings. Exits non-zero only when errors are found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().Int("expected", -1, "Expected question count; 0 disables the check (default from config)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := cfg.Output
	if len(args) == 1 {
		path = args[0]
	}
	expected := cfg.Expected
	if v, _ := cmd.Flags().GetInt("expected"); v >= 0 {
		expected = v
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	report, err := verify.New().Check(data, expected)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total questions found: %d\n\n", report.Count)
	for _, issue := range report.Errors() {
		fmt.Fprintln(out, theme.Fail.Render("✗ "+issue.String()))
	}
	for _, issue := range report.Warnings() {
		fmt.Fprintln(out, theme.Warn.Render("! "+issue.String()))
	}

	errs, warns := len(report.Errors()), len(report.Warnings())
	switch {
	case errs > 0:
		return fmt.Errorf("%s: %d error(s), %d warning(s)", path, errs, warns)
	case warns > 0:
		fmt.Fprintln(out, theme.Warn.Render(fmt.Sprintf("\n%d warning(s); the file is usable", warns)))
	default:
		fmt.Fprintln(out, theme.OK.Render(fmt.Sprintf("✓ All %d questions are valid", report.Count)))
	}
	return nil
}
