package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqx/internal/browse"
	"github.com/abhisek/mcqx/internal/mcq"
	"github.com/abhisek/mcqx/internal/output"
	"github.com/abhisek/mcqx/internal/ui/theme"
)

var browseCmd = &cobra.Command{
	Use:   "browse [file]",
	Short: "Review extracted questions interactively",
	Long: `Page through a questions file (or an archived run with --run) in the
terminal. Pick an option to see whether it matches the extracted answer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().String("run", "", `Archived run id to browse, or "latest"`)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	title, questions, err := loadForBrowse(cmd, args)
	if err != nil {
		return err
	}
	final, err := browse.Run(title, questions)
	if err != nil {
		return err
	}
	if len(questions) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), theme.OK.Render(final.Summary()))
	}
	return nil
}

func loadForBrowse(cmd *cobra.Command, args []string) (string, []mcq.Question, error) {
	runID, _ := cmd.Flags().GetString("run")
	if runID == "" {
		path := cfg.Output
		if len(args) == 1 {
			path = args[0]
		}
		questions, err := output.ReadJSON(path)
		if err != nil {
			return "", nil, err
		}
		return path, questions, nil
	}

	if len(args) == 1 {
		return "", nil, fmt.Errorf("pass either a file or --run, not both")
	}
	s, err := openStore(cmd)
	if err != nil {
		return "", nil, err
	}
	defer s.Close()

	run, err := s.GetRun(cmd.Context(), runID)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s (run %.8s)", run.Source, run.ID), run.Questions, nil
}
