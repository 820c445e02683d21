package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/mcqx/internal/store"
	"github.com/abhisek/mcqx/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived extraction runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No archived runs. Use `mcqx extract --archive` to record one.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of runs to show (0 for all)")
}

// renderRuns lays out runs as a bordered table, newest first.
func renderRuns(runs []store.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Source,
			strconv.Itoa(r.Count),
			strconv.Itoa(r.Discarded),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.TableHeader
			case col == 1:
				return theme.TableCellDim
			default:
				return theme.TableCell
			}
		}).
		Headers("RUN", "CREATED", "SOURCE", "QUESTIONS", "DISCARDED").
		Rows(rows...)
	return t.String()
}
