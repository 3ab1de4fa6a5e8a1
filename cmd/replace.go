package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"scratch/notelist"

	"github.com/spf13/cobra"
)

func newReplaceCmd(a *app) *cobra.Command {
	var (
		search  string
		replace string
		yes     bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Replace text across every matching note",
		Long: `Replace the first occurrence of --search with --replace in every note
that contains it. The changes are previewed and you are asked to
confirm before anything is sent. An empty --search matches every note
and prefixes each one with the replacement.

Updates are sent concurrently. If some fail, the ones that succeeded
stay applied.

Examples:
  scratch replace --search teh --replace the
  scratch replace --search draft --replace final --dry-run
  scratch replace --search v1 --replace v2 --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ctrl, err := a.loadedController(cmd.Context(), c)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			ctrl.SetReplaceMode(true)
			ctrl.SetSearch(search)
			ctrl.SetReplace(replace)

			out := cmd.OutOrStdout()
			edits := notelist.Plan(ctrl.State().Notes, search, replace)
			printPlan(out, edits)

			if dryRun {
				return nil
			}

			var confirmer notelist.Confirmer = notelist.Answer(true)
			if !yes {
				confirmer = promptConfirmer(cmd.InOrStdin(), out)
			}

			report := ctrl.BulkReplace(cmd.Context(), confirmer)
			return printReport(out, report)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Text to find (case-sensitive)")
	cmd.Flags().StringVarP(&replace, "replace", "r", "", "Replacement text")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without sending them")
	return cmd
}

// promptConfirmer asks on out and reads a y/N answer from in. Anything
// other than y or yes, including EOF, declines.
func promptConfirmer(in io.Reader, out io.Writer) notelist.Confirmer {
	reader := bufio.NewReader(in)
	return notelist.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintln(out)
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

func printPlan(out io.Writer, edits []notelist.Edit) {
	if len(edits) == 0 {
		fmt.Fprintln(out, "No notes match.")
		return
	}
	for _, e := range edits {
		title := e.Title
		if title == "" {
			title = "(empty)"
		}
		fmt.Fprintf(out, "%s\n  %s\n", title, strings.ReplaceAll(e.Diff(), "\n", "\n  "))
	}
	fmt.Fprintf(out, "\n%d note(s) will be updated.\n", len(edits))
}

func printReport(out io.Writer, report *notelist.ReplaceReport) error {
	if report.Declined {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	err := report.Err()
	if err == nil {
		fmt.Fprintln(out, notelist.SuccessMessage)
		return nil
	}

	fmt.Fprintln(out, notelist.FailureMessage)
	var fanOut *notelist.ReplaceFanOutError
	if errors.As(err, &fanOut) {
		for _, f := range fanOut.Failures {
			fmt.Fprintf(out, "  %s: %v\n", f.NoteID, f.Err)
		}
	}
	return err
}
