package cmd

import (
	"os"

	"scratch/notelist"
	"scratch/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func newTuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse, filter and search and replace notes interactively",
		Long: `Launch the interactive note list.

Press / to filter, r to open the replace field, enter to replace all
matches and q to quit. Without a saved session the lander is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return serr.New("TUI mode requires an interactive terminal")
			}

			c, err := a.client()
			if err != nil {
				return err
			}

			model := tui.New(c, notelist.Session{Authenticated: c.Authenticated()},
				notelist.WithConcurrency(a.cfg.Concurrency))
			defer model.Controller().Close()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return serr.Wrap(err, "error running TUI")
			}
			return nil
		},
	}
}
