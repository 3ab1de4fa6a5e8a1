package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List your notes",
		Aliases: []string{"ls"},
		Long: `List your notes in the order they were created. With --search only
notes containing the term are shown; matching is case-sensitive.`,
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

			ctrl.SetSearch(search)
			visible := ctrl.Visible()

			out := cmd.OutOrStdout()
			if len(visible) == 0 {
				fmt.Fprintln(out, "No results")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, note := range visible {
				fmt.Fprintf(w, "%s\t%s\n", note.Title(), note.CreatedLabel())
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show notes containing this text")
	return cmd
}
