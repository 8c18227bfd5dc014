package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newItemsCommand(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if raw {
				data, err := cat.Marshal()
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			}

			idWidth := 0
			for _, e := range cat.Items {
				idWidth = max(idWidth, len(e.ID))
			}
			for _, e := range cat.Items {
				target := e.Href
				if e.Command != "" {
					target = "command:" + e.Command
				}
				line := fmt.Sprintf("%-*s  %s", idWidth, e.ID, e.Label)
				if target != "" {
					line += "  " + dimStyle.Render(target)
				}
				if e.Disabled {
					line += "  " + dimStyle.Render("(disabled)")
				}
				fmt.Fprintln(w, strings.TrimRight(line, " "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "yaml", false, "print the catalog as YAML")
	return cmd
}
