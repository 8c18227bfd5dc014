package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"spotlight/internal/ui"
	inputtypes "spotlight/internal/ui/input/types"
)

func newKeysCommand(a *app) *cobra.Command {
	var noPager bool

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the key bindings and catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			items, err := cat.Build(inertCommands())
			if err != nil {
				return err
			}

			width := 80
			interactive := term.IsTerminal(int(os.Stdout.Fd()))
			if interactive {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
					width = w
				}
			}

			content := ui.NewHelpRenderer(inputtypes.DefaultKeyMap(a.cfg.Hotkey.String())).RenderHelpContent(items, width)
			if noPager || !interactive {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}
			return ui.NewHelpOps(nil).ShowHelpInPager(content)
		},
	}

	cmd.Flags().BoolVar(&noPager, "no-pager", false, "print instead of opening the pager")
	return cmd
}
