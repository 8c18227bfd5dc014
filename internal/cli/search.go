package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"spotlight/internal/catalog"
	"spotlight/internal/spotlight"
)

// SearchResultOutput is the machine-readable form of a search
type SearchResultOutput struct {
	Query   string             `yaml:"query"`
	Count   int                `yaml:"count"`
	Results []SearchItemOutput `yaml:"results"`
}

// SearchItemOutput is one result in SearchResultOutput
type SearchItemOutput struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Group  string `yaml:"group"`
	Href   string `yaml:"href,omitempty"`
	Active bool   `yaml:"active,omitempty"`
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func newSearchCommand(a *app) *cobra.Command {
	var output string
	var noGroups bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the palette results for a query",
		Long: `Run a query against the catalog the way the palette does and print the
grouped results. An empty query ("") lists the first results in catalog order.

Examples:
  spotlight search settings
  spotlight search --fuzzy stg
  spotlight search -o yaml "account"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			items, err := cat.Build(inertCommands())
			if err != nil {
				return err
			}

			cfg := *a.cfg
			if noGroups {
				cfg.Palette.ShowGroups = false
			}
			// No one is here to pick recents
			cfg.Palette.ShowRecent = false

			palette, err := spotlight.New(&cfg, spotlight.WithItems(items...), spotlight.WithLogger(a.log))
			if err != nil {
				return err
			}
			defer palette.Destroy()

			palette.Open()
			palette.SetQuery(query)
			view := palette.View()

			switch output {
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), query, view)
			case "text", "":
				writeText(cmd.OutOrStdout(), view)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text|yaml")
	cmd.Flags().BoolVar(&noGroups, "no-groups", false, "print results without group headers")
	return cmd
}

func writeText(w io.Writer, view spotlight.View) {
	if len(view.Results) == 0 {
		fmt.Fprintln(w, dimStyle.Render(view.EmptyMessage))
		return
	}
	for _, bucket := range view.Groups {
		if bucket.Label != "" {
			fmt.Fprintln(w, headerStyle.Render(bucket.Label))
		}
		for _, e := range bucket.Entries {
			line := "  " + e.Item.Label
			if e.Item.Shortcut != "" {
				line += "  " + keyStyle.Render(e.Item.Shortcut)
			}
			if e.Item.Description != "" {
				line += "  " + dimStyle.Render(e.Item.Description)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func writeYAML(w io.Writer, query string, view spotlight.View) error {
	out := SearchResultOutput{Query: query, Count: len(view.Results)}
	for i, item := range view.Results {
		out.Results = append(out.Results, SearchItemOutput{
			ID:     item.ID,
			Label:  item.Label,
			Group:  item.GroupLabel(),
			Href:   item.Href,
			Active: i == view.SelectedIndex,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return enc.Close()
}

// inertCommands satisfies the catalog's built-ins outside the TUI
func inertCommands() map[string]func() {
	noop := func() {}
	return map[string]func(){
		catalog.CommandQuit:         noop,
		catalog.CommandClearRecent:  noop,
		catalog.CommandToggleFuzzy:  noop,
		catalog.CommandToggleGroups: noop,
		catalog.CommandHelp:         noop,
	}
}
