package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"spotlight/internal/catalog"
	"spotlight/internal/config"
	"spotlight/internal/discovery"
	"spotlight/internal/logger"
)

// app carries what the persistent pre-run resolved for the subcommands
type app struct {
	configPath  string
	catalogPath string
	logFile     string
	verbosity   int
	fuzzy       bool
	maxResults  int

	cfg *config.Config
	log logr.Logger
}

// NewRootCommand builds the spotlight command tree
func NewRootCommand() *cobra.Command {
	a := &app{log: logr.Discard()}

	root := &cobra.Command{
		Use:   "spotlight",
		Short: "Keyboard-driven command palette",
		Long: `Spotlight is a command palette for the terminal. Press the hotkey
(ctrl+k by default) to open it, type to filter the catalog and press enter
to run the highlighted item.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to the TOML config file (default: user config dir)")
	flags.StringVar(&a.catalogPath, "catalog", "", "path to a YAML item catalog (default: built-in catalog)")
	flags.StringVar(&a.logFile, "log-file", "", "write JSON logs to this file")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.BoolVar(&a.fuzzy, "fuzzy", false, "match queries as subsequences")
	flags.IntVar(&a.maxResults, "max-results", 0, "cap the number of results (default from config)")

	root.AddCommand(
		newRunCommand(a),
		newSearchCommand(a),
		newItemsCommand(a),
		newConfigCommand(a),
		newKeysCommand(a),
	)
	return root
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	defer logger.Sync()
	return NewRootCommand().ExecuteContext(ctx)
}

// prepare loads the config, applies flag overrides and sets up logging
func (a *app) prepare(cmd *cobra.Command) error {
	svc := config.NewConfigServiceWithBus(nil, a.configPath)
	cfg, err := svc.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fuzzy") {
		cfg.Palette.FuzzyMatch = a.fuzzy
	}
	if flags.Changed("max-results") {
		cfg.Palette.MaxResults = a.maxResults
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbosity = a.verbosity
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// The TUI owns the screen, so it logs to a file; other commands use stderr
	logPath := a.logFile
	if logPath == "" && isTUI(cmd) {
		logPath = cfg.Log.Path
	}
	lg, err := logger.Setup(logger.Options{Path: logPath, Verbosity: cfg.Log.Verbosity})
	if err != nil {
		return err
	}
	a.log = lg.WithValues("command", cmd.Name())
	cmd.SetContext(logger.WithLogger(cmd.Context(), &a.log))
	return nil
}

// loadCatalog reads the catalog flag or the built-in catalog. A directory
// is scanned for catalog files.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if a.catalogPath != "" {
		if info, err := os.Stat(a.catalogPath); err == nil && info.IsDir() {
			return discovery.NewService(a.log).Scan(ctx, a.catalogPath)
		}
	}
	cat, err := catalog.Load(a.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func isTUI(cmd *cobra.Command) bool {
	return cmd.Name() == "run" || !cmd.HasParent()
}
