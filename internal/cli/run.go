package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"spotlight/internal/eventbus"
	"spotlight/internal/ui"
)

// forwardedEvents reach the program from outside its update loop
var forwardedEvents = []eventbus.EventType{
	eventbus.EventSearchCompleted,
	eventbus.EventSearchDiscarded,
	eventbus.EventItemsChanged,
}

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	cat, err := a.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	bus := eventbus.New(a.log)
	defer bus.Close()

	model, err := ui.NewModel(bus, a.cfg, cat, a.log)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	model.SetProgram(p)

	// Debounced searches commit on a timer goroutine; forward so the view redraws
	for _, t := range forwardedEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
		defer unsubscribe()
	}

	a.log.Info("starting palette", "items", len(cat.Items), "hotkey", a.cfg.Hotkey.String())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}
