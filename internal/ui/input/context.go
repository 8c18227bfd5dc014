package input

import "spotlight/internal/spotlight"

// PaletteContext implements the Context interface over a palette snapshot
type PaletteContext struct {
	View spotlight.View
}

func (c PaletteContext) IsOpen() bool       { return c.View.IsOpen }
func (c PaletteContext) ResultCount() int   { return len(c.View.Results) }
func (c PaletteContext) SelectedIndex() int { return c.View.SelectedIndex }
func (c PaletteContext) Query() string      { return c.View.Query }
