// Package catalog loads palette items from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"spotlight/internal/domain"
)

//go:embed default_catalog.yaml
var embeddedDefaultCatalog []byte

// Built-in command names a catalog entry may bind to
const (
	CommandQuit         = "quit"
	CommandClearRecent  = "clear-recent"
	CommandToggleFuzzy  = "toggle-fuzzy"
	CommandToggleGroups = "toggle-groups"
	CommandHelp         = "help"
)

var (
	// ErrUnknownCommand is returned when an entry names an unbound command
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidEntry is returned for entries missing an id or label, or
	// reusing an id
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// Entry is one item as written in a catalog file
type Entry struct {
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description,omitempty"`
	Icon        string   `yaml:"icon,omitempty"`
	Shortcut    string   `yaml:"shortcut,omitempty"`
	Group       string   `yaml:"group,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty"`
	Href        string   `yaml:"href,omitempty"`
	Command     string   `yaml:"command,omitempty"`
	Disabled    bool     `yaml:"disabled,omitempty"`
}

// Catalog is a parsed catalog file
type Catalog struct {
	Items []Entry `yaml:"items"`
}

// DefaultYAML returns a copy of the embedded default catalog
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultCatalog...)
}

// Default parses the embedded default catalog
func Default() (*Catalog, error) {
	c, err := Parse(embeddedDefaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog from path. An empty path loads the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids and labels
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Items))
	for i, e := range c.Items {
		if strings.TrimSpace(e.ID) == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidEntry, i)
		}
		if strings.TrimSpace(e.Label) == "" {
			return fmt.Errorf("%w: item %q has no label", ErrInvalidEntry, e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidEntry, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// Build turns entries into items, binding each named command to its action
func (c *Catalog) Build(commands map[string]func()) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(c.Items))
	for _, e := range c.Items {
		item := domain.Item{
			ID:          e.ID,
			Label:       e.Label,
			Description: e.Description,
			Icon:        e.Icon,
			Shortcut:    e.Shortcut,
			Group:       e.Group,
			Keywords:    append([]string(nil), e.Keywords...),
			Href:        e.Href,
			Disabled:    e.Disabled,
		}
		if e.Command != "" {
			action, ok := commands[e.Command]
			if !ok {
				return nil, fmt.Errorf("%w %q for item %q", ErrUnknownCommand, e.Command, e.ID)
			}
			item.Action = action
		}
		items = append(items, item)
	}
	return items, nil
}

// Marshal encodes the catalog as YAML
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
