package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	return runWithConfig(t, cfgPath, args...)
}

func runWithConfig(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSearchPrintsGroupedResults(t *testing.T) {
	out, err := run(t, "search", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Navigation")
	assert.Contains(t, out, "Settings")
	assert.NotContains(t, out, "Billing")
}

func TestSearchWithoutGroups(t *testing.T) {
	out, err := run(t, "search", "--no-groups", "account")
	require.NoError(t, err)
	assert.NotContains(t, out, "Account\n")
	assert.Contains(t, out, "Profile")
}

func TestSearchNoResults(t *testing.T) {
	out, err := run(t, "search", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found")
}

func TestSearchFuzzyFlag(t *testing.T) {
	out, err := run(t, "search", "stng")
	require.NoError(t, err)
	assert.NotContains(t, out, "Settings")

	out, err = run(t, "--fuzzy", "search", "stng")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings")
}

func TestSearchYAMLOutput(t *testing.T) {
	out, err := run(t, "search", "-o", "yaml", "profile")
	require.NoError(t, err)

	var res SearchResultOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, "profile", res.Query)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "open-profile", res.Results[0].ID)
	assert.Equal(t, "Account", res.Results[0].Group)
	assert.True(t, res.Results[0].Active)
}

func TestSearchRejectsUnknownOutput(t *testing.T) {
	_, err := run(t, "search", "-o", "xml", "x")
	assert.Error(t, err)
}

func TestMaxResultsFlag(t *testing.T) {
	_, err := run(t, "--max-results", "0", "search", "x")
	assert.Error(t, err)

	out, err := run(t, "--max-results", "1", "search", "-o", "yaml", "o")
	require.NoError(t, err)
	var res SearchResultOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Count)
}

func TestItemsListsCatalog(t *testing.T) {
	out, err := run(t, "items")
	require.NoError(t, err)
	assert.Contains(t, out, "open-docs")
	assert.Contains(t, out, "command:quit")
	assert.Contains(t, out, "(disabled)")
}

func TestItemsFromCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - id: only\n    label: Only one\n    href: /only\n"), 0o644))

	out, err := run(t, "--catalog", path, "items")
	require.NoError(t, err)
	assert.Contains(t, out, "Only one")
	assert.NotContains(t, out, "open-docs")
}

func TestConfigInitWritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := runWithConfig(t, path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_results")

	_, err = runWithConfig(t, path, "config", "init")
	assert.Error(t, err)

	_, err = runWithConfig(t, path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigFileIsHonoured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[palette]\nempty_message = \"Nada\"\n"), 0o644))

	out, err := runWithConfig(t, path, "search", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "Nada")

	out, err = runWithConfig(t, path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Nada")
}

func TestKeysWithoutPager(t *testing.T) {
	out, err := run(t, "keys", "--no-pager")
	require.NoError(t, err)
	assert.Contains(t, out, "ctrl+k")
	assert.Contains(t, out, "Catalog")
}

func TestCatalogDirectoryIsScanned(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("items:\n  - {id: a, label: Alpha, href: /a}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("items:\n  - {id: b, label: Beta, href: /b}\n"), 0o644))

	out, err := run(t, "--catalog", dir, "search", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
}
