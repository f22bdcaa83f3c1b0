package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"A", "B"}, [][]string{{"x|y", "z"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| x\\|y | z |\n\n", w.String())

	empty := NewMarkdownWriter()
	empty.Table([]string{"A"}, nil)
	assert.Empty(t, empty.String())
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Look up particles", cleanDescription("look up particles."))
	assert.Equal(t, "", cleanDescription("  "))
}

func TestCleanExample(t *testing.T) {
	in := "  # first\n  pdt dump pdg:a.mcd\n\n    indented"
	assert.Equal(t, "# first\npdt dump pdg:a.mcd\n\n  indented", cleanExample(in))
}

func TestGenerators(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))
	require.NoError(t, generateConfigDocs(dir))
	require.NoError(t, generateDialectDocs(dir))

	for _, name := range []string{"index.md", "dump.md", "lookup.md", "configuration.md", "dialects.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "`reference_particle`")
	assert.Contains(t, string(cfg), "`2212`")
	assert.NotContains(t, string(cfg), "## Undocumented defaults\n\n- `", "every default key is documented")

	dialects, err := os.ReadFile(filepath.Join(dir, "dialects.md"))
	require.NoError(t, err)
	assert.Contains(t, string(dialects), "`isajet-decay`")
	assert.Contains(t, string(dialects), "\n## pythia\n")
}

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestCLIDocs_Sources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	index := readPage(t, dir, "index.md")
	assert.Contains(t, index, "| [`dump`](dump.md) | ")
	assert.Contains(t, index, "| arguments |")
	assert.Contains(t, index, "| `--source` |")
	assert.Contains(t, index, "| `--reference` |  | `reference_particle` | `PDT_REFERENCE_PARTICLE` |")
	assert.Contains(t, index, "| `--config` |  | - | - |")
	assert.Contains(t, index, "[`evtgen`](../reference/dialects.md#evtgen)")

	dump := readPage(t, dir, "dump.md")
	assert.Contains(t, dump, "## Sources")
	assert.Contains(t, dump, "Every positional argument is a `dialect:path` source")
	assert.Contains(t, dump, "[`pythia`](../reference/dialects.md#pythia)")
	assert.Contains(t, dump, "[CLI reference](index.md#global-options)")

	lookup := readPage(t, dir, "lookup.md")
	assert.Contains(t, lookup, "`--source dialect:path`")
	assert.Contains(t, lookup, "| `--source` | `-s` |")

	decode := readPage(t, dir, "decode.md")
	assert.NotContains(t, decode, "## Sources")
}
