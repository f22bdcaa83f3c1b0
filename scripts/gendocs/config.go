package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/leapstack-labs/pdt/internal/config"
)

// configField describes one pdt.yaml key.
type configField struct {
	Name        string
	Type        string
	Description string
}

// configFields mirrors internal/config.Config.
var configFields = []configField{
	{Name: "table_name", Type: "string", Description: "Name of the built table, shown in dumps and metric labels"},
	{Name: "resolver", Type: "string", Description: "Unknown-ID resolver: none, nucleus or counting"},
	{Name: "reference_particle", Type: "int", Description: "Particle whose mass the nucleus resolver scales by A"},
	{Name: "output", Type: "string", Description: "Output format: text, yaml or json"},
	{Name: "verbose", Type: "bool", Description: "Debug logging on stderr"},
	{Name: "metrics", Type: "bool", Description: "Print lookup, resolver and publish counters after each command"},
	{Name: "sources", Type: "list", Description: "Inputs in read order, as {dialect, path} maps or dialect:path strings"},
	{Name: "translations", Type: "map[string]string", Description: "Per-dialect YAML files that override the built-in code translation"},
}

func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "pdt configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("pdt reads `" + config.ConfigFileName + "` (or `" + config.ConfigFileNameAlt +
		"`) from the working directory or the nearest parent. Relative source and translation paths are resolved against the directory holding the file.")

	defaults := config.Defaults()
	var rows [][]string
	for _, f := range configFields {
		def := "-"
		if v, ok := defaults[f.Name]; ok {
			def = InlineCode(fmt.Sprint(v))
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, def, f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `table_name: evtgen
resolver: nucleus
sources:
  - dialect: pdg
    path: data/mass_width_2024.mcd
  - evtgen:data/evt.pdl
translations:
  isajet: data/isajet_codes.yaml`)

	w.Header(2, "Undocumented defaults")
	w.BulletList(undocumented(defaults))

	return w.WriteFile(outDir, "configuration.md")
}

// undocumented lists default keys missing from configFields so the page
// shows drift instead of hiding it.
func undocumented(defaults map[string]any) []string {
	known := make(map[string]bool, len(configFields))
	for _, f := range configFields {
		known[f.Name] = true
	}
	var out []string
	for _, k := range slices.Sorted(maps.Keys(defaults)) {
		if !known[k] {
			out = append(out, InlineCode(k))
		}
	}
	if len(out) == 0 {
		out = append(out, "none")
	}
	return out
}
