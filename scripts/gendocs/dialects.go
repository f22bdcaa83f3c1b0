package main

import (
	"fmt"
	"log"
	"os"

	"github.com/leapstack-labs/pdt/pkg/dialect"

	_ "github.com/leapstack-labs/pdt/pkg/dialects/evtgen"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/isajet"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/particletable"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/pdg"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/pythia"
)

func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "Input formats pdt can read")
	w.GeneratedMarker()

	w.Header(1, "Dialects")
	w.Paragraph("Each input is named as `dialect:path`. The dialect decides how lines are parsed and how native particle codes translate to standard identifiers.")

	var rows [][]string
	for _, reg := range dialect.Registrations() {
		translation := "identity"
		if reg.Translator != nil {
			translation = "built-in table"
		}
		rows = append(rows, []string{InlineCode(reg.Name), cleanDescription(reg.Description), translation})
	}
	w.Table([]string{"Dialect", "Description", "Code translation"}, rows)

	for _, reg := range dialect.Registrations() {
		w.Header(2, reg.Name)
		w.Paragraph(cleanDescription(reg.Description) + ".")
		w.CodeBlock("bash", fmt.Sprintf("pdt dump %s:FILE\npdt lookup -s %s:FILE ID", reg.Name, reg.Name))
	}

	w.Header(2, "Overriding code translation")
	w.Paragraph("A `translations` entry in pdt.yaml maps a dialect to a YAML file of native codes and their standard identifiers. Codes missing from the file fall back to the dialect's built-in translation.")
	w.CodeBlock("yaml", `# isajet_codes.yaml
dialect: isajet
translations:
  - native: 120
    id: 211
    name: PI+
  - native: 1120
    id: 2212
    name: P`)

	return w.WriteFile(outDir, "dialects.md")
}
