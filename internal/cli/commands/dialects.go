package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/pdt/pkg/dialect"
)

// dialectRecord is the structured form of a registered dialect.
type dialectRecord struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the input dialects pdt can read",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutTable(cmd)
	r := cc.Renderer

	regs := dialect.Registrations()
	if r.Structured() {
		records := make([]dialectRecord, len(regs))
		for i, reg := range regs {
			records[i] = dialectRecord{Name: reg.Name, Description: reg.Description}
		}
		return r.Encode(records)
	}

	titleCaser := cases.Title(language.English)
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dialect", "Description"})
	for _, reg := range regs {
		t.AppendRow(table.Row{reg.Name, titleCaser.String(reg.Description)})
	}
	t.Render()
	r.Println(r.Styles().Muted.Render("Use dialect:path to name an input, e.g. pdg:mass_width.mcd"))
	return nil
}
