package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// LookupOptions holds options for the lookup command.
type LookupOptions struct {
	Sources []string
}

// lookupResult is one answered query.
type lookupResult struct {
	Query    string              `json:"query" yaml:"query"`
	Found    bool                `json:"found" yaml:"found"`
	Particle *pdt.ParticleRecord `json:"particle,omitempty" yaml:"particle,omitempty"`
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand() *cobra.Command {
	opts := &LookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup ID|NAME ...",
		Short: "Look up particles by identifier or name",
		Long: `Build a particle data table and look up each argument. Numeric arguments
are identifiers; anything else is a particle name.

Identifier lookups that miss go through the configured resolver
(--resolver nucleus synthesizes nuclei from the reference particle).
Name lookups never do. Put negative identifiers after --.`,
		Example: `  # Look up the proton and the pion by name
  pdt lookup 2212 pi+ -s pdg:mass_width_2024.mcd

  # Synthesize an alpha particle from the proton mass
  pdt lookup 1000020040 --resolver nucleus -s pdg:mass_width_2024.mcd

  # Antiparticles by identifier
  pdt lookup -s pdg:mass_width_2024.mcd -- -2212 -211`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Sources, "source", "s", nil, "Input source as dialect:path (repeatable)")
	return cmd
}

func runLookup(cmd *cobra.Command, args []string, opts *LookupOptions) error {
	cc, err := NewCommandContext(cmd, opts.Sources)
	if err != nil {
		return err
	}

	results := lookupAll(cc.Table, args)

	r := cc.Renderer
	if r.Structured() {
		if err := r.Encode(results); err != nil {
			return err
		}
	} else {
		writeLookupResults(r.Writer(), results)
	}
	if err := reportMetrics(cc); err != nil {
		return err
	}

	missing := 0
	for _, res := range results {
		if !res.Found {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d lookups found nothing", missing, len(results))
	}
	return nil
}

// lookupAll answers queries concurrently; results keep query order.
func lookupAll(tbl *pdt.Table, queries []string) []lookupResult {
	results := make([]lookupResult, len(queries))
	var eg errgroup.Group
	for i, q := range queries {
		eg.Go(func() error {
			results[i] = lookupOne(tbl, q)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

func lookupOne(tbl *pdt.Table, query string) lookupResult {
	q := strings.TrimSpace(query)
	var (
		p  *pdt.Particle
		ok bool
	)
	if n, err := strconv.Atoi(q); err == nil {
		p, ok = tbl.Particle(pid.ID(n))
	} else {
		p, ok = tbl.ParticleByName(q)
	}
	res := lookupResult{Query: query, Found: ok}
	if ok {
		rec := p.Record()
		res.Particle = &rec
	}
	return res
}

func writeLookupResults(w io.Writer, results []lookupResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Query", "ID", "Name", "Charge", "Mass", "Width", "Source"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for _, res := range results {
		if !res.Found {
			t.AppendRow(table.Row{res.Query, "-", "not found", "", "", "", ""})
			continue
		}
		p := res.Particle
		t.AppendRow(table.Row{
			res.Query, int(p.ID), p.Name,
			strconv.FormatFloat(p.Charge, 'g', 6, 64),
			strconv.FormatFloat(p.Mass.Value, 'g', 8, 64),
			strconv.FormatFloat(p.Width.Value, 'g', 8, 64),
			p.Source,
		})
	}
	t.Render()
}
