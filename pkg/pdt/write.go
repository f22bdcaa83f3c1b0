package pdt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTableWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func rightAligned(cols ...int) []table.ColumnConfig {
	cfg := make([]table.ColumnConfig, len(cols))
	for i, n := range cols {
		cfg[i] = table.ColumnConfig{Number: n, Align: text.AlignRight}
	}
	return cfg
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 8, 64)
}

func formatMeasurement(m Measurement) string {
	if m.Sigma == 0 {
		return formatFloat(m.Value)
	}
	return formatFloat(m.Value) + " ± " + formatFloat(m.Sigma)
}

// WriteParticleData writes the full table dump.
func (t *Table) WriteParticleData(w io.Writer) error {
	particles := t.Particles()
	_, _ = fmt.Fprintf(w, "ParticleDataTable %s (%d particles)\n", t.name, len(particles))

	tw := newTableWriter(w)
	tw.AppendHeader(table.Row{
		"Name", "ID", "Charge", "Color", "J", "S", "L",
		"Mass", "Width", "Low Cut", "High Cut", "Lifetime",
	})
	for _, p := range particles {
		tw.AppendRow(table.Row{
			p.name,
			int(p.id),
			formatFloat(p.charge),
			formatFloat(p.color),
			formatFloat(p.spin.Total),
			formatFloat(p.spin.Spin),
			formatFloat(p.spin.OrbAngMom),
			formatMeasurement(p.resonance.Mass),
			formatMeasurement(p.resonance.Width),
			formatFloat(p.resonance.LowerCutoff),
			formatFloat(p.resonance.UpperCutoff),
			formatFloat(p.Lifetime().Value),
		})
	}
	tw.SetColumnConfigs(rightAligned(2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12))
	tw.Render()
	return nil
}

// WriteParticleTranslation writes the dialect-native to canonical mapping.
func (t *Table) WriteParticleTranslation(w io.Writer) error {
	particles := t.Particles()
	_, _ = fmt.Fprintf(w, "ParticleDataTable %s translation\n", t.name)

	tw := newTableWriter(w)
	tw.AppendHeader(table.Row{"Source", "Original ID", "ID", "Name"})
	for _, p := range particles {
		tw.AppendRow(table.Row{p.source, p.originalID, int(p.id), p.name})
	}
	tw.SetColumnConfigs(rightAligned(2, 3))
	tw.Render()
	return nil
}

// WriteParticleStatus writes a short status line per particle.
func (t *Table) WriteParticleStatus(w io.Writer) error {
	particles := t.Particles()
	tw := newTableWriter(w)
	tw.AppendHeader(table.Row{"ID", "Name", "Mass", "Width", "Lifetime", "Stable", "Decays"})
	for _, p := range particles {
		tw.AppendRow(table.Row{
			int(p.id),
			p.name,
			formatFloat(p.resonance.Mass.Value),
			formatFloat(p.resonance.Width.Value),
			formatFloat(p.Lifetime().Value),
			p.IsStable(),
			len(p.decays),
		})
	}
	tw.SetColumnConfigs(rightAligned(1, 3, 4, 5, 7))
	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d particles)\n", len(particles))
	return nil
}
