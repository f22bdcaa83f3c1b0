package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/prometheus/client_golang/prometheus"
)

// writeMetrics prints every non-zero sample in reg.
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Labels", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})

	rows := 0
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v = m.GetGauge().GetValue()
			default:
				continue
			}
			if v == 0 {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			t.AppendRow(table.Row{mf.GetName(), strings.Join(labels, ","), v})
			rows++
		}
	}
	if rows == 0 {
		_, _ = fmt.Fprintln(w, "(no metrics recorded)")
		return nil
	}
	t.Render()
	return nil
}

// reportMetrics writes metrics after a command when they are enabled.
// Structured output keeps stdout parseable, so metrics go to stderr.
func reportMetrics(cc *CommandContext) error {
	if cc.Registry == nil {
		return nil
	}
	w := cc.Renderer.Writer()
	if cc.Renderer.Structured() {
		w = cc.Renderer.ErrWriter()
	}
	return writeMetrics(w, cc.Registry)
}
