package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/pdt/internal/cli/output"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// decodeRecord is the structured form of a decoded identifier.
type decodeRecord struct {
	ID          pid.ID   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Valid       bool     `json:"valid" yaml:"valid"`
	Kind        string   `json:"kind" yaml:"kind"`
	Digits      string   `json:"digits" yaml:"digits"`
	Fundamental int      `json:"fundamental,omitempty" yaml:"fundamental,omitempty"`
	ThreeCharge int      `json:"three_charge" yaml:"three_charge"`
	Charge      float64  `json:"charge" yaml:"charge"`
	JSpin       int      `json:"jspin" yaml:"jspin"`
	SSpin       int      `json:"sspin" yaml:"sspin"`
	LSpin       int      `json:"lspin" yaml:"lspin"`
	Quarks      []pid.ID `json:"quarks,omitempty" yaml:"quarks,omitempty"`
	A           int      `json:"a,omitempty" yaml:"a,omitempty"`
	Z           int      `json:"z,omitempty" yaml:"z,omitempty"`
	Lambda      int      `json:"lambda,omitempty" yaml:"lambda,omitempty"`
	AntiSelf    bool     `json:"self_conjugate" yaml:"self_conjugate"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode ID ...",
		Short: "Explain what an identifier encodes",
		Long: `Decode particle identifiers without building a table: digit fields,
classification, charge, spin and quark or nuclear content.`,
		Example: `  pdt decode 211 1000020040

  # Negative identifiers follow --
  pdt decode -- -2212 -511`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args)
		},
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	cc := NewCommandContextWithoutTable(cmd)

	records := make([]decodeRecord, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("invalid identifier %q: %w", arg, err)
		}
		records = append(records, decodeID(pid.ID(n)))
	}

	r := cc.Renderer
	if r.Structured() {
		return r.Encode(records)
	}
	for i, rec := range records {
		if i > 0 {
			r.Println("")
		}
		renderDecodeText(r, rec)
	}
	return nil
}

func decodeID(id pid.ID) decodeRecord {
	d := pid.Decode(id)
	rec := decodeRecord{
		ID:          id,
		Name:        pid.ParticleName(id),
		Valid:       id.IsValid(),
		Kind:        d.Kind.String(),
		Digits:      fmt.Sprintf("n=%d nr=%d nl=%d nq1=%d nq2=%d nq3=%d nj=%d", d.N, d.NR, d.NL, d.NQ1, d.NQ2, d.NQ3, d.NJ),
		Fundamental: d.Fundamental,
		ThreeCharge: d.ThreeCharge,
		Charge:      id.Charge(),
		JSpin:       d.JSpin,
		SSpin:       d.SSpin,
		LSpin:       d.LSpin,
		Quarks:      id.Quarks(),
		A:           d.A,
		Z:           d.Z,
		Lambda:      d.Lambda,
		AntiSelf:    id.IsSelfConjugate(),
	}
	if d.Extra != 0 {
		rec.Digits = fmt.Sprintf("extra=%d %s", d.Extra, rec.Digits)
	}
	return rec
}

func renderDecodeText(r *output.Renderer, rec decodeRecord) {
	styles := r.Styles()
	title := cases.Title(language.English)

	status := styles.Success.Render("valid")
	if !rec.Valid {
		status = styles.Error.Render("invalid")
	}
	r.Println(styles.Header.Render(fmt.Sprintf("%d  %s", int(rec.ID), rec.Name)) + "  " + status)

	row := func(key, value string) {
		r.Println("  " + styles.Key.Render(key) + value)
	}
	row("Kind", title.String(rec.Kind))
	row("Digits", styles.Muted.Render(rec.Digits))
	if !rec.Valid {
		return
	}
	if rec.Fundamental != 0 {
		row("Fundamental", strconv.Itoa(rec.Fundamental))
	}
	row("Charge", fmt.Sprintf("%g (3Q=%d)", rec.Charge, rec.ThreeCharge))
	row("Spin", fmt.Sprintf("2J+1=%d 2S+1=%d 2L+1=%d", rec.JSpin, rec.SSpin, rec.LSpin))
	if len(rec.Quarks) > 0 {
		q := make([]string, len(rec.Quarks))
		for i, c := range rec.Quarks {
			q[i] = pid.ParticleName(c)
		}
		row("Quarks", strings.Join(q, " "))
	}
	if rec.A != 0 {
		row("Nucleus", fmt.Sprintf("A=%d Z=%d L=%d", rec.A, rec.Z, rec.Lambda))
	}
	if rec.AntiSelf {
		row("Conjugate", styles.Muted.Render("self-conjugate"))
	}
}
