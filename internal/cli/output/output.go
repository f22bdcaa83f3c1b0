// Package output renders command results as styled text, YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Mode is an output format.
type Mode string

// Output modes.
const (
	ModeText Mode = "text"
	ModeYAML Mode = "yaml"
	ModeJSON Mode = "json"
)

// Styles holds the lipgloss styles used by text output. Styles degrade to
// plain text when the writer is not a terminal.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
}

// NewStyles creates styles bound to w's color profile.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Key:     r.NewStyle().Width(14).Foreground(lipgloss.Color("14")),
	}
}

// Renderer writes command output.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. Unknown modes render as text.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeYAML, ModeJSON:
	default:
		mode = ModeText
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: NewStyles(out)}
}

// Mode returns the effective output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Writer returns the output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the diagnostics writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the text styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Warnf writes a formatted message to the error writer.
func (r *Renderer) Warnf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, a...)
}

// Encode writes v as YAML or JSON according to the mode. Text mode is
// rejected; callers render text themselves.
func (r *Renderer) Encode(v any) error {
	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case ModeYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("encode: unsupported output mode %q", r.mode)
}

// Structured reports whether output is machine readable.
func (r *Renderer) Structured() bool { return r.mode != ModeText }
