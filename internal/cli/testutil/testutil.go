// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/pdt/internal/cli/output"
)

// PDGLine formats one record of a PDG mass/width table: the record type,
// one eight-column code, then value, errors and "name charge".
func PDGLine(kind byte, id int, value, errPlus, errMinus, name string) string {
	return fmt.Sprintf("%c%8d%24s%-18s %-8s %-8s %s", kind, id, "", value, errPlus, errMinus, name)
}

// PDGFixture returns a small PDG table holding pi+, p and n along with
// their antiparticles.
func PDGFixture() string {
	return strings.Join([]string{
		"* PDG fixture",
		PDGLine('M', 211, "1.3957039E-01", "+1.8E-07", "-1.8E-07", "pi        +"),
		PDGLine('W', 211, "2.5284E-17", "+5.0E-21", "-5.0E-21", "pi        +"),
		PDGLine('M', 2212, "9.38272088E-01", "+2.9E-10", "-2.9E-10", "p         +"),
		PDGLine('M', 2112, "9.39565420E-01", "+5.4E-10", "-5.4E-10", "n         0"),
	}, "\n") + "\n"
}

// ParticleTableFixture is a generic whitespace-separated particle table.
const ParticleTableFixture = `// ID NAME 3Q MASS WIDTH LOW HIGH 2J
     11    e-    -3   0.000510999 0       0     0     1
    -11    e+     3   0.000510999 0       0     0     1
    211    pi+    3   0.13957039  2.5284E-17  0 0   0
   -211    pi-   -3   0.13957039  2.5284E-17  0 0   0
   2212    p+     3   0.938272088 0       0     0     1
`

// SetupTestSources writes the fixtures into a temporary directory and
// returns it. Files are named pdg.mcd and generic.tbl.
func SetupTestSources(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteFixture(t, dir, "pdg.mcd", PDGFixture())
	WriteFixture(t, dir, "generic.tbl", ParticleTableFixture)
	return dir
}

// WriteFixture writes content to dir/name and returns the full path.
func WriteFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout output.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}
