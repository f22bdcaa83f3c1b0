package dialect

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/pdt/pkg/pid"
)

// Translator maps a dialect-native numeric code to a canonical identifier.
// A result of 0 means the code has no canonical equivalent.
type Translator interface {
	Translate(native int) pid.ID
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(native int) pid.ID

// Translate calls f.
func (f TranslatorFunc) Translate(native int) pid.ID { return f(native) }

// Identity treats native codes as canonical. Used by dialects whose files
// already carry standard codes.
type Identity struct{}

// Translate implements Translator.
func (Identity) Translate(native int) pid.ID { return pid.ID(native) }

// Map is a lookup table from native to canonical codes. A negative native
// code missing from the table translates to the negated entry of its
// absolute value. Codes not found at all go to the fallback, or to 0.
type Map struct {
	codes    map[int]pid.ID
	fallback Translator
}

// NewMap builds a Map from native→canonical pairs.
func NewMap(codes map[int]int, fallback Translator) *Map {
	m := &Map{codes: make(map[int]pid.ID, len(codes)), fallback: fallback}
	for k, v := range codes {
		m.codes[k] = pid.ID(v)
	}
	return m
}

// Translate implements Translator.
func (m *Map) Translate(native int) pid.ID {
	if id, ok := m.codes[native]; ok {
		return id
	}
	if native < 0 {
		if id, ok := m.codes[-native]; ok {
			return -id
		}
	}
	if m.fallback != nil {
		return m.fallback.Translate(native)
	}
	return 0
}

// Len returns the number of explicit entries.
func (m *Map) Len() int { return len(m.codes) }

// translationFile is the YAML layout of a translation table:
//
//	dialect: isajet
//	translations:
//	  - native: 110
//	    id: 111
//	    name: PI0
type translationFile struct {
	Dialect      string             `yaml:"dialect"`
	Translations []translationEntry `yaml:"translations"`
}

type translationEntry struct {
	Native int    `yaml:"native"`
	ID     int    `yaml:"id"`
	Name   string `yaml:"name,omitempty"`
}

// LoadTranslationYAML reads a YAML translation table.
func LoadTranslationYAML(r io.Reader, fallback Translator) (*Map, error) {
	var f translationFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode translation table: %w", err)
	}

	codes := make(map[int]int, len(f.Translations))
	for i, e := range f.Translations {
		if _, dup := codes[e.Native]; dup {
			return nil, fmt.Errorf("translation %d: duplicate native code %d", i, e.Native)
		}
		codes[e.Native] = e.ID
	}
	return NewMap(codes, fallback), nil
}

// LoadTranslationFile reads a YAML translation table from path.
func LoadTranslationFile(path string, fallback Translator) (*Map, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open translation table: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := LoadTranslationYAML(f, fallback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
