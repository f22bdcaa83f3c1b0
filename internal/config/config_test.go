package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pdt/pkg/dialect"

	// Register the dialects referenced below.
	_ "github.com/leapstack-labs/pdt/pkg/dialects/evtgen"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/pdg"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		in      string
		want    SourceConfig
		wantErr bool
	}{
		{in: "pdg:mass_width.mcd", want: SourceConfig{Dialect: "pdg", Path: "mass_width.mcd"}},
		{in: " evtgen : evt.pdl ", want: SourceConfig{Dialect: "evtgen", Path: "evt.pdl"}},
		{in: "pythia:C:/tables/pythia.tbl", want: SourceConfig{Dialect: "pythia", Path: "C:/tables/pythia.tbl"}},
		{in: "mass_width.mcd", wantErr: true},
		{in: ":path", wantErr: true},
		{in: "pdg:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSource(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Dialect+":"+tt.want.Path, got.String())
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	ApplyDefaults(&c)
	assert.Equal(t, DefaultTableName, c.TableName)
	assert.Equal(t, ResolverNone, c.Resolver)
	assert.Equal(t, 2212, c.ReferenceParticle)
	assert.Equal(t, OutputText, c.Output)

	ApplyDefaults(nil)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Config{}
		ApplyDefaults(&c)
		return c
	}
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "known sources", mutate: func(c *Config) {
			c.Sources = []SourceConfig{{Dialect: "PDG", Path: "a.mcd"}, {Dialect: "evtgen", Path: "b.pdl"}}
		}},
		{name: "bad resolver", mutate: func(c *Config) { c.Resolver = "magic" }, errSubstr: "unknown resolver"},
		{name: "bad output", mutate: func(c *Config) { c.Output = "xml" }, errSubstr: "unknown output format"},
		{name: "missing path", mutate: func(c *Config) {
			c.Sources = []SourceConfig{{Dialect: "pdg"}}
		}, errSubstr: "path is required"},
		{name: "missing dialect", mutate: func(c *Config) {
			c.Sources = []SourceConfig{{Path: "a"}}
		}, errSubstr: "dialect is required"},
		{name: "unknown dialect", mutate: func(c *Config) {
			c.Sources = []SourceConfig{{Dialect: "herwig", Path: "a"}}
		}, errSubstr: "unknown dialect"},
		{name: "unknown translation dialect", mutate: func(c *Config) {
			c.Translations = map[string]string{"herwig": "h.yaml"}
		}, errSubstr: "translations"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestValidate_UnknownDialectIsTyped(t *testing.T) {
	c := Config{Resolver: ResolverNone, Output: OutputText, Sources: []SourceConfig{{Dialect: "herwig", Path: "a"}}}
	err := c.Validate()
	var ude *dialect.UnknownDialectError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, "herwig", ude.Name)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
table_name: evtgen-table
resolver: nucleus
sources:
  - pdg:tables/mass_width.mcd
  - dialect: evtgen
    path: /abs/evt.pdl
translations:
  evtgen: evtgen-codes.yaml
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "evtgen-table", cfg.TableName)
	assert.Equal(t, ResolverNucleus, cfg.Resolver)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, 2212, cfg.ReferenceParticle)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, SourceConfig{Dialect: "pdg", Path: filepath.Join(dir, "tables", "mass_width.mcd")}, cfg.Sources[0])
	assert.Equal(t, SourceConfig{Dialect: "evtgen", Path: "/abs/evt.pdl"}, cfg.Sources[1])
	assert.Equal(t, filepath.Join(dir, "evtgen-codes.yaml"), cfg.Translations["evtgen"])
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, FindConfigFile(nested))

	alt := filepath.Join(root, ConfigFileNameAlt)
	require.NoError(t, os.WriteFile(alt, []byte("table_name: x\n"), 0o644))
	assert.Equal(t, alt, FindConfigFile(nested))

	primary := filepath.Join(root, "a", ConfigFileName)
	require.NoError(t, os.WriteFile(primary, []byte("table_name: y\n"), 0o644))
	assert.Equal(t, primary, FindConfigFile(nested))
}
