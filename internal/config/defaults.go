package config

import "github.com/leapstack-labs/pdt/pkg/pdt"

// Default configuration values.
const (
	DefaultTableName = "pdt"
	DefaultResolver  = ResolverNone
	DefaultOutput    = OutputText
)

// Resolver names.
const (
	ResolverNone     = "none"
	ResolverNucleus  = "nucleus"
	ResolverCounting = "counting"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Defaults returns the lowest-precedence layer, keyed the way koanf expects.
func Defaults() map[string]any {
	return map[string]any{
		"table_name":         DefaultTableName,
		"resolver":           DefaultResolver,
		"reference_particle": int(pdt.DefaultReference),
		"output":             DefaultOutput,
		"verbose":            false,
		"metrics":            false,
	}
}

// ApplyDefaults fills zero values left by a partial load.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.TableName == "" {
		c.TableName = DefaultTableName
	}
	if c.Resolver == "" {
		c.Resolver = DefaultResolver
	}
	if c.ReferenceParticle == 0 {
		c.ReferenceParticle = int(pdt.DefaultReference)
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}
