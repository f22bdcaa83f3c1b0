package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pdt/pkg/dialect"
)

// Validate checks resolver, output and source settings. Dialects are looked
// up in the registry, so the dialect packages must be imported first.
func (c *Config) Validate() error {
	switch c.Resolver {
	case ResolverNone, ResolverNucleus, ResolverCounting:
	default:
		return fmt.Errorf("unknown resolver %q\nHint: use one of %s, %s, %s",
			c.Resolver, ResolverNone, ResolverNucleus, ResolverCounting)
	}
	switch c.Output {
	case OutputText, OutputYAML, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q\nHint: use one of %s, %s, %s",
			c.Output, OutputText, OutputYAML, OutputJSON)
	}
	for i, s := range c.Sources {
		if s.Path == "" {
			return fmt.Errorf("sources[%d]: path is required", i)
		}
		if err := validateDialect(s.Dialect); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	for name := range c.Translations {
		if err := validateDialect(name); err != nil {
			return fmt.Errorf("translations: %w", err)
		}
	}
	return nil
}

func validateDialect(name string) error {
	if name == "" {
		return dialect.ErrDialectRequired
	}
	if !dialect.IsRegistered(strings.ToLower(name)) {
		return &dialect.UnknownDialectError{Name: name, Available: dialect.List()}
	}
	return nil
}
