// Package config holds the configuration shared by the pdt command and any
// tool that builds particle tables from a pdt.yaml file.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// SourceConfig names one input stream and the dialect that reads it.
type SourceConfig struct {
	Dialect string `koanf:"dialect" yaml:"dialect"`
	Path    string `koanf:"path" yaml:"path"`
}

// String returns the "dialect:path" form accepted on the command line.
func (s SourceConfig) String() string {
	return s.Dialect + ":" + s.Path
}

// ParseSource parses a "dialect:path" argument.
func ParseSource(s string) (SourceConfig, error) {
	d, p, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(d) == "" || strings.TrimSpace(p) == "" {
		return SourceConfig{}, fmt.Errorf("invalid source %q: want dialect:path", s)
	}
	return SourceConfig{Dialect: strings.TrimSpace(d), Path: strings.TrimSpace(p)}, nil
}

// Config holds every setting that shapes a table build.
type Config struct {
	TableName         string            `koanf:"table_name"`
	Resolver          string            `koanf:"resolver"`
	ReferenceParticle int               `koanf:"reference_particle"`
	Output            string            `koanf:"output"`
	Verbose           bool              `koanf:"verbose"`
	Metrics           bool              `koanf:"metrics"`
	Sources           []SourceConfig    `koanf:"sources"`
	Translations      map[string]string `koanf:"translations"` // dialect -> YAML translation file
}

// sourceHook lets a source be written as a "dialect:path" string.
func sourceHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(SourceConfig{}) {
			return data, nil
		}
		return ParseSource(data.(string))
	}
}

// sourceListHook splits a comma separated PDT_SOURCES value.
func sourceListHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf([]SourceConfig(nil)) {
			return data, nil
		}
		var out []SourceConfig
		for _, part := range strings.Split(data.(string), ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			s, err := ParseSource(part)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
}

// DecoderConfig returns the mapstructure configuration used to decode into
// out. Callers pass it to koanf's UnmarshalWithConf.
func DecoderConfig(out *Config) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			sourceListHook(),
			sourceHook(),
		),
		Result:           out,
		WeaklyTypedInput: true,
	}
}
