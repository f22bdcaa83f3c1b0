package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "pdt.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "pdt.yml"

// maxUpwardSearchLevels limits how far FindConfigFile walks up.
const maxUpwardSearchLevels = 10

// LoadFromFile reads a config file on top of the defaults. Relative source
// and translation paths are resolved against the file's directory.
func LoadFromFile(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{DecoderConfig: DecoderConfig(&cfg)}); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	if abs, err := filepath.Abs(path); err == nil {
		ResolvePaths(&cfg, filepath.Dir(abs))
	}
	return &cfg, nil
}

// ResolvePaths makes relative source and translation paths relative to base.
func ResolvePaths(c *Config, base string) {
	for i := range c.Sources {
		c.Sources[i].Path = resolvePathRelativeTo(c.Sources[i].Path, base)
	}
	for d, p := range c.Translations {
		c.Translations[d] = resolvePathRelativeTo(p, base)
	}
}

func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// configIn returns the config file in dir, or "".
func configIn(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// FindConfigFile searches startDir and its parents for pdt.yaml or
// pdt.yml. Returns "" if none is found.
func FindConfigFile(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if p := configIn(dir); p != "" {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
