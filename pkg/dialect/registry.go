package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registration describes a registered dialect.
type Registration struct {
	Name        string
	Description string
	Factory     Factory

	// Translator is the dialect's built-in native code translation. Loaded
	// translation tables fall back to it. Nil means codes are canonical.
	Translator Translator
}

// DefaultTranslator returns the registration's built-in translator, or
// Identity when it has none.
func (r Registration) DefaultTranslator() Translator {
	if r.Translator != nil {
		return r.Translator
	}
	return Identity{}
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Registration)
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// Register adds a dialect to the registry.
// Called by dialect implementations in their init() functions.
func Register(r Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(r.Name)] = r
}

// Get retrieves a registration by name (case-insensitive).
func Get(name string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[strings.ToLower(name)]
	return r, ok
}

// New creates an adapter for the named dialect.
func New(name string, cfg Config) (Adapter, error) {
	if name == "" {
		return nil, ErrDialectRequired
	}
	r, ok := Get(name)
	if !ok {
		return nil, &UnknownDialectError{Name: name, Available: List()}
	}
	return r.Factory(cfg), nil
}

// List returns all registered dialect names (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registrations returns all registrations sorted by name.
func Registrations() []Registration {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Registration, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IsRegistered checks if a dialect is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownDialectError is returned when an unknown dialect is requested.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q\nAvailable dialects: %v\nHint: Check the dialect of each entry under sources in pdt.yaml", e.Name, e.Available)
}
