// Package dialect defines the contract for particle table dialects.
//
// A dialect adapter reads one line-oriented text stream in a legacy format
// and stages what it finds into a pdt.Builder. Concrete dialects live in
// pkg/dialects/*/ and register themselves from init().
package dialect

import (
	"io"
	"log/slog"

	"github.com/leapstack-labs/pdt/pkg/pdt"
)

// Adapter ingests one stream into a builder. Add never stops on a single bad
// line; it returns an error only when the stream cannot be read or the
// builder has already published.
type Adapter interface {
	// Name returns the dialect name, also used as the record source tag.
	Name() string

	// Add reads r to the end and stages its particles into b.
	Add(r io.Reader, b *pdt.Builder) error
}

// Config is passed to dialect factories.
type Config struct {
	// Translator maps dialect-native codes to canonical identifiers.
	// Nil means the dialect's default.
	Translator Translator

	// Logger for adapter debug output. Nil uses a discard logger.
	Logger *slog.Logger
}

// LoggerOrDiscard returns cfg.Logger, or a discard logger when unset.
func (cfg Config) LoggerOrDiscard() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// TranslatorOr returns cfg.Translator, or def when unset.
func (cfg Config) TranslatorOr(def Translator) Translator {
	if cfg.Translator != nil {
		return cfg.Translator
	}
	return def
}

// Factory creates an adapter.
type Factory func(cfg Config) Adapter

// Malformed reports a line that does not tokenize as its declared type.
func Malformed(b *pdt.Builder, dialect string, line int, text string, err error) {
	args := []any{"dialect", dialect, "line", line, "text", text}
	if err != nil {
		args = append(args, "error", err.Error())
	}
	b.Diagnose(pdt.DiagMalformedLine, "skipping malformed line", args...)
}
