// Package source turns configured input files into a published particle
// table. Files are read concurrently; ingestion is sequential and follows
// the configured order, since later sources override earlier ones.
package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/pdt/internal/config"
	"github.com/leapstack-labs/pdt/pkg/dialect"
	"github.com/leapstack-labs/pdt/pkg/pdt"
)

// DefaultConcurrency bounds parallel file reads.
const DefaultConcurrency = 4

// Input is one source read into memory.
type Input struct {
	Source config.SourceConfig
	Data   []byte
}

// Options controls Load and Ingest.
type Options struct {
	// Translations maps a dialect name to a YAML translation file. The
	// dialect's built-in translation serves codes the file leaves out.
	Translations map[string]string
	Logger       *slog.Logger
	// Diagnostics receives adapter warnings. Defaults to Logger.
	Diagnostics pdt.DiagnosticSink
	Concurrency int
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Read loads every source concurrently. The result keeps the order of
// sources; the first failure cancels the remaining reads.
func Read(ctx context.Context, sources []config.SourceConfig, concurrency int) ([]Input, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	inputs := make([]Input, len(sources))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, src := range sources {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(src.Path)
			if err != nil {
				return fmt.Errorf("read %s source: %w", src.Dialect, err)
			}
			inputs[i] = Input{Source: src, Data: data}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// Translators loads the configured translation files, keyed by lowercase
// dialect name.
func Translators(translations map[string]string) (map[string]dialect.Translator, error) {
	out := make(map[string]dialect.Translator, len(translations))
	for name, path := range translations {
		reg, ok := dialect.Get(name)
		if !ok {
			return nil, &dialect.UnknownDialectError{Name: name, Available: dialect.List()}
		}
		m, err := dialect.LoadTranslationFile(path, reg.DefaultTranslator())
		if err != nil {
			return nil, fmt.Errorf("translation for %s: %w", name, err)
		}
		out[strings.ToLower(name)] = m
	}
	return out, nil
}

// Ingest feeds inputs into tbl through one builder, publishing when done.
// An unknown dialect or a reader error aborts the build; records staged so
// far are still published.
func Ingest(tbl *pdt.Table, inputs []Input, opts Options) error {
	translators, err := Translators(opts.Translations)
	if err != nil {
		return err
	}
	logger := opts.logger()

	bopts := []pdt.BuilderOption{pdt.WithBuilderLogger(logger)}
	if opts.Diagnostics != nil {
		bopts = append(bopts, pdt.WithDiagnostics(opts.Diagnostics))
	}

	return pdt.Build(tbl, func(b *pdt.Builder) error {
		for _, in := range inputs {
			a, err := dialect.New(in.Source.Dialect, dialect.Config{
				Translator: translators[strings.ToLower(in.Source.Dialect)],
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			before := b.Size()
			if err := a.Add(bytes.NewReader(in.Data), b); err != nil {
				return fmt.Errorf("%s: %w", in.Source, err)
			}
			logger.Debug("source ingested", "source", in.Source.String(), "staged", b.Size()-before)
		}
		return nil
	}, bopts...)
}

// Load reads sources and ingests them into tbl.
func Load(ctx context.Context, tbl *pdt.Table, sources []config.SourceConfig, opts Options) error {
	inputs, err := Read(ctx, sources, opts.Concurrency)
	if err != nil {
		return err
	}
	return Ingest(tbl, inputs, opts)
}
