package commands

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pdt/internal/cli/config"
	"github.com/leapstack-labs/pdt/internal/cli/output"
	shared "github.com/leapstack-labs/pdt/internal/config"
	"github.com/leapstack-labs/pdt/internal/source"
	"github.com/leapstack-labs/pdt/pkg/pdt"
	"github.com/leapstack-labs/pdt/pkg/pid"
)

// CommandContext holds dependencies shared by the table commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Table    *pdt.Table
	Registry *prometheus.Registry // nil unless metrics are enabled
}

// NewCommandContextWithoutTable creates a CommandContext for commands that
// only need config and output.
func NewCommandContextWithoutTable(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// NewCommandContext builds the particle table from the configured sources
// followed by any "dialect:path" arguments.
func NewCommandContext(cmd *cobra.Command, args []string) (*CommandContext, error) {
	cc := NewCommandContextWithoutTable(cmd)

	sources, err := collectSources(cc.Cfg.Sources, args)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no input sources\nHint: list sources in pdt.yaml or pass dialect:path arguments")
	}

	opts := []pdt.Option{pdt.WithLogger(cc.Logger)}
	if r := newResolver(cc.Cfg, cc.Logger); r != nil {
		opts = append(opts, pdt.WithResolver(r))
	}
	if cc.Cfg.Metrics {
		cc.Registry = prometheus.NewRegistry()
		m, err := pdt.NewMetrics(cc.Registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, pdt.WithMetrics(m))
	}
	cc.Table = pdt.NewTable(cc.Cfg.TableName, opts...)

	if err := source.Load(cmd.Context(), cc.Table, sources, source.Options{
		Translations: cc.Cfg.Translations,
		Logger:       cc.Logger,
	}); err != nil {
		return nil, err
	}
	cc.Logger.Debug("table built", "table", cc.Table.Name(), "particles", cc.Table.Size(), "sources", len(sources))
	return cc, nil
}

func collectSources(configured []config.SourceConfig, args []string) ([]config.SourceConfig, error) {
	out := append([]config.SourceConfig(nil), configured...)
	for _, arg := range args {
		s, err := shared.ParseSource(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// newResolver returns the configured resolver, or nil for none.
func newResolver(cfg *config.Config, logger *slog.Logger) pdt.Resolver {
	nucleus := pdt.NucleusResolver{Reference: pid.ID(cfg.ReferenceParticle)}
	switch cfg.Resolver {
	case shared.ResolverNucleus:
		return nucleus
	case shared.ResolverCounting:
		return &pdt.CountingResolver{Next: nucleus, Logger: logger}
	}
	return nil
}
