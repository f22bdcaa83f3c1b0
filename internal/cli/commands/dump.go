package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pdt/pkg/pdt"
)

// DumpOptions holds options for the dump command.
type DumpOptions struct {
	Status bool
}

// NewDumpCommand creates the dump command.
func NewDumpCommand() *cobra.Command {
	opts := &DumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump [dialect:path ...]",
		Short: "Build a particle table and print it",
		Long: `Build a particle data table from the configured sources and any
dialect:path arguments, then print every particle.

Sources are read in order; a later source overrides fields of a particle
defined by an earlier one.`,
		Example: `  # Dump a PDG mass table
  pdt dump pdg:mass_width_2024.mcd

  # Merge EvtGen on top of PDG and print a short status listing
  pdt dump pdg:mass_width_2024.mcd evtgen:evt.pdl --status

  # Machine readable output
  pdt dump pythia:pythia.tbl -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Status, "status", false, "Print a short status line per particle instead of the full data")
	return cmd
}

func runDump(cmd *cobra.Command, args []string, opts *DumpOptions) error {
	cc, err := NewCommandContext(cmd, args)
	if err != nil {
		return err
	}
	r := cc.Renderer

	if r.Structured() {
		particles := cc.Table.Particles()
		records := make([]pdt.ParticleRecord, len(particles))
		for i, p := range particles {
			records[i] = p.Record()
		}
		if err := r.Encode(records); err != nil {
			return err
		}
	} else {
		write := cc.Table.WriteParticleData
		if opts.Status {
			write = cc.Table.WriteParticleStatus
		}
		if err := write(r.Writer()); err != nil {
			return err
		}
	}
	return reportMetrics(cc)
}
