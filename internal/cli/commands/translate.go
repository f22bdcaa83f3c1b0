package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pdt/pkg/pid"
)

// translationRecord is one row of structured translate output.
type translationRecord struct {
	OriginalID int    `json:"original_id" yaml:"original_id"`
	ID         pid.ID `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Source     string `json:"source" yaml:"source"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate [dialect:path ...]",
		Short: "List native codes next to canonical identifiers",
		Long: `Build a particle data table and list, for every particle, the code used
by the source it came from next to its canonical identifier.`,
		Example: `  # Show how Isajet codes map to canonical identifiers
  pdt translate isajet:isaparticles.dat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args)
		},
	}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cc, err := NewCommandContext(cmd, args)
	if err != nil {
		return err
	}
	r := cc.Renderer

	if !r.Structured() {
		if err := cc.Table.WriteParticleTranslation(r.Writer()); err != nil {
			return err
		}
		return reportMetrics(cc)
	}

	particles := cc.Table.Particles()
	records := make([]translationRecord, len(particles))
	for i, p := range particles {
		records[i] = translationRecord{
			OriginalID: p.OriginalID(),
			ID:         p.ID(),
			Name:       p.Name(),
			Source:     p.Source(),
		}
	}
	if err := r.Encode(records); err != nil {
		return err
	}
	return reportMetrics(cc)
}
