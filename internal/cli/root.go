// Package cli provides the command-line interface for pdt.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pdt/internal/cli/commands"
	"github.com/leapstack-labs/pdt/internal/cli/config"

	// Register input dialects.
	_ "github.com/leapstack-labs/pdt/pkg/dialects/evtgen"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/isajet"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/particletable"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/pdg"
	_ "github.com/leapstack-labs/pdt/pkg/dialects/pythia"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "pdt",
		Short: "pdt - particle data tables",
		Long: `pdt builds particle data tables from legacy physics data files.

It reads EvtGen, PDG, Pythia, Isajet and generic particle tables, merges
them into one table keyed by the standard particle numbering scheme, and
lets you dump, translate, look up and decode particles.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if file := config.GetConfigFileUsed(); file != "" {
				logger.Debug("using config file", "path", file)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}} (commit %s, built %s)\n", GitCommit, BuildDate))

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: pdt.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().String("table-name", "", "Name of the built table")
	rootCmd.PersistentFlags().String("resolver", "", "Unknown-ID resolver (none|nucleus|counting)")
	rootCmd.PersistentFlags().Int("reference", 0, "Reference particle for nucleus synthesis (default 2212)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (text|yaml|json)")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print lookup and resolver metrics after the command")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("resolver", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"none", "nucleus", "counting"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewDumpCommand())
	rootCmd.AddCommand(commands.NewTranslateCommand())
	rootCmd.AddCommand(commands.NewLookupCommand())
	rootCmd.AddCommand(commands.NewDecodeCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(commands.NewReplCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pdt.

Bash:
  $ source <(pdt completion bash)

Zsh:
  $ pdt completion zsh > "${fpath[1]}/_pdt"

Fish:
  $ pdt completion fish | source

PowerShell:
  PS> pdt completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
