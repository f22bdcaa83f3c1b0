package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pdt/pkg/pid"
)

// ReplOptions holds options for the repl command.
type ReplOptions struct {
	Sources []string
	History string
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &ReplOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive particle lookup shell",
		Long: `Build a particle data table once and query it interactively.

Type an identifier or a name to look it up; dot-commands decode identifiers
and summarize the table. Type .help for the list.`,
		Example: `  pdt repl -s pdg:mass_width_2024.mcd -s evtgen:evt.pdl`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Sources, "source", "s", nil, "Input source as dialect:path (repeatable)")
	cmd.Flags().StringVar(&opts.History, "history", defaultHistoryFile(), "History file (empty disables history)")
	return cmd
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pdt", "repl_history")
}

func runRepl(cmd *cobra.Command, opts *ReplOptions) error {
	cc, err := NewCommandContext(cmd, opts.Sources)
	if err != nil {
		return err
	}

	if opts.History != "" {
		if err := os.MkdirAll(filepath.Dir(opts.History), 0o750); err != nil {
			cc.Logger.Debug("history disabled", "error", err)
			opts.History = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pdt> ",
		HistoryFile:     opts.History,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "pdt REPL (table %s, %d particles)\n", cc.Table.Name(), cc.Table.Size())
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if quit := handleReplLine(cc, line); quit {
			break
		}
	}
	return nil
}

// handleReplLine runs one REPL input line and reports whether to exit.
func handleReplLine(cc *CommandContext, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	r := cc.Renderer
	w := r.Writer()

	if !strings.HasPrefix(line, ".") {
		writeLookupResults(w, lookupAll(cc.Table, strings.Fields(line)))
		return false
	}

	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printReplHelp(w)
	case ".decode":
		if len(parts) < 2 {
			r.Warnf("Usage: .decode <id> ...\n")
			return false
		}
		for _, arg := range parts[1:] {
			n, err := strconv.Atoi(arg)
			if err != nil {
				r.Warnf("Error: invalid identifier %q\n", arg)
				continue
			}
			renderDecodeText(r, decodeID(pid.ID(n)))
		}
	case ".status":
		if err := cc.Table.WriteParticleStatus(w); err != nil {
			r.Warnf("Error: %v\n", err)
		}
	case ".size":
		r.Printf("%d particles\n", cc.Table.Size())
	case ".metrics":
		if cc.Registry == nil {
			r.Warnf("Metrics are disabled; restart with --metrics\n")
			return false
		}
		if err := writeMetrics(w, cc.Registry); err != nil {
			r.Warnf("Error: %v\n", err)
		}
	default:
		r.Warnf("Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  <id|name> ...     Look up particles (identifier misses go through the resolver)
  .decode <id> ...  Decode identifiers
  .status           One line per particle
  .size             Number of particles
  .metrics          Lookup and resolver counters (needs --metrics)
  .help             Show this help message
  .quit / .exit     Exit the REPL
`
	_, _ = fmt.Fprintln(w, help)
}

func newReplCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".decode"),
		readline.PcItem(".status"),
		readline.PcItem(".size"),
		readline.PcItem(".metrics"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
