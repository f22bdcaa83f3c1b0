package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/pdt/internal/cli"
	cliconfig "github.com/leapstack-labs/pdt/internal/cli/config"
	"github.com/leapstack-labs/pdt/pkg/dialect"
)

// sourceMode is how a command receives its dialect:path inputs on top of
// the configured sources.
type sourceMode int

const (
	noSources sourceMode = iota
	argSources
	flagSources
)

func sourceModeOf(cmd *cobra.Command) sourceMode {
	if cmd.LocalFlags().Lookup("source") != nil {
		return flagSources
	}
	if strings.Contains(cmd.Use, "dialect:path") {
		return argSources
	}
	return noSources
}

func (m sourceMode) column() string {
	switch m {
	case argSources:
		return "arguments"
	case flagSources:
		return InlineCode("--source")
	}
	return "-"
}

func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	cmds := documentedCommands(root)
	regs := dialect.Registrations()

	if err := cliIndex(root, cmds, regs).WriteFile(outDir, "index.md"); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	for _, cmd := range cmds {
		if err := commandPage(cmd, regs).WriteFile(outDir, cmd.Name()+".md"); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
	}
	log.Printf("  %d command pages", len(cmds))
	return nil
}

func documentedCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndex(root *cobra.Command, cmds []*cobra.Command, regs []dialect.Registration) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for pdt")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/pdt/cmd/pdt@latest\npdt <command> [options] [dialect:path ...]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range cmds {
		link := fmt.Sprintf("[%s](%s.md)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short), sourceModeOf(cmd).column()})
	}
	w.Table([]string{"Command", "Description", "Extra sources"}, rows)

	w.Header(2, "Sources")
	w.Paragraph("A source is written " + InlineCode("dialect:path") +
		". The part before the first colon names a registered dialect and the rest is the file path. " +
		"Sources listed under " + InlineCode("sources") + " in pdt.yaml load first. Sources given on the command line are appended in order, so a later file overwrites earlier definitions of the same particle.")
	writeDialectTable(w, regs)

	w.Header(2, "Global Options")
	w.Paragraph("Each global option overrides a pdt.yaml key, which can also be set from the environment. Flags win over the environment, which wins over the file.")
	w.Table([]string{"Option", "Short", "Config key", "Environment", "Description"}, globalFlagRows(root.PersistentFlags()))

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, including lookups that found nothing (details on stderr)"},
	})
	return w
}

func commandPage(cmd *cobra.Command, regs []dialect.Registration) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cleanDescription(cmd.Short))
	w.GeneratedMarker()

	w.Header(1, "pdt "+cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cleanDescription(cmd.Short))
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", strings.TrimSpace(cmd.UseLine()))

	if len(cmd.Aliases) > 0 {
		var aliases []string
		for _, a := range cmd.Aliases {
			aliases = append(aliases, InlineCode(a))
		}
		w.Header(2, "Aliases")
		w.BulletList(aliases)
	}

	switch sourceModeOf(cmd) {
	case argSources:
		w.Header(2, "Sources")
		w.Paragraph("Every positional argument is a " + InlineCode("dialect:path") +
			" source, appended after the configured sources. With no arguments the command reads only pdt.yaml.")
		writeDialectTable(w, regs)
	case flagSources:
		w.Header(2, "Sources")
		w.Paragraph("Positional arguments are queries. Add sources with " + InlineCode("--source dialect:path") +
			", repeated once per file, to append them after the configured sources.")
		writeDialectTable(w, regs)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		w.Table([]string{"Option", "Short", "Default", "Description"}, localFlagRows(cmd.LocalFlags()))
	}
	if cmd.HasInheritedFlags() {
		w.Paragraph("Global options are listed in the [CLI reference](index.md#global-options).")
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w
}

// writeDialectTable links each registered dialect to its entry in the
// dialect reference.
func writeDialectTable(w *MarkdownWriter, regs []dialect.Registration) {
	var rows [][]string
	for _, reg := range regs {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](../reference/dialects.md#%s)", InlineCode(reg.Name), reg.Name),
			cleanDescription(reg.Description),
		})
	}
	w.Table([]string{"Dialect", "Reads"}, rows)
}

func globalFlagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		key, env := "-", "-"
		if documentedKey(cliconfig.FlagKey(f.Name)) {
			key = InlineCode(cliconfig.FlagKey(f.Name))
			env = InlineCode(cliconfig.EnvPrefix + strings.ToUpper(cliconfig.FlagKey(f.Name)))
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), shorthand(f), key, env, cleanDescription(f.Usage)})
	})
	return rows
}

func localFlagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		def := ""
		switch f.Value.Type() {
		case "bool", "stringArray":
		default:
			if f.DefValue != "" && f.DefValue != "0" {
				def = InlineCode(f.DefValue)
			}
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), shorthand(f), def, cleanDescription(f.Usage)})
	})
	return rows
}

func shorthand(f *pflag.Flag) string {
	if f.Shorthand == "" {
		return ""
	}
	return InlineCode("-" + f.Shorthand)
}

func documentedKey(key string) bool {
	for _, f := range configFields {
		if f.Name == key {
			return true
		}
	}
	return false
}
