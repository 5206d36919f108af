package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ponscripter/internal/ast"
	"ponscripter/internal/compiler"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
)

func newLexCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "lex <script>",
		Short: "Print the lexemes of every logical line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], s.options(), func(out io.Writer, script *compiler.Script, i int) {
				for _, lex := range script.Lexemes[i] {
					if lex.Inert() {
						continue
					}
					fmt.Fprintf(out, "    %s\n", lex)
				}
			})
		},
	}
}

func newParseCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <script>",
		Short: "Print the parsed nodes of every logical line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], s.options(), func(out io.Writer, script *compiler.Script, i int) {
				for _, line := range strings.Split(strings.TrimRight(ast.Dump(script.Nodes[i]), "\n"), "\n") {
					if line != "" {
						fmt.Fprintf(out, "    %s\n", line)
					}
				}
			})
		},
	}
}

// inspect parses a script and hands every logical line that parsed to
// dump. A parse error is reported after the lines before it.
func inspect(out, w io.Writer, path string, opts compiler.Options, dump func(io.Writer, *compiler.Script, int)) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	lines := compiler.SplitLines(string(source))

	script, err := compiler.Parse(lines, opts)
	if script != nil {
		bold := color.New(color.Bold).SprintFunc()
		for i := range script.Nodes {
			line := script.Lines[i]
			fmt.Fprintf(out, "%s %s\n", bold(fmt.Sprintf("%4d│", line.Number)), line.Text)
			dump(out, script, i)
		}
	}
	if err != nil {
		reportError(w, errors.NewErrorReporter(path, lines), opts.BuiltinsPath, err)
		return errCompileFailed
	}
	return nil
}

func newSubsCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "subs <script>",
		Short: "List the subroutines a script declares with their arity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			lines := compiler.SplitLines(string(source))

			opts := s.options()
			db, err := compiler.NewDatabase(lines, opts)
			if err != nil {
				reportError(cmd.ErrOrStderr(), errors.NewErrorReporter(path, lines), opts.BuiltinsPath, err)
				return errCompileFailed
			}

			reporter := errors.NewErrorReporter(path, lines)
			for _, w := range db.Warnings() {
				fmt.Fprint(cmd.ErrOrStderr(), reporter.FormatWarning(w))
			}
			printSubroutines(cmd.OutOrStdout(), db.UserSubroutines())
			return nil
		},
	}
}

func printSubroutines(out io.Writer, subs []semantic.Info) {
	for _, info := range subs {
		arity := "?"
		switch info.Arity.Kind {
		case semantic.ArityNone:
			arity = "none"
		case semantic.ArityFixed:
			arity = fmt.Sprintf("%d", info.Arity.Count)
		}
		note := ""
		if info.Overridden {
			note = color.YellowString(" (overrides built-in)")
		}
		fmt.Fprintf(out, "%5d  %-24s %s%s\n", info.Line, strings.ToLower(info.Name), arity, note)
	}
}
