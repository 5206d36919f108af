// SPDX-License-Identifier: Apache-2.0
package main

import (
	goerrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"ponscripter/internal/compiler"
)

var log = commonlog.GetLogger("ponc")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !goerrors.Is(err, errCompileFailed) {
			fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		}
		os.Exit(1)
	}
}

// settings are the flags shared by every subcommand.
type settings struct {
	verbosity    int
	noColor      bool
	builtinsPath string
	noText       bool
	noJoin       bool
}

func (s *settings) options() compiler.Options {
	opts := compiler.DefaultOptions()
	opts.BuiltinsPath = s.builtinsPath
	opts.AllowText = !s.noText
	opts.JoinContinuations = !s.noJoin
	return opts
}

func newRootCommand() *cobra.Command {
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:           "ponc",
		Short:         "Translate Ponscripter scripts into Ren'Py scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(s.verbosity, nil)
			if s.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&s.verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&s.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&s.builtinsPath, "builtins", "", "Built-in command table overriding the static one")
	rootCmd.PersistentFlags().BoolVar(&s.noText, "no-text", false, "Treat every line as code; dialogue becomes an error")
	rootCmd.PersistentFlags().BoolVar(&s.noJoin, "no-join", false, "Do not join lines ending with a comma")

	rootCmd.AddCommand(
		newCompileCommand(s),
		newLexCommand(s),
		newParseCommand(s),
		newSubsCommand(s),
	)
	return rootCmd
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
