package main

import (
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"ponscripter/grammar"
	"ponscripter/internal/compiler"
	"ponscripter/internal/errors"
)

// errCompileFailed is returned once a compile error has been reported.
var errCompileFailed = goerrors.New("compilation failed")

type compileFlags struct {
	output      string
	watch       bool
	indent      int
	entry       string
	noWarnComms bool
}

func newCompileCommand(s *settings) *cobra.Command {
	f := &compileFlags{}

	cmd := &cobra.Command{
		Use:   "compile <script>",
		Short: "Translate a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := s.options()
			opts.Config.IndentWidth = f.indent
			opts.Config.EntryLabel = f.entry
			if f.noWarnComms {
				disabled := false
				opts.Config.WarningsAsComments = &disabled
			}

			if !f.watch {
				return compileFile(cmd.ErrOrStderr(), args[0], f.output, opts)
			}
			return watch(cmd.ErrOrStderr(), args[0], f.output, opts)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: the script name with .rpy)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Recompile whenever the script changes")
	cmd.Flags().IntVar(&f.indent, "indent", 4, "Spaces per indentation level")
	cmd.Flags().StringVar(&f.entry, "entry", "start", "Label the generated program starts from")
	cmd.Flags().BoolVar(&f.noWarnComms, "no-warning-comments", false, "Keep warnings out of the generated program")
	return cmd
}

func outputPath(path, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".rpy"
}

// compileFile translates one script, writing the program next to it or to
// output ("-" is stdout), and reports every warning and error to w.
func compileFile(w io.Writer, path, output string, opts compiler.Options) error {
	startTime := time.Now()

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	lines := compiler.SplitLines(string(source))
	reporter := errors.NewErrorReporter(path, lines)

	result, err := compiler.Compile(lines, opts)
	if result != nil {
		for _, warning := range result.Warnings {
			fmt.Fprint(w, reporter.FormatWarning(warning))
		}
	}
	duration := formatDuration(time.Since(startTime))
	if err != nil {
		reportError(w, reporter, opts.BuiltinsPath, err)
		fmt.Fprintln(w, color.RedString("Compilation failed after %s", duration))
		return errCompileFailed
	}

	target := outputPath(path, output)
	if target == "-" {
		_, err = io.WriteString(os.Stdout, result.Output)
	} else {
		err = os.WriteFile(target, []byte(result.Output), 0o644)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintln(w, color.GreenString("Successfully translated %s in %s (%d warnings)", path, duration, len(result.Warnings)))
	return nil
}

// reportError prints a compile error. Built-in table syntax errors are
// shown against the table rather than the script.
func reportError(w io.Writer, reporter *errors.ErrorReporter, tablePath string, err error) {
	var tableErr participle.Error
	if tablePath != "" && goerrors.As(err, &tableErr) {
		if src, readErr := os.ReadFile(tablePath); readErr == nil {
			fmt.Fprintln(w, grammar.FormatParseError(string(src), tableErr))
			return
		}
	}
	if _, ok := errors.AsLocated(err); !ok {
		fmt.Fprintln(w, color.RedString("error: %v", err))
		return
	}
	fmt.Fprint(w, reporter.FormatError(errors.AsCompilerError(err)))
}

// watch compiles the script, then again on every write until the watcher
// fails. Compile errors are reported and do not stop it.
func watch(w io.Writer, path, output string, opts compiler.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so the directory is watched.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	_ = compileFile(w, path, output, opts)
	fmt.Fprintln(w, color.CyanString("Watching %s for changes", path))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, _ := filepath.Abs(event.Name)
			if changed != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			log.Debugf("%s: %s", event.Op, event.Name)
			_ = compileFile(w, path, output, opts)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}
}
