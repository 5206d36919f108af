// Package compiler runs the whole translation: the pre-scan over every
// line, then lexing, parsing and generation one logical line at a time.
package compiler

import (
	"fmt"
	"sort"

	"github.com/tliron/commonlog"
	"ponscripter/grammar"
	"ponscripter/internal/ast"
	"ponscripter/internal/codegen"
	"ponscripter/internal/errors"
	"ponscripter/internal/interp"
	"ponscripter/internal/parser"
	"ponscripter/internal/semantic"
	"ponscripter/token"
)

var log = commonlog.GetLogger("ponscripter.compiler")

type Options struct {
	Config codegen.Config

	// BuiltinsPath names an external built-in table that replaces static
	// entries of the same name.
	BuiltinsPath string

	// AllowText lets lines carry dialogue.
	AllowText bool

	// JoinContinuations joins lines whose code ends with a comma.
	JoinContinuations bool
}

// DefaultOptions is what the command line tools start from.
func DefaultOptions() Options {
	return Options{AllowText: true, JoinContinuations: true}
}

// Script is the front end's view of a source: logical lines with their
// lexemes and nodes, and the database they were read against.
type Script struct {
	Lines    []Line
	Lexemes  [][]token.Lexeme
	Nodes    [][]ast.Node
	Database *semantic.Database
	Warnings []errors.Warning
}

// Positions returns a cursor over the parsed nodes. Its line indexes are
// indexes into Lines.
func (s *Script) Positions() *interp.Manager {
	return interp.NewManager(s.Nodes)
}

// Result is a finished translation. Script holds the front end's view of
// the source, cut short at a parse error.
type Result struct {
	Output   string
	Warnings []errors.Warning
	Database *semantic.Database
	Script   *Script
}

// NewDatabase builds the Subroutine Database for a script: the static
// built-ins, the external table if any, then the pre-scan.
func NewDatabase(lines []string, opts Options) (*semantic.Database, error) {
	db := semantic.NewDatabaseWithBuiltins()
	if opts.BuiltinsPath != "" {
		table, err := grammar.ParseFile(opts.BuiltinsPath)
		if err != nil {
			return nil, fmt.Errorf("loading built-in table %s: %w", opts.BuiltinsPath, err)
		}
		db.LoadTable(table)
	}
	db.Prescan(lines)
	return db, nil
}

// Parse lexes and parses every logical line of a script. It stops at the
// first error, which is located at its physical line; the script parsed
// up to that point is returned with it.
func Parse(lines []string, opts Options) (*Script, error) {
	db, err := NewDatabase(lines, opts)
	if err != nil {
		return nil, err
	}
	script := &Script{
		Lines:    JoinLines(lines, opts.JoinContinuations),
		Database: db,
		Warnings: append([]errors.Warning(nil), db.Warnings()...),
	}

	scanner := parser.NewScanner(db, parser.Options{AllowText: opts.AllowText})
	p := parser.NewParser(db)
	for _, line := range script.Lines {
		lexemes, err := scanner.LexLine(line.Text)
		if err != nil {
			return script, locate(err, line)
		}
		for _, w := range scanner.Warnings() {
			w.Line = line.Number
			script.Warnings = append(script.Warnings, w)
		}
		nodes, err := p.ParseLine(lexemes)
		if err != nil {
			return script, locate(err, line)
		}
		script.Lexemes = append(script.Lexemes, lexemes)
		script.Nodes = append(script.Nodes, nodes)
	}
	log.Debugf("parsed %d logical lines", len(script.Lines))
	return script, nil
}

// Compile translates a script. On error the result still carries the
// warnings raised before it.
func Compile(lines []string, opts Options) (*Result, error) {
	script, err := Parse(lines, opts)
	if script == nil {
		return nil, err
	}
	result := &Result{Database: script.Database, Script: script}
	if err != nil {
		result.Warnings = script.Warnings
		return result, err
	}

	g := codegen.New(script.Database, opts.Config)
	for _, w := range script.Warnings {
		g.Warn(w)
	}
	for i, line := range script.Lines {
		if err := g.GenerateLine(line.Number, line.Text, script.Nodes[i]); err != nil {
			result.Warnings = sortWarnings(g.Warnings())
			return result, locate(err, line)
		}
	}
	result.Output = g.Finish()
	result.Warnings = sortWarnings(g.Warnings())
	log.Infof("compiled %d lines with %d warnings", len(lines), len(result.Warnings))
	return result, nil
}

// CompileSource splits source into lines and compiles it.
func CompileSource(source string, opts Options) (*Result, error) {
	return Compile(SplitLines(source), opts)
}

// locate attaches the logical line to a compile error.
func locate(err error, line Line) error {
	if located, ok := errors.AsLocated(err); ok {
		located.Locate(line.Number, line.Text)
	}
	return err
}

// sortWarnings orders warnings by line, whole-script warnings first,
// keeping the order they were raised in within a line.
func sortWarnings(ws []errors.Warning) []errors.Warning {
	sorted := append([]errors.Warning(nil), ws...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Line < sorted[j].Line
	})
	return sorted
}
