// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ponscripter/internal/ast"
	"ponscripter/internal/codegen"
	"ponscripter/internal/errors"
	"ponscripter/internal/parser"
	"ponscripter/internal/semantic"
)

const PROMPT = ">> "

// session keeps the state one script would: aliases, open loops and the
// python block all carry over from line to line.
type session struct {
	out       io.Writer
	db        *semantic.Database
	opts      parser.Options
	scanner   *parser.Scanner
	parser    *parser.Parser
	generator *codegen.Generator
	lineNo    int
	printed   int
}

func newSession(out io.Writer) *session {
	db := semantic.NewDatabaseWithBuiltins()
	s := &session{
		out:       out,
		db:        db,
		opts:      parser.Options{AllowText: true},
		parser:    parser.NewParser(db),
		generator: codegen.New(db, codegen.Config{}),
	}
	s.scanner = parser.NewScanner(db, s.opts)
	return s
}

// Start reads script lines from in until it is exhausted, printing the
// lexemes, the nodes and the translation of each. Lines starting with ':'
// are session commands.
func Start(in io.Reader, out io.Writer) {
	s := newSession(out)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		if strings.HasPrefix(line, ":") {
			if s.command(strings.TrimSpace(line[1:])) {
				return
			}
			continue
		}
		s.eval(line)
	}
}

// command runs a session command and reports whether the session ends.
func (s *session) command(cmd string) bool {
	switch cmd {
	case "q", "quit":
		return true
	case "text":
		s.opts.ForceText = !s.opts.ForceText
		s.scanner = parser.NewScanner(s.db, s.opts)
		fmt.Fprintf(s.out, "forced text: %t\n", s.opts.ForceText)
	case "code":
		s.opts.AllowText = !s.opts.AllowText
		s.scanner = parser.NewScanner(s.db, s.opts)
		fmt.Fprintf(s.out, "dialogue allowed: %t\n", s.opts.AllowText)
	case "finish":
		output := s.generator.Finish()
		if len(output) >= s.printed {
			fmt.Fprint(s.out, output[s.printed:])
		}
		s.generator = codegen.New(s.db, codegen.Config{})
		s.printed = 0
	default:
		fmt.Fprintf(s.out, "unknown command :%s (try :text, :code, :finish or :quit)\n", cmd)
	}
	return false
}

func (s *session) eval(line string) {
	s.lineNo++

	lexemes, err := s.scanner.LexLine(line)
	if err != nil {
		s.report(line, err)
		return
	}
	for _, w := range s.scanner.Warnings() {
		fmt.Fprintf(s.out, "warning[%s]: %s\n", w.Code, w.Message)
	}

	fmt.Fprintln(s.out, "Lexemes:")
	for _, lex := range lexemes {
		if !lex.Inert() {
			fmt.Fprintf(s.out, "  %s\n", lex)
		}
	}

	nodes, err := s.parser.ParseLine(lexemes)
	if err != nil {
		s.report(line, err)
		return
	}
	fmt.Fprintf(s.out, "AST:\n%s", ast.Dump(nodes))

	if err := s.generator.GenerateLine(s.lineNo, line, nodes); err != nil {
		s.report(line, err)
		return
	}
	output := s.generator.Emitter().String()
	if len(output) > s.printed {
		fmt.Fprintf(s.out, "Output:\n%s", output[s.printed:])
		s.printed = len(output)
	}
}

func (s *session) report(line string, err error) {
	if located, ok := errors.AsLocated(err); ok {
		located.Locate(s.lineNo, line)
	}
	reporter := errors.NewErrorReporter("<repl>", []string{line})
	ce := errors.AsCompilerError(err)
	ce.Position.Line = 1
	fmt.Fprint(s.out, reporter.FormatError(ce))
}
