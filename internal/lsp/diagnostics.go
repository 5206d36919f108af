package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"ponscripter/internal/errors"
)

const diagnosticSource = "ponscripter"

// Diagnostics converts the outcome of a compilation into LSP diagnostics:
// the fatal error first, if any, then every warning. Warnings that belong
// to no line are reported on the first line.
func Diagnostics(lines []string, warnings []errors.Warning, err error) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if err != nil {
		diagnostics = append(diagnostics, convert(lines, errors.AsCompilerError(err), protocol.DiagnosticSeverityError))
	}
	for _, w := range warnings {
		diagnostics = append(diagnostics, convert(lines, w.Diagnostic(), protocol.DiagnosticSeverityWarning))
	}
	return diagnostics
}

func convert(lines []string, ce errors.CompilerError, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	line := max(ce.Position.Line-1, 0)
	var text string
	if line < len(lines) {
		text = lines[line]
	}
	start := min(max(ce.Position.Offset, 0), len(text))
	end := min(start+max(ce.Length, 1), len(text))

	message := ce.Message
	for _, s := range ce.Suggestions {
		message += "\n" + s.Message
	}
	if len(ce.Notes) > 0 {
		message += "\n" + strings.Join(ce.Notes, "\n")
	}

	d := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: utf16Column(text, start)},
			End:   protocol.Position{Line: uint32(line), Character: utf16Column(text, end)},
		},
		Severity: ptrSeverity(severity),
		Source:   ptrString(diagnosticSource),
		Message:  message,
	}
	if ce.Code != "" {
		d.Code = &protocol.IntegerOrString{Value: ce.Code}
	}
	return d
}

// utf16Column converts a byte offset into line to the UTF-16 column LSP
// positions use.
func utf16Column(line string, offset int) uint32 {
	var n uint32
	for _, r := range line[:min(offset, len(line))] {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// byteOffset is the inverse of utf16Column.
func byteOffset(line string, column uint32) int {
	var n uint32
	for i, r := range line {
		if n >= column {
			return i
		}
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return len(line)
}

func utf16Len(s string) uint32 {
	return utf16Column(s, len(s))
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
