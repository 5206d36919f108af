package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorReporter renders diagnostics against the script they refer to, with
// the offending line and a caret underline.
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename string, lines []string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    lines,
	}
}

// FormatError formats a diagnostic in the style:
//
//	error[P0006]: unknown command 'mvo'
//	    --> script.txt:12:1
//	     │
//	  12 │ mvo %a, 1
//	     │ ^^^
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&result, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&result, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	width := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)

	if err.Position.Line > 0 {
		fmt.Fprintf(&result, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	} else {
		fmt.Fprintf(&result, "%s %s %s\n", indent, dim("-->"), er.filename)
	}

	if err.Position.Line > 0 && err.Position.Line <= len(er.lines) {
		fmt.Fprintf(&result, "%s %s\n", indent, dim("│"))
		fmt.Fprintf(&result, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, err.Position.Line)),
			dim("│"),
			er.lines[err.Position.Line-1])
		fmt.Fprintf(&result, "%s %s %s\n", indent, dim("│"), marker(err.Position.Column, err.Length, err.Level))
	}

	for i, suggestion := range err.Suggestions {
		cyan := color.New(color.FgCyan).SprintFunc()
		if i == 0 {
			fmt.Fprintf(&result, "%s %s: %s\n", indent, cyan("help"), suggestion.Message)
		} else {
			fmt.Fprintf(&result, "%s       %s\n", indent, suggestion.Message)
		}
		if suggestion.Replacement != "" {
			fmt.Fprintf(&result, "%s %s %s\n", indent, cyan("│"), cyan(suggestion.Replacement))
		}
	}

	for _, note := range err.Notes {
		blue := color.New(color.FgBlue).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), blue("note:"), note)
	}

	if err.HelpText != "" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&result, "%s %s %s %s\n", indent, dim("│"), green("help:"), err.HelpText)
	}

	result.WriteString("\n")
	return result.String()
}

// FormatWarning renders a warning through the same layout as errors.
func (er *ErrorReporter) FormatWarning(w Warning) string {
	return er.FormatError(w.Diagnostic())
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warn:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func marker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + levelColor(level)(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
