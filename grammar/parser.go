package grammar

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parser = buildParser()

func buildParser() *participle.Parser[Table] {
	p, err := participle.Build[Table](
		participle.Lexer(TableLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build table parser: %w", err))
	}
	return p
}

func ParseFile(path string) (*Table, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

func ParseString(name, source string) (*Table, error) {
	return parser.ParseString(name, source)
}

func Parse(name string, r io.Reader) (*Table, error) {
	return parser.Parse(name, r)
}

// FormatParseError renders a caret-style message for a table parse error.
func FormatParseError(src string, err error) string {
	pe, ok := err.(participle.Error)
	if !ok {
		return color.RedString("Unexpected error: %s", err)
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return color.RedString("Syntax error at unknown location: %s", err)
	}

	var sb strings.Builder
	sb.WriteString(color.RedString("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column))
	sb.WriteString("\n")
	sb.WriteString(lines[pos.Line-1])
	sb.WriteString("\n")
	sb.WriteString(color.HiRedString(strings.Repeat(" ", max(0, pos.Column-1)) + "^"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "→ %s\n", pe.Message())
	return sb.String()
}
