package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"ponscripter/internal/compiler"
	"ponscripter/internal/semantic"
)

// Completions lists the commands of db matching prefix, best match first.
// An empty prefix lists every command in name order.
func Completions(db *semantic.Database, prefix string) []protocol.CompletionItem {
	names := db.Names()
	if prefix != "" {
		ranks := fuzzy.RankFindFold(prefix, names)
		sort.Sort(ranks)
		names = names[:0]
		for _, rank := range ranks {
			names = append(names, rank.Target)
		}
	}

	items := []protocol.CompletionItem{}
	kind := protocol.CompletionItemKindFunction
	for _, name := range names {
		info, ok := db.Lookup(name)
		if !ok {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label:  strings.ToLower(info.Name),
			Kind:   &kind,
			Detail: ptrString(describe(info)),
		})
	}
	return items
}

func describe(info semantic.Info) string {
	var args string
	switch info.Arity.Kind {
	case semantic.ArityNone:
		args = "no arguments"
	case semantic.ArityFixed:
		args = fmt.Sprintf("%d argument(s)", info.Arity.Count)
	default:
		args = "variable arguments"
	}
	switch {
	case info.Overridden:
		return fmt.Sprintf("subroutine overriding a built-in, %s", args)
	case info.User:
		return fmt.Sprintf("subroutine, %s", args)
	default:
		return fmt.Sprintf("built-in, %s", args)
	}
}

// Definition finds the declaration of the label or subroutine named at
// offset on a physical line.
func Definition(script *compiler.Script, lines []string, line, offset int) (protocol.Range, bool) {
	if script == nil || line < 0 || line >= len(lines) {
		return protocol.Range{}, false
	}
	word := wordAt(lines[line], offset)
	name := strings.TrimPrefix(word, "*")
	if name == "" || (!strings.HasPrefix(word, "*") && !script.Database.IsUserSubroutine(name)) {
		return protocol.Range{}, false
	}

	pos, ok := script.Positions().Lookup(name)
	if !ok {
		return protocol.Range{}, false
	}
	target := script.Lines[pos.Line].Number - 1
	lex := script.Nodes[pos.Line][pos.Instruction].Lexeme()
	text := lines[target]
	return protocol.Range{
		Start: protocol.Position{Line: uint32(target), Character: utf16Column(text, lex.Offset)},
		End:   protocol.Position{Line: uint32(target), Character: utf16Column(text, lex.End())},
	}, true
}

// wordBefore returns the identifier characters ending at offset.
func wordBefore(line string, offset int) string {
	offset = min(offset, len(line))
	start := offset
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:offset]
}

// wordAt returns the identifier around offset, with a leading '*' when it
// is written as a label.
func wordAt(line string, offset int) string {
	offset = min(offset, len(line))
	start, end := offset, offset
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	for end < len(line) && isWordByte(line[end]) {
		end++
	}
	if start > 0 && line[start-1] == '*' {
		start--
	}
	return line[start:end]
}

func isWordByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
