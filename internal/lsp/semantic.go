package lsp

import (
	"strings"

	"ponscripter/internal/builtins"
	"ponscripter/internal/parser"
	"ponscripter/internal/semantic"
	"ponscripter/token"
)

// SemanticTokenTypes is the legend of token types, indexed by TokenType.
var SemanticTokenTypes = []string{
	"namespace",
	"function",
	"variable",
	"keyword",
	"number",
	"string",
	"comment",
	"operator",
	"modifier",
}

// SemanticTokenModifiers is the legend of modifier bits.
var SemanticTokenModifiers = []string{
	"declaration",
	"defaultLibrary",
}

const (
	modDeclaration = 1 << iota
	modDefaultLibrary
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens lexes every physical line on its own. A line that
// does not lex contributes no tokens; its error is reported as a
// diagnostic instead.
func collectSemanticTokens(lines []string, db *semantic.Database, allowText bool) []SemanticToken {
	scanner := parser.NewScanner(db, parser.Options{AllowText: allowText})

	var tokens []SemanticToken
	for i, line := range lines {
		lexemes, err := scanner.LexLine(line)
		if err != nil {
			continue
		}
		for j, lex := range lexemes {
			tokenType, modifiers, ok := classify(lex, j == firstSignificant(lexemes), db)
			if !ok {
				continue
			}
			tokens = append(tokens, SemanticToken{
				Line:           uint32(i),
				StartChar:      utf16Column(line, lex.Offset),
				Length:         utf16Len(lex.Text),
				TokenType:      indexOf(tokenType, SemanticTokenTypes),
				TokenModifiers: modifiers,
			})
		}
	}
	return tokens
}

func classify(lex token.Lexeme, first bool, db *semantic.Database) (string, int, bool) {
	switch lex.Kind {
	case token.LABEL:
		if first {
			return "namespace", modDeclaration, true
		}
		return "namespace", 0, true
	case token.WORD:
		if builtins.IsKeyword(lex.Text) || strings.EqualFold(lex.Text, "return") {
			return "keyword", 0, true
		}
		if info, ok := db.Lookup(lex.Text); ok {
			if info.Builtin {
				return "function", modDefaultLibrary, true
			}
			return "function", 0, true
		}
		return "variable", 0, true
	case token.NUM_REF, token.STR_REF, token.ARRAY_REF:
		return "variable", 0, true
	case token.NUMBER, token.HEX_COLOR:
		return "number", 0, true
	case token.STRING, token.HAT_STRING, token.DIALOGUE:
		return "string", 0, true
	case token.COMMENT:
		return "comment", 0, true
	case token.OPERATOR:
		return "operator", 0, true
	case token.FORMAT_TAG, token.JUMPF_TARGET, token.CONTROL_CHAR:
		return "modifier", 0, true
	}
	return "", 0, false
}

func firstSignificant(lexemes []token.Lexeme) int {
	for i, lex := range lexemes {
		if !lex.Inert() {
			return i
		}
	}
	return -1
}

// encodeSemanticTokens packs tokens into the LSP wire format, using
// delta-line, delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32
	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))
		prevLine = t.Line
		prevStart = t.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
