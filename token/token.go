// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"strings"
)

type Kind int

const (
	ILLEGAL Kind = iota

	WHITESPACE
	COMMENT
	COLON
	LABEL
	FORMAT_TAG   // ~i~
	JUMPF_TARGET // bare ~
	HEX_COLOR    // #rrggbb
	CONTROL_CHAR // @ and \
	WORD
	COMMA

	// Reference sigils
	NUM_REF   // %
	STR_REF   // $
	ARRAY_REF // ?

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACKET
	RIGHT_BRACKET

	OPERATOR

	// Literals
	STRING
	HAT_STRING
	NUMBER

	DIALOGUE
	UNHANDLED_CONTROL
)

var kindNames = [...]string{
	ILLEGAL:           "ILLEGAL",
	WHITESPACE:        "WHITESPACE",
	COMMENT:           "COMMENT",
	COLON:             "COLON",
	LABEL:             "LABEL",
	FORMAT_TAG:        "FORMAT_TAG",
	JUMPF_TARGET:      "JUMPF_TARGET",
	HEX_COLOR:         "HEX_COLOR",
	CONTROL_CHAR:      "CONTROL_CHAR",
	WORD:              "WORD",
	COMMA:             "COMMA",
	NUM_REF:           "NUM_REF",
	STR_REF:           "STR_REF",
	ARRAY_REF:         "ARRAY_REF",
	LEFT_PAREN:        "LEFT_PAREN",
	RIGHT_PAREN:       "RIGHT_PAREN",
	LEFT_BRACKET:      "LEFT_BRACKET",
	RIGHT_BRACKET:     "RIGHT_BRACKET",
	OPERATOR:          "OPERATOR",
	STRING:            "STRING",
	HAT_STRING:        "HAT_STRING",
	NUMBER:            "NUMBER",
	DIALOGUE:          "DIALOGUE",
	UNHANDLED_CONTROL: "UNHANDLED_CONTROL",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Lexeme is one typed slice of a script line. Text is always the exact
// source text, so concatenating a line's lexemes reproduces the line.
type Lexeme struct {
	Kind   Kind
	Text   string
	Offset int // 0-based byte offset into the line
}

func (l Lexeme) End() int {
	return l.Offset + len(l.Text)
}

// IsWord reports whether the lexeme is the given word, compared
// case-insensitively.
func (l Lexeme) IsWord(word string) bool {
	return l.Kind == WORD && strings.EqualFold(l.Text, word)
}

// IsOperator reports whether the lexeme is one of the given operators.
func (l Lexeme) IsOperator(ops ...string) bool {
	if l.Kind != OPERATOR {
		return false
	}
	for _, op := range ops {
		if l.Text == op {
			return true
		}
	}
	return false
}

// Inert lexemes carry no syntax; the parser steps over them.
func (l Lexeme) Inert() bool {
	return l.Kind == WHITESPACE
}

func (l Lexeme) String() string {
	return fmt.Sprintf("%s(%q@%d)", l.Kind, l.Text, l.Offset)
}

// Join concatenates lexeme texts.
func Join(lexemes []Lexeme) string {
	var sb strings.Builder
	for _, l := range lexemes {
		sb.WriteString(l.Text)
	}
	return sb.String()
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset in the line
}
