package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// TableLexer tokenizes built-in command tables: one `name arity` pair per
// line, where arity is a count, `none`, or `*` for variadic commands.
var TableLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Star", `\*`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
