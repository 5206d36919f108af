package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Table struct {
	Entries []*Entry `@@*`
}

type Entry struct {
	Pos   lexer.Position
	Name  string `@Ident`
	Arity *Arity `@@`
}

type Arity struct {
	Count    *int `  @Integer`
	Variadic bool `| @Star`
	None     bool `| @"none"`
}
