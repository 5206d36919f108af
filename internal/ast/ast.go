package ast

import "ponscripter/token"

type NodeType int

const (
	LABEL NodeType = iota
	ALIAS
	NUMERIC_REFERENCE
	STRING_REFERENCE
	ARRAY_REFERENCE
	FUNCTION
	HEX_COLOR
	STRING_LITERAL
	NUMERIC_LITERAL
	COMMENT
	IF_STATEMENT
	FOR_STATEMENT
	BINARY_OPERATOR
	UNARY
	JUMPF_TARGET
	COLON
	DIALOGUE
	FORMATTING_TAG
	CLICK_WAIT
	PAGE_WAIT
	LINE_CONTINUE
	TEXT_COLOR
	RETURN
)

// Node is one syntax node. Every node keeps the lexeme it was built from
// for diagnostics; children are owned exclusively by their parent.
type Node interface {
	NodeType() NodeType
	Lexeme() token.Lexeme
	String() string
}

// Expr is a node that may appear inside an expression.
type Expr interface {
	Node
	exprNode()
}

// Label is `*name`, both as a declaration and as a literal argument.
type Label struct {
	Lex  token.Lexeme
	Name string // without the leading '*'
}

// Alias is a bare word inside an expression.
type Alias struct {
	Lex  token.Lexeme
	Name string
}

type NumericReference struct {
	Lex   token.Lexeme // the '%' sigil
	Inner Expr
}

type StringReference struct {
	Lex   token.Lexeme // the '$' sigil
	Inner Expr
}

// ArrayReference is `?name[i][j]...` with at least one index.
type ArrayReference struct {
	Lex     token.Lexeme // the '?' sigil
	Name    Expr
	Indexes []Expr
}

type Function struct {
	Lex  token.Lexeme
	Name string
	Args []Expr
}

type HexColor struct {
	Lex token.Lexeme
}

// StringLiteral keeps its delimiters; Hat marks ^...^ literals.
type StringLiteral struct {
	Lex token.Lexeme
	Raw string
	Hat bool
}

type NumericLiteral struct {
	Lex token.Lexeme
	Raw string
}

type Comment struct {
	Lex  token.Lexeme
	Text string // without the leading ';'
}

// IfStatement is a condition only: everything after it on the same line is
// its body.
type IfStatement struct {
	Lex       token.Lexeme
	Condition Expr
	Inverted  bool // notif
}

type ForStatement struct {
	Lex      token.Lexeme
	Variable Expr
	Start    Expr
	End      Expr
	Step     Expr // nil when omitted
}

type BinaryOperator struct {
	Lex   token.Lexeme // the operator
	Left  Expr
	Op    string
	Right Expr
}

type Unary struct {
	Lex   token.Lexeme
	Op    string
	Inner Expr
}

// JumpfTarget is a bare '~' landing point for jumpf and jumpb.
type JumpfTarget struct {
	Lex token.Lexeme
}

type Colon struct {
	Lex token.Lexeme
}

type Dialogue struct {
	Lex  token.Lexeme
	Text string
}

// FormattingTag is a `~tag~` region inside text.
type FormattingTag struct {
	Lex token.Lexeme
	Tag string // without the tildes
}

// ClickWait is '@': wait for a click, then continue on the same page.
type ClickWait struct {
	Lex token.Lexeme
}

// PageWait is '\': wait for a click, then clear the page.
type PageWait struct {
	Lex token.Lexeme
}

// LineContinue is a trailing '/': the next line continues the current text
// without a newline.
type LineContinue struct {
	Lex token.Lexeme
}

// TextColor is a hex colour at statement level, which colours the text that
// follows it.
type TextColor struct {
	Lex   token.Lexeme
	Color string
}

type Return struct {
	Lex         token.Lexeme
	Destination *Label
}

func (*Label) exprNode()            {}
func (*Alias) exprNode()            {}
func (*NumericReference) exprNode() {}
func (*StringReference) exprNode()  {}
func (*ArrayReference) exprNode()   {}
func (*HexColor) exprNode()         {}
func (*StringLiteral) exprNode()    {}
func (*NumericLiteral) exprNode()   {}
func (*BinaryOperator) exprNode()   {}
func (*Unary) exprNode()            {}
