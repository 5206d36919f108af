package parser

import (
	"fmt"
	"strings"

	"ponscripter/internal/ast"
	"ponscripter/internal/builtins"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
	"ponscripter/token"
)

// Parser builds the node forest of one line at a time. It keeps the name of
// the last function it parsed across lines, because a bad argument list
// usually shows up as an error on the lexeme after it.
type Parser struct {
	db           *semantic.Database
	lexemes      []token.Lexeme
	current      int
	lastFunction string
}

func NewParser(db *semantic.Database) *Parser {
	return &Parser{db: db}
}

// ParseLine parses the lexemes of one line into its top-level nodes, in
// source order. There is no recovery: the first error is returned.
func (p *Parser) ParseLine(lexemes []token.Lexeme) ([]ast.Node, error) {
	p.lexemes = lexemes
	p.current = 0

	var nodes []ast.Node
	for {
		p.skipInert()
		if p.isAtEnd() {
			break
		}
		node, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

func (p *Parser) parseTopLevel() (ast.Node, error) {
	lex := p.peek()
	switch lex.Kind {
	case token.COMMENT:
		p.advance()
		return &ast.Comment{Lex: lex, Text: strings.TrimPrefix(lex.Text, ";")}, nil
	case token.LABEL:
		p.advance()
		return &ast.Label{Lex: lex, Name: strings.TrimPrefix(lex.Text, "*")}, nil
	case token.WORD:
		return p.parseStatement()
	case token.NUM_REF, token.STR_REF:
		return p.parsePrimary()
	case token.JUMPF_TARGET:
		p.advance()
		return &ast.JumpfTarget{Lex: lex}, nil
	case token.COLON:
		p.advance()
		return &ast.Colon{Lex: lex}, nil
	case token.DIALOGUE:
		p.advance()
		return &ast.Dialogue{Lex: lex, Text: lex.Text}, nil
	case token.FORMAT_TAG:
		p.advance()
		return &ast.FormattingTag{Lex: lex, Tag: strings.Trim(lex.Text, "~")}, nil
	case token.HEX_COLOR:
		p.advance()
		return &ast.TextColor{Lex: lex, Color: lex.Text}, nil
	case token.CONTROL_CHAR:
		p.advance()
		if lex.Text == "@" {
			return &ast.ClickWait{Lex: lex}, nil
		}
		return &ast.PageWait{Lex: lex}, nil
	case token.OPERATOR:
		if lex.Text == "/" && p.onlyTrivia(p.current) {
			p.advance()
			return &ast.LineContinue{Lex: lex}, nil
		}
	case token.UNHANDLED_CONTROL:
		// Already reported by the scanner.
		p.advance()
		return nil, nil
	}
	return nil, p.errorAt(lex, errors.ErrorUnexpectedLexeme,
		fmt.Sprintf("unexpected %s at start of statement", describe(lex)))
}

func (p *Parser) parseStatement() (ast.Node, error) {
	lex := p.peek()
	switch strings.ToLower(lex.Text) {
	case "if":
		return p.parseIf(false)
	case "notif":
		return p.parseIf(true)
	case "for":
		return p.parseFor()
	case "return":
		return p.parseReturn()
	}
	if builtins.TakesOperand(lex.Text) {
		return nil, p.errorAt(lex, errors.ErrorUnexpectedLexeme,
			fmt.Sprintf("'%s' outside of a for loop header", lex.Text))
	}
	return p.parseFunction()
}

func (p *Parser) parseIf(inverted bool) (ast.Node, error) {
	lex := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.IfStatement{Lex: lex, Condition: cond, Inverted: inverted}, nil
}

// parseFor parses `for <var> = <start> to <end> [step <step>]`.
func (p *Parser) parseFor() (ast.Node, error) {
	lex := p.advance()

	if !p.check(token.NUM_REF) && !p.check(token.ARRAY_REF) {
		return nil, p.errorAtCurrent(errors.ErrorMalformedFor, "expected a numeric or array variable after 'for'")
	}
	variable, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if !p.checkOperator("=") {
		return nil, p.errorAtCurrent(errors.ErrorMalformedFor, "expected '=' after the for loop variable")
	}
	p.advance()
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.checkWord("to") {
		return nil, p.errorAtCurrent(errors.ErrorMalformedFor, "expected 'to' in for loop header")
	}
	p.advance()
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	loop := &ast.ForStatement{Lex: lex, Variable: variable, Start: start, End: end}
	if p.checkWord("step") {
		p.advance()
		if loop.Step, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return loop, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	lex := p.advance()
	ret := &ast.Return{Lex: lex}
	if p.check(token.LABEL) {
		dest := p.advance()
		ret.Destination = &ast.Label{Lex: dest, Name: strings.TrimPrefix(dest.Text, "*")}
	}
	return ret, nil
}

// parseFunction parses a command and, when it takes arguments, its comma
// separated argument list. A command that takes none leaves the rest of the
// line to the next statement.
func (p *Parser) parseFunction() (ast.Node, error) {
	lex := p.advance()
	info, ok := p.db.Lookup(lex.Text)
	if !ok {
		err := p.errorAt(lex, errors.ErrorUnknownCommand, fmt.Sprintf("unknown command '%s'", lex.Text))
		err.Suggestions = errors.SimilarNames(lex.Text, p.db.Names())
		return nil, err
	}
	p.lastFunction = lex.Text

	fn := &ast.Function{Lex: lex, Name: lex.Text}
	if !info.Arity.TakesArguments() {
		return fn, nil
	}

	p.match(token.COMMA)
	if info.Arity.Kind == semantic.ArityUnknown && p.atStatementEnd() {
		return fn, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, arg)
		if !p.match(token.COMMA) {
			break
		}
	}
	return fn, nil
}
