package parser

import (
	"fmt"
	"strings"

	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
	"ponscripter/token"
)

var (
	logicalOps        = []string{"&&", "&"}
	comparisonOps     = []string{"==", "!=", "<>", ">=", "<=", ">", "<", "="}
	additiveOps       = []string{"+", "-"}
	multiplicativeOps = []string{"*", "/"}
)

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseLogical()
}

// binaryTier parses one left-associative precedence level: a run of next
// joined by any of ops.
func (p *Parser) binaryTier(next func() (ast.Expr, error), ops []string) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.checkOperator(ops...) {
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperator{Lex: op, Left: left, Op: op.Text, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogical() (ast.Expr, error) {
	return p.binaryTier(p.parseComparison, logicalOps)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.binaryTier(p.parseAdditive, comparisonOps)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binaryTier(p.parseMultiplicative, additiveOps)
}

// parseMultiplicative also accepts the word `mod`. A '/' with nothing but
// whitespace and comments after it ends the line instead of dividing, so it
// is left for the statement level.
func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.checkOperator(multiplicativeOps...) {
			if p.peek().Text == "/" && p.onlyTrivia(p.current) {
				return left, nil
			}
		} else if !p.checkWord("mod") {
			return left, nil
		}
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperator{Lex: op, Left: left, Op: strings.ToLower(op.Text), Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.checkOperator("-") {
		op := p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Lex: op, Op: op.Text, Inner: inner}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses one piece of expression data. Reference sigils wrap
// exactly one further piece, so `%%a` is a reference to a reference.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	p.skipInert()
	if p.isAtEnd() {
		return nil, p.errorAtCurrent(errors.ErrorUnexpectedEnd, "expected an expression")
	}

	lex := p.advance()
	switch lex.Kind {
	case token.HEX_COLOR:
		return &ast.HexColor{Lex: lex}, nil
	case token.LEFT_PAREN:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHT_PAREN, errors.ErrorMissingBracket, "expected ')' to close '('"); err != nil {
			return nil, err
		}
		return inner, nil
	case token.WORD:
		return &ast.Alias{Lex: lex, Name: lex.Text}, nil
	case token.STRING:
		return &ast.StringLiteral{Lex: lex, Raw: lex.Text}, nil
	case token.HAT_STRING:
		return &ast.StringLiteral{Lex: lex, Raw: lex.Text, Hat: true}, nil
	case token.NUMBER:
		return &ast.NumericLiteral{Lex: lex, Raw: lex.Text}, nil
	case token.LABEL:
		return &ast.Label{Lex: lex, Name: strings.TrimPrefix(lex.Text, "*")}, nil
	case token.NUM_REF:
		inner, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.NumericReference{Lex: lex, Inner: inner}, nil
	case token.STR_REF:
		inner, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.StringReference{Lex: lex, Inner: inner}, nil
	case token.ARRAY_REF:
		return p.parseArrayReference(lex)
	}

	p.current--
	return nil, p.errorAt(lex, errors.ErrorUnexpectedLexeme, fmt.Sprintf("expected an expression, found %s", describe(lex)))
}

// parseArrayReference parses `?name[i][j]...` after the '?' sigil.
func (p *Parser) parseArrayReference(sigil token.Lexeme) (ast.Expr, error) {
	name, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	ref := &ast.ArrayReference{Lex: sigil, Name: name}
	for p.match(token.LEFT_BRACKET) {
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHT_BRACKET, errors.ErrorMissingBracket, "expected ']' to close array index"); err != nil {
			return nil, err
		}
		ref.Indexes = append(ref.Indexes, index)
	}
	if len(ref.Indexes) == 0 {
		return nil, p.errorAtCurrent(errors.ErrorExpectedLexeme, "expected '[' after array name")
	}
	return ref, nil
}
