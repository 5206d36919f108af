package parser

import (
	"fmt"

	"ponscripter/internal/errors"
	"ponscripter/token"
)

func (p *Parser) advance() token.Lexeme {
	lex := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return lex
}

// skipInert steps over whitespace; every other helper that looks ahead calls
// it first.
func (p *Parser) skipInert() {
	for !p.isAtEnd() && p.lexemes[p.current].Inert() {
		p.current++
	}
}

func (p *Parser) peek() token.Lexeme {
	if p.isAtEnd() {
		return token.Lexeme{Kind: token.ILLEGAL, Offset: p.endOffset()}
	}
	return p.lexemes[p.current]
}

func (p *Parser) check(kind token.Kind) bool {
	p.skipInert()
	return !p.isAtEnd() && p.peek().Kind == kind
}

func (p *Parser) checkOperator(ops ...string) bool {
	p.skipInert()
	return !p.isAtEnd() && p.peek().IsOperator(ops...)
}

func (p *Parser) checkWord(word string) bool {
	p.skipInert()
	return !p.isAtEnd() && p.peek().IsWord(word)
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind token.Kind, code, message string) (token.Lexeme, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Lexeme{}, p.errorAtCurrent(code, message)
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.lexemes)
}

// atStatementEnd reports whether nothing but a comment or a colon separated
// statement is left.
func (p *Parser) atStatementEnd() bool {
	p.skipInert()
	if p.isAtEnd() {
		return true
	}
	kind := p.peek().Kind
	return kind == token.COLON || kind == token.COMMENT
}

// onlyTrivia reports whether every lexeme after index i is whitespace or a
// comment.
func (p *Parser) onlyTrivia(i int) bool {
	for _, lex := range p.lexemes[i+1:] {
		if lex.Kind != token.WHITESPACE && lex.Kind != token.COMMENT {
			return false
		}
	}
	return true
}

func (p *Parser) endOffset() int {
	if len(p.lexemes) == 0 {
		return 0
	}
	return p.lexemes[len(p.lexemes)-1].End()
}

func (p *Parser) errorAtCurrent(code, message string) *errors.ParseError {
	p.skipInert()
	return p.errorAt(p.peek(), code, message)
}

func (p *Parser) errorAt(lex token.Lexeme, code, message string) *errors.ParseError {
	if lex.Kind == token.ILLEGAL {
		code = errors.ErrorUnexpectedEnd
		message = fmt.Sprintf("%s, found end of line", message)
	}
	return &errors.ParseError{
		Code:         code,
		Message:      message,
		Lexeme:       lex,
		LastFunction: p.lastFunction,
		Consumed:     p.lexemes[:p.current],
		Pending:      p.lexemes[p.current:],
	}
}

func describe(lex token.Lexeme) string {
	if lex.Kind == token.ILLEGAL {
		return "end of line"
	}
	return fmt.Sprintf("%s '%s'", lex.Kind, lex.Text)
}
