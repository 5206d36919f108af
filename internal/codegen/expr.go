package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
)

// Target spelling of source operators. Operators not listed keep their
// spelling.
var operatorMap = map[string]string{
	"<>": "!=",
	"=":  "==",
	"&":  "and",
	"&&": "and",
}

// Binding strength of the target operators, for parenthesising.
const (
	precLogical = iota + 1
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precPrimary
)

func precedence(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.BinaryOperator:
		switch n.Op {
		case "/":
			return precPrimary
		case "mod":
			return precAdditive
		case "&", "&&":
			return precLogical
		case "==", "!=", "<>", ">=", "<=", ">", "<", "=":
			return precComparison
		case "+", "-":
			return precAdditive
		default:
			return precMultiplicative
		}
	case *ast.Unary:
		return precUnary
	}
	return precPrimary
}

// expr translates an expression to the target language.
func (g *Generator) expr(e ast.Expr) (string, error) {
	switch n := e.(type) {
	case *ast.NumericLiteral:
		v, err := strconv.Atoi(n.Raw)
		if err != nil {
			return "", g.errorf(n, errors.ErrorInvalidArgument, fmt.Sprintf("invalid number '%s'", n.Raw))
		}
		return strconv.Itoa(v), nil
	case *ast.StringLiteral:
		return strconv.Quote(unquote(n.Raw)), nil
	case *ast.HexColor:
		return strconv.Quote(strings.ToLower(n.Lex.Text)), nil
	case *ast.Label:
		return strconv.Quote(g.labelName(n.Name)), nil
	case *ast.Alias:
		key := strings.ToLower(n.Name)
		if !g.aliases[key] && !g.warnedAliases[key] {
			g.warnedAliases[key] = true
			g.warn(errors.WarningUndefinedAlias, fmt.Sprintf("alias '%s' used before numalias/stralias defined it", n.Name))
		}
		return g.aliasName(n.Name), nil
	case *ast.NumericReference:
		return g.store(g.cfg.NumericStore, n.Inner)
	case *ast.StringReference:
		return g.store(g.cfg.StringStore, n.Inner)
	case *ast.ArrayReference:
		s, err := g.store(g.cfg.ArrayStore, n.Name)
		if err != nil {
			return "", err
		}
		for _, index := range n.Indexes {
			i, err := g.expr(index)
			if err != nil {
				return "", err
			}
			s += "[" + i + "]"
		}
		return s, nil
	case *ast.Unary:
		inner, err := g.operand(n.Inner, precUnary, false)
		if err != nil {
			return "", err
		}
		return n.Op + inner, nil
	case *ast.BinaryOperator:
		return g.binary(n)
	}
	return "", g.errorf(e, errors.ErrorUnsupported, fmt.Sprintf("cannot translate %s", e.NodeType()))
}

func (g *Generator) store(name string, inner ast.Expr) (string, error) {
	index, err := g.expr(inner)
	if err != nil {
		return "", err
	}
	return name + "[" + index + "]", nil
}

func (g *Generator) binary(n *ast.BinaryOperator) (string, error) {
	prec := precedence(n)
	if n.Op == "/" || n.Op == "mod" {
		prec = precMultiplicative
	}
	left, err := g.operand(n.Left, prec, false)
	if err != nil {
		return "", err
	}
	right, err := g.operand(n.Right, prec, true)
	if err != nil {
		return "", err
	}

	// Integer division and remainder truncate toward zero, where the
	// target's // and % floor.
	switch n.Op {
	case "/":
		return fmt.Sprintf("int(%s / %s)", left, right), nil
	case "mod":
		return fmt.Sprintf("%s - %s * int(%s / %s)", left, right, left, right), nil
	}
	op, ok := operatorMap[n.Op]
	if !ok {
		op = n.Op
	}
	return fmt.Sprintf("%s %s %s", left, op, right), nil
}

// operand translates a child of an operator, adding parentheses where the
// target would otherwise group it differently. Comparisons are always
// parenthesised inside comparisons, since the target chains them.
func (g *Generator) operand(e ast.Expr, parent int, right bool) (string, error) {
	s, err := g.expr(e)
	if err != nil {
		return "", err
	}
	prec := precedence(e)
	if prec < parent || (prec == parent && (right || prec == precComparison)) {
		return "(" + s + ")", nil
	}
	return s, nil
}

// lvalue translates an assignment target.
func (g *Generator) lvalue(e ast.Expr) (string, error) {
	switch e.(type) {
	case *ast.NumericReference, *ast.StringReference, *ast.ArrayReference:
		return g.expr(e)
	}
	return "", g.errorf(e, errors.ErrorInvalidArgument, fmt.Sprintf("cannot assign to '%s'", e))
}

// integerLiteral reports the value of a literal, possibly negated, integer.
func integerLiteral(e ast.Expr) (int, bool) {
	switch n := e.(type) {
	case *ast.NumericLiteral:
		v, err := strconv.Atoi(n.Raw)
		return v, err == nil
	case *ast.Unary:
		if n.Op == "-" {
			v, ok := integerLiteral(n.Inner)
			return -v, ok
		}
	}
	return 0, false
}

// unquote strips the delimiters of a "..." or ^...^ literal.
func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}
