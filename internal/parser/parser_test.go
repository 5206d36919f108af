package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
)

func parseWith(t *testing.T, db *semantic.Database, line string) ([]ast.Node, error) {
	t.Helper()
	lexemes, err := NewScanner(db, Options{AllowText: true}).LexLine(line)
	require.NoError(t, err)
	return NewParser(db).ParseLine(lexemes)
}

func parse(t *testing.T, line string) []ast.Node {
	t.Helper()
	nodes, err := parseWith(t, testDatabase(), line)
	require.NoError(t, err)
	return nodes
}

func parseErr(t *testing.T, line string) *errors.ParseError {
	t.Helper()
	_, err := parseWith(t, testDatabase(), line)
	require.Error(t, err)
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	return parseErr
}

func function(t *testing.T, node ast.Node) *ast.Function {
	t.Helper()
	fn, ok := node.(*ast.Function)
	require.True(t, ok, "expected *ast.Function, got %T", node)
	return fn
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"mov %a, 1 + 2 * 3", "(1 + (2 * 3))"},
		{"mov %a, 1 * 2 + 3", "((1 * 2) + 3)"},
		{"mov %a, 1 - 2 - 3", "((1 - 2) - 3)"},
		{"mov %a, (1 + 2) * 3", "((1 + 2) * 3)"},
		{"mov %a, -%b * 2", "(-%b * 2)"},
		{"mov %a, %b mod 3 + 1", "((%b mod 3) + 1)"},
		{"mov %a, 1 + 2 == 3 && %c > 4", "(((1 + 2) == 3) && (%c > 4))"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			nodes := parse(t, tt.line)
			require.Len(t, nodes, 1)
			fn := function(t, nodes[0])
			require.Len(t, fn.Args, 2)
			assert.Equal(t, tt.want, fn.Args[1].String())
		})
	}
}

func TestParseTrailingSlashEndsLine(t *testing.T) {
	nodes := parse(t, "voicedelay 1240/")
	require.Len(t, nodes, 2)

	fn := function(t, nodes[0])
	assert.Equal(t, "voicedelay", fn.Name)
	require.Len(t, fn.Args, 1)
	assert.IsType(t, &ast.NumericLiteral{}, fn.Args[0])
	assert.IsType(t, &ast.LineContinue{}, nodes[1])

	nodes = parse(t, "voicedelay 1240/ ; comment")
	require.Len(t, nodes, 3)
	assert.IsType(t, &ast.LineContinue{}, nodes[1])
	assert.IsType(t, &ast.Comment{}, nodes[2])
}

func TestParseSlashFollowedByOperandDivides(t *testing.T) {
	nodes := parse(t, "mov %a, 1/2")
	require.Len(t, nodes, 1)
	fn := function(t, nodes[0])
	require.Len(t, fn.Args, 2)
	div, ok := fn.Args[1].(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, "/", div.Op)
	assert.Equal(t, "(1 / 2)", div.String())
}

func TestParseLabelColonFunction(t *testing.T) {
	nodes := parse(t, "*mylabel:")
	require.Len(t, nodes, 2)
	label, ok := nodes[0].(*ast.Label)
	require.True(t, ok)
	assert.Equal(t, "mylabel", label.Name)
	assert.IsType(t, &ast.Colon{}, nodes[1])

	nodes = parse(t, "mysub 1,2")
	require.Len(t, nodes, 1)
	fn := function(t, nodes[0])
	assert.Equal(t, "mysub", fn.Name)
	require.Len(t, fn.Args, 2)
	for _, arg := range fn.Args {
		assert.IsType(t, &ast.NumericLiteral{}, arg)
	}
}

func TestParseZeroArityLeavesRestAsSiblings(t *testing.T) {
	nodes := parse(t, "noargs : textclear ; done")
	require.Len(t, nodes, 4)
	assert.Equal(t, "noargs", function(t, nodes[0]).Name)
	assert.Empty(t, function(t, nodes[0]).Args)
	assert.IsType(t, &ast.Colon{}, nodes[1])
	assert.Equal(t, "textclear", function(t, nodes[2]).Name)
	assert.IsType(t, &ast.Comment{}, nodes[3])
}

func TestParseLeadingCommaIsSkipped(t *testing.T) {
	nodes := parse(t, "mysub ,1,2")
	require.Len(t, function(t, nodes[0]).Args, 2)
}

func TestParseVariadicWithoutArguments(t *testing.T) {
	nodes := parse(t, "print : textclear")
	require.Len(t, nodes, 3)
	assert.Empty(t, function(t, nodes[0]).Args)
}

func TestParseIf(t *testing.T) {
	nodes := parse(t, "notif %a == 1 goto *elsewhere")
	require.Len(t, nodes, 2)
	cond, ok := nodes[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.True(t, cond.Inverted)
	assert.Equal(t, "(%a == 1)", cond.Condition.String())

	jump := function(t, nodes[1])
	require.Len(t, jump.Args, 1)
	assert.Equal(t, "*elsewhere", jump.Args[0].String())
}

func TestParseFor(t *testing.T) {
	nodes := parse(t, "for %i = 1 to 5 step 2")
	require.Len(t, nodes, 1)
	loop, ok := nodes[0].(*ast.ForStatement)
	require.True(t, ok)
	assert.Equal(t, "%i", loop.Variable.String())
	assert.Equal(t, "1", loop.Start.String())
	assert.Equal(t, "5", loop.End.String())
	require.NotNil(t, loop.Step)
	assert.Equal(t, "2", loop.Step.String())

	nodes = parse(t, "for ?grid[1] = %a to %b + 1")
	loop = nodes[0].(*ast.ForStatement)
	assert.Equal(t, "?grid[1]", loop.Variable.String())
	assert.Equal(t, "(%b + 1)", loop.End.String())
	assert.Nil(t, loop.Step)
}

func TestParseForErrors(t *testing.T) {
	tests := []struct {
		line    string
		code    string
		message string
	}{
		{"for 1 = 1 to 5", errors.ErrorMalformedFor, "variable"},
		{"for %i to 5", errors.ErrorMalformedFor, "'='"},
		{"for %i = 1 step 2", errors.ErrorMalformedFor, "'to'"},
		{"for %i = 1", errors.ErrorUnexpectedEnd, "'to'"},
		{"step 2", errors.ErrorUnexpectedLexeme, "outside of a for loop header"},
		{"To 5", errors.ErrorUnexpectedLexeme, "outside of a for loop header"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := parseErr(t, tt.line)
			assert.Equal(t, tt.code, err.Code)
			assert.Contains(t, err.Message, tt.message)
		})
	}
}

func TestParseReferences(t *testing.T) {
	nodes := parse(t, "mov ?grid[%i][2], %%a")
	fn := function(t, nodes[0])
	arr, ok := fn.Args[0].(*ast.ArrayReference)
	require.True(t, ok)
	assert.Len(t, arr.Indexes, 2)
	assert.Equal(t, "?grid[%i][2]", arr.String())

	ref, ok := fn.Args[1].(*ast.NumericReference)
	require.True(t, ok)
	assert.IsType(t, &ast.NumericReference{}, ref.Inner)

	nodes = parse(t, "$name")
	require.Len(t, nodes, 1)
	assert.IsType(t, &ast.StringReference{}, nodes[0])
}

func TestParseReturn(t *testing.T) {
	nodes := parse(t, "return")
	ret := nodes[0].(*ast.Return)
	assert.Nil(t, ret.Destination)

	nodes = parse(t, "return *back")
	ret = nodes[0].(*ast.Return)
	require.NotNil(t, ret.Destination)
	assert.Equal(t, "back", ret.Destination.Name)
}

func TestParseTextNodes(t *testing.T) {
	nodes := parse(t, "#ff0000^Hello^@ world\\")
	require.Len(t, nodes, 5)
	assert.IsType(t, &ast.TextColor{}, nodes[0])
	assert.IsType(t, &ast.Dialogue{}, nodes[1])
	assert.IsType(t, &ast.ClickWait{}, nodes[2])
	assert.IsType(t, &ast.Dialogue{}, nodes[3])
	assert.IsType(t, &ast.PageWait{}, nodes[4])

	nodes = parse(t, "~ : ~i~")
	assert.IsType(t, &ast.JumpfTarget{}, nodes[0])
	tag := nodes[2].(*ast.FormattingTag)
	assert.Equal(t, "i", tag.Tag)
}

func TestParseErrorReportsLastFunction(t *testing.T) {
	err := parseErr(t, "mysub 1, 2 )")
	assert.Equal(t, errors.ErrorUnexpectedLexeme, err.Code)
	assert.Equal(t, "mysub", err.LastFunction)
	assert.Equal(t, ")", err.Lexeme.Text)
	assert.NotEmpty(t, err.Consumed)
	assert.NotEmpty(t, err.Pending)
}

func TestParseMissingBracket(t *testing.T) {
	err := parseErr(t, "mov %a, (1 + 2")
	assert.Equal(t, errors.ErrorUnexpectedEnd, err.Code)
	assert.Contains(t, err.Message, "')'")

	err = parseErr(t, "mov %a, ?grid")
	assert.Contains(t, err.Message, "'['")
}

func TestParseMissingArgument(t *testing.T) {
	err := parseErr(t, "mysub")
	assert.Equal(t, errors.ErrorUnexpectedEnd, err.Code)
	assert.Equal(t, "mysub", err.LastFunction)
}
