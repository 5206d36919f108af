package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
	"ponscripter/token"
)

func testDatabase() *semantic.Database {
	db := semantic.NewDatabaseWithBuiltins()
	db.Declare("mysub", semantic.FixedArity(2))
	db.Declare("noargs", semantic.NoArguments())
	return db
}

func lex(t *testing.T, line string) []token.Lexeme {
	t.Helper()
	lexemes, err := NewScanner(testDatabase(), Options{AllowText: true}).LexLine(line)
	require.NoError(t, err)
	return lexemes
}

// significant drops whitespace so expectations stay readable.
func significant(lexemes []token.Lexeme) []token.Lexeme {
	var out []token.Lexeme
	for _, l := range lexemes {
		if !l.Inert() {
			out = append(out, l)
		}
	}
	return out
}

func kinds(lexemes []token.Lexeme) []token.Kind {
	out := make([]token.Kind, len(lexemes))
	for i, l := range lexemes {
		out[i] = l.Kind
	}
	return out
}

func texts(lexemes []token.Lexeme) []string {
	out := make([]string, len(lexemes))
	for i, l := range lexemes {
		out[i] = l.Text
	}
	return out
}

func TestLexIsLossless(t *testing.T) {
	lines := []string{
		"mov %a, 1/2",
		"voicedelay 1240/",
		"*mylabel:",
		"mysub 1,2 ; call it",
		"  if %a != 1 goto *x",
		"for %i = 1 to 5 step 2",
		"「こんにちは」@",
		"^Hello world^@ how are you\\",
		"^a/b^/  ;trailing",
		"mov ?grid[%i][2], $name + \"x\"",
		"~i~",
		"#ff8800^Coloured^",
		"jumpf : ~ : textclear",
		"\tselect \"Yes\", *yes, \"No\", *no",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			lexemes := lex(t, line)
			assert.Equal(t, line, token.Join(lexemes))
			for i := 1; i < len(lexemes); i++ {
				assert.Equal(t, lexemes[i-1].End(), lexemes[i].Offset)
			}
		})
	}
}

func TestLexCommandArguments(t *testing.T) {
	got := significant(lex(t, "mov %a, 1/2"))
	assert.Equal(t, []token.Kind{
		token.WORD, token.NUM_REF, token.WORD, token.COMMA,
		token.NUMBER, token.OPERATOR, token.NUMBER,
	}, kinds(got))
	assert.Equal(t, []string{"mov", "%", "a", ",", "1", "/", "2"}, texts(got))
}

func TestLexOperatorsLongestFirst(t *testing.T) {
	got := significant(lex(t, "if %a >= 1 && %b <> 2 goto *done"))
	assert.Equal(t, []string{"if", "%", "a", ">=", "1", "&&", "%", "b", "<>", "2", "goto", "*done"}, texts(got))
	assert.Equal(t, token.LABEL, got[len(got)-1].Kind)
}

func TestLexNotEqualIsNotText(t *testing.T) {
	got := significant(lex(t, "if %a != 1 goto *x"))
	assert.Equal(t, token.OPERATOR, got[3].Kind)
	assert.Equal(t, "!=", got[3].Text)
}

func TestLexLabelOnlyWhereExpected(t *testing.T) {
	got := significant(lex(t, "*start"))
	require.Len(t, got, 1)
	assert.Equal(t, token.LABEL, got[0].Kind)

	got = significant(lex(t, "mov %a, 2*3"))
	assert.Equal(t, []string{"mov", "%", "a", ",", "2", "*", "3"}, texts(got))
	assert.Equal(t, token.OPERATOR, got[5].Kind)
}

func TestLexDialogue(t *testing.T) {
	got := lex(t, "「こんにちは」@")
	assert.Equal(t, []token.Kind{token.DIALOGUE, token.CONTROL_CHAR}, kinds(got))
	assert.Equal(t, "「こんにちは」", got[0].Text)
}

func TestLexDialogueResumesAfterClickWait(t *testing.T) {
	got := lex(t, "^Hello world^@ how are you\\")
	assert.Equal(t, []token.Kind{token.DIALOGUE, token.CONTROL_CHAR, token.DIALOGUE, token.CONTROL_CHAR}, kinds(got))
	assert.Equal(t, []string{"^Hello world^", "@", " how are you", "\\"}, texts(got))
}

func TestLexDialogueKeepsInteriorSlashes(t *testing.T) {
	got := significant(lex(t, "^either/or \\ both^/ ;comment"))
	assert.Equal(t, []token.Kind{token.DIALOGUE, token.OPERATOR, token.COMMENT}, kinds(got))
	assert.Equal(t, "^either/or \\ both^", got[0].Text)
}

func TestLexDialogueIdempotent(t *testing.T) {
	for _, line := range []string{"「こんにちは」@", "^Hello world^@ how are you\\", "!sd the end/"} {
		for _, l := range lex(t, line) {
			if l.Kind != token.DIALOGUE {
				continue
			}
			again, err := NewScanner(testDatabase(), Options{AllowText: true, ForceText: true}).LexLine(l.Text)
			require.NoError(t, err)
			require.Len(t, again, 1, "fragment %q", l.Text)
			assert.Equal(t, token.DIALOGUE, again[0].Kind)
			assert.Equal(t, l.Text, again[0].Text)
		}
	}
}

func TestLexWithoutTextMode(t *testing.T) {
	_, err := NewScanner(testDatabase(), Options{}).LexLine("「こんにちは」")
	require.Error(t, err)

	var lexErr *errors.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, errors.ErrorUnexpectedCharacter, lexErr.Code)
	assert.Equal(t, 0, lexErr.Offset)
}

func TestLexUnknownCommand(t *testing.T) {
	_, err := NewScanner(testDatabase(), Options{AllowText: true}).LexLine("textclearr")
	var lexErr *errors.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, errors.ErrorUnknownKeyword, lexErr.Code)
	assert.Equal(t, len("textclearr"), lexErr.Length)
	assert.Contains(t, lexErr.Suggestions, "textclear")
}

func TestLexWordsInsideExpressionsAreAliases(t *testing.T) {
	got := significant(lex(t, "mov %nosuchname, unknownalias"))
	assert.Equal(t, []string{"mov", "%", "nosuchname", ",", "unknownalias"}, texts(got))
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := NewScanner(testDatabase(), Options{AllowText: true}).LexLine(`mov $a, "open`)
	var lexErr *errors.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, errors.ErrorUnterminatedString, lexErr.Code)
	assert.Equal(t, 8, lexErr.Offset)
}

func TestLexFixedForms(t *testing.T) {
	got := significant(lex(t, "jumpf : ~ : textclear"))
	assert.Equal(t, []token.Kind{token.WORD, token.COLON, token.JUMPF_TARGET, token.COLON, token.WORD}, kinds(got))

	got = lex(t, "#ff8800^Coloured^")
	assert.Equal(t, []token.Kind{token.HEX_COLOR, token.DIALOGUE}, kinds(got))

	got = lex(t, "~i~")
	assert.Equal(t, []token.Kind{token.FORMAT_TAG}, kinds(got))

	got = significant(lex(t, `mov $a, ^hat string^`))
	assert.Equal(t, token.HAT_STRING, got[len(got)-1].Kind)
}

func TestLexControlCharacterWarns(t *testing.T) {
	s := NewScanner(testDatabase(), Options{AllowText: true})
	lexemes, err := s.LexLine("textclear\x01")
	require.NoError(t, err)
	assert.Equal(t, token.UNHANDLED_CONTROL, lexemes[len(lexemes)-1].Kind)
	require.Len(t, s.Warnings(), 1)
	assert.Equal(t, errors.WarningControlCharacter, s.Warnings()[0].Code)
}

func TestLexQuoteTextWarns(t *testing.T) {
	s := NewScanner(testDatabase(), Options{AllowText: true})
	lexemes, err := s.LexLine("'quoted words'")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.DIALOGUE}, kinds(lexemes))
	require.Len(t, s.Warnings(), 1)
	assert.Equal(t, errors.WarningSuspiciousText, s.Warnings()[0].Code)
}

func TestLexKeywordsIgnoreCase(t *testing.T) {
	got := significant(lex(t, "FOR %i = 1 To limit STEP 2"))
	assert.Equal(t, []string{"FOR", "%", "i", "=", "1", "To", "limit", "STEP", "2"}, texts(got))
	assert.Equal(t, token.WORD, got[6].Kind)
}
