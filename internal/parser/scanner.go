package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"
	"ponscripter/internal/builtins"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
	"ponscripter/token"
)

// Options select how free text is treated on a line.
type Options struct {
	// AllowText lets a run of prose start wherever code is not required.
	AllowText bool
	// ForceText lexes every position that does not require code as prose,
	// whatever its first character.
	ForceText bool
}

type rule struct {
	kind    token.Kind
	pattern *coregex.Regexp
}

var (
	whitespacePattern = mustCompile(`^[ \t]+`)
	labelPattern      = mustCompile(`^\*[A-Za-z0-9_]+`)
	wordPattern       = mustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)

	// A '/' or '\' only ends prose when nothing but blanks and a comment
	// follow it.
	textEndPattern = mustCompile(`[/\\][ \t]*(;.*)?$`)
	blankPattern   = mustCompile(`^[ \t]*(;.*)?$`)

	fixedRules = []rule{
		{token.COMMENT, mustCompile(`^;.*`)},
		{token.COLON, mustCompile(`^:`)},
		{token.FORMAT_TAG, mustCompile(`^~[A-Za-z]+~`)},
		{token.JUMPF_TARGET, mustCompile(`^~`)},
		{token.HEX_COLOR, mustCompile(`^#[0-9A-Fa-f]{6}`)},
		{token.RIGHT_PAREN, mustCompile(`^\)`)},
		{token.RIGHT_BRACKET, mustCompile(`^\]`)},
		{token.CONTROL_CHAR, mustCompile(`^[\\@]`)},
		{token.NUMBER, mustCompile(`^[0-9]+`)},
		{token.STRING, mustCompile(`^"[^"]*"`)},
		{token.HAT_STRING, mustCompile(`^\^[^^]*\^`)},
	}
)

var sigils = []struct {
	text string
	kind token.Kind
}{
	{"(", token.LEFT_PAREN},
	{"[", token.LEFT_BRACKET},
	{"%", token.NUM_REF},
	{"$", token.STR_REF},
	{"?", token.ARRAY_REF},
}

// Longest first, so that ">=" never lexes as ">" followed by "=".
var operators = []string{">=", "<=", "==", "!=", "<>", "&&", "+", "-", "*", "/", ">", "<", "=", "&"}

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(fmt.Errorf("failed to compile %q: %w", pattern, err))
	}
	return re
}

// Scanner turns one script line at a time into lexemes. It needs the
// Subroutine Database because whether the text after a command is code or
// prose depends on the command's arity.
type Scanner struct {
	db   *semantic.Database
	opts Options

	line       string
	current    int
	lexemes    []token.Lexeme
	mustBeExpr bool
	isFirst    bool
	afterText  bool // the previous significant lexeme was prose
	resumeText bool // a click-wait just followed prose
	warnings   []errors.Warning
}

func NewScanner(db *semantic.Database, opts Options) *Scanner {
	return &Scanner{db: db, opts: opts}
}

// Warnings returns the warnings raised by the most recent LexLine call.
// Their Line is zero; the caller knows which line it passed in.
func (s *Scanner) Warnings() []errors.Warning {
	return s.warnings
}

// LexLine splits line into lexemes. Concatenating the Text of the result
// reproduces line exactly.
func (s *Scanner) LexLine(line string) ([]token.Lexeme, error) {
	s.line = line
	s.current = 0
	s.lexemes = nil
	s.mustBeExpr = false
	s.isFirst = true
	s.afterText = false
	s.resumeText = false
	s.warnings = nil

	for !s.isAtEnd() {
		if err := s.scanLexeme(); err != nil {
			return nil, err
		}
	}
	return s.lexemes, nil
}

func (s *Scanner) scanLexeme() error {
	rest := s.rest()

	if s.opts.ForceText && !s.mustBeExpr && s.scanText() {
		return nil
	}

	if s.resumeText {
		s.resumeText = false
		if s.opts.AllowText && !blankPattern.MatchString(rest) && s.scanText() {
			return nil
		}
	}

	if n := s.matchAt(whitespacePattern); n > 0 {
		s.addLexeme(token.WHITESPACE, n, s.mustBeExpr)
		return nil
	}

	if !s.mustBeExpr && s.opts.AllowText && startsText(rest) && s.scanText() {
		return nil
	}

	if s.mustBeExpr || s.isFirst {
		if n := s.matchAt(labelPattern); n > 0 {
			s.addLexeme(token.LABEL, n, false)
			return nil
		}
	}

	for _, sigil := range sigils {
		if strings.HasPrefix(rest, sigil.text) {
			s.addLexeme(sigil.kind, len(sigil.text), true)
			return nil
		}
	}

	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			s.addLexeme(token.OPERATOR, len(op), true)
			return nil
		}
	}

	if rest[0] == ',' {
		s.addLexeme(token.COMMA, 1, true)
		return nil
	}

	for _, r := range fixedRules {
		if n := s.matchAt(r.pattern); n > 0 {
			s.addLexeme(r.kind, n, false)
			if r.kind == token.CONTROL_CHAR && rest[0] == '@' && s.afterText {
				s.resumeText = true
			}
			return nil
		}
	}

	if rest[0] == '"' || rest[0] == '^' {
		return s.errorf(errors.ErrorUnterminatedString, len(rest),
			fmt.Sprintf("unterminated string literal: missing closing %c", rest[0]))
	}

	if n := s.matchAt(wordPattern); n > 0 {
		return s.scanWord(n)
	}

	if rest[0] == '\'' && s.opts.AllowText {
		s.warn(errors.WarningSuspiciousText,
			fmt.Sprintf("text starting with a quote at column %d; check that this is meant to be dialogue", s.current+1))
		if s.scanText() {
			return nil
		}
	}

	if rest[0] <= 8 {
		s.warn(errors.WarningControlCharacter,
			fmt.Sprintf("control character 0x%02x at column %d ignored", rest[0], s.current+1))
		s.addLexeme(token.UNHANDLED_CONTROL, 1, s.mustBeExpr)
		return nil
	}

	r, size := utf8.DecodeRuneInString(rest)
	return s.errorf(errors.ErrorUnexpectedCharacter, size, fmt.Sprintf("unexpected character %q", r))
}

// scanWord classifies a bare word. Inside an expression every word is an
// alias; elsewhere it must be a keyword or a known command.
func (s *Scanner) scanWord(n int) error {
	word := s.rest()[:n]
	if s.mustBeExpr {
		s.addLexeme(token.WORD, n, false)
		return nil
	}

	if builtins.IsKeyword(word) {
		s.addLexeme(token.WORD, n, builtins.TakesOperand(word))
		return nil
	}

	info, ok := s.db.Lookup(word)
	if !ok {
		return &errors.LexError{
			Code:        errors.ErrorUnknownKeyword,
			Message:     fmt.Sprintf("unrecognized command '%s'", word),
			Text:        s.line,
			Offset:      s.current,
			Length:      n,
			Suggestions: errors.SimilarNames(word, s.db.Names()),
		}
	}
	s.addLexeme(token.WORD, n, info.Arity.TakesArguments())
	return nil
}

// scanText consumes a prose run up to a click-wait or a line-ending marker.
// It reports false when the run would be empty.
func (s *Scanner) scanText() bool {
	rest := s.rest()
	end := len(rest)
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		end = i
	}
	if loc := textEndPattern.FindStringIndex(rest); loc != nil && loc[0] < end {
		end = loc[0]
	}
	if end == 0 {
		return false
	}
	s.addLexeme(token.DIALOGUE, end, false)
	s.afterText = true
	return true
}

// startsText reports whether a prose run may begin at the start of rest.
func startsText(rest string) bool {
	switch rest[0] {
	case '^', '`':
		return true
	case '!':
		return !strings.HasPrefix(rest, "!=")
	}
	return rest[0] >= utf8.RuneSelf
}

func (s *Scanner) matchAt(re *coregex.Regexp) int {
	loc := re.FindStringIndex(s.rest())
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return loc[1]
}

func (s *Scanner) addLexeme(kind token.Kind, n int, mustBeExpr bool) {
	s.lexemes = append(s.lexemes, token.Lexeme{
		Kind:   kind,
		Text:   s.line[s.current : s.current+n],
		Offset: s.current,
	})
	s.current += n
	s.mustBeExpr = mustBeExpr
	if kind != token.WHITESPACE {
		s.isFirst = false
		if kind != token.DIALOGUE && kind != token.CONTROL_CHAR {
			s.afterText = false
		}
	}
}

func (s *Scanner) rest() string {
	return s.line[s.current:]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.line)
}

func (s *Scanner) errorf(code string, length int, message string) error {
	return &errors.LexError{
		Code:    code,
		Message: message,
		Text:    s.line,
		Offset:  s.current,
		Length:  length,
	}
}

func (s *Scanner) warn(code, message string) {
	s.warnings = append(s.warnings, errors.Warning{Code: code, Message: message})
}
