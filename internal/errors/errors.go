package errors

import (
	goerrors "errors"
	"fmt"
	"strings"

	"ponscripter/token"
)

// Located is implemented by every fatal compile error. The pipeline
// attaches the physical line once the error has propagated out of the
// per-line stages, which only ever see one line of text.
type Located interface {
	error
	Diagnostic() CompilerError
	Locate(lineNo int, text string)
}

// LexError reports a character sequence the lexer could not classify.
type LexError struct {
	Code        string
	Message     string
	Text        string // the offending line
	LineNo      int    // 1-based, 0 until located
	Offset      int    // 0-based byte offset of the cursor
	Length      int
	Suggestions []string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.LineNo, e.Offset+1, e.Message)
}

func (e *LexError) Locate(lineNo int, text string) {
	e.LineNo = lineNo
	e.Text = text
}

func (e *LexError) Diagnostic() CompilerError {
	b := NewDiagnostic(e.Code, e.Message, token.Position{Line: e.LineNo, Column: e.Offset + 1, Offset: e.Offset}).
		WithLength(e.Length)
	for _, s := range e.Suggestions {
		b = b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", s))
	}
	return b.Build()
}

// ParseError reports a lexeme sequence the parser could not accept. There
// is no recovery: the first ParseError aborts the compilation.
type ParseError struct {
	Code         string
	Message      string
	Text         string
	LineNo       int
	Lexeme       token.Lexeme
	LastFunction string
	Consumed     []token.Lexeme
	Pending      []token.Lexeme
	Suggestions  []string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at %d:%d: %s", e.LineNo, e.Lexeme.Offset+1, e.Message)
	if e.LastFunction != "" {
		msg += fmt.Sprintf(" (last function parsed: %s)", e.LastFunction)
	}
	return msg
}

func (e *ParseError) Locate(lineNo int, text string) {
	e.LineNo = lineNo
	e.Text = text
}

func (e *ParseError) Diagnostic() CompilerError {
	b := NewDiagnostic(e.Code, e.Message, token.Position{Line: e.LineNo, Column: e.Lexeme.Offset + 1, Offset: e.Lexeme.Offset}).
		WithLength(len(e.Lexeme.Text))
	for _, s := range e.Suggestions {
		b = b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", s))
	}
	if e.LastFunction != "" {
		b = b.WithNote(fmt.Sprintf("last function parsed was '%s'; check its argument count", e.LastFunction))
	}
	if len(e.Consumed) > 0 {
		b = b.WithNote("parsed: " + strings.TrimSpace(token.Join(e.Consumed)))
	}
	if len(e.Pending) > 0 {
		b = b.WithNote("unparsed: " + strings.TrimSpace(token.Join(e.Pending)))
	}
	return b.Build()
}

// ArgumentCountError is raised by generator handlers, not by the parser:
// the parser accepts any comma list for a command that takes arguments.
type ArgumentCountError struct {
	Function string
	Min      int
	Max      int // equal to Min for a fixed count, negative when unbounded
	Got      int
	Text     string
	LineNo   int
	Offset   int
	Length   int
}

func (e *ArgumentCountError) Expected() string {
	if e.Max < 0 {
		return fmt.Sprintf("expected at least %d", e.Min)
	}
	if e.Min == e.Max {
		return fmt.Sprintf("expected %d", e.Min)
	}
	return fmt.Sprintf("expected between %d and %d", e.Min, e.Max)
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("argument count error at %d:%d: %s: %s arguments, got %d",
		e.LineNo, e.Offset+1, e.Function, e.Expected(), e.Got)
}

func (e *ArgumentCountError) Locate(lineNo int, text string) {
	e.LineNo = lineNo
	e.Text = text
}

func (e *ArgumentCountError) Diagnostic() CompilerError {
	msg := fmt.Sprintf("'%s' %s arguments, got %d", e.Function, e.Expected(), e.Got)
	return NewDiagnostic(ErrorArgumentCount, msg, token.Position{Line: e.LineNo, Column: e.Offset + 1, Offset: e.Offset}).
		WithLength(e.Length).
		Build()
}

// GenerateError reports a well-formed construct the generator cannot lower.
type GenerateError struct {
	Code    string
	Message string
	Text    string
	LineNo  int
	Offset  int
	Length  int
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generate error at %d:%d: %s", e.LineNo, e.Offset+1, e.Message)
}

func (e *GenerateError) Locate(lineNo int, text string) {
	e.LineNo = lineNo
	e.Text = text
}

func (e *GenerateError) Diagnostic() CompilerError {
	return NewDiagnostic(e.Code, e.Message, token.Position{Line: e.LineNo, Column: e.Offset + 1, Offset: e.Offset}).
		WithLength(e.Length).
		Build()
}

// Warning is a non-fatal condition. Warnings never stop compilation; they
// are logged and written into the output as comments.
type Warning struct {
	Code    string
	Line    int // 1-based, 0 for whole-script warnings
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

func (w Warning) Diagnostic() CompilerError {
	return NewWarning(w.Code, w.Message, token.Position{Line: w.Line, Column: 1}).Build()
}

// AsLocated unwraps err to the typed compile error it carries, if any.
func AsLocated(err error) (Located, bool) {
	var located Located
	if goerrors.As(err, &located) {
		return located, true
	}
	return nil, false
}

// AsCompilerError converts any error into a renderable diagnostic. Errors
// that are not compile errors become an unlocated diagnostic.
func AsCompilerError(err error) CompilerError {
	if located, ok := AsLocated(err); ok {
		return located.Diagnostic()
	}
	return CompilerError{Level: Error, Message: err.Error()}
}
