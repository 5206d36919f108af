package errors

import "ponscripter/token"

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error ErrorLevel = "error"
	Warn  ErrorLevel = "warning"
	Note  ErrorLevel = "note"
	Help  ErrorLevel = "help"
)

// CompilerError is the renderable form of every error and warning.
type CompilerError struct {
	Level       ErrorLevel
	Code        string
	Message     string
	Position    token.Position
	Length      int
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string
	Replacement string
}

// DiagnosticBuilder provides a fluent interface for assembling diagnostics
type DiagnosticBuilder struct {
	err CompilerError
}

func NewDiagnostic(code, message string, pos token.Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func NewWarning(code, message string, pos token.Position) *DiagnosticBuilder {
	b := NewDiagnostic(code, message, pos)
	b.err.Level = Warn
	return b
}

// WithLength sets the length of the underlined span; non-positive lengths
// keep the one-character default.
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	if length > 0 {
		b.err.Length = length
	}
	return b
}

func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

func (b *DiagnosticBuilder) Build() CompilerError {
	return b.err
}
