package codegen

import "strings"

// Emitter is the append-only sink for generated lines. It owns indentation
// and the switch between structured statements and raw code: raw code is
// grouped into `python:` blocks, and a block that would end up empty gets a
// `pass`.
type Emitter struct {
	width     int
	lines     []string
	permanent int // for/next nesting, survives across lines
	temporary int // if nesting, reset at the end of every line

	python       bool
	pythonIndent int

	pending       bool // the last block header has no body yet
	pendingIndent int

	labels map[string]bool
}

func NewEmitter(width int) *Emitter {
	if width <= 0 {
		width = 4
	}
	return &Emitter{width: width, labels: make(map[string]bool)}
}

func (e *Emitter) Indent() int {
	return e.permanent + e.temporary
}

// EmitStatement writes a structured statement. A statement ending in ':'
// opens a block.
func (e *Emitter) EmitStatement(line string) {
	e.python = false
	e.write(e.Indent(), line, false)
	if strings.HasSuffix(line, ":") {
		e.pending = true
		e.pendingIndent = e.Indent()
	}
}

// EmitPython writes a raw code statement, opening a `python:` block at the
// current indentation if one is not already open there.
func (e *Emitter) EmitPython(line string) {
	indent := e.Indent()
	if !e.python || e.pythonIndent != indent {
		e.write(indent, "python:", false)
		e.python = true
		e.pythonIndent = indent
		e.pending = true
		e.pendingIndent = indent
	}
	e.write(indent+1, line, false)
}

// EmitLabel writes a label declaration. Labels sit at column zero unless a
// loop is open, in which case they follow the loop body. It reports false
// when a script label of the same name was already written; generated jump
// targets are never checked.
func (e *Emitter) EmitLabel(name string, isJumpTarget bool) bool {
	e.python = false
	duplicate := !isJumpTarget && e.labels[name]
	if !isJumpTarget {
		e.labels[name] = true
	}
	e.write(e.permanent, "label "+name+":", false)
	return !duplicate
}

// AppendComment writes a comment line. Comments never count as a block body.
func (e *Emitter) AppendComment(text string) {
	indent := e.Indent()
	if e.python && e.pythonIndent == indent {
		indent++
	}
	e.write(indent, "# "+text, true)
}

func (e *Emitter) IncreasePermanent() {
	e.permanent++
}

// DecreasePermanent reports false if there was no open loop to close.
func (e *Emitter) DecreasePermanent() bool {
	if e.permanent == 0 {
		return false
	}
	e.permanent--
	return true
}

func (e *Emitter) IncreaseTemporary() {
	e.temporary++
}

func (e *Emitter) DecreaseTemporary() {
	if e.temporary > 0 {
		e.temporary--
	}
}

func (e *Emitter) ResetTemporary() {
	e.temporary = 0
}

// Lines returns the generated lines, closing a trailing empty block.
func (e *Emitter) Lines() []string {
	e.flush(-1)
	return e.lines
}

func (e *Emitter) String() string {
	lines := e.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func (e *Emitter) write(indent int, text string, comment bool) {
	e.flush(indent)
	if e.pending && !comment {
		e.pending = false
	}
	e.lines = append(e.lines, strings.Repeat(" ", indent*e.width)+text)
}

// flush writes `pass` into a pending empty block when the next line would
// not be nested inside it.
func (e *Emitter) flush(indent int) {
	if e.pending && indent <= e.pendingIndent {
		e.pending = false
		e.lines = append(e.lines, strings.Repeat(" ", (e.pendingIndent+1)*e.width)+"pass")
	}
}
