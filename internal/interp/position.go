// Package interp walks the parsed script node by node instead of
// translating it.
package interp

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
)

var log = commonlog.GetLogger("ponscripter.interp")

// Position addresses one top-level node: a line index and the index of the
// node on that line. An instruction index equal to the line's node count
// marks a finished line.
type Position struct {
	Line        int
	Instruction int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Instruction)
}

// PositionError is returned when a jump targets a position outside the
// script.
type PositionError struct {
	Target Position
	Lines  int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position %s is outside the script (%d lines)", e.Target, e.Lines)
}

// LabelError is returned when a jump or call names a label the script
// does not declare.
type LabelError struct {
	Name string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("label '*%s' not found", e.Name)
}

// Manager is the cursor over the per-line node lists of one script, with
// a stack of saved positions for call and return.
type Manager struct {
	lines  [][]ast.Node
	pos    Position
	stack  []Position
	labels map[string]Position

	warnings []errors.Warning
}

// NewManager positions a cursor at the start of lines. Labels are indexed
// by lower-case name; the first declaration of a name wins.
func NewManager(lines [][]ast.Node) *Manager {
	m := &Manager{
		lines:  lines,
		labels: make(map[string]Position),
	}
	for i, nodes := range lines {
		for j, node := range nodes {
			label, ok := node.(*ast.Label)
			if !ok {
				continue
			}
			key := strings.ToLower(label.Name)
			if _, seen := m.labels[key]; !seen {
				m.labels[key] = Position{Line: i, Instruction: j}
			}
		}
	}
	return m
}

func (m *Manager) Position() Position {
	return m.pos
}

// Depth is the number of calls waiting for a return.
func (m *Manager) Depth() int {
	return len(m.stack)
}

func (m *Manager) Warnings() []errors.Warning {
	return m.warnings
}

// Valid reports whether p addresses a line of the script and a node on it,
// or the end of that line.
func (m *Manager) Valid(p Position) bool {
	if p.Line < 0 || p.Line >= len(m.lines) {
		return false
	}
	return p.Instruction >= 0 && p.Instruction <= len(m.lines[p.Line])
}

// Next returns the node under the cursor and steps past it. It reports
// false when the current line is finished.
func (m *Manager) Next() (ast.Node, bool) {
	if !m.Valid(m.pos) || m.pos.Instruction == len(m.lines[m.pos.Line]) {
		return nil, false
	}
	node := m.lines[m.pos.Line][m.pos.Instruction]
	m.pos.Instruction++
	return node, true
}

// AdvanceLine moves to the start of the next line that has nodes. It
// reports false when the script is finished.
func (m *Manager) AdvanceLine() bool {
	for line := m.pos.Line + 1; line < len(m.lines); line++ {
		if len(m.lines[line]) > 0 {
			m.pos = Position{Line: line}
			return true
		}
	}
	m.pos = Position{Line: len(m.lines)}
	return false
}

// Jump moves the cursor to p.
func (m *Manager) Jump(p Position) error {
	if !m.Valid(p) {
		return &PositionError{Target: p, Lines: len(m.lines)}
	}
	m.pos = p
	return nil
}

// Call saves the current position and jumps to p. Nothing is saved when
// the jump fails.
func (m *Manager) Call(p Position) error {
	if !m.Valid(p) {
		return &PositionError{Target: p, Lines: len(m.lines)}
	}
	m.stack = append(m.stack, m.pos)
	m.pos = p
	return nil
}

// Return jumps back to the most recently saved position. With nothing
// saved it warns and leaves the cursor where it is.
func (m *Manager) Return() bool {
	if len(m.stack) == 0 {
		message := fmt.Sprintf("return at %s with an empty call stack; ignored", m.pos)
		m.warnings = append(m.warnings, errors.Warning{
			Code:    errors.WarningReturnStackEmpty,
			Line:    m.pos.Line + 1,
			Message: message,
		})
		log.Warning(message, "code", errors.WarningReturnStackEmpty)
		return false
	}
	m.pos = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return true
}

// Lookup finds the position of a label declaration.
func (m *Manager) Lookup(name string) (Position, bool) {
	p, ok := m.labels[strings.ToLower(strings.TrimPrefix(name, "*"))]
	return p, ok
}

func (m *Manager) JumpLabel(name string) error {
	p, ok := m.Lookup(name)
	if !ok {
		return &LabelError{Name: strings.TrimPrefix(name, "*")}
	}
	return m.Jump(p)
}

func (m *Manager) CallLabel(name string) error {
	p, ok := m.Lookup(name)
	if !ok {
		return &LabelError{Name: strings.TrimPrefix(name, "*")}
	}
	return m.Call(p)
}
