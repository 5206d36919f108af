package codegen

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
)

var log = commonlog.GetLogger("ponscripter.codegen")

// Generator lowers the node forest of each line, in order, into the target
// program. All state that outlives a line lives here and is owned by one
// generation run.
type Generator struct {
	cfg      Config
	db       *semantic.Database
	out      *Emitter
	registry *Registry

	lineNo int
	source string

	aliases       map[string]bool
	warnedAliases map[string]bool

	jumps        int    // `~` markers seen so far
	jumpfPending bool   // a jumpf is waiting for the next marker
	lastTarget   string // most recent marker label, for jumpb
	nexts        []string

	extend    bool // the next dialogue continues the previous one
	textColor string
	tags      []string // open text tags, in opening order

	warnings []errors.Warning
}

// New creates a generator for a script whose subroutines are in db. User
// subroutines are registered here, shadowing built-in handlers of the same
// name; the shadowed handler stays reachable under the override prefix.
func New(db *semantic.Database, cfg Config) *Generator {
	cfg.applyDefaults()
	g := &Generator{
		cfg:           cfg,
		db:            db,
		out:           NewEmitter(cfg.IndentWidth),
		registry:      NewRegistry(),
		aliases:       make(map[string]bool),
		warnedAliases: make(map[string]bool),
	}
	for _, sub := range db.UserSubroutines() {
		g.registry.RegisterSubroutine(sub.Name, sub.Overridden)
	}
	g.out.EmitLabel(cfg.EntryLabel, false)
	return g
}

func (g *Generator) Registry() *Registry {
	return g.registry
}

func (g *Generator) Emitter() *Emitter {
	return g.out
}

func (g *Generator) Warnings() []errors.Warning {
	return g.warnings
}

// GenerateLine lowers the nodes of one source line. lineNo and source are
// only used for diagnostics.
func (g *Generator) GenerateLine(lineNo int, source string, nodes []ast.Node) error {
	g.lineNo = lineNo
	g.source = source
	for _, node := range nodes {
		if err := g.generateNode(node); err != nil {
			return err
		}
	}
	g.out.ResetTemporary()
	g.textColor = ""
	return nil
}

// Finish reports anything left open at the end of the script and returns
// the generated program.
func (g *Generator) Finish() string {
	if n := len(g.nexts); n > 0 {
		g.warn(errors.WarningUnbalancedLoop, fmt.Sprintf("%d for loop(s) never closed by next", n))
	}
	if g.jumpfPending {
		g.warn(errors.WarningMissingJumpTarget, "jumpf without a following ~ marker")
	}
	return g.out.String()
}

func (g *Generator) generateNode(node ast.Node) error {
	switch n := node.(type) {
	case *ast.Dialogue:
		g.say(n.Text)
	case *ast.Function:
		return g.call(n)
	case *ast.Label:
		g.label(n)
	case *ast.IfStatement:
		return g.ifStatement(n)
	case *ast.ForStatement:
		return g.forStatement(n)
	case *ast.Colon:
	case *ast.Comment:
		g.out.AppendComment(strings.TrimSpace(n.Text))
	case *ast.JumpfTarget:
		g.jumpTarget()
	case *ast.Return:
		if n.Destination != nil {
			return g.errorf(n, errors.ErrorUnsupported, "return with a destination label is not supported")
		}
		g.out.EmitStatement("return")
	case *ast.ClickWait, *ast.LineContinue:
		g.extend = true
	case *ast.PageWait:
		g.out.EmitStatement("nvl clear")
		g.extend = false
	case *ast.TextColor:
		g.textColor = strings.ToLower(n.Color)
	case *ast.FormattingTag:
		g.toggleTag(n.Tag)
	case *ast.NumericReference, *ast.StringReference:
		value, err := g.expr(n.(ast.Expr))
		if err != nil {
			return err
		}
		g.out.EmitPython(fmt.Sprintf("renpy.say(None, str(%s))", value))
	default:
		return g.errorf(node, errors.ErrorUnsupported, fmt.Sprintf("cannot generate code for %s", node.NodeType()))
	}
	return nil
}

// call dispatches a command to its handler. Names without a handler are
// skipped with a warning.
func (g *Generator) call(fn *ast.Function) error {
	handler, ok := g.registry.Lookup(fn.Name)
	if !ok {
		if _, known := g.db.Lookup(fn.Name); !known {
			return g.errorf(fn, errors.ErrorUnsupported, fmt.Sprintf("unknown command '%s'", fn.Name))
		}
		return unhandled(g, fn)
	}
	return handler(g, fn)
}

func (g *Generator) label(n *ast.Label) {
	name := g.labelName(n.Name)
	if info, ok := g.db.Lookup(n.Name); ok && info.User && info.Arity.Kind == semantic.ArityFixed {
		name += "(*args)"
	}
	if !g.out.EmitLabel(name, false) {
		g.warn(errors.WarningDuplicateLabel, fmt.Sprintf("label '*%s' declared more than once", n.Name))
	}
}

func (g *Generator) ifStatement(n *ast.IfStatement) error {
	cond, err := g.expr(n.Condition)
	if err != nil {
		return err
	}
	if n.Inverted {
		g.out.EmitStatement(fmt.Sprintf("if not (%s):", cond))
	} else {
		g.out.EmitStatement(fmt.Sprintf("if %s:", cond))
	}
	g.out.IncreaseTemporary()
	return nil
}

// forStatement lowers a for header to an assignment and a while loop. The
// loop direction comes from the sign of the step, so the step has to be an
// integer literal. The advance statement waits on a stack for next.
func (g *Generator) forStatement(n *ast.ForStatement) error {
	variable, err := g.lvalue(n.Variable)
	if err != nil {
		return err
	}
	start, err := g.expr(n.Start)
	if err != nil {
		return err
	}
	end, err := g.expr(n.End)
	if err != nil {
		return err
	}

	step := 1
	if n.Step != nil {
		var ok bool
		if step, ok = integerLiteral(n.Step); !ok {
			return g.errorf(n.Step, errors.ErrorUnsupported, "for loop step must be an integer literal")
		}
		if step == 0 {
			return g.errorf(n.Step, errors.ErrorUnsupported, "for loop step must not be zero")
		}
	}

	cmp, advance := "<=", fmt.Sprintf("%s += %d", variable, step)
	if step < 0 {
		cmp, advance = ">=", fmt.Sprintf("%s -= %d", variable, -step)
	}

	g.out.EmitPython(fmt.Sprintf("%s = %s", variable, start))
	g.out.EmitStatement(fmt.Sprintf("while %s %s %s:", variable, cmp, end))
	g.out.IncreasePermanent()
	g.nexts = append(g.nexts, advance)
	return nil
}

// jumpTarget names a `~` marker after the jumpf that targets it, if any.
func (g *Generator) jumpTarget() {
	prefix := g.cfg.TildePrefix
	if g.jumpfPending {
		prefix = g.cfg.JumpfPrefix
	}
	name := fmt.Sprintf("%s%d", prefix, g.jumps)
	g.jumps++
	g.jumpfPending = false
	g.lastTarget = name
	g.out.EmitLabel(name, true)
}

func (g *Generator) labelName(name string) string {
	return g.cfg.LabelPrefix + strings.ToLower(name)
}

func (g *Generator) aliasName(name string) string {
	return g.cfg.AliasPrefix + strings.ToLower(name)
}

func (g *Generator) defineAlias(name string) {
	g.aliases[strings.ToLower(name)] = true
}

func (g *Generator) warn(code, message string) {
	g.Warn(errors.Warning{Code: code, Line: g.lineNo, Message: message})
}

// Warn records a warning raised outside the generator, writing it into
// the output like the generator's own.
func (g *Generator) Warn(w errors.Warning) {
	g.warnings = append(g.warnings, w)
	log.Warning(w.Message, "line", w.Line, "code", w.Code)
	if *g.cfg.WarningsAsComments {
		g.out.AppendComment("WARNING: " + w.Message)
	}
}

func (g *Generator) errorf(node ast.Node, code, message string) error {
	lex := node.Lexeme()
	return &errors.GenerateError{
		Code:    code,
		Message: message,
		Text:    g.source,
		LineNo:  g.lineNo,
		Offset:  lex.Offset,
		Length:  len(lex.Text),
	}
}

// argCount checks the number of arguments of a call. A negative max means
// no upper bound.
func (g *Generator) argCount(call *ast.Function, min, max int) error {
	n := len(call.Args)
	if n >= min && (max < 0 || n <= max) {
		return nil
	}
	return &errors.ArgumentCountError{
		Function: call.Name,
		Min:      min,
		Max:      max,
		Got:      n,
		Text:     g.source,
		LineNo:   g.lineNo,
		Offset:   call.Lex.Offset,
		Length:   len(call.Lex.Text),
	}
}
