package codegen

import (
	"fmt"
	"strings"

	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
	"ponscripter/internal/semantic"
)

// Handler lowers one command call. It checks its own argument count.
type Handler func(g *Generator, call *ast.Function) error

// Registry maps command names to handlers, case-insensitively.
type Registry struct {
	handlers    map[string]Handler
	subroutines map[string]bool
}

// NewRegistry returns a registry holding every built-in handler.
func NewRegistry() *Registry {
	r := &Registry{
		handlers:    make(map[string]Handler),
		subroutines: make(map[string]bool),
	}
	registerVariables(r)
	registerFlow(r)
	registerText(r)
	registerMedia(r)
	return r
}

func (r *Registry) Register(name string, h Handler) {
	r.handlers[strings.ToLower(name)] = h
}

// Shadow installs h under name and keeps the handler it replaces under the
// override prefix, so `_name` still reaches the original. A built-in that
// had no handler is kept as one that warns and skips the call.
func (r *Registry) Shadow(name string, h Handler) {
	key := strings.ToLower(name)
	original, ok := r.handlers[key]
	if !ok {
		original = unhandled
	}
	r.handlers[semantic.OverridePrefix+key] = original
	r.handlers[key] = h
}

// RegisterSubroutine installs the call handler of a defsub subroutine,
// shadowing the built-in of the same name when it overrides one.
func (r *Registry) RegisterSubroutine(name string, overrides bool) {
	if overrides {
		r.Shadow(name, userCall)
	} else {
		r.Register(name, userCall)
	}
	r.subroutines[strings.ToLower(name)] = true
}

// Lookup finds the handler for name: the exact name first, then the
// built-in named without the override prefix. The prefix never reaches a
// user subroutine.
func (r *Registry) Lookup(name string) (Handler, bool) {
	key := strings.ToLower(name)
	if h, ok := r.handlers[key]; ok {
		return h, true
	}
	if trimmed, ok := strings.CutPrefix(key, semantic.OverridePrefix); ok && !r.subroutines[trimmed] {
		h, ok := r.handlers[trimmed]
		return h, ok
	}
	return nil, false
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// unhandled skips a known command that has no translation.
func unhandled(g *Generator, call *ast.Function) error {
	g.warn(errors.WarningUnhandledCommand, fmt.Sprintf("no translation for '%s'; command skipped", call.Name))
	return nil
}

// userCall lowers a call to a defsub subroutine.
func userCall(g *Generator, call *ast.Function) error {
	if info, ok := g.db.Lookup(call.Name); ok {
		switch info.Arity.Kind {
		case semantic.ArityFixed:
			if err := g.argCount(call, info.Arity.Count, info.Arity.Count); err != nil {
				return err
			}
		case semantic.ArityNone:
			if err := g.argCount(call, 0, 0); err != nil {
				return err
			}
		}
	}

	args, err := g.exprs(call.Args)
	if err != nil {
		return err
	}
	target := g.labelName(call.Name)
	if len(args) == 0 {
		g.out.EmitStatement("call " + target)
	} else {
		g.out.EmitStatement(fmt.Sprintf("call %s(%s)", target, strings.Join(args, ", ")))
	}
	return nil
}

func (g *Generator) exprs(args []ast.Expr) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		s, err := g.expr(a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
