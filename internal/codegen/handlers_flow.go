package codegen

import (
	"fmt"
	"strconv"

	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
)

func registerFlow(r *Registry) {
	r.Register("defsub", defsub)
	r.Register("goto", transfer("jump"))
	r.Register("gosub", transfer("call"))
	r.Register("jumpf", jumpf)
	r.Register("jumpb", jumpb)
	r.Register("next", next)
	r.Register("getparam", getparam)
	r.Register("end", fixed("return"))
	r.Register("game", game)
	r.Register("reset", python("renpy.full_restart()"))
	r.Register("select", menu("jump"))
	r.Register("selgosub", menu("call"))
	r.Register("selnum", selnum)
}

// defsub was consumed by the pre-scan; nothing is left to emit.
func defsub(g *Generator, call *ast.Function) error {
	return g.argCount(call, 1, 1)
}

func transfer(verb string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 1, 1); err != nil {
			return err
		}
		target, err := g.destination(call.Args[0])
		if err != nil {
			return err
		}
		g.out.EmitStatement(verb + " " + target)
		return nil
	}
}

// destination translates a jump or call target: a label literal by name,
// anything else as a computed expression.
func (g *Generator) destination(e ast.Expr) (string, error) {
	if label, ok := e.(*ast.Label); ok {
		return g.labelName(label.Name), nil
	}
	value, err := g.expr(e)
	if err != nil {
		return "", err
	}
	return "expression " + value, nil
}

// jumpf jumps to the next `~` marker, which takes its name from the marker
// counter at that point.
func jumpf(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 0, 0); err != nil {
		return err
	}
	g.out.EmitStatement(fmt.Sprintf("jump %s%d", g.cfg.JumpfPrefix, g.jumps))
	g.jumpfPending = true
	return nil
}

func jumpb(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 0, 0); err != nil {
		return err
	}
	if g.lastTarget == "" {
		g.warn(errors.WarningMissingJumpTarget, "jumpb before any ~ marker; command skipped")
		return nil
	}
	g.out.EmitStatement("jump " + g.lastTarget)
	return nil
}

// next closes the innermost for loop.
func next(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 0, 0); err != nil {
		return err
	}
	if len(g.nexts) == 0 {
		g.warn(errors.WarningUnbalancedLoop, "next without a matching for")
		return nil
	}
	advance := g.nexts[len(g.nexts)-1]
	g.nexts = g.nexts[:len(g.nexts)-1]
	g.out.EmitPython(advance)
	g.out.DecreasePermanent()
	return nil
}

// scriptStart is the label game hands control to once the define section
// has run.
const scriptStart = "start"

func game(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 0, 0); err != nil {
		return err
	}
	g.out.EmitStatement("jump " + g.labelName(scriptStart))
	return nil
}

// fixed emits one structured statement for a command without arguments.
func fixed(statement string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 0, 0); err != nil {
			return err
		}
		g.out.EmitStatement(statement)
		return nil
	}
}

func python(statement string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 0, 0); err != nil {
			return err
		}
		g.out.EmitPython(statement)
		return nil
	}
}

// menu lowers select/selgosub: string and label arguments alternate, one
// pair per choice.
func menu(verb string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 2, -1); err != nil {
			return err
		}
		if len(call.Args)%2 != 0 {
			return g.errorf(call, errors.ErrorInvalidArgument,
				fmt.Sprintf("%s expects choice and label pairs, got %d arguments", call.Name, len(call.Args)))
		}

		g.out.EmitStatement("menu:")
		g.out.IncreaseTemporary()
		for i := 0; i < len(call.Args); i += 2 {
			choice, err := g.choice(call.Args[i])
			if err != nil {
				return err
			}
			target, err := g.destination(call.Args[i+1])
			if err != nil {
				return err
			}
			g.out.EmitStatement(choice + ":")
			g.out.IncreaseTemporary()
			g.out.EmitStatement(verb + " " + target)
			g.out.DecreaseTemporary()
		}
		g.out.DecreaseTemporary()
		return nil
	}
}

// selnum stores the index of the chosen option in its first argument.
func selnum(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 2, -1); err != nil {
		return err
	}
	target, err := g.lvalue(call.Args[0])
	if err != nil {
		return err
	}

	g.out.EmitStatement("menu:")
	g.out.IncreaseTemporary()
	for i, arg := range call.Args[1:] {
		choice, err := g.choice(arg)
		if err != nil {
			return err
		}
		g.out.EmitStatement(choice + ":")
		g.out.IncreaseTemporary()
		g.out.EmitPython(target + " = " + strconv.Itoa(i))
		g.out.DecreaseTemporary()
	}
	g.out.DecreaseTemporary()
	return nil
}

func (g *Generator) choice(e ast.Expr) (string, error) {
	lit, ok := e.(*ast.StringLiteral)
	if !ok {
		return "", g.errorf(e, errors.ErrorInvalidArgument,
			fmt.Sprintf("menu choices must be string literals, found '%s'", e))
	}
	return `"` + escapeText(unquote(lit.Raw)) + `"`, nil
}
