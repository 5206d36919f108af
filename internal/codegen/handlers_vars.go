package codegen

import (
	"fmt"

	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
)

func registerVariables(r *Registry) {
	r.Register("mov", assign("="))
	r.Register("add", assign("+="))
	r.Register("sub", assign("-="))
	r.Register("mul", assign("*="))
	r.Register("div", truncating("/"))
	r.Register("mod", truncating("mod"))
	r.Register("inc", step("+="))
	r.Register("dec", step("-="))
	r.Register("numalias", alias)
	r.Register("stralias", alias)
	r.Register("itoa", convert("str(%s)"))
	r.Register("atoi", convert("int(%s)"))
	r.Register("len", convert("len(%s)"))
	r.Register("mid", mid)
	r.Register("rnd", rnd)
	r.Register("rnd2", rnd2)
	r.Register("cmp", compare)
	r.Register("dim", dim)
}

// assign handles `op target, value`.
func assign(op string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 2, 2); err != nil {
			return err
		}
		target, err := g.lvalue(call.Args[0])
		if err != nil {
			return err
		}
		value, err := g.expr(call.Args[1])
		if err != nil {
			return err
		}
		g.out.EmitPython(fmt.Sprintf("%s %s %s", target, op, value))
		return nil
	}
}

// truncating handles div and mod, which go through the same lowering as
// the / and mod operators.
func truncating(op string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 2, 2); err != nil {
			return err
		}
		target, err := g.lvalue(call.Args[0])
		if err != nil {
			return err
		}
		value, err := g.binary(&ast.BinaryOperator{Op: op, Left: call.Args[0], Right: call.Args[1]})
		if err != nil {
			return err
		}
		g.out.EmitPython(fmt.Sprintf("%s = %s", target, value))
		return nil
	}
}

func step(op string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 1, 1); err != nil {
			return err
		}
		target, err := g.lvalue(call.Args[0])
		if err != nil {
			return err
		}
		g.out.EmitPython(fmt.Sprintf("%s %s 1", target, op))
		return nil
	}
}

// alias handles numalias and stralias: the name becomes a variable of the
// generated program.
func alias(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 2, 2); err != nil {
		return err
	}
	name, ok := call.Args[0].(*ast.Alias)
	if !ok {
		return g.errorf(call.Args[0], errors.ErrorInvalidArgument,
			fmt.Sprintf("%s expects a name, found '%s'", call.Name, call.Args[0]))
	}
	g.defineAlias(name.Name)
	value, err := g.expr(call.Args[1])
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf("%s = %s", g.aliasName(name.Name), value))
	return nil
}

// convert handles `op target, source` where target = format(source).
func convert(format string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 2, 2); err != nil {
			return err
		}
		target, err := g.lvalue(call.Args[0])
		if err != nil {
			return err
		}
		source, err := g.expr(call.Args[1])
		if err != nil {
			return err
		}
		g.out.EmitPython(fmt.Sprintf("%s = "+format, target, source))
		return nil
	}
}

func mid(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 4, 4); err != nil {
		return err
	}
	target, err := g.lvalue(call.Args[0])
	if err != nil {
		return err
	}
	args, err := g.exprs(call.Args[1:])
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf("%s = %s[%s:(%s) + (%s)]", target, args[0], args[1], args[1], args[2]))
	return nil
}

func rnd(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 2, 2); err != nil {
		return err
	}
	target, err := g.lvalue(call.Args[0])
	if err != nil {
		return err
	}
	limit, err := g.expr(call.Args[1])
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf("%s = renpy.random.randint(0, (%s) - 1)", target, limit))
	return nil
}

func rnd2(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 3, 3); err != nil {
		return err
	}
	target, err := g.lvalue(call.Args[0])
	if err != nil {
		return err
	}
	bounds, err := g.exprs(call.Args[1:])
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf("%s = renpy.random.randint(%s, %s)", target, bounds[0], bounds[1]))
	return nil
}

// compare handles `cmp %r, $a, $b`, setting %r to -1, 0 or 1.
func compare(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 3, 3); err != nil {
		return err
	}
	target, err := g.lvalue(call.Args[0])
	if err != nil {
		return err
	}
	sides, err := g.exprs(call.Args[1:])
	if err != nil {
		return err
	}
	a, b := sides[0], sides[1]
	g.out.EmitPython(fmt.Sprintf("%s = (%s > %s) - (%s < %s)", target, a, b, a, b))
	return nil
}

// dim handles `dim ?name[n][m]...`. Each dimension holds indices 0..n.
func dim(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	ref, ok := call.Args[0].(*ast.ArrayReference)
	if !ok {
		return g.errorf(call.Args[0], errors.ErrorInvalidArgument, "dim expects an array reference")
	}
	target, err := g.store(g.cfg.ArrayStore, ref.Name)
	if err != nil {
		return err
	}
	sizes, err := g.exprs(ref.Indexes)
	if err != nil {
		return err
	}

	value := fmt.Sprintf("[0] * (%s + 1)", sizes[len(sizes)-1])
	for i := len(sizes) - 2; i >= 0; i-- {
		value = fmt.Sprintf("[%s for _ in range(%s + 1)]", value, sizes[i])
	}
	g.out.EmitPython(fmt.Sprintf("%s = %s", target, value))
	return nil
}

// getparam binds the arguments of the enclosing subroutine call, in order.
func getparam(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, -1); err != nil {
		return err
	}
	for i, arg := range call.Args {
		target, err := g.lvalue(arg)
		if err != nil {
			return err
		}
		g.out.EmitPython(fmt.Sprintf("%s = args[%d]", target, i))
	}
	return nil
}
