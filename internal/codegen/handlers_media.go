package codegen

import (
	"fmt"
	"strings"

	"ponscripter/internal/ast"
)

func registerMedia(r *Registry) {
	r.Register("bg", background)
	r.Register("lsp", sprite)
	r.Register("csp", clearSprite)
	r.Register("vsp", spriteVisibility)
	r.Register("btndef", buttonDefine)
	r.Register("btn", button)
	r.Register("spbtn", spriteButton)
	r.Register("btnwait", buttonWait)
	r.Register("print", transition)
	r.Register("quake", shake("vpunch"))
	r.Register("quakey", shake("vpunch"))
	r.Register("quakex", shake("hpunch"))

	r.Register("bgm", play("music", ""))
	r.Register("mp3loop", play("music", ""))
	r.Register("mp3", play("music", " noloop"))
	r.Register("playstop", fixed("stop music"))
	r.Register("stop", fixed("stop music"))
	r.Register("dwave", channelPlay(""))
	r.Register("dwaveloop", channelPlay(" loop"))
	r.Register("dwavestop", dwavestop)
}

// background handles `bg image[, effect]`. The colour names black and
// white and hex colours become solid backgrounds.
func background(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 3); err != nil {
		return err
	}
	var image string
	switch arg := call.Args[0].(type) {
	case *ast.Alias:
		switch name := strings.ToLower(arg.Name); name {
		case "black", "white":
			image = name
		}
	case *ast.HexColor:
		image = fmt.Sprintf("expression Solid(%q)", arg.Lex.Text)
	}
	if image == "" {
		value, err := g.expr(call.Args[0])
		if err != nil {
			return err
		}
		image = "expression " + value
	}
	g.out.EmitStatement("scene " + image)
	if len(call.Args) > 1 {
		return g.effect(call.Args[1])
	}
	return nil
}

// sprite handles `lsp number, image, x, y[, alpha]`. The image and its
// placement are kept in the sprites store so vsp can show it again.
func sprite(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 4, 5); err != nil {
		return err
	}
	args, err := g.exprs(call.Args)
	if err != nil {
		return err
	}
	transform := fmt.Sprintf("Transform(xpos=%s, ypos=%s", args[2], args[3])
	if len(args) == 5 {
		transform += fmt.Sprintf(", alpha=(%s) / 255.0", args[4])
	}
	transform += ")"
	g.out.EmitPython(fmt.Sprintf("sprites[%s] = (Image(%s), [%s])", args[0], args[1], transform))
	g.out.EmitPython(showSprite(args[0]))
	return nil
}

func clearSprite(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	number, err := g.expr(call.Args[0])
	if err != nil {
		return err
	}
	g.out.EmitPython(hideSprite(number))
	return nil
}

// spriteVisibility handles `vsp number, visible`.
func spriteVisibility(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 2, 2); err != nil {
		return err
	}
	number, err := g.expr(call.Args[0])
	if err != nil {
		return err
	}
	if n, ok := integerLiteral(call.Args[1]); ok {
		if n == 0 {
			g.out.EmitPython(hideSprite(number))
		} else {
			g.out.EmitPython(showSprite(number))
		}
		return nil
	}
	visible, err := g.expr(call.Args[1])
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf("%s if %s else %s", showSprite(number), visible, hideSprite(number)))
	return nil
}

func showSprite(number string) string {
	return fmt.Sprintf(`renpy.show("sprite%%d" %% (%s), what=sprites[%s][0], at_list=sprites[%s][1])`, number, number, number)
}

func hideSprite(number string) string {
	return fmt.Sprintf(`renpy.hide("sprite%%d" %% (%s))`, number)
}

// buttonDefine handles `btndef image`, which starts a new set of buttons
// over image. `btndef clear` drops the buttons and keeps the image.
func buttonDefine(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	if name, ok := call.Args[0].(*ast.Alias); !ok || !strings.EqualFold(name.Name, "clear") {
		image, err := g.expr(call.Args[0])
		if err != nil {
			return err
		}
		g.out.EmitPython("btn_base = " + image)
	}
	g.out.EmitPython("btn_areas = {}")
	return nil
}

// button handles `btn number, x, y, w, h[, ox, oy]`. The source offsets
// into the button image are dropped; hotspots are cut from btn_base.
func button(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 5, 7); err != nil {
		return err
	}
	args, err := g.exprs(call.Args[:5])
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf("btn_areas[%s] = (%s)", args[0], strings.Join(args[1:], ", ")))
	return nil
}

// spriteButton handles `spbtn sprite, number`: the shown sprite's bounds
// become the button.
func spriteButton(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 2, 2); err != nil {
		return err
	}
	args, err := g.exprs(call.Args)
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf(`btn_areas[%s] = renpy.get_image_bounds("sprite%%d" %% (%s))`, args[1], args[0]))
	return nil
}

// buttonWait handles `btnwait variable`, storing the number of the clicked
// button.
func buttonWait(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	target, err := g.lvalue(call.Args[0])
	if err != nil {
		return err
	}
	g.out.EmitPython(target + " = renpy.imagemap(btn_base, btn_base, [(x, y, x + w, y + h, n) for n, (x, y, w, h) in btn_areas.items()])")
	return nil
}

// transition handles `print effect`.
func transition(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 3); err != nil {
		return err
	}
	return g.effect(call.Args[0])
}

// effect emits a transition for an effect number. Effect 1 is an instant
// change, so it needs none; every other effect fades.
func (g *Generator) effect(e ast.Expr) error {
	if n, ok := integerLiteral(e); ok {
		if n > 1 {
			g.out.EmitStatement("with dissolve")
		}
		return nil
	}
	value, err := g.expr(e)
	if err != nil {
		return err
	}
	g.out.EmitStatement(fmt.Sprintf("with (dissolve if (%s) > 1 else None)", value))
	return nil
}

func shake(transition string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 2, 2); err != nil {
			return err
		}
		g.out.EmitStatement("with " + transition)
		return nil
	}
}

func play(channel, suffix string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 1, 1); err != nil {
			return err
		}
		file, err := g.expr(call.Args[0])
		if err != nil {
			return err
		}
		g.out.EmitStatement(fmt.Sprintf("play %s %s%s", channel, file, suffix))
		return nil
	}
}

// channelPlay handles `dwave channel, file`; channel 0 is the voice channel.
func channelPlay(suffix string) Handler {
	return func(g *Generator, call *ast.Function) error {
		if err := g.argCount(call, 2, 2); err != nil {
			return err
		}
		file, err := g.expr(call.Args[1])
		if err != nil {
			return err
		}
		g.out.EmitStatement(fmt.Sprintf("play %s %s%s", soundChannel(call.Args[0]), file, suffix))
		return nil
	}
}

func dwavestop(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	g.out.EmitStatement("stop " + soundChannel(call.Args[0]))
	return nil
}

func soundChannel(e ast.Expr) string {
	if n, ok := integerLiteral(e); ok && n == 0 {
		return "voice"
	}
	return "sound"
}
