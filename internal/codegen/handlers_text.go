package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"ponscripter/internal/ast"
	"ponscripter/internal/errors"
)

// Text tags with a target equivalent. Other ~x~ regions are dropped.
var textTags = map[string]string{
	"i": "i",
	"b": "b",
}

func registerText(r *Registry) {
	r.Register("textclear", fixed("nvl clear"))
	r.Register("click", fixed("pause"))
	r.Register("texton", fixed("window show"))
	r.Register("textoff", fixed("window hide"))
	r.Register("br", fixed(`extend "\n"`))
	r.Register("wait", pause)
	r.Register("delay", pause)
	r.Register("textspeed", textspeed)
	r.Register("caption", caption)
}

// say emits one run of dialogue, continuing the previous one after a
// click-wait or a line continuation.
func (g *Generator) say(raw string) {
	var b strings.Builder
	for _, tag := range g.tags {
		b.WriteString("{" + tag + "}")
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] == '~' {
			if j := strings.IndexByte(raw[i+1:], '~'); j > 0 && isTagName(raw[i+1:i+1+j]) {
				b.WriteString(g.toggleTag(raw[i+1 : i+1+j]))
				i += j + 1
				continue
			}
		}
		switch c := raw[i]; c {
		case '^', '`':
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '[':
			b.WriteString("[[")
		case '{':
			b.WriteString("{{")
		default:
			b.WriteByte(c)
		}
	}
	for i := len(g.tags) - 1; i >= 0; i-- {
		b.WriteString("{/" + g.tags[i] + "}")
	}

	text := b.String()
	if g.textColor != "" {
		text = "{color=" + g.textColor + "}" + text + "{/color}"
	}
	if g.extend {
		g.out.EmitStatement(`extend "` + text + `"`)
	} else {
		g.out.EmitStatement(`"` + text + `"`)
	}
	g.extend = false
}

// toggleTag opens or closes a text tag and returns the markup for it.
func (g *Generator) toggleTag(tag string) string {
	target, ok := textTags[strings.ToLower(tag)]
	if !ok {
		g.warn(errors.WarningUnhandledCommand, fmt.Sprintf("text tag '~%s~' has no translation; dropped", tag))
		return ""
	}
	for i, open := range g.tags {
		if open == target {
			g.tags = append(g.tags[:i], g.tags[i+1:]...)
			return "{/" + target + "}"
		}
	}
	g.tags = append(g.tags, target)
	return "{" + target + "}"
}

func isTagName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return s != ""
}

// escapeText escapes s for a double-quoted target string that is also
// subject to text tag and interpolation processing.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

var textEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "[", "[[", "{", "{{")

// pause handles wait and delay, whose argument is in milliseconds.
func pause(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	if ms, ok := integerLiteral(call.Args[0]); ok {
		g.out.EmitStatement("pause " + strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64))
		return nil
	}
	ms, err := g.expr(call.Args[0])
	if err != nil {
		return err
	}
	g.out.EmitStatement(fmt.Sprintf("pause (%s) / 1000.0", ms))
	return nil
}

// textspeed sets the delay per character in milliseconds.
func textspeed(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	ms, err := g.expr(call.Args[0])
	if err != nil {
		return err
	}
	g.out.EmitPython(fmt.Sprintf("preferences.text_cps = 1000 // max(1, %s)", ms))
	return nil
}

func caption(g *Generator, call *ast.Function) error {
	if err := g.argCount(call, 1, 1); err != nil {
		return err
	}
	title, err := g.expr(call.Args[0])
	if err != nil {
		return err
	}
	g.out.EmitPython("config.window_title = " + title)
	return nil
}
