package ast

import (
	"fmt"
	"strings"
)

// Dump renders one line's forest, one top-level node per line.
func Dump(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(fmt.Sprintf("%-16s %s\n", typeName(n.NodeType()), n.String()))
	}
	return b.String()
}

var typeNames = map[NodeType]string{
	LABEL:             "Label",
	ALIAS:             "Alias",
	NUMERIC_REFERENCE: "NumericRef",
	STRING_REFERENCE:  "StringRef",
	ARRAY_REFERENCE:   "ArrayRef",
	FUNCTION:          "Function",
	HEX_COLOR:         "HexColor",
	STRING_LITERAL:    "String",
	NUMERIC_LITERAL:   "Number",
	COMMENT:           "Comment",
	IF_STATEMENT:      "If",
	FOR_STATEMENT:     "For",
	BINARY_OPERATOR:   "Binary",
	UNARY:             "Unary",
	JUMPF_TARGET:      "JumpfTarget",
	COLON:             "Colon",
	DIALOGUE:          "Dialogue",
	FORMATTING_TAG:    "FormattingTag",
	CLICK_WAIT:        "ClickWait",
	PAGE_WAIT:         "PageWait",
	LINE_CONTINUE:     "LineContinue",
	TEXT_COLOR:        "TextColor",
	RETURN:            "Return",
}

func typeName(t NodeType) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

func (t NodeType) String() string {
	return typeName(t)
}

func (n *Label) String() string {
	return "*" + n.Name
}

func (n *Alias) String() string {
	return n.Name
}

func (n *NumericReference) String() string {
	return "%" + n.Inner.String()
}

func (n *StringReference) String() string {
	return "$" + n.Inner.String()
}

func (n *ArrayReference) String() string {
	var b strings.Builder
	b.WriteString("?")
	b.WriteString(n.Name.String())
	for _, idx := range n.Indexes {
		b.WriteString("[" + idx.String() + "]")
	}
	return b.String()
}

func (n *Function) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

func (n *HexColor) String() string {
	return n.Lex.Text
}

func (n *StringLiteral) String() string {
	return n.Raw
}

func (n *NumericLiteral) String() string {
	return n.Raw
}

func (n *Comment) String() string {
	return ";" + n.Text
}

func (n *IfStatement) String() string {
	keyword := "if"
	if n.Inverted {
		keyword = "notif"
	}
	return fmt.Sprintf("%s %s", keyword, n.Condition.String())
}

func (n *ForStatement) String() string {
	s := fmt.Sprintf("for %s = %s to %s", n.Variable, n.Start, n.End)
	if n.Step != nil {
		s += fmt.Sprintf(" step %s", n.Step)
	}
	return s
}

// String fully parenthesises the operation so that the tree shape, and
// therefore precedence, is visible.
func (n *BinaryOperator) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n *Unary) String() string {
	return n.Op + n.Inner.String()
}

func (n *JumpfTarget) String() string { return "~" }

func (n *Colon) String() string { return ":" }

func (n *Dialogue) String() string {
	return fmt.Sprintf("%q", n.Text)
}

func (n *FormattingTag) String() string {
	return "~" + n.Tag + "~"
}

func (n *ClickWait) String() string { return "@" }

func (n *PageWait) String() string { return `\` }

func (n *LineContinue) String() string { return "/" }

func (n *TextColor) String() string {
	return n.Color
}

func (n *Return) String() string {
	if n.Destination != nil {
		return "return " + n.Destination.String()
	}
	return "return"
}
