package ast

import "ponscripter/token"

func (n *Label) Lexeme() token.Lexeme { return n.Lex }
func (*Label) NodeType() NodeType     { return LABEL }

func (n *Alias) Lexeme() token.Lexeme { return n.Lex }
func (*Alias) NodeType() NodeType     { return ALIAS }

func (n *NumericReference) Lexeme() token.Lexeme { return n.Lex }
func (*NumericReference) NodeType() NodeType     { return NUMERIC_REFERENCE }

func (n *StringReference) Lexeme() token.Lexeme { return n.Lex }
func (*StringReference) NodeType() NodeType     { return STRING_REFERENCE }

func (n *ArrayReference) Lexeme() token.Lexeme { return n.Lex }
func (*ArrayReference) NodeType() NodeType     { return ARRAY_REFERENCE }

func (n *Function) Lexeme() token.Lexeme { return n.Lex }
func (*Function) NodeType() NodeType     { return FUNCTION }

func (n *HexColor) Lexeme() token.Lexeme { return n.Lex }
func (*HexColor) NodeType() NodeType     { return HEX_COLOR }

func (n *StringLiteral) Lexeme() token.Lexeme { return n.Lex }
func (*StringLiteral) NodeType() NodeType     { return STRING_LITERAL }

func (n *NumericLiteral) Lexeme() token.Lexeme { return n.Lex }
func (*NumericLiteral) NodeType() NodeType     { return NUMERIC_LITERAL }

func (n *Comment) Lexeme() token.Lexeme { return n.Lex }
func (*Comment) NodeType() NodeType     { return COMMENT }

func (n *IfStatement) Lexeme() token.Lexeme { return n.Lex }
func (*IfStatement) NodeType() NodeType     { return IF_STATEMENT }

func (n *ForStatement) Lexeme() token.Lexeme { return n.Lex }
func (*ForStatement) NodeType() NodeType     { return FOR_STATEMENT }

func (n *BinaryOperator) Lexeme() token.Lexeme { return n.Lex }
func (*BinaryOperator) NodeType() NodeType     { return BINARY_OPERATOR }

func (n *Unary) Lexeme() token.Lexeme { return n.Lex }
func (*Unary) NodeType() NodeType     { return UNARY }

func (n *JumpfTarget) Lexeme() token.Lexeme { return n.Lex }
func (*JumpfTarget) NodeType() NodeType     { return JUMPF_TARGET }

func (n *Colon) Lexeme() token.Lexeme { return n.Lex }
func (*Colon) NodeType() NodeType     { return COLON }

func (n *Dialogue) Lexeme() token.Lexeme { return n.Lex }
func (*Dialogue) NodeType() NodeType     { return DIALOGUE }

func (n *FormattingTag) Lexeme() token.Lexeme { return n.Lex }
func (*FormattingTag) NodeType() NodeType     { return FORMATTING_TAG }

func (n *ClickWait) Lexeme() token.Lexeme { return n.Lex }
func (*ClickWait) NodeType() NodeType     { return CLICK_WAIT }

func (n *PageWait) Lexeme() token.Lexeme { return n.Lex }
func (*PageWait) NodeType() NodeType     { return PAGE_WAIT }

func (n *LineContinue) Lexeme() token.Lexeme { return n.Lex }
func (*LineContinue) NodeType() NodeType     { return LINE_CONTINUE }

func (n *TextColor) Lexeme() token.Lexeme { return n.Lex }
func (*TextColor) NodeType() NodeType     { return TEXT_COLOR }

func (n *Return) Lexeme() token.Lexeme { return n.Lex }
func (*Return) NodeType() NodeType     { return RETURN }
