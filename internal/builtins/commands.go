package builtins

import "strings"

// Variadic marks a command whose argument count is not fixed. Commands with
// optional trailing arguments are listed as variadic; their generator
// handlers check the accepted range.
const Variadic = -1

// Commands maps built-in command names to their arity. Zero means the
// command takes no arguments, so the lexer does not switch into expression
// mode after it.
var Commands = map[string]int{
	// Variables and arithmetic
	"mov":      2,
	"movl":     Variadic,
	"add":      2,
	"sub":      2,
	"mul":      2,
	"div":      2,
	"mod":      2,
	"inc":      1,
	"dec":      1,
	"numalias": 2,
	"stralias": 2,
	"itoa":     2,
	"atoi":     2,
	"len":      2,
	"mid":      4,
	"rnd":      2,
	"rnd2":     3,
	"cmp":      3,
	"dim":      1,
	"intlimit": 3,

	// Control flow
	"defsub":   1,
	"gosub":    1,
	"goto":     1,
	"jumpf":    0,
	"jumpb":    0,
	"return":   Variadic,
	"next":     0,
	"getparam": Variadic,
	"skip":     1,
	"end":      0,
	"game":     0,
	"reset":    0,

	// Timing and input
	"wait":    1,
	"delay":   1,
	"click":   0,
	"btndef":  1,
	"btn":     7,
	"btnwait": 1,
	"spbtn":   2,

	// Sprites and screen
	"lsp":      Variadic,
	"lsph":     Variadic,
	"csp":      Variadic,
	"vsp":      2,
	"msp":      Variadic,
	"amsp":     Variadic,
	"bg":       Variadic,
	"cl":       2,
	"ld":       Variadic,
	"print":    Variadic,
	"effect":   Variadic,
	"quake":    2,
	"quakex":   2,
	"quakey":   2,
	"monocro":  1,
	"nega":     1,
	"humanz":   1,

	// Text window
	"textclear":       0,
	"br":              0,
	"texton":          0,
	"windowback":      0,
	"textoff":         0,
	"erasetextwindow": 1,
	"setwindow":       Variadic,
	"menusetwindow":   Variadic,
	"windoweffect":    Variadic,
	"textspeed":       1,
	"defaultspeed":    3,
	"clickstr":        2,
	"lookbackflush":   0,
	"voicedelay":      1,

	// Audio
	"bgm":       1,
	"mp3":       1,
	"mp3loop":   1,
	"playstop":  0,
	"stop":      0,
	"dwave":     2,
	"dwaveloop": 2,
	"dwavestop": 1,

	// Menus and system
	"select":      Variadic,
	"selgosub":    Variadic,
	"selnum":      Variadic,
	"caption":     1,
	"saveon":      0,
	"saveoff":     0,
	"savename":    3,
	"versionstr":  2,
	"rmode":       1,
	"automode":    0,
	"filelog":     0,
	"labellog":    0,
	"globalon":    0,
	"nsa":         0,
	"rubyon":      0,
	"rubyoff":     0,
	"definereset": 0,

	// Ponscripter font handling
	"h_mapfont":    2,
	"h_rendering":  Variadic,
	"h_textextent": Variadic,
	"h_fontstyle":  1,
}

// Keywords are words the lexer and parser treat structurally instead of
// looking them up as commands. The value is true for the keywords that are
// followed by an operand rather than a statement.
var Keywords = map[string]bool{
	"if":    false,
	"notif": false,
	"for":   false,
	"to":    true,
	"step":  true,
}

// IsKeyword reports whether word is a structural keyword, ignoring case.
func IsKeyword(word string) bool {
	_, ok := Keywords[strings.ToLower(word)]
	return ok
}

// TakesOperand reports whether an expression follows the keyword word.
func TakesOperand(word string) bool {
	return Keywords[strings.ToLower(word)]
}
