package compiler

import "strings"

// Line is one logical line: a physical line, or several joined by
// continuation. Number is the 1-based number of its first physical line.
type Line struct {
	Number int
	Text   string
}

// SplitLines splits source into physical lines, dropping the carriage
// return of CRLF endings.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinLines builds the logical lines of a script. With join set, a line
// whose code ends with a comma continues on the next line, as long
// argument lists are commonly written; the trailing comment of a joined
// line is dropped.
func JoinLines(lines []string, join bool) []Line {
	out := make([]Line, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := Line{Number: i + 1, Text: lines[i]}
		for join && continues(line.Text) && i+1 < len(lines) {
			i++
			line.Text = strings.TrimRight(codePart(line.Text), " \t") + " " + strings.TrimLeft(lines[i], " \t")
		}
		out = append(out, line)
	}
	return out
}

func continues(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" || startsProse(trimmed[0]) {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(codePart(line), " \t"), ",")
}

// startsProse reports whether a line starting with c is dialogue, where a
// trailing comma is punctuation.
func startsProse(c byte) bool {
	return c == '^' || c == '`' || c >= 0x80
}

// codePart strips a trailing comment, ignoring semicolons inside string
// literals.
func codePart(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return line[:i]
			}
		}
	}
	return line
}
