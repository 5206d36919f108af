package semantic

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"
	"ponscripter/internal/errors"
)

// Declaration patterns are anchored at line start and only cover the
// declaring token, so trailing comments never affect a match.
var (
	defsubPattern   = mustCompile(`(?i)^[ \t]*defsub[ \t]+[A-Za-z_][A-Za-z0-9_]*`)
	labelPattern    = mustCompile(`^[ \t]*\*[A-Za-z0-9_]+`)
	getparamPattern = mustCompile(`(?i)(^|:)[ \t]*getparam[ \t]`)
	returnPattern   = mustCompile(`(?i)(^|:)[ \t]*return[ \t]*(;.*)?$`)
)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(fmt.Errorf("failed to compile %q: %w", pattern, err))
	}
	return re
}

// Prescan scans the whole script for defsub declarations and infers each
// subroutine's arity from the body following its label: the first getparam
// fixes the count, a bare return before any getparam means no arguments.
// Every inconsistency is a warning; the pre-scan never fails.
func (db *Database) Prescan(lines []string) {
	declared := make(map[string]string) // lower-case name -> name as written
	var order []string

	for i, line := range lines {
		loc := defsubPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		fields := strings.Fields(line[loc[0]:loc[1]])
		name := fields[len(fields)-1]
		if db.DeclareSubroutine(name, i+1) {
			declared[normalize(name)] = name
			order = append(order, normalize(name))
		}
	}
	if len(declared) == 0 {
		return
	}

	labels := make(map[string]int)
	for i, line := range lines {
		loc := labelPattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		name := normalize(strings.TrimLeft(strings.TrimSpace(line[loc[0]:loc[1]]), "*"))
		if _, seen := labels[name]; !seen {
			labels[name] = i
		}
	}

	for _, key := range order {
		name := declared[key]
		start, ok := labels[key]
		if !ok {
			db.warn(errors.WarningMissingLabel, 0,
				fmt.Sprintf("subroutine '%s' has no label; treating it as taking no arguments", name))
			continue
		}
		db.SetArity(name, db.inferArity(name, lines, start))
	}
}

func (db *Database) inferArity(name string, lines []string, start int) Arity {
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if loc := getparamPattern.FindStringIndex(line); loc != nil {
			return FixedArity(countParams(line[loc[1]:]))
		}
		if returnPattern.MatchString(line) {
			return NoArguments()
		}
	}
	db.warn(errors.WarningMissingArity, start+1,
		fmt.Sprintf("no getparam or return found after label '%s'; treating it as taking no arguments", name))
	return NoArguments()
}

// countParams counts the comma-separated targets of a getparam, stopping at
// a comment or the next colon-separated statement.
func countParams(rest string) int {
	if i := strings.IndexAny(rest, ";:"); i >= 0 {
		rest = rest[:i]
	}
	count := 0
	for _, part := range strings.Split(rest, ",") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}
