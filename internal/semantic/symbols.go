package semantic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"ponscripter/internal/builtins"
	"ponscripter/internal/errors"
)

// OverridePrefix is prepended to a built-in's name when a user subroutine
// shadows it, so the script can still call the original.
const OverridePrefix = "_"

var log = commonlog.GetLogger("ponscripter.semantic")

// Info describes one callable name.
type Info struct {
	Name       string // as first written, for diagnostics
	Arity      Arity
	Builtin    bool
	User       bool // declared with defsub
	Overridden bool // a user subroutine that shadows a built-in
	Line       int  // declaring line for user subroutines
}

// Database maps command and subroutine names to arity information. Names
// are normalised to lower case on insertion and lookup. It is built once
// per script and only read after the pre-scan.
type Database struct {
	entries  map[string]*Info
	warnings []errors.Warning
}

func NewDatabase() *Database {
	return &Database{entries: make(map[string]*Info)}
}

// NewDatabaseWithBuiltins returns a database seeded with the static
// built-in command table.
func NewDatabaseWithBuiltins() *Database {
	db := NewDatabase()
	for name, arity := range builtins.Commands {
		db.DeclareBuiltin(name, arityFromTable(arity))
	}
	return db
}

func arityFromTable(n int) Arity {
	if n == builtins.Variadic {
		return VariadicArity()
	}
	return FixedArity(n)
}

func normalize(name string) string {
	return strings.ToLower(name)
}

func (db *Database) Lookup(name string) (Info, bool) {
	info, ok := db.entries[normalize(name)]
	if !ok {
		return Info{}, false
	}
	return *info, true
}

// Declare sets the arity of name, creating a plain entry when needed.
func (db *Database) Declare(name string, arity Arity) {
	key := normalize(name)
	if info, ok := db.entries[key]; ok {
		info.Arity = arity
		return
	}
	db.entries[key] = &Info{Name: name, Arity: arity}
}

// DeclareBuiltin adds or replaces a built-in command entry.
func (db *Database) DeclareBuiltin(name string, arity Arity) {
	db.entries[normalize(name)] = &Info{Name: name, Arity: arity, Builtin: true}
}

// DeclareSubroutine records a defsub declaration. A later declaration of
// the same name is a warning and leaves the first entry untouched. When the
// name belongs to a built-in, the built-in moves to the override-prefixed
// name first.
func (db *Database) DeclareSubroutine(name string, line int) bool {
	key := normalize(name)
	existing, ok := db.entries[key]
	if ok && existing.User {
		db.warn(errors.WarningDuplicateSubroutine, line,
			fmt.Sprintf("subroutine '%s' already declared on line %d; keeping the first declaration", name, existing.Line))
		return false
	}

	overridden := false
	if ok && existing.Builtin {
		original := *existing
		original.Name = OverridePrefix + existing.Name
		db.entries[OverridePrefix+key] = &original
		overridden = true
		log.Infof("subroutine %s overrides a built-in; original kept as %s", name, original.Name)
	}

	db.entries[key] = &Info{
		Name:       name,
		Arity:      NoArguments(),
		User:       true,
		Overridden: overridden,
		Line:       line,
	}
	return true
}

// SetArity updates a known entry. Unknown names are ignored.
func (db *Database) SetArity(name string, arity Arity) {
	if info, ok := db.entries[normalize(name)]; ok {
		info.Arity = arity
	}
}

func (db *Database) IsUserSubroutine(name string) bool {
	info, ok := db.entries[normalize(name)]
	return ok && info.User
}

// Names returns every callable name in lower case, sorted.
func (db *Database) Names() []string {
	names := make([]string, 0, len(db.entries))
	for key := range db.entries {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// UserSubroutines returns the defsub entries ordered by declaring line.
func (db *Database) UserSubroutines() []Info {
	var subs []Info
	for _, info := range db.entries {
		if info.User {
			subs = append(subs, *info)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Line != subs[j].Line {
			return subs[i].Line < subs[j].Line
		}
		return subs[i].Name < subs[j].Name
	})
	return subs
}

func (db *Database) Warnings() []errors.Warning {
	return db.warnings
}

func (db *Database) warn(code string, line int, message string) {
	w := errors.Warning{Code: code, Line: line, Message: message}
	db.warnings = append(db.warnings, w)
	log.Warning(message, "line", line, "code", code)
}
