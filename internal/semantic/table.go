package semantic

import "ponscripter/grammar"

// LoadTable declares every entry of an external built-in table, replacing
// static entries of the same name. It must run before Prescan so that user
// overrides see the final built-in set.
func (db *Database) LoadTable(table *grammar.Table) {
	for _, entry := range table.Entries {
		db.DeclareBuiltin(entry.Name, tableArity(entry.Arity))
	}
	log.Debugf("loaded %d built-in table entries", len(table.Entries))
}

func tableArity(a *grammar.Arity) Arity {
	switch {
	case a == nil || a.None:
		return NoArguments()
	case a.Variadic:
		return VariadicArity()
	case a.Count != nil:
		return FixedArity(*a.Count)
	default:
		return NoArguments()
	}
}
