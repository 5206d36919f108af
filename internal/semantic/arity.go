package semantic

import "fmt"

type ArityKind int

const (
	ArityNone ArityKind = iota
	ArityFixed
	ArityUnknown
)

// Arity describes how many arguments a command or subroutine consumes.
type Arity struct {
	Kind  ArityKind
	Count int
}

func NoArguments() Arity {
	return Arity{Kind: ArityNone}
}

func FixedArity(n int) Arity {
	if n <= 0 {
		return NoArguments()
	}
	return Arity{Kind: ArityFixed, Count: n}
}

func VariadicArity() Arity {
	return Arity{Kind: ArityUnknown}
}

// TakesArguments reports whether a call is followed by an argument list.
func (a Arity) TakesArguments() bool {
	switch a.Kind {
	case ArityUnknown:
		return true
	case ArityFixed:
		return a.Count > 0
	default:
		return false
	}
}

func (a Arity) String() string {
	switch a.Kind {
	case ArityFixed:
		return fmt.Sprintf("%d", a.Count)
	case ArityUnknown:
		return "*"
	default:
		return "none"
	}
}
