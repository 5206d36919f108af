package errors

// Error codes for the ponscripter translator.
//
// Error code ranges:
// L0001-L0099: Lexing errors
// P0001-P0099: Parsing errors
// A0001-A0099: Argument count errors
// G0001-G0099: Generation errors
// W0001-W0099: Warnings

const (
	// L0001: A character that starts no lexeme
	ErrorUnexpectedCharacter = "L0001"

	// L0002: String literal without its closing delimiter
	ErrorUnterminatedString = "L0002"

	// L0003: Bare word that is neither a keyword nor a known command
	ErrorUnknownKeyword = "L0003"

	// P0001: Lexeme that cannot start a top-level construct
	ErrorUnexpectedLexeme = "P0001"

	// P0002: Lexeme of the wrong kind or value where a specific one is required
	ErrorExpectedLexeme = "P0002"

	// P0003: Bracket or parenthesis left open
	ErrorMissingBracket = "P0003"

	// P0004: for-loop header out of order
	ErrorMalformedFor = "P0004"

	// P0005: Line ended where an expression was required
	ErrorUnexpectedEnd = "P0005"

	// P0006: Word used as a command without arity information
	ErrorUnknownCommand = "P0006"

	// A0001: Handler received the wrong number of arguments
	ErrorArgumentCount = "A0001"

	// G0001: Construct the generator deliberately does not lower
	ErrorUnsupported = "G0001"

	// G0002: Argument of the wrong shape for a command
	ErrorInvalidArgument = "G0002"

	// Warning codes

	// W0001: Subroutine declared more than once
	WarningDuplicateSubroutine = "W0001"

	// W0002: Subroutine arity could not be determined
	WarningMissingArity = "W0002"

	// W0003: next without an open for-loop, or loops left open
	WarningUnbalancedLoop = "W0003"

	// W0004: Built-in command without a generator handler
	WarningUnhandledCommand = "W0004"

	// W0005: Dialogue started from a single quote
	WarningSuspiciousText = "W0005"

	// W0006: Low control character in the source
	WarningControlCharacter = "W0006"

	// W0007: return with an empty call stack
	WarningReturnStackEmpty = "W0007"

	// W0008: Alias used before any numalias/stralias defined it
	WarningUndefinedAlias = "W0008"

	// W0009: jumpb before any jump target marker
	WarningMissingJumpTarget = "W0009"

	// W0010: defsub without a matching label
	WarningMissingLabel = "W0010"

	// W0011: the same label declared twice
	WarningDuplicateLabel = "W0011"
)
