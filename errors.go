package calc

// ErrorKind classifies everything that can go wrong between a line of
// input and its value.
type ErrorKind int

const (
	errNone ErrorKind = iota

	// lexer
	InvalidNumber
	InvalidChar

	// parser
	MissingOpeningDelimiter
	MissingClosingDelimiter
	MissingFunctionArgument
	ExpectedNumberOrConstant
	UnexpectedEndOfInput
	UnexpectedToken
	InvalidAssignmentTarget

	// evaluator
	UnknownIdentifier
	DomainError

	// InternalError signals a violation of the parser-evaluator contract,
	// e.g. an operator node with the wrong number of children. It is never
	// caused by input and carries no span.
	InternalError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidChar:
		return "InvalidChar"
	case MissingOpeningDelimiter:
		return "MissingOpeningDelimiter"
	case MissingClosingDelimiter:
		return "MissingClosingDelimiter"
	case MissingFunctionArgument:
		return "MissingFunctionArgument"
	case ExpectedNumberOrConstant:
		return "ExpectedNumberOrConstant"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case UnexpectedToken:
		return "UnexpectedToken"
	case InvalidAssignmentTarget:
		return "InvalidAssignmentTarget"
	case UnknownIdentifier:
		return "UnknownIdentifier"
	case DomainError:
		return "DomainError"
	case InternalError:
		return "InternalError"
	default:
		return "None"
	}
}

// Error is the single error taxonomy for the whole pipeline: a
// human-readable description and, when the error concerns a piece of the
// input, the span of that piece. Stages propagate the first Error
// encountered unchanged, so the description and span reach the caller
// verbatim.
type Error struct {
	Kind ErrorKind
	Desc string
	// Span locates the offending input. It is nil for internal errors,
	// which have no meaningful source location.
	Span *Span
}

func (e *Error) Error() string {
	return e.Desc
}

// errAt builds an Error spanning a piece of the input.
func errAt(kind ErrorKind, span Span, desc string) *Error {
	return &Error{Kind: kind, Desc: desc, Span: &span}
}

// errInternal builds a defect-class error with no span.
func errInternal(desc string) *Error {
	return &Error{Kind: InternalError, Desc: "internal error: " + desc}
}
