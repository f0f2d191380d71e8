package calc

import "math"

// funcKind identifies a builtin function. Functions are unary and their
// names are reserved: the parser resolves them before evaluation.
type funcKind int

const (
	funcSin funcKind = iota
	funcCos
	funcTan
	funcAsin
	funcAcos
	funcAtan
	funcSqrt
	funcAbs
	funcExp
	funcLn
	funcLog
)

func (f funcKind) String() string {
	return [...]string{"sin", "cos", "tan", "asin", "acos", "atan", "sqrt", "abs", "exp", "ln", "log"}[f]
}

// constKind identifies a named mathematical constant.
type constKind int

const (
	constPi constKind = iota
	constE
	constPhi
)

func (c constKind) String() string {
	return [...]string{"pi", "e", "phi"}[c]
}

// value returns the constant to double precision. Phi is the golden
// ratio.
func (c constKind) value() float64 {
	switch c {
	case constPi:
		return math.Pi
	case constE:
		return math.E
	default:
		return 1.6180339887498948482
	}
}

// funcNames and constNames resolve builtin names at parse time. The
// Unicode aliases π and ϕ are letters, so they arrive here through the
// ordinary name scan; √ is rewritten to sqrt by the lexer.
var funcNames = map[string]funcKind{
	"sin":  funcSin,
	"cos":  funcCos,
	"tan":  funcTan,
	"asin": funcAsin,
	"acos": funcAcos,
	"atan": funcAtan,
	"sqrt": funcSqrt,
	"abs":  funcAbs,
	"exp":  funcExp,
	"ln":   funcLn,
	"log":  funcLog,
}

var constNames = map[string]constKind{
	"pi":  constPi,
	"π":   constPi,
	"e":   constE,
	"phi": constPhi,
	"ϕ":   constPhi,
}

// Builtins returns the reserved names: functions, constants, and ans.
// Front ends can use it for completion.
func Builtins() []string {
	return builtinNames()
}

// builtinNames lists every reserved name once, ASCII spellings only,
// sorted. Used for completion and did-you-mean suggestions.
func builtinNames() []string {
	return []string{
		"abs", "acos", "ans", "asin", "atan", "cos", "e", "exp",
		"ln", "log", "phi", "pi", "sin", "sqrt", "tan",
	}
}

// apply evaluates a builtin function on its argument. Sqrt, ln, and log
// trap out-of-domain arguments; the trig functions follow IEEE-754 and
// produce NaN for out-of-domain input instead. argSpan is the argument
// subexpression's total span, used for domain errors.
func apply(f funcKind, arg float64, argSpan Span) (float64, error) {
	switch f {
	case funcSin:
		return math.Sin(arg), nil
	case funcCos:
		return math.Cos(arg), nil
	case funcTan:
		return math.Tan(arg), nil
	case funcAsin:
		return math.Asin(arg), nil
	case funcAcos:
		return math.Acos(arg), nil
	case funcAtan:
		return math.Atan(arg), nil
	case funcAbs:
		return math.Abs(arg), nil
	case funcExp:
		return math.Exp(arg), nil
	case funcSqrt:
		if arg < 0 {
			return 0, errAt(DomainError, argSpan, "cannot take the square root of a negative number")
		}
		return math.Sqrt(arg), nil
	case funcLn:
		if arg <= 0 {
			return 0, errAt(DomainError, argSpan, "cannot take the logarithm of a non-positive number")
		}
		return math.Log(arg), nil
	case funcLog:
		if arg <= 0 {
			return 0, errAt(DomainError, argSpan, "cannot take the logarithm of a non-positive number")
		}
		return math.Log10(arg), nil
	default:
		return 0, errInternal("unknown function kind " + f.String())
	}
}

// factorial computes n! iteratively. The argument must be a finite
// non-negative whole number; there is no overflow check, so large
// inputs produce +Inf. argSpan is the operand's total span.
func factorial(n float64, argSpan Span) (float64, error) {
	// Modf gives a NaN fraction for infinities and NaN, so they fail
	// the whole-number check rather than looping forever.
	if _, frac := math.Modf(n); frac != 0 || n < 0 {
		return 0, errAt(DomainError, argSpan, "the factorial function only accepts positive whole numbers")
	}
	out := 1.0
	for ; n > 0; n-- {
		out *= n
	}
	return out, nil
}
