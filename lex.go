package calc

import (
	"strconv"
	"strings"
	"unicode"
)

type token struct {
	kind tokenKind
	// op is set for tokenOp.
	op opKind
	// num is set for tokenNum.
	num float64
	// name is set for tokenName, folded to lowercase.
	name string
	// delim is set for tokenOpen and tokenClose.
	delim delimKind
	span  Span
}

func (t token) String() string {
	switch t.kind {
	case tokenName:
		return t.name + "@" + t.span.String()
	case tokenNum:
		return strconv.FormatFloat(t.num, 'g', -1, 64) + "@" + t.span.String()
	case tokenOp:
		return t.op.String() + "@" + t.span.String()
	default:
		return t.kind.String() + "@" + t.span.String()
	}
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenName is an identifier, resolved later as a function, constant,
	// variable, or ans.
	tokenName
	// tokenNum is a number literal.
	tokenNum
	// tokenOp is an operator. The lexer always emits - as opSub; the
	// parser decides whether it is a negation.
	tokenOp
	// tokenOpen and tokenClose are grouping delimiters. Open and close
	// kinds must match, which the parser checks via the delim tag.
	tokenOpen
	tokenClose
	// tokenAbs is the absolute-value delimiter |.
	tokenAbs
)

func (k tokenKind) String() string {
	switch k {
	case tokenName:
		return "Name"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenAbs:
		return "Abs"
	default:
		return "None"
	}
}

type opKind int

const (
	opNone opKind = iota
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opFact
	// opNeg is never lexed; the parser rewrites a prefix opSub to it.
	opNeg
	opAssign
)

func (k opKind) String() string {
	switch k {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opPow:
		return "^"
	case opFact:
		return "!"
	case opNeg:
		return "neg"
	case opAssign:
		return "="
	default:
		return "none"
	}
}

// delimKind is the grouping-bracket family. (), [] and {} are
// interchangeable as grouping, but an open delimiter must be closed by
// one of its own family.
type delimKind int

const (
	delimParen delimKind = iota
	delimBracket
	delimBrace
)

func (k delimKind) open() rune  { return [...]rune{'(', '[', '{'}[k] }
func (k delimKind) close() rune { return [...]rune{')', ']', '}'}[k] }

// lex scans an input line into tokens tagged with their rune-offset
// spans. Empty input yields no tokens and no error.
func lex(input string) ([]token, error) {
	l := lexer{src: []rune(input)}
	var out []token
	for {
		l.skipSpace()
		r, ok := l.peek()
		if !ok {
			return out, nil
		}
		var (
			tok token
			err error
		)
		switch {
		case unicode.IsDigit(r):
			tok, err = l.scanNum()
		case unicode.IsLetter(r):
			tok = l.scanName()
		default:
			tok, err = l.scanSymbol()
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
}

type lexer struct {
	src []rune
	pos int
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
}

// scanNum consumes a run of digits and decimal points. The run must form
// a valid floating-point literal.
func (l *lexer) scanNum() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && (unicode.IsDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	span := Span{start, l.pos}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, errAt(InvalidNumber, span, "invalid number: "+text)
	}
	return token{kind: tokenNum, num: v, span: span}, nil
}

// scanName consumes a run of letters. Names are folded to lowercase;
// whether a name is a builtin or a variable is decided later.
func (l *lexer) scanName() token {
	start := l.pos
	for l.pos < len(l.src) && unicode.IsLetter(l.src[l.pos]) {
		l.pos++
	}
	return token{
		kind: tokenName,
		name: strings.ToLower(string(l.src[start:l.pos])),
		span: Span{start, l.pos},
	}
}

func (l *lexer) scanSymbol() (token, error) {
	r := l.src[l.pos]
	l.pos++
	tok := token{span: Span{l.pos - 1, l.pos}}
	switch r {
	case '+':
		tok.kind, tok.op = tokenOp, opAdd
	case '-':
		tok.kind, tok.op = tokenOp, opSub
	case '*', '×':
		tok.kind, tok.op = tokenOp, opMul
	case '/', '÷':
		tok.kind, tok.op = tokenOp, opDiv
	case '^':
		tok.kind, tok.op = tokenOp, opPow
	case '!':
		tok.kind, tok.op = tokenOp, opFact
	case '=':
		tok.kind, tok.op = tokenOp, opAssign
	case '(':
		tok.kind, tok.delim = tokenOpen, delimParen
	case '[':
		tok.kind, tok.delim = tokenOpen, delimBracket
	case '{':
		tok.kind, tok.delim = tokenOpen, delimBrace
	case ')':
		tok.kind, tok.delim = tokenClose, delimParen
	case ']':
		tok.kind, tok.delim = tokenClose, delimBracket
	case '}':
		tok.kind, tok.delim = tokenClose, delimBrace
	case '|':
		tok.kind = tokenAbs
	case '√':
		// √ is a symbol rune, not a letter, so the name scanner never
		// sees it. It is interchangeable with sqrt.
		tok.kind, tok.name = tokenName, "sqrt"
	default:
		return token{}, errAt(InvalidChar, tok.span, "invalid character: "+strconv.QuoteRune(r))
	}
	return tok, nil
}
