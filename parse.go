package calc

import "sort"

// The parser is recursive descent over the following grammar, lowest to
// highest precedence:
//
//	Expression = Name '=' Equation | Equation
//	Equation   = Product { ('+' | '-') Product }
//	Product    = Factor { ('*' | '/') Factor }
//	Factor     = '-' Factor | Exponent [ '^' Factor ]
//	Exponent   = Value { '!' }
//	Value      = Function '(' Equation ')'
//	           | Constant | Name | 'ans'
//	           | '(' Equation ')' | '|' Equation '|'
//	           | NumberLiteral
//
// Addition, subtraction, multiplication and division are
// left-associative; exponentiation is right-associative; unary minus
// binds between the two. The lexer emits every '-' as subtraction, so
// deciding that a minus is a negation happens here, in Factor.
//
// Any of (), [] and {} group an equation, but the closing delimiter must
// come from the same family as the opening one. The |...| delimiter is
// tracked with its own nesting counter so that a stray ')' cannot close
// an open '|' or vice versa.

// Expr is a parsed expression that can be evaluated against a session.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names the expression reads.
	names []string
}

// Parse lexes and parses a single line of input. The returned expression
// is immutable and may be evaluated against any number of sessions.
func Parse(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	n, err := parse(toks)
	if err != nil {
		return nil, err
	}
	e := Expr{n: n}
	seen := make(map[string]bool)
	root := n
	if root.kind == nodeOp && root.op == opAssign {
		// The assignment target is written, not read.
		root = root.right
	}
	root.walkNames(seen)
	for k := range seen {
		e.names = append(e.names, k)
	}
	sort.Strings(e.names)
	return &e, nil
}

func (n *node) walkNames(seen map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeName {
		seen[n.name] = true
	}
	n.left.walkNames(seen)
	n.right.walkNames(seen)
}

// Names returns the variable names the expression reads, sorted. An
// assignment's target is not included.
func (e *Expr) Names() []string {
	return append([]string(nil), e.names...)
}

// String renders the parse tree fully grouped, with round and square
// brackets alternating by depth.
func (e *Expr) String() string {
	return e.n.String()
}

// parse builds the AST for a complete token sequence.
func parse(toks []token) (*node, error) {
	p := parser{toks: toks}
	if len(toks) > 0 {
		p.endPos = toks[len(toks)-1].span.End
	}
	return p.parseexpression()
}

type parser struct {
	toks []token
	pos  int
	// delims is the stack of open grouping delimiters, used to match
	// close kinds and to tell a stray close from a nested one.
	delims []delimKind
	// absLevel counts open |...| delimiters, separately from delims.
	absLevel int
	// endPos is the rune offset just past the last token, for the
	// zero-width span of end-of-input errors.
	endPos int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// next consumes the current token. Callers peek first.
func (p *parser) next() token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

// nextOpIs reports whether the next token is an operator of one of the
// given kinds.
func (p *parser) nextOpIs(ops ...opKind) bool {
	tok, ok := p.peek()
	if !ok || tok.kind != tokenOp {
		return false
	}
	for _, op := range ops {
		if tok.op == op {
			return true
		}
	}
	return false
}

// parseexpression parses a whole input line: an equation, optionally an
// assignment to a bare non-builtin name. Anything left over after that
// is an error.
func (p *parser) parseexpression() (*node, error) {
	lhs, err := p.parseequation()
	if err != nil {
		return nil, err
	}
	if p.nextOpIs(opAssign) {
		tok := p.next()
		// Builtin names resolve to function, constant, or ans nodes
		// during parsing, so a name node here is always assignable.
		if lhs.kind != nodeName {
			return nil, errAt(InvalidAssignmentTarget, lhs.totalSpan(), "cannot assign to this expression")
		}
		rhs, err := p.parseequation()
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: nodeOp, op: opAssign, span: tok.span, left: lhs, right: rhs}
	}
	if tok, ok := p.peek(); ok {
		return nil, errAt(UnexpectedToken, tok.span, "expected operator or end of input")
	}
	return lhs, nil
}

func (p *parser) parseequation() (*node, error) {
	lhs, err := p.parseproduct()
	if err != nil {
		return nil, err
	}
	for p.nextOpIs(opAdd, opSub) {
		tok := p.next()
		rhs, err := p.parseproduct()
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: nodeOp, op: tok.op, span: tok.span, left: lhs, right: rhs}
	}
	// A close delimiter with nothing open cannot be satisfied by any
	// caller, so report it here, where the nesting levels are known.
	if tok, ok := p.peek(); ok {
		switch {
		case tok.kind == tokenClose && len(p.delims) == 0:
			return nil, errAt(MissingOpeningDelimiter, tok.span, "missing opening delimiter")
		case tok.kind == tokenAbs && p.absLevel == 0:
			return nil, errAt(MissingOpeningDelimiter, tok.span, "missing opening absolute value delimiter")
		}
	}
	return lhs, nil
}

func (p *parser) parseproduct() (*node, error) {
	lhs, err := p.parsefactor()
	if err != nil {
		return nil, err
	}
	for p.nextOpIs(opMul, opDiv) {
		tok := p.next()
		rhs, err := p.parsefactor()
		if err != nil {
			return nil, err
		}
		lhs = &node{kind: nodeOp, op: tok.op, span: tok.span, left: lhs, right: rhs}
	}
	return lhs, nil
}

func (p *parser) parsefactor() (*node, error) {
	// The lexer only ever emits subtraction; a minus where a factor is
	// expected is a negation.
	if p.nextOpIs(opSub) {
		tok := p.next()
		rhs, err := p.parsefactor()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeOp, op: opNeg, span: tok.span, left: rhs}, nil
	}
	lhs, err := p.parseexponent()
	if err != nil {
		return nil, err
	}
	if p.nextOpIs(opPow) {
		// Right-associative: the rhs is a full factor, so 2^3^2 is
		// 2^(3^2) and 2^-3 negates the exponent.
		tok := p.next()
		rhs, err := p.parsefactor()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeOp, op: opPow, span: tok.span, left: lhs, right: rhs}, nil
	}
	return lhs, nil
}

func (p *parser) parseexponent() (*node, error) {
	out, err := p.parsevalue()
	if err != nil {
		return nil, err
	}
	for p.nextOpIs(opFact) {
		tok := p.next()
		out = &node{kind: nodeOp, op: opFact, span: tok.span, left: out}
	}
	return out, nil
}

// parsevalue parses the Value production: a literal, a named thing, or a
// delimited group.
func (p *parser) parsevalue() (*node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, errAt(UnexpectedEndOfInput, Span{p.endPos, p.endPos}, "unexpected end of input")
	}
	p.next()
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, num: tok.num, span: tok.span}, nil
	case tokenName:
		return p.parsename(tok)
	case tokenOpen:
		p.delims = append(p.delims, tok.delim)
		eq, err := p.parseequation()
		if err != nil {
			return nil, err
		}
		end, ok := p.peek()
		if !ok || end.kind != tokenClose {
			return nil, errAt(MissingClosingDelimiter, tok.span, "missing closing delimiter")
		}
		if end.delim != tok.delim {
			return nil, errAt(MissingClosingDelimiter, end.span,
				"mismatched delimiter: '"+string(tok.delim.open())+"' closed by '"+string(end.delim.close())+"'")
		}
		p.next()
		p.delims = p.delims[:len(p.delims)-1]
		return eq, nil
	case tokenAbs:
		p.absLevel++
		eq, err := p.parseequation()
		if err != nil {
			return nil, err
		}
		end, ok := p.peek()
		if !ok || end.kind != tokenAbs {
			return nil, errAt(MissingClosingDelimiter, tok.span, "missing closing absolute value delimiter")
		}
		p.next()
		p.absLevel--
		return &node{
			kind: nodeFunc,
			fn:   funcAbs,
			span: Span{tok.span.Start, end.span.End},
			left: eq,
		}, nil
	case tokenClose:
		if len(p.delims) == 0 {
			return nil, errAt(MissingOpeningDelimiter, tok.span, "missing opening delimiter")
		}
		return nil, errAt(ExpectedNumberOrConstant, tok.span, "expected number or constant")
	default:
		return nil, errAt(ExpectedNumberOrConstant, tok.span, "expected number or constant")
	}
}

// parsename resolves a name token. Builtin functions, constants and ans
// are fixed at parse time; everything else is a variable reference whose
// existence is the evaluator's problem.
func (p *parser) parsename(tok token) (*node, error) {
	if f, ok := funcNames[tok.name]; ok {
		if nt, ok := p.peek(); !ok || nt.kind != tokenOpen {
			return nil, errAt(MissingFunctionArgument, tok.span, "missing opening delimiter after function")
		}
		// parsevalue consumes the delimited argument group.
		arg, err := p.parsevalue()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeFunc, fn: f, span: tok.span, left: arg}, nil
	}
	if c, ok := constNames[tok.name]; ok {
		return &node{kind: nodeConst, con: c, span: tok.span}, nil
	}
	if tok.name == "ans" {
		return &node{kind: nodeAns, span: tok.span}, nil
	}
	return &node{kind: nodeName, name: tok.name, span: tok.span}, nil
}
