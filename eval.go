package calc

import (
	"math"
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Eval lexes, parses, and evaluates one line of input against the
// session. The bool result reports whether there is a value to display:
// it is false for assignments, which bind a variable instead of
// producing a value. On a successful non-assignment evaluation the
// session's last result is updated; a failed evaluation leaves the
// session unchanged.
func (s *Session) Eval(text string) (float64, bool, error) {
	e, err := Parse(text)
	if err != nil {
		return 0, false, err
	}
	return s.EvalExpr(e)
}

// EvalExpr evaluates an already-parsed expression against the session.
func (s *Session) EvalExpr(e *Expr) (float64, bool, error) {
	n := e.n
	if n.kind == nodeOp && n.op == opAssign {
		if n.children() != 2 {
			return 0, false, errInternal("assignment node is not binary")
		}
		if n.left.kind != nodeName {
			return 0, false, errInternal("assignment target is not a name")
		}
		// The name is bound only after the right side evaluates.
		v, err := s.eval(n.right)
		if err != nil {
			return 0, false, err
		}
		s.vars[n.left.name] = v
		return 0, false, nil
	}
	v, err := s.eval(n)
	if err != nil {
		return 0, false, err
	}
	s.last = v
	return v, true, nil
}

// eval computes a subtree's value. Division by zero and out-of-domain
// trig arguments follow IEEE-754 and yield inf or NaN; sqrt, ln, log and
// factorial trap their preconditions as domain errors instead.
func (s *Session) eval(n *node) (float64, error) {
	if got, want := n.children(), n.arity(); got != want {
		return 0, errInternal(n.kind.String() + " node has " + strconv.Itoa(got) + " children, want " + strconv.Itoa(want))
	}
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeConst:
		return n.con.value(), nil
	case nodeAns:
		return s.last, nil
	case nodeName:
		v, ok := s.vars[n.name]
		if !ok {
			desc := "unknown identifier: " + n.name
			if hint := s.nearest(n.name); hint != "" {
				desc += " (did you mean '" + hint + "'?)"
			}
			return 0, errAt(UnknownIdentifier, n.totalSpan(), desc)
		}
		return v, nil
	case nodeFunc:
		arg, err := s.eval(n.left)
		if err != nil {
			return 0, err
		}
		return apply(n.fn, arg, n.left.totalSpan())
	case nodeOp:
		return s.evalOp(n)
	default:
		return 0, errInternal("invalid node kind " + strconv.Itoa(int(n.kind)))
	}
}

func (s *Session) evalOp(n *node) (float64, error) {
	switch n.op {
	case opNeg:
		v, err := s.eval(n.left)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case opFact:
		v, err := s.eval(n.left)
		if err != nil {
			return 0, err
		}
		return factorial(v, n.left.totalSpan())
	case opAssign:
		// EvalExpr handles assignment at the root; one below the root
		// cannot come from the parser.
		return 0, errInternal("assignment below expression root")
	}
	l, err := s.eval(n.left)
	if err != nil {
		return 0, err
	}
	r, err := s.eval(n.right)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case opAdd:
		return l + r, nil
	case opSub:
		return l - r, nil
	case opMul:
		return l * r, nil
	case opDiv:
		return l / r, nil
	case opPow:
		return math.Pow(l, r), nil
	default:
		return 0, errInternal("invalid operator " + n.op.String())
	}
}

// nearest finds the closest builtin or session variable name to a
// misspelled identifier, or "" if nothing is plausibly close.
func (s *Session) nearest(name string) string {
	cand := append(builtinNames(), s.Names()...)
	ranks := fuzzy.RankFindFold(name, cand)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
