package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression. Each node
// carries its own span; for operator nodes that is the operator token's
// span, not the span of the whole subexpression.
type node struct {
	kind nodeKind

	op   opKind    // nodeOp
	fn   funcKind  // nodeFunc
	con  constKind // nodeConst
	num  float64   // nodeNum
	name string    // nodeName

	span Span

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // leaf, literal value
	nodeName  // leaf, variable reference or assignment target
	nodeConst // leaf, named constant
	nodeAns   // leaf, the session's last result
	nodeFunc  // unary, left is the argument
	nodeOp    // unary or binary depending on op
)

func (k nodeKind) String() string {
	switch k {
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeConst:
		return "Const"
	case nodeAns:
		return "Ans"
	case nodeFunc:
		return "Func"
	case nodeOp:
		return "Op"
	default:
		return "None"
	}
}

// arity is the fixed child count for a node's variant. The parser only
// builds conforming trees; the evaluator checks anyway and reports a
// violation as an internal error.
func (n *node) arity() int {
	switch n.kind {
	case nodeFunc:
		return 1
	case nodeOp:
		switch n.op {
		case opNeg, opFact:
			return 1
		default:
			return 2
		}
	default:
		return 0
	}
}

// children counts the non-nil children in order. A nil left with a
// non-nil right is malformed and reported as 3 so it never matches an
// arity.
func (n *node) children() int {
	switch {
	case n.left == nil && n.right == nil:
		return 0
	case n.left != nil && n.right == nil:
		return 1
	case n.left != nil && n.right != nil:
		return 2
	default:
		return 3
	}
}

// totalSpan is the smallest span covering the node and all of its
// descendants. Runtime errors about a subexpression's value use this;
// errors about an operation itself use the node's own span.
func (n *node) totalSpan() Span {
	s := n.span
	if n.left != nil {
		s = s.union(n.left.totalSpan())
	}
	if n.right != nil {
		s = s.union(n.right.totalSpan())
	}
	return s
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes a fully grouped rendering of the tree, with round and
// square brackets alternating by depth so the grouping stays readable.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.num, 'g', -1, 64))
	case nodeName:
		b.WriteString(n.name)
	case nodeConst:
		b.WriteString(n.con.String())
	case nodeAns:
		b.WriteString("ans")
	case nodeFunc:
		b.WriteString(n.fn.String())
		n.left.fmt(b, !square)
	case nodeOp:
		switch n.op {
		case opNeg:
			b.WriteByte('-')
			n.left.fmt(b, !square)
		case opFact:
			n.left.fmt(b, !square)
			b.WriteByte('!')
		default:
			n.left.fmt(b, !square)
			b.WriteString(" " + n.op.String() + " ")
			n.right.fmt(b, !square)
		}
	default:
		// Invalid nodes use an invalid character.
		b.WriteByte('$')
	}
}
