package calc_test

import (
	"math"
	"strings"
	"testing"

	"github.com/calclab/calc"
)

func near(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= 1e-12
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]float64
		want float64
	}{
		{"num", "1", nil, 1},
		{"real", "2.5", nil, 2.5},
		{"add", "4+5+6", nil, 15},
		{"sub", "4-5-6", nil, -7},
		{"mul", "4*5*6", nil, 120},
		{"div", "4/5/6", nil, 4.0 / 5.0 / 6.0},
		{"precedence", "2+3*4", nil, 14},
		{"pow-right", "2^3^2", nil, 512},
		{"pow-real", "4^0.5", nil, 2},
		{"pow-neg-exp", "2^-2", nil, 0.25},
		{"neg-pow", "-2^2", nil, -4},
		{"neg", "-5", nil, -5},
		{"double-neg", "--5", nil, 5},
		{"group", "(2+3)*4", nil, 20},
		{"group-kinds", "[2+3]*{4-2}", nil, 10},

		{"fact-zero", "0!", nil, 1},
		{"fact", "5!", nil, 120},
		{"fact-chain", "3!!", nil, 720},

		{"pi", "pi", nil, math.Pi},
		{"pi-alias", "π", nil, math.Pi},
		{"e", "e", nil, math.E},
		{"phi", "phi", nil, 1.6180339887498948482},
		{"phi-alias", "ϕ", nil, 1.6180339887498948482},

		{"abs-delim", "|3-5|", nil, 2},
		{"abs-func", "abs(3-5)", nil, 2},
		{"sqrt", "sqrt(16)", nil, 4},
		{"sqrt-alias", "√(16)", nil, 4},
		{"sin", "sin(pi/2)", nil, 1},
		{"cos", "cos(0)", nil, 1},
		{"tan", "tan(0)", nil, 0},
		{"asin", "asin(1)", nil, math.Pi / 2},
		{"acos", "acos(1)", nil, 0},
		{"atan", "atan(1)", nil, math.Pi / 4},
		{"exp", "exp(1)", nil, math.E},
		{"ln", "ln(e)", nil, 1},
		{"log", "log(1000)", nil, 3},

		{"var", "x*2", map[string]float64{"x": 21}, 42},
		{"vars", "x+y", map[string]float64{"x": 1, "y": 2}, 3},
		{"ans-initial", "ans", nil, 0},

		{"div-zero", "1/0", nil, math.Inf(1)},
		{"div-neg-zero", "-1/0", nil, math.Inf(-1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := calc.NewSession(calc.Vars(c.vars))
			v, ok, err := s.Eval(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if !ok {
				t.Fatalf("evaluating %q produced no value", c.src)
			}
			if !near(v, c.want) {
				t.Errorf("evaluating %q: want %g, got %g", c.src, c.want, v)
			}
		})
	}
}

// TestEvalUntrapped checks the deliberate asymmetry: division by zero
// and out-of-domain trig follow IEEE-754 instead of being domain errors.
func TestEvalUntrapped(t *testing.T) {
	for _, src := range []string{"0/0", "asin(2)", "acos(2)"} {
		t.Run(src, func(t *testing.T) {
			v, ok, err := calc.NewSession().Eval(src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", src, err)
			}
			if !ok || !math.IsNaN(v) {
				t.Errorf("evaluating %q: want NaN, got %g", src, v)
			}
		})
	}
}

func TestEvalDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		span calc.Span
	}{
		{"sqrt", "sqrt(-1)", calc.Span{Start: 5, End: 7}},
		{"sqrt-expr", "sqrt(0-1)", calc.Span{Start: 5, End: 8}},
		{"ln", "ln(0)", calc.Span{Start: 3, End: 4}},
		{"log", "log(0-10)", calc.Span{Start: 4, End: 8}},
		{"fact-frac", "3.5!", calc.Span{Start: 0, End: 3}},
		{"fact-neg", "(0-1)!", calc.Span{Start: 1, End: 4}},
		// Infinite operands must be rejected, not iterated over.
		{"fact-inf", "(1/0)!", calc.Span{Start: 1, End: 4}},
		{"fact-neg-inf", "(0-1/0)!", calc.Span{Start: 1, End: 6}},
		{"fact-fact-inf", "200!!", calc.Span{Start: 0, End: 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := calc.NewSession().Eval(c.src)
			if err == nil {
				t.Fatalf("evaluating %q gave no error", c.src)
			}
			cerr, ok := err.(*calc.Error)
			if !ok {
				t.Fatalf("error %#v is not *calc.Error", err)
			}
			if cerr.Kind != calc.DomainError {
				t.Errorf("evaluating %q: want DomainError, got %v (%v)", c.src, cerr.Kind, cerr)
			}
			if cerr.Span == nil || *cerr.Span != c.span {
				t.Errorf("evaluating %q: want span %v, got %v", c.src, c.span, cerr.Span)
			}
		})
	}
}

func TestEvalUnknownIdentifier(t *testing.T) {
	s := calc.NewSession()
	_, _, err := s.Eval("foo + 1")
	cerr, ok := err.(*calc.Error)
	if !ok {
		t.Fatalf("error %#v is not *calc.Error", err)
	}
	if cerr.Kind != calc.UnknownIdentifier {
		t.Fatalf("want UnknownIdentifier, got %v", cerr.Kind)
	}
	if !strings.Contains(cerr.Desc, "foo") {
		t.Errorf("%q does not name the identifier", cerr.Desc)
	}
	if cerr.Span == nil || *cerr.Span != (calc.Span{Start: 0, End: 3}) {
		t.Errorf("want span (0,3), got %v", cerr.Span)
	}

	// A near-miss of a builtin gets a suggestion.
	_, _, err = s.Eval("sq")
	cerr = err.(*calc.Error)
	if !strings.Contains(cerr.Desc, "sqrt") {
		t.Errorf("%q does not suggest sqrt", cerr.Desc)
	}

	// Session variables are suggestion candidates too.
	s.Set("radius", 2)
	_, _, err = s.Eval("radus")
	cerr = err.(*calc.Error)
	if !strings.Contains(cerr.Desc, "radius") {
		t.Errorf("%q does not suggest radius", cerr.Desc)
	}
}

func TestSessionAssignment(t *testing.T) {
	s := calc.NewSession()

	_, ok, err := s.Eval("x = 5")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("assignment produced a value")
	}
	if v, bound := s.Lookup("x"); !bound || v != 5 {
		t.Errorf("x is %g, %t after assignment", v, bound)
	}

	v, ok, err := s.Eval("x + 1")
	if err != nil || !ok || v != 6 {
		t.Errorf("x + 1 = %g, %t, %v", v, ok, err)
	}

	// Assignment does not touch ans.
	if s.Last() != 6 {
		t.Errorf("ans is %g, want 6", s.Last())
	}
	if _, _, err := s.Eval("y = 100"); err != nil {
		t.Fatal(err)
	}
	if s.Last() != 6 {
		t.Errorf("assignment changed ans to %g", s.Last())
	}

	// Reassignment overwrites.
	if _, _, err := s.Eval("x = x * 2"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Lookup("x"); v != 10 {
		t.Errorf("x is %g after reassignment, want 10", v)
	}

	// A failing right-hand side binds nothing.
	if _, _, err := s.Eval("z = sqrt(0-1)"); err == nil {
		t.Fatal("assignment of a domain error succeeded")
	}
	if _, bound := s.Lookup("z"); bound {
		t.Error("z was bound by a failed assignment")
	}
}

func TestSessionLastResult(t *testing.T) {
	s := calc.NewSession()

	v, ok, err := s.Eval("3 * 2")
	if err != nil || !ok || v != 6 {
		t.Fatalf("3 * 2 = %g, %t, %v", v, ok, err)
	}
	v, ok, err = s.Eval("ans * 10")
	if err != nil || !ok || v != 60 {
		t.Fatalf("ans * 10 = %g, %t, %v", v, ok, err)
	}

	// A failed evaluation leaves ans alone.
	if _, _, err := s.Eval("ln(0)"); err == nil {
		t.Fatal("ln(0) succeeded")
	}
	if s.Last() != 60 {
		t.Errorf("ans is %g after a failed evaluation, want 60", s.Last())
	}
}

func TestSessionOptions(t *testing.T) {
	s := calc.NewSession(calc.Var("x", 2), calc.LastResult(5))
	v, _, err := s.Eval("x * ans")
	if err != nil || v != 10 {
		t.Errorf("x * ans = %g, %v", v, err)
	}
	s = calc.NewSession(calc.Vars(map[string]float64{"a": 1, "b": 2}))
	if got := s.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Names: got %q", got)
	}
}

// TestDeterminism evaluates the same text in identically prepared
// sessions and expects identical outcomes.
func TestDeterminism(t *testing.T) {
	for _, src := range []string{"sin(2)^2 + cos(2)^2", "x/7", "sqrt(0-1)"} {
		a := calc.NewSession(calc.Var("x", 3), calc.LastResult(1))
		b := calc.NewSession(calc.Var("x", 3), calc.LastResult(1))
		va, oka, erra := a.Eval(src)
		vb, okb, errb := b.Eval(src)
		if va != vb || oka != okb {
			t.Errorf("%q: results differ: %g, %t vs %g, %t", src, va, oka, vb, okb)
		}
		if (erra == nil) != (errb == nil) {
			t.Errorf("%q: errors differ: %v vs %v", src, erra, errb)
			continue
		}
		if erra != nil {
			ea, eb := erra.(*calc.Error), errb.(*calc.Error)
			if ea.Kind != eb.Kind || *ea.Span != *eb.Span {
				t.Errorf("%q: errors differ: %v vs %v", src, ea, eb)
			}
		}
	}
}

// TestEvalExpr evaluates one parsed expression against many sessions.
func TestEvalExpr(t *testing.T) {
	e, err := calc.Parse("x^2")
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{0, 1, 4, 9} {
		s := calc.NewSession(calc.Var("x", float64(i)))
		v, _, err := s.EvalExpr(e)
		if err != nil || v != want {
			t.Errorf("x^2 with x=%d: got %g, %v", i, v, err)
		}
	}
}

func TestFactorialOverflow(t *testing.T) {
	v, _, err := calc.NewSession().Eval("200!")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(v, 1) {
		t.Errorf("200! = %g, want +Inf", v)
	}
}
