package dring_test

import (
	"errors"
	"testing"

	"github.com/rldelgado/dalgebra/dring"
)

func jetRing(t *testing.T, dvars ...string) *dring.Ring {
	t.Helper()
	r, err := dring.DifferentialPolynomialRing(dring.Rationals(), dvars...)
	if err != nil {
		t.Fatalf("DifferentialPolynomialRing: %v", err)
	}
	return r
}

func xRing(t *testing.T) *dring.Ring {
	t.Helper()
	qx, err := dring.PolynomialRing(dring.Rationals(), "x")
	if err != nil {
		t.Fatalf("PolynomialRing: %v", err)
	}
	dx, err := dring.NewDifferentialRing(qx, map[string]dring.Expr{"x": dring.N(1)})
	if err != nil {
		t.Fatalf("NewDifferentialRing: %v", err)
	}
	return dx
}

func mustGen(t *testing.T, r *dring.Ring, name string) dring.Element {
	t.Helper()
	el, err := r.Gen(name)
	if err != nil {
		t.Fatalf("Gen(%s): %v", name, err)
	}
	return el
}

// ============================================================
// Element arithmetic tests
// ============================================================

func TestElement_Add_CrossRing(t *testing.T) {
	x := mustGen(t, xRing(t), "x")
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	sum := x.Add(u)
	if sum.String() != "u_0[0] + x" {
		t.Errorf("want 'u_0[0] + x', got %s", sum.String())
	}
	if sum.Ring().String() != "D(QQ[x]{u_0})" {
		t.Errorf("want D(QQ[x]{u_0}), got %s", sum.Ring().String())
	}
}

func TestElement_Sub_Self(t *testing.T) {
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	if !u.Sub(u).IsZero() {
		t.Errorf("u - u should be zero")
	}
}

func TestElement_PowInt(t *testing.T) {
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	if got := u.PowInt(3).String(); got != "u_0[0]^3" {
		t.Errorf("want u_0[0]^3, got %s", got)
	}
	if got := u.PowInt(0).String(); got != "1" {
		t.Errorf("u^0 should be 1, got %s", got)
	}
}

func TestElement_Div_Rationals(t *testing.T) {
	qq := dring.Rationals()
	got := qq.Int(1).Div(qq.Int(2))
	if got.String() != "1/2" {
		t.Errorf("want 1/2, got %s", got.String())
	}
}

func TestElement_Div_ByGenerator(t *testing.T) {
	fr := xRing(t).FractionField()
	x := mustGen(t, fr, "x")
	got := fr.One().Div(x)
	if got.String() != "x^-1" {
		t.Errorf("want x^-1, got %s", got.String())
	}
}

// ============================================================
// Element derivative tests
// ============================================================

func TestElement_Derivative_Leibniz(t *testing.T) {
	x := mustGen(t, xRing(t), "x")
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	got := x.PowInt(2).Mul(u).Derivative()
	if got.String() != "2*u_0[0]*x + u_0[1]*x^2" {
		t.Errorf("unexpected derivative: %s", got.String())
	}
}

func TestElement_DerivativeN(t *testing.T) {
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	if got := u.DerivativeN(3).String(); got != "u_0[3]" {
		t.Errorf("want u_0[3], got %s", got)
	}
}

// ============================================================
// Element substitution tests
// ============================================================

func TestElement_Substitute_Generator(t *testing.T) {
	dx := xRing(t)
	x := mustGen(t, dx, "x")
	p := x.PowInt(2).Add(dx.One())
	got, err := p.Substitute(map[string]dring.Element{"x": dring.Rationals().Int(2)})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if got.String() != "5" {
		t.Errorf("x^2+1 at x=2 should be 5, got %s", got.String())
	}
}

func TestElement_Substitute_JetLadder(t *testing.T) {
	// u*u' with u = x^2 becomes x^2 * 2x = 2x^3.
	uring := jetRing(t, "u_0")
	h := mustGen(t, uring, "u_0").Mul(mustGen(t, uring, "u_0[1]"))
	x := mustGen(t, xRing(t), "x")
	got, err := h.Substitute(map[string]dring.Element{"u_0": x.PowInt(2)})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if got.String() != "2*x^3" {
		t.Errorf("want 2*x^3, got %s", got.String())
	}
	if !got.Ring().IsDifferential() {
		t.Errorf("result ring should stay differential")
	}
}

func TestElement_Substitute_ZeroValue(t *testing.T) {
	uring := jetRing(t, "u_0")
	u1 := mustGen(t, uring, "u_0[1]")
	got, err := u1.Substitute(map[string]dring.Element{"u_0": dring.Rationals().Zero()})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("derivative of the zero value should be zero, got %s", got.String())
	}
}

func TestElement_Substitute_NonDifferentialValue(t *testing.T) {
	uring := jetRing(t, "u_0")
	u1 := mustGen(t, uring, "u_0[1]")
	qy, _ := dring.PolynomialRing(dring.Rationals(), "y")
	y := mustGen(t, qy, "y")
	_, err := u1.Substitute(map[string]dring.Element{"u_0": y})
	if !errors.Is(err, dring.ErrNotDifferential) {
		t.Errorf("want ErrNotDifferential, got %v", err)
	}
}

func TestElement_Substitute_Unknown(t *testing.T) {
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	_, err := u.Substitute(map[string]dring.Element{"v": dring.Rationals().One()})
	if !errors.Is(err, dring.ErrUnknownGenerator) {
		t.Errorf("want ErrUnknownGenerator, got %v", err)
	}
}

// ============================================================
// Quotient and coefficient views
// ============================================================

func TestElement_NumeratorDenominator(t *testing.T) {
	fr := xRing(t).FractionField()
	x := mustGen(t, fr, "x")
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	el := fr.One().Div(x).Add(u)
	if got := el.Numerator().String(); got != "u_0[0]*x + 1" {
		t.Errorf("want 'u_0[0]*x + 1', got %s", got)
	}
	if got := el.Denominator().String(); got != "x" {
		t.Errorf("want x, got %s", got)
	}
}

func TestElement_CoeffsIn(t *testing.T) {
	r, err := dring.PolynomialRing(dring.Rationals(), "x", "c_0", "c_1")
	if err != nil {
		t.Fatalf("PolynomialRing: %v", err)
	}
	p, err := r.FromExpr(dring.AddOf(
		dring.MulOf(dring.S("c_1"), dring.PowOf(dring.S("x"), dring.N(2))),
		dring.MulOf(dring.S("c_0"), dring.S("x")),
		dring.N(5),
	))
	if err != nil {
		t.Fatalf("FromExpr: %v", err)
	}
	if d := p.DegreeIn("x"); d != 2 {
		t.Errorf("want degree 2, got %d", d)
	}
	cs := p.CoeffsIn("x")
	if len(cs) != 3 || cs[2].String() != "c_1" || cs[1].String() != "c_0" || cs[0].String() != "5" {
		t.Errorf("wrong coefficients: %v", cs)
	}
}

func TestElement_Constant(t *testing.T) {
	v, ok := dring.Rationals().Rat(dring.RatFrac(3, 4)).Constant()
	if !ok || v.String() != "3/4" {
		t.Errorf("want 3/4, got %v %v", v, ok)
	}
	if _, ok := mustGen(t, jetRing(t, "u_0"), "u_0").Constant(); ok {
		t.Errorf("a jet is not a constant")
	}
}

// ============================================================
// Coercion tests
// ============================================================

func TestElement_Coerce_Fails(t *testing.T) {
	u := mustGen(t, jetRing(t, "u_0"), "u_0")
	if _, err := dring.Rationals().Coerce(u); !errors.Is(err, dring.ErrCoercion) {
		t.Errorf("want ErrCoercion, got %v", err)
	}
}

func TestElement_ChangeRing_Widens(t *testing.T) {
	uring := jetRing(t, "u_0")
	wide, err := uring.AddConstants("c_0")
	if err != nil {
		t.Fatalf("AddConstants: %v", err)
	}
	u := mustGen(t, uring, "u_0")
	got, err := u.ChangeRing(wide)
	if err != nil {
		t.Fatalf("ChangeRing: %v", err)
	}
	if got.String() != "u_0[0]" || got.Ring() != wide {
		t.Errorf("widening coercion should keep the expression")
	}
}

// ============================================================
// Ideal tests
// ============================================================

func TestIdeal_FiltersZeroAndDuplicates(t *testing.T) {
	r, _ := dring.PolynomialRing(dring.Rationals(), "c_0", "c_1")
	c0 := mustGen(t, r, "c_0")
	c1 := mustGen(t, r, "c_1")
	id := dring.NewIdeal(r, []dring.Element{r.Zero(), c0, c0, c1})
	if len(id.Generators()) != 2 {
		t.Errorf("want 2 generators, got %d", len(id.Generators()))
	}
}

func TestIdeal_String(t *testing.T) {
	r, _ := dring.PolynomialRing(dring.Rationals(), "c_0", "c_1")
	c0 := mustGen(t, r, "c_0")
	c1 := mustGen(t, r, "c_1")
	id := dring.NewIdeal(r, []dring.Element{c0, c1})
	if id.String() != "Ideal (c_0, c_1) of QQ[c_0,c_1]" {
		t.Errorf("unexpected rendering: %s", id.String())
	}
}

func TestIdeal_Zero(t *testing.T) {
	id := dring.NewIdeal(dring.Rationals(), nil)
	if !id.IsZero() {
		t.Errorf("empty generator list should give the zero ideal")
	}
	if id.String() != "Ideal (0) of QQ" {
		t.Errorf("unexpected rendering: %s", id.String())
	}
}

func TestIdeal_LaTeX(t *testing.T) {
	r, _ := dring.PolynomialRing(dring.Rationals(), "c_0")
	c0 := mustGen(t, r, "c_0")
	id := dring.NewIdeal(r, []dring.Element{c0})
	if id.LaTeX() != `\left(c_0\right)` {
		t.Errorf("unexpected LaTeX: %s", id.LaTeX())
	}
}
