package dring_test

import (
	"testing"

	"github.com/rldelgado/dalgebra/dring"
)

// ============================================================
// Rational tests
// ============================================================

func TestRational_Normalizes(t *testing.T) {
	r := dring.RatFrac(2, 4)
	if r.String() != "1/2" {
		t.Errorf("want 1/2, got %s", r.String())
	}
}

func TestRational_Add(t *testing.T) {
	r := dring.RatFrac(1, 2).Add(dring.RatFrac(1, 3))
	if r.String() != "5/6" {
		t.Errorf("want 5/6, got %s", r.String())
	}
}

func TestRational_PowNegative(t *testing.T) {
	r := dring.RatFrac(2, 3).Pow(-2)
	if r.String() != "9/4" {
		t.Errorf("(2/3)^-2 should be 9/4, got %s", r.String())
	}
}

func TestRational_ZeroValueIsZero(t *testing.T) {
	var r dring.Rational
	if !r.IsZero() {
		t.Errorf("zero value should be 0, got %s", r.String())
	}
}

func TestRational_LaTeX_Negative(t *testing.T) {
	r := dring.RatFrac(-1, 2)
	if r.LaTeX() != `-\frac{1}{2}` {
		t.Errorf("want -\\frac{1}{2}, got %s", r.LaTeX())
	}
}

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := dring.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Fraction(t *testing.T) {
	n := dring.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Fraction(t *testing.T) {
	n := dring.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_PDiff_IsZero(t *testing.T) {
	d := dring.N(5).PDiff("x")
	if d.String() != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", d.String())
	}
}

func TestNum_Eval(t *testing.T) {
	v, ok := dring.N(7).Eval()
	if !ok || v.String() != "7" {
		t.Errorf("Num.Eval() should succeed with same value")
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_String(t *testing.T) {
	x := dring.S("x")
	if x.String() != "x" {
		t.Errorf("want x, got %s", x.String())
	}
}

func TestSym_LaTeX_Jet(t *testing.T) {
	s := dring.S("u_0[2]")
	if s.LaTeX() != "u_0^{(2)}" {
		t.Errorf("want u_0^{(2)}, got %s", s.LaTeX())
	}
}

func TestSym_LaTeX_ZerothJet(t *testing.T) {
	s := dring.S("u_0[0]")
	if s.LaTeX() != "u_0" {
		t.Errorf("want u_0, got %s", s.LaTeX())
	}
}

func TestSym_Sub_Match(t *testing.T) {
	got := dring.S("x").Sub(map[string]dring.Expr{"x": dring.N(3)})
	if got.String() != "3" {
		t.Errorf("want 3, got %s", got.String())
	}
}

func TestSym_Sub_NoMatch(t *testing.T) {
	got := dring.S("x").Sub(map[string]dring.Expr{"y": dring.N(3)})
	if got.String() != "x" {
		t.Errorf("want x, got %s", got.String())
	}
}

func TestSym_PDiff_Self(t *testing.T) {
	d := dring.S("x").PDiff("x")
	if d.String() != "1" {
		t.Errorf("d/dx(x) should be 1, got %s", d.String())
	}
}

func TestSym_PDiff_Other(t *testing.T) {
	d := dring.S("y").PDiff("x")
	if d.String() != "0" {
		t.Errorf("d/dx(y) should be 0, got %s", d.String())
	}
}

// ============================================================
// Add tests
// ============================================================

func TestAdd_ConstantLast(t *testing.T) {
	e := dring.AddOf(dring.N(3), dring.S("x"))
	if e.String() != "x + 3" {
		t.Errorf("want 'x + 3', got %s", e.String())
	}
}

func TestAdd_CollapseToZero(t *testing.T) {
	e := dring.AddOf(dring.N(1), dring.N(-1))
	if e.String() != "0" {
		t.Errorf("want 0, got %s", e.String())
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	x := dring.S("x")
	e := dring.AddOf(x, x)
	if e.String() != "2*x" {
		t.Errorf("want '2*x', got %s", e.String())
	}
}

func TestAdd_LikeMonomials(t *testing.T) {
	x, y := dring.S("x"), dring.S("y")
	e := dring.AddOf(dring.MulOf(x, y), dring.MulOf(y, x))
	if e.String() != "2*x*y" {
		t.Errorf("x*y + y*x should merge, got %s", e.String())
	}
}

func TestAdd_FractionCoefficients(t *testing.T) {
	x := dring.S("x")
	e := dring.AddOf(dring.MulOf(dring.F(1, 2), x), dring.MulOf(dring.F(1, 3), x))
	if e.String() != "5/6*x" {
		t.Errorf("want 5/6*x, got %s", e.String())
	}
}

func TestAdd_TermOrderDeterministic(t *testing.T) {
	e := dring.AddOf(dring.S("b"), dring.S("a"), dring.S("c"))
	if e.String() != "a + b + c" {
		t.Errorf("want 'a + b + c', got %s", e.String())
	}
}

func TestAdd_Sub_Simultaneous(t *testing.T) {
	// {x -> y, y -> x} is a swap, not a chain.
	x, y := dring.S("x"), dring.S("y")
	e := dring.AddOf(x, dring.MulOf(dring.N(2), y))
	got := e.Sub(map[string]dring.Expr{"x": y, "y": x})
	if got.String() != "2*x + y" {
		t.Errorf("want '2*x + y', got %s", got.String())
	}
}

func TestAdd_PDiff(t *testing.T) {
	// d/dx(x^2 + 3x + 1) = 2x + 3
	x := dring.S("x")
	e := dring.AddOf(dring.PowOf(x, dring.N(2)), dring.MulOf(dring.N(3), x), dring.N(1))
	d := e.PDiff("x")
	if d.String() != "2*x + 3" {
		t.Errorf("want '2*x + 3', got %s", d.String())
	}
}

// ============================================================
// Mul tests
// ============================================================

func TestMul_MergesEqualBases(t *testing.T) {
	x := dring.S("x")
	e := dring.MulOf(x, x)
	if e.String() != "x^2" {
		t.Errorf("x*x should be x^2, got %s", e.String())
	}
}

func TestMul_MergesPowers(t *testing.T) {
	x := dring.S("x")
	e := dring.MulOf(x, dring.PowOf(x, dring.N(2)))
	if e.String() != "x^3" {
		t.Errorf("x*x^2 should be x^3, got %s", e.String())
	}
}

func TestMul_InverseCancels(t *testing.T) {
	x := dring.S("x")
	e := dring.MulOf(x, dring.PowOf(x, dring.N(-1)))
	if e.String() != "1" {
		t.Errorf("x*x^-1 should be 1, got %s", e.String())
	}
}

func TestMul_ZeroAnnihilates(t *testing.T) {
	e := dring.MulOf(dring.N(0), dring.S("x"))
	if e.String() != "0" {
		t.Errorf("0*x should be 0, got %s", e.String())
	}
}

func TestMul_FoldsNumericPower(t *testing.T) {
	e := dring.MulOf(dring.N(2), dring.PowOf(dring.N(3), dring.N(2)))
	if e.String() != "18" {
		t.Errorf("2*3^2 should be 18, got %s", e.String())
	}
}

func TestMul_CoefficientFirst(t *testing.T) {
	e := dring.MulOf(dring.S("y"), dring.N(2), dring.S("x"))
	if e.String() != "2*x*y" {
		t.Errorf("want '2*x*y', got %s", e.String())
	}
}

func TestMul_ParenthesizesSums(t *testing.T) {
	e := dring.MulOf(dring.N(2), dring.AddOf(dring.S("x"), dring.N(1)))
	if e.String() != "2*(x + 1)" {
		t.Errorf("want '2*(x + 1)', got %s", e.String())
	}
}

func TestMul_PDiff_ProductRule(t *testing.T) {
	d := dring.MulOf(dring.S("x"), dring.S("y")).PDiff("x")
	if d.String() != "y" {
		t.Errorf("d/dx(x*y) should be y, got %s", d.String())
	}
}

func TestMul_LaTeX_LeadingMinusOne(t *testing.T) {
	e := dring.MulOf(dring.N(-1), dring.S("x"))
	if e.LaTeX() != "-x" {
		t.Errorf("want -x, got %s", e.LaTeX())
	}
}

func TestMul_Eval(t *testing.T) {
	v, ok := dring.MulOf(dring.F(1, 2), dring.N(4)).Eval()
	if !ok || v.String() != "2" {
		t.Errorf("(1/2)*4 should eval to 2")
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPow_ZeroExponent(t *testing.T) {
	e := dring.PowOf(dring.S("x"), dring.N(0))
	if e.String() != "1" {
		t.Errorf("x^0 should be 1, got %s", e.String())
	}
}

func TestPow_OneExponent(t *testing.T) {
	e := dring.PowOf(dring.S("x"), dring.N(1))
	if e.String() != "x" {
		t.Errorf("x^1 should be x, got %s", e.String())
	}
}

func TestPow_NestedCollapse(t *testing.T) {
	e := dring.PowOf(dring.PowOf(dring.S("x"), dring.N(2)), dring.N(3))
	if e.String() != "x^6" {
		t.Errorf("(x^2)^3 should be x^6, got %s", e.String())
	}
}

func TestPow_DistributesOverProduct(t *testing.T) {
	e := dring.PowOf(dring.MulOf(dring.S("x"), dring.S("y")), dring.N(2))
	if e.String() != "x^2*y^2" {
		t.Errorf("(x*y)^2 should be x^2*y^2, got %s", e.String())
	}
}

func TestPow_NegativeExponentString(t *testing.T) {
	e := dring.PowOf(dring.S("x"), dring.N(-1))
	if e.String() != "x^-1" {
		t.Errorf("want x^-1, got %s", e.String())
	}
}

func TestPow_SumBaseParenthesized(t *testing.T) {
	e := dring.PowOf(dring.AddOf(dring.S("x"), dring.N(1)), dring.N(-1))
	if e.String() != "(x + 1)^-1" {
		t.Errorf("want '(x + 1)^-1', got %s", e.String())
	}
}

func TestPow_PDiff(t *testing.T) {
	d := dring.PowOf(dring.S("x"), dring.N(3)).PDiff("x")
	if d.String() != "3*x^2" {
		t.Errorf("d/dx(x^3) should be 3*x^2, got %s", d.String())
	}
}

func TestPow_PDiff_ChainRule(t *testing.T) {
	base := dring.AddOf(dring.S("x"), dring.N(1))
	d := dring.PowOf(base, dring.N(2)).PDiff("x")
	if d.String() != "2*(x + 1)" {
		t.Errorf("d/dx((x+1)^2) should be 2*(x + 1), got %s", d.String())
	}
}

func TestPow_Eval_NegativeExponent(t *testing.T) {
	v, ok := dring.PowOf(dring.F(2, 3), dring.N(-2)).Eval()
	if !ok || v.String() != "9/4" {
		t.Errorf("(2/3)^-2 should eval to 9/4")
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_SpecialValuesAtZero(t *testing.T) {
	if got := dring.ExpOf(dring.N(0)).String(); got != "1" {
		t.Errorf("exp(0) should be 1, got %s", got)
	}
	if got := dring.SinOf(dring.N(0)).String(); got != "0" {
		t.Errorf("sin(0) should be 0, got %s", got)
	}
	if got := dring.CosOf(dring.N(0)).String(); got != "1" {
		t.Errorf("cos(0) should be 1, got %s", got)
	}
}

func TestFunc_String(t *testing.T) {
	e := dring.ExpOf(dring.S("x"))
	if e.String() != "exp(x)" {
		t.Errorf("want exp(x), got %s", e.String())
	}
}

func TestFunc_LaTeX(t *testing.T) {
	e := dring.ExpOf(dring.S("x"))
	if e.LaTeX() != `\exp\left(x\right)` {
		t.Errorf("want \\exp\\left(x\\right), got %s", e.LaTeX())
	}
}

func TestFunc_PDiff_Exp(t *testing.T) {
	// d/dx exp(x^2) = 2x exp(x^2)
	e := dring.ExpOf(dring.PowOf(dring.S("x"), dring.N(2)))
	d := dring.Canonicalize(e.PDiff("x"))
	if d.String() != "2*exp(x^2)*x" {
		t.Errorf("want 2*exp(x^2)*x, got %s", d.String())
	}
}

func TestFunc_PDiff_Cos(t *testing.T) {
	// d/dx cos(2x) = -2 sin(2x)
	e := dring.CosOf(dring.MulOf(dring.N(2), dring.S("x")))
	d := dring.Canonicalize(e.PDiff("x"))
	if d.String() != "-2*sin(2*x)" {
		t.Errorf("want -2*sin(2*x), got %s", d.String())
	}
}

// ============================================================
// Canonicalize tests
// ============================================================

func TestCanonicalize_ExpandsSquare(t *testing.T) {
	e := dring.PowOf(dring.AddOf(dring.S("x"), dring.N(1)), dring.N(2))
	got := dring.Canonicalize(e)
	if got.String() != "2*x + x^2 + 1" {
		t.Errorf("want '2*x + x^2 + 1', got %s", got.String())
	}
}

func TestCanonicalize_DifferenceOfSquares(t *testing.T) {
	x, y := dring.S("x"), dring.S("y")
	e := dring.MulOf(dring.AddOf(x, y), dring.AddOf(x, dring.MulOf(dring.N(-1), y)))
	got := dring.Canonicalize(e)
	if got.String() != "x^2 + -1*y^2" {
		t.Errorf("want 'x^2 + -1*y^2', got %s", got.String())
	}
}

func TestCanonicalize_ExactCancellation(t *testing.T) {
	// x^2 - x*x = 0
	x := dring.S("x")
	e := dring.AddOf(dring.PowOf(x, dring.N(2)), dring.MulOf(dring.N(-1), x, x))
	got := dring.Canonicalize(e)
	if got.String() != "0" {
		t.Errorf("x^2 - x*x should cancel, got %s", got.String())
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	e := dring.MulOf(dring.AddOf(dring.S("x"), dring.N(2)), dring.AddOf(dring.S("y"), dring.N(-1)))
	once := dring.Canonicalize(e)
	twice := dring.Canonicalize(once)
	if !once.Equal(twice) {
		t.Errorf("canonical form not idempotent: %s vs %s", once.String(), twice.String())
	}
}

func TestCanonicalize_JetMonomialFormat(t *testing.T) {
	e := dring.AddOf(
		dring.MulOf(dring.F(-1, 4), dring.S("u_0[3]")),
		dring.MulOf(dring.F(-3, 2), dring.S("u_0[0]"), dring.S("u_0[1]")),
	)
	got := dring.Canonicalize(e)
	if got.String() != "-3/2*u_0[0]*u_0[1] + -1/4*u_0[3]" {
		t.Errorf("unexpected canonical jet format: %s", got.String())
	}
}

// ============================================================
// Degree and coefficient tests
// ============================================================

func TestDegree_ExpandsFirst(t *testing.T) {
	e := dring.PowOf(dring.AddOf(dring.S("x"), dring.N(1)), dring.N(3))
	if d := dring.Degree(e, "x"); d != 3 {
		t.Errorf("deg_x (x+1)^3 should be 3, got %d", d)
	}
}

func TestDegree_AbsentSymbol(t *testing.T) {
	if d := dring.Degree(dring.S("y"), "x"); d != 0 {
		t.Errorf("deg_x y should be 0, got %d", d)
	}
}

func TestPolyCoeffs_Basic(t *testing.T) {
	// 3x^2 + 2xy + 5
	x, y := dring.S("x"), dring.S("y")
	e := dring.AddOf(
		dring.MulOf(dring.N(3), dring.PowOf(x, dring.N(2))),
		dring.MulOf(dring.N(2), x, y),
		dring.N(5),
	)
	cs := dring.PolyCoeffs(e, "x")
	if len(cs) != 3 {
		t.Fatalf("want 3 coefficients, got %d", len(cs))
	}
	if cs[2].String() != "3" || cs[1].String() != "2*y" || cs[0].String() != "5" {
		t.Errorf("wrong coefficients: %v %v %v", cs[2], cs[1], cs[0])
	}
}

func TestPolyCoeffs_ZeroExpression(t *testing.T) {
	cs := dring.PolyCoeffs(dring.N(0), "x")
	if len(cs) != 0 {
		t.Errorf("zero polynomial should have no coefficients, got %d", len(cs))
	}
}

func TestPolyCoeffs_NegativeDegree(t *testing.T) {
	cs := dring.PolyCoeffs(dring.PowOf(dring.S("x"), dring.N(-1)), "x")
	if len(cs) != 1 || cs[-1] == nil || cs[-1].String() != "1" {
		t.Errorf("x^-1 should have coefficient 1 at degree -1, got %v", cs)
	}
}

// ============================================================
// Quotient splitting tests
// ============================================================

func TestSplitQuotient_NoDenominator(t *testing.T) {
	e := dring.AddOf(dring.S("x"), dring.N(1))
	num, den := dring.SplitQuotient(e)
	if num.String() != "x + 1" || den.String() != "1" {
		t.Errorf("want (x + 1, 1), got (%s, %s)", num.String(), den.String())
	}
}

func TestSplitQuotient_SimpleInverse(t *testing.T) {
	num, den := dring.SplitQuotient(dring.PowOf(dring.S("x"), dring.N(-1)))
	if num.String() != "1" || den.String() != "x" {
		t.Errorf("want (1, x), got (%s, %s)", num.String(), den.String())
	}
}

func TestSplitQuotient_CommonDenominator(t *testing.T) {
	// a/x + b/x^2 = (a*x + b)/x^2
	x := dring.S("x")
	e := dring.AddOf(
		dring.MulOf(dring.S("a"), dring.PowOf(x, dring.N(-1))),
		dring.MulOf(dring.S("b"), dring.PowOf(x, dring.N(-2))),
	)
	num, den := dring.SplitQuotient(e)
	if num.String() != "a*x + b" || den.String() != "x^2" {
		t.Errorf("want (a*x + b, x^2), got (%s, %s)", num.String(), den.String())
	}
}

func TestSplitQuotient_CompoundBase(t *testing.T) {
	// y/(x+1) keeps the compound denominator intact.
	e := dring.MulOf(dring.S("y"), dring.PowOf(dring.AddOf(dring.S("x"), dring.N(1)), dring.N(-1)))
	num, den := dring.SplitQuotient(e)
	if num.String() != "y" || den.String() != "x + 1" {
		t.Errorf("want (y, x + 1), got (%s, %s)", num.String(), den.String())
	}
}

func TestSplitQuotient_CancelsBeforeExpanding(t *testing.T) {
	// (x+1)/(x+1) = 1
	base := dring.AddOf(dring.S("x"), dring.N(1))
	e := dring.MulOf(base, dring.PowOf(base, dring.N(-1)))
	num, den := dring.SplitQuotient(e)
	if num.String() != "1" || den.String() != "1" {
		t.Errorf("want (1, 1), got (%s, %s)", num.String(), den.String())
	}
}
