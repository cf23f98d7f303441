package dring

import (
	"fmt"
	"sort"
)

// Element is an immutable ring element: a canonical expression tagged
// with the ring it lives in. The zero value is unusable; build
// elements through Ring constructors. Arithmetic between elements of
// different rings lands in the pushout and panics when none exists.
type Element struct {
	ring *Ring
	expr Expr
}

// Ring returns the ring the element lives in.
func (e Element) Ring() *Ring { return e.ring }

// Expr returns the canonical expression underlying the element.
func (e Element) Expr() Expr { return e.expr }

// IsZero reports whether the element is the additive identity.
func (e Element) IsZero() bool { return isZeroExpr(e.expr) }

// Constant returns the element as a rational number when it is one.
func (e Element) Constant() (Rational, bool) { return e.expr.Eval() }

// Equal compares the canonical expressions of two elements.
func (e Element) Equal(o Element) bool {
	if e.expr == nil || o.expr == nil {
		return e.expr == nil && o.expr == nil
	}
	return e.expr.Equal(o.expr)
}

// Symbols returns the free symbol names of the element in order.
func (e Element) Symbols() []string { return sortedSymbols(e.expr) }

func (e Element) String() string { return e.expr.String() }

// LaTeX renders the element for inclusion in a math environment.
func (e Element) LaTeX() string { return e.expr.LaTeX() }

// =============================================================================
// Arithmetic
// =============================================================================

// Add returns e + o in the pushout of the operand rings.
func (e Element) Add(o Element) Element {
	r := mustUnify(e, o)
	return Element{ring: r, expr: Canonicalize(AddOf(e.expr, o.expr))}
}

// Sub returns e - o in the pushout of the operand rings.
func (e Element) Sub(o Element) Element {
	r := mustUnify(e, o)
	return Element{ring: r, expr: Canonicalize(AddOf(e.expr, MulOf(N(-1), o.expr)))}
}

// Mul returns e * o in the pushout of the operand rings.
func (e Element) Mul(o Element) Element {
	r := mustUnify(e, o)
	return Element{ring: r, expr: Canonicalize(MulOf(e.expr, o.expr))}
}

// Neg returns -e.
func (e Element) Neg() Element {
	return Element{ring: e.ring, expr: Canonicalize(MulOf(N(-1), e.expr))}
}

// PowInt returns e^k. Negative exponents require a field.
func (e Element) PowInt(k int) Element {
	if k == 0 {
		return e.ring.One()
	}
	if k < 0 && !e.ring.field {
		panic("dring: negative power outside a field")
	}
	return Element{ring: e.ring, expr: Canonicalize(PowOf(e.expr, N(int64(k))))}
}

// Div returns e / o in the pushout of the operand rings, which must be
// a field. Panics on division by zero.
func (e Element) Div(o Element) Element {
	r := mustUnify(e, o)
	if !r.field {
		panic("dring: division outside a field")
	}
	if isZeroExpr(o.expr) {
		panic("dring: division by zero")
	}
	return Element{ring: r, expr: Canonicalize(MulOf(e.expr, PowOf(o.expr, N(-1))))}
}

func mustUnify(a, b Element) *Ring {
	if a.ring == nil || b.ring == nil {
		panic("dring: zero-value element")
	}
	if a.ring == b.ring {
		return a.ring
	}
	r, err := Pushout(a.ring, b.ring)
	if err != nil {
		panic("dring: " + err.Error())
	}
	return r
}

// =============================================================================
// Differential structure
// =============================================================================

// Derivative applies the ring derivation once. Panics when the ring
// has no differential structure.
func (e Element) Derivative() Element {
	return Element{ring: e.ring, expr: e.ring.Derive(e.expr)}
}

// DerivativeN applies the ring derivation k times.
func (e Element) DerivativeN(k int) Element {
	el := e
	for i := 0; i < k; i++ {
		el = el.Derivative()
	}
	return el
}

// =============================================================================
// Substitution and coercion
// =============================================================================

// Substitute replaces generators by elements. A differential-variable
// key replaces its whole jet ladder: v[k] maps to the k-th derivative
// of the value, which requires the unified ring to be differential
// when any k > 0 jet occurs. The result lives in the pushout of the
// receiver's ring with all value rings.
func (e Element) Substitute(assign map[string]Element) (Element, error) {
	if len(assign) == 0 {
		return e, nil
	}
	names := make([]string, 0, len(assign))
	for name := range assign {
		names = append(names, name)
	}
	sort.Strings(names)

	target := e.ring
	for _, name := range names {
		v := assign[name]
		if v.ring == nil {
			panic("dring: zero-value element")
		}
		if !e.ring.hasGen(name) && !e.ring.hasDvar(name) {
			return Element{}, fmt.Errorf("%w: %q in %s", ErrUnknownGenerator, name, e.ring)
		}
		p, err := Pushout(target, v.ring)
		if err != nil {
			return Element{}, err
		}
		target = p
	}

	sub := make(map[string]Expr)
	for _, name := range names {
		v := assign[name]
		if e.ring.hasGen(name) {
			sub[name] = v.expr
			continue
		}
		ladder := []Expr{Canonicalize(v.expr)}
		for _, s := range sortedSymbols(e.expr) {
			base, k, ok := ParseJet(s)
			if !ok || base != name {
				continue
			}
			for len(ladder) <= k {
				if !target.diff {
					return Element{}, fmt.Errorf("%w: derivative of value for %q", ErrNotDifferential, name)
				}
				ladder = append(ladder, target.Derive(ladder[len(ladder)-1]))
			}
			sub[s] = ladder[k]
		}
	}
	return target.FromExpr(e.expr.Sub(sub))
}

// ChangeRing reinterprets the element in r.
func (e Element) ChangeRing(r *Ring) (Element, error) { return r.Coerce(e) }

// =============================================================================
// Polynomial views
// =============================================================================

// Numerator returns the numerator of the element over a common
// denominator.
func (e Element) Numerator() Element {
	num, _ := SplitQuotient(e.expr)
	return Element{ring: e.ring, expr: num}
}

// Denominator returns the common denominator of the element.
func (e Element) Denominator() Element {
	_, den := SplitQuotient(e.expr)
	return Element{ring: e.ring, expr: den}
}

// DegreeIn returns the degree of the element in the named symbol.
func (e Element) DegreeIn(name string) int { return Degree(e.expr, name) }

// CoeffsIn views the element as a polynomial in the named symbol and
// returns its coefficients keyed by exponent. Zero coefficients are
// absent; the zero element yields an empty map.
func (e Element) CoeffsIn(name string) map[int]Element {
	out := make(map[int]Element)
	for k, c := range PolyCoeffs(e.expr, name) {
		out[k] = Element{ring: e.ring, expr: c}
	}
	return out
}
