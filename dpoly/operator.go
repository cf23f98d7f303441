// Package dpoly represents linear ordinary differential operators as
// differential polynomials in a distinguished operator variable. The
// operator sum_k a_k d^k is stored as the polynomial sum_k a_k*z[k],
// where z[k] is the k-th jet of the operator variable z. Composition
// is substitution: (A*B)(z) is A with every z[k] replaced by the k-th
// total derivative of B, so commutators reduce to exact polynomial
// arithmetic in the coefficient ring.
package dpoly

import (
	"fmt"
	"sort"

	"github.com/rldelgado/dalgebra/dring"
)

// Poly is a differential operator in polynomial form. The element is
// canonical and lives in a ring that carries the operator variable as
// a differential variable; coefficients never mention its jets.
type Poly struct {
	el   dring.Element
	dvar string
}

// New builds the operator sum_k coeffs[k]*z[k] over r, which must
// carry dvar as a differential variable. Coefficient elements may live
// in smaller rings; the result lands in the common pushout.
func New(r *dring.Ring, dvar string, coeffs map[int]dring.Element) (*Poly, error) {
	if !hasDvar(r, dvar) {
		return nil, fmt.Errorf("%w: operator variable %q in %s", dring.ErrUnknownGenerator, dvar, r)
	}
	ks := make([]int, 0, len(coeffs))
	for k := range coeffs {
		if k < 0 {
			return nil, fmt.Errorf("dpoly: negative operator order %d", k)
		}
		ks = append(ks, k)
	}
	sort.Ints(ks)

	acc := r.Zero()
	for _, k := range ks {
		c := coeffs[k]
		if c.Ring() == nil {
			return nil, fmt.Errorf("dpoly: zero-value coefficient at order %d", k)
		}
		if mentionsJets(c, dvar) {
			return nil, fmt.Errorf("dpoly: coefficient at order %d mentions the operator variable %q", k, dvar)
		}
		zk, err := r.Gen(dring.JetName(dvar, k))
		if err != nil {
			return nil, err
		}
		acc = acc.Add(c.Mul(zk))
	}
	return &Poly{el: acc, dvar: dvar}, nil
}

// FromElement wraps an element as an operator polynomial. The
// element's ring must carry dvar as a differential variable.
func FromElement(el dring.Element, dvar string) (*Poly, error) {
	if el.Ring() == nil {
		return nil, fmt.Errorf("dpoly: zero-value element")
	}
	if !hasDvar(el.Ring(), dvar) {
		return nil, fmt.Errorf("%w: operator variable %q in %s", dring.ErrUnknownGenerator, dvar, el.Ring())
	}
	return &Poly{el: el, dvar: dvar}, nil
}

// Identity returns the identity operator, the zeroth jet of the
// operator variable.
func Identity(r *dring.Ring, dvar string) (*Poly, error) {
	z0, err := r.Gen(dring.JetName(dvar, 0))
	if err != nil {
		return nil, err
	}
	return &Poly{el: z0, dvar: dvar}, nil
}

// Ring returns the ring the operator's coefficients live in.
func (p *Poly) Ring() *dring.Ring { return p.el.Ring() }

// Element returns the operator as a differential polynomial.
func (p *Poly) Element() dring.Element { return p.el }

// Variable returns the operator variable name.
func (p *Poly) Variable() string { return p.dvar }

// IsZero reports whether the operator is zero.
func (p *Poly) IsZero() bool { return p.el.IsZero() }

// Equal compares operators over the same variable.
func (p *Poly) Equal(o *Poly) bool { return p.dvar == o.dvar && p.el.Equal(o.el) }

func (p *Poly) String() string { return p.el.String() }

// LaTeX renders the operator polynomial.
func (p *Poly) LaTeX() string { return p.el.LaTeX() }

// Order returns the largest jet index of the operator variable, or -1
// for the zero operator.
func (p *Poly) Order() int {
	ord := -1
	for _, s := range p.el.Symbols() {
		if base, k, ok := dring.ParseJet(s); ok && base == p.dvar && k > ord {
			ord = k
		}
	}
	return ord
}

// Coefficient returns the coefficient of the k-th jet. For linear
// operators this is the operator coefficient of d^k.
func (p *Poly) Coefficient(k int) dring.Element {
	d := p.el.Expr().PDiff(dring.JetName(p.dvar, k))
	el, err := p.Ring().FromExpr(d)
	if err != nil {
		panic("dpoly: " + err.Error())
	}
	return el
}

// Coefficients returns the nonzero coefficients keyed by order.
func (p *Poly) Coefficients() map[int]dring.Element {
	out := make(map[int]dring.Element)
	for k := 0; k <= p.Order(); k++ {
		c := p.Coefficient(k)
		if c.IsZero() {
			continue
		}
		out[k] = c
	}
	return out
}

// IsLinear reports whether every monomial has total degree at most one
// in the jets of the operator variable.
func (p *Poly) IsLinear() bool {
	for _, t := range termList(p.el.Expr()) {
		if jetDegree(t, p.dvar) > 1 {
			return false
		}
	}
	return true
}

// IsNormalForm reports whether the operator is linear homogeneous,
// monic, and has a vanishing subleading coefficient.
func (p *Poly) IsNormalForm() bool {
	n := p.Order()
	if n < 1 {
		return false
	}
	for _, t := range termList(p.el.Expr()) {
		if jetDegree(t, p.dvar) != 1 {
			return false
		}
	}
	lead, ok := p.Coefficient(n).Constant()
	if !ok || !lead.IsOne() {
		return false
	}
	return p.Coefficient(n - 1).IsZero()
}

// =============================================================================
// Operator arithmetic
// =============================================================================

// Add returns p + o in the pushout of the coefficient rings.
func (p *Poly) Add(o *Poly) (*Poly, error) {
	if p.dvar != o.dvar {
		return nil, fmt.Errorf("dpoly: operator variables differ: %q vs %q", p.dvar, o.dvar)
	}
	if _, err := dring.Pushout(p.Ring(), o.Ring()); err != nil {
		return nil, err
	}
	return &Poly{el: p.el.Add(o.el), dvar: p.dvar}, nil
}

// Neg returns -p.
func (p *Poly) Neg() *Poly {
	return &Poly{el: p.el.Neg(), dvar: p.dvar}
}

// ScalarMul multiplies every coefficient by c, which must not mention
// the operator variable.
func (p *Poly) ScalarMul(c dring.Element) (*Poly, error) {
	if c.Ring() == nil {
		return nil, fmt.Errorf("dpoly: zero-value scalar")
	}
	if mentionsJets(c, p.dvar) {
		return nil, fmt.Errorf("dpoly: scalar mentions the operator variable %q", p.dvar)
	}
	if _, err := dring.Pushout(p.Ring(), c.Ring()); err != nil {
		return nil, err
	}
	return &Poly{el: p.el.Mul(c), dvar: p.dvar}, nil
}

// Compose returns the operator product p*o: p with every jet z[k]
// replaced by the k-th total derivative of o. The unified ring must be
// differential.
func (p *Poly) Compose(o *Poly) (*Poly, error) {
	if p.dvar != o.dvar {
		return nil, fmt.Errorf("dpoly: operator variables differ: %q vs %q", p.dvar, o.dvar)
	}
	r, err := dring.Pushout(p.Ring(), o.Ring())
	if err != nil {
		return nil, err
	}
	if !r.IsDifferential() {
		return nil, fmt.Errorf("%w: operator composition", dring.ErrNotDifferential)
	}
	ladder := []dring.Expr{o.el.Expr()}
	sub := make(map[string]dring.Expr)
	for _, s := range p.el.Symbols() {
		base, k, ok := dring.ParseJet(s)
		if !ok || base != p.dvar {
			continue
		}
		for len(ladder) <= k {
			ladder = append(ladder, r.Derive(ladder[len(ladder)-1]))
		}
		sub[s] = ladder[k]
	}
	el, err := r.FromExpr(p.el.Expr().Sub(sub))
	if err != nil {
		return nil, err
	}
	return &Poly{el: el, dvar: p.dvar}, nil
}

// Commutator returns [p, o] = p*o - o*p.
func (p *Poly) Commutator(o *Poly) (*Poly, error) {
	po, err := p.Compose(o)
	if err != nil {
		return nil, err
	}
	op, err := o.Compose(p)
	if err != nil {
		return nil, err
	}
	return po.Add(op.Neg())
}

// =============================================================================
// Coefficient substitution
// =============================================================================

// Substitute replaces coefficient generators by elements, leaving the
// operator variable untouched.
func (p *Poly) Substitute(assign map[string]dring.Element) (*Poly, error) {
	for name := range assign {
		if name == p.dvar {
			return nil, fmt.Errorf("dpoly: cannot substitute the operator variable %q", p.dvar)
		}
		if base, _, ok := dring.ParseJet(name); ok && base == p.dvar {
			return nil, fmt.Errorf("dpoly: cannot substitute a jet of the operator variable %q", p.dvar)
		}
	}
	el, err := p.el.Substitute(assign)
	if err != nil {
		return nil, err
	}
	if !hasDvar(el.Ring(), p.dvar) {
		return nil, fmt.Errorf("%w: substitution dropped the operator variable %q", dring.ErrIncompatibleRings, p.dvar)
	}
	return &Poly{el: el, dvar: p.dvar}, nil
}

// ChangeRing reinterprets the operator over r.
func (p *Poly) ChangeRing(r *dring.Ring) (*Poly, error) {
	if !hasDvar(r, p.dvar) {
		return nil, fmt.Errorf("%w: operator variable %q in %s", dring.ErrUnknownGenerator, p.dvar, r)
	}
	el, err := p.el.ChangeRing(r)
	if err != nil {
		return nil, err
	}
	return &Poly{el: el, dvar: p.dvar}, nil
}

// =============================================================================
// Jet degree helpers
// =============================================================================

func hasDvar(r *dring.Ring, dvar string) bool {
	for _, v := range r.DVars() {
		if v == dvar {
			return true
		}
	}
	return false
}

func mentionsJets(el dring.Element, dvar string) bool {
	for _, s := range el.Symbols() {
		if base, _, ok := dring.ParseJet(s); ok && base == dvar {
			return true
		}
	}
	return false
}

func termList(e dring.Expr) []dring.Expr {
	if a, ok := e.(*dring.Add); ok {
		return a.Terms()
	}
	return []dring.Expr{e}
}

// jetDegree is the total degree of a canonical monomial in the jets of
// dvar. Non-integer jet exponents count as nonlinear.
func jetDegree(t dring.Expr, dvar string) int {
	switch v := t.(type) {
	case *dring.Sym:
		if base, _, ok := dring.ParseJet(v.Name()); ok && base == dvar {
			return 1
		}
		return 0
	case *dring.Pow:
		b, ok := v.Base().(*dring.Sym)
		if !ok {
			return 0
		}
		base, _, okj := dring.ParseJet(b.Name())
		if !okj || base != dvar {
			return 0
		}
		if e, okn := v.Exp().(*dring.Num); okn && e.Rat().IsInt() {
			if k, fits := e.Rat().Int64(); fits {
				return int(k)
			}
		}
		return 2
	case *dring.Mul:
		sum := 0
		for _, f := range v.Factors() {
			sum += jetDegree(f, dvar)
		}
		return sum
	default:
		return 0
	}
}
