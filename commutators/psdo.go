package commutators

import (
	"fmt"

	"github.com/rldelgado/dalgebra/dpoly"
	"github.com/rldelgado/dalgebra/dring"
)

// psOp is a truncated pseudo-differential operator: a finite window of
// coefficients co[k] attached to the symbol power k. Entries are kept
// canonical and nonzero. Orders below min are outside the window and
// must never be read; orders inside the window that are absent are zero.
type psOp struct {
	ring *dring.Ring
	co   map[int]dring.Expr
	min  int
}

func newPsOp(r *dring.Ring, min int) *psOp {
	return &psOp{ring: r, co: make(map[int]dring.Expr), min: min}
}

// psFromOperator widens a differential operator to a window reaching
// down to min. Differential operators are exact at every order, so any
// floor is valid.
func psFromOperator(p *dpoly.Poly, min int) *psOp {
	out := newPsOp(p.Ring(), min)
	for k, c := range p.Coefficients() {
		out.set(k, c.Expr())
	}
	return out
}

func (p *psOp) set(k int, e dring.Expr) {
	e = dring.Canonicalize(e)
	if r, ok := e.Eval(); ok && r.IsZero() {
		delete(p.co, k)
		return
	}
	p.co[k] = e
}

func (p *psOp) at(k int) dring.Expr {
	if k < p.min {
		panic(fmt.Sprintf("commutators: reading order %d below the window floor %d", k, p.min))
	}
	if e, ok := p.co[k]; ok {
		return e
	}
	return dring.N(0)
}

// top returns the highest tracked order, or the floor when the window
// is empty.
func (p *psOp) top() int {
	t := p.min
	first := true
	for k := range p.co {
		if first || k > t {
			t = k
			first = false
		}
	}
	return t
}

// mul composes two windows. The product of a_i s^i and b_j s^j expands
// by the generalized Leibniz rule into sums of C(i,t) a_i b_j^(t) at
// order i+j-t, where C(i,t) follows the recurrence
// C(i,t) = C(i,t-1) (i-t+1)/t and vanishes for t > i when i >= 0.
// Truncation error in a factor at order k pollutes the product at
// k plus the top order of the other factor, so the product window
// reaches down to max(a.min+b.top, b.min+a.top).
func (a *psOp) mul(b *psOp) *psOp {
	floor := max(a.min+b.top(), b.min+a.top())
	acc := make(map[int][]dring.Expr)
	for i, ai := range a.co {
		for j, bj := range b.co {
			c := dring.RatOne()
			d := bj
			for t := 0; i+j-t >= floor; t++ {
				if t > 0 {
					c = c.Mul(dring.RatFrac(int64(i-t+1), int64(t)))
					if c.IsZero() {
						break
					}
					d = a.ring.Derive(d)
				}
				ord := i + j - t
				acc[ord] = append(acc[ord], dring.MulOf(dring.R(c), ai, d))
			}
		}
	}
	out := newPsOp(a.ring, floor)
	for ord, terms := range acc {
		out.set(ord, dring.AddOf(terms...))
	}
	return out
}

// pow raises the window to the k-th power, k >= 1. Each multiplication
// raises the floor by the loss the rule above dictates.
func (p *psOp) pow(k int) *psOp {
	out := p
	for t := 1; t < k; t++ {
		out = out.mul(p)
	}
	return out
}

// plus truncates the window to its differential part, the orders >= 0.
func (p *psOp) plus(dvar string) (*dpoly.Poly, error) {
	coeffs := make(map[int]dring.Element)
	for k, e := range p.co {
		if k < 0 {
			continue
		}
		el, err := p.ring.FromExpr(e)
		if err != nil {
			return nil, err
		}
		coeffs[k] = el
	}
	return dpoly.New(p.ring, dvar, coeffs)
}

// nthRoot computes the n-th root of a normal-form window down to order
// -depth. Writing R = s + sum r_k s^-k, the coefficient r_k enters R^n
// linearly with factor n at order n-1-k and otherwise only through
// r_0..r_{k-1}, so matching R^n against l order by order solves each
// r_k exactly. l must reach at least n-1-depth orders deep.
func nthRoot(l *psOp, n, depth int) *psOp {
	r := newPsOp(l.ring, -depth)
	r.set(1, dring.N(1))
	for k := 0; k <= depth; k++ {
		cur := r.pow(n)
		gap := dring.AddOf(l.at(n-1-k), dring.MulOf(dring.N(-1), cur.at(n-1-k)))
		r.set(-k, dring.MulOf(dring.F(1, int64(n)), gap))
	}
	return r
}
