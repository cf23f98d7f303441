package dring

import (
	"fmt"
	"sort"
)

// Pushout computes the smallest ring of the lattice containing both a
// and b. Generators and differential variables are unioned, derivation
// images must agree where both rings define one, the result is a field
// when either input is, and differential only when both are.
func Pushout(a, b *Ring) (*Ring, error) {
	if sameRing(a, b) {
		return a, nil
	}
	// The plain rationals sit inside every ring of the lattice, so
	// their field flag contributes nothing to the join.
	nr := &Ring{
		field: (a.field && !a.IsRationals()) || (b.field && !b.IsRationals()),
		diff:  a.diff && b.diff,
	}
	for _, g := range a.gens {
		if b.hasDvar(g) {
			return nil, fmt.Errorf("%w: %q is a generator of %s and a differential variable of %s",
				ErrIncompatibleRings, g, a, b)
		}
		nr.gens = append(nr.gens, g)
	}
	for _, g := range b.gens {
		if a.hasDvar(g) {
			return nil, fmt.Errorf("%w: %q is a generator of %s and a differential variable of %s",
				ErrIncompatibleRings, g, b, a)
		}
		if !a.hasGen(g) {
			nr.gens = append(nr.gens, g)
		}
	}
	nr.dvars = append(nr.dvars, a.dvars...)
	for _, v := range b.dvars {
		if !a.hasDvar(v) {
			nr.dvars = append(nr.dvars, v)
		}
	}
	if nr.diff {
		nr.deriv = make(map[string]Expr, len(nr.gens))
		for _, g := range nr.gens {
			ia, oka := a.deriv[g]
			ib, okb := b.deriv[g]
			switch {
			case oka && okb:
				if !ia.Equal(ib) {
					return nil, fmt.Errorf("%w: derivations disagree on %q (%s vs %s)",
						ErrIncompatibleRings, g, ia, ib)
				}
				nr.deriv[g] = ia
			case oka:
				nr.deriv[g] = ia
			case okb:
				nr.deriv[g] = ib
			default:
				nr.deriv[g] = N(0)
			}
		}
	}
	return nr, nil
}

// sameRing reports structural equality of two descriptors, ignoring
// generator order.
func sameRing(a, b *Ring) bool {
	if a == b {
		return true
	}
	if a.field != b.field || a.diff != b.diff {
		return false
	}
	if !sameNameSet(a.gens, b.gens) || !sameNameSet(a.dvars, b.dvars) {
		return false
	}
	for _, g := range a.gens {
		ia, oka := a.deriv[g]
		ib, okb := b.deriv[g]
		if !oka {
			ia = N(0)
		}
		if !okb {
			ib = N(0)
		}
		if !ia.Equal(ib) {
			return false
		}
	}
	return true
}

func sameNameSet(xs, ys []string) bool {
	if len(xs) != len(ys) {
		return false
	}
	sx := append([]string(nil), xs...)
	sy := append([]string(nil), ys...)
	sort.Strings(sx)
	sort.Strings(sy)
	for i := range sx {
		if sx[i] != sy[i] {
			return false
		}
	}
	return true
}
