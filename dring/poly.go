package dring

import "sort"

// =============================================================================
// Canonical form
// =============================================================================

// Canonicalize returns the fully expanded normal form of e: products
// distributed over sums, non-negative integer powers of sums multiplied
// out, like terms merged with exact rational coefficients. Two
// expressions denote the same differential polynomial iff their
// canonical forms are structurally Equal. Negative powers are kept as
// opaque factors; see SplitQuotient.
func Canonicalize(e Expr) Expr {
	return expandExpr(e.Simplify()).Simplify()
}

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expandExpr(t)
		}
		return AddOf(terms...)
	case *Mul:
		acc := []Expr{N(1)}
		for _, f := range v.factors {
			acc = crossMul(acc, addTerms(expandExpr(f)))
		}
		return AddOf(acc...)
	case *Pow:
		b := expandExpr(v.base)
		if ab, ok := b.(*Add); ok {
			if en, ok := v.exp.(*Num); ok {
				if k, fits := en.val.Int64(); fits && k >= 2 {
					return expandPowAdd(ab, int(k))
				}
			}
		}
		return PowOf(b, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg))
	default:
		return e
	}
}

// addTerms views an expression as a list of summands.
func addTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// crossMul multiplies two term lists pairwise. Inputs must be free of
// Add nodes, which keeps the products monomial.
func crossMul(a, b []Expr) []Expr {
	out := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, MulOf(x, y))
		}
	}
	return out
}

func expandPowAdd(base *Add, k int) Expr {
	acc := []Expr{N(1)}
	for i := 0; i < k; i++ {
		acc = crossMul(acc, base.terms)
	}
	return AddOf(acc...)
}

// =============================================================================
// Symbols and degrees
// =============================================================================

// FreeSymbols returns the set of symbol names occurring in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := make(map[string]struct{})
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// sortedSymbols returns the free symbol names in deterministic order.
func sortedSymbols(e Expr) []string {
	set := FreeSymbols(e)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Degree returns the degree of e in the named symbol after
// canonicalization. Expressions free of the symbol have degree zero,
// as does the zero expression.
func Degree(e Expr, name string) int {
	return degreeOf(Canonicalize(e), name)
}

func degreeOf(e Expr, name string) int {
	switch v := e.(type) {
	case *Sym:
		if v.name == name {
			return 1
		}
		return 0
	case *Add:
		max := degreeOf(v.terms[0], name)
		for _, t := range v.terms[1:] {
			if d := degreeOf(t, name); d > max {
				max = d
			}
		}
		return max
	case *Mul:
		sum := 0
		for _, f := range v.factors {
			sum += degreeOf(f, name)
		}
		return sum
	case *Pow:
		if b, ok := v.base.(*Sym); ok && b.name == name {
			if en, ok := v.exp.(*Num); ok {
				if k, fits := en.val.Int64(); fits {
					return int(k)
				}
			}
		}
		return 0
	default:
		return 0
	}
}

// =============================================================================
// Polynomial coefficients
// =============================================================================

// PolyCoeffs reads e as a polynomial in the named symbol and returns
// its nonzero coefficients keyed by degree. The zero expression yields
// an empty map. Negative degrees appear when e carries inverse powers
// of the symbol; callers wanting plain polynomials split the quotient
// first.
func PolyCoeffs(e Expr, name string) map[int]Expr {
	e = Canonicalize(e)
	buckets := make(map[int][]Expr)
	for _, t := range addTerms(e) {
		d, rest := splitDegree(t, name)
		buckets[d] = append(buckets[d], rest)
	}
	out := make(map[int]Expr, len(buckets))
	for d, ts := range buckets {
		c := AddOf(ts...)
		if isZeroExpr(c) {
			continue
		}
		out[d] = c
	}
	return out
}

// splitDegree factors x^d out of a canonical monomial, returning d and
// the remaining cofactor.
func splitDegree(t Expr, name string) (int, Expr) {
	switch v := t.(type) {
	case *Sym:
		if v.name == name {
			return 1, N(1)
		}
		return 0, t
	case *Pow:
		if b, ok := v.base.(*Sym); ok && b.name == name {
			if en, ok := v.exp.(*Num); ok {
				if k, fits := en.val.Int64(); fits {
					return int(k), N(1)
				}
			}
		}
		return 0, t
	case *Mul:
		d := 0
		kept := make([]Expr, 0, len(v.factors))
		for _, f := range v.factors {
			fd, fr := splitDegree(f, name)
			d += fd
			if !isOneExpr(fr) {
				kept = append(kept, fr)
			}
		}
		return d, MulOf(kept...)
	default:
		return 0, t
	}
}

// =============================================================================
// Quotient splitting
// =============================================================================

type denomPart struct {
	base Expr
	exp  Rational
}

// SplitQuotient writes e as num/den where den is the least common
// product of the inverse powers occurring in e's canonical form.
// Rational coefficients stay in the numerator; an expression with no
// inverse powers returns (e, 1).
func SplitQuotient(e Expr) (num, den Expr) {
	e = Canonicalize(e)
	terms := addTerms(e)

	parts := make(map[string]*denomPart)
	for _, t := range terms {
		collectDenoms(t, parts)
	}
	if len(parts) == 0 {
		return e, N(1)
	}

	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	factors := make([]Expr, 0, len(keys))
	for _, k := range keys {
		p := parts[k]
		factors = append(factors, PowOf(p.base, R(p.exp)))
	}
	den = MulOf(factors...)

	scaled := make([]Expr, len(terms))
	for i, t := range terms {
		scaled[i] = MulOf(t, den)
	}
	num = Canonicalize(AddOf(scaled...))
	return num, den
}

func collectDenoms(t Expr, parts map[string]*denomPart) {
	for _, f := range mulFactors(t) {
		p, ok := f.(*Pow)
		if !ok {
			continue
		}
		en, ok := p.exp.(*Num)
		if !ok || en.val.Sign() >= 0 {
			continue
		}
		need := en.val.Neg()
		key := p.base.String()
		d, exists := parts[key]
		if !exists {
			parts[key] = &denomPart{base: p.base, exp: need}
			continue
		}
		if need.Cmp(d.exp) > 0 {
			d.exp = need
		}
	}
}

func mulFactors(t Expr) []Expr {
	if m, ok := t.(*Mul); ok {
		return m.factors
	}
	return []Expr{t}
}
