package dring

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Jet names
// =============================================================================

// JetName returns the symbol name of the k-th derivative of the
// differential variable base, e.g. JetName("u_0", 2) == "u_0[2]".
func JetName(base string, k int) string {
	return base + "[" + strconv.Itoa(k) + "]"
}

// ParseJet splits a jet symbol name into its differential variable and
// derivative order; ok is false for plain names.
func ParseJet(name string) (base string, k int, ok bool) {
	if !strings.HasSuffix(name, "]") {
		return "", 0, false
	}
	i := strings.LastIndexByte(name, '[')
	if i <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(name[i+1 : len(name)-1])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return name[:i], n, true
}

// =============================================================================
// Ring descriptors
// =============================================================================

// Ring describes a coefficient ring from the small lattice the
// pipeline works over: the rationals extended by plain generators
// (each with a derivation image), by differential variables owning jet
// ladders v[0], v[1], ..., and optionally wrapped in a fraction field.
// Rings are immutable; constructors return fresh descriptors.
type Ring struct {
	gens  []string
	deriv map[string]Expr
	dvars []string
	field bool
	diff  bool
}

// Rationals returns the field of rational numbers, regarded as a
// differential field with the zero derivation.
func Rationals() *Ring {
	return &Ring{field: true, diff: true}
}

// PolynomialRing adjoins plain polynomial generators to base. The
// result carries no differential structure; wrap it with
// NewDifferentialRing to declare one.
func PolynomialRing(base *Ring, names ...string) (*Ring, error) {
	nr := base.clone()
	nr.field = false
	nr.diff = false
	nr.deriv = nil
	for _, name := range names {
		if err := nr.adjoinGen(name, nil); err != nil {
			return nil, err
		}
	}
	return nr, nil
}

// NewDifferentialRing wraps base with an explicit derivation given as
// a map from generator name to derivative image. Generators without an
// entry derive to zero; images must be expressible in the ring.
func NewDifferentialRing(base *Ring, deriv map[string]Expr) (*Ring, error) {
	nr := base.clone()
	nr.diff = true
	nr.deriv = make(map[string]Expr, len(deriv))
	for name, img := range deriv {
		if !nr.hasGen(name) {
			return nil, fmt.Errorf("%w: derivation image for %q", ErrUnknownGenerator, name)
		}
		c := Canonicalize(img)
		for s := range FreeSymbols(c) {
			if !nr.resolves(s) {
				return nil, fmt.Errorf("%w: symbol %q in derivation image of %q", ErrCoercion, s, name)
			}
		}
		nr.deriv[name] = c
	}
	for _, g := range nr.gens {
		if _, ok := nr.deriv[g]; !ok {
			nr.deriv[g] = N(0)
		}
	}
	return nr, nil
}

// DifferentialPolynomialRing adjoins differential variables to a
// differential base ring. Each variable v owns the infinite jet ladder
// v[0], v[1], ... with the derivation shifting indices up.
func DifferentialPolynomialRing(base *Ring, dvars ...string) (*Ring, error) {
	if !base.diff {
		return nil, fmt.Errorf("%w: base of a differential polynomial ring", ErrNotDifferential)
	}
	nr := base.clone()
	nr.field = false
	for _, v := range dvars {
		if err := checkName(v); err != nil {
			return nil, err
		}
		if nr.hasGen(v) || nr.hasDvar(v) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGenerator, v)
		}
		nr.dvars = append(nr.dvars, v)
	}
	return nr, nil
}

// FractionField returns the ring viewed as its field of fractions.
func (r *Ring) FractionField() *Ring {
	nr := r.clone()
	nr.field = true
	return nr
}

// AddConstants adjoins fresh differential-constant symbols with zero
// derivative, preserving the other ring structure. Adjoining to the
// plain rationals yields a polynomial ring, not a field.
func (r *Ring) AddConstants(names ...string) (*Ring, error) {
	nr := r.clone()
	if r.IsRationals() {
		nr.field = false
	}
	for _, name := range names {
		var img Expr
		if nr.diff {
			img = N(0)
		}
		if err := nr.adjoinGen(name, img); err != nil {
			return nil, err
		}
	}
	return nr, nil
}

func (r *Ring) clone() *Ring {
	nr := &Ring{
		gens:  append([]string(nil), r.gens...),
		dvars: append([]string(nil), r.dvars...),
		field: r.field,
		diff:  r.diff,
	}
	if r.deriv != nil {
		nr.deriv = make(map[string]Expr, len(r.deriv))
		for k, v := range r.deriv {
			nr.deriv[k] = v
		}
	}
	return nr
}

func (r *Ring) adjoinGen(name string, img Expr) error {
	if err := checkName(name); err != nil {
		return err
	}
	if r.hasGen(name) || r.hasDvar(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateGenerator, name)
	}
	r.gens = append(r.gens, name)
	if img != nil {
		if r.deriv == nil {
			r.deriv = make(map[string]Expr)
		}
		r.deriv[name] = img
	}
	return nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, "[]{}()*+^ ") {
		return fmt.Errorf("dring: invalid generator name %q", name)
	}
	return nil
}

// =============================================================================
// Queries
// =============================================================================

// IsDifferential reports whether the ring carries a derivation.
func (r *Ring) IsDifferential() bool { return r.diff }

// IsField reports whether the ring is a field.
func (r *Ring) IsField() bool { return r.field }

// IsRationals reports whether the ring is the plain rationals.
func (r *Ring) IsRationals() bool { return len(r.gens) == 0 && len(r.dvars) == 0 }

// Gens returns the plain generator names in order.
func (r *Ring) Gens() []string { return append([]string(nil), r.gens...) }

// DVars returns the differential variable names in order.
func (r *Ring) DVars() []string { return append([]string(nil), r.dvars...) }

// AlgebraicCore strips the differential structure and jet variables,
// returning the plain algebraic ring underlying jet-free elements.
func (r *Ring) AlgebraicCore() *Ring {
	nr := r.clone()
	nr.dvars = nil
	nr.diff = false
	nr.deriv = nil
	return nr
}

// Base returns the polynomial layer under a fraction field; rings that
// are not fields are returned unchanged.
func (r *Ring) Base() *Ring {
	if !r.field {
		return r
	}
	nr := r.clone()
	nr.field = false
	return nr
}

func (r *Ring) hasGen(name string) bool {
	for _, g := range r.gens {
		if g == name {
			return true
		}
	}
	return false
}

func (r *Ring) hasDvar(name string) bool {
	for _, v := range r.dvars {
		if v == name {
			return true
		}
	}
	return false
}

// resolves reports whether a symbol name denotes a generator or a jet
// of a differential variable of the ring.
func (r *Ring) resolves(name string) bool {
	if r.hasGen(name) {
		return true
	}
	if base, _, ok := ParseJet(name); ok && r.hasDvar(base) {
		return true
	}
	return false
}

// String renders the descriptor, e.g. "D(Frac(QQ[x]){u_0,z})" for the
// jet ring in u_0 and z over the differential field QQ(x).
func (r *Ring) String() string {
	s := "QQ"
	if len(r.gens) > 0 {
		s += "[" + strings.Join(r.gens, ",") + "]"
	}
	if r.field && len(r.gens) > 0 {
		s = "Frac(" + s + ")"
	}
	if len(r.dvars) > 0 {
		s += "{" + strings.Join(r.dvars, ",") + "}"
	}
	if r.diff && (len(r.gens) > 0 || len(r.dvars) > 0) {
		s = "D(" + s + ")"
	}
	return s
}

// =============================================================================
// Element construction
// =============================================================================

// Gen resolves a generator by name: plain generators map to their
// symbol, differential variables to their zeroth jet, and explicit jet
// names like "u_0[2]" to that jet.
func (r *Ring) Gen(name string) (Element, error) {
	switch {
	case r.hasGen(name):
		return Element{ring: r, expr: S(name)}, nil
	case r.hasDvar(name):
		return Element{ring: r, expr: S(JetName(name, 0))}, nil
	}
	if base, _, ok := ParseJet(name); ok && r.hasDvar(base) {
		return Element{ring: r, expr: S(name)}, nil
	}
	return Element{}, fmt.Errorf("%w: %q in %s", ErrUnknownGenerator, name, r)
}

// Zero returns the additive identity.
func (r *Ring) Zero() Element { return Element{ring: r, expr: N(0)} }

// One returns the multiplicative identity.
func (r *Ring) One() Element { return Element{ring: r, expr: N(1)} }

// Int returns the integer n as an element.
func (r *Ring) Int(n int64) Element { return Element{ring: r, expr: N(n)} }

// Rat returns the rational v as an element.
func (r *Ring) Rat(v Rational) Element { return Element{ring: r, expr: R(v)} }

// FromExpr canonicalizes e and wraps it as an element, requiring every
// symbol to resolve in the ring.
func (r *Ring) FromExpr(e Expr) (Element, error) {
	c := Canonicalize(e)
	for s := range FreeSymbols(c) {
		if !r.resolves(s) {
			return Element{}, fmt.Errorf("%w: symbol %q in %s", ErrCoercion, s, r)
		}
	}
	return Element{ring: r, expr: c}, nil
}

// Coerce reinterprets el in r, requiring every symbol of el to resolve
// in r.
func (r *Ring) Coerce(el Element) (Element, error) {
	if el.ring == nil {
		panic("dring: zero-value element")
	}
	if el.ring == r || sameRing(el.ring, r) {
		return Element{ring: r, expr: el.expr}, nil
	}
	return r.FromExpr(el.expr)
}

// =============================================================================
// Derivation
// =============================================================================

// Derive applies the ring derivation to an expression via the chain
// rule. Panics when the ring has no differential structure or the
// expression uses symbols outside the ring.
func (r *Ring) Derive(e Expr) Expr {
	if !r.diff {
		panic("dring: ring has no differential structure")
	}
	var parts []Expr
	for _, s := range sortedSymbols(e) {
		img := r.derivOf(s)
		if isZeroExpr(img) {
			continue
		}
		pd := e.PDiff(s)
		if isZeroExpr(pd) {
			continue
		}
		parts = append(parts, MulOf(pd, img))
	}
	return Canonicalize(AddOf(parts...))
}

func (r *Ring) derivOf(name string) Expr {
	if base, k, ok := ParseJet(name); ok && r.hasDvar(base) {
		return S(JetName(base, k+1))
	}
	if r.hasGen(name) {
		if img, ok := r.deriv[name]; ok {
			return img
		}
		return N(0)
	}
	panic(fmt.Sprintf("dring: symbol %q not in ring %s", name, r))
}
