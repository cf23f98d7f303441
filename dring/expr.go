package dring

import (
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// Expression interface
// =============================================================================

// Expr is an immutable symbolic expression. Implementations are Num,
// Sym, Add, Mul, Pow and Func; the set is closed within this package.
//
// Simplify returns an equivalent expression in local normal form: Add
// merges like terms by monomial key, Mul merges equal bases by summing
// exponents and folds numeric factors. Simplify does not distribute
// products over sums; Canonicalize does.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string

	// Sub substitutes the named symbols simultaneously. Images are
	// not re-substituted.
	Sub(vars map[string]Expr) Expr

	// PDiff is the formal partial derivative with respect to one
	// symbol. Ring derivations are built on top of it via the chain
	// rule; see Ring.Derive.
	PDiff(name string) Expr

	// Eval folds the expression to an exact rational when it contains
	// no symbols or unevaluable nodes.
	Eval() (Rational, bool)

	Equal(other Expr) bool

	kind() string
}

// =============================================================================
// Numbers
// =============================================================================

// Num is an exact rational constant.
type Num struct {
	val Rational
}

// N returns the integer n as an expression.
func N(n int64) *Num { return &Num{val: RatInt(n)} }

// F returns the fraction p/q as an expression. Panics if q is zero.
func F(p, q int64) *Num { return &Num{val: RatFrac(p, q)} }

// R wraps a Rational as an expression.
func R(r Rational) *Num { return &Num{val: r} }

// Rat returns the wrapped rational value.
func (n *Num) Rat() Rational { return n.val }

func (n *Num) Simplify() Expr { return n }

func (n *Num) String() string { return n.val.String() }

func (n *Num) LaTeX() string { return n.val.LaTeX() }

func (n *Num) Sub(vars map[string]Expr) Expr { return n }

func (n *Num) PDiff(name string) Expr { return N(0) }

func (n *Num) Eval() (Rational, bool) { return n.val, true }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) kind() string { return "num" }

// =============================================================================
// Symbols
// =============================================================================

// Sym is a named symbol. Jet variables use the bracketed form produced
// by JetName, e.g. "u_0[2]" for the second derivative of u_0.
type Sym struct {
	name string
}

// S returns the symbol with the given name. Panics on an empty name.
func S(name string) *Sym {
	if name == "" {
		panic("dring: empty symbol name")
	}
	return &Sym{name: name}
}

// Name returns the symbol's name.
func (s *Sym) Name() string { return s.name }

func (s *Sym) Simplify() Expr { return s }

func (s *Sym) String() string { return s.name }

func (s *Sym) LaTeX() string {
	if base, k, ok := ParseJet(s.name); ok {
		if k == 0 {
			return base
		}
		return base + "^{(" + strconv.Itoa(k) + ")}"
	}
	return s.name
}

func (s *Sym) Sub(vars map[string]Expr) Expr {
	if img, ok := vars[s.name]; ok {
		return img
	}
	return s
}

func (s *Sym) PDiff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Eval() (Rational, bool) { return Rational{}, false }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

func (s *Sym) kind() string { return "sym" }

// =============================================================================
// Sums
// =============================================================================

// Add is an n-ary sum. In canonical form the terms are monomials in
// ascending key order with at most one trailing numeric constant.
type Add struct {
	terms []Expr
}

// AddOf returns the simplified sum of the given terms.
func AddOf(terms ...Expr) Expr {
	if len(terms) == 0 {
		return N(0)
	}
	return (&Add{terms: terms}).Simplify()
}

// Terms returns the term list.
func (a *Add) Terms() []Expr { return a.terms }

func (a *Add) Simplify() Expr {
	var flat []Expr
	for _, t := range a.terms {
		switch s := t.Simplify().(type) {
		case *Add:
			flat = append(flat, s.terms...)
		default:
			flat = append(flat, s)
		}
	}

	type group struct {
		coeff Rational
		body  Expr
	}
	constPart := RatZero()
	groups := make(map[string]*group)
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constPart = constPart.Add(n.val)
			continue
		}
		coeff, body := splitCoeff(t)
		key := body.String()
		g, ok := groups[key]
		if !ok {
			groups[key] = &group{coeff: coeff, body: body}
			continue
		}
		g.coeff = g.coeff.Add(coeff)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	terms := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		g := groups[k]
		if g.coeff.IsZero() {
			continue
		}
		terms = append(terms, mulCoeffBody(g.coeff, g.body))
	}
	if len(terms) == 0 {
		return R(constPart)
	}
	if !constPart.IsZero() {
		terms = append(terms, R(constPart))
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return &Add{terms: terms}
}

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) LaTeX() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(vars map[string]Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Sub(vars)
	}
	return AddOf(terms...)
}

func (a *Add) PDiff(name string) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.PDiff(name)
	}
	return AddOf(terms...)
}

func (a *Add) Eval() (Rational, bool) {
	out := RatZero()
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return Rational{}, false
		}
		out = out.Add(v)
	}
	return out, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) kind() string { return "add" }

// splitCoeff separates the numeric coefficient of a canonical non-Num
// term from its monomial body.
func splitCoeff(t Expr) (Rational, Expr) {
	m, ok := t.(*Mul)
	if !ok {
		return RatOne(), t
	}
	head, okNum := m.factors[0].(*Num)
	if !okNum {
		return RatOne(), t
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return head.val, rest[0]
	}
	return head.val, &Mul{factors: rest}
}

// mulCoeffBody attaches a numeric coefficient to a canonical monomial
// body without re-simplifying.
func mulCoeffBody(c Rational, body Expr) Expr {
	if c.IsOne() {
		return body
	}
	if m, ok := body.(*Mul); ok {
		fs := make([]Expr, 0, len(m.factors)+1)
		fs = append(fs, R(c))
		fs = append(fs, m.factors...)
		return &Mul{factors: fs}
	}
	return &Mul{factors: []Expr{R(c), body}}
}

// =============================================================================
// Products
// =============================================================================

// Mul is an n-ary product. In canonical form an optional numeric
// coefficient comes first, followed by distinct bases in ascending key
// order with their exponents merged.
type Mul struct {
	factors []Expr
}

// MulOf returns the simplified product of the given factors.
func MulOf(factors ...Expr) Expr {
	if len(factors) == 0 {
		return N(1)
	}
	return (&Mul{factors: factors}).Simplify()
}

// Factors returns the factor list.
func (m *Mul) Factors() []Expr { return m.factors }

func (m *Mul) Simplify() Expr {
	var flat []Expr
	for _, f := range m.factors {
		switch s := f.Simplify().(type) {
		case *Mul:
			flat = append(flat, s.factors...)
		default:
			flat = append(flat, s)
		}
	}

	type powGroup struct {
		base Expr
		exp  Expr
	}
	coeff := RatOne()
	groups := make(map[string]*powGroup)
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			if n.val.IsZero() {
				return N(0)
			}
			coeff = coeff.Mul(n.val)
			continue
		}
		base, exp := splitPow(f)
		key := base.String()
		g, ok := groups[key]
		if !ok {
			groups[key] = &powGroup{base: base, exp: exp}
			continue
		}
		g.exp = AddOf(g.exp, exp)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var factors []Expr
	for _, k := range keys {
		g := groups[k]
		en, isNum := g.exp.(*Num)
		if isNum {
			if en.val.IsZero() {
				continue
			}
			if bn, ok := g.base.(*Num); ok && en.val.IsInt() {
				if k64, fits := en.val.Int64(); fits {
					coeff = coeff.Mul(bn.val.Pow(int(k64)))
					continue
				}
			}
			if en.val.IsOne() {
				factors = append(factors, g.base)
				continue
			}
		}
		factors = append(factors, &Pow{base: g.base, exp: g.exp})
	}

	if len(factors) == 0 {
		return R(coeff)
	}
	if coeff.IsZero() {
		return N(0)
	}
	if !coeff.IsOne() {
		factors = append([]Expr{R(coeff)}, factors...)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return &Mul{factors: factors}
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, ok := f.(*Add); ok {
			parts[i] = "(" + f.String() + ")"
			continue
		}
		parts[i] = f.String()
	}
	return strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, 0, len(m.factors))
	for i, f := range m.factors {
		if i == 0 {
			if n, ok := f.(*Num); ok {
				v := n.val
				if v.Cmp(RatInt(-1)) == 0 && len(m.factors) > 1 {
					parts = append(parts, "-")
					continue
				}
				parts = append(parts, v.LaTeX())
				continue
			}
		}
		if _, ok := f.(*Add); ok {
			parts = append(parts, "\\left("+f.LaTeX()+"\\right)")
			continue
		}
		parts = append(parts, f.LaTeX())
	}
	out := strings.Join(parts, " ")
	return strings.ReplaceAll(out, "- ", "-")
}

func (m *Mul) Sub(vars map[string]Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Sub(vars)
	}
	return MulOf(factors...)
}

func (m *Mul) PDiff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		df := m.factors[i].PDiff(name)
		if isZeroExpr(df) {
			continue
		}
		fs := make([]Expr, len(m.factors))
		copy(fs, m.factors)
		fs[i] = df
		terms = append(terms, MulOf(fs...))
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (Rational, bool) {
	out := RatOne()
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return Rational{}, false
		}
		out = out.Mul(v)
	}
	return out, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) kind() string { return "mul" }

// splitPow views a canonical factor as base^exp.
func splitPow(f Expr) (Expr, Expr) {
	if p, ok := f.(*Pow); ok {
		return p.base, p.exp
	}
	return f, N(1)
}

// =============================================================================
// Powers
// =============================================================================

// Pow is base^exp. Negative integer exponents represent division;
// quotient splitting and fraction-field handling build on them.
type Pow struct {
	base, exp Expr
}

// PowOf returns the simplified power base^exp.
func PowOf(base, exp Expr) Expr {
	return (&Pow{base: base, exp: exp}).Simplify()
}

// Base returns the base.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the exponent.
func (p *Pow) Exp() Expr { return p.exp }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}

	en, expIsNum := exp.(*Num)
	if expIsNum {
		if en.val.IsZero() {
			return N(1)
		}
		if en.val.IsOne() {
			return base
		}
		if bn, ok := base.(*Num); ok && en.val.IsInt() {
			if bn.val.IsZero() && en.val.Sign() < 0 {
				panic("dring: division by zero")
			}
			if k64, fits := en.val.Int64(); fits {
				return R(bn.val.Pow(int(k64)))
			}
		}
		if mb, ok := base.(*Mul); ok && en.val.IsInt() {
			parts := make([]Expr, len(mb.factors))
			for i, f := range mb.factors {
				parts[i] = PowOf(f, exp)
			}
			return MulOf(parts...)
		}
	}
	if bn, ok := base.(*Num); ok && bn.val.IsOne() {
		return N(1)
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	bs := p.base.String()
	switch b := p.base.(type) {
	case *Add, *Mul:
		bs = "(" + bs + ")"
	case *Num:
		if b.val.Sign() < 0 || !b.val.IsInt() {
			bs = "(" + bs + ")"
		}
	}
	es := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul:
		es = "(" + es + ")"
	}
	return bs + "^" + es
}

func (p *Pow) LaTeX() string {
	bs := p.base.LaTeX()
	switch b := p.base.(type) {
	case *Add, *Mul:
		bs = "\\left(" + bs + "\\right)"
	case *Num:
		if b.val.Sign() < 0 || !b.val.IsInt() {
			bs = "\\left(" + bs + "\\right)"
		}
	}
	return bs + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(vars map[string]Expr) Expr {
	return PowOf(p.base.Sub(vars), p.exp.Sub(vars))
}

func (p *Pow) PDiff(name string) Expr {
	en, ok := p.exp.(*Num)
	if !ok {
		panic("dring: derivative of symbolic exponent")
	}
	db := p.base.PDiff(name)
	if isZeroExpr(db) {
		return N(0)
	}
	return MulOf(R(en.val), PowOf(p.base, R(en.val.Sub(RatOne()))), db)
}

func (p *Pow) Eval() (Rational, bool) {
	bv, ok := p.base.Eval()
	if !ok {
		return Rational{}, false
	}
	ev, ok := p.exp.Eval()
	if !ok || !ev.IsInt() {
		return Rational{}, false
	}
	k, fits := ev.Int64()
	if !fits {
		return Rational{}, false
	}
	if bv.IsZero() && k < 0 {
		return Rational{}, false
	}
	return bv.Pow(int(k)), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) kind() string { return "pow" }

// =============================================================================
// Named functions
// =============================================================================

// Func is a named unary function node. The supported names are "exp",
// "sin" and "cos"; each has an exact chain-rule derivative and no
// numeric folding beyond special values at zero.
type Func struct {
	name string
	arg  Expr
}

// ExpOf returns exp(arg).
func ExpOf(arg Expr) Expr { return funcOf("exp", arg) }

// SinOf returns sin(arg).
func SinOf(arg Expr) Expr { return funcOf("sin", arg) }

// CosOf returns cos(arg).
func CosOf(arg Expr) Expr { return funcOf("cos", arg) }

func funcOf(name string, arg Expr) Expr {
	return (&Func{name: name, arg: arg}).Simplify()
}

// Name returns the function name.
func (f *Func) Name() string { return f.name }

// Arg returns the argument.
func (f *Func) Arg() Expr { return f.arg }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if isZeroExpr(arg) {
		switch f.name {
		case "exp", "cos":
			return N(1)
		case "sin":
			return N(0)
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(vars map[string]Expr) Expr {
	return funcOf(f.name, f.arg.Sub(vars))
}

func (f *Func) PDiff(name string) Expr {
	da := f.arg.PDiff(name)
	if isZeroExpr(da) {
		return N(0)
	}
	switch f.name {
	case "exp":
		return MulOf(ExpOf(f.arg), da)
	case "sin":
		return MulOf(CosOf(f.arg), da)
	case "cos":
		return MulOf(N(-1), SinOf(f.arg), da)
	}
	panic("dring: derivative of unknown function " + f.name)
}

func (f *Func) Eval() (Rational, bool) { return Rational{}, false }

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) kind() string { return "func" }

// =============================================================================
// Small shared helpers
// =============================================================================

func isZeroExpr(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.IsZero()
}

func isOneExpr(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.IsOne()
}
