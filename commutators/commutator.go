// Package commutators computes the algebraic conditions under which a
// linear combination of almost-commuting operators commutes with a
// normal-form differential operator.
//
// For a normal-form operator L of order n the package builds Wilson's
// almost-commuting basis P_0, ..., P_m, forms the ansatz
// P = sum c_i P_i with a flag of fresh constants c_i, and collapses the
// requirement [L, P] = 0 into an ideal of algebraic equations on the
// flag, obtained by running an extraction strategy over the n-1
// residual coefficients of the commutator.
package commutators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rldelgado/dalgebra/dpoly"
	"github.com/rldelgado/dalgebra/dring"
	"github.com/rldelgado/dalgebra/internal/logging"
)

// Problem describes one commutation question. Exactly one of Operator
// or Coefficients/CoefficientMap must be set: Operator hands in a
// concrete normal-form operator, the other two hand in the n-1
// coefficients of an order-n operator directly, densely or sparsely.
// Missing sparse entries are zero.
type Problem struct {
	// OrderBound is the highest basis index m; the flag of constants
	// has m+1 entries. It must be at least the operator order.
	OrderBound int

	// Operator is the base operator L, monic of order n >= 2 with zero
	// subleading coefficient.
	Operator *dpoly.Poly

	// Order is the operator order n when the coefficients are given
	// explicitly. It must be left zero when Operator is set.
	Order int

	// Coefficients lists the values of u_0, ..., u_{n-2} in ascending
	// order. Its length must be exactly n-1.
	Coefficients []dring.Element

	// CoefficientMap maps coefficient indices to values; keys must lie
	// between 0 and n-2.
	CoefficientMap map[int]dring.Element

	// Extract turns one residual coefficient of [L, P] into algebraic
	// equations. Required.
	Extract ExtractFunc

	// FlagName is the prefix of the flag constants (default "c").
	FlagName string

	// PartialName is the operator variable (default "z", or the
	// variable of Operator when one is given).
	PartialName string
}

// System is the answer to a Problem: the base operator with its
// coefficients filled in, the generic ansatz P over the flag of
// constants, and the ideal the flag must satisfy for [L, P] to vanish.
type System struct {
	L         *dpoly.Poly
	P         *dpoly.Poly
	Ideal     *dring.Ideal
	Constants []dring.Element
}

// GetEquationsForSolution computes the commutation conditions for the
// given problem. The base operator is rebuilt from the generic
// normal-form operator with the coefficient values substituted in, the
// ansatz P = sum c_i P_i ranges over the almost-commuting basis up to
// the order bound, and the returned ideal collects the extracted
// equations from every residual coefficient of [L, P].
func GetEquationsForSolution(p Problem) (*System, error) {
	log := logging.New("assembler")
	if p.Extract == nil {
		return nil, errors.New("[GEFS] an extraction strategy is required")
	}
	flag := p.FlagName
	if flag == "" {
		flag = defaultConfig().flag
	}
	partial := p.PartialName
	if partial == "" {
		if p.Operator != nil {
			partial = p.Operator.Variable()
		} else {
			partial = defaultConfig().partial
		}
	}

	n, values, err := problemCoefficients(p)
	if err != nil {
		return nil, err
	}
	m := p.OrderBound
	if m < n {
		return nil, fmt.Errorf("[GEFS] the order bound must be at least the operator order %d, got %d", n, m)
	}

	parent := dring.Rationals()
	for j := 0; j <= n-2; j++ {
		v, ok := values[j]
		if !ok {
			continue
		}
		if parent, err = dring.Pushout(parent, v.Ring()); err != nil {
			return nil, fmt.Errorf("[GEFS] incompatible coefficient rings: %w", err)
		}
	}
	if !parent.IsDifferential() {
		return nil, errors.New("[GEFS] the coefficients of the operator must live in a differential ring")
	}
	for j := 0; j <= n-2; j++ {
		if v, ok := values[j]; ok && usesName(v, partial) {
			return nil, fmt.Errorf("[GEFS] the coefficient %d mentions the operator variable %q", j, partial)
		}
	}
	log.Debug("computed the common parent of the coefficients", "ring", parent.String())

	cNames := make([]string, 0, m+1)
	for i := 0; i <= m; i++ {
		cNames = append(cNames, fmt.Sprintf("%s_%d", flag, i))
	}
	diffBase, err := parent.AddConstants(cNames...)
	if err != nil {
		return nil, fmt.Errorf("[GEFS] cannot adjoin the flag of constants: %w", err)
	}
	log.Debug("adjoined the flag of constants", "ring", diffBase.String(), "count", m+1)
	consts := make([]dring.Element, 0, m+1)
	for _, name := range cNames {
		c, err := diffBase.Gen(name)
		if err != nil {
			return nil, fmt.Errorf("[GEFS] cannot resolve the flag constant %q: %w", name, err)
		}
		consts = append(consts, c)
	}

	assign := make(map[string]dring.Element, n-1)
	for j := 0; j <= n-2; j++ {
		if v, ok := values[j]; ok {
			cv, err := diffBase.Coerce(v)
			if err != nil {
				return nil, fmt.Errorf("[GEFS] cannot lift the coefficient %d into %s: %w", j, diffBase, err)
			}
			assign[coeffName(j)] = cv
		} else {
			assign[coeffName(j)] = diffBase.Zero()
		}
	}

	log.Debug("computing the almost-commuting basis", "n", n, "bound", m)
	basis := make([]*dpoly.Poly, 0, m+1)
	hier := make([][]dring.Element, 0, m+1)
	for i := 0; i <= m; i++ {
		pi, hi, err := AlmostCommutingWilson(n, i, WithPartialName(partial))
		if err != nil {
			return nil, err
		}
		basis = append(basis, pi)
		hier = append(hier, hi)
	}

	opRing := diffBase
	if _, err := diffBase.Gen(partial); err != nil {
		if opRing, err = dring.DifferentialPolynomialRing(diffBase, partial); err != nil {
			return nil, fmt.Errorf("[GEFS] building the operator ring: %w", err)
		}
	}

	log.Debug("assembling the guessed commutator", "terms", m+1)
	var ansatz *dpoly.Poly
	for i := 0; i <= m; i++ {
		pu, err := basis[i].Substitute(assign)
		if err != nil {
			return nil, fmt.Errorf("[GEFS] substituting the coefficients into the basis element %d: %w", i, err)
		}
		term, err := pu.ScalarMul(consts[i])
		if err != nil {
			return nil, fmt.Errorf("[GEFS] scaling the basis element %d by its flag constant: %w", i, err)
		}
		if ansatz == nil {
			ansatz = term
			continue
		}
		if ansatz, err = ansatz.Add(term); err != nil {
			return nil, fmt.Errorf("[GEFS] accumulating the ansatz: %w", err)
		}
	}
	if ansatz, err = ansatz.ChangeRing(opRing); err != nil {
		return nil, fmt.Errorf("[GEFS] lifting the ansatz into %s: %w", opRing, err)
	}

	outL, err := basis[n].Substitute(assign)
	if err != nil {
		return nil, fmt.Errorf("[GEFS] substituting the coefficients into the base operator: %w", err)
	}
	if outL, err = outL.ChangeRing(opRing); err != nil {
		return nil, fmt.Errorf("[GEFS] lifting the base operator into %s: %w", opRing, err)
	}

	log.Debug("assembling the commuting conditions")
	cond := make([]dring.Element, n-1)
	for j := 0; j <= n-2; j++ {
		acc := diffBase.Zero()
		for i := 0; i <= m; i++ {
			hv, err := hier[i][j].Substitute(assign)
			if err != nil {
				return nil, fmt.Errorf("[GEFS] substituting the coefficients into the hierarchy: %w", err)
			}
			acc = acc.Add(hv.Mul(consts[i]))
		}
		if cond[j], err = diffBase.Coerce(acc); err != nil {
			return nil, fmt.Errorf("[GEFS] lifting the commuting condition %d into %s: %w", j, diffBase, err)
		}
	}

	log.Debug("extracting the algebraic equations", "conditions", len(cond))
	var eqs []dring.Element
	for j := range cond {
		parts, err := p.Extract(cond[j].Numerator())
		if err != nil {
			return nil, fmt.Errorf("[GEFS] extracting the equations of the condition %d: %w", j, err)
		}
		eqs = append(eqs, parts...)
	}
	idealRing := diffBase.AlgebraicCore()
	if len(eqs) > 0 {
		idealRing = eqs[0].Ring()
		for _, e := range eqs[1:] {
			if idealRing, err = dring.Pushout(idealRing, e.Ring()); err != nil {
				return nil, fmt.Errorf("[GEFS] joining the equation rings: %w", err)
			}
		}
	}

	return &System{
		L:         outL,
		P:         ansatz,
		Ideal:     dring.NewIdeal(idealRing, eqs),
		Constants: consts,
	}, nil
}

// problemCoefficients validates the mutually exclusive operator inputs
// and normalizes them into the order n and a sparse coefficient map.
func problemCoefficients(p Problem) (int, map[int]dring.Element, error) {
	values := make(map[int]dring.Element)
	if p.Operator != nil {
		if p.Order != 0 || p.Coefficients != nil || p.CoefficientMap != nil {
			return 0, nil, errors.New("[GEFS] too many arguments: an operator was given together with explicit coefficients")
		}
		if !p.Operator.IsLinear() {
			return 0, nil, errors.New("[GEFS] the base operator is not linear")
		}
		if !p.Operator.IsNormalForm() {
			return 0, nil, errors.New("[GEFS] the base operator is not in normal form")
		}
		n := p.Operator.Order()
		for j := 0; j <= n-2; j++ {
			c := p.Operator.Coefficient(j)
			if !c.IsZero() {
				values[j] = c
			}
		}
		return n, values, nil
	}
	if p.Coefficients == nil && p.CoefficientMap == nil {
		return 0, nil, errors.New("[GEFS] too few arguments: either an operator or its coefficients must be given")
	}
	if p.Coefficients != nil && p.CoefficientMap != nil {
		return 0, nil, errors.New("[GEFS] the coefficients must be given as a list or as a map, not both")
	}
	n := p.Order
	if n < 2 {
		return 0, nil, fmt.Errorf("[GEFS] the operator order must be an integer greater than 1, got %d", n)
	}
	if p.Coefficients != nil {
		if len(p.Coefficients) != n-1 {
			return 0, nil, fmt.Errorf("[GEFS] the coefficient list must have length %d, got %d", n-1, len(p.Coefficients))
		}
		for j, v := range p.Coefficients {
			if v.Ring() != nil {
				values[j] = v
			}
		}
		return n, values, nil
	}
	keys := make([]int, 0, len(p.CoefficientMap))
	for j := range p.CoefficientMap {
		keys = append(keys, j)
	}
	sort.Ints(keys)
	for _, j := range keys {
		if j < 0 || j > n-2 {
			return 0, nil, fmt.Errorf("[GEFS] coefficient keys must lie between 0 and %d, got %d", n-2, j)
		}
		if v := p.CoefficientMap[j]; v.Ring() != nil {
			values[j] = v
		}
	}
	return n, values, nil
}

func coeffName(j int) string {
	return fmt.Sprintf("%s_%d", defaultConfig().coeff, j)
}

// usesName reports whether the element mentions the named symbol,
// directly or through one of its jets.
func usesName(v dring.Element, name string) bool {
	for _, s := range v.Symbols() {
		if s == name {
			return true
		}
		if base, _, ok := dring.ParseJet(s); ok && base == name {
			return true
		}
	}
	return false
}

// PolynomialCommutator answers the commutation question for the
// generic operator of order n whose coefficients are polynomials of
// degree d in the derivation variable, with fresh symbols as the
// polynomial coefficients. The resulting ideal constrains both the
// flag of constants and the ansatz symbols.
func PolynomialCommutator(n, m, d int, opts ...Option) (*System, error) {
	cfg := applyOptions(opts)
	logging.New("assembler").Debug("building the polynomial commutator problem",
		"n", n, "bound", m, "degree", d)
	ansatz, err := GeneratePolynomialAnsatz(dring.Rationals(), n, d, opts...)
	if err != nil {
		return nil, err
	}
	return GetEquationsForSolution(Problem{
		OrderBound:   m,
		Order:        n,
		Coefficients: ansatz,
		Extract:      PolynomialEquationsIn(cfg.varname),
		FlagName:     cfg.flag,
		PartialName:  cfg.partial,
	})
}
