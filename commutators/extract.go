package commutators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rldelgado/dalgebra/dring"
)

// ExtractFunc turns one commuting condition into a list of algebraic
// equations. Strategies decide what "algebraic" means: the polynomial
// strategy splits by powers of a variable, a custom strategy may split
// by any family of functions its conditions are spanned by.
type ExtractFunc func(h dring.Element) ([]dring.Element, error)

// PolynomialEquationsIn returns the extraction strategy that reads the
// condition as a polynomial in the named variable.
func PolynomialEquationsIn(name string) ExtractFunc {
	return func(h dring.Element) ([]dring.Element, error) {
		return GeneratePolynomialEquations(h, name)
	}
}

// GeneratePolynomialEquations extracts the coefficients of the powers
// of the named variable from the numerator of h, in ascending degree
// order and skipping zero coefficients, and lifts them into the
// algebraic core of the condition's ring. A condition that is not
// polynomial in the remaining symbols is an error.
func GeneratePolynomialEquations(h dring.Element, name string) ([]dring.Element, error) {
	if name == "" {
		return nil, errors.New("[GenPolyEqus] the polynomial variable must be a non-empty name")
	}
	num := h.Numerator()
	core := num.Ring().AlgebraicCore()
	coeffs := num.CoeffsIn(name)
	degrees := make([]int, 0, len(coeffs))
	for k := range coeffs {
		degrees = append(degrees, k)
	}
	sort.Ints(degrees)
	out := make([]dring.Element, 0, len(coeffs))
	for _, k := range degrees {
		eq, err := core.FromExpr(coeffs[k].Expr())
		if err != nil {
			return nil, fmt.Errorf("[GenPolyEqus] the coefficient of degree %d does not lie in %s: %w", k, core, err)
		}
		out = append(out, eq)
	}
	return out, nil
}
