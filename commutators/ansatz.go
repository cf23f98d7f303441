package commutators

import (
	"fmt"

	"github.com/rldelgado/dalgebra/dring"
	"github.com/rldelgado/dalgebra/internal/logging"
)

// GeneratePolynomialAnsatz builds the n-1 coefficient values for a
// degree-d polynomial ansatz: each value is sum_j b_i_j x^j with fresh
// symbols b_i_j, over the differential ring extending base by the
// ansatz symbols and the variable x with derivation d/dx. A nil base
// means the plain rationals.
func GeneratePolynomialAnsatz(base *dring.Ring, n, d int, opts ...Option) ([]dring.Element, error) {
	cfg := applyOptions(opts)
	if base == nil {
		base = dring.Rationals()
	}
	if n < 2 {
		return nil, fmt.Errorf("[GenPolyAn] the operator order must be an integer greater than 1, got %d", n)
	}
	if d < 0 {
		return nil, fmt.Errorf("[GenPolyAn] the ansatz degree must be a non-negative integer, got %d", d)
	}
	logging.New("ansatz").Debug("building the polynomial ansatz",
		"n", n, "degree", d, "base", base.String())

	names := make([]string, 0, (n-1)*(d+1)+1)
	for i := 0; i <= n-2; i++ {
		for j := 0; j <= d; j++ {
			names = append(names, fmt.Sprintf("%s_%d_%d", cfg.ansatz, i, j))
		}
	}
	names = append(names, cfg.varname)
	poly, err := dring.PolynomialRing(base, names...)
	if err != nil {
		return nil, fmt.Errorf("[GenPolyAn] building the ansatz ring: %w", err)
	}
	ring, err := dring.NewDifferentialRing(poly, map[string]dring.Expr{cfg.varname: dring.N(1)})
	if err != nil {
		return nil, fmt.Errorf("[GenPolyAn] attaching the derivation: %w", err)
	}
	x, err := ring.Gen(cfg.varname)
	if err != nil {
		return nil, fmt.Errorf("[GenPolyAn] resolving the variable %q: %w", cfg.varname, err)
	}

	out := make([]dring.Element, 0, n-1)
	for i := 0; i <= n-2; i++ {
		acc := ring.Zero()
		for j := 0; j <= d; j++ {
			b, err := ring.Gen(fmt.Sprintf("%s_%d_%d", cfg.ansatz, i, j))
			if err != nil {
				return nil, fmt.Errorf("[GenPolyAn] resolving the ansatz symbol: %w", err)
			}
			acc = acc.Add(b.Mul(x.PowInt(j)))
		}
		out = append(out, acc)
	}
	return out, nil
}
