package commutators

import (
	"fmt"

	"github.com/rldelgado/dalgebra/dpoly"
	"github.com/rldelgado/dalgebra/dring"
	"github.com/rldelgado/dalgebra/internal/logging"
)

// genericRing builds the differential ring QQ{u_0,...,u_{n-2},z} that
// hosts the generic normal-form operator of order n. It returns the
// ring and the coefficient names in ascending order.
func genericRing(n int, cfg config) (*dring.Ring, []string, error) {
	names := make([]string, 0, n)
	for j := 0; j <= n-2; j++ {
		names = append(names, fmt.Sprintf("%s_%d", cfg.coeff, j))
	}
	names = append(names, cfg.partial)
	r, err := dring.DifferentialPolynomialRing(dring.Rationals(), names...)
	if err != nil {
		return nil, nil, err
	}
	return r, names[:n-1], nil
}

func genericOperator(r *dring.Ring, uNames []string, partial string, n int) (*dpoly.Poly, error) {
	coeffs := map[int]dring.Element{n: r.One()}
	for j, name := range uNames {
		g, err := r.Gen(name)
		if err != nil {
			return nil, err
		}
		coeffs[j] = g
	}
	return dpoly.New(r, partial, coeffs)
}

// GenericNormal returns the generic normal-form operator of order n,
//
//	L = d^n + u_{n-2} d^{n-2} + ... + u_1 d + u_0,
//
// over the ring QQ{u_0,...,u_{n-2},z}.
func GenericNormal(n int, opts ...Option) (*dpoly.Poly, error) {
	cfg := applyOptions(opts)
	if n < 2 {
		return nil, fmt.Errorf("[GenNormal] the operator order must be an integer greater than 1, got %d", n)
	}
	r, uNames, err := genericRing(n, cfg)
	if err != nil {
		return nil, fmt.Errorf("[GenNormal] building the generic ring: %w", err)
	}
	return genericOperator(r, uNames, cfg.partial, n)
}

// AlmostCommutingWilson returns the i-th element P_i of the almost
// commuting basis for the generic normal-form operator of order n,
// together with the hierarchy vector: the n-1 coefficients of the
// residual [L, P_i], which has order at most n-2.
//
// P_i is the unique monic operator of order i with zero subleading
// coefficient such that [L, P_i] has order at most n-2; it equals the
// differential part of the i/n-th power of the formal n-th root of L.
// Indices divisible by n give true powers of L, so their hierarchy
// vanishes identically.
func AlmostCommutingWilson(n, i int, opts ...Option) (*dpoly.Poly, []dring.Element, error) {
	cfg := applyOptions(opts)
	if n < 2 {
		return nil, nil, fmt.Errorf("[ACW] the operator order must be an integer greater than 1, got %d", n)
	}
	if i < 0 {
		return nil, nil, fmt.Errorf("[ACW] the basis index must be a non-negative integer, got %d", i)
	}
	log := logging.New("oracle")

	r, uNames, err := genericRing(n, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("[ACW] building the generic ring: %w", err)
	}
	zeros := make([]dring.Element, n-1)
	for j := range zeros {
		zeros[j] = r.Zero()
	}

	if i == 0 {
		p, err := dpoly.Identity(r, cfg.partial)
		if err != nil {
			return nil, nil, fmt.Errorf("[ACW] building the identity operator: %w", err)
		}
		return p, zeros, nil
	}

	l, err := genericOperator(r, uNames, cfg.partial, n)
	if err != nil {
		return nil, nil, fmt.Errorf("[ACW] building the generic operator: %w", err)
	}

	if i%n == 0 {
		log.Debug("basis index is a multiple of the order, returning a power of the base operator", "n", n, "i", i)
		p := l
		for t := n; t < i; t += n {
			if p, err = p.Compose(l); err != nil {
				return nil, nil, fmt.Errorf("[ACW] composing powers of the base operator: %w", err)
			}
		}
		return p, zeros, nil
	}

	depth := i + n + 2
	log.Debug("solving for the formal root", "n", n, "i", i, "depth", depth)
	root := nthRoot(psFromOperator(l, -depth), n, depth)
	p, err := root.pow(i).plus(cfg.partial)
	if err != nil {
		return nil, nil, fmt.Errorf("[ACW] truncating the root power: %w", err)
	}

	comm, err := l.Commutator(p)
	if err != nil {
		return nil, nil, fmt.Errorf("[ACW] computing the residual commutator: %w", err)
	}
	if !comm.IsZero() && comm.Order() > n-2 {
		return nil, nil, fmt.Errorf("[ACW] residual commutator has order %d, expected at most %d", comm.Order(), n-2)
	}
	h := make([]dring.Element, n-1)
	for j := 0; j <= n-2; j++ {
		h[j] = comm.Coefficient(j)
	}
	log.Debug("computed almost-commuting basis element", "n", n, "i", i, "order", p.Order())
	return p, h, nil
}
