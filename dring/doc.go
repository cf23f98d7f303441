// Package dring implements the differential-algebra substrate for the
// dalgebra pipeline: an exact symbolic expression kernel over big.Rat
// rationals, a small lattice of ring descriptors (polynomial rings,
// fraction fields, differential rings with explicit derivations and
// jet variables), pushout-based ring unification, parent-tracked
// elements, and ideals.
//
// Expressions are immutable trees built from Num, Sym, Add, Mul, Pow
// and Func nodes. Constructors (N, F, S, AddOf, MulOf, PowOf, ExpOf,
// ...) simplify eagerly; Canonicalize produces a deterministic
// sum-of-monomials normal form in which equal terms cancel exactly.
// Exact cancellation is what the commutator machinery rests on, so the
// simplifier merges like terms by monomial key and equal bases by
// exponent, unlike a display-oriented CAS that may leave x*x alone.
//
// Rings are descriptors, not containers: an Element pairs a canonical
// expression with its parent *Ring, and binary operations unify the
// parents through Pushout. Unification failures on unvalidated paths
// panic with a "dring:" message; library entry points validate first
// and return errors.
package dring
