package dring

import (
	"fmt"
	"math/big"
)

// Rational is an immutable exact rational number. The zero value is 0.
// All arithmetic returns fresh values; the wrapped big.Rat is never
// mutated after construction.
type Rational struct {
	v *big.Rat
}

// RatInt returns n as a Rational.
func RatInt(n int64) Rational {
	return Rational{v: big.NewRat(n, 1)}
}

// RatFrac returns p/q. Panics if q is zero.
func RatFrac(p, q int64) Rational {
	if q == 0 {
		panic("dring: zero denominator")
	}
	return Rational{v: big.NewRat(p, q)}
}

// RatZero returns 0.
func RatZero() Rational { return Rational{} }

// RatOne returns 1.
func RatOne() Rational { return RatInt(1) }

func (r Rational) rat() *big.Rat {
	if r.v == nil {
		return new(big.Rat)
	}
	return r.v
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	return Rational{v: new(big.Rat).Add(r.rat(), o.rat())}
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return Rational{v: new(big.Rat).Sub(r.rat(), o.rat())}
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	return Rational{v: new(big.Rat).Mul(r.rat(), o.rat())}
}

// Div returns r / o. Panics if o is zero.
func (r Rational) Div(o Rational) Rational {
	if o.IsZero() {
		panic("dring: division by zero")
	}
	return Rational{v: new(big.Rat).Quo(r.rat(), o.rat())}
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{v: new(big.Rat).Neg(r.rat())}
}

// Inv returns 1/r. Panics if r is zero.
func (r Rational) Inv() Rational {
	if r.IsZero() {
		panic("dring: division by zero")
	}
	return Rational{v: new(big.Rat).Inv(r.rat())}
}

// Pow returns r^k for any integer k; negative k inverts. Panics on
// 0^k with k < 0.
func (r Rational) Pow(k int) Rational {
	if k < 0 {
		return r.Inv().Pow(-k)
	}
	out := RatOne()
	base := r
	for k > 0 {
		if k&1 == 1 {
			out = out.Mul(base)
		}
		base = base.Mul(base)
		k >>= 1
	}
	return out
}

// IsZero reports whether r == 0.
func (r Rational) IsZero() bool { return r.rat().Sign() == 0 }

// IsOne reports whether r == 1.
func (r Rational) IsOne() bool { return r.rat().Cmp(big.NewRat(1, 1)) == 0 }

// Sign returns -1, 0, or +1.
func (r Rational) Sign() int { return r.rat().Sign() }

// Cmp compares r and o, returning -1, 0, or +1.
func (r Rational) Cmp(o Rational) int { return r.rat().Cmp(o.rat()) }

// IsInt reports whether r is an integer.
func (r Rational) IsInt() bool { return r.rat().IsInt() }

// Int64 returns the integer value of r when r is an integer that fits
// in an int64.
func (r Rational) Int64() (int64, bool) {
	if !r.IsInt() {
		return 0, false
	}
	n := r.rat().Num()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// String renders r as "p" or "p/q".
func (r Rational) String() string { return r.rat().RatString() }

// LaTeX renders r, using \frac for non-integers.
func (r Rational) LaTeX() string {
	rt := r.rat()
	if rt.IsInt() {
		return rt.Num().String()
	}
	num := new(big.Int).Abs(rt.Num())
	s := fmt.Sprintf("\\frac{%s}{%s}", num.String(), rt.Denom().String())
	if rt.Sign() < 0 {
		return "-" + s
	}
	return s
}
