package dring

import "strings"

// Ideal is a finitely generated ideal of an algebraic ring. The
// conditions and the flag ideals produced by the commutator pipeline
// are returned as one.
type Ideal struct {
	ring *Ring
	gens []Element
}

// NewIdeal collects the nonzero generators into an ideal over r,
// dropping duplicates and keeping first-seen order.
func NewIdeal(r *Ring, gens []Element) *Ideal {
	id := &Ideal{ring: r}
	seen := make(map[string]struct{}, len(gens))
	for _, g := range gens {
		if g.expr == nil || g.IsZero() {
			continue
		}
		key := g.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		id.gens = append(id.gens, Element{ring: r, expr: g.expr})
	}
	return id
}

// Ring returns the ring the ideal lives over.
func (id *Ideal) Ring() *Ring { return id.ring }

// Generators returns the generators in order.
func (id *Ideal) Generators() []Element {
	return append([]Element(nil), id.gens...)
}

// IsZero reports whether the ideal is the zero ideal.
func (id *Ideal) IsZero() bool { return len(id.gens) == 0 }

func (id *Ideal) String() string {
	if id.IsZero() {
		return "Ideal (0) of " + id.ring.String()
	}
	parts := make([]string, len(id.gens))
	for i, g := range id.gens {
		parts[i] = g.String()
	}
	return "Ideal (" + strings.Join(parts, ", ") + ") of " + id.ring.String()
}

// LaTeX renders the ideal generators as a tuple.
func (id *Ideal) LaTeX() string {
	if id.IsZero() {
		return `\left(0\right)`
	}
	parts := make([]string, len(id.gens))
	for i, g := range id.gens {
		parts[i] = g.LaTeX()
	}
	return `\left(` + strings.Join(parts, `,\; `) + `\right)`
}
