package commutators_test

import (
	"strings"
	"testing"

	"github.com/rldelgado/dalgebra/commutators"
	"github.com/rldelgado/dalgebra/dpoly"
	"github.com/rldelgado/dalgebra/dring"
)

func mustWilson(t *testing.T, n, i int, opts ...commutators.Option) (*dpoly.Poly, []dring.Element) {
	t.Helper()
	p, h, err := commutators.AlmostCommutingWilson(n, i, opts...)
	if err != nil {
		t.Fatalf("AlmostCommutingWilson(%d, %d): %v", n, i, err)
	}
	return p, h
}

func allZero(h []dring.Element) bool {
	for _, e := range h {
		if !e.IsZero() {
			return false
		}
	}
	return true
}

// ============================================================
// Generic normal-form operators
// ============================================================

func TestGenericNormal_Order2(t *testing.T) {
	l, err := commutators.GenericNormal(2)
	if err != nil {
		t.Fatalf("GenericNormal: %v", err)
	}
	if got := l.String(); got != "u_0[0]*z[0] + z[2]" {
		t.Errorf("want u_0[0]*z[0] + z[2], got %q", got)
	}
	if got := l.Ring().String(); got != "D(QQ{u_0,z})" {
		t.Errorf("want D(QQ{u_0,z}), got %q", got)
	}
	if !l.IsNormalForm() {
		t.Errorf("generic operator should be in normal form")
	}
}

func TestGenericNormal_Order3(t *testing.T) {
	l, err := commutators.GenericNormal(3)
	if err != nil {
		t.Fatalf("GenericNormal: %v", err)
	}
	if got := l.String(); got != "u_0[0]*z[0] + u_1[0]*z[1] + z[3]" {
		t.Errorf("want u_0[0]*z[0] + u_1[0]*z[1] + z[3], got %q", got)
	}
}

func TestGenericNormal_RejectsOrderOne(t *testing.T) {
	if _, err := commutators.GenericNormal(1); err == nil || !strings.Contains(err.Error(), "[GenNormal]") {
		t.Fatalf("want [GenNormal] error, got %v", err)
	}
}

// ============================================================
// Almost-commuting basis
// ============================================================

func TestAlmostCommuting_IdentityElement(t *testing.T) {
	p, h := mustWilson(t, 2, 0)
	if got := p.String(); got != "z[0]" {
		t.Errorf("P_0 should be the identity, got %q", got)
	}
	if len(h) != 1 || !allZero(h) {
		t.Errorf("H_0 should be a single zero, got %v", h)
	}
}

func TestAlmostCommuting_FirstElement(t *testing.T) {
	p, h := mustWilson(t, 2, 1)
	if got := p.String(); got != "z[1]" {
		t.Errorf("P_1 should be the derivation, got %q", got)
	}
	if got := h[0].String(); got != "-1*u_0[1]" {
		t.Errorf("H_1 should be -1*u_0[1], got %q", got)
	}
}

func TestAlmostCommuting_PowersOfTheOperator(t *testing.T) {
	p2, h2 := mustWilson(t, 2, 2)
	if got := p2.String(); got != "u_0[0]*z[0] + z[2]" {
		t.Errorf("P_2 should be L itself, got %q", got)
	}
	if !allZero(h2) {
		t.Errorf("H_2 should vanish, got %v", h2)
	}

	p4, h4 := mustWilson(t, 2, 4)
	want := "2*u_0[0]*z[2] + u_0[0]^2*z[0] + 2*u_0[1]*z[1] + u_0[2]*z[0] + z[4]"
	if got := p4.String(); got != want {
		t.Errorf("P_4 should be L^2:\nwant %q\ngot  %q", want, got)
	}
	if !allZero(h4) {
		t.Errorf("H_4 should vanish, got %v", h4)
	}
}

func TestAlmostCommuting_KdVThirdElement(t *testing.T) {
	p, h := mustWilson(t, 2, 3)
	if got := p.String(); got != "3/2*u_0[0]*z[1] + 3/4*u_0[1]*z[0] + z[3]" {
		t.Errorf("P_3: got %q", got)
	}
	if got := h[0].String(); got != "-3/2*u_0[0]*u_0[1] + -1/4*u_0[3]" {
		t.Errorf("H_3: got %q", got)
	}
}

func TestAlmostCommuting_BoussinesqSecondElement(t *testing.T) {
	p, h := mustWilson(t, 3, 2)
	if got := p.String(); got != "2/3*u_1[0]*z[0] + z[2]" {
		t.Errorf("P_2: got %q", got)
	}
	if got := h[1].String(); got != "-2*u_0[1] + u_1[2]" {
		t.Errorf("H_2[1]: got %q", got)
	}
	if got := h[0].String(); got != "-1*u_0[2] + 2/3*u_1[0]*u_1[1] + 2/3*u_1[3]" {
		t.Errorf("H_2[0]: got %q", got)
	}
}

func TestAlmostCommuting_FifthElementShape(t *testing.T) {
	p, h := mustWilson(t, 2, 5)
	if p.Order() != 5 {
		t.Fatalf("P_5 should have order 5, got %d", p.Order())
	}
	if v, ok := p.Coefficient(5).Constant(); !ok || !v.IsOne() {
		t.Errorf("P_5 should be monic, got leading %q", p.Coefficient(5))
	}
	if !p.Coefficient(4).IsZero() {
		t.Errorf("P_5 should have zero subleading coefficient, got %q", p.Coefficient(4))
	}
	if got := p.Coefficient(3).String(); got != "5/2*u_0[0]" {
		t.Errorf("P_5 order-3 coefficient: want 5/2*u_0[0], got %q", got)
	}
	if got := p.Coefficient(2).String(); got != "15/4*u_0[1]" {
		t.Errorf("P_5 order-2 coefficient: want 15/4*u_0[1], got %q", got)
	}
	if allZero(h) {
		t.Errorf("H_5 should not vanish for the generic operator")
	}
}

func TestAlmostCommuting_ResidualMatchesHierarchy(t *testing.T) {
	p, h := mustWilson(t, 3, 4)
	l, err := commutators.GenericNormal(3)
	if err != nil {
		t.Fatalf("GenericNormal: %v", err)
	}
	comm, err := l.Commutator(p)
	if err != nil {
		t.Fatalf("Commutator: %v", err)
	}
	if comm.Order() > 1 {
		t.Fatalf("[L, P_4] should have order at most 1, got %d", comm.Order())
	}
	for j := 0; j <= 1; j++ {
		if !comm.Coefficient(j).Equal(h[j]) {
			t.Errorf("hierarchy entry %d does not match the residual: %q vs %q",
				j, h[j], comm.Coefficient(j))
		}
	}
}

func TestAlmostCommuting_CustomNames(t *testing.T) {
	p, h := mustWilson(t, 2, 1,
		commutators.WithPartialName("w"), commutators.WithCoefficientName("v"))
	if got := p.String(); got != "w[1]" {
		t.Errorf("want w[1], got %q", got)
	}
	if got := h[0].String(); got != "-1*v_0[1]" {
		t.Errorf("want -1*v_0[1], got %q", got)
	}
}

func TestAlmostCommuting_Validation(t *testing.T) {
	if _, _, err := commutators.AlmostCommutingWilson(1, 3); err == nil || !strings.Contains(err.Error(), "[ACW]") {
		t.Errorf("order 1 should be rejected, got %v", err)
	}
	if _, _, err := commutators.AlmostCommutingWilson(2, -1); err == nil || !strings.Contains(err.Error(), "[ACW]") {
		t.Errorf("negative index should be rejected, got %v", err)
	}
}
