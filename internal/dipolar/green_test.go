package dipolar

import (
	"errors"
	"math"
	"testing"
)

func TestGreenTensor_NearFieldScaling(t *testing.T) {
	// kr ≪ 1: doubling r divides the magnitude by ≈8.
	k := 1.0
	g1, err := GreenTensor(Vec3{X: 0.01}, k)
	if err != nil {
		t.Fatalf("green: %v", err)
	}
	g2, err := GreenTensor(Vec3{X: 0.02}, k)
	if err != nil {
		t.Fatalf("green: %v", err)
	}
	ratio := matNorm(g1) / matNorm(g2)
	if math.Abs(ratio-8) > 0.4 {
		t.Fatalf("near-field ratio = %.4g, want ≈8", ratio)
	}
}

func TestGreenTensor_FarFieldScaling(t *testing.T) {
	// kr ≫ 1: doubling r divides the magnitude by ≈2.
	k := 1.0
	g1, _ := GreenTensor(Vec3{X: 50}, k)
	g2, _ := GreenTensor(Vec3{X: 100}, k)
	ratio := matNorm(g1) / matNorm(g2)
	if math.Abs(ratio-2) > 0.05 {
		t.Fatalf("far-field ratio = %.4g, want ≈2", ratio)
	}
}

func TestGreenTensor_StaticLimit(t *testing.T) {
	// k=0 keeps only the real (3n̂n̂−I)/r³ term.
	r := 3.0
	g, err := GreenTensor(Vec3{Z: r}, 0)
	if err != nil {
		t.Fatalf("green: %v", err)
	}
	want := Diag(-1, -1, 2).Scale(complex(1/(r*r*r), 0))
	if !matsClose(g, want, 1e-15) {
		t.Fatalf("static limit mismatch: %+v", g)
	}
}

func TestGreenTensor_ZeroSeparation(t *testing.T) {
	_, err := GreenTensor(Vec3{}, 1.0)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("want DomainError, got %v", err)
	}
}

func TestGreenTensor_TransverseOnlyInFarField(t *testing.T) {
	// Along n̂ = x̂ the radiative 1/r term lives in yy and zz only; at large
	// kr the xx entry is down by ~1/(kr)² relative to yy.
	g, _ := GreenTensor(Vec3{X: 200}, 1.0)
	if abs(g.M[0][0])/abs(g.M[1][1]) > 0.01 {
		t.Fatalf("longitudinal component too large: %g vs %g", g.M[0][0], g.M[1][1])
	}
	if relErrC(g.M[1][1], g.M[2][2]) > 1e-14 {
		t.Fatalf("transverse entries differ: %g vs %g", g.M[1][1], g.M[2][2])
	}
}

func TestGreenAt_MatchesGreenTensor(t *testing.T) {
	cns := CGS()
	d := Vec3{X: 50 * cns.NM}
	nb := 1.33
	g1, err := GreenAt(cns, 2.5, nb, d)
	if err != nil {
		t.Fatalf("green: %v", err)
	}
	g2, _ := GreenTensor(d, cns.Wavenumber(cns.Omega(2.5), nb))
	if !matsClose(g1, g2, 0) {
		t.Fatalf("GreenAt disagrees with GreenTensor")
	}
}
