package dipolar

import (
	"math"
	"testing"
)

func TestDrude_Pinned(t *testing.T) {
	// Regression pin for a silver-like parameter set at ħω = 2.5 eV.
	cns := CGS()
	m := Drude{
		EpsInf:     9.5,
		PlasmaFreq: 8.95 / cns.Hbar,
		Damping:    0.069 / cns.Hbar,
	}
	eps := m.Permittivity(cns.Omega(2.5))
	if relErr(real(eps), -3.306644411) > 1e-8 {
		t.Fatalf("Re ε = %.9f", real(eps))
	}
	if relErr(imag(eps), 0.353463386) > 1e-8 {
		t.Fatalf("Im ε = %.9f", imag(eps))
	}
}

func TestDrude_LosslessLimit(t *testing.T) {
	m := Drude{EpsInf: 1, PlasmaFreq: 2, Damping: 0}
	eps := m.Permittivity(1.0)
	if imag(eps) != 0 {
		t.Fatalf("lossless Drude has Im ε = %g", imag(eps))
	}
	if relErr(real(eps), 1-4) > 1e-14 {
		t.Fatalf("Re ε = %g, want -3", real(eps))
	}
}

func TestDrudeLorentz_ReducesToDrude(t *testing.T) {
	d := Drude{EpsInf: 4, PlasmaFreq: 3, Damping: 0.1}
	dl := DrudeLorentz{EpsInf: 4, PlasmaFreq: 3, Damping: 0.1, Strength: 0, Resonance: 5}
	w := 2.3
	if relErrC(dl.Permittivity(w), d.Permittivity(w)) > 1e-14 {
		t.Fatalf("f=0 Drude-Lorentz deviates from Drude")
	}
}

func TestDrudeLorentz_OscillatorPullsPermittivityUp(t *testing.T) {
	// Below the bound resonance the Lorentz term adds positive polarization.
	dl := DrudeLorentz{EpsInf: 1, PlasmaFreq: 3, Damping: 0.05, Strength: 0.5, Resonance: 10}
	d := Drude{EpsInf: 1, PlasmaFreq: 3, Damping: 0.05}
	w := 2.0
	if !(real(dl.Permittivity(w)) > real(d.Permittivity(w))) {
		t.Fatalf("bound term did not raise Re ε: %g vs %g",
			real(dl.Permittivity(w)), real(d.Permittivity(w)))
	}
	if math.IsNaN(real(dl.Permittivity(w))) {
		t.Fatalf("NaN permittivity")
	}
}
