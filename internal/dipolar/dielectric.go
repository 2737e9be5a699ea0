package dipolar

// Drude is the free-electron dielectric function
// ε(ω) = ε∞ − ωₚ²/(ω² + iωγ). Frequencies are angular [rad/s].
type Drude struct {
	EpsInf     Real // high-frequency permittivity ε∞
	PlasmaFreq Real // plasma frequency ωₚ
	Damping    Real // damping rate γ
}

// Permittivity evaluates the complex permittivity at angular frequency w.
// Invalid inputs (w=0 with nonzero damping, NaN) propagate into the result.
func (m Drude) Permittivity(w Real) complex128 {
	wp2 := complex(m.PlasmaFreq*m.PlasmaFreq, 0)
	return complex(m.EpsInf, 0) - wp2/(complex(w*w, 0)+complex(0, w*m.Damping))
}

// DrudeLorentz adds a single Lorentz oscillator of fractional strength f at
// resonance ω₁ to the Drude background:
// ε(ω) = ε∞ − ωₚ²[(1−f)/(ω²+iωγ) + f/(ω²+iωγ−ω₁²)].
type DrudeLorentz struct {
	EpsInf     Real
	PlasmaFreq Real
	Damping    Real
	Strength   Real // oscillator strength f ∈ [0,1]
	Resonance  Real // oscillator resonance ω₁ [rad/s]
}

// Permittivity evaluates the complex permittivity at angular frequency w.
func (m DrudeLorentz) Permittivity(w Real) complex128 {
	wp2 := complex(m.PlasmaFreq*m.PlasmaFreq, 0)
	free := complex(w*w, 0) + complex(0, w*m.Damping)
	bound := free - complex(m.Resonance*m.Resonance, 0)
	return complex(m.EpsInf, 0) - wp2*(complex(1-m.Strength, 0)/free+complex(m.Strength, 0)/bound)
}
