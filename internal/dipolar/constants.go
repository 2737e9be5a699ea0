package dipolar

// Constants is the immutable table of physical constants passed explicitly
// into every calculation. Values are CGS-Gaussian except Hbar, which is kept
// in eV·s so drive energies tabulated in eV convert directly to angular
// frequency.
type Constants struct {
	E    Real // elementary charge [statC]
	C    Real // speed of light [cm/s]
	Hbar Real // reduced Planck constant [eV·s]
	NA   Real // Avogadro's number [1/mol]
	NM   Real // centimeters per nanometer
}

// CGS returns the default constants table (CODATA values).
func CGS() Constants {
	return Constants{
		E:    4.80320425e-10,
		C:    2.99792458e10,
		Hbar: 6.582119569e-16,
		NA:   6.02214076e23,
		NM:   1e-7,
	}
}

// Omega converts a photon energy ħω [eV] to angular frequency [rad/s].
func (c Constants) Omega(energyEV Real) Real { return energyEV / c.Hbar }

// EnergyEV converts an angular frequency [rad/s] to photon energy [eV].
func (c Constants) EnergyEV(w Real) Real { return w * c.Hbar }

// Wavenumber returns k = ω·n_b/c [1/cm] in a background of refractive index nb.
func (c Constants) Wavenumber(w, nb Real) Real { return w * nb / c.C }
