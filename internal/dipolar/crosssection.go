package dipolar

import "math"

// Far-field observables of a solved dipole pair. All cross sections are in
// cm² and take the wavenumber k already scaled by the background index.

// ScatteringCrossSection is the total scattering cross section of the
// coupled pair: the two self terms plus the interference terms carried by
// the Green tensor,
//
//	σ = (4πk / n_b|E₀|²) [ Im(p0·(G p1)*) + Im(p1·(G p0)*) + (2/3)k³(|p0|²+|p1|²) ]
func ScatteringCrossSection(m Moments, g CMat3, k, nb, driveAmp Real) Real {
	rad := 2.0 / 3.0 * k * k * k * (m.P0.NormSq() + m.P1.NormSq())
	cross := ImagDotConj(m.P0, g.MulVec(m.P1)) + ImagDotConj(m.P1, g.MulVec(m.P0))
	return 4 * math.Pi * k / (nb * driveAmp * driveAmp) * (cross + rad)
}

// SingleScatteringCrossSection keeps only one dipole's radiative term,
// dropping the interference contribution and the partner entirely.
func SingleScatteringCrossSection(p CVec3, k, nb, driveAmp Real) Real {
	return 4 * math.Pi * k / (nb * driveAmp * driveAmp) * (2.0 / 3.0 * k * k * k * p.NormSq())
}

// AbsorptionCrossSection is the total absorption cross section of the pair:
// the extinction of each dipole against its own polarizability minus the
// power it re-radiates,
//
//	σ = (4πk / |E₀|²) [ Im(p0·(α0⁻¹p0)*) + Im(p1·(α1⁻¹p1)*) − (2/3)k³(|p0|²+|p1|²) ]
//
// alpha0 and alpha1 are the lab-frame tensors used to solve for the moments.
// Inverting a tensor with a zeroed axis-mode block fails; restrict the
// moments to models with full-rank tensors before asking for absorption.
func AbsorptionCrossSection(m Moments, alpha0, alpha1 CMat3, k, driveAmp Real) (Real, error) {
	inv0, err := alpha0.Inverse()
	if err != nil {
		return 0, err
	}
	inv1, err := alpha1.Inverse()
	if err != nil {
		return 0, err
	}
	ext := ImagDotConj(m.P0, inv0.MulVec(m.P0)) + ImagDotConj(m.P1, inv1.MulVec(m.P1))
	rad := 2.0 / 3.0 * k * k * k * (m.P0.NormSq() + m.P1.NormSq())
	return 4 * math.Pi * k / (driveAmp * driveAmp) * (ext - rad), nil
}

// SingleAbsorptionCrossSection is the one-dipole analog.
func SingleAbsorptionCrossSection(p CVec3, alpha CMat3, k, driveAmp Real) (Real, error) {
	inv, err := alpha.Inverse()
	if err != nil {
		return 0, err
	}
	ext := ImagDotConj(p, inv.MulVec(p))
	rad := 2.0 / 3.0 * k * k * k * p.NormSq()
	return 4 * math.Pi * k / (driveAmp * driveAmp) * (ext - rad), nil
}

// AbsorbedPower is the cycle-averaged power a single dipole dissipates,
// P = (ω/2)(Im(p·(α⁻¹p)*) − (2/3)k³|p|²), in erg/s.
func AbsorbedPower(p CVec3, alpha CMat3, w, k Real) (Real, error) {
	inv, err := alpha.Inverse()
	if err != nil {
		return 0, err
	}
	ext := ImagDotConj(p, inv.MulVec(p))
	rad := 2.0 / 3.0 * k * k * k * p.NormSq()
	return w / 2 * (ext - rad), nil
}
