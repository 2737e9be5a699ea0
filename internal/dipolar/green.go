package dipolar

import "math/cmplx"

// GreenTensor returns the dyadic dipole-radiation coupling tensor between two
// points separated by d at wavenumber k [1/cm]:
//
//	G = exp(ikr)·[(3n̂⊗n̂ − I)(1/r³ − ik/r²) − (n̂⊗n̂ − I)(k²/r)]
//
// with r = |d| and n̂ = d/r. It maps the source dipole moment to the field it
// radiates at the other point. The domain is r > 0: coincident points return
// a DomainError. At exactly k = 0 the propagation phase is unity and only the
// static near-field term (3n̂⊗n̂ − I)/r³ survives; that limit is taken
// explicitly.
func GreenTensor(d Vec3, k Real) (CMat3, error) {
	r := d.Len()
	if !(r > 0) || !isFinite(r) {
		return CMat3{}, &DomainError{Param: "separation distance", Value: r}
	}
	n := d.Scale(1 / r)

	dyad := outer(n)
	threeDyad := dyad.Scale(3).Sub(I3())
	if k == 0 {
		return threeDyad.Scale(complex(1/(r*r*r), 0)), nil
	}

	phase := cmplx.Exp(complex(0, k*r))
	near := complex(1/(r*r*r), -k/(r*r))
	far := complex(k*k/r, 0)

	g := threeDyad.Scale(near).Sub(dyad.Sub(I3()).Scale(far))
	return g.Scale(phase), nil
}

// GreenAt evaluates the Green tensor at drive energy ħω [eV] in a background
// of refractive index nb.
func GreenAt(cns Constants, energyEV, nb Real, d Vec3) (CMat3, error) {
	return GreenTensor(d, cns.Wavenumber(cns.Omega(energyEV), nb))
}

// outer returns n̂⊗n̂ for a real unit vector.
func outer(n Vec3) CMat3 {
	v := [3]Real{n.X, n.Y, n.Z}
	var R CMat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = complex(v[r]*v[c], 0)
		}
	}
	return R
}
