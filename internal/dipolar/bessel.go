package dipolar

import "math/cmplx"

// Spherical Bessel functions of complex argument, orders 0 and 1, in the
// closed forms valid for all z ≠ 0. Only these two orders enter the dipole
// Mie coefficient.

func sphJ0(z complex128) complex128 {
	if z == 0 {
		return 1
	}
	return cmplx.Sin(z) / z
}

func sphJ1(z complex128) complex128 {
	if z == 0 {
		return 0
	}
	return cmplx.Sin(z)/(z*z) - cmplx.Cos(z)/z
}

func sphY0(z complex128) complex128 {
	return -cmplx.Cos(z) / z
}

func sphY1(z complex128) complex128 {
	return -cmplx.Cos(z)/(z*z) - cmplx.Sin(z)/z
}

// Spherical Hankel functions of the first kind, h = j + iy.

func sphH0(z complex128) complex128 { return sphJ0(z) + complex(0, 1)*sphY0(z) }

func sphH1(z complex128) complex128 { return sphJ1(z) + complex(0, 1)*sphY1(z) }

// riccatiPsi1Prime returns d/dz [z·j₁(z)] = z·j₀(z) − j₁(z), using the
// recurrence j₁′ = j₀ − 2j₁/z.
func riccatiPsi1Prime(z complex128) complex128 {
	return z*sphJ0(z) - sphJ1(z)
}

// riccatiXi1Prime returns d/dz [z·h₁(z)] = z·h₀(z) − h₁(z).
func riccatiXi1Prime(z complex128) complex128 {
	return z*sphH0(z) - sphH1(z)
}

// mieDipoleCoefficient returns the a₁ Mie coefficient for relative
// permittivity epsRel and size parameter x = ka.
func mieDipoleCoefficient(epsRel complex128, x Real) complex128 {
	m := cmplx.Sqrt(epsRel)
	zx := complex(x, 0)
	zmx := m * zx

	num := m*m*sphJ1(zmx)*riccatiPsi1Prime(zx) - sphJ1(zx)*riccatiPsi1Prime(zmx)
	den := m*m*sphJ1(zmx)*riccatiXi1Prime(zx) - sphH1(zx)*riccatiPsi1Prime(zmx)
	return num / den
}
