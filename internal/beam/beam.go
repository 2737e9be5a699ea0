// Package beam provides closed-form focused, diffraction-limited field
// patterns of a point dipole imaged through an aplanatic system. These are
// the analytic approximations evaluated in the focal plane; they serve as
// incident-field providers for the coupled-dipole engine.
package beam

import (
	"math"

	"github.com/nanoptics/dipolar/internal/dipolar"
)

type Real = dipolar.Real

// Below this kρ the Bessel ratios switch to their series forms. The
// quadratic correction terms keep the crossover smooth.
const smallArg = 1e-3

// polar angle of (x, y) measured from +x, wrapped to [0, 2π)
func phi(x, y Real) Real {
	return math.Atan2(-y, -x) + math.Pi
}

func rho(x, y Real) Real {
	return math.Hypot(x, y)
}

func sphJ0(x Real) Real {
	if math.Abs(x) < smallArg {
		return 1 - x*x/6
	}
	return math.Sin(x) / x
}

// j₁(x)/x with its x→0 limit 1/3
func sphJ1OverX(x Real) Real {
	if math.Abs(x) < smallArg {
		return 1.0/3 - x*x/30
	}
	return (math.Sin(x)/(x*x) - math.Cos(x)/x) / x
}

func sphJ2(x Real) Real {
	if math.Abs(x) < smallArg {
		return x * x / 15
	}
	return (3/(x*x*x)-1/x)*math.Sin(x) - 3*math.Cos(x)/(x*x)
}

// J₂(x)/x (cylindrical) with its x→0 limit 0
func besselJ2OverX(x Real) Real {
	if math.Abs(x) < smallArg {
		return x / 8
	}
	return math.Jn(2, x) / x
}

// y₁(x) + j₀(x)/x², finite at the origin with limit −2/3
func sphY1PlusJ0OverX2(x Real) Real {
	if math.Abs(x) < smallArg {
		return -2.0 / 3
	}
	return -math.Cos(x)/(x*x) - math.Sin(x)/x + math.Sin(x)/(x*x*x)
}

// InPlaneDipole is the focal-plane field of a dipole lying in the focal
// plane at angle Psi from the x-axis. Sample evaluates the field at the
// in-plane offset (xi, y) from the beam center for wavenumber k; the result
// carries the overall k³ scale of the closed form.
type InPlaneDipole struct {
	Psi Real
}

func (d InPlaneDipole) Sample(xi, y, k Real) dipolar.CVec3 {
	kr := k * rho(xi, y)
	phiP := phi(xi, y) - d.Psi

	cosP := math.Cos(phiP)
	sinP := math.Sin(phiP)

	exP := (cosP*cosP+math.Cos(2*phiP))*sphJ1OverX(kr) + sinP*sinP*sphJ0(kr)
	eyP := sinP * cosP * sphJ2(kr)
	ezP := -cosP * besselJ2OverX(kr)

	cosPsi := math.Cos(d.Psi)
	sinPsi := math.Sin(d.Psi)
	k3 := k * k * k
	return dipolar.CVec3{
		X: complex((cosPsi*exP-sinPsi*eyP)*k3, 0),
		Y: complex((sinPsi*exP+cosPsi*eyP)*k3, 0),
		Z: complex(ezP*k3, 0),
	}
}

// AxialDipole is the focal-plane field of a dipole oriented along the
// optical axis. The transverse components are in quadrature with the axial
// one.
type AxialDipole struct{}

func (AxialDipole) Sample(xi, y, k Real) dipolar.CVec3 {
	kr := k * rho(xi, y)
	phiP := phi(xi, y)

	j2kr := besselJ2OverX(kr)
	k3 := k * k * k
	return dipolar.CVec3{
		X: complex(0, j2kr*math.Cos(phiP)*k3),
		Y: complex(0, -j2kr*math.Sin(phiP)*k3),
		Z: complex(-sphY1PlusJ0OverX2(kr)*k3, 0),
	}
}

// PlaneWave is the trivial provider: a uniform field of the given
// polarization, independent of position and wavenumber.
type PlaneWave struct {
	Polarization dipolar.CVec3
}

func (p PlaneWave) Sample(xi, y, k Real) dipolar.CVec3 {
	return p.Polarization
}
