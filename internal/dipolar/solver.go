package dipolar

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Moments is one solved dipole-moment pair: index 0 is the emitter, 1 the
// particle. Moments are produced only by the solver and never mutated.
type Moments struct {
	P0, P1 CVec3
}

// CoupledMoments solves the self-consistency equations of two dipoles with
// lab-frame polarizabilities alpha0 and alpha1, coupled through g and both
// driven by the local field drive:
//
//	p0 = α0(E + G·p1),  p1 = α1(E + G·p0)
//
// via M = (I − α0·G·α1·G)⁻¹, p0 = M·α0·(I+G·α1)·E, p1 = M·α1·(I+G·α0)·E.
// When g is zero this reduces exactly to the uncoupled moments αE. A singular
// or ill-conditioned M (near a coupled resonance) surfaces as a
// SingularCouplingError; it is never masked or retried here.
func CoupledMoments(alpha0, alpha1, g CMat3, drive CVec3) (Moments, error) {
	m, err := couplingInverse(alpha0, alpha1, g)
	if err != nil {
		return Moments{}, err
	}
	p0 := m.Mul(alpha0).Mul(I3().Add(g.Mul(alpha1))).MulVec(drive)
	p1 := m.Mul(alpha1).Mul(I3().Add(g.Mul(alpha0))).MulVec(drive)
	return Moments{P0: p0, P1: p1}, nil
}

// EmitterDrivenMoments solves the pair when only the emitter feels the
// incident field but the particle's back-action on the emitter is retained:
// p0 = M·α0·E, p1 = α1·G·p0.
func EmitterDrivenMoments(alpha0, alpha1, g CMat3, drive CVec3) (Moments, error) {
	m, err := couplingInverse(alpha0, alpha1, g)
	if err != nil {
		return Moments{}, err
	}
	p0 := m.Mul(alpha0).MulVec(drive)
	p1 := alpha1.Mul(g).MulVec(p0)
	return Moments{P0: p0, P1: p1}, nil
}

// ForwardMoments is the restricted one-way variant: the emitter responds to
// the incident field alone (no reaction term) and drives the particle,
// p0 = α0·E, p1 = α1·G·p0. It cannot fail: no inversion is involved.
func ForwardMoments(alpha0, alpha1, g CMat3, drive CVec3) Moments {
	p0 := alpha0.MulVec(drive)
	p1 := alpha1.Mul(g).MulVec(p0)
	return Moments{P0: p0, P1: p1}
}

// UncoupledMoment is the single-dipole response p = α·E.
func UncoupledMoment(alpha CMat3, drive CVec3) CVec3 {
	return alpha.MulVec(drive)
}

func couplingInverse(alpha0, alpha1, g CMat3) (CMat3, error) {
	coupling := I3().Sub(alpha0.Mul(g).Mul(alpha1).Mul(g))
	m, err := coupling.Inverse()
	if err != nil {
		return CMat3{}, &SingularCouplingError{Det: coupling.Det()}
	}
	return m, nil
}

// ---------------------------------------------------------
// Two-dipole system
// ---------------------------------------------------------

// PolarizabilityFunc evaluates a principal-frame polarizability tensor at
// angular frequency w [rad/s].
type PolarizabilityFunc func(w Real) CMat3

// DipolePair ties a coupled emitter/particle pair together: orientations,
// separation, drive, and the per-frequency principal-frame polarizabilities
// of both dipoles. It carries no mutable state; every evaluation is pure.
type DipolePair struct {
	Const         Constants
	NB            Real // background refractive index
	Separation    Vec3 // from particle to emitter, lab frame [cm]
	Emitter       Orientation
	ParticleAngle Real // in-plane angle of the particle's unique axis
	DriveAmp      Real
	// Drive orients the incident polarization; when nil it follows the
	// emitter orientation.
	Drive  *Orientation
	Alpha0 PolarizabilityFunc // emitter, principal frame
	Alpha1 PolarizabilityFunc // particle, principal frame
}

// solution is one fully resolved sample: moments plus the lab-frame tensors
// the cross-section formulas need.
type solution struct {
	Moments
	Alpha0Lab CMat3
	Alpha1Lab CMat3
	G         CMat3
	K         Real
	W         Real
}

func (dp *DipolePair) driveOrientation() Orientation {
	if dp.Drive != nil {
		return *dp.Drive
	}
	return dp.Emitter
}

// labFrame rotates both principal-frame tensors into the lab frame at
// angular frequency w.
func (dp *DipolePair) labFrame(w Real) (alpha0, alpha1 CMat3) {
	alpha0 = dp.Emitter.RotateTensor(dp.Alpha0(w))
	alpha1 = RotateTensor(dp.Alpha1(w), AxisZ, dp.ParticleAngle)
	return alpha0, alpha1
}

func (dp *DipolePair) solveAt(energyEV Real, sep Vec3, emitter Orientation, particleAngle Real) (solution, error) {
	if !(dp.NB > 0) || !isFinite(dp.NB) {
		return solution{}, &DomainError{Param: "background refractive index", Value: dp.NB}
	}
	w := dp.Const.Omega(energyEV)
	k := dp.Const.Wavenumber(w, dp.NB)

	alpha0 := emitter.RotateTensor(dp.Alpha0(w))
	alpha1 := RotateTensor(dp.Alpha1(w), AxisZ, particleAngle)

	g, err := GreenTensor(sep, k)
	if err != nil {
		return solution{}, err
	}

	drive := dp.driveOrientation().DriveField(dp.DriveAmp)
	moments, err := CoupledMoments(alpha0, alpha1, g, drive)
	if err != nil {
		return solution{}, err
	}
	return solution{
		Moments:   moments,
		Alpha0Lab: alpha0,
		Alpha1Lab: alpha1,
		G:         g,
		K:         k,
		W:         w,
	}, nil
}

// MomentsAt solves the pair at drive energy ħω [eV] under the plane-wave
// drive field.
func (dp *DipolePair) MomentsAt(energyEV Real) (Moments, error) {
	sol, err := dp.solveAt(energyEV, dp.Separation, dp.Emitter, dp.ParticleAngle)
	if err != nil {
		return Moments{}, err
	}
	return sol.Moments, nil
}

// ---------------------------------------------------------
// Focused-beam drive
// ---------------------------------------------------------

// BeamField supplies the incident field of a focused beam at an in-plane
// point (xi, y) relative to the beam center, for wavenumber k. Implemented by
// the beam package; the core consumes it only through this interface.
type BeamField interface {
	Sample(xi, y, k Real) CVec3
}

// side of the power-normalization grid in samples per axis
const beamGridSamples = 500

// BeamPower integrates the beam intensity (c/8π)|E|² over a square reference
// aperture of half-side 2π/k on a fixed sampling grid, returning the total
// power flux used to normalize the drive. The aperture is undefined at k ≤ 0.
func BeamPower(cns Constants, beam BeamField, k Real) (Real, error) {
	if !(k > 0) || !isFinite(k) {
		return 0, &DomainError{Param: "wavenumber", Value: k}
	}
	spot := 2 * math.Pi / k
	grid := make([]Real, beamGridSamples)
	floats.Span(grid, -spot, spot)

	total := 0.0
	for _, y := range grid {
		for _, x := range grid {
			total += beam.Sample(x, y, k).NormSq()
		}
	}
	area := (2 * spot) * (2 * spot)
	perPixel := area / Real(beamGridSamples*beamGridSamples)
	return cns.C / (8 * math.Pi) * total * perPixel, nil
}

// FocusedBeamMoments solves the pair once per beam center position, replacing
// the plane-wave drive by field samples evaluated independently at each
// dipole's location: with e0 at the emitter and e1 at the particle it solves
//
//	p0 = α0(e0 + G·p1),  p1 = α1(e1 + G·p0)
//
// exactly, via p0 = M·α0·(e0 + G·α1·e1) and back-substitution for p1. When
// both samples coincide this reduces to the plane-wave solve. The samples are
// scaled so the beam power integrated over the reference aperture equals the
// squared drive amplitude. emitterPos is the emitter location; the particle
// sits at emitterPos − Separation.
func (dp *DipolePair) FocusedBeamMoments(energyEV Real, beam BeamField, emitterPos Vec3, beamCenters []Real) ([]Moments, error) {
	if !(dp.NB > 0) || !isFinite(dp.NB) {
		return nil, &DomainError{Param: "background refractive index", Value: dp.NB}
	}
	w := dp.Const.Omega(energyEV)
	k := dp.Const.Wavenumber(w, dp.NB)

	power, err := BeamPower(dp.Const, beam, k)
	if err != nil {
		return nil, err
	}
	DebugLog("beam power over reference aperture: %g erg/s (k=%g)", power, k)

	alpha0, alpha1 := dp.labFrame(w)
	g, err := GreenTensor(dp.Separation, k)
	if err != nil {
		return nil, err
	}
	m, err := couplingInverse(alpha0, alpha1, g)
	if err != nil {
		return nil, err
	}
	op0 := m.Mul(alpha0)
	gAlpha1 := g.Mul(alpha1)

	norm := complex(dp.DriveAmp/math.Sqrt(power), 0)
	particlePos := emitterPos.Sub(dp.Separation)

	out := make([]Moments, len(beamCenters))
	for i, bx := range beamCenters {
		e0 := beam.Sample(bx-emitterPos.X, 0, k).Scale(norm)
		e1 := beam.Sample(bx-particlePos.X, 0, k).Scale(norm)
		p0 := op0.MulVec(e0.Add(gAlpha1.MulVec(e1)))
		p1 := alpha1.MulVec(e1.Add(g.MulVec(p0)))
		out[i] = Moments{P0: p0, P1: p1}
	}
	return out, nil
}
