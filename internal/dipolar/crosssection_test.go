package dipolar

import (
	"math"
	"testing"
)

func TestRayleighScaling(t *testing.T) {
	// A non-absorbing dielectric sphere well below any resonance scatters
	// as ω⁴: doubling the drive energy grows σ by ≈16.
	cns := CGS()
	s, _ := NewSphere(cns, 10*cns.NM)
	m := Drude{EpsInf: 1, PlasmaFreq: 0, Damping: 0}
	low := s.ScatteringCrossSection(SphereMLWA, m, 1.77, cns.Omega(0.5))
	high := s.ScatteringCrossSection(SphereMLWA, m, 1.77, cns.Omega(1.0))
	ratio := high / low
	if math.Abs(ratio-16) > 16*0.15 {
		t.Fatalf("σ(2ω)/σ(ω) = %.4g, want ≈16", ratio)
	}
}

func TestPlasmonResonancePeak(t *testing.T) {
	// For a Drude sphere in vacuum with ε∞=1 the dipole resonance sits at
	// ωₚ/√3; the MLWA spectrum must peak within 20% of it.
	cns := CGS()
	s, _ := NewSphere(cns, 10*cns.NM)
	m := Drude{EpsInf: 1, PlasmaFreq: 8.0 / cns.Hbar, Damping: 0.1 / cns.Hbar}

	bestEV, bestSigma := 0.0, 0.0
	for i := 0; i <= 300; i++ {
		ev := 3.0 + Real(i)*(6.0-3.0)/300
		sigma := s.ScatteringCrossSection(SphereMLWA, m, 1.0, cns.Omega(ev))
		if sigma > bestSigma {
			bestEV, bestSigma = ev, sigma
		}
	}
	res := 8.0 / math.Sqrt(3)
	if math.Abs(bestEV-res)/res > 0.20 {
		t.Fatalf("peak at %.3f eV, want within 20%% of %.3f eV", bestEV, res)
	}
	// And the peak must tower over the off-resonance tails.
	tail := s.ScatteringCrossSection(SphereMLWA, m, 1.0, cns.Omega(3.0))
	if !(bestSigma > 5*tail) {
		t.Fatalf("peak %.3g not prominent over tail %.3g", bestSigma, tail)
	}
}

func TestCoupledReducesToSingle(t *testing.T) {
	// With the coupling forced to zero the pair formulas must equal the sum
	// of the single-dipole ones, for scattering and absorption alike.
	alpha0 := Diag(2+0.5i, 2+0.5i, 2+0.5i)
	alpha1 := Diag(1+0.25i, 1+0.25i, 1+0.25i)
	drive := CVec3{X: 1, Y: 0.5}
	k, nb, amp := 0.3, 1.2, 1.5

	m, err := CoupledMoments(alpha0, alpha1, CMat3{}, drive)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	coupled := ScatteringCrossSection(m, CMat3{}, k, nb, amp)
	single := SingleScatteringCrossSection(m.P0, k, nb, amp) +
		SingleScatteringCrossSection(m.P1, k, nb, amp)
	if relErr(coupled, single) > 1e-12 {
		t.Fatalf("scattering: coupled %.6g vs summed singles %.6g", coupled, single)
	}

	cAbs, err := AbsorptionCrossSection(m, alpha0, alpha1, k, amp)
	if err != nil {
		t.Fatalf("absorption: %v", err)
	}
	s0, err := SingleAbsorptionCrossSection(m.P0, alpha0, k, amp)
	if err != nil {
		t.Fatalf("absorption: %v", err)
	}
	s1, err := SingleAbsorptionCrossSection(m.P1, alpha1, k, amp)
	if err != nil {
		t.Fatalf("absorption: %v", err)
	}
	if relErr(cAbs, s0+s1) > 1e-12 {
		t.Fatalf("absorption: coupled %.6g vs summed singles %.6g", cAbs, s0+s1)
	}
}

func TestFarFieldDecoupling(t *testing.T) {
	// Two identical spheres far apart: the coupled cross section approaches
	// twice the single-sphere one, with a deviation bounded by 3/(kd).
	cns := CGS()
	w := cns.Omega(2.0)
	k := cns.Wavenumber(w, 1)

	for _, kd := range []Real{60, 600} {
		d := kd / k
		dp := twoSpherePair(cns, d)
		m, err := dp.MomentsAt(2.0)
		if err != nil {
			t.Fatalf("kd=%g: %v", kd, err)
		}
		g, _ := GreenTensor(dp.Separation, k)
		coupled := ScatteringCrossSection(m, g, k, dp.NB, dp.DriveAmp)

		p := UncoupledMoment(dp.Alpha0(w), dp.Emitter.DriveField(dp.DriveAmp))
		single := SingleScatteringCrossSection(p, k, dp.NB, dp.DriveAmp)

		dev := math.Abs(coupled/(2*single) - 1)
		if dev > 3/kd {
			t.Fatalf("kd=%g: deviation %.4g exceeds 3/kd = %.4g", kd, dev, 3/kd)
		}
	}
}

func TestAbsorption_LossySphereIsPositive(t *testing.T) {
	cns := CGS()
	dp := twoSpherePair(cns, 40*cns.NM)
	w := cns.Omega(2.0)
	k := cns.Wavenumber(w, 1)
	m, err := dp.MomentsAt(2.0)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	alpha := dp.Alpha0(w)
	sigma, err := AbsorptionCrossSection(m, alpha, alpha, k, dp.DriveAmp)
	if err != nil {
		t.Fatalf("absorption: %v", err)
	}
	if !(sigma > 0) {
		t.Fatalf("lossy pair absorbs σ = %g", sigma)
	}
}

func TestAbsorbedPower_ConsistentWithCrossSection(t *testing.T) {
	// P = σ_abs · ω·|E|² / (8πk) for a single dipole; both routines evaluate
	// the same optical-theorem bracket.
	cns := CGS()
	dp := twoSpherePair(cns, 40*cns.NM)
	w := cns.Omega(2.0)
	k := cns.Wavenumber(w, 1)
	alpha := dp.Alpha0(w)
	p := UncoupledMoment(alpha, dp.Emitter.DriveField(dp.DriveAmp))

	sigma, err := SingleAbsorptionCrossSection(p, alpha, k, dp.DriveAmp)
	if err != nil {
		t.Fatalf("cross section: %v", err)
	}
	power, err := AbsorbedPower(p, alpha, w, k)
	if err != nil {
		t.Fatalf("power: %v", err)
	}
	want := sigma * w * dp.DriveAmp * dp.DriveAmp / (8 * math.Pi * k)
	if relErr(power, want) > 1e-12 {
		t.Fatalf("P = %.6g, want %.6g", power, want)
	}
}

func TestSpheroidSpectrumHelpers(t *testing.T) {
	// Long and transverse single-mode spectra must each match the explicit
	// |α|²·prefactor product.
	cns := CGS()
	sp, _ := NewSpheroid(cns, 44*cns.NM, 20*cns.NM)
	m := Drude{EpsInf: 9.5, PlasmaFreq: 8.95 / cns.Hbar, Damping: 0.069 / cns.Hbar}
	epsB := 1.77
	w := cns.Omega(2.0)

	alpha := sp.PolarizabilityDrude(m, epsB, w, AxisModeFull)
	wantLong := SigmaPrefactor(cns, w, epsB) * absSq(alpha.M[0][0])
	if relErr(sp.LongScatteringCrossSection(m, epsB, w), wantLong) > 1e-12 {
		t.Fatalf("long spectrum mismatch")
	}
	wantTrans := SigmaPrefactor(cns, w, epsB) * absSq(alpha.M[2][2])
	if relErr(sp.TransverseScatteringCrossSection(m, epsB, w), wantTrans) > 1e-12 {
		t.Fatalf("transverse spectrum mismatch")
	}
}
