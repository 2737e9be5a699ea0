package dipolar

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepRequest batches coupled-pair evaluations over drive energy and,
// optionally, geometry and orientation. Energies sets the sample count N;
// every other slice must have length 1 (held fixed) or N (varied per
// sample). Nil slices fall back to the pair's own fields.
type SweepRequest struct {
	Pair           *DipolePair
	Energies       []Real // ħω in eV, one per sample
	Separations    []Vec3
	Emitters       []Orientation
	ParticleAngles []Real
	// WithAbsorption also evaluates the absorption cross section, which
	// needs both lab-frame tensors to be invertible at every sample.
	WithAbsorption bool
}

// SweepPoint is one solved sample of a sweep.
type SweepPoint struct {
	EnergyEV Real
	Moments
	Scattering Real
	Absorption Real
}

func broadcastLen(name string, n, want int) error {
	if n == 1 || n == want {
		return nil
	}
	return &BroadcastError{Name: name, Len: n, Want: want}
}

func pick[T any](s []T, i int) T {
	if len(s) == 1 {
		return s[0]
	}
	return s[i]
}

// Run evaluates every sample, fanning out across GOMAXPROCS workers.
// Samples are pure and independent; results land at their own index, so the
// output order matches Energies regardless of scheduling. The first failing
// sample cancels the rest and its error names the sample index and energy.
func (req *SweepRequest) Run() ([]SweepPoint, error) {
	n := len(req.Energies)
	if n == 0 {
		return nil, &BroadcastError{Name: "energies", Len: 0, Want: 1}
	}
	seps := req.Separations
	if seps == nil {
		seps = []Vec3{req.Pair.Separation}
	}
	emitters := req.Emitters
	if emitters == nil {
		emitters = []Orientation{req.Pair.Emitter}
	}
	angles := req.ParticleAngles
	if angles == nil {
		angles = []Real{req.Pair.ParticleAngle}
	}
	if err := broadcastLen("separations", len(seps), n); err != nil {
		return nil, err
	}
	if err := broadcastLen("emitters", len(emitters), n); err != nil {
		return nil, err
	}
	if err := broadcastLen("particle angles", len(angles), n); err != nil {
		return nil, err
	}

	out := make([]SweepPoint, n)
	var grp errgroup.Group
	grp.SetLimit(runtime.GOMAXPROCS(0))
	DebugLogOnce("sweep: %d samples across %d workers", n, runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		grp.Go(func() error {
			ev := req.Energies[i]
			sol, err := req.Pair.solveAt(ev, pick(seps, i), pick(emitters, i), pick(angles, i))
			if err != nil {
				return fmt.Errorf("sample %d (ħω=%g eV): %w", i, ev, err)
			}
			pt := SweepPoint{
				EnergyEV: ev,
				Moments:  sol.Moments,
				Scattering: ScatteringCrossSection(
					sol.Moments, sol.G, sol.K, req.Pair.NB, req.Pair.DriveAmp),
			}
			if req.WithAbsorption {
				pt.Absorption, err = AbsorptionCrossSection(
					sol.Moments, sol.Alpha0Lab, sol.Alpha1Lab, sol.K, req.Pair.DriveAmp)
				if err != nil {
					return fmt.Errorf("sample %d (ħω=%g eV): %w", i, ev, err)
				}
			}
			out[i] = pt
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
