package dipolar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parameter records in the YAML schema of the experiment's fit files.
// Energies are ħω in eV, lengths in nm; Build converts to CGS.

type GeneralParams struct {
	DriveEnergyEV      Real `yaml:"drive_energy"`
	BackgroundRefIndex Real `yaml:"background_ref_index"`
	DriveAmp           Real `yaml:"drive_amp"`
}

type PlasmonParams struct {
	EpsInf    Real `yaml:"fit_eps_inf"`
	HbarWp    Real `yaml:"fit_hbar_wp"`    // plasma energy [eV]
	HbarGamma Real `yaml:"fit_hbar_gamma"` // damping energy [eV]
	AUnique   Real `yaml:"fit_a1"`         // unique semi-axis [nm]
	ADegen    Real `yaml:"fit_a2"`         // degenerate semi-axis [nm]
	// True geometry, kept alongside the fitted one in the same files.
	TrueAUnique Real `yaml:"true_a_unique"`
	TrueADegen  Real `yaml:"true_a_degen"`
}

type FluorophoreParams struct {
	ExtinctionCoeff Real `yaml:"extinction_coeff"` // [M⁻¹·cm⁻¹]
	MassHbarGamma   Real `yaml:"mass_gamma"`       // mass-equivalent linewidth [eV]
	NRHbarGamma     Real `yaml:"test_gamma"`       // non-radiative linewidth [eV]
}

// ParamFile is one experiment parameter file. Sections the engine does not
// consume (sensor geometry and the like) are ignored on load.
type ParamFile struct {
	General     GeneralParams     `yaml:"general"`
	Plasmon     PlasmonParams     `yaml:"plasmon"`
	Fluorophore FluorophoreParams `yaml:"fluorophore"`
}

// LoadParamFile reads and decodes one parameter file.
func LoadParamFile(path string) (*ParamFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}
	var pf ParamFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("decode params %s: %w", path, err)
	}
	return &pf, nil
}

type constantsFile struct {
	Physical struct {
		E    Real `yaml:"e"`
		C    Real `yaml:"c"`
		Hbar Real `yaml:"hbar"`
		NM   Real `yaml:"nm"`
		NA   Real `yaml:"nA"`
	} `yaml:"physical_constants"`
}

// LoadConstants reads a physical-constants table. The result is an immutable
// value passed explicitly into every construction; nothing reads it from
// package state.
func LoadConstants(path string) (Constants, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Constants{}, fmt.Errorf("read constants: %w", err)
	}
	var cf constantsFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return Constants{}, fmt.Errorf("decode constants %s: %w", path, err)
	}
	cns := Constants{
		E:    cf.Physical.E,
		C:    cf.Physical.C,
		Hbar: cf.Physical.Hbar,
		NM:   cf.Physical.NM,
		NA:   cf.Physical.NA,
	}
	for _, v := range []struct {
		name string
		val  Real
	}{
		{"e", cns.E}, {"c", cns.C}, {"hbar", cns.Hbar}, {"nm", cns.NM}, {"nA", cns.NA},
	} {
		if !(v.val > 0) || !isFinite(v.val) {
			return Constants{}, &DomainError{Param: "physical constant " + v.name, Value: v.val}
		}
	}
	return cns, nil
}

// Build assembles a coupled pair from a parameter record: a fluorophore
// oscillator resonant at the drive energy (zero static term) against a Drude
// spheroid of the fitted geometry, separated by sep [cm] along the given
// axis mode. Equal fitted semi-axes route to the dedicated sphere path.
func (pf *ParamFile) Build(cns Constants, sep Vec3, mode AxisMode) (*DipolePair, error) {
	g := pf.General
	if !(g.BackgroundRefIndex > 0) || !isFinite(g.BackgroundRefIndex) {
		return nil, &DomainError{Param: "background refractive index", Value: g.BackgroundRefIndex}
	}
	nb := g.BackgroundRefIndex
	epsB := nb * nb

	fluo, err := NewFluorophore(cns,
		pf.Fluorophore.ExtinctionCoeff,
		pf.Fluorophore.MassHbarGamma/cns.Hbar,
		pf.Fluorophore.NRHbarGamma/cns.Hbar,
		g.DriveEnergyEV/cns.Hbar,
		0, 1)
	if err != nil {
		return nil, err
	}

	spheroid, err := NewSpheroid(cns, pf.Plasmon.AUnique*cns.NM, pf.Plasmon.ADegen*cns.NM)
	if err != nil {
		return nil, err
	}
	drude := Drude{
		EpsInf:     pf.Plasmon.EpsInf,
		PlasmaFreq: pf.Plasmon.HbarWp / cns.Hbar,
		Damping:    pf.Plasmon.HbarGamma / cns.Hbar,
	}

	return &DipolePair{
		Const:      cns,
		NB:         nb,
		Separation: sep,
		DriveAmp:   g.DriveAmp,
		Alpha0: func(w Real) CMat3 {
			return fluo.Polarizability(w, epsB)
		},
		Alpha1: func(w Real) CMat3 {
			return spheroid.PolarizabilityDrude(drude, epsB, w, mode)
		},
	}, nil
}
