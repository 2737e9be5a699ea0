package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/nanoptics/dipolar/internal/dipolar"
)

var (
	coupEnergyEV   float64
	coupMinSepNM   float64
	coupMaxSepNM   float64
	coupSamples    int
	coupAbsorption bool
)

var couplingCmd = &cobra.Command{
	Use:   "coupling",
	Short: "Sweep the separation at fixed drive energy",
	Long: `Solves the coupled pair across a separation grid at one drive
energy, showing how the cross sections decay toward the uncoupled limit.`,
	Args: cobra.NoArgs,
	RunE: runCoupling,
}

func init() {
	couplingCmd.Flags().Float64VarP(&coupEnergyEV, "energy-ev", "e", 2.5, "drive energy [eV]")
	couplingCmd.Flags().Float64Var(&coupMinSepNM, "min-sep-nm", 10, "smallest separation [nm]")
	couplingCmd.Flags().Float64Var(&coupMaxSepNM, "max-sep-nm", 500, "largest separation [nm]")
	couplingCmd.Flags().IntVarP(&coupSamples, "samples", "n", 201, "separation samples")
	couplingCmd.Flags().BoolVar(&coupAbsorption, "absorption", false, "also evaluate absorption")
	rootCmd.AddCommand(couplingCmd)
}

func runCoupling(cmd *cobra.Command, args []string) error {
	if coupSamples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", coupSamples)
	}
	if !(coupMinSepNM > 0) {
		return fmt.Errorf("separation must be positive, got %g nm", coupMinSepNM)
	}
	cns, err := loadConstants()
	if err != nil {
		return err
	}
	mode, err := axisMode()
	if err != nil {
		return err
	}
	pf, err := dipolar.LoadParamFile(paramsPath)
	if err != nil {
		return err
	}

	sepsNM := make([]dipolar.Real, coupSamples)
	floats.Span(sepsNM, coupMinSepNM, coupMaxSepNM)

	energies := make([]dipolar.Real, coupSamples)
	seps := make([]dipolar.Vec3, coupSamples)
	for i, s := range sepsNM {
		energies[i] = coupEnergyEV
		seps[i] = dipolar.Vec3{X: s * cns.NM}
	}

	pair, err := pf.Build(cns, seps[0], mode)
	if err != nil {
		return err
	}

	log.Info().
		Int("samples", coupSamples).
		Float64("energy_ev", coupEnergyEV).
		Float64("min_sep_nm", coupMinSepNM).
		Float64("max_sep_nm", coupMaxSepNM).
		Str("mode", mode.String()).
		Msg("separation sweep")

	req := dipolar.SweepRequest{
		Pair:           pair,
		Energies:       energies,
		Separations:    seps,
		WithAbsorption: coupAbsorption,
	}
	points, err := req.Run()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	w := csv.NewWriter(out)
	header := []string{"sep_nm", "sigma_scat_cm2"}
	if coupAbsorption {
		header = append(header, "sigma_abs_cm2")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, pt := range points {
		row := []string{
			strconv.FormatFloat(sepsNM[i], 'g', 9, 64),
			strconv.FormatFloat(pt.Scattering, 'g', 9, 64),
		}
		if coupAbsorption {
			row = append(row, strconv.FormatFloat(pt.Absorption, 'g', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
