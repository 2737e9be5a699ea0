package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/nanoptics/dipolar/internal/dipolar"
)

var (
	specMinEV      float64
	specMaxEV      float64
	specSamples    int
	specSepNM      float64
	specAbsorption bool
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Sweep the drive energy at fixed separation",
	Long: `Solves the coupled pair across a drive-energy grid at a fixed
emitter-particle separation and writes one CSV row per sample.`,
	Args: cobra.NoArgs,
	RunE: runSpectrum,
}

func init() {
	spectrumCmd.Flags().Float64Var(&specMinEV, "min-ev", 1.0, "lowest drive energy [eV]")
	spectrumCmd.Flags().Float64Var(&specMaxEV, "max-ev", 4.0, "highest drive energy [eV]")
	spectrumCmd.Flags().IntVarP(&specSamples, "samples", "n", 301, "energy samples")
	spectrumCmd.Flags().Float64Var(&specSepNM, "sep-nm", 50, "separation along x [nm]")
	spectrumCmd.Flags().BoolVar(&specAbsorption, "absorption", false, "also evaluate absorption")
	rootCmd.AddCommand(spectrumCmd)
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	if specSamples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", specSamples)
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
	sep := dipolar.Vec3{X: specSepNM * cns.NM}
	pair, err := pf.Build(cns, sep, mode)
	if err != nil {
		return err
	}

	energies := make([]dipolar.Real, specSamples)
	floats.Span(energies, specMinEV, specMaxEV)

	log.Info().
		Int("samples", specSamples).
		Float64("min_ev", specMinEV).
		Float64("max_ev", specMaxEV).
		Float64("sep_nm", specSepNM).
		Str("mode", mode.String()).
		Msg("energy sweep")
	start := time.Now()

	req := dipolar.SweepRequest{
		Pair:           pair,
		Energies:       energies,
		WithAbsorption: specAbsorption,
	}
	points, err := req.Run()
	if err != nil {
		return err
	}
	log.Info().Dur("took", time.Since(start)).Msg("sweep done")

	return writePoints(points, specAbsorption)
}

func writePoints(points []dipolar.SweepPoint, withAbs bool) error {
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
	header := []string{"energy_ev", "sigma_scat_cm2"}
	if withAbs {
		header = append(header, "sigma_abs_cm2")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, pt := range points {
		row := []string{
			strconv.FormatFloat(pt.EnergyEV, 'g', 9, 64),
			strconv.FormatFloat(pt.Scattering, 'g', 9, 64),
		}
		if withAbs {
			row = append(row, strconv.FormatFloat(pt.Absorption, 'g', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
