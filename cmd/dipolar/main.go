package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nanoptics/dipolar/internal/dipolar"
)

var (
	paramsPath    string
	constantsPath string
	outPath       string
	axisModeName  string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "dipolar",
	Short: "Coupled-dipole spectra for an emitter next to a plasmonic particle",
	Long: `Evaluates coupled-dipole electrodynamics from an experiment parameter
file: frequency-dependent polarizabilities, dipole-dipole coupling, and the
resulting scattering/absorption cross sections.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&paramsPath, "params", "p", "", "experiment parameter file (YAML)")
	rootCmd.PersistentFlags().StringVar(&constantsPath, "constants", "", "physical constants file (YAML); CGS defaults when empty")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "CSV output path (stdout when empty)")
	rootCmd.PersistentFlags().StringVar(&axisModeName, "mode", "full", "axis-selection mode: full, long or transverse")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.MarkPersistentFlagRequired("params")
}

func initLogger() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func loadConstants() (dipolar.Constants, error) {
	if constantsPath == "" {
		return dipolar.CGS(), nil
	}
	return dipolar.LoadConstants(constantsPath)
}

func axisMode() (dipolar.AxisMode, error) {
	switch axisModeName {
	case "full":
		return dipolar.AxisModeFull, nil
	case "long":
		return dipolar.AxisModeLong, nil
	case "transverse", "trans":
		return dipolar.AxisModeTransverse, nil
	}
	return 0, fmt.Errorf("unknown axis mode %q", axisModeName)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}
