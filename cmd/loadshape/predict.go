package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jgoulah/loadshape/internal/regress"
	"github.com/jgoulah/loadshape/pkg/models"
	"github.com/spf13/cobra"
)

var predictTemps string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict demand at given temperatures from the stored fits",
	Long: `Evaluates the most recent per-regime fits at the supplied temperatures.
Each temperature is routed to the heating or cooling fit by the configured
threshold; temperatures exactly at the threshold belong to neither regime.
Predictions outside a fit's training range are flagged as extrapolation.`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictTemps, "temps", "", "Comma-separated temperatures in °F (required)")
	predictCmd.MarkFlagRequired("temps")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	var temps []float64
	for _, s := range strings.Split(predictTemps, ",") {
		t, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("parsing temperature %q: %w", s, err)
		}
		temps = append(temps, t)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	threshold := cfg.GetRegimeThresholdF()

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	fits := map[models.Regime]*models.FittedModel{}
	for _, regime := range []models.Regime{models.RegimeHeating, models.RegimeCooling} {
		fit, err := db.LatestModelFit(regime)
		if err != nil {
			return fmt.Errorf("loading %s fit: %w", regime, err)
		}
		fits[regime] = fit
	}

	fmt.Println("\nPredicted Demand:")
	fmt.Println("--------------------------------------------------")
	fmt.Printf("%8s  %-8s  %10s\n", "Temp °F", "Regime", "MW")
	fmt.Println("--------------------------------------------------")
	for _, t := range temps {
		var regime models.Regime
		switch {
		case t < threshold:
			regime = models.RegimeHeating
		case t > threshold:
			regime = models.RegimeCooling
		default:
			fmt.Printf("%8.1f  %-8s  %10s\n", t, "-", "at threshold, no regime")
			continue
		}

		fit := fits[regime]
		if fit == nil {
			fmt.Printf("%8.1f  %-8s  %10s\n", t, regime, "no stored fit")
			continue
		}

		mw := regress.Predict(fit, []float64{t})[0]
		note := ""
		if t < fit.TempMinF || t > fit.TempMaxF {
			note = "  (extrapolating outside training range)"
		}
		fmt.Printf("%8.1f  %-8s  %10.2f%s\n", t, regime, mw, note)
	}

	return nil
}
