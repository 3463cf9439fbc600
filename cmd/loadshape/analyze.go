package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/loadshape/internal/aggregate"
	"github.com/jgoulah/loadshape/internal/database"
	"github.com/jgoulah/loadshape/internal/join"
	"github.com/jgoulah/loadshape/internal/regress"
	"github.com/jgoulah/loadshape/internal/shape"
	"github.com/jgoulah/loadshape/internal/timebin"
	"github.com/jgoulah/loadshape/pkg/models"
	"github.com/spf13/cobra"
)

var analyzeSeed int64

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full demand/temperature analysis pipeline",
	Long: `Runs the pipeline end to end: bins stored readings to hours, derives hourly
and daily aggregates and diurnal shape statistics, joins the daily series
with temperature, splits observations into heating and cooling regimes at the
configured threshold, fits an OLS demand/temperature model per regime, and
validates each fit with leave-one-out and random-drop cross-validation.
Derived tables and fit parameters are written back to the database.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "Random seed for drop trials (0 = time-based)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Analyze started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	windowStart, windowEnd, err := cfg.GetWindow()
	if err != nil {
		return fmt.Errorf("parsing analysis window: %w", err)
	}
	excluded, err := cfg.GetExcludedDates()
	if err != nil {
		return fmt.Errorf("parsing excluded dates: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	readings, err := db.ListReadings()
	if err != nil {
		return fmt.Errorf("loading readings: %w", err)
	}
	if len(readings) == 0 {
		return fmt.Errorf("no demand readings stored. Run 'loadshape ingest demand' first")
	}
	temps, err := db.ListTemperatures()
	if err != nil {
		return fmt.Errorf("loading temperatures: %w", err)
	}

	// Bin and aggregate
	binned, droppedBin := timebin.Bin(readings)
	if droppedBin > 0 {
		fmt.Printf("⚠ Excluded %d readings with missing timestamps\n", droppedBin)
	}
	hourly := aggregate.Hourly(binned)
	daily := aggregate.Daily(binned)
	fmt.Printf("✓ Aggregated %s readings into %s hourly and %s daily records\n",
		humanize.Comma(int64(len(binned))), humanize.Comma(int64(len(hourly))), humanize.Comma(int64(len(daily))))

	if err := db.ReplaceHourlyRecords(hourly); err != nil {
		return fmt.Errorf("storing hourly records: %w", err)
	}
	if err := db.ReplaceDailyRecords(daily); err != nil {
		return fmt.Errorf("storing daily records: %w", err)
	}

	// Diurnal shape
	profile := shape.MonthlyProfile(hourly)
	ratios := shape.DailyRatios(daily, excluded)
	weekly := shape.SmoothWeekly(ratios)
	monthly := shape.SmoothMonthly(ratios)
	fmt.Printf("✓ Shape: %d (month, hour) profile cells, ratio series at %d daily / %d weekly / %d monthly points\n",
		len(profile), len(ratios), len(weekly), len(monthly))

	// Join with temperature
	if len(temps) == 0 {
		fmt.Println("⚠ No temperature records stored; skipping regression (run 'loadshape ingest temperature')")
		return nil
	}
	joined, jstats := join.Daily(daily, temps, windowStart, windowEnd)
	fmt.Printf("✓ Joined %d days (dropped %d demand days, %d temperature days outside the intersection)\n",
		jstats.Joined, jstats.DroppedDemand, jstats.DroppedTemperatures)
	if len(joined) == 0 {
		return fmt.Errorf("no days joined: demand and temperature series do not overlap inside the window")
	}

	// Regime split and per-regime regression
	threshold := cfg.GetRegimeThresholdF()
	heating, cooling, atBoundary := regress.Split(joined, threshold)
	fmt.Printf("✓ Split at %.1f°F: %d heating days, %d cooling days", threshold, len(heating), len(cooling))
	if atBoundary > 0 {
		fmt.Printf(" (%d days exactly at the threshold excluded from both)", atBoundary)
	}
	fmt.Println()

	rng := newRNG(analyzeSeed)
	runAt := time.Now()
	for _, r := range []struct {
		regime models.Regime
		obs    []models.JoinedObservation
	}{
		{models.RegimeHeating, heating},
		{models.RegimeCooling, cooling},
	} {
		if err := analyzeRegime(db, cfg.GetCVDropFraction(), cfg.GetCVTrials(), rng, runAt, r.regime, r.obs); err != nil {
			return err
		}
	}

	fmt.Println("✓ Analysis complete")
	return nil
}

// analyzeRegime fits, diagnoses, and cross-validates one regime. A regime
// with too little data is reported as skipped, never as a zero-slope model.
func analyzeRegime(db *database.DB, dropFraction float64, trials int, rng *rand.Rand, runAt time.Time, regime models.Regime, obs []models.JoinedObservation) error {
	fmt.Printf("\n%s regime (%d days):\n", regime, len(obs))

	model, err := regress.Fit(regime, obs)
	if err != nil {
		fmt.Printf("  ⚠ Skipped: %v\n", err)
		return nil
	}

	fmt.Printf("  demand ≈ %.3f %+.4f × temp°F  (R² %.3f, residual SE %.3f MW)\n",
		model.Intercept, model.Slope, model.R2, model.ResidualSE)

	diag := regress.Diagnose(model)
	fmt.Printf("  Residual autocorrelation (lags 1-%d):", regress.AutocorrelationLags)
	for _, r := range diag.Autocorrelation {
		fmt.Printf(" %+.2f", r)
	}
	fmt.Println()
	fmt.Printf("  Max Cook's distance: %.3f\n", aggregate.Max(diag.CooksDistance))

	looErrs, err := regress.CrossValidateLOO(model)
	if err != nil {
		fmt.Printf("  ⚠ Leave-one-out skipped: %v\n", err)
	} else {
		fmt.Printf("  Leave-one-out RMSE: %.3f MW over %d folds\n", rmse(looErrs), len(looErrs))
	}

	dropErrs, err := regress.CrossValidateRandomDrop(model, dropFraction, trials, rng)
	if err != nil {
		fmt.Printf("  ⚠ Random-drop skipped: %v\n", err)
	} else {
		fmt.Printf("  Random-drop RMSE: %.3f MW (%d trials dropping %.0f%%)\n",
			rmse(dropErrs), trials, dropFraction*100)
	}

	if err := db.InsertModelFit(runAt, model); err != nil {
		return fmt.Errorf("storing %s fit: %w", regime, err)
	}
	return nil
}

func rmse(errs []float64) float64 {
	if len(errs) == 0 {
		return math.NaN()
	}
	var sq float64
	for _, e := range errs {
		sq += e * e
	}
	return math.Sqrt(sq / float64(len(errs)))
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
}
