package main

import (
	"fmt"

	"github.com/jgoulah/loadshape/internal/duration"
	"github.com/spf13/cobra"
)

var durationDaily bool

var durationCmd = &cobra.Command{
	Use:   "duration",
	Short: "Print the demand duration curve",
	Long: `Sorts the stored demand series descending and prints, for each distinct
value, the fraction of time demand equaled or exceeded it.`,
	RunE: runDuration,
}

func init() {
	durationCmd.Flags().BoolVar(&durationDaily, "daily", false, "Use daily mean demand instead of raw readings")
	rootCmd.AddCommand(durationCmd)
}

func runDuration(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var values []float64
	if durationDaily {
		records, err := db.ListDailyRecords()
		if err != nil {
			return fmt.Errorf("listing daily records: %w", err)
		}
		for _, r := range records {
			values = append(values, r.MeanMW)
		}
	} else {
		readings, err := db.ListReadings()
		if err != nil {
			return fmt.Errorf("listing readings: %w", err)
		}
		for _, r := range readings {
			values = append(values, r.DemandMW)
		}
	}

	curve, err := duration.Curve(values)
	if err != nil {
		return fmt.Errorf("building duration curve: %w", err)
	}

	fmt.Println("\nDemand Duration Curve:")
	fmt.Println("----------------------------")
	fmt.Printf("%10s  %12s\n", "MW", "Exceedance")
	fmt.Println("----------------------------")
	for _, p := range curve {
		fmt.Printf("%10.2f  %12.4f\n", p.ValueMW, p.Exceedance)
	}

	return nil
}
