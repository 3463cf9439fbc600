package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List derived daily demand records",
	Long:  `Displays the daily records computed by the last analyze run.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	records, err := db.ListDailyRecords()
	if err != nil {
		return fmt.Errorf("listing daily records: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No daily records found. Run 'loadshape analyze' first")
		return nil
	}

	fmt.Println("\nDaily Demand Records:")
	fmt.Println("------------------------------------------------------------------------")
	fmt.Printf("%-12s  %10s  %10s  %10s  %8s  %8s\n", "Date", "Mean MW", "Peak MW", "Trough MW", "Pk/Mean", "Pk/Trgh")
	fmt.Println("------------------------------------------------------------------------")

	var totalMean float64
	for _, r := range records {
		fmt.Printf("%-12s  %10.2f  %10.2f  %10.2f  %8.3f  %8.3f\n",
			r.Date.Format("2006-01-02"), r.MeanMW, r.PeakMW, r.TroughMW, r.PeakToMean, r.PeakToTrough)
		totalMean += r.MeanMW
	}

	fmt.Println("------------------------------------------------------------------------")
	fmt.Printf("Average daily mean: %.2f MW (%s days)\n",
		totalMean/float64(len(records)), humanize.Comma(int64(len(records))))

	return nil
}
