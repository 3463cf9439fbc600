package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/loadshape/internal/ingest"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest demand or temperature data into the database",
}

var ingestDemandCmd = &cobra.Command{
	Use:   "demand [file.csv]",
	Short: "Ingest a demand CSV file",
	Long: `Parses a CSV of demand readings (header row; timestamp column plus a named
demand column) and stores them in the local SQLite database. Rows with an
unparseable timestamp or value are dropped and counted, not coerced.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestDemand,
}

var ingestTemperatureCmd = &cobra.Command{
	Use:   "temperature [file.txt]",
	Short: "Ingest a daily temperature file",
	Long: `Parses a plain-text temperature series (month day year tempF per line,
whitespace or comma delimited) and stores it in the local SQLite database.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestTemperature,
}

func init() {
	ingestCmd.AddCommand(ingestDemandCmd)
	ingestCmd.AddCommand(ingestTemperatureCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestDemand(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Ingest started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening demand file: %w", err)
	}
	defer f.Close()

	readings, dropped, err := ingest.DemandCSV(cmd.Context(), f, cfg.GetDemandColumn())
	if err != nil {
		return fmt.Errorf("parsing demand file: %w", err)
	}
	if dropped > 0 {
		fmt.Printf("⚠ Dropped %s malformed rows\n", humanize.Comma(int64(dropped)))
	}
	if len(readings) == 0 {
		fmt.Println("No parseable readings found")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	inserted, err := db.InsertReadings(readings)
	if err != nil {
		return fmt.Errorf("storing readings: %w", err)
	}

	fmt.Printf("✓ Parsed %s readings, inserted %s (duplicates automatically skipped)\n",
		humanize.Comma(int64(len(readings))), humanize.Comma(int64(inserted)))
	return nil
}

func runIngestTemperature(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Ingest started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening temperature file: %w", err)
	}
	defer f.Close()

	records, dropped, err := ingest.TemperatureFile(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("parsing temperature file: %w", err)
	}
	if dropped > 0 {
		fmt.Printf("⚠ Dropped %s malformed rows\n", humanize.Comma(int64(dropped)))
	}
	if len(records) == 0 {
		fmt.Println("No parseable temperature records found")
		return nil
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	inserted, err := db.InsertTemperatures(records)
	if err != nil {
		return fmt.Errorf("storing temperatures: %w", err)
	}

	fmt.Printf("✓ Parsed %s records, inserted %s (duplicates automatically skipped)\n",
		humanize.Comma(int64(len(records))), humanize.Comma(int64(inserted)))
	return nil
}
