package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/loadshape/internal/publisher"
	"github.com/jgoulah/loadshape/pkg/models"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish analysis results to Home Assistant or MQTT",
	Long: `Pushes the derived daily records and the latest per-regime fit parameters
to the configured Home Assistant instance or MQTT broker. This is a batch
push after an analyze run, not a resident service.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.MQTT.Enabled && !cfg.HomeAssistant.Enabled {
		return fmt.Errorf("neither MQTT nor Home Assistant is enabled in config")
	}

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
		fmt.Println("No daily records to publish. Run 'loadshape analyze' first")
		return nil
	}

	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	published := 0
	for _, r := range records {
		if err := pub.PublishDaily(r); err != nil {
			return fmt.Errorf("publishing daily record for %s: %w", r.Date.Format("2006-01-02"), err)
		}
		published++
	}
	fmt.Printf("✓ Published %s daily records\n", humanize.Comma(int64(published)))

	if cfg.MQTT.Enabled {
		for _, regime := range []models.Regime{models.RegimeHeating, models.RegimeCooling} {
			fit, err := db.LatestModelFit(regime)
			if err != nil {
				return fmt.Errorf("loading %s fit: %w", regime, err)
			}
			if fit == nil {
				fmt.Printf("⚠ No stored %s fit to publish\n", regime)
				continue
			}
			if err := pub.PublishModel(fit); err != nil {
				return fmt.Errorf("publishing %s fit: %w", regime, err)
			}
			fmt.Printf("✓ Published %s fit (slope %+.4f MW/°F)\n", regime, fit.Slope)
		}
	}

	return nil
}
