// Package timebin rounds irregular demand readings onto an hourly grid
// and attaches the calendar attributes downstream grouping keys on.
package timebin

import (
	"time"

	"github.com/jgoulah/loadshape/pkg/models"
)

// RoundToHour rounds t to the nearest whole hour. A reading exactly on the
// half hour rounds up, so bin membership is deterministic across runs.
func RoundToHour(t time.Time) time.Time {
	// time.Round rounds half away from the zero time, which for any real
	// timestamp is round-half-up.
	return t.Round(time.Hour)
}

// Bin converts raw readings into hour-binned readings. Readings with a
// missing (zero) timestamp are excluded, never coerced to a default date;
// the count of excluded readings is returned alongside the result.
func Bin(readings []models.Reading) ([]models.BinnedReading, int) {
	binned := make([]models.BinnedReading, 0, len(readings))
	dropped := 0
	for _, r := range readings {
		if r.Timestamp.IsZero() {
			dropped++
			continue
		}
		rounded := RoundToHour(r.Timestamp.UTC())
		binned = append(binned, models.BinnedReading{
			Date:     Midnight(rounded),
			Year:     rounded.Year(),
			Month:    int(rounded.Month()),
			Day:      rounded.Day(),
			Hour:     rounded.Hour(),
			DemandMW: r.DemandMW,
		})
	}
	return binned, dropped
}

// Midnight truncates t to midnight UTC, the canonical date key used by
// every aggregation and join in the pipeline.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
