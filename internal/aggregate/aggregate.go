// Package aggregate reduces hour-binned demand readings to hourly and
// daily summary records.
package aggregate

import (
	"sort"
	"time"

	"github.com/jgoulah/loadshape/pkg/models"
)

// TroughPercentile is the percentile used as the daily "trough". The 5th
// percentile rather than the minimum keeps a single zero-demand outage
// reading from driving the peak-to-trough ratio to infinity.
const TroughPercentile = 5.0

type hourKey struct {
	date time.Time
	hour int
}

// Hourly groups binned readings by (date, hour) and returns one HourlyRecord
// per group with the mean demand of its constituent readings. Only groups
// present in the input appear; missing hours are not fabricated or imputed.
// Output is sorted by date then hour.
func Hourly(binned []models.BinnedReading) []models.HourlyRecord {
	groups := make(map[hourKey][]float64)
	for _, b := range binned {
		k := hourKey{date: b.Date, hour: b.Hour}
		groups[k] = append(groups[k], b.DemandMW)
	}

	records := make([]models.HourlyRecord, 0, len(groups))
	for k, vals := range groups {
		records = append(records, models.HourlyRecord{
			Date:    k.date,
			Year:    k.date.Year(),
			Month:   int(k.date.Month()),
			Day:     k.date.Day(),
			Hour:    k.hour,
			MeanMW:  Mean(vals),
			Samples: len(vals),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].Hour < records[j].Hour
	})
	return records
}

// Daily groups binned readings by date and returns one DailyRecord per date
// with mean, peak, 5th-percentile trough, and the derived shape ratios.
// Output is sorted by date.
func Daily(binned []models.BinnedReading) []models.DailyRecord {
	groups := make(map[time.Time][]float64)
	for _, b := range binned {
		groups[b.Date] = append(groups[b.Date], b.DemandMW)
	}

	records := make([]models.DailyRecord, 0, len(groups))
	for date, vals := range groups {
		mean := Mean(vals)
		peak := Max(vals)
		trough := Percentile(vals, TroughPercentile)

		rec := models.DailyRecord{
			Date:     date,
			MeanMW:   mean,
			PeakMW:   peak,
			TroughMW: trough,
			Samples:  len(vals),
		}
		if mean != 0 {
			rec.PeakToMean = peak / mean
		}
		if trough != 0 {
			rec.PeakToTrough = peak / trough
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}
