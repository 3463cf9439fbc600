// Package shape characterizes the diurnal and seasonal shape of the load:
// a "typical day" profile per calendar month, and daily peakiness ratio
// series smoothed to weekly and monthly granularity.
package shape

import (
	"sort"
	"time"

	"github.com/jgoulah/loadshape/internal/aggregate"
	"github.com/jgoulah/loadshape/pkg/models"
)

// MonthHourStat summarizes hourly mean demand for one (month, hour) cell
// across all days sharing that calendar month.
type MonthHourStat struct {
	Month        int     `json:"month"`
	Hour         int     `json:"hour"`
	MinMW        float64 `json:"min_mw"`
	MeanMW       float64 `json:"mean_mw"`
	MaxMW        float64 `json:"max_mw"`
	StdDevMW     float64 `json:"stddev_mw"`
	PeakToMean   float64 `json:"peak_to_mean"`
	PeakToTrough float64 `json:"peak_to_trough"`
	Days         int     `json:"days"`
}

// RatioPoint is one point of a peakiness ratio time series.
type RatioPoint struct {
	Date         time.Time `json:"date"`
	PeakToMean   float64   `json:"peak_to_mean"`
	PeakToTrough float64   `json:"peak_to_trough"`
}

type monthHourKey struct {
	month int
	hour  int
}

// MonthlyProfile computes per (month, hour) statistics over hourly records,
// characterizing a typical day for each calendar month. Only cells present
// in the input appear in the output, sorted by month then hour.
func MonthlyProfile(hourly []models.HourlyRecord) []MonthHourStat {
	cells := make(map[monthHourKey][]float64)
	for _, h := range hourly {
		k := monthHourKey{month: h.Month, hour: h.Hour}
		cells[k] = append(cells[k], h.MeanMW)
	}

	stats := make([]MonthHourStat, 0, len(cells))
	for k, vals := range cells {
		mean := aggregate.Mean(vals)
		max := aggregate.Max(vals)
		trough := aggregate.Percentile(vals, aggregate.TroughPercentile)

		s := MonthHourStat{
			Month:    k.month,
			Hour:     k.hour,
			MinMW:    aggregate.Min(vals),
			MeanMW:   mean,
			MaxMW:    max,
			StdDevMW: aggregate.StdDev(vals),
			Days:     len(vals),
		}
		if mean != 0 {
			s.PeakToMean = max / mean
		}
		if trough != 0 {
			s.PeakToTrough = max / trough
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Month != stats[j].Month {
			return stats[i].Month < stats[j].Month
		}
		return stats[i].Hour < stats[j].Hour
	})
	return stats
}

// DailyRatios extracts the daily peakiness series from daily records,
// skipping any dates in the caller-supplied exclusion set (known outage or
// otherwise anomalous days). Exclusion is explicit, not detected.
func DailyRatios(daily []models.DailyRecord, excluded map[time.Time]bool) []RatioPoint {
	series := make([]RatioPoint, 0, len(daily))
	for _, d := range daily {
		if excluded[d.Date] {
			continue
		}
		series = append(series, RatioPoint{
			Date:         d.Date,
			PeakToMean:   d.PeakToMean,
			PeakToTrough: d.PeakToTrough,
		})
	}
	return series
}

// SmoothWeekly re-aggregates a daily ratio series to ISO-week granularity
// by arithmetic mean. Each output point is dated at the Monday of its week.
func SmoothWeekly(series []RatioPoint) []RatioPoint {
	return smooth(series, weekStart)
}

// SmoothMonthly re-aggregates a daily ratio series to calendar-month
// granularity by arithmetic mean. Each output point is dated at the first
// of its month.
func SmoothMonthly(series []RatioPoint) []RatioPoint {
	return smooth(series, monthStart)
}

func smooth(series []RatioPoint, bucket func(time.Time) time.Time) []RatioPoint {
	type sums struct {
		peakToMean   float64
		peakToTrough float64
		n            int
	}
	buckets := make(map[time.Time]*sums)
	for _, p := range series {
		k := bucket(p.Date)
		s, ok := buckets[k]
		if !ok {
			s = &sums{}
			buckets[k] = s
		}
		s.peakToMean += p.PeakToMean
		s.peakToTrough += p.PeakToTrough
		s.n++
	}

	out := make([]RatioPoint, 0, len(buckets))
	for k, s := range buckets {
		out = append(out, RatioPoint{
			Date:         k,
			PeakToMean:   s.peakToMean / float64(s.n),
			PeakToTrough: s.peakToTrough / float64(s.n),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func weekStart(t time.Time) time.Time {
	// Back up to Monday.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
