// Package join aligns the independent daily temperature series with the
// daily demand series by calendar date.
package join

import (
	"sort"
	"time"

	"github.com/jgoulah/loadshape/pkg/models"
)

// Stats reports how many input dates fell out of the join, either for
// missing a partner on the other side or for being outside the window.
// The reference behavior drops them silently; the counts exist so a run
// can report the gap instead of hiding it.
type Stats struct {
	Joined              int `json:"joined"`
	DroppedDemand       int `json:"dropped_demand"`
	DroppedTemperatures int `json:"dropped_temperatures"`
}

// Daily inner-joins daily demand records with temperature records on exact
// date match, restricted to the closed window [start, end]. A zero start or
// end leaves that side of the window unbounded. Output is sorted by date;
// the result does not depend on input order.
func Daily(daily []models.DailyRecord, temps []models.TemperatureRecord, start, end time.Time) ([]models.JoinedObservation, Stats) {
	inWindow := func(d time.Time) bool {
		if !start.IsZero() && d.Before(start) {
			return false
		}
		if !end.IsZero() && d.After(end) {
			return false
		}
		return true
	}

	tempByDate := make(map[time.Time]float64, len(temps))
	for _, t := range temps {
		tempByDate[t.Date] = t.TempF
	}

	var stats Stats
	joined := make([]models.JoinedObservation, 0, len(daily))
	matched := make(map[time.Time]bool, len(daily))
	for _, d := range daily {
		temp, ok := tempByDate[d.Date]
		if !ok || !inWindow(d.Date) {
			stats.DroppedDemand++
			continue
		}
		joined = append(joined, models.JoinedObservation{
			Date:   d.Date,
			MeanMW: d.MeanMW,
			TempF:  temp,
		})
		matched[d.Date] = true
	}
	for _, t := range temps {
		if !matched[t.Date] {
			stats.DroppedTemperatures++
		}
	}
	stats.Joined = len(joined)

	sort.Slice(joined, func(i, j int) bool { return joined[i].Date.Before(joined[j].Date) })
	return joined, stats
}
