package shape

import (
	"testing"
	"time"

	"github.com/jgoulah/loadshape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyProfile(t *testing.T) {
	// Hour 12 of two July days plus one hour of an August day.
	hourly := []models.HourlyRecord{
		{Date: day(2024, 7, 1), Month: 7, Hour: 12, MeanMW: 100},
		{Date: day(2024, 7, 2), Month: 7, Hour: 12, MeanMW: 200},
		{Date: day(2024, 8, 1), Month: 8, Hour: 12, MeanMW: 300},
	}

	profile := MonthlyProfile(hourly)
	require.Len(t, profile, 2)

	july := profile[0]
	assert.Equal(t, 7, july.Month)
	assert.Equal(t, 12, july.Hour)
	assert.Equal(t, 100.0, july.MinMW)
	assert.Equal(t, 150.0, july.MeanMW)
	assert.Equal(t, 200.0, july.MaxMW)
	assert.Equal(t, 2, july.Days)
	assert.InDelta(t, 200.0/150.0, july.PeakToMean, 1e-9)

	august := profile[1]
	assert.Equal(t, 8, august.Month)
	assert.Equal(t, 1, august.Days)
	assert.Equal(t, 0.0, august.StdDevMW)
}

func TestDailyRatiosExcludesDates(t *testing.T) {
	outage := day(2024, 7, 2)
	daily := []models.DailyRecord{
		{Date: day(2024, 7, 1), PeakToMean: 1.2, PeakToTrough: 1.5},
		{Date: outage, PeakToMean: 9.9, PeakToTrough: 40.0},
		{Date: day(2024, 7, 3), PeakToMean: 1.3, PeakToTrough: 1.6},
	}

	series := DailyRatios(daily, map[time.Time]bool{outage: true})
	require.Len(t, series, 2)
	assert.Equal(t, day(2024, 7, 1), series[0].Date)
	assert.Equal(t, day(2024, 7, 3), series[1].Date)
}

func TestSmoothWeekly(t *testing.T) {
	// 2024-07-01 is a Monday; the 8th starts the next ISO week.
	series := []RatioPoint{
		{Date: day(2024, 7, 1), PeakToMean: 1.0, PeakToTrough: 2.0},
		{Date: day(2024, 7, 3), PeakToMean: 2.0, PeakToTrough: 4.0},
		{Date: day(2024, 7, 8), PeakToMean: 3.0, PeakToTrough: 6.0},
	}

	weekly := SmoothWeekly(series)
	require.Len(t, weekly, 2)

	assert.Equal(t, day(2024, 7, 1), weekly[0].Date)
	assert.InDelta(t, 1.5, weekly[0].PeakToMean, 1e-9)
	assert.InDelta(t, 3.0, weekly[0].PeakToTrough, 1e-9)

	assert.Equal(t, day(2024, 7, 8), weekly[1].Date)
	assert.InDelta(t, 3.0, weekly[1].PeakToMean, 1e-9)
}

func TestSmoothWeeklySundayJoinsPrecedingMonday(t *testing.T) {
	series := []RatioPoint{
		{Date: day(2024, 7, 1), PeakToMean: 1.0}, // Monday
		{Date: day(2024, 7, 7), PeakToMean: 3.0}, // Sunday, same ISO week
	}

	weekly := SmoothWeekly(series)
	require.Len(t, weekly, 1)
	assert.Equal(t, day(2024, 7, 1), weekly[0].Date)
	assert.InDelta(t, 2.0, weekly[0].PeakToMean, 1e-9)
}

func TestSmoothMonthly(t *testing.T) {
	series := []RatioPoint{
		{Date: day(2024, 6, 15), PeakToMean: 1.0, PeakToTrough: 2.0},
		{Date: day(2024, 6, 30), PeakToMean: 3.0, PeakToTrough: 4.0},
		{Date: day(2024, 7, 1), PeakToMean: 5.0, PeakToTrough: 6.0},
	}

	monthly := SmoothMonthly(series)
	require.Len(t, monthly, 2)

	assert.Equal(t, day(2024, 6, 1), monthly[0].Date)
	assert.InDelta(t, 2.0, monthly[0].PeakToMean, 1e-9)
	assert.InDelta(t, 3.0, monthly[0].PeakToTrough, 1e-9)

	assert.Equal(t, day(2024, 7, 1), monthly[1].Date)
	assert.InDelta(t, 5.0, monthly[1].PeakToMean, 1e-9)
}
