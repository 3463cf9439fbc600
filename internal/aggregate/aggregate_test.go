package aggregate

import (
	"testing"
	"time"

	"github.com/jgoulah/loadshape/internal/timebin"
	"github.com/jgoulah/loadshape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourly(t *testing.T) {
	// Readings at 00:00 and 00:29 share hour 0; 01:01 lands in hour 1.
	readings := []models.Reading{
		{Timestamp: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), DemandMW: 100},
		{Timestamp: time.Date(2024, 7, 1, 0, 29, 0, 0, time.UTC), DemandMW: 100},
		{Timestamp: time.Date(2024, 7, 1, 1, 1, 0, 0, time.UTC), DemandMW: 150},
	}
	binned, _ := timebin.Bin(readings)

	hourly := Hourly(binned)
	require.Len(t, hourly, 2)

	assert.Equal(t, 0, hourly[0].Hour)
	assert.Equal(t, 100.0, hourly[0].MeanMW)
	assert.Equal(t, 2, hourly[0].Samples)

	assert.Equal(t, 1, hourly[1].Hour)
	assert.Equal(t, 150.0, hourly[1].MeanMW)
	assert.Equal(t, 1, hourly[1].Samples)
}

func TestHourlyNoFabricatedGroups(t *testing.T) {
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	binned := []models.BinnedReading{
		{Date: date, Hour: 3, DemandMW: 100},
		{Date: date, Hour: 17, DemandMW: 200},
	}

	hourly := Hourly(binned)
	require.Len(t, hourly, 2)
	assert.Equal(t, 3, hourly[0].Hour)
	assert.Equal(t, 17, hourly[1].Hour)
}

func TestDaily(t *testing.T) {
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	var binned []models.BinnedReading
	for hour := 0; hour < 10; hour++ {
		binned = append(binned, models.BinnedReading{
			Date: date, Hour: hour, DemandMW: float64(100 + hour*10),
		})
	}

	daily := Daily(binned)
	require.Len(t, daily, 1)

	d := daily[0]
	assert.Equal(t, date, d.Date)
	assert.Equal(t, 145.0, d.MeanMW)
	assert.Equal(t, 190.0, d.PeakMW)
	assert.Equal(t, 10, d.Samples)

	// 5th percentile of 100..190 step 10: index 0.05*9 = 0.45 -> 104.5
	assert.InDelta(t, 104.5, d.TroughMW, 1e-9)
	assert.InDelta(t, 190.0/145.0, d.PeakToMean, 1e-9)
	assert.InDelta(t, 190.0/104.5, d.PeakToTrough, 1e-9)
}

func TestDailyRatioOrdering(t *testing.T) {
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	binned := []models.BinnedReading{
		{Date: date, Hour: 0, DemandMW: 80},
		{Date: date, Hour: 1, DemandMW: 120},
		{Date: date, Hour: 2, DemandMW: 160},
		{Date: date, Hour: 3, DemandMW: 240},
	}

	daily := Daily(binned)
	require.Len(t, daily, 1)

	d := daily[0]
	// trough <= mean <= peak, so peak-to-trough >= peak-to-mean >= 1
	assert.GreaterOrEqual(t, d.PeakToTrough, d.PeakToMean)
	assert.GreaterOrEqual(t, d.PeakToMean, 1.0)
}

func TestDailyTroughSurvivesOutageReading(t *testing.T) {
	// One zero-demand outage reading among many normal ones must not blow
	// up peak-to-trough, because the trough is the 5th percentile.
	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	var binned []models.BinnedReading
	binned = append(binned, models.BinnedReading{Date: date, Hour: 0, DemandMW: 0})
	for i := 1; i < 48; i++ {
		binned = append(binned, models.BinnedReading{Date: date, Hour: i / 2, DemandMW: 100})
	}

	daily := Daily(binned)
	require.Len(t, daily, 1)
	assert.Greater(t, daily[0].TroughMW, 0.0)
	assert.Less(t, daily[0].PeakToTrough, 2.0)
}

func TestPercentile(t *testing.T) {
	vals := []float64{10, 20, 30, 40}

	assert.Equal(t, 10.0, Percentile(vals, 0))
	assert.Equal(t, 40.0, Percentile(vals, 100))
	assert.InDelta(t, 25.0, Percentile(vals, 50), 1e-9)
	// 5th percentile interpolates between the two lowest order statistics
	assert.InDelta(t, 11.5, Percentile(vals, 5), 1e-9)

	// Input order must not matter and the input must not be mutated
	shuffled := []float64{40, 10, 30, 20}
	assert.InDelta(t, 25.0, Percentile(shuffled, 50), 1e-9)
	assert.Equal(t, []float64{40, 10, 30, 20}, shuffled)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{5}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
}
