package join

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

func TestDailyInnerJoin(t *testing.T) {
	daily := []models.DailyRecord{
		{Date: day(2024, 7, 1), MeanMW: 200},
		{Date: day(2024, 7, 2), MeanMW: 210},
		{Date: day(2024, 7, 3), MeanMW: 220}, // no temperature partner
	}
	temps := []models.TemperatureRecord{
		{Date: day(2024, 7, 1), TempF: 75},
		{Date: day(2024, 7, 2), TempF: 80},
		{Date: day(2024, 7, 4), TempF: 85}, // no demand partner
	}

	joined, stats := Daily(daily, temps, time.Time{}, time.Time{})
	require.Len(t, joined, 2)

	assert.Equal(t, day(2024, 7, 1), joined[0].Date)
	assert.Equal(t, 200.0, joined[0].MeanMW)
	assert.Equal(t, 75.0, joined[0].TempF)

	assert.Equal(t, 2, stats.Joined)
	assert.Equal(t, 1, stats.DroppedDemand)
	assert.Equal(t, 1, stats.DroppedTemperatures)

	// Strictly intersective
	assert.LessOrEqual(t, len(joined), len(daily))
	assert.LessOrEqual(t, len(joined), len(temps))
}

func TestDailyJoinOrderIndependent(t *testing.T) {
	daily := []models.DailyRecord{
		{Date: day(2024, 7, 2), MeanMW: 210},
		{Date: day(2024, 7, 1), MeanMW: 200},
	}
	temps := []models.TemperatureRecord{
		{Date: day(2024, 7, 1), TempF: 75},
		{Date: day(2024, 7, 2), TempF: 80},
	}

	joined, _ := Daily(daily, temps, time.Time{}, time.Time{})

	reversedTemps := []models.TemperatureRecord{temps[1], temps[0]}
	joined2, _ := Daily(daily, reversedTemps, time.Time{}, time.Time{})

	assert.Equal(t, joined, joined2)
	// Sorted by date regardless of input order
	assert.Equal(t, day(2024, 7, 1), joined[0].Date)
}

func TestDailyJoinWindow(t *testing.T) {
	daily := []models.DailyRecord{
		{Date: day(2024, 6, 30), MeanMW: 190},
		{Date: day(2024, 7, 1), MeanMW: 200},
		{Date: day(2024, 7, 2), MeanMW: 210},
	}
	temps := []models.TemperatureRecord{
		{Date: day(2024, 6, 30), TempF: 70},
		{Date: day(2024, 7, 1), TempF: 75},
		{Date: day(2024, 7, 2), TempF: 80},
	}

	joined, stats := Daily(daily, temps, day(2024, 7, 1), day(2024, 7, 1))
	require.Len(t, joined, 1)
	assert.Equal(t, day(2024, 7, 1), joined[0].Date)
	assert.Equal(t, 2, stats.DroppedDemand)
	assert.Equal(t, 2, stats.DroppedTemperatures)
}

func TestDailyJoinEmpty(t *testing.T) {
	joined, stats := Daily(nil, nil, time.Time{}, time.Time{})
	assert.Empty(t, joined)
	assert.Equal(t, 0, stats.Joined)
}
