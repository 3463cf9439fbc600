package timebin

import (
	"testing"
	"time"

	"github.com/jgoulah/loadshape/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToHour(t *testing.T) {
	// Under the half hour rounds down
	ts := time.Date(2024, 7, 1, 10, 29, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), RoundToHour(ts))

	// Over the half hour rounds up
	ts = time.Date(2024, 7, 1, 10, 31, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC), RoundToHour(ts))

	// Exactly on the half hour rounds up
	ts = time.Date(2024, 7, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 7, 1, 11, 0, 0, 0, time.UTC), RoundToHour(ts))

	// Rounding can carry into the next day
	ts = time.Date(2024, 7, 1, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), RoundToHour(ts))
}

func TestBin(t *testing.T) {
	readings := []models.Reading{
		{Timestamp: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), DemandMW: 100},
		{Timestamp: time.Date(2024, 7, 1, 13, 29, 0, 0, time.UTC), DemandMW: 150},
		{Timestamp: time.Date(2024, 7, 1, 23, 45, 0, 0, time.UTC), DemandMW: 120},
	}

	binned, dropped := Bin(readings)
	require.Len(t, binned, 3)
	assert.Equal(t, 0, dropped)

	assert.Equal(t, 0, binned[0].Hour)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), binned[0].Date)

	assert.Equal(t, 13, binned[1].Hour)
	assert.Equal(t, 150.0, binned[1].DemandMW)

	// Rounds forward across midnight; date follows the rounded timestamp
	assert.Equal(t, 0, binned[2].Hour)
	assert.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), binned[2].Date)

	for _, b := range binned {
		assert.GreaterOrEqual(t, b.Hour, 0)
		assert.LessOrEqual(t, b.Hour, 23)
		assert.Equal(t, b.Date.Year(), b.Year)
		assert.Equal(t, int(b.Date.Month()), b.Month)
		assert.Equal(t, b.Date.Day(), b.Day)
	}
}

func TestBinDropsMissingTimestamps(t *testing.T) {
	readings := []models.Reading{
		{Timestamp: time.Time{}, DemandMW: 100},
		{Timestamp: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC), DemandMW: 150},
	}

	binned, dropped := Bin(readings)
	require.Len(t, binned, 1)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 150.0, binned[0].DemandMW)
}
