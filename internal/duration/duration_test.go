package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurve(t *testing.T) {
	points, err := Curve([]float64{10, 30, 20, 40})
	require.NoError(t, err)
	require.Len(t, points, 4)

	// Sorted descending; exceedance at the max is 1/N, at the min 1.0
	assert.Equal(t, 40.0, points[0].ValueMW)
	assert.InDelta(t, 0.25, points[0].Exceedance, 1e-9)
	assert.Equal(t, 10.0, points[3].ValueMW)
	assert.InDelta(t, 1.0, points[3].Exceedance, 1e-9)

	// Value non-increasing as exceedance increases
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i].ValueMW, points[i-1].ValueMW)
		assert.Greater(t, points[i].Exceedance, points[i-1].Exceedance)
	}
}

func TestCurveTiesShareOnePoint(t *testing.T) {
	points, err := Curve([]float64{10, 20, 20, 40})
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 40.0, points[0].ValueMW)
	assert.InDelta(t, 0.25, points[0].Exceedance, 1e-9)

	// Both 20s collapse into one point: 3 of 4 observations are >= 20
	assert.Equal(t, 20.0, points[1].ValueMW)
	assert.InDelta(t, 0.75, points[1].Exceedance, 1e-9)

	assert.Equal(t, 10.0, points[2].ValueMW)
	assert.InDelta(t, 1.0, points[2].Exceedance, 1e-9)
}

func TestCurveAllEqual(t *testing.T) {
	// Degenerate input: one flat point at exceedance 1.0, no division by zero
	points, err := Curve([]float64{10, 10, 10, 10})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 10.0, points[0].ValueMW)
	assert.Equal(t, 1.0, points[0].Exceedance)
}

func TestCurveSingleValue(t *testing.T) {
	points, err := Curve([]float64{42})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1.0, points[0].Exceedance)
}

func TestCurveEmpty(t *testing.T) {
	_, err := Curve(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestCurveDoesNotMutateInput(t *testing.T) {
	values := []float64{10, 30, 20}
	_, err := Curve(values)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30, 20}, values)
}
