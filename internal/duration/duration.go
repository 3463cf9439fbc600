// Package duration builds load duration curves: a series sorted descending
// against the fraction of time each value is equaled or exceeded.
package duration

import (
	"errors"
	"sort"
)

// ErrEmptySeries is returned when a duration curve is requested for an
// empty series.
var ErrEmptySeries = errors.New("duration: empty series")

// Point is one point of a duration curve.
type Point struct {
	ValueMW    float64 `json:"value_mw"`
	Exceedance float64 `json:"exceedance"` // Fraction of the series >= ValueMW
}

// Curve sorts the series descending and computes the empirical exceedance
// probability of each distinct value: the fraction of observations greater
// than or equal to it. Tied observations collapse into a single point, so
// all members of a tie share one exceedance fraction and the curve has no
// discontinuities. An all-equal series yields one point at exceedance 1.0.
func Curve(values []float64) ([]Point, error) {
	n := len(values)
	if n == 0 {
		return nil, ErrEmptySeries
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var points []Point
	for i := 0; i < n; {
		j := i
		for j < n && sorted[j] == sorted[i] {
			j++
		}
		// j is now the count of observations >= sorted[i].
		points = append(points, Point{
			ValueMW:    sorted[i],
			Exceedance: float64(j) / float64(n),
		})
		i = j
	}
	return points, nil
}
