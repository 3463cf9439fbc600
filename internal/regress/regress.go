// Package regress fits and validates the piecewise linear temperature/demand
// model: one ordinary-least-squares line per heating or cooling regime.
package regress

import (
	"errors"
	"math"

	"github.com/jgoulah/loadshape/pkg/models"
)

// ErrInsufficientData is returned when a regression is attempted with fewer
// than two distinct temperature values. The system is then underdetermined
// (or has zero residual degrees of freedom) and no model is produced; a
// caller must report the regime as skipped rather than fall back to a
// zero-slope fit.
var ErrInsufficientData = errors.New("regress: need at least 2 distinct temperature values")

// Fit computes the closed-form OLS fit of mean demand on temperature over
// one regime's observations.
func Fit(regime models.Regime, obs []models.JoinedObservation) (*models.FittedModel, error) {
	temps := make([]float64, len(obs))
	demands := make([]float64, len(obs))
	for i, o := range obs {
		temps[i] = o.TempF
		demands[i] = o.MeanMW
	}
	return fitXY(regime, temps, demands)
}

func fitXY(regime models.Regime, temps, demands []float64) (*models.FittedModel, error) {
	n := len(temps)
	if distinctCount(temps) < 2 {
		return nil, ErrInsufficientData
	}

	var xSum, ySum float64
	for i := 0; i < n; i++ {
		xSum += temps[i]
		ySum += demands[i]
	}
	xMean := xSum / float64(n)
	yMean := ySum / float64(n)

	// Centered sums are better conditioned than the raw normal equations
	// when temperatures sit far from zero.
	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := temps[i] - xMean
		sxx += dx * dx
		sxy += dx * (demands[i] - yMean)
	}

	slope := sxy / sxx
	intercept := yMean - slope*xMean

	m := &models.FittedModel{
		Regime:    regime,
		N:         n,
		Intercept: intercept,
		Slope:     slope,
		TempMinF:  math.Inf(1),
		TempMaxF:  math.Inf(-1),
		Temps:     temps,
		Demands:   demands,
		Fitted:    make([]float64, n),
		Residuals: make([]float64, n),
	}

	var rss, tss float64
	for i := 0; i < n; i++ {
		m.Fitted[i] = intercept + slope*temps[i]
		m.Residuals[i] = demands[i] - m.Fitted[i]
		rss += m.Residuals[i] * m.Residuals[i]
		dy := demands[i] - yMean
		tss += dy * dy
		if temps[i] < m.TempMinF {
			m.TempMinF = temps[i]
		}
		if temps[i] > m.TempMaxF {
			m.TempMaxF = temps[i]
		}
	}
	if tss > 0 {
		m.R2 = 1 - rss/tss
	}
	if n > 2 {
		m.ResidualSE = math.Sqrt(rss / float64(n-2))
	}
	return m, nil
}

// Predict evaluates the fitted line at each supplied temperature. There is
// no extrapolation guard; the caller owns interpreting predictions outside
// [TempMinF, TempMaxF].
func Predict(m *models.FittedModel, tempsF []float64) []float64 {
	out := make([]float64, len(tempsF))
	for i, t := range tempsF {
		out[i] = m.Intercept + m.Slope*t
	}
	return out
}

func distinctCount(vals []float64) int {
	seen := make(map[float64]bool, len(vals))
	for _, v := range vals {
		seen[v] = true
	}
	return len(seen)
}
