package regress

import (
	"math"
	"sort"

	"github.com/jgoulah/loadshape/pkg/models"
)

// AutocorrelationLags is how many residual autocorrelation lags Diagnose
// reports.
const AutocorrelationLags = 5

// ResidualPoint pairs a fitted value with its residual for
// heteroscedasticity inspection.
type ResidualPoint struct {
	Fitted   float64 `json:"fitted"`
	Residual float64 `json:"residual"`
}

// Diagnostics holds the descriptive regression diagnostics. They are inputs
// for the caller to render or threshold, not automatic pass/fail gates.
type Diagnostics struct {
	// StandardizedResiduals is sorted ascending, ready for a
	// quantile-quantile comparison against a normal distribution.
	StandardizedResiduals []float64       `json:"standardized_residuals"`
	ResidualVsFitted      []ResidualPoint `json:"residual_vs_fitted"`
	// Autocorrelation[k-1] is the residual autocorrelation at lag k.
	Autocorrelation []float64 `json:"autocorrelation"`
	CooksDistance   []float64 `json:"cooks_distance"`
}

// Diagnose computes descriptive diagnostics for a fitted model: sorted
// standardized residuals, residual-vs-fitted pairs, residual autocorrelation
// up to lag 5, and Cook's distance per observation.
//
// Leverage is the simple-regression form h_i = 1/n + (x_i-x̄)²/Sxx, and
// Cook's distance D_i = e_i²·h_i / (p·s²·(1-h_i)²) with p = 2 parameters.
func Diagnose(m *models.FittedModel) Diagnostics {
	n := m.N
	d := Diagnostics{
		StandardizedResiduals: make([]float64, n),
		ResidualVsFitted:      make([]ResidualPoint, n),
		CooksDistance:         make([]float64, n),
	}

	var xSum float64
	for _, x := range m.Temps {
		xSum += x
	}
	xMean := xSum / float64(n)
	var sxx float64
	for _, x := range m.Temps {
		dx := x - xMean
		sxx += dx * dx
	}

	s2 := m.ResidualSE * m.ResidualSE
	const p = 2 // intercept + slope
	for i := 0; i < n; i++ {
		dx := m.Temps[i] - xMean
		leverage := 1/float64(n) + dx*dx/sxx
		e := m.Residuals[i]

		denom := m.ResidualSE * math.Sqrt(1-leverage)
		if denom > 0 {
			d.StandardizedResiduals[i] = e / denom
		}
		if s2 > 0 {
			adj := 1 - leverage
			d.CooksDistance[i] = e * e * leverage / (p * s2 * adj * adj)
		}
		d.ResidualVsFitted[i] = ResidualPoint{Fitted: m.Fitted[i], Residual: e}
	}
	sort.Float64s(d.StandardizedResiduals)

	d.Autocorrelation = autocorrelation(m.Residuals, AutocorrelationLags)
	return d
}

// autocorrelation returns the lag-1..maxLag sample autocorrelations of vals.
// Lags at or beyond the series length are reported as 0.
func autocorrelation(vals []float64, maxLag int) []float64 {
	n := len(vals)
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(n)

	var denom float64
	for _, v := range vals {
		d := v - mean
		denom += d * d
	}

	out := make([]float64, maxLag)
	if denom == 0 {
		return out
	}
	for lag := 1; lag <= maxLag; lag++ {
		if lag >= n {
			break
		}
		var num float64
		for i := lag; i < n; i++ {
			num += (vals[i] - mean) * (vals[i-lag] - mean)
		}
		out[lag-1] = num / denom
	}
	return out
}
