package regress

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jgoulah/loadshape/pkg/models"
)

// CrossValidateLOO refits the model once per observation, omitting exactly
// one each time, and returns the N held-out prediction errors
// (observed - predicted). Each fold fits on its own copy of the data, so
// folds share no mutable state and their order doesn't matter.
func CrossValidateLOO(m *models.FittedModel) ([]float64, error) {
	n := m.N
	errs := make([]float64, n)
	for i := 0; i < n; i++ {
		temps := make([]float64, 0, n-1)
		demands := make([]float64, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			temps = append(temps, m.Temps[j])
			demands = append(demands, m.Demands[j])
		}
		fold, err := fitXY(m.Regime, temps, demands)
		if err != nil {
			return nil, fmt.Errorf("fold omitting observation %d: %w", i, err)
		}
		predicted := fold.Intercept + fold.Slope*m.Temps[i]
		errs[i] = m.Demands[i] - predicted
	}
	return errs, nil
}

// HoldoutSize is the number of observations a random-drop trial holds out:
// round(n * fraction), clamped to [1, n-2] so every trial both drops
// something and leaves enough to fit. Deterministic for a given n.
func HoldoutSize(n int, fraction float64) int {
	k := int(math.Round(fraction * float64(n)))
	if k < 1 {
		k = 1
	}
	if k > n-2 {
		k = n - 2
	}
	return k
}

// CrossValidateRandomDrop runs the given number of trials, each holding out
// an independently drawn random subset of the model's observations, fitting
// on the remainder, and predicting the held-out points. All held-out
// prediction errors across trials are returned. Trials whose reduced fit is
// degenerate (all remaining temperatures equal) are skipped.
func CrossValidateRandomDrop(m *models.FittedModel, fraction float64, trials int, rng *rand.Rand) ([]float64, error) {
	n := m.N
	if n < 3 {
		return nil, ErrInsufficientData
	}
	if fraction <= 0 || fraction >= 1 {
		return nil, fmt.Errorf("regress: drop fraction %v outside (0, 1)", fraction)
	}
	k := HoldoutSize(n, fraction)

	var errs []float64
	for t := 0; t < trials; t++ {
		held := rng.Perm(n)[:k]
		isHeld := make(map[int]bool, k)
		for _, idx := range held {
			isHeld[idx] = true
		}

		temps := make([]float64, 0, n-k)
		demands := make([]float64, 0, n-k)
		for j := 0; j < n; j++ {
			if isHeld[j] {
				continue
			}
			temps = append(temps, m.Temps[j])
			demands = append(demands, m.Demands[j])
		}
		fold, err := fitXY(m.Regime, temps, demands)
		if err != nil {
			continue
		}
		for _, j := range held {
			predicted := fold.Intercept + fold.Slope*m.Temps[j]
			errs = append(errs, m.Demands[j]-predicted)
		}
	}
	return errs, nil
}
