package regress

import "github.com/jgoulah/loadshape/pkg/models"

// Split partitions joined observations into heating (temp < threshold) and
// cooling (temp > threshold) regimes under strict inequality. Observations
// exactly at the threshold belong to neither side and are counted in
// atBoundary. The exclusion is a documented boundary policy, kept explicit
// rather than folded silently into one regime.
func Split(obs []models.JoinedObservation, thresholdF float64) (heating, cooling []models.JoinedObservation, atBoundary int) {
	for _, o := range obs {
		switch {
		case o.TempF < thresholdF:
			heating = append(heating, o)
		case o.TempF > thresholdF:
			cooling = append(cooling, o)
		default:
			atBoundary++
		}
	}
	return heating, cooling, atBoundary
}
