package trainers

import "math"

// sampleSize calculates the statistically sufficient sample size for a
// dataset of size N at a significance level between 0 and 100, applying the
// finite population correction.
func sampleSize(N int, significance byte) int {
	if N <= 1 || significance >= 100 {
		return N
	}
	z := zScoreFromAlpha(100 - significance)

	// worst-case proportion p = 0.5 for max variability
	p := 0.5
	e := float64(100-significance) * 0.01

	ss := math.Pow(z, 2) * p * (1 - p) / math.Pow(e, 2)
	correctedSS := ss * float64(N) / (float64(N) - 1 + ss)

	if int(correctedSS) > N || int(correctedSS) < 1 {
		return N
	}
	return int(correctedSS)
}

// zScoreFromAlpha returns the Z-score for a given alpha level.
// Common: 90% => 1.645, 95% => 1.96, 99% => 2.576.
func zScoreFromAlpha(alpha byte) float64 {
	switch {
	case alpha <= 1:
		return 2.576
	case alpha <= 5:
		return 1.96
	case alpha <= 10:
		return 1.645
	default:
		return 1.96
	}
}
