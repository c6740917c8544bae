package enrich

import "math"

// Z95 is the standard normal quantile for a two-sided 95% interval.
const Z95 = 1.96

// WoolfCI returns the log2-scale confidence bounds of the odds ratio using
// Woolf's approximation, with the standard error of ln(OR) equal to
// sqrt(1/A + 1/B + 1/C + 1/D). Bounds are undefined (NaN, ok is false)
// when any cell is zero or the odds ratio is not a positive finite number.
func WoolfCI(t Table2x2, oddsRatio float64) (lower, upper float64, ok bool) {
	nan := math.NaN()
	if t.HasZero() ||
		math.IsNaN(oddsRatio) || math.IsInf(oddsRatio, 0) || oddsRatio <= 0 {
		return nan, nan, false
	}

	se := math.Sqrt(1/float64(t.A) + 1/float64(t.B) +
		1/float64(t.C) + 1/float64(t.D))
	logOR := math.Log(oddsRatio)
	lower = math.Log2(math.Exp(logOR - Z95*se))
	upper = math.Log2(math.Exp(logOR + Z95*se))
	return lower, upper, true
}
