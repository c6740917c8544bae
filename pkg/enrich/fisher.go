package enrich

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// relTol is the relative tolerance for deciding that a table is as
// extreme as the observed one.
const relTol = 1 + 1e-7

// Table2x2 is a contingency table of one feature in two groups.
//
//	          feature   no feature
//	group 1      A          B
//	group 2      C          D
type Table2x2 struct {
	A, B, C, D int
}

// HasZero reports whether any cell is zero.
func (t Table2x2) HasZero() bool {
	return t.A == 0 || t.B == 0 || t.C == 0 || t.D == 0
}

// degenerate reports whether a row or a column sums to zero.
func (t Table2x2) degenerate() bool {
	return t.A+t.B == 0 || t.C+t.D == 0 || t.A+t.C == 0 || t.B+t.D == 0
}

// OddsRatio returns the sample odds ratio A*D/(B*C). It is NaN for a
// degenerate table and +Inf when B*C is zero otherwise.
func (t Table2x2) OddsRatio() float64 {
	if t.degenerate() {
		return math.NaN()
	}
	if t.B == 0 || t.C == 0 {
		return math.Inf(1)
	}
	return float64(t.A) * float64(t.D) / (float64(t.B) * float64(t.C))
}

// FisherExact returns the sample odds ratio and the two-sided p-value of
// Fisher's exact test. The p-value sums the hypergeometric probabilities
// of all tables with the observed margins that are no more likely than the
// observed one. A degenerate table has p-value 1.
func FisherExact(t Table2x2) (oddsRatio, pValue float64) {
	oddsRatio = t.OddsRatio()
	if t.degenerate() {
		return oddsRatio, 1
	}

	r1, r2 := t.A+t.B, t.C+t.D
	c1 := t.A + t.C
	n := r1 + r2

	lo := max(0, c1-r2)
	hi := min(r1, c1)
	logDenom := logBinom(n, c1)
	logPMF := func(x int) float64 {
		return logBinom(r1, x) + logBinom(r2, c1-x) - logDenom
	}

	pObs := math.Exp(logPMF(t.A))
	for x := lo; x <= hi; x++ {
		p := math.Exp(logPMF(x))
		if p <= pObs*relTol {
			pValue += p
		}
	}
	return oddsRatio, min(pValue, 1)
}

func logBinom(n, k int) float64 {
	return combin.LogGeneralizedBinomial(float64(n), float64(k))
}
