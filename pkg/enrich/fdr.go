package enrich

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BenjaminiHochberg adjusts p-values for the false discovery rate with the
// Benjamini-Hochberg step-up procedure. All values are adjusted together
// and returned in input order, clipped to [0, 1]. A value is rejected when
// its adjusted p-value does not exceed alpha. NaN inputs are left out of
// the procedure and stay NaN and not rejected.
func BenjaminiHochberg(pvals []float64, alpha float64) (adj []float64, reject []bool) {
	adj = make([]float64, len(pvals))
	reject = make([]bool, len(pvals))

	var sorted []float64
	var pos []int
	for i, v := range pvals {
		if math.IsNaN(v) {
			adj[i] = math.NaN()
			continue
		}
		sorted = append(sorted, v)
		pos = append(pos, i)
	}
	m := len(sorted)
	if m == 0 {
		return adj, reject
	}

	inds := make([]int, m)
	floats.ArgsortStable(sorted, inds)

	prev := 1.0
	for rank := m - 1; rank >= 0; rank-- {
		v := sorted[rank] * float64(m) / float64(rank+1)
		prev = min(prev, v)
		i := pos[inds[rank]]
		adj[i] = max(prev, 0)
		reject[i] = adj[i] <= alpha
	}
	return adj, reject
}
