package enrich_test

import (
	"math"
	"sort"
	"testing"

	"github.com/cathapult/cathapult/pkg/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenjaminiHochberg(t *testing.T) {
	pvals := []float64{0.01, 0.04, 0.03, 0.2, 0.5}
	adj, reject := enrich.BenjaminiHochberg(pvals, 0.05)

	want := []float64{0.05, 0.2 / 3, 0.2 / 3, 0.25, 0.5}
	require.Len(t, adj, len(want))
	for i := range want {
		assert.InDelta(t, want[i], adj[i], 1e-12, "index %d", i)
	}
	assert.Equal(t, []bool{true, false, false, false, false}, reject)
}

func TestBenjaminiHochbergProperties(t *testing.T) {
	pvals := []float64{0.9, 0.001, 0.3, 0.049, 1, 0.0001, 0.2, 0.2, 0.75, 0.02}
	adj, _ := enrich.BenjaminiHochberg(pvals, 0.05)

	idx := make([]int, len(pvals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return pvals[idx[i]] < pvals[idx[j]]
	})

	prev := 0.0
	for _, i := range idx {
		assert.GreaterOrEqual(t, adj[i], pvals[i])
		assert.GreaterOrEqual(t, adj[i], prev)
		assert.LessOrEqual(t, adj[i], 1.0)
		prev = adj[i]
	}
}

func TestBenjaminiHochbergNaN(t *testing.T) {
	pvals := []float64{0.01, math.NaN(), 0.04}
	adj, reject := enrich.BenjaminiHochberg(pvals, 0.05)
	assert.InDelta(t, 0.02, adj[0], 1e-12)
	assert.True(t, math.IsNaN(adj[1]))
	assert.False(t, reject[1])
	assert.InDelta(t, 0.04, adj[2], 1e-12)
	assert.Equal(t, []bool{true, false, true}, reject)
}

func TestBenjaminiHochbergEmpty(t *testing.T) {
	adj, reject := enrich.BenjaminiHochberg(nil, 0.05)
	assert.Empty(t, adj)
	assert.Empty(t, reject)
}
