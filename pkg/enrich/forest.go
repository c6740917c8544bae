package enrich

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// ForestRow is one feature of a forest plot.
type ForestRow struct {
	Label       string
	Log2OR      float64
	Lower       float64
	Upper       float64
	Significant bool
}

// ForestRows prepares results for a forest plot. Rows without a finite
// log2 odds ratio or confidence bounds are dropped, the rest are sorted by
// ascending log2 odds ratio. A row is significant when its raw p-value is
// below alpha.
func ForestRows(res []Result, alpha float64) []ForestRow {
	var rows []ForestRow
	for _, v := range res {
		if !finite(v.Log2OR) || !finite(v.CILower) || !finite(v.CIUpper) {
			continue
		}
		rows = append(rows, ForestRow{
			Label:       strings.TrimSpace(v.Code + " " + v.Name),
			Log2OR:      v.Log2OR,
			Lower:       v.CILower,
			Upper:       v.CIUpper,
			Significant: v.PValue < alpha,
		})
	}
	slices.SortStableFunc(rows, func(a, b ForestRow) int {
		return cmp.Compare(a.Log2OR, b.Log2OR)
	})
	return rows
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
