package domain

import (
	"cmp"
	"slices"
)

// countOrder is the order in which levels appear in a domain count table.
var countOrder = [4]Level{FullCode, FirstLevel, TwoLevels, ThreeLevels}

// DomainCount is one row of a domain count table.
type DomainCount struct {
	Code         string
	Count        int
	Level        Level
	Deduplicated bool
	Name         string
}

// CountDomains counts codes of every level twice: once over all records
// and once with repeated (protein, code) pairs removed. Records without a
// protein are ignored. Within a block rows go by descending count, ties by
// code.
func CountDomains(dec []Decomposed) []DomainCount {
	var res []DomainCount
	for _, l := range countOrder {
		for _, dedup := range []bool{false, true} {
			res = append(res, countLevel(dec, l, dedup)...)
		}
	}
	return res
}

func countLevel(dec []Decomposed, l Level, dedup bool) []DomainCount {
	type pair struct{ protein, code string }
	seen := make(map[pair]struct{})
	counts := make(map[string]int)
	for _, d := range dec {
		if d.Protein == "" {
			continue
		}
		code := d.Codes[l]
		if dedup {
			p := pair{d.Protein, code}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
		}
		counts[code]++
	}

	res := make([]DomainCount, 0, len(counts))
	for k, v := range counts {
		res = append(res, DomainCount{
			Code:         k,
			Count:        v,
			Level:        l,
			Deduplicated: dedup,
		})
	}
	slices.SortFunc(res, func(a, b DomainCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return res
}
