package domain

import (
	"cmp"
	"slices"
)

// Feature is a classification code at a given hierarchy level. The level
// is part of the key, so "3.40.50" as a topology and a hypothetical full
// code of the same text stay distinct.
type Feature struct {
	Code  string
	Level Level
}

// Compare orders features by code and then by level.
func (f Feature) Compare(other Feature) int {
	if c := cmp.Compare(f.Code, other.Code); c != 0 {
		return c
	}
	return cmp.Compare(f.Level, other.Level)
}

// FeatureRow ties a feature to the protein it was observed in.
type FeatureRow struct {
	Feature
	Protein string
}

// Collapse expands every decomposed record into one row per hierarchy
// level, so the result has exactly 4*len(dec) rows.
func Collapse(dec []Decomposed) []FeatureRow {
	res := make([]FeatureRow, 0, 4*len(dec))
	for _, d := range dec {
		for _, l := range Levels {
			res = append(res, FeatureRow{
				Feature: Feature{Code: d.Codes[l], Level: l},
				Protein: d.Protein,
			})
		}
	}
	return res
}

// DedupByProtein keeps the first occurrence of every
// (code, level, protein) triple.
func DedupByProtein(rows []FeatureRow) []FeatureRow {
	seen := make(map[FeatureRow]struct{}, len(rows))
	res := make([]FeatureRow, 0, len(rows))
	for _, v := range rows {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}

// CountFeatures returns how many rows carry each feature.
func CountFeatures(rows []FeatureRow) map[Feature]int {
	res := make(map[Feature]int)
	for _, v := range rows {
		res[v.Feature]++
	}
	return res
}

// SortedFeatures returns the union of keys of the given counts, ordered
// by code and level.
func SortedFeatures(counts ...map[Feature]int) []Feature {
	set := make(map[Feature]struct{})
	for _, c := range counts {
		for k := range c {
			set[k] = struct{}{}
		}
	}
	res := make([]Feature, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	slices.SortFunc(res, Feature.Compare)
	return res
}
