// Package enrich compares the structural-domain composition of two protein
// groups. For every hierarchical feature it builds a 2x2 contingency table,
// runs Fisher's exact test, estimates a Woolf confidence interval and
// adjusts p-values for the false discovery rate.
package enrich

import (
	"log/slog"
	"math"

	"github.com/cathapult/cathapult/pkg/domain"
)

// DefaultAlpha is the significance threshold used when none is given.
const DefaultAlpha = 0.05

// Group is one side of the comparison.
type Group struct {
	// Rows are the collapsed features of the group.
	Rows []domain.FeatureRow

	// Total is the raw number of records of the group's input table,
	// including records that produced no features.
	Total int

	// Skipped counts records dropped during decomposition.
	Skipped domain.Skipped
}

// NewGroup decomposes and collapses records. The group total is the number
// of all given records.
func NewGroup(recs []domain.Record) Group {
	dec, skipped := domain.DecomposeAll(recs)
	return Group{
		Rows:    domain.Collapse(dec),
		Total:   len(recs),
		Skipped: skipped,
	}
}

// Result is the comparison of one feature between two groups.
type Result struct {
	domain.Feature

	// Grp1Count and Grp2Count are occurrences of the feature.
	Grp1Count, Grp2Count int

	// Grp1Rest and Grp2Rest are group totals minus the counts.
	Grp1Rest, Grp2Rest int

	// Grp1Proportion and Grp2Proportion are count/rest, the odds of the
	// feature within a group.
	Grp1Proportion, Grp2Proportion float64

	OddsRatio   float64
	Log2OR      float64
	PValue      float64
	CILower     float64
	CIUpper     float64
	PAdj        float64
	Significant bool
	Name        string
}

// Table returns the contingency table of the result.
func (r Result) Table() Table2x2 {
	return Table2x2{A: r.Grp1Count, B: r.Grp1Rest, C: r.Grp2Count, D: r.Grp2Rest}
}

// Engine runs odds-ratio comparisons.
type Engine struct {
	alpha  float64
	unique bool
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// OptAlpha sets the significance threshold of the FDR correction. Values
// outside (0, 1) are ignored.
func OptAlpha(a float64) Option {
	return func(e *Engine) {
		if a > 0 && a < 1 {
			e.alpha = a
		}
	}
}

// OptUnique makes every feature count at most once per protein.
func OptUnique(b bool) Option {
	return func(e *Engine) {
		e.unique = b
	}
}

// OptLogger sets the logger for diagnostic messages.
func OptLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	res := &Engine{
		alpha:  DefaultAlpha,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Alpha returns the significance threshold.
func (e *Engine) Alpha() float64 {
	return e.alpha
}

// OddsRatio compares every feature observed in either group. Results are
// ordered by feature code and level, and carry BH-adjusted p-values. Two
// empty groups give an empty result.
func (e *Engine) OddsRatio(g1, g2 Group) []Result {
	rows1, rows2 := g1.Rows, g2.Rows
	if e.unique {
		rows1 = domain.DedupByProtein(rows1)
		rows2 = domain.DedupByProtein(rows2)
	}
	counts1 := domain.CountFeatures(rows1)
	counts2 := domain.CountFeatures(rows2)
	features := domain.SortedFeatures(counts1, counts2)

	e.logger.Info("computing odds ratios",
		"features", len(features),
		"group1_total", g1.Total,
		"group2_total", g2.Total,
		"unique", e.unique,
	)

	res := make([]Result, 0, len(features))
	for _, f := range features {
		a, c := counts1[f], counts2[f]
		res = append(res, compare(f, Table2x2{
			A: a, B: g1.Total - a,
			C: c, D: g2.Total - c,
		}))
	}

	e.adjust(res)
	return res
}

func compare(f domain.Feature, t Table2x2) Result {
	or, p := FisherExact(t)
	lower, upper, _ := WoolfCI(t, or)
	return Result{
		Feature:        f,
		Grp1Count:      t.A,
		Grp1Rest:       t.B,
		Grp2Count:      t.C,
		Grp2Rest:       t.D,
		Grp1Proportion: float64(t.A) / float64(t.B),
		Grp2Proportion: float64(t.C) / float64(t.D),
		OddsRatio:      or,
		Log2OR:         math.Log2(or),
		PValue:         p,
		CILower:        lower,
		CIUpper:        upper,
	}
}

func (e *Engine) adjust(res []Result) {
	if len(res) == 0 {
		return
	}
	pvals := make([]float64, len(res))
	for i := range res {
		pvals[i] = res[i].PValue
	}
	adj, reject := BenjaminiHochberg(pvals, e.alpha)
	var sig int
	for i := range res {
		res[i].PAdj = adj[i]
		res[i].Significant = reject[i]
		if reject[i] {
			sig++
		}
	}
	e.logger.Info("adjusted p-values", "tested", len(res), "significant", sig)
}
