package enrich

import (
	"math"
	"strconv"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/montanaflynn/stats"
)

// Summary describes one odds-ratio run.
type Summary struct {
	// RunID is a name-based UUID of the inputs and settings of the run.
	RunID string

	Alpha  float64
	Unique bool

	Group1Total int
	Group2Total int

	// Tested is the number of compared features.
	Tested int

	// SignificantRaw counts features with p-value below alpha.
	SignificantRaw int

	// SignificantAdj counts features rejected after the FDR correction.
	SignificantAdj int

	// MedianLog2OR and IQRLog2OR describe finite log2 odds ratios. They are
	// NaN when there are none.
	MedianLog2OR float64
	IQRLog2OR    float64
}

// RunID returns a stable identifier for a run over the given inputs.
func RunID(alpha float64, unique bool, inputs ...string) string {
	parts := append([]string{}, inputs...)
	parts = append(parts,
		strconv.FormatFloat(alpha, 'g', -1, 64),
		strconv.FormatBool(unique),
	)
	return gnuuid.New(strings.Join(parts, "|")).String()
}

// Summarize collects run statistics from results.
func (e *Engine) Summarize(res []Result, g1, g2 Group, inputs ...string) Summary {
	s := Summary{
		RunID:        RunID(e.alpha, e.unique, inputs...),
		Alpha:        e.alpha,
		Unique:       e.unique,
		Group1Total:  g1.Total,
		Group2Total:  g2.Total,
		Tested:       len(res),
		MedianLog2OR: math.NaN(),
		IQRLog2OR:    math.NaN(),
	}

	var finite stats.Float64Data
	for _, v := range res {
		if v.PValue < e.alpha {
			s.SignificantRaw++
		}
		if v.Significant {
			s.SignificantAdj++
		}
		if !math.IsNaN(v.Log2OR) && !math.IsInf(v.Log2OR, 0) {
			finite = append(finite, v.Log2OR)
		}
	}

	if len(finite) > 0 {
		s.MedianLog2OR, _ = stats.Median(finite)
	}
	if len(finite) > 1 {
		s.IQRLog2OR, _ = stats.InterQuartileRange(finite)
	}
	return s
}
