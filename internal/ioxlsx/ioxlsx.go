// Package ioxlsx exports odds-ratio results to an Excel workbook.
package ioxlsx

import (
	"math"
	"strings"

	"github.com/cathapult/cathapult/internal/iotable"
	"github.com/cathapult/cathapult/pkg/enrich"
	"github.com/xuri/excelize/v2"
)

const (
	// ResultSheet holds one row per compared feature.
	ResultSheet = "enrichment"
	// RunSheet holds the settings and statistics of the run.
	RunSheet = "run"
)

// Write saves results and the run summary to an .xlsx file.
func Write(
	path string,
	res []enrich.Result,
	sum enrich.Summary,
	inputs []string,
) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultSheet); err != nil {
		return WriteError(path, err)
	}
	if err := writeResults(f, res); err != nil {
		return WriteError(path, err)
	}

	if _, err := f.NewSheet(RunSheet); err != nil {
		return WriteError(path, err)
	}
	if err := writeRun(f, sum, inputs); err != nil {
		return WriteError(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func writeResults(f *excelize.File, res []enrich.Result) error {
	header := make([]any, len(iotable.ResultColumns))
	for i, v := range iotable.ResultColumns {
		header[i] = v
	}
	if err := f.SetSheetRow(ResultSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range res {
		row := []any{
			r.Code,
			r.Grp1Count,
			r.Grp1Rest,
			r.Grp2Count,
			r.Grp2Rest,
			number(r.Grp1Proportion),
			number(r.Grp2Proportion),
			number(r.OddsRatio),
			number(r.Log2OR),
			number(r.PValue),
			number(r.CILower),
			number(r.CIUpper),
			r.Name,
			number(r.PAdj),
			int(r.Level),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(ResultSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetPanes(ResultSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRun(f *excelize.File, sum enrich.Summary, inputs []string) error {
	rows := [][]any{
		{"run_id", sum.RunID},
		{"inputs", strings.Join(inputs, ", ")},
		{"alpha", sum.Alpha},
		{"unique", sum.Unique},
		{"group1_total", sum.Group1Total},
		{"group2_total", sum.Group2Total},
		{"tested", sum.Tested},
		{"significant_raw", sum.SignificantRaw},
		{"significant_adj", sum.SignificantAdj},
		{"median_log2_or", number(sum.MedianLog2OR)},
		{"iqr_log2_or", number(sum.IQRLog2OR)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(RunSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// number keeps finite values numeric. Excel has no NaN or infinity, so
// those are written the same way as in TSV output.
func number(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return iotable.FormatFloat(f)
	}
	return f
}
