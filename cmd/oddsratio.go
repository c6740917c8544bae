/*
Copyright © 2025 The Cathapult Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/cathapult/cathapult/internal/iofs"
	"github.com/cathapult/cathapult/internal/ioplot"
	"github.com/cathapult/cathapult/internal/ioref"
	"github.com/cathapult/cathapult/internal/iotable"
	"github.com/cathapult/cathapult/internal/ioxlsx"
	"github.com/cathapult/cathapult/pkg/enrich"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// oddsRatioOutputs are the files written by the oddsratio command.
type oddsRatioOutputs struct {
	table, plot, xlsx string
}

// groupSplit selects two groups from one table.
type groupSplit struct {
	column, value1, value2 string
}

// getOddsRatioCmd returns the oddsratio command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getOddsRatioCmd() *cobra.Command {
	var (
		out   oddsRatioOutputs
		split groupSplit
	)

	oddsRatioCmd := &cobra.Command{
		Use:   "oddsratio <group1.tsv> [group2.tsv]",
		Short: "Compare CATH features of two protein groups",
		Long: `Compare the CATH domain composition of two protein groups.

Every CATH code is tested at four levels of the hierarchy. For each
feature a 2x2 table of its occurrences against the rest of the group is
tested with Fisher's exact test. The output has odds ratios, log2 Woolf
95% confidence intervals and Benjamini-Hochberg adjusted p-values.

Groups come from two files, or from one file split by the values of a
column (--group-column with --group1 and --group2).

Examples:
  cathapult oddsratio case.tsv control.tsv -o result.tsv -p forest.png
  cathapult oddsratio all.tsv -c cohort --group1 case --group2 control -u
  cathapult oddsratio case.tsv control.tsv -a 0.01 -x result.xlsx`,
		Aliases: []string{"or"},
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOddsRatio(cmd, args, out, split)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	oddsRatioCmd.Flags().StringVarP(&out.table, "output", "o", "oddsratio.tsv",
		"output table")
	oddsRatioCmd.Flags().StringVarP(&out.plot, "plot", "p", "",
		"forest plot image, format from extension (png, svg, pdf)")
	oddsRatioCmd.Flags().StringVarP(&out.xlsx, "xlsx", "x", "",
		"also save results to an Excel workbook")
	oddsRatioCmd.Flags().Float64P("alpha", "a", enrich.DefaultAlpha,
		"significance threshold")
	oddsRatioCmd.Flags().BoolP("unique", "u", false,
		"count each feature once per protein")
	oddsRatioCmd.Flags().StringVarP(&split.column, "group-column", "c", "",
		"column that splits a single input into groups")
	oddsRatioCmd.Flags().StringVar(&split.value1, "group1", "",
		"value of --group-column for group 1")
	oddsRatioCmd.Flags().StringVar(&split.value2, "group2", "",
		"value of --group-column for group 2")
	addRefFlags(oddsRatioCmd)

	return oddsRatioCmd
}

func runOddsRatio(
	cmd *cobra.Command,
	args []string,
	out oddsRatioOutputs,
	split groupSplit,
) error {
	start := time.Now()
	applyFlags(cmd, alphaFlag, uniqueFlag)

	g1Tbl, g2Tbl, err := readGroups(args, split)
	if err != nil {
		return err
	}

	groups := make([]enrich.Group, 2)
	for i, tbl := range []*iotable.Table{g1Tbl, g2Tbl} {
		recs, err := tbl.Records()
		if err != nil {
			return err
		}
		groups[i] = enrich.NewGroup(recs)
		reportSkipped(tbl.Path, groups[i].Skipped)
	}
	g1, g2 := groups[0], groups[1]

	engine := enrich.New(
		enrich.OptAlpha(cfg.Enrichment.Alpha),
		enrich.OptUnique(cfg.Enrichment.Unique),
		enrich.OptLogger(slog.Default()),
	)
	res := engine.OddsRatio(g1, g2)

	names, sf, required := refPaths(cmd)
	ann, err := ioref.Load(names, sf, required)
	if err != nil {
		return err
	}
	res = ann.Results(res)

	if _, err = iofs.EnsureParentDir(out.table); err != nil {
		return err
	}
	if err = iotable.WriteResults(out.table, res); err != nil {
		return err
	}

	sum := engine.Summarize(res, g1, g2, g1Tbl.Path, g2Tbl.Path)
	reportSummary(sum)
	gn.Info("Odds ratios saved to: <em>%s</em>", out.table)

	if out.plot != "" {
		if err = savePlot(out.plot, res, engine.Alpha()); err != nil {
			return err
		}
	}

	if out.xlsx != "" {
		if _, err = iofs.EnsureParentDir(out.xlsx); err != nil {
			return err
		}
		inputs := []string{g1Tbl.Path, g2Tbl.Path}
		if err = ioxlsx.Write(out.xlsx, res, sum, inputs); err != nil {
			return err
		}
		gn.Info("Workbook saved to: <em>%s</em>", out.xlsx)
	}

	gn.Info("Done in %s", gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}

// readGroups loads the two groups from two files or from one split file.
func readGroups(args []string, split groupSplit) (*iotable.Table, *iotable.Table, error) {
	if len(args) == 2 {
		if split.column != "" {
			gn.Warn("Two input files are given, --group-column is ignored")
		}
		g1, err := iotable.Read(args[0])
		if err != nil {
			return nil, nil, err
		}
		g2, err := iotable.Read(args[1])
		if err != nil {
			return nil, nil, err
		}
		return g1, g2, nil
	}

	if split.column == "" || split.value1 == "" || split.value2 == "" {
		err := errors.New("a single input needs --group-column, --group1 and --group2")
		slog.Error("Cannot read groups", "error", err)
		return nil, nil, iotable.GroupSplitError(args[0], split.column, err)
	}
	tbl, err := iotable.Read(args[0])
	if err != nil {
		return nil, nil, err
	}
	return tbl.Split(split.column, split.value1, split.value2)
}

func savePlot(path string, res []enrich.Result, alpha float64) error {
	rows := enrich.ForestRows(res, alpha)
	if len(rows) == 0 {
		gn.Info("No features with a finite odds ratio, nothing to plot")
		slog.Info("Nothing to plot", "features", len(res))
		return nil
	}
	if _, err := iofs.EnsureParentDir(path); err != nil {
		return err
	}
	if err := ioplot.Save(path, rows); err != nil {
		return err
	}
	gn.Info("Forest plot of %d features saved to: <em>%s</em>", len(rows), path)
	return nil
}

func reportSummary(s enrich.Summary) {
	slog.Info("Odds ratio run",
		"run_id", s.RunID,
		"group1_total", s.Group1Total,
		"group2_total", s.Group2Total,
		"tested", s.Tested,
		"significant_raw", s.SignificantRaw,
		"significant_adj", s.SignificantAdj,
	)
	gn.Info("Group sizes: <em>%d</em> and <em>%d</em> domains",
		s.Group1Total, s.Group2Total)
	gn.Info("Tested %d features: %d with p < %g, %d after FDR correction",
		s.Tested, s.SignificantRaw, s.Alpha, s.SignificantAdj)
	if !math.IsNaN(s.MedianLog2OR) {
		gn.Info("Median log2 odds ratio: %.3f", s.MedianLog2OR)
	}
}
