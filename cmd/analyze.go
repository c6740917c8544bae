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
	"log/slog"

	"github.com/cathapult/cathapult/internal/iofs"
	"github.com/cathapult/cathapult/internal/ioref"
	"github.com/cathapult/cathapult/internal/iotable"
	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getAnalyzeCmd returns the analyze command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze <in.tsv> <out.tsv>",
		Short: "Count and annotate CATH domains of a summary",
		Long: `Count CATH domains of a summary made by fetch or filter.

Unclassified and malformed labels are skipped. Domains are counted at the
full code and at the first, two and three levels of the hierarchy, once
over all rows and once with every domain counted once per protein. Counts
are annotated with names from the CATH reference tables.

Examples:
  cathapult analyze summary.tsv counts.tsv
  cathapult analyze summary.tsv counts.tsv --names cath-names.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnalyze(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addRefFlags(analyzeCmd)

	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, input, output string) error {
	applyFlags(cmd)

	tbl, err := iotable.Read(input)
	if err != nil {
		return err
	}
	recs, err := tbl.Records()
	if err != nil {
		return err
	}

	dec, skipped := domain.DecomposeAll(recs)
	reportSkipped(input, skipped)

	names, sf, required := refPaths(cmd)
	ann, err := ioref.Load(names, sf, required)
	if err != nil {
		return err
	}
	counts := ann.Counts(domain.CountDomains(dec))

	if _, err = iofs.EnsureParentDir(output); err != nil {
		return err
	}
	if err = iotable.WriteCounts(output, counts); err != nil {
		return err
	}

	slog.Info("Counted domains",
		"input", input,
		"domains", len(dec),
		"rows", len(counts),
		"output", output,
	)
	gn.Info("Domain counts saved to: <em>%s</em>", output)
	return nil
}

// reportSkipped tells the user about records without a usable label.
func reportSkipped(path string, s domain.Skipped) {
	if s.Total() == 0 {
		return
	}
	gn.Info("Skipped %d unclassified and %d malformed domains of <em>%s</em>",
		s.Unclassified, s.Malformed, path)
	slog.Info("Skipped records",
		"path", path,
		"unclassified", s.Unclassified,
		"malformed", s.Malformed,
	)
}
