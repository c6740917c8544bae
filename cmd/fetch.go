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
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/cathapult/cathapult/internal/iofs"
	"github.com/cathapult/cathapult/internal/iotable"
	"github.com/cathapult/cathapult/internal/ioted"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getFetchCmd returns the fetch command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getFetchCmd() *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch <ids.txt> [out.tsv]",
		Short: "Fetch TED domain summaries for UniProt accessions",
		Long: `Download per-protein domain summaries from the TED API.

The input file contains one UniProt accession per line. Requests run
concurrently, failed accessions are reported and do not stop the others.
The output table has a column for every key found in the summaries.

When the output path is omitted, the name of the input file with the
.tsv extension is used. Missing output directories are created.

Examples:
  cathapult fetch ids.txt
  cathapult fetch ids.txt results/summary.tsv -j 8 --delay 250`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFetch(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fetchCmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent requests (default: jobs_number from config)")
	fetchCmd.Flags().Int("delay", 0,
		"pause after each request in milliseconds")
	fetchCmd.Flags().Int("timeout", 0,
		"request timeout in seconds")

	return fetchCmd
}

// fetchOutput returns the output path, given explicitly or derived from
// the name of the accessions file.
func fetchOutput(args []string) string {
	if len(args) > 1 && args[1] != "" {
		return args[1]
	}
	base := filepath.Base(args[0])
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".tsv"
}

func runFetch(cmd *cobra.Command, args []string) error {
	start := time.Now()
	applyFlags(cmd, jobsFlag, delayFlag, timeoutFlag)

	output := fetchOutput(args)
	created, err := iofs.EnsureParentDir(output)
	if err != nil {
		return err
	}
	if created {
		gn.Info("Created output directory: <em>%s</em>", filepath.Dir(output))
	}

	ids, err := iotable.ReadLines(args[0])
	if err != nil {
		return err
	}
	gn.Info("Fetching domain summaries for <em>%s</em> UniProt IDs...",
		humanize.Comma(int64(len(ids))))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := ioted.New(cfg)
	entries, failed, err := fetcher.FetchAll(ctx, ids)
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		gn.Warn("Could not fetch %d accessions: %s",
			len(failed), strings.Join(failed, ", "))
		slog.Warn("Failed accessions", "count", len(failed), "accessions", failed)
	}

	if len(entries) == 0 {
		gn.Info("No data fetched.")
		return nil
	}

	if err = iotable.WriteEntries(output, entries); err != nil {
		return err
	}
	slog.Info("Fetched domain summaries",
		"accessions", len(ids),
		"domains", len(entries),
		"output", output,
	)
	gn.Info("Results saved to: <em>%s</em> (%s domains in %s)",
		output,
		humanize.Comma(int64(len(entries))),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
