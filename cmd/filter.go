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
	"errors"
	"log/slog"
	"time"

	"github.com/cathapult/cathapult/internal/iodb"
	"github.com/cathapult/cathapult/internal/iofs"
	"github.com/cathapult/cathapult/internal/iotable"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getFilterCmd returns the filter command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getFilterCmd() *cobra.Command {
	var keyword string

	filterCmd := &cobra.Command{
		Use:   "filter <ids.txt> <out.tsv>",
		Short: "Select proteins from the bulk summary database",
		Long: `Write domain summaries of the given UniProt accessions from the
SQLite database made by createdb.

The keyword keeps only organisms whose common name contains it, ignoring
case. The database path comes from --db or database.path of the config
(CATHAPULT_DATABASE_PATH).

Examples:
  cathapult filter ids.txt human.tsv --db ted.sqlite -k human`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFilter(cmd, args[0], args[1], keyword)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	filterCmd.Flags().StringP("db", "d", "",
		"path to the SQLite database")
	filterCmd.Flags().StringVarP(&keyword, "keyword", "k", "",
		"substring of the organism common name")

	return filterCmd
}

func runFilter(cmd *cobra.Command, idsPath, output, keyword string) error {
	start := time.Now()
	applyFlags(cmd, dbFlag)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		gn.Warn("<warn>Database path is not set</warn>")
		gn.Warn("Use --db or CATHAPULT_DATABASE_PATH, or run 'cathapult createdb'")
		err := errors.New("database path is not set")
		slog.Error("Cannot filter", "error", err)
		return err
	}
	if !iodb.Exists(dbPath) {
		return iodb.MissingError(dbPath)
	}

	ids, err := iotable.ReadLines(idsPath)
	if err != nil {
		return err
	}

	store, err := iodb.Open(dbPath, cfg.Database.BatchSize)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.QueryByAccessions(context.Background(), ids, keyword)
	if err != nil {
		return err
	}

	if _, err = iofs.EnsureParentDir(output); err != nil {
		return err
	}
	if err = iotable.WriteSummaryRows(output, rows); err != nil {
		return err
	}

	slog.Info("Filtered bulk summary",
		"database", dbPath,
		"accessions", len(ids),
		"keyword", keyword,
		"rows", len(rows),
	)
	gn.Info("Saved <em>%s</em> domains of %s accessions to <em>%s</em> in %s",
		humanize.Comma(int64(len(rows))),
		humanize.Comma(int64(len(ids))),
		output,
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
