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
	"os"
	"os/signal"
	"time"

	"github.com/cathapult/cathapult/internal/iodb"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getCreateDBCmd returns the createdb command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateDBCmd() *cobra.Command {
	var overwrite, headerless bool

	createDBCmd := &cobra.Command{
		Use:   "createdb <bulk.tsv.gz>",
		Short: "Load a bulk TED summary into a SQLite database",
		Long: `Import a bulk TED domain summary into a local SQLite database.

The summary may be gzipped. Only the columns needed by the filter command
are kept, and the UniProt accession is derived from the TED identifier.
Files without a header line are read in the column order of the TED bulk
download (use --headerless).

The database path comes from --db, then from database.path of the config,
otherwise it is the bulk file name with .sqlite extension. An existing
database is reused unless --overwrite is given.

Examples:
  cathapult createdb ted_365m.domain_summary.tsv.gz -H
  cathapult createdb summary.tsv --db /data/ted.sqlite --overwrite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreateDB(cmd, args[0], overwrite, headerless)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createDBCmd.Flags().StringP("db", "d", "",
		"path to the SQLite database")
	createDBCmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false,
		"recreate the database if it exists")
	createDBCmd.Flags().BoolVarP(&headerless, "headerless", "H", false,
		"bulk summary has no header line")

	return createDBCmd
}

func runCreateDB(
	cmd *cobra.Command,
	bulkPath string,
	overwrite, headerless bool,
) error {
	start := time.Now()
	applyFlags(cmd, dbFlag)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = iodb.DefaultPath(bulkPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if iodb.Exists(dbPath) {
		if overwrite {
			gn.Info("Removing existing database <em>%s</em> (--overwrite enabled)", dbPath)
			if err := iodb.Remove(dbPath); err != nil {
				return err
			}
		} else {
			ok, err := hasData(ctx, dbPath)
			if err != nil {
				return err
			}
			if ok {
				gn.Info("Using existing database <em>%s</em>", dbPath)
				gn.Info("Run with --overwrite to import the summary again")
				return nil
			}
		}
	}

	store, err := iodb.Open(dbPath, cfg.Database.BatchSize)
	if err != nil {
		return err
	}
	defer store.Close()

	gn.Info("Importing <em>%s</em> into <em>%s</em>...", bulkPath, dbPath)
	n, err := iodb.ImportFile(ctx, store, bulkPath, headerless, true)
	if err != nil {
		return err
	}

	gn.Info("Imported <em>%s</em> domains in %s",
		humanize.Comma(int64(n)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

func hasData(ctx context.Context, dbPath string) (bool, error) {
	store, err := iodb.Open(dbPath, cfg.Database.BatchSize)
	if err != nil {
		return false, err
	}
	defer store.Close()
	return store.HasData(ctx)
}
