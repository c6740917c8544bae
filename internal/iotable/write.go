package iotable

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/cathapult/cathapult/pkg/enrich"
)

// ResultColumns is the header of an odds-ratio table.
var ResultColumns = []string{
	"feature",
	"grp1_count",
	"grp1_total",
	"grp2_count",
	"grp2_total",
	"grp1_proportion",
	"grp2_proportion",
	"odds.ratio",
	"log.odds.ratio",
	"p.value",
	"ci.lower",
	"ci.upper",
	"domain.name",
	"p.adj",
	"level",
}

// CountColumns is the header of a domain count table.
var CountColumns = []string{
	"domain",
	"count",
	"domain.type",
	"deduplicated",
	"domain.name",
}

// Write saves a table to path, creating or truncating the file.
func Write(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}

	if err = Encode(f, header, rows); err != nil {
		_ = f.Close()
		return WriteError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// Encode writes a header and rows as TSV.
func Encode(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// FormatFloat renders a number for a table cell. NaN becomes an empty
// cell, infinities become "inf" and "-inf".
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ResultRow returns the cells of an odds-ratio result in ResultColumns
// order.
func ResultRow(r enrich.Result) []string {
	return []string{
		r.Code,
		strconv.Itoa(r.Grp1Count),
		strconv.Itoa(r.Grp1Rest),
		strconv.Itoa(r.Grp2Count),
		strconv.Itoa(r.Grp2Rest),
		FormatFloat(r.Grp1Proportion),
		FormatFloat(r.Grp2Proportion),
		FormatFloat(r.OddsRatio),
		FormatFloat(r.Log2OR),
		FormatFloat(r.PValue),
		FormatFloat(r.CILower),
		FormatFloat(r.CIUpper),
		r.Name,
		FormatFloat(r.PAdj),
		strconv.Itoa(int(r.Level)),
	}
}

// WriteResults saves odds-ratio results.
func WriteResults(path string, res []enrich.Result) error {
	rows := make([][]string, len(res))
	for i, v := range res {
		rows[i] = ResultRow(v)
	}
	return Write(path, ResultColumns, rows)
}

// CountRow returns the cells of a domain count in CountColumns order.
func CountRow(c domain.DomainCount) []string {
	var dedup string
	if c.Deduplicated {
		dedup = "deduped"
	}
	return []string{
		c.Code,
		strconv.Itoa(c.Count),
		c.Level.String(),
		dedup,
		c.Name,
	}
}

// WriteCounts saves a domain count table.
func WriteCounts(path string, counts []domain.DomainCount) error {
	rows := make([][]string, len(counts))
	for i, v := range counts {
		rows[i] = CountRow(v)
	}
	return Write(path, CountColumns, rows)
}

// WriteEntries saves fetched TED records. Columns are the union of record
// keys in first-seen order.
func WriteEntries(path string, entries []domain.Entry) error {
	cols := domain.Columns(entries)
	rows := make([][]string, len(entries))
	for i, v := range entries {
		rows[i] = v.Row(cols)
	}
	return Write(path, cols, rows)
}

// WriteSummaryRows saves rows selected from the bulk summary database.
func WriteSummaryRows(path string, summary []domain.SummaryRow) error {
	rows := make([][]string, len(summary))
	for i, v := range summary {
		rows[i] = v.Values()
	}
	return Write(path, domain.SummaryColumns, rows)
}
