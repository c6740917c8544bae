// Package iodb keeps a bulk TED domain summary in an embedded SQLite
// database. It implements the cathapult.Store contract.
package iodb

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cathapult/cathapult/internal/iotable"
	cathapult "github.com/cathapult/cathapult/pkg"
	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"
	tableName  = "domain_summary"

	// queryChunk keeps IN lists below the SQLite variable limit.
	queryChunk = 10_000
)

// BulkColumns is the column order of a headerless TED bulk summary.
var BulkColumns = []string{
	"ted_id", "md5_domain", "consensus_level", "chopping", "nres_domain",
	"num_segments", "plddt", "num_helix_strand_turn", "num_helix",
	"num_strand", "num_helix_strand", "num_turn", "proteome-id",
	"cath_label", "cath_assignment_level", "cath_assignment_method",
	"packing_density", "norm_rg", "tax_common_name", "tax_scientific_name",
	"tax_lineage",
}

const createTable = `
CREATE TABLE domain_summary (
  ted_id TEXT NOT NULL,
  chopping TEXT NOT NULL DEFAULT '',
  cath_label TEXT NOT NULL DEFAULT '',
  cath_assignment_level TEXT NOT NULL DEFAULT '',
  cath_assignment_method TEXT NOT NULL DEFAULT '',
  tax_common_name TEXT NOT NULL DEFAULT '',
  tax_scientific_name TEXT NOT NULL DEFAULT '',
  uniprot_acc TEXT NOT NULL DEFAULT ''
)`

const insertRow = `
INSERT INTO domain_summary (
  ted_id, chopping, cath_label, cath_assignment_level,
  cath_assignment_method, tax_common_name, tax_scientific_name, uniprot_acc
) VALUES (
  :ted_id, :chopping, :cath_label, :cath_assignment_level,
  :cath_assignment_method, :tax_common_name, :tax_scientific_name, :uniprot_acc
)`

const selectRows = `
SELECT ted_id, chopping, cath_label, cath_assignment_level,
  cath_assignment_method, tax_common_name, tax_scientific_name, uniprot_acc
FROM domain_summary
WHERE uniprot_acc IN (?)`

type sqliteStore struct {
	path      string
	batchSize int
	db        *sqlx.DB
	logger    *slog.Logger
}

// Option configures the store.
type Option func(*sqliteStore)

// OptLogger sets the logger for import statistics.
func OptLogger(l *slog.Logger) Option {
	return func(s *sqliteStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens or creates the SQLite file at path. batchSize is the number
// of rows inserted per transaction by Create.
func Open(path string, batchSize int, opts ...Option) (cathapult.Store, error) {
	if batchSize < 1 {
		batchSize = 1
	}
	db, err := sqlx.Open(driverName, path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// one writer keeps pragmas and transactions on the same connection
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, OpenError(path, err)
	}

	res := &sqliteStore{
		path:      path,
		batchSize: batchSize,
		db:        db,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res, nil
}

// DefaultPath derives a database path from a bulk summary file name,
// for example ted_summary.tsv.gz gives ted_summary.sqlite.
func DefaultPath(bulkPath string) string {
	res := strings.TrimSuffix(bulkPath, ".gz")
	res = strings.TrimSuffix(res, ".tsv")
	return res + ".sqlite"
}

// Exists reports whether a database file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes a database file together with its journal files.
func Remove(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		err := os.Remove(p)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return CreateError(path, err)
		}
	}
	return nil
}

// Create replaces the summary table with the content of a bulk TSV
// stream. The stream may be gzipped. It returns the number of imported
// rows.
func (s *sqliteStore) Create(
	ctx context.Context,
	r io.Reader,
	headerless bool,
) (int, error) {
	r, err := iotable.Decompress(r)
	if err != nil {
		return 0, ImportError(s.path, 0, err)
	}
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header := BulkColumns
	if !headerless {
		header, err = cr.Read()
		if err != nil {
			return 0, ImportError(s.path, 0, fmt.Errorf("cannot read header: %w", err))
		}
		header = append([]string(nil), header...)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return 0, ImportError(s.path, 0, err)
	}

	if err = s.resetTable(ctx); err != nil {
		return 0, err
	}

	var count int
	tx, stmt, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, ImportError(s.path, count+1, err)
		}
		if _, err = stmt.ExecContext(ctx, idx.summaryRow(row)); err != nil {
			return count, ImportError(s.path, count+1, err)
		}
		count++

		if count%s.batchSize == 0 {
			if err = tx.Commit(); err != nil {
				tx = nil
				return count, ImportError(s.path, count, err)
			}
			s.logger.Debug("imported batch", "rows", humanize.Comma(int64(count)))
			if tx, stmt, err = s.begin(ctx); err != nil {
				return count, err
			}
		}
	}
	if err = tx.Commit(); err != nil {
		tx = nil
		return count, ImportError(s.path, count, err)
	}
	tx = nil

	q := "CREATE INDEX idx_domain_summary_uniprot_acc ON domain_summary (uniprot_acc)"
	if _, err = s.db.ExecContext(ctx, q); err != nil {
		return count, CreateError(s.path, err)
	}
	s.logger.Info("imported bulk summary",
		"path", s.path, "rows", humanize.Comma(int64(count)))
	return count, nil
}

func (s *sqliteStore) resetTable(ctx context.Context) error {
	qs := []string{
		"PRAGMA synchronous = OFF",
		"DROP TABLE IF EXISTS domain_summary",
		createTable,
	}
	for _, q := range qs {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return CreateError(s.path, err)
		}
	}
	return nil
}

func (s *sqliteStore) begin(ctx context.Context) (*sqlx.Tx, *sqlx.NamedStmt, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, CreateError(s.path, err)
	}
	stmt, err := tx.PrepareNamedContext(ctx, insertRow)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, CreateError(s.path, err)
	}
	return tx, stmt, nil
}

// HasData reports whether the summary table exists and holds at least one
// row.
func (s *sqliteStore) HasData(ctx context.Context) (bool, error) {
	var n int
	q := "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?"
	if err := s.db.GetContext(ctx, &n, q, tableName); err != nil {
		return false, QueryError(s.path, err)
	}
	if n == 0 {
		return false, nil
	}

	var exists bool
	q = "SELECT EXISTS (SELECT 1 FROM domain_summary)"
	if err := s.db.GetContext(ctx, &exists, q); err != nil {
		return false, QueryError(s.path, err)
	}
	return exists, nil
}

// QueryByAccessions returns summary rows of the given proteins. A non-empty
// keyword keeps only organisms whose common name contains it, ignoring
// case.
func (s *sqliteStore) QueryByAccessions(
	ctx context.Context,
	accs []string,
	keyword string,
) ([]domain.SummaryRow, error) {
	ok, err := s.HasData(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, MissingError(s.path)
	}

	var res []domain.SummaryRow
	for start := 0; start < len(accs); start += queryChunk {
		end := min(start+queryChunk, len(accs))
		rows, err := s.query(ctx, accs[start:end], keyword)
		if err != nil {
			return nil, err
		}
		res = append(res, rows...)
	}
	return res, nil
}

func (s *sqliteStore) query(
	ctx context.Context,
	accs []string,
	keyword string,
) ([]domain.SummaryRow, error) {
	q := selectRows
	args := []any{accs}
	if keyword != "" {
		q += ` AND tax_common_name LIKE '%' || ? || '%' ESCAPE '\'`
		args = append(args, escapeLike(keyword))
	}
	q += " ORDER BY rowid"

	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, QueryError(s.path, err)
	}
	var res []domain.SummaryRow
	if err = s.db.SelectContext(ctx, &res, s.db.Rebind(q), args...); err != nil {
		return nil, QueryError(s.path, err)
	}
	return res, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Close releases the database handle.
func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ImportFile loads a bulk summary file into the store, showing a byte
// progress bar when progress is true.
func ImportFile(
	ctx context.Context,
	s cathapult.Store,
	path string,
	headerless, progress bool,
) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, ImportError(path, 0, err)
	}
	defer f.Close()

	var r io.Reader = f
	if progress {
		info, err := f.Stat()
		if err != nil {
			return 0, ImportError(path, 0, err)
		}
		bar := pb.Full.Start64(info.Size())
		bar.Set("prefix", "Importing "+filepath.Base(path)+": ")
		bar.Set(pb.Bytes, true)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		r = bar.NewProxyReader(f)
	}
	return s.Create(ctx, r, headerless)
}

type columns struct {
	tedID, chopping, label, level, method, common, scientific, acc int
}

func columnIndex(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, v := range header {
		v = strings.TrimSpace(v)
		if _, ok := pos[v]; !ok {
			pos[v] = i
		}
	}
	get := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	res := columns{
		tedID:      get("ted_id"),
		chopping:   get("chopping"),
		label:      get("cath_label"),
		level:      get("cath_assignment_level"),
		method:     get("cath_assignment_method"),
		common:     get("tax_common_name"),
		scientific: get("tax_scientific_name"),
		acc:        get("uniprot_acc"),
	}
	for name, i := range map[string]int{"ted_id": res.tedID, "cath_label": res.label} {
		if i < 0 {
			return res, fmt.Errorf("no %s column", name)
		}
	}
	return res, nil
}

func (c columns) summaryRow(row []string) domain.SummaryRow {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}
	res := domain.SummaryRow{
		TedID:                cell(c.tedID),
		Chopping:             cell(c.chopping),
		CathLabel:            cell(c.label),
		CathAssignmentLevel:  cell(c.level),
		CathAssignmentMethod: cell(c.method),
		TaxCommonName:        cell(c.common),
		TaxScientificName:    cell(c.scientific),
		UniprotAcc:           cell(c.acc),
	}
	if res.UniprotAcc == "" {
		res.UniprotAcc = domain.AccessionFromTedID(res.TedID)
	}
	return res
}
