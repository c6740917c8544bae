// Package iotable reads and writes the tab-separated tables cathapult
// consumes and produces. Input files may be gzipped.
package iotable

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cathapult/cathapult/pkg/domain"
)

const (
	labelColumn   = "cath_label"
	proteinColumn = "uniprot_acc"
	tedIDColumn   = "ted_id"
)

// Table is an in-memory tab-separated table with a header.
type Table struct {
	// Path is the file the table was read from.
	Path   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// Read loads a plain or gzipped TSV file.
func Read(path string) (*Table, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	res, err := Parse(r)
	if err != nil {
		return nil, ReadError(path, err)
	}
	res.Path = path
	return res, nil
}

// Parse reads a TSV stream with a header line. Short rows are padded with
// empty values, rows longer than the header are an error. An empty stream
// gives an empty table.
func Parse(r io.Reader) (*Table, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return New(nil), nil
	}
	if err != nil {
		return nil, err
	}
	res := New(header)

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d has %d fields, header has %d",
				line, len(row), len(header))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func newReader(r io.Reader) *csv.Reader {
	res := csv.NewReader(r)
	res.Comma = '\t'
	res.LazyQuotes = true
	res.FieldsPerRecord = -1
	return res
}

// New creates an empty table with the given header.
func New(header []string) *Table {
	res := &Table{Header: header, index: make(map[string]int, len(header))}
	for i, v := range header {
		v = strings.TrimSpace(v)
		if _, ok := res.index[v]; !ok {
			res.index[v] = i
		}
	}
	return res
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the position of a column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Records converts rows to domain records. The label comes from
// cath_label, the protein from uniprot_acc or, when that column is absent
// or empty, from ted_id.
func (t *Table) Records() ([]domain.Record, error) {
	li, ok := t.Column(labelColumn)
	if !ok {
		return nil, SchemaError(t.Path, labelColumn)
	}
	pi, hasAcc := t.Column(proteinColumn)
	ti, hasTed := t.Column(tedIDColumn)
	if !hasAcc && !hasTed {
		return nil, SchemaError(t.Path, proteinColumn)
	}

	res := make([]domain.Record, len(t.Rows))
	for i, row := range t.Rows {
		var protein string
		if hasAcc {
			protein = strings.TrimSpace(row[pi])
		}
		if protein == "" && hasTed {
			protein = domain.AccessionFromTedID(row[ti])
		}
		res[i] = domain.Record{Protein: protein, Label: row[li]}
	}
	return res, nil
}

// Split divides rows into two groups by the value of a column. Rows with
// other values are dropped.
func (t *Table) Split(column, value1, value2 string) (*Table, *Table, error) {
	ci, ok := t.Column(column)
	if !ok {
		return nil, nil, GroupSplitError(t.Path, column,
			fmt.Errorf("no column %q", column))
	}
	if value1 == value2 {
		return nil, nil, GroupSplitError(t.Path, column,
			fmt.Errorf("group values are the same: %q", value1))
	}

	g1, g2 := New(t.Header), New(t.Header)
	g1.Path = t.Path + ":" + value1
	g2.Path = t.Path + ":" + value2
	for _, row := range t.Rows {
		switch strings.TrimSpace(row[ci]) {
		case value1:
			g1.Rows = append(g1.Rows, row)
		case value2:
			g2.Rows = append(g2.Rows, row)
		}
	}
	return g1, g2, nil
}

// ReadLines returns non-empty trimmed lines of a file, such as a list of
// UniProt accessions.
func ReadLines(path string) ([]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var res []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			res = append(res, line)
		}
	}
	if err = sc.Err(); err != nil {
		return nil, ReadError(path, err)
	}
	return res, nil
}
