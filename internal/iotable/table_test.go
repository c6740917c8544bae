package iotable_test

import (
	"bytes"
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cathapult/cathapult/internal/iotable"
	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/cathapult/cathapult/pkg/enrich"
	"github.com/cathapult/cathapult/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryTSV = "ted_id\tcath_label\tuniprot_acc\tgroup\n" +
	"AF-P11111-F1-model_v4_TED01\t1.10.8.1900\tP11111\tcase\n" +
	"AF-P11111-F1-model_v4_TED02\t-\tP11111\tcase\n" +
	"AF-P22222-F1-model_v4_TED01\t3.40.50.300\t\tcontrol\n" +
	"AF-P33333-F1-model_v4_TED01\t2.60.40.10\tP33333\tother\n"

func writeFile(t *testing.T, name, content string, gz bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := []byte(content)
	if gz {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		data = buf.Bytes()
	}
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestRead(t *testing.T) {
	for _, gz := range []bool{false, true} {
		path := writeFile(t, "summary.tsv", summaryTSV, gz)
		tbl, err := iotable.Read(path)
		require.NoError(t, err)
		assert.Equal(t, path, tbl.Path)
		assert.Equal(t, 4, tbl.Len())
		i, ok := tbl.Column("cath_label")
		assert.True(t, ok)
		assert.Equal(t, 1, i)
		_, ok = tbl.Column("plddt")
		assert.False(t, ok)
	}
}

func TestReadMissing(t *testing.T) {
	_, err := iotable.Read(filepath.Join(t.TempDir(), "none.tsv"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.TableReadError, gnErr.Code)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		rows    int
		wantErr bool
	}{
		{name: "empty", input: "", rows: 0},
		{name: "header only", input: "a\tb\n", rows: 0},
		{name: "short row padded", input: "a\tb\n1\n", rows: 1},
		{name: "long row", input: "a\tb\n1\t2\t3\n", wantErr: true},
		{name: "bare quote", input: "a\tb\nx\"y\tz\n", rows: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := iotable.Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, tbl.Len())
			for _, row := range tbl.Rows {
				assert.Len(t, row, len(tbl.Header))
			}
		})
	}
}

func TestRecords(t *testing.T) {
	tbl, err := iotable.Parse(strings.NewReader(summaryTSV))
	require.NoError(t, err)

	recs, err := tbl.Records()
	require.NoError(t, err)
	want := []domain.Record{
		{Protein: "P11111", Label: "1.10.8.1900"},
		{Protein: "P11111", Label: "-"},
		{Protein: "P22222", Label: "3.40.50.300"},
		{Protein: "P33333", Label: "2.60.40.10"},
	}
	assert.Equal(t, want, recs)
}

func TestRecordsSchema(t *testing.T) {
	tbl, err := iotable.Parse(strings.NewReader("ted_id\tchopping\nAF-P1-F1\t1-10\n"))
	require.NoError(t, err)
	_, err = tbl.Records()
	require.Error(t, err)
	assert.Equal(t, errcode.TableSchemaError, err.(*gn.Error).Code)

	tbl, err = iotable.Parse(strings.NewReader("cath_label\tchopping\n1.10.8.10\t1-10\n"))
	require.NoError(t, err)
	_, err = tbl.Records()
	require.Error(t, err)
	assert.Equal(t, errcode.TableSchemaError, err.(*gn.Error).Code)
}

func TestSplit(t *testing.T) {
	tbl, err := iotable.Parse(strings.NewReader(summaryTSV))
	require.NoError(t, err)

	g1, g2, err := tbl.Split("group", "case", "control")
	require.NoError(t, err)
	assert.Equal(t, 2, g1.Len())
	assert.Equal(t, 1, g2.Len())
	assert.Equal(t, tbl.Header, g1.Header)

	_, _, err = tbl.Split("cohort", "case", "control")
	require.Error(t, err)
	assert.Equal(t, errcode.GroupSplitError, err.(*gn.Error).Code)

	_, _, err = tbl.Split("group", "case", "case")
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	path := writeFile(t, "ids.txt", "P11111\n\n  P22222 \r\nP33333", false)
	ids, err := iotable.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"P11111", "P22222", "P33333"}, ids)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "", iotable.FormatFloat(math.NaN()))
	assert.Equal(t, "inf", iotable.FormatFloat(math.Inf(1)))
	assert.Equal(t, "-inf", iotable.FormatFloat(math.Inf(-1)))
	assert.Equal(t, "13.5", iotable.FormatFloat(13.5))
	assert.Equal(t, "0", iotable.FormatFloat(0))
}

func TestWriteResults(t *testing.T) {
	res := []enrich.Result{
		{
			Feature:        domain.Feature{Code: "1.10.8.1900", Level: domain.FullCode},
			Grp1Count:      6,
			Grp1Rest:       4,
			Grp2Count:      0,
			Grp2Rest:       10,
			Grp1Proportion: 1.5,
			OddsRatio:      math.Inf(1),
			Log2OR:         math.Inf(1),
			PValue:         0.25,
			CILower:        math.NaN(),
			CIUpper:        math.NaN(),
			PAdj:           0.5,
			Name:           "Mainly Alpha",
		},
	}
	path := filepath.Join(t.TempDir(), "res.tsv")
	require.NoError(t, iotable.WriteResults(path, res))

	tbl, err := iotable.Read(path)
	require.NoError(t, err)
	assert.Equal(t, iotable.ResultColumns, tbl.Header)
	require.Equal(t, 1, tbl.Len())
	row := tbl.Rows[0]
	assert.Equal(t, "1.10.8.1900", row[0])
	assert.Equal(t, "6", row[1])
	assert.Equal(t, "4", row[2])
	assert.Equal(t, "inf", row[7])
	assert.Equal(t, "", row[10])
	assert.Equal(t, "Mainly Alpha", row[12])
	assert.Equal(t, "0.5", row[13])
	assert.Equal(t, "3", row[14])
}

func TestWriteCounts(t *testing.T) {
	counts := []domain.DomainCount{
		{Code: "3.40.50.300", Count: 3, Level: domain.FullCode},
		{Code: "3", Count: 2, Level: domain.FirstLevel, Deduplicated: true, Name: "Alpha Beta"},
	}
	path := filepath.Join(t.TempDir(), "counts.tsv")
	require.NoError(t, iotable.WriteCounts(path, counts))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "domain\tcount\tdomain.type\tdeduplicated\tdomain.name\n" +
		"3.40.50.300\t3\tdomain\t\t\n" +
		"3\t2\tdomain.first.level\tdeduped\tAlpha Beta\n"
	assert.Equal(t, want, string(content))
}

func TestWriteEntries(t *testing.T) {
	entries := []domain.Entry{
		{
			Keys:   []string{"ted_id", "cath_label"},
			Values: map[string]string{"ted_id": "AF-P1-F1-model_v4_TED01", "cath_label": "1.10.8.10"},
		},
		{
			Keys:   []string{"ted_id", "plddt"},
			Values: map[string]string{"ted_id": "AF-P2-F1-model_v4_TED01", "plddt": "88.2"},
		},
	}
	path := filepath.Join(t.TempDir(), "fetched.tsv")
	require.NoError(t, iotable.WriteEntries(path, entries))

	tbl, err := iotable.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ted_id", "cath_label", "plddt"}, tbl.Header)
	assert.Equal(t, []string{"AF-P2-F1-model_v4_TED01", "", "88.2"}, tbl.Rows[1])
}

func TestWriteSummaryRows(t *testing.T) {
	rows := []domain.SummaryRow{{TedID: "AF-P1-F1", CathLabel: "1.10.8.10", UniprotAcc: "P1"}}
	path := filepath.Join(t.TempDir(), "filtered.tsv")
	require.NoError(t, iotable.WriteSummaryRows(path, rows))

	tbl, err := iotable.Read(path)
	require.NoError(t, err)
	assert.Equal(t, domain.SummaryColumns, tbl.Header)
	recs, err := tbl.Records()
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{{Protein: "P1", Label: "1.10.8.10"}}, recs)
}

func TestWriteError(t *testing.T) {
	err := iotable.Write(filepath.Join(t.TempDir(), "no", "dir.tsv"), []string{"a"}, nil)
	require.Error(t, err)
	assert.Equal(t, errcode.TableWriteError, err.(*gn.Error).Code)
}
