package annot_test

import (
	"testing"

	"github.com/cathapult/cathapult/pkg/annot"
	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/cathapult/cathapult/pkg/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annotator() annot.Annotator {
	primary := annot.Names{
		"1":    "Mainly Alpha",
		"1.10": "Orthogonal Bundle",
	}
	fallback := annot.Names{
		"1.10":        "should not win",
		"3.40.50.300": "P-loop containing nucleotide triphosphate hydrolases",
	}
	return annot.New(primary, fallback)
}

func TestLookup(t *testing.T) {
	a := annotator()
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{"1", "Mainly Alpha", true},
		{"1.10", "Orthogonal Bundle", true},
		{"3.40.50.300", "P-loop containing nucleotide triphosphate hydrolases", true},
		{"2.60", "", false},
	}
	for _, tt := range tests {
		name, ok := a.Lookup(tt.code)
		assert.Equal(t, tt.wantOK, ok, tt.code)
		assert.Equal(t, tt.want, name, tt.code)
	}
	assert.Equal(t, 4, a.Len())
}

func TestLookupNilTables(t *testing.T) {
	a := annot.New(nil, nil)
	name, ok := a.Lookup("1")
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestResultsIdempotent(t *testing.T) {
	a := annotator()
	res := []enrich.Result{
		{Feature: domain.Feature{Code: "1", Level: domain.FirstLevel}},
		{Feature: domain.Feature{Code: "1.10", Level: domain.TwoLevels}},
		{Feature: domain.Feature{Code: "2.60", Level: domain.TwoLevels}},
	}
	once := a.Results(res)
	twice := a.Results(once)
	require.Len(t, once, 3)
	assert.Equal(t, once, twice)
	assert.Equal(t, "Mainly Alpha", once[0].Name)
	assert.Equal(t, "Orthogonal Bundle", once[1].Name)
	assert.Empty(t, once[2].Name)

	// input is not changed
	assert.Empty(t, res[0].Name)
}

func TestCounts(t *testing.T) {
	a := annotator()
	counts := []domain.DomainCount{
		{Code: "3.40.50.300", Count: 3, Level: domain.FullCode},
		{Code: "9.99", Count: 1, Level: domain.TwoLevels},
	}
	res := a.Counts(counts)
	assert.Equal(t, "P-loop containing nucleotide triphosphate hydrolases", res[0].Name)
	assert.Empty(t, res[1].Name)
	assert.Equal(t, res, a.Counts(res))
}
