package domain_test

import (
	"strings"
	"testing"

	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    [4]string
		wantErr error
	}{
		{
			name:  "four segments",
			label: "1.10.8.1900",
			want:  [4]string{"1", "1.10", "1.10.8", "1.10.8.1900"},
		},
		{
			name:  "three segments",
			label: "3.40.50",
			want:  [4]string{"3", "3.40", "3.40.50", "3.40.50"},
		},
		{
			name:  "surrounding spaces",
			label: " 2.60.40.10 ",
			want:  [4]string{"2", "2.60", "2.60.40", "2.60.40.10"},
		},
		{name: "unclassified", label: "-", wantErr: domain.ErrUnclassified},
		{name: "empty", label: "", wantErr: domain.ErrUnclassified},
		{name: "two segments", label: "3.40", wantErr: domain.ErrMalformedLabel},
		{name: "one segment", label: "3", wantErr: domain.ErrMalformedLabel},
		{name: "empty segment", label: "3..50.300", wantErr: domain.ErrMalformedLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := domain.Decompose(tt.label)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestDecomposePrefixes(t *testing.T) {
	labels := []string{"1.10.8.1900", "3.40.50.300", "2.60.40.10", "3.30.70"}
	for _, label := range labels {
		codes, err := domain.Decompose(label)
		require.NoError(t, err)
		assert.Equal(t, label, codes[domain.FullCode])
		for i := 0; i < 3; i++ {
			assert.True(t, strings.HasPrefix(codes[i+1], codes[i]),
				"%s is not a prefix of %s", codes[i], codes[i+1])
			assert.Len(t, strings.Split(codes[i], "."), i+1)
		}
	}
}

func TestDecomposeAll(t *testing.T) {
	recs := []domain.Record{
		{Protein: "P1", Label: "1.10.8.1900"},
		{Protein: "P1", Label: "-"},
		{Protein: "P2", Label: "3.40"},
		{Protein: "P3", Label: "3.40.50.300"},
	}
	dec, skipped := domain.DecomposeAll(recs)
	require.Len(t, dec, 2)
	assert.Equal(t, "P1", dec[0].Protein)
	assert.Equal(t, "P3", dec[1].Protein)
	assert.Equal(t, 1, skipped.Unclassified)
	assert.Equal(t, 1, skipped.Malformed)
	assert.Equal(t, 2, skipped.Total())
}

func TestAccessionFromTedID(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"AF-P12345-F1-model_v4_TED01", "P12345"},
		{"AF-A0A024R1R8-F1-model_v4_TED02", "A0A024R1R8"},
		{"something-else", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.AccessionFromTedID(tt.id), tt.id)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "domain.first.level", domain.FirstLevel.String())
	assert.Equal(t, "domain.two.levels", domain.TwoLevels.String())
	assert.Equal(t, "domain.three.levels", domain.ThreeLevels.String())
	assert.Equal(t, "domain", domain.FullCode.String())
	assert.Equal(t, "Level(7)", domain.Level(7).String())

	for _, l := range domain.Levels {
		res, err := domain.ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, res)
	}
	_, err := domain.ParseLevel("domain.four.levels")
	assert.Error(t, err)
}
