// Package domain holds the structural-domain records and the pure
// transformations that turn CATH classification codes into the hierarchical
// features used for counting and enrichment.
package domain

import (
	"errors"
	"regexp"
	"strings"
)

// Unclassified is the label TED uses for domains without a CATH assignment.
const Unclassified = "-"

var (
	// ErrUnclassified is returned for the "-" label.
	ErrUnclassified = errors.New("domain has no classification")

	// ErrMalformedLabel is returned for codes with fewer than three
	// non-empty dot-separated segments.
	ErrMalformedLabel = errors.New("malformed classification code")
)

var tedAccRe = regexp.MustCompile(`AF-([A-Z0-9]+)`)

// Record is one detected structural domain of one protein.
type Record struct {
	// Protein is the UniProt accession the domain belongs to.
	Protein string

	// Label is the CATH classification code, for example "3.40.50.300".
	Label string
}

// Decomposed is a record with its label split into the four hierarchy
// levels. Codes is indexed by Level.
type Decomposed struct {
	Protein string
	Codes   [4]string
}

// Skipped counts records that did not produce features.
type Skipped struct {
	Unclassified int
	Malformed    int
}

// Total returns the number of all skipped records.
func (s Skipped) Total() int {
	return s.Unclassified + s.Malformed
}

// Decompose splits a classification code into its level prefixes.
// Every prefix is a string prefix of the next one, and the last one is
// the label itself.
func Decompose(label string) ([4]string, error) {
	var res [4]string
	label = strings.TrimSpace(label)
	if label == Unclassified || label == "" {
		return res, ErrUnclassified
	}

	parts := strings.Split(label, ".")
	if len(parts) < 3 {
		return res, ErrMalformedLabel
	}
	for _, v := range parts {
		if v == "" {
			return res, ErrMalformedLabel
		}
	}

	res[FirstLevel] = parts[0]
	res[TwoLevels] = strings.Join(parts[:2], ".")
	res[ThreeLevels] = strings.Join(parts[:3], ".")
	res[FullCode] = label
	return res, nil
}

// DecomposeAll decomposes records in order, dropping unclassified and
// malformed ones.
func DecomposeAll(recs []Record) ([]Decomposed, Skipped) {
	var skipped Skipped
	res := make([]Decomposed, 0, len(recs))
	for _, v := range recs {
		codes, err := Decompose(v.Label)
		switch {
		case errors.Is(err, ErrUnclassified):
			skipped.Unclassified++
			continue
		case err != nil:
			skipped.Malformed++
			continue
		}
		res = append(res, Decomposed{Protein: v.Protein, Codes: codes})
	}
	return res, skipped
}

// AccessionFromTedID extracts the UniProt accession from a TED domain
// identifier such as "AF-P12345-F1-model_v4_TED01". It returns an empty
// string when the identifier does not contain one.
func AccessionFromTedID(tedID string) string {
	m := tedAccRe.FindStringSubmatch(tedID)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
