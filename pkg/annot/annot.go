// Package annot attaches human-readable CATH names to classification codes.
package annot

import (
	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/cathapult/cathapult/pkg/enrich"
)

// Names maps classification codes to names.
type Names map[string]string

// Annotator looks names up in a primary table and falls back to a
// secondary one.
type Annotator struct {
	primary  Names
	fallback Names
}

// New creates an Annotator. Either table may be nil.
func New(primary, fallback Names) Annotator {
	return Annotator{primary: primary, fallback: fallback}
}

// Lookup returns the name of a code and whether one was found.
func (a Annotator) Lookup(code string) (string, bool) {
	if name, ok := a.primary[code]; ok {
		return name, true
	}
	if name, ok := a.fallback[code]; ok {
		return name, true
	}
	return "", false
}

// Len returns the number of entries in both tables.
func (a Annotator) Len() int {
	return len(a.primary) + len(a.fallback)
}

// Results returns a copy of results with names attached. Codes without a
// name get an empty one.
func (a Annotator) Results(res []enrich.Result) []enrich.Result {
	out := make([]enrich.Result, len(res))
	for i, v := range res {
		v.Name, _ = a.Lookup(v.Code)
		out[i] = v
	}
	return out
}

// Counts returns a copy of domain counts with names attached.
func (a Annotator) Counts(counts []domain.DomainCount) []domain.DomainCount {
	out := make([]domain.DomainCount, len(counts))
	for i, v := range counts {
		v.Name, _ = a.Lookup(v.Code)
		out[i] = v
	}
	return out
}
