package cathapult

import (
	"context"
	"io"

	"github.com/cathapult/cathapult/pkg/domain"
)

// Fetcher downloads per-protein domain summaries from the TED service.
type Fetcher interface {
	// Fetch returns the domain summary rows for a single UniProt accession.
	Fetch(ctx context.Context, acc string) ([]domain.Entry, error)

	// FetchAll downloads summaries for all accessions, keeping the input
	// order. Accessions that failed are returned separately.
	FetchAll(ctx context.Context, accs []string) (
		entries []domain.Entry, failed []string, err error,
	)
}

// Store is the embedded database holding a bulk TED domain summary.
//
// Create and Query are separate from opening, so a command can check
// whether a database already exists before paying for an import.
type Store interface {
	// Create imports a (possibly gzipped) bulk summary TSV.
	Create(ctx context.Context, r io.Reader, headerless bool) (int, error)

	// HasData reports whether the summary table exists and has rows.
	HasData(ctx context.Context) (bool, error)

	// QueryByAccessions returns the summary rows for the given accessions,
	// optionally restricted to organisms whose common name contains keyword.
	QueryByAccessions(
		ctx context.Context, accs []string, keyword string,
	) ([]domain.SummaryRow, error)

	// Close releases the database handle.
	Close() error
}
