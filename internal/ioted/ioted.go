// Package ioted downloads per-protein domain summaries from the TED API.
// This is an impure I/O package that implements the Fetcher contract
// defined in pkg/.
package ioted

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	cathapult "github.com/cathapult/cathapult/pkg"
	"github.com/cathapult/cathapult/pkg/config"
	"github.com/cathapult/cathapult/pkg/domain"
	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
)

// tedFetcher implements cathapult.Fetcher over HTTP.
type tedFetcher struct {
	cfg        config.FetchConfig
	jobs       int
	client     *http.Client
	retryDelay time.Duration
	progress   bool
}

// Option configures the fetcher.
type Option func(*tedFetcher)

// OptRetryDelay sets the base pause between attempts. The n-th retry
// waits n times the base.
func OptRetryDelay(d time.Duration) Option {
	return func(f *tedFetcher) {
		if d >= 0 {
			f.retryDelay = d
		}
	}
}

// OptProgress toggles the progress bar of FetchAll.
func OptProgress(b bool) Option {
	return func(f *tedFetcher) {
		f.progress = b
	}
}

// New creates a TED API fetcher from the configuration.
func New(cfg *config.Config, opts ...Option) cathapult.Fetcher {
	res := &tedFetcher{
		cfg:  cfg.Fetch,
		jobs: max(cfg.JobsNumber, 1),
		client: &http.Client{
			Timeout: time.Duration(cfg.Fetch.Timeout) * time.Second,
		},
		retryDelay: time.Second,
		progress:   true,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (f *tedFetcher) summaryURL(acc string) string {
	return fmt.Sprintf("%s/uniprot/summary/%s?skip=0&limit=%d",
		f.cfg.BaseURL, url.PathEscape(acc), f.cfg.PageLimit)
}

// Fetch returns the domain summary of one accession. A response without a
// data array gives no entries.
func (f *tedFetcher) Fetch(ctx context.Context, acc string) ([]domain.Entry, error) {
	u := f.summaryURL(acc)
	body, err := f.get(ctx, acc, u)
	if err != nil {
		return nil, err
	}

	res, err := parseSummary(body)
	if err != nil {
		return nil, DecodeError(acc, err)
	}
	slog.Debug("Fetched TED summary", "accession", acc, "domains", len(res))

	if err = sleep(ctx, time.Duration(f.cfg.DelayMs)*time.Millisecond); err != nil {
		return nil, err
	}
	return res, nil
}

// get performs a GET request, retrying transport errors and 5xx
// responses up to MaxRetries attempts.
func (f *tedFetcher) get(ctx context.Context, acc, u string) ([]byte, error) {
	attempts := max(f.cfg.MaxRetries, 1)
	var lastErr error

	for i := range attempts {
		if i > 0 {
			slog.Warn("Retrying TED request",
				"accession", acc, "attempt", i+1, "error", lastErr)
			if err := sleep(ctx, f.retryDelay*time.Duration(i)); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, RequestError(acc, u, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = RequestError(acc, u, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		switch {
		case resp.StatusCode >= 500:
			lastErr = StatusError(acc, u, resp.StatusCode)
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, StatusError(acc, u, resp.StatusCode)
		case err != nil:
			lastErr = RequestError(acc, u, err)
			continue
		}
		return body, nil
	}

	return nil, lastErr
}

// FetchAll downloads summaries concurrently, at most JobsNumber at a time.
// Entries keep the order of accessions. Failed accessions are logged and
// returned, they do not stop the others. Only cancellation of the context
// aborts the whole download.
func (f *tedFetcher) FetchAll(
	ctx context.Context,
	accs []string,
) ([]domain.Entry, []string, error) {
	found := make([][]domain.Entry, len(accs))
	errs := make([]error, len(accs))

	var bar *pb.ProgressBar
	if f.progress && len(accs) > 0 {
		bar = newProgressBar(len(accs), "TED summaries: ")
		defer bar.Finish()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.jobs)
	for i, acc := range accs {
		g.Go(func() error {
			entries, err := f.Fetch(gctx, acc)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			if err != nil {
				slog.Error("Cannot fetch TED summary", "accession", acc, "error", err)
				errs[i] = err
			}
			found[i] = entries
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var res []domain.Entry
	var failed []string
	for i := range accs {
		if errs[i] != nil {
			failed = append(failed, accs[i])
			continue
		}
		res = append(res, found[i]...)
	}
	slog.Info("Fetched TED summaries",
		"accessions", len(accs), "domains", len(res), "failed", len(failed))
	return res, failed, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
