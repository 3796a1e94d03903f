package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/pipeline"
	"assethunt-engine/internal/source/util"

	"golang.org/x/sync/errgroup"
)

// Adapter is one external catalog.
type Adapter interface {
	Name() string
	Search(ctx context.Context, q domain.Query) ([]domain.Resource, error)
}

const DefaultSourceTimeout = 30 * time.Second

type Options struct {
	// SourceTimeout bounds each adapter call.
	SourceTimeout time.Duration
	// Timeouts overrides SourceTimeout per adapter name.
	Timeouts map[string]time.Duration
}

type Aggregator struct {
	adapters []Adapter
	opts     Options
	logger   *slog.Logger
}

func New(adapters []Adapter, opts Options, logger *slog.Logger) *Aggregator {
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = DefaultSourceTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Aggregator{
		adapters: adapters,
		opts:     opts,
		logger:   logger.With("component", "search"),
	}
}

// Sources names the configured adapters in order.
func (a *Aggregator) Sources() []string {
	out := make([]string, 0, len(a.adapters))
	for _, ad := range a.adapters {
		out = append(out, ad.Name())
	}
	return out
}

type sourceResult struct {
	index     int
	resources []domain.Resource
}

// Search fans out to every adapter, then dedups, filters and caps the union.
// The union is merged in adapter registration order, so on duplicates the
// earlier-registered source wins regardless of which finished first.
// Adapter failures and timeouts are logged and contribute nothing; Search
// itself never fails because of them.
func (a *Aggregator) Search(ctx context.Context, q domain.Query) []domain.Resource {
	var g errgroup.Group
	if len(a.adapters) > 0 {
		g.SetLimit(len(a.adapters))
	}

	results := make(chan sourceResult, len(a.adapters))

	for i, ad := range a.adapters {
		g.Go(func() error {
			timeout := a.timeoutFor(ad.Name())
			start := time.Now()

			res, err := callWithTimeout(ctx, timeout, ad, q)
			if err != nil {
				a.logger.Warn("source failed",
					"source", ad.Name(),
					"error", pipeline.Wrap(pipeline.ErrSource, ad.Name(), "search", "", err),
					"elapsed", time.Since(start).Round(time.Millisecond))
				return nil
			}
			a.logger.Info("source done", "source", ad.Name(), "count", len(res),
				"elapsed", time.Since(start).Round(time.Millisecond))
			results <- sourceResult{index: i, resources: res}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	bySource := make([][]domain.Resource, len(a.adapters))
	for r := range results {
		bySource[r.index] = r.resources
	}
	var merged []domain.Resource
	for _, rs := range bySource {
		merged = append(merged, rs...)
	}

	unique := Dedup(merged)
	filtered := Filter(unique, q.Extensions, q.MaxResults)

	a.logger.Info("search complete",
		"query", q.Keywords,
		"sources", len(a.adapters),
		"raw", len(merged),
		"unique", len(unique),
		"kept", len(filtered))
	return filtered
}

func (a *Aggregator) timeoutFor(name string) time.Duration {
	if d, ok := a.opts.Timeouts[name]; ok && d > 0 {
		return d
	}
	return a.opts.SourceTimeout
}

// callWithTimeout abandons an adapter that outlives its deadline, even one
// that ignores ctx. The abandoned call finishes into a buffered channel.
func callWithTimeout(parent context.Context, timeout time.Duration, ad Adapter, q domain.Query) ([]domain.Resource, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	type reply struct {
		res []domain.Resource
		err error
	}
	done := make(chan reply, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- reply{err: fmt.Errorf("panic: %v", p)}
			}
		}()
		res, err := ad.Search(ctx, q)
		done <- reply{res: res, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return r.res, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("timed out after %s: %w", timeout, ctx.Err())
	}
}

// Dedup keeps the first resource per canonical download URL, in input order.
// Resources without a download URL are dropped.
func Dedup(in []domain.Resource) []domain.Resource {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Resource, 0, len(in))
	for _, r := range in {
		key := util.CanonicalURL(r.DownloadURL)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
