// Package bayesnet is the engine facade: it answers queries against one
// network, caches answers, evaluates batches concurrently and records runs.
package bayesnet

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/bayesnet/pkg/bayesnet/inference"
	"github.com/cognicore/bayesnet/pkg/bayesnet/internalerr"
	"github.com/cognicore/bayesnet/pkg/bayesnet/network"
	"github.com/cognicore/bayesnet/pkg/bayesnet/report"
	"github.com/cognicore/bayesnet/pkg/bayesnet/store"
)

// Bayesnet is the main inference engine facade
type Bayesnet struct {
	net     *network.Network
	cpts    []*network.CPT
	name    string
	store   store.Store
	logger  *slog.Logger
	workers int
	cache   *lru.Cache[string, inference.Result]
	builder *report.Builder
}

// Options configures a Bayesnet instance
type Options struct {
	Network   *network.Network
	Name      string       // Recorded with each run, typically the network file path
	Store     store.Store  // Optional, runs are not persisted if nil
	Logger    *slog.Logger // Optional, uses slog.Default() if nil
	Workers   int          // Concurrent queries per run, 1 if < 1
	CacheSize int          // Cached answers, caching is off if < 1
}

// New creates a Bayesnet instance with the given dependencies
func New(opts Options) (*Bayesnet, error) {
	if opts.Network == nil {
		return nil, fmt.Errorf("bayesnet: nil network: %w", internalerr.ErrInvalidInput)
	}
	b := &Bayesnet{
		net:     opts.Network,
		cpts:    opts.Network.CPTs(),
		name:    opts.Name,
		store:   opts.Store,
		logger:  opts.Logger,
		workers: max(opts.Workers, 1),
		builder: report.NewBuilder(),
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, inference.Result](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("bayesnet: cache: %w", err)
		}
		b.cache = cache
	}
	return b, nil
}

// Close cleanly shuts down the Bayesnet instance
func (b *Bayesnet) Close() error {
	if b.store == nil {
		return nil
	}
	return b.store.Close()
}

// Network returns the network queries are answered against.
func (b *Bayesnet) Network() *network.Network { return b.net }

// Answer evaluates one query with the algorithm it selects.
func (b *Bayesnet) Answer(ctx context.Context, q inference.Query) (inference.Result, error) {
	if err := ctx.Err(); err != nil {
		return inference.Result{}, err
	}

	key := q.String()
	if b.cache != nil {
		if r, ok := b.cache.Get(key); ok {
			b.logger.Debug("cache hit", "query", key)
			return r, nil
		}
	}

	solver, err := inference.For(q.Algorithm, inference.Config{Logger: b.logger})
	if err != nil {
		return inference.Result{}, err
	}
	r, err := solver.Answer(q, b.cpts)
	if err != nil {
		return inference.Result{}, err
	}
	b.logger.Debug("answered", "query", key, "algorithm", q.Algorithm.String(),
		"probability", r.Probability, "additions", r.Additions, "multiplications", r.Multiplications)

	if b.cache != nil {
		b.cache.Add(key, r)
	}
	return r, nil
}

// Run answers queries concurrently and returns a report with results in
// input order. The run is persisted when a store is configured. A failing
// query or a cancelled context aborts the whole run.
func (b *Bayesnet) Run(ctx context.Context, queries []inference.Query) (report.Report, error) {
	b.logger.Info("run started", "network", b.name, "queries", len(queries), "workers", b.workers)

	results := make([]inference.Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := b.Answer(gctx, q)
			if err != nil {
				return fmt.Errorf("query %d %s: %w", i+1, q, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	rep, err := b.builder.Build(b.name, queries, results)
	if err != nil {
		return report.Report{}, err
	}
	b.logger.Info("run finished", "run", rep.ID, "queries", len(rep.Lines))

	if b.store != nil {
		if err := b.store.SaveRun(ctx, toRun(rep)); err != nil {
			return report.Report{}, fmt.Errorf("persist run %s: %w", rep.ID, err)
		}
		b.logger.Info("run persisted", "run", rep.ID)
	}
	return rep, nil
}

// History lists persisted runs, newest first.
func (b *Bayesnet) History(ctx context.Context, limit int) ([]store.Run, error) {
	if b.store == nil {
		return nil, fmt.Errorf("history: no store configured: %w", internalerr.ErrNotFound)
	}
	return b.store.ListRuns(ctx, limit)
}

func toRun(rep report.Report) store.Run {
	run := store.Run{
		ID:        rep.ID,
		Network:   rep.Network,
		CreatedAt: rep.CreatedAt,
		Records:   make([]store.Record, len(rep.Lines)),
	}
	for i, l := range rep.Lines {
		run.Records[i] = store.Record{
			Position:        i,
			Query:           l.Query.String(),
			Algorithm:       int(l.Query.Algorithm),
			Probability:     l.Result.Probability,
			Additions:       l.Result.Additions,
			Multiplications: l.Result.Multiplications,
		}
	}
	return run
}
