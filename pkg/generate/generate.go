// Package generate runs the pipeline over a range of design variants in
// parallel and stores every solved design.
//
// The id range [Start, End) is split into contiguous, disjoint slices, one
// per worker. Each worker owns its solvers, so no search state is shared;
// the planner's combination memo is the only shared structure and it is
// safe for concurrent use.
//
//	g := generate.NewRunner(pipeline.NewRunner(c, nil, logger), st, logger)
//	stats, err := g.Run(ctx, generate.Options{PinCount: 3, Workers: 8, Filter: true})
package generate

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/observability"
	"github.com/matzehuels/pinboard/pkg/pipeline"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/store"
	"github.com/matzehuels/pinboard/pkg/variant"
)

// Options configures a batch run.
type Options struct {
	PinCount int

	// Start and End bound the variant ids, End exclusive. End zero means
	// every variant for PinCount.
	Start, End int

	// Workers defaults to GOMAXPROCS.
	Workers int

	MaxIterations int
	Weights       slide.Weights
	Filter        bool
	MaxComponents int
	Refresh       bool

	// OnProgress is called after every design with the number finished so
	// far. It may be called from several goroutines at once.
	OnProgress func(done, total int)
}

// Stats summarizes a batch run. Cached counts designs served from the
// cache; they are also counted as solved or unsolved.
type Stats struct {
	RunID     string        `json:"run_id"`
	Processed int           `json:"processed"`
	Filtered  int           `json:"filtered"`
	Solved    int           `json:"solved"`
	Unsolved  int           `json:"unsolved"`
	Failed    int           `json:"failed"`
	Cached    int           `json:"cached"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Range is a half-open id range.
type Range struct {
	Start, End int
}

// Len returns the number of ids in r.
func (r Range) Len() int { return r.End - r.Start }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// Partition splits [start, end) into at most n contiguous, disjoint ranges
// whose lengths differ by at most one. Empty ranges are omitted.
func Partition(start, end, n int) []Range {
	total := end - start
	if total <= 0 || n <= 0 {
		return nil
	}
	n = min(n, total)
	size, extra := total/n, total%n

	out := make([]Range, 0, n)
	lo := start
	for i := 0; i < n; i++ {
		hi := lo + size
		if i < extra {
			hi++
		}
		out = append(out, Range{lo, hi})
		lo = hi
	}
	return out
}

// Runner drives batch generation.
type Runner struct {
	Pipeline *pipeline.Runner
	Store    store.Store
	Logger   *log.Logger
}

// NewRunner returns a runner. A nil store keeps results in the cache only.
func NewRunner(p *pipeline.Runner, st store.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if p == nil {
		p = pipeline.NewRunner(nil, nil, logger)
	}
	return &Runner{Pipeline: p, Store: st, Logger: logger}
}

type counters struct {
	done, filtered, solved, unsolved, failed, cached atomic.Int64
}

// Run processes every variant in the configured range. Per-design failures
// are logged and counted; only cancellation or a store error aborts the
// run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Stats, error) {
	if err := errors.ValidatePinCount(opts.PinCount); err != nil {
		return nil, err
	}
	total := variant.TotalVariants(opts.PinCount)
	if opts.End == 0 || opts.End > total {
		opts.End = total
	}
	if err := errors.ValidateIDRange(opts.Start, opts.End); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	stats := &Stats{RunID: uuid.NewString()}
	start := time.Now()
	ranges := Partition(opts.Start, opts.End, opts.Workers)
	count := opts.End - opts.Start

	r.Logger.Info("generating designs",
		"run", stats.RunID,
		"pins", opts.PinCount,
		"range", Range{opts.Start, opts.End},
		"workers", len(ranges))

	var c counters
	g, gctx := errgroup.WithContext(ctx)
	for _, rg := range ranges {
		g.Go(func() error {
			for id := rg.Start; id < rg.End; id++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := r.one(gctx, opts, stats.RunID, id, &c); err != nil {
					return err
				}
				if opts.OnProgress != nil {
					opts.OnProgress(int(c.done.Load()), count)
				}
			}
			return nil
		})
	}
	err := g.Wait()

	stats.Processed = int(c.done.Load())
	stats.Filtered = int(c.filtered.Load())
	stats.Solved = int(c.solved.Load())
	stats.Unsolved = int(c.unsolved.Load())
	stats.Failed = int(c.failed.Load())
	stats.Cached = int(c.cached.Load())
	stats.Elapsed = time.Since(start)
	if err != nil {
		return stats, err
	}

	r.Logger.Info("generation finished",
		"run", stats.RunID,
		"processed", stats.Processed,
		"solved", stats.Solved,
		"unsolved", stats.Unsolved,
		"filtered", stats.Filtered,
		"failed", stats.Failed,
		"elapsed", stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}

func (r *Runner) one(ctx context.Context, opts Options, runID string, id int, c *counters) error {
	began := time.Now()
	res, err := r.Pipeline.Execute(ctx, pipeline.Options{
		PinCount:      opts.PinCount,
		Variant:       id,
		MaxIterations: opts.MaxIterations,
		Weights:       opts.Weights,
		Filter:        opts.Filter,
		MaxComponents: opts.MaxComponents,
		Refresh:       opts.Refresh,
		Logger:        r.Logger,
	})
	c.done.Add(1)

	outcome := "failed"
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.failed.Add(1)
		r.Logger.Error("design failed", "pins", opts.PinCount, "variant", id, "err", err)
	case res.Design.Status == pipeline.StatusFiltered:
		c.filtered.Add(1)
		outcome = "filtered"
	case res.Design.Status == pipeline.StatusUnsolved:
		c.unsolved.Add(1)
		outcome = "unsolved"
	default:
		c.solved.Add(1)
		outcome = "solved"
	}
	if err == nil && res.CacheInfo.DesignHit {
		c.cached.Add(1)
		outcome = "cached"
	}
	observability.Generate().OnDesign(ctx, opts.PinCount, id, outcome, time.Since(began))

	if err == nil && res.Design.Status == pipeline.StatusSolved && r.Store != nil {
		rec := &store.Record{Design: *res.Design, RunID: runID, UpdatedAt: time.Now().UTC()}
		if err := r.Store.Put(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
