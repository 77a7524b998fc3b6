package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/codegen"
	"github.com/matzehuels/pinboard/pkg/solver"
	"github.com/matzehuels/pinboard/pkg/variant"
)

// Runner executes pipeline runs against a cache.
//
// A Runner holds no per-run state; one Runner may serve many goroutines.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Planner *variant.Planner
	Logger  *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// means cache.DefaultKeyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Planner: variant.Default, Logger: logger}
}

// Execute plans, filters and solves one design.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	res := &Result{}

	planStart := time.Now()
	apps, err := r.Planner.Plan(opts.Variant, opts.PinCount)
	if err != nil {
		return nil, err
	}
	res.Stats.PlanTime = time.Since(planStart)

	d := &Design{PinCount: opts.PinCount, Variant: opts.Variant, Applications: apps}
	res.Design = d

	if opts.Filter {
		fr := variant.ApplyFilters(apps, opts.PinCount, variant.DefaultFilters(opts.MaxComponents)...)
		if !fr.Passed {
			d.Status, d.Reason = StatusFiltered, fr.Reason
			logger.Debug("design filtered", "pins", opts.PinCount, "variant", opts.Variant, "reason", fr.Reason)
			return res, nil
		}
	}

	key := r.Keyer.DesignKey(opts.PinCount, opts.Variant, cache.DesignKeyOpts{
		MaxIterations: opts.MaxIterations,
		Weights:       opts.Weights,
	})
	useCache := opts.Observer == nil
	if useCache && !opts.Refresh {
		if cached, ok := r.cachedDesign(ctx, key); ok {
			res.Design = cached
			res.CacheInfo.DesignHit = true
			return res, nil
		}
	}

	solveStart := time.Now()
	s, err := solver.New(solver.Options{
		PinCount:      opts.PinCount,
		Applications:  apps,
		MaxIterations: opts.MaxIterations,
		Weights:       opts.Weights,
		Renderer:      board.Renderer{},
		Observer:      opts.Observer,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	sol, err := s.Solve(ctx)
	if err != nil {
		return nil, fmt.Errorf("solve variant %d: %w", opts.Variant, err)
	}
	res.Stats.SolveTime = time.Since(solveStart)
	d.Examined = s.Examined()

	if sol == nil {
		d.Status = StatusUnsolved
		logger.Debug("no collision-free layout", "pins", opts.PinCount, "variant", opts.Variant, "examined", d.Examined)
	} else {
		d.Status = StatusSolved
		d.Variations, d.Index, d.Distance = sol.Variations, sol.Index, sol.Distance
		d.Filename = codegen.Filename(opts.PinCount, opts.Variant)
		d.Code, err = codegen.Circuit(board.Board{PinCount: opts.PinCount, Applications: apps, Variations: sol.Variations})
		if err != nil {
			return nil, err
		}
		logger.Debug("solved design", "pins", opts.PinCount, "variant", opts.Variant,
			"index", sol.Index, "distance", fmt.Sprintf("%.2f", sol.Distance))
	}

	if useCache {
		if data, err := json.Marshal(d); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLDesign); err != nil {
				logger.Warn("cache write failed", "key", key, "err", err)
			}
		}
	}
	return res, nil
}

func (r *Runner) cachedDesign(ctx context.Context, key string) (*Design, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, false
	}
	return &d, true
}

// NetlistSVG renders the netlist diagram of a design's canonical layout,
// reporting whether it came from the cache.
func (r *Runner) NetlistSVG(ctx context.Context, pinCount, id int) ([]byte, bool, error) {
	key := r.Keyer.NetlistKey(pinCount, id)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	apps, err := r.Planner.Plan(id, pinCount)
	if err != nil {
		return nil, false, err
	}
	nl, err := board.BuildNetlist(board.Board{PinCount: pinCount, Applications: apps})
	if err != nil {
		return nil, false, err
	}
	svg, err := codegen.RenderSVG(ctx, codegen.DOT(nl))
	if err != nil {
		return nil, false, err
	}
	_ = r.Cache.Set(ctx, key, svg, cache.TTLNetlist)
	return svg, false, nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
