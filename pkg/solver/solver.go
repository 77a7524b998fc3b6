// Package solver searches slide variations for a layout without overlapping
// footprints.
//
// A [Solver] walks a [slide.Iterator] in non-decreasing weighted distance
// from the canonical layout. Each candidate is rendered, its bounding boxes
// are checked with [collision.Detect], and the first collision-free candidate
// wins. Because the zero offset is always first, a design whose canonical
// layout is clean is returned unchanged.
//
// # Ticks
//
// The search is cooperative: [Solver.Step] examines exactly one candidate and
// returns, so a host can interleave rendering, UI updates, or cancellation
// between candidates. [Solver.Solve] is the blocking loop over Step for hosts
// that do not need that control.
//
// # States
//
//	Idle → Running → Solved | Exhausted | Stopped | Failed
//
// Exhausted means the iteration bound or the distance ceiling was reached
// without a solution; it is a normal outcome, not an error. Failed is reserved
// for INVALID_PATTERN errors from the renderer, which mean the design itself
// is broken. Any other render error skips the candidate.
//
// A Solver may be restarted once it has left Running. It must not be shared
// between concurrent searches; calling Start on a running solver fails with
// SOLVER_BUSY.
package solver

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/pinboard/pkg/collision"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/observability"
	"github.com/matzehuels/pinboard/pkg/slide"
)

// State is the lifecycle state of a Solver.
type State int

const (
	Idle State = iota
	Running
	Solved
	Exhausted
	Stopped
	Failed
)

var stateNames = [...]string{"idle", "running", "solved", "exhausted", "stopped", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Done reports whether s is a terminal state.
func (s State) Done() bool {
	return s >= Solved
}

// Solution is an accepted candidate.
type Solution struct {
	Variations []slide.Variation `json:"variations"`
	Index      int               `json:"index"`
	Distance   float64           `json:"distance"`
	Collisions collision.Info    `json:"collisions"`
}

// Solver is a resumable slide-variation search.
type Solver struct {
	opts Options

	mu       sync.Mutex
	state    State
	it       *slide.Iterator
	examined int
	skipped  int
	solution *Solution
	err      error
	started  time.Time

	stop atomic.Bool
}

// New validates opts and returns an idle solver.
func New(opts Options) (*Solver, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	return &Solver{opts: opts}, nil
}

// Start resets the search and moves the solver to Running.
func (s *Solver) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return errors.New(errors.ErrCodeSolverBusy, "solver is already running")
	}
	s.it = slide.NewIterator(s.opts.UsedDimensions, s.opts.Weights)
	s.examined, s.skipped = 0, 0
	s.solution, s.err = nil, nil
	s.started = time.Now()
	s.stop.Store(false)
	s.state = Running

	observability.Solver().OnSolveStart(context.Background(), s.opts.PinCount, len(s.opts.Applications))
	s.opts.Logger.Debug("solve started",
		"pins", s.opts.PinCount,
		"patterns", len(s.opts.Applications),
		"max_iterations", s.opts.MaxIterations)
	return nil
}

// Stop asks a running search to halt before its next candidate. It is safe
// to call from any goroutine.
func (s *Solver) Stop() {
	s.stop.Store(true)
}

// Step examines one candidate and returns the resulting state. Calling Step
// on a solver that is not running returns its state unchanged.
func (s *Solver) Step() (State, error) {
	reports, state, err := s.tick()
	if s.opts.Observer != nil {
		for _, p := range reports {
			s.opts.Observer(p)
		}
	}
	return state, err
}

// tick does the work of Step under the lock and returns the progress reports
// to deliver once the lock is released.
func (s *Solver) tick() ([]Progress, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		return nil, s.state, s.err
	}
	if s.stop.Load() {
		s.finish(Stopped, nil)
		return nil, s.state, nil
	}
	if s.opts.MaxIterations >= 0 && s.examined >= s.opts.MaxIterations {
		s.finish(Exhausted, nil)
		return nil, s.state, nil
	}

	vs, dist, ok := s.it.Next()
	if !ok {
		s.finish(Exhausted, nil)
		return nil, s.state, nil
	}
	index := s.examined
	s.examined++

	elements, err := s.opts.Renderer.Render(s.opts.PinCount, s.opts.Applications, vs)
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidPattern) {
			s.finish(Failed, err)
			return nil, s.state, err
		}
		s.skipped++
		s.opts.Logger.Warn("render failed, skipping candidate", "index", index, "err", err)
		return nil, s.state, nil
	}

	info := collision.DetectElements(elements)
	observability.Solver().OnCandidate(context.Background(), index, dist, info.Count)
	reports := []Progress{{
		Index:      index,
		Candidate:  vs,
		Distance:   dist,
		Collisions: info,
	}}

	if !info.HasCollisions {
		s.solution = &Solution{Variations: vs, Index: index, Distance: dist, Collisions: info}
		s.finish(Solved, nil)
		final := reports[0]
		final.Complete = true
		reports = append(reports, final)
	}
	return reports, s.state, nil
}

// finish records a terminal state. Callers hold s.mu.
func (s *Solver) finish(state State, err error) {
	s.state = state
	s.err = err
	elapsed := time.Since(s.started)
	observability.Solver().OnSolveComplete(context.Background(), state.String(), s.examined, elapsed, err)

	switch state {
	case Solved:
		s.opts.Logger.Debug("solve finished", "state", state, "index", s.solution.Index,
			"distance", fmt.Sprintf("%.2f", s.solution.Distance), "examined", s.examined, "elapsed", elapsed.Truncate(time.Millisecond))
	case Failed:
		s.opts.Logger.Error("solve failed", "examined", s.examined, "err", err)
	default:
		s.opts.Logger.Debug("solve finished", "state", state, "examined", s.examined, "skipped", s.skipped)
	}
}

// Solve runs a whole search and returns the solution, or nil when none was
// found. Cancelling ctx stops the search between candidates and returns
// ctx.Err(); a Stop call returns (nil, nil) with the solver in Stopped.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	if err := s.Start(); err != nil {
		return nil, err
	}
	for {
		if ctx.Err() != nil {
			s.Stop()
			s.Step()
			return nil, ctx.Err()
		}
		state, err := s.Step()
		if err != nil {
			return nil, err
		}
		if state.Done() {
			return s.Solution(), nil
		}
	}
}

// State returns the current state.
func (s *Solver) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Solution returns the accepted candidate, or nil unless the state is Solved.
func (s *Solver) Solution() *Solution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solution
}

// Examined returns how many candidates the current search has taken from the
// iterator, including skipped ones.
func (s *Solver) Examined() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.examined
}

// Skipped returns how many candidates were skipped after a render error.
func (s *Solver) Skipped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Err returns the error that moved the solver to Failed.
func (s *Solver) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
