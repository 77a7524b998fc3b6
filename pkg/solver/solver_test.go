package solver

import (
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/board"
	"github.com/matzehuels/pinboard/pkg/collision"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/pattern"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/variant"
)

var quiet = log.New(io.Discard)

func signalAt(pin int) variant.Application {
	return variant.Application{TargetPin: pin, Kind: pattern.OnePin, Variant: 4, Pins: []int{pin}}
}

func powerAt(pin int) variant.Application {
	return variant.Application{TargetPin: pin, Kind: pattern.OnePin, Variant: 1, Pins: []int{pin}}
}

// overlapping renders two boxes that always collide.
var overlapping = RenderFunc(func(int, []variant.Application, []slide.Variation) ([]geom.Element, error) {
	return []geom.Element{
		geom.Component{ID: "a", Symbol: geom.SymbolChip, Width: 1, Height: 1},
		geom.Component{ID: "b", Symbol: geom.SymbolChip, Width: 1, Height: 1},
	}, nil
})

// clean renders a single box.
var clean = RenderFunc(func(int, []variant.Application, []slide.Variation) ([]geom.Element, error) {
	return []geom.Element{geom.Component{ID: "a", Symbol: geom.SymbolChip, Width: 1, Height: 1}}, nil
})

func newSolver(t *testing.T, opts Options) *Solver {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quiet
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestSolve_CanonicalLayout(t *testing.T) {
	var reports []Progress
	s := newSolver(t, Options{
		PinCount:      3,
		Applications:  []variant.Application{signalAt(1)},
		MaxIterations: DefaultMaxIterations,
		Renderer:      board.Renderer{},
		Observer:      func(p Progress) { reports = append(reports, p) },
	})

	sol, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if sol == nil {
		t.Fatal("Solve() found no solution")
	}
	if sol.Index != 0 || sol.Distance != 0 {
		t.Errorf("solution index %d distance %v, want 0, 0", sol.Index, sol.Distance)
	}
	for i, v := range sol.Variations {
		if !v.Zero() {
			t.Errorf("pin %d variation = %v, want zero", i+1, v)
		}
	}
	if s.State() != Solved {
		t.Errorf("State() = %v, want solved", s.State())
	}

	if len(reports) != 2 || reports[0].Complete || !reports[1].Complete {
		t.Errorf("reports = %+v, want one candidate and one completion", reports)
	}
}

func TestSolve_FindsCollisionFreeLayout(t *testing.T) {
	apps := []variant.Application{powerAt(2), powerAt(3)}

	canonical, _ := board.Render(board.Board{PinCount: 3, Applications: apps})
	if !collision.DetectElements(canonical).HasCollisions {
		t.Fatal("test design should collide in its canonical layout")
	}

	var last float64
	s := newSolver(t, Options{
		PinCount:      3,
		Applications:  apps,
		MaxIterations: DefaultMaxIterations,
		Renderer:      board.Renderer{},
		Observer: func(p Progress) {
			if p.Distance < last {
				t.Errorf("distance decreased: %v after %v", p.Distance, last)
			}
			last = p.Distance
		},
	})

	sol, err := s.Solve(context.Background())
	if err != nil || sol == nil {
		t.Fatalf("Solve() = %v, %v; want a solution", sol, err)
	}
	if sol.Index == 0 || sol.Distance <= 0 || sol.Distance > 3+1e-9 {
		t.Errorf("solution index %d distance %v, want a small non-zero move", sol.Index, sol.Distance)
	}
	if !sol.Variations[0].Zero() {
		t.Errorf("pin 1 has no pattern but moved to %v", sol.Variations[0])
	}

	els, err := board.Render(board.Board{PinCount: 3, Applications: apps, Variations: sol.Variations})
	if err != nil {
		t.Fatalf("Render(solution) error = %v", err)
	}
	if info := collision.DetectElements(els); info.HasCollisions {
		t.Errorf("accepted layout collides: %v", info.Pairs)
	}
}

func TestSolve_Termination(t *testing.T) {
	tests := []struct {
		name     string
		maxIter  int
		dims     [][]int
		render   Renderer
		examined int
	}{
		{"zero iterations", 0, [][]int{{0, 1}, nil}, clean, 0},
		{"always colliding", 25, [][]int{{0, 1}, {0, 1, 2}}, overlapping, 25},
		{"iterator exhausted", -1, [][]int{nil, nil}, overlapping, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			s := newSolver(t, Options{
				PinCount:       2,
				UsedDimensions: tt.dims,
				MaxIterations:  tt.maxIter,
				Renderer:       tt.render,
				Observer:       func(Progress) { calls++ },
			})

			sol, err := s.Solve(context.Background())
			if err != nil || sol != nil {
				t.Fatalf("Solve() = %v, %v; want no solution", sol, err)
			}
			if s.State() != Exhausted {
				t.Errorf("State() = %v, want exhausted", s.State())
			}
			if s.Examined() != tt.examined || calls != tt.examined {
				t.Errorf("examined %d, reports %d; want %d", s.Examined(), calls, tt.examined)
			}
		})
	}
}

func TestSolve_RenderFailureSkipsCandidate(t *testing.T) {
	calls := 0
	flaky := RenderFunc(func(n int, apps []variant.Application, vs []slide.Variation) ([]geom.Element, error) {
		calls++
		if calls <= 3 {
			return nil, stderrors.New("engine hiccup")
		}
		return clean(n, apps, vs)
	})

	var reports []Progress
	s := newSolver(t, Options{
		PinCount:       1,
		UsedDimensions: [][]int{{0}},
		MaxIterations:  10,
		Renderer:       flaky,
		Observer:       func(p Progress) { reports = append(reports, p) },
	})

	sol, err := s.Solve(context.Background())
	if err != nil || sol == nil {
		t.Fatalf("Solve() = %v, %v", sol, err)
	}
	if sol.Index != 3 {
		t.Errorf("solution index = %d, want 3", sol.Index)
	}
	if s.Skipped() != 3 {
		t.Errorf("Skipped() = %d, want 3", s.Skipped())
	}
	if len(reports) != 2 || reports[0].Index != 3 {
		t.Errorf("reports = %+v, want only the successful candidate", reports)
	}
}

func TestSolve_RenderFailuresCountTowardLimit(t *testing.T) {
	broken := RenderFunc(func(int, []variant.Application, []slide.Variation) ([]geom.Element, error) {
		return nil, errors.New(errors.ErrCodeRenderFailed, "nope")
	})
	s := newSolver(t, Options{PinCount: 1, UsedDimensions: [][]int{{0}}, MaxIterations: 7, Renderer: broken})

	sol, err := s.Solve(context.Background())
	if err != nil || sol != nil {
		t.Fatalf("Solve() = %v, %v; want no solution", sol, err)
	}
	if s.Examined() != 7 || s.Skipped() != 7 {
		t.Errorf("examined %d skipped %d, want 7 and 7", s.Examined(), s.Skipped())
	}
}

func TestSolve_InvalidPatternIsFatal(t *testing.T) {
	s := newSolver(t, Options{
		PinCount:       2,
		Applications:   []variant.Application{{TargetPin: 1, Kind: pattern.OnePin, Variant: 99, Pins: []int{1}}},
		UsedDimensions: [][]int{{0}, nil},
		MaxIterations:  100,
		Renderer:       board.Renderer{},
	})

	_, err := s.Solve(context.Background())
	if !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Fatalf("Solve() error = %v, want %s", err, errors.ErrCodeInvalidPattern)
	}
	if s.State() != Failed || s.Examined() != 1 {
		t.Errorf("state %v after %d candidates, want failed after 1", s.State(), s.Examined())
	}
}

func TestSolver_Busy(t *testing.T) {
	s := newSolver(t, Options{PinCount: 1, MaxIterations: 5, Renderer: overlapping})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(); !errors.Is(err, errors.ErrCodeSolverBusy) {
		t.Errorf("second Start() error = %v, want %s", err, errors.ErrCodeSolverBusy)
	}
	if _, err := s.Solve(context.Background()); !errors.Is(err, errors.ErrCodeSolverBusy) {
		t.Errorf("Solve() on running solver error = %v, want %s", err, errors.ErrCodeSolverBusy)
	}

	for !s.State().Done() {
		if _, err := s.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}
	if err := s.Start(); err != nil {
		t.Errorf("Start() after finishing error = %v", err)
	}
}

func TestSolver_Stop(t *testing.T) {
	var s *Solver
	var reports []Progress
	s = newSolver(t, Options{
		PinCount:       2,
		UsedDimensions: [][]int{{0, 1}, {0}},
		MaxIterations:  1000,
		Renderer:       overlapping,
		Observer: func(p Progress) {
			reports = append(reports, p)
			if p.Index == 5 {
				s.Stop()
			}
		},
	})

	sol, err := s.Solve(context.Background())
	if err != nil || sol != nil {
		t.Fatalf("Solve() = %v, %v; want nil, nil", sol, err)
	}
	if s.State() != Stopped {
		t.Errorf("State() = %v, want stopped", s.State())
	}
	if len(reports) != 6 {
		t.Errorf("got %d reports, want 6 (none after stop)", len(reports))
	}
}

func TestSolver_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newSolver(t, Options{
		PinCount:       1,
		UsedDimensions: [][]int{{0, 1, 2}},
		MaxIterations:  -1,
		Renderer:       overlapping,
		Observer: func(p Progress) {
			if p.Index == 2 {
				cancel()
			}
		},
	})

	_, err := s.Solve(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Solve() error = %v, want context.Canceled", err)
	}
	if s.State() != Stopped || s.Examined() != 3 {
		t.Errorf("state %v after %d candidates, want stopped after 3", s.State(), s.Examined())
	}
}

func TestSolver_StepByStep(t *testing.T) {
	s := newSolver(t, Options{PinCount: 1, UsedDimensions: [][]int{{0}}, MaxIterations: 3, Renderer: overlapping})

	if st, _ := s.Step(); st != Idle {
		t.Errorf("Step() before Start = %v, want idle", st)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	var states []State
	for i := 0; i < 5; i++ {
		st, _ := s.Step()
		states = append(states, st)
	}
	want := []State{Running, Running, Running, Exhausted, Exhausted}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("tick %d state = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no renderer", Options{PinCount: 2}, errors.ErrCodeInvalidInput},
		{"bad pin count", Options{PinCount: 0, Renderer: clean}, errors.ErrCodeInvalidPinCount},
		{"dims length", Options{PinCount: 2, UsedDimensions: [][]int{nil}, Renderer: clean}, errors.ErrCodeInvalidInput},
		{"bad axis", Options{PinCount: 1, UsedDimensions: [][]int{{4}}, Renderer: clean}, errors.ErrCodeInvalidInput},
		{"bad weights", Options{PinCount: 1, Weights: slide.Weights{D0: -1, D1: 1, D2: 1}, Renderer: clean}, errors.ErrCodeInvalidConfig},
		{"unknown pattern", Options{PinCount: 1, Applications: []variant.Application{{TargetPin: 1, Kind: pattern.TwoPin, Variant: 7}}, Renderer: clean}, errors.ErrCodeInvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if Solved.String() != "solved" || State(42).String() != "state(42)" {
		t.Errorf("unexpected state names %q, %q", Solved, State(42))
	}
	if Running.Done() || !Stopped.Done() {
		t.Error("Done() misclassifies states")
	}
}
