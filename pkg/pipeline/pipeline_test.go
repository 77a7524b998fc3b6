package pipeline

import (
	"context"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/cache"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/solver"
	"github.com/matzehuels/pinboard/pkg/variant"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, log.New(io.Discard))
}

func rank(t *testing.T, choices ...int) int {
	t.Helper()
	id, err := variant.Rank(choices)
	if err != nil {
		t.Fatalf("Rank(%v) error = %v", choices, err)
	}
	return id
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{PinCount: 3}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.MaxIterations != solver.DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", o.MaxIterations, solver.DefaultMaxIterations)
	}
	if o.Weights != slide.DefaultWeights {
		t.Errorf("Weights = %v, want defaults", o.Weights)
	}
	if o.MaxComponents != variant.DefaultMaxComponents {
		t.Errorf("MaxComponents = %d", o.MaxComponents)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"pins", Options{PinCount: 0}, errors.ErrCodeInvalidPinCount},
		{"variant", Options{PinCount: 2, Variant: -1}, errors.ErrCodeInvalidInput},
		{"weights", Options{PinCount: 2, Weights: slide.Weights{D0: 1}}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecute_SolvesCanonicalLayout(t *testing.T) {
	r := newTestRunner(t)
	id := rank(t, 4, 0, 0)

	res, err := r.Execute(context.Background(), Options{PinCount: 3, Variant: id})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	d := res.Design
	if d.Status != StatusSolved || d.Index != 0 || d.Distance != 0 {
		t.Errorf("design = %s at index %d distance %v, want solved at 0", d.Status, d.Index, d.Distance)
	}
	if d.Filename != "p3-v"+strconv.Itoa(id)+".circuit.tsx" {
		t.Errorf("Filename = %q", d.Filename)
	}
	if !strings.Contains(d.Code, `name="R1"`) {
		t.Errorf("Code missing R1:\n%s", d.Code)
	}
	if res.CacheInfo.DesignHit {
		t.Error("first run should miss the cache")
	}
}

func TestExecute_Cache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{PinCount: 3, Variant: rank(t, 4, 0, 0)}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.DesignHit {
		t.Error("second run should hit the cache")
	}
	if second.Design.Code != first.Design.Code || second.Design.Status != first.Design.Status {
		t.Error("cached design differs from the computed one")
	}

	opts.Refresh = true
	third, _ := r.Execute(ctx, opts)
	if third.CacheInfo.DesignHit {
		t.Error("Refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.MaxIterations = 5
	fourth, _ := r.Execute(ctx, opts)
	if fourth.CacheInfo.DesignHit {
		t.Error("different solver settings should not share a cache entry")
	}
}

func TestExecute_ObserverBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{PinCount: 3, Variant: rank(t, 4, 0, 0)}
	_, _ = r.Execute(ctx, opts)

	reports := 0
	opts.Observer = func(solver.Progress) { reports++ }
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.DesignHit || reports == 0 {
		t.Errorf("hit=%v reports=%d, want a fresh observed search", res.CacheInfo.DesignHit, reports)
	}
}

func TestExecute_Filter(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{PinCount: 3, Variant: rank(t, 0, 0, 1), Filter: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Design.Status != StatusFiltered || !strings.Contains(res.Design.Reason, "pin 1") {
		t.Errorf("design = %s (%s), want filtered for pin 1", res.Design.Status, res.Design.Reason)
	}

	res, err = r.Execute(ctx, Options{PinCount: 3, Variant: rank(t, 4, 0, 4), Filter: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Design.Status == StatusFiltered || res.Design.Examined == 0 {
		t.Errorf("design with both ends used was filtered: %+v", res.Design)
	}
}

func TestExecute_Unsolved(t *testing.T) {
	r := newTestRunner(t)
	// Power resistors on adjacent pins collide in the canonical layout.
	res, err := r.Execute(context.Background(), Options{PinCount: 3, Variant: rank(t, 0, 1, 1), MaxIterations: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Design.Status != StatusUnsolved || res.Design.Code != "" || res.Design.Examined != 1 {
		t.Errorf("design = %+v, want unsolved after 1 candidate", res.Design)
	}
}

func TestExecute_OutOfRange(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Execute(context.Background(), Options{PinCount: 2, Variant: variant.TotalVariants(2)})
	if !errors.Is(err, errors.ErrCodeVariantOutOfRange) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeVariantOutOfRange)
	}
}

func TestNetlistSVG(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	svg, hit, err := r.NetlistSVG(ctx, 2, 0)
	if err != nil {
		t.Fatalf("NetlistSVG() error = %v", err)
	}
	if hit || !strings.Contains(string(svg), "<svg") {
		t.Errorf("first call: hit=%v svg=%.80s", hit, svg)
	}
	again, hit, err := r.NetlistSVG(ctx, 2, 0)
	if err != nil || !hit || string(again) != string(svg) {
		t.Errorf("second call should return the cached SVG (hit=%v err=%v)", hit, err)
	}
}
