// Package pipeline runs one design through plan → filter → solve → codegen.
//
// The CLI, the HTTP server and the batch generator all go through a
// [Runner], so they agree on defaults, cache keys and the shape of the
// result.
//
// # Usage
//
//	r := pipeline.NewRunner(c, nil, logger)
//	res, err := r.Execute(ctx, pipeline.Options{PinCount: 3, Variant: 91})
//	if err != nil {
//	    return err
//	}
//	if res.Design.Status == pipeline.StatusSolved {
//	    os.WriteFile(res.Design.Filename, []byte(res.Design.Code), 0o644)
//	}
//
// Solved and unsolved outcomes are cached under a key derived from the pin
// count, the variant and the solver settings. Filtered designs are cheap to
// recompute and never cached.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/solver"
	"github.com/matzehuels/pinboard/pkg/variant"
)

// Status is the outcome of one design.
type Status string

const (
	StatusSolved   Status = "solved"
	StatusUnsolved Status = "unsolved"
	StatusFiltered Status = "filtered"
)

// Design is the persisted result for one design variant.
type Design struct {
	PinCount     int                   `json:"pin_count" bson:"pin_count"`
	Variant      int                   `json:"variant" bson:"variant"`
	Status       Status                `json:"status" bson:"status"`
	Reason       string                `json:"reason,omitempty" bson:"reason,omitempty"`
	Applications []variant.Application `json:"applications" bson:"applications"`
	Variations   []slide.Variation     `json:"variations,omitempty" bson:"variations,omitempty"`
	Index        int                   `json:"index" bson:"index"`
	Distance     float64               `json:"distance" bson:"distance"`
	Examined     int                   `json:"examined" bson:"examined"`
	Filename     string                `json:"filename,omitempty" bson:"filename,omitempty"`
	Code         string                `json:"code,omitempty" bson:"code,omitempty"`
}

// Options configures one pipeline run.
type Options struct {
	PinCount int `json:"pin_count"`
	Variant  int `json:"variant"`

	// MaxIterations bounds the solver. Zero means
	// solver.DefaultMaxIterations; a negative value removes the bound.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Weights of the slide distance. The zero value means
	// slide.DefaultWeights.
	Weights slide.Weights `json:"weights,omitzero"`

	// Filter drops designs that leave an end pin unused or place more than
	// MaxComponents parts (variant.DefaultMaxComponents when zero).
	Filter        bool `json:"filter,omitempty"`
	MaxComponents int  `json:"max_components,omitempty"`

	// Refresh skips the cache lookup; the result is still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Observer receives solver progress. Runs with an observer bypass the
	// cache so the observer sees the search.
	Observer solver.Observer `json:"-"`
	Logger   *log.Logger     `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidatePinCount(o.PinCount); err != nil {
		return err
	}
	if err := errors.ValidateDesignID(o.Variant); err != nil {
		return err
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = solver.DefaultMaxIterations
	}
	if o.Weights == (slide.Weights{}) {
		o.Weights = slide.DefaultWeights
	}
	if err := errors.ValidateWeights(o.Weights.D0, o.Weights.D1, o.Weights.D2); err != nil {
		return err
	}
	if o.MaxComponents <= 0 {
		o.MaxComponents = variant.DefaultMaxComponents
	}
	return nil
}

// Result is the output of [Runner.Execute].
type Result struct {
	Design    *Design
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing information.
type Stats struct {
	PlanTime  time.Duration
	SolveTime time.Duration
}

// CacheInfo tracks whether the design came from the cache.
type CacheInfo struct {
	DesignHit bool
}
