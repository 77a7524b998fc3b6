package solver

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/collision"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/geom"
	"github.com/matzehuels/pinboard/pkg/slide"
	"github.com/matzehuels/pinboard/pkg/variant"
)

// DefaultMaxIterations bounds a search when the caller has no preference.
const DefaultMaxIterations = 10000

// Renderer turns one candidate into schematic geometry. It must be a pure
// function of its arguments.
type Renderer interface {
	Render(pinCount int, apps []variant.Application, vs []slide.Variation) ([]geom.Element, error)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(pinCount int, apps []variant.Application, vs []slide.Variation) ([]geom.Element, error)

// Render calls f.
func (f RenderFunc) Render(pinCount int, apps []variant.Application, vs []slide.Variation) ([]geom.Element, error) {
	return f(pinCount, apps, vs)
}

// Progress is reported after every rendered candidate. The final report of
// a successful search repeats the winning candidate with Complete set.
type Progress struct {
	Index      int               `json:"index"`
	Candidate  []slide.Variation `json:"candidate"`
	Distance   float64           `json:"distance"`
	Collisions collision.Info    `json:"collisions"`
	Complete   bool              `json:"complete"`
}

// Observer receives progress reports on the solver's goroutine. It should
// return quickly.
type Observer func(Progress)

// Options configures a Solver.
type Options struct {
	PinCount     int
	Applications []variant.Application

	// UsedDimensions holds the slide axes per pin. When nil it is derived from
	// Applications.
	UsedDimensions [][]int

	// MaxIterations caps the number of candidates examined, counting
	// candidates whose render failed. Zero examines nothing; a negative value
	// leaves only the distance ceiling.
	MaxIterations int

	// Weights for the distance metric. The zero value means
	// slide.DefaultWeights.
	Weights slide.Weights

	Renderer Renderer
	Observer Observer
	Logger   *log.Logger
}

// DefaultOptions returns options for a design with the default iteration
// bound and weights. Renderer must still be set.
func DefaultOptions(pinCount int, apps []variant.Application) Options {
	return Options{
		PinCount:      pinCount,
		Applications:  apps,
		MaxIterations: DefaultMaxIterations,
		Weights:       slide.DefaultWeights,
	}
}

func (o *Options) normalize() error {
	if err := errors.ValidatePinCount(o.PinCount); err != nil {
		return err
	}
	if o.Renderer == nil {
		return errors.New(errors.ErrCodeInvalidInput, "solver needs a renderer")
	}
	if o.UsedDimensions == nil {
		dims, err := variant.UsedDimensions(o.Applications, o.PinCount)
		if err != nil {
			return err
		}
		o.UsedDimensions = dims
	}
	if len(o.UsedDimensions) != o.PinCount {
		return errors.New(errors.ErrCodeInvalidInput, "got used dimensions for %d pins, want %d", len(o.UsedDimensions), o.PinCount)
	}
	for i, dims := range o.UsedDimensions {
		if !slide.ValidDims(dims) {
			return errors.New(errors.ErrCodeInvalidInput, "pin %d: invalid slide axes %v", i+1, dims)
		}
	}
	if o.Weights == (slide.Weights{}) {
		o.Weights = slide.DefaultWeights
	}
	if err := errors.ValidateWeights(o.Weights.D0, o.Weights.D1, o.Weights.D2); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}
