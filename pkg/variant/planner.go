// Package variant maps design ids to concrete pattern placements.
//
// Every pin of a chip gets one choice from the same range:
//
//	0                          no pattern
//	1 .. NumOnePin-1           1-pin pattern with that variant
//	NumOnePin .. Choices-1     2-pin pattern with variant choice-NumOnePin
//
// A combination is invalid when all choices are 0, when a 2-pin choice sits on
// the last pin, or when the pin after a 2-pin choice is not 0 (the 2-pin
// pattern claims it). The valid combinations in lexicographic order, pin 1
// most significant, are the design ids 0, 1, 2, ... for that pin count.
//
// [Planner.Plan] checks the id against [TotalVariants] first, then resolves
// it through a [combo.Indexer] taken from a shared [combo.Cache], so
// enumeration work done for one id is reused for every later id with the same
// pin count. Above IndexedPins pins the product is too large to walk and ids
// are unranked from the closed-form counts instead; both give the same
// vector for every id.
package variant

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pinboard/pkg/combo"
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/pattern"
)

// Choices is the size of the per-pin choice range.
const Choices = pattern.NumOnePin + pattern.NumTwoPin

// IndexedPins is the largest pin count resolved through the lazy indexer.
// Walking 9^8 raw combinations takes well under a second.
const IndexedPins = 8

// Application is one placed pattern. Pins lists the chip pins it claims,
// TargetPin first.
type Application struct {
	TargetPin int          `json:"target_pin" bson:"target_pin"`
	Kind      pattern.Kind `json:"kind" bson:"kind"`
	Variant   int          `json:"variant" bson:"variant"`
	Pins      []int        `json:"pins" bson:"pins"`
}

// Pattern returns the catalog entry this application refers to.
func (a Application) Pattern() (pattern.Pattern, error) {
	return pattern.Lookup(a.Kind, a.Variant)
}

func (a Application) String() string {
	name := "?"
	if p, err := a.Pattern(); err == nil {
		name = p.Name()
	}
	pins := make([]string, len(a.Pins))
	for i, p := range a.Pins {
		pins[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s %s@%s", a.Kind, name, strings.Join(pins, "+"))
}

// DecodeChoice splits a per-pin choice into a kind and variant. Choice 0
// decodes to the null 1-pin pattern.
func DecodeChoice(choice int) (pattern.Kind, int, error) {
	switch {
	case choice >= 0 && choice < pattern.NumOnePin:
		return pattern.OnePin, choice, nil
	case choice >= pattern.NumOnePin && choice < Choices:
		return pattern.TwoPin, choice - pattern.NumOnePin, nil
	}
	return 0, 0, errors.New(errors.ErrCodeInvalidPattern, "choice %d outside [0, %d)", choice, Choices)
}

// EncodeChoice is the inverse of DecodeChoice.
func EncodeChoice(kind pattern.Kind, v int) (int, error) {
	if _, err := pattern.Lookup(kind, v); err != nil {
		return 0, err
	}
	if kind == pattern.TwoPin {
		return pattern.NumOnePin + v, nil
	}
	return v, nil
}

// Invalid is the skip predicate over a per-pin choice vector.
func Invalid(choices []int) bool {
	empty := true
	for i, c := range choices {
		if c != 0 {
			empty = false
		}
		if c >= pattern.NumOnePin {
			if i == len(choices)-1 || choices[i+1] != 0 {
				return true
			}
		}
	}
	return empty
}

// Resolve walks choices left to right and returns the placed patterns.
// Pins claimed by a preceding 2-pin pattern are skipped.
func Resolve(choices []int) ([]Application, error) {
	var apps []Application
	for i := 0; i < len(choices); i++ {
		if choices[i] == 0 {
			continue
		}
		kind, v, err := DecodeChoice(choices[i])
		if err != nil {
			return nil, err
		}
		pin := i + 1
		switch kind {
		case pattern.OnePin:
			apps = append(apps, Application{TargetPin: pin, Kind: kind, Variant: v, Pins: []int{pin}})
		case pattern.TwoPin:
			if i == len(choices)-1 {
				return nil, errors.New(errors.ErrCodeInvalidPattern, "2-pin pattern on last pin %d", pin)
			}
			apps = append(apps, Application{TargetPin: pin, Kind: kind, Variant: v, Pins: []int{pin, pin + 1}})
			i++
		}
	}
	return apps, nil
}

// Planner resolves design ids for any pin count.
type Planner struct {
	cache *combo.Cache
}

// NewPlanner creates a planner backed by cache. A nil cache gets a private
// one.
func NewPlanner(cache *combo.Cache) *Planner {
	if cache == nil {
		cache = combo.NewCache()
	}
	return &Planner{cache: cache}
}

// Default shares combo.DefaultCache.
var Default = NewPlanner(combo.DefaultCache)

// Plan returns the pattern placements of design id on a chip with pinCount
// pins. An id outside [0, TotalVariants(pinCount)) is a VARIANT_OUT_OF_RANGE
// error naming the id and the valid range.
func Plan(id, pinCount int) ([]Application, error) {
	return Default.Plan(id, pinCount)
}

// Plan is the Planner form of the package-level Plan.
func (p *Planner) Plan(id, pinCount int) ([]Application, error) {
	choices, err := p.Choices(id, pinCount)
	if err != nil {
		return nil, err
	}
	return Resolve(choices)
}

// Choices returns the raw per-pin choice vector of design id.
func (p *Planner) Choices(id, pinCount int) ([]int, error) {
	if err := errors.ValidatePinCount(pinCount); err != nil {
		return nil, err
	}
	total := TotalVariants(pinCount)
	if id < 0 || id >= total {
		return nil, errors.OutOfRange("design variant", id, total)
	}
	if pinCount > IndexedPins {
		return Unrank(id, pinCount)
	}
	c, ok := p.indexer(pinCount).Get(id)
	if !ok {
		return nil, errors.OutOfRange("design variant", id, total)
	}
	return c, nil
}

// Count enumerates every design for pinCount and returns how many there are.
// It agrees with TotalVariants; use that when enumeration is not wanted.
func (p *Planner) Count(pinCount int) (int, error) {
	if err := errors.ValidatePinCount(pinCount); err != nil {
		return 0, err
	}
	return p.indexer(pinCount).TotalCount(), nil
}

func (p *Planner) indexer(pinCount int) *combo.Indexer {
	counts := make([]int, pinCount)
	for i := range counts {
		counts[i] = Choices
	}
	x := p.cache.Indexer(counts, Invalid)
	x.Bound(TotalVariants(pinCount))
	return x
}

// UsedDimensions returns, per pin, the slide axes of the pattern targeting
// that pin. Pins with no pattern, and the second pin of a 2-pin pattern,
// get none.
func UsedDimensions(apps []Application, pinCount int) ([][]int, error) {
	dims := make([][]int, pinCount)
	for _, a := range apps {
		if a.TargetPin < 1 || a.TargetPin > pinCount {
			return nil, errors.New(errors.ErrCodeInvalidInput, "target pin %d outside [1, %d]", a.TargetPin, pinCount)
		}
		p, err := a.Pattern()
		if err != nil {
			return nil, err
		}
		dims[a.TargetPin-1] = p.UsedDimensions()
	}
	return dims, nil
}
