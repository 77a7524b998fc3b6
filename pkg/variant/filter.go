package variant

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/slide"
)

// DefaultMaxComponents is the part budget used by batch generation.
const DefaultMaxComponents = 10

// FilterResult says whether a design passed and, if not, why.
type FilterResult struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

var passed = FilterResult{Passed: true}

// Filter rejects designs that are valid but unwanted in generated output.
type Filter func(apps []Application, pinCount int) FilterResult

// ConnectedEnds rejects designs that leave pin 1 or the last pin unused.
func ConnectedEnds(apps []Application, pinCount int) FilterResult {
	used := make(map[int]bool)
	for _, a := range apps {
		for _, p := range a.Pins {
			used[p] = true
		}
	}
	if !used[1] {
		return FilterResult{Reason: "top pin (pin 1) is not connected"}
	}
	if !used[pinCount] {
		return FilterResult{Reason: fmt.Sprintf("bottom pin (pin %d) is not connected", pinCount)}
	}
	return passed
}

// MaxComponents rejects designs that place more than max parts.
func MaxComponents(max int) Filter {
	return func(apps []Application, pinCount int) FilterResult {
		if n := ComponentCount(apps, pinCount); n > max {
			return FilterResult{Reason: fmt.Sprintf("too many components: %d > %d", n, max)}
		}
		return passed
	}
}

// ComponentCount returns how many parts apps place in the canonical layout.
// Applications with unknown patterns count as zero.
func ComponentCount(apps []Application, pinCount int) int {
	n := 0
	for _, a := range apps {
		p, err := a.Pattern()
		if err != nil {
			continue
		}
		n += len(p.Place(a.Pins, pinCount, slide.Variation{}))
	}
	return n
}

// DefaultFilters is the chain used by batch generation.
func DefaultFilters(maxComponents int) []Filter {
	if maxComponents <= 0 {
		maxComponents = DefaultMaxComponents
	}
	return []Filter{ConnectedEnds, MaxComponents(maxComponents)}
}

// ApplyFilters runs filters in order and returns the first rejection.
func ApplyFilters(apps []Application, pinCount int, filters ...Filter) FilterResult {
	for _, f := range filters {
		if r := f(apps, pinCount); !r.Passed {
			return r
		}
	}
	return passed
}
