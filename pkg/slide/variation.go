// Package slide defines the perturbation space used to move pattern geometry
// away from its canonical position.
//
// A [Variation] is a per-pin integer triple (d0, d1, d2):
//
//	d0  horizontal offset, dense over [0, 20]
//	d1  vertical offset, zig-zag 0, 1, -1, 2, -2, ... 8, -8
//	d2  secondary spacing, dense over [0, 10]
//
// The zero Variation is the most conventional layout. Patterns declare the
// axes they consume; unused axes stay at zero in every candidate, which keeps
// the per-pin domain far below the raw 21×17×11 points.
//
// [Iterator] yields whole-board candidates (one Variation per pin) in
// non-decreasing weighted distance from the canonical layout.
package slide

import (
	"fmt"
	"slices"
)

// Axis bounds.
const (
	MaxD0 = 20
	MaxD1 = 8
	MaxD2 = 10
)

// NumDims is the number of slide axes.
const NumDims = 3

// Variation is one pin's slide offset.
type Variation [NumDims]int

// Zero reports whether v is the canonical layout.
func (v Variation) Zero() bool {
	return v == Variation{}
}

func (v Variation) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v[0], v[1], v[2])
}

// Dim1Values returns the zig-zag sequence of d1 values.
func Dim1Values() []int {
	vals := make([]int, 0, 2*MaxD1+1)
	vals = append(vals, 0)
	for i := 1; i <= MaxD1; i++ {
		vals = append(vals, i, -i)
	}
	return vals
}

// Values returns the canonical value sequence of axis dim.
func Values(dim int) []int {
	switch dim {
	case 0:
		return denseRange(MaxD0)
	case 1:
		return Dim1Values()
	case 2:
		return denseRange(MaxD2)
	}
	return nil
}

func denseRange(max int) []int {
	vals := make([]int, max+1)
	for i := range vals {
		vals[i] = i
	}
	return vals
}

// ValidDims reports whether every entry of dims names a slide axis and none
// repeats.
func ValidDims(dims []int) bool {
	var seen [NumDims]bool
	for _, d := range dims {
		if d < 0 || d >= NumDims || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

// Domain returns every Variation reachable by moving only the axes in dims,
// in canonical order: d0 outermost, d1 in zig-zag order, d2 innermost.
// Axes not named in dims are fixed at 0, so Domain(nil) is the single zero
// point. Invalid axes are ignored.
func Domain(dims []int) []Variation {
	var axes [NumDims][]int
	for d := range axes {
		if slices.Contains(dims, d) {
			axes[d] = Values(d)
		} else {
			axes[d] = []int{0}
		}
	}

	out := make([]Variation, 0, len(axes[0])*len(axes[1])*len(axes[2]))
	for _, a := range axes[0] {
		for _, b := range axes[1] {
			for _, c := range axes[2] {
				out = append(out, Variation{a, b, c})
			}
		}
	}
	return out
}
