package slide

import (
	"cmp"
	"math"
	"slices"
)

// Search bounds for iterative deepening.
const (
	Step        = 0.1
	MaxDistance = 50.0
)

// epsilon absorbs rounding when comparing sums against thresholds.
const epsilon = 1e-9

// point is one entry of a pin's domain.
type point struct {
	v    Variation
	dist float64
	rank int // position in canonical Domain order
}

type candidate struct {
	idx  []int
	dist float64
}

// Iterator yields whole-board slide candidates in non-decreasing total
// distance using iterative deepening: the acceptance threshold grows by Step
// from 0 up to MaxDistance, and each round yields exactly the candidates whose
// total falls in (previous threshold, threshold].
//
// Within a round candidates are ordered by total distance, then by canonical
// rank compared pin by pin (d0 outer, d1 middle, d2 inner). Every candidate
// within MaxDistance is yielded exactly once.
//
// Enumeration is an explicit odometer over pins. Each pin's domain is sorted by
// distance, so once a prefix sum exceeds the threshold the rest of that pin's
// domain is skipped.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	weights Weights
	domains [][]point

	round int     // next threshold is round*Step
	lower float64 // exclusive lower bound of the next round
	batch []candidate
	pos   int

	yielded int
	done    bool
}

// NewIterator creates an iterator for boards whose pin i may move along the
// axes in usedDims[i]. Pins with no axes stay at the zero Variation.
func NewIterator(usedDims [][]int, w Weights) *Iterator {
	if !w.Valid() {
		w = DefaultWeights
	}
	it := &Iterator{
		weights: w,
		domains: make([][]point, len(usedDims)),
		lower:   math.Inf(-1),
	}
	for i, dims := range usedDims {
		dom := Domain(dims)
		pts := make([]point, len(dom))
		for r, v := range dom {
			pts[r] = point{v: v, dist: w.Distance(v), rank: r}
		}
		slices.SortStableFunc(pts, func(a, b point) int {
			return cmp.Compare(a.dist, b.dist)
		})
		it.domains[i] = pts
	}
	return it
}

// Next returns the next candidate and its total distance. It returns false
// once every candidate within MaxDistance has been yielded.
func (it *Iterator) Next() ([]Variation, float64, bool) {
	for it.pos >= len(it.batch) {
		if !it.deepen() {
			return nil, 0, false
		}
	}
	c := it.batch[it.pos]
	it.pos++
	it.yielded++

	vs := make([]Variation, len(c.idx))
	for p, i := range c.idx {
		vs[p] = it.domains[p][i].v
	}
	return vs, c.dist, true
}

// Yielded returns how many candidates Next has returned.
func (it *Iterator) Yielded() int {
	return it.yielded
}

// Threshold returns the distance bound of the current round.
func (it *Iterator) Threshold() float64 {
	if it.round == 0 {
		return 0
	}
	return float64(it.round-1) * Step
}

// Done reports whether the distance ceiling has been reached.
func (it *Iterator) Done() bool {
	return it.done
}

// deepen loads the next round. It returns false past the ceiling.
func (it *Iterator) deepen() bool {
	if it.done {
		return false
	}
	maxRounds := int(math.Round(MaxDistance / Step))
	if it.round > maxRounds {
		it.done = true
		it.batch, it.pos = nil, 0
		return false
	}

	upper := float64(it.round) * Step
	it.batch = it.collect(it.lower, upper)
	it.pos = 0
	it.lower = upper
	it.round++
	return true
}

// collect gathers candidates with lower < total <= upper, sorted.
func (it *Iterator) collect(lower, upper float64) []candidate {
	n := len(it.domains)
	idx := make([]int, n)
	prefix := make([]float64, n+1)
	var out []candidate

	level := 0
	for level >= 0 {
		if level == n {
			if total := prefix[n]; total > lower+epsilon {
				out = append(out, candidate{idx: slices.Clone(idx), dist: total})
			}
			level--
			if level >= 0 {
				idx[level]++
			}
			continue
		}

		dom := it.domains[level]
		if idx[level] >= len(dom) || prefix[level]+dom[idx[level]].dist > upper+epsilon {
			level--
			if level >= 0 {
				idx[level]++
			}
			continue
		}
		prefix[level+1] = prefix[level] + dom[idx[level]].dist
		level++
		if level < n {
			idx[level] = 0
		}
	}

	slices.SortFunc(out, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		for p := range a.idx {
			if c := cmp.Compare(it.domains[p][a.idx[p]].rank, it.domains[p][b.idx[p]].rank); c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}
