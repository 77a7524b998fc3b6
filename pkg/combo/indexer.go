package combo

import (
	"slices"
	"sync"

	"github.com/matzehuels/pinboard/pkg/errors"
)

// SkipFunc reports whether a combination should be excluded from the index.
// It must be a pure predicate: it may not modify or retain the slice.
type SkipFunc func(combo []int) bool

// Indexer maps survivor numbers to combinations of a fixed shape.
//
// An Indexer is safe for concurrent use. Its memo only ever grows: survivors
// discovered by one caller are visible to every later caller.
type Indexer struct {
	counts []int
	skip   SkipFunc

	mu        sync.Mutex
	odo       *odometer
	rawNext   int64   // raw product position of the odometer
	accepted  []int64 // raw positions of survivors, in order
	exhausted bool

	total   int // survivor count supplied by Bound
	bounded bool
}

// New creates an indexer over counts with an optional skip predicate.
// The counts slice is copied.
func New(counts []int, skip SkipFunc) *Indexer {
	counts = slices.Clone(counts)
	return &Indexer{
		counts: counts,
		skip:   skip,
		odo:    newOdometer(counts),
	}
}

// Counts returns a copy of the per-slot choice counts.
func (x *Indexer) Counts() []int {
	return slices.Clone(x.counts)
}

// Bound records the number of survivors when the caller can count them
// without enumeration. Get then rejects indices past it without walking the
// product. total must equal what TotalCount would return.
func (x *Indexer) Bound(total int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.total, x.bounded = total, true
}

// Get returns the i-th surviving combination, or false if i is negative or
// not smaller than the number of survivors. The returned slice is a fresh
// copy owned by the caller.
func (x *Indexer) Get(i int) ([]int, bool) {
	if i < 0 {
		return nil, false
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.bounded && i >= x.total {
		return nil, false
	}
	x.fill(i)
	if i >= len(x.accepted) {
		return nil, false
	}
	return decode(x.counts, x.accepted[i]), true
}

// At is the reporting form of Get. A miss becomes a VARIANT_OUT_OF_RANGE
// error carrying the index and the valid range.
func (x *Indexer) At(i int) ([]int, error) {
	if c, ok := x.Get(i); ok {
		return c, nil
	}
	return nil, errors.OutOfRange("combination", i, x.knownTotal())
}

// knownTotal returns the survivor count after a miss. A miss past the end
// has already exhausted an unbounded product; only a negative index on an
// unbounded indexer still needs the walk.
func (x *Indexer) knownTotal() int {
	x.mu.Lock()
	switch {
	case x.bounded:
		defer x.mu.Unlock()
		return x.total
	case x.exhausted:
		defer x.mu.Unlock()
		return len(x.accepted)
	}
	x.mu.Unlock()
	return x.TotalCount()
}

// TotalCount returns the number of surviving combinations. The first call
// enumerates the whole product; later calls are O(1).
func (x *Indexer) TotalCount() int {
	x.mu.Lock()
	defer x.mu.Unlock()

	for !x.exhausted {
		x.step()
	}
	return len(x.accepted)
}

// Discovered returns how many survivors are memoized and how many raw
// combinations have been examined so far.
func (x *Indexer) Discovered() (accepted int, examined int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.accepted), x.rawNext
}

// Cursor returns an independent sequential reader over x.
func (x *Indexer) Cursor() *Cursor {
	return &Cursor{idx: x}
}

// fill advances the odometer until survivor i is known or the product ends.
// Callers hold x.mu.
func (x *Indexer) fill(i int) {
	for len(x.accepted) <= i && !x.exhausted {
		x.step()
	}
}

// step examines one raw combination. Callers hold x.mu.
func (x *Indexer) step() {
	if x.odo.done {
		x.exhausted = true
		return
	}
	if x.skip == nil || !x.skip(x.odo.value()) {
		x.accepted = append(x.accepted, x.rawNext)
	}
	x.rawNext++
	x.odo.advance()
	if x.odo.done {
		x.exhausted = true
	}
}

// Cursor reads survivors of an Indexer in order. A Cursor is not safe for
// concurrent use; create one per goroutine.
type Cursor struct {
	idx *Indexer
	pos int
}

// Next returns the next survivor, or false once the index is exhausted.
func (c *Cursor) Next() ([]int, bool) {
	v, ok := c.idx.Get(c.pos)
	if ok {
		c.pos++
	}
	return v, ok
}

// Position returns the number of survivors already returned by Next.
func (c *Cursor) Position() int {
	return c.pos
}

// Seek moves the cursor so that the next call to Next returns survivor i.
func (c *Cursor) Seek(i int) {
	if i < 0 {
		i = 0
	}
	c.pos = i
}
