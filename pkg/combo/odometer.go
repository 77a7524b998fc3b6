package combo

import "slices"

// odometer walks a mixed-radix product in lexicographic order.
// The last slot spins fastest; a carry propagates towards slot 0.
type odometer struct {
	counts []int
	cur    []int
	done   bool
}

func newOdometer(counts []int) *odometer {
	o := &odometer{
		counts: counts,
		cur:    make([]int, len(counts)),
	}
	for _, c := range counts {
		if c <= 0 {
			o.done = true
			break
		}
	}
	return o
}

// value returns the combination under the cursor. The slice is owned by the
// odometer and is overwritten by advance.
func (o *odometer) value() []int {
	return o.cur
}

// advance moves to the next combination. It marks the odometer done after the
// last one; an empty counts vector has exactly one (empty) combination.
func (o *odometer) advance() {
	if o.done {
		return
	}
	for i := len(o.cur) - 1; i >= 0; i-- {
		o.cur[i]++
		if o.cur[i] < o.counts[i] {
			return
		}
		o.cur[i] = 0
	}
	o.done = true
}

// decode converts a raw product position into its combination.
func decode(counts []int, raw int64) []int {
	out := make([]int, len(counts))
	for i := len(counts) - 1; i >= 0; i-- {
		c := int64(counts[i])
		out[i] = int(raw % c)
		raw /= c
	}
	return out
}

// ProductSize returns the number of raw combinations for counts, or -1 if it
// does not fit in an int64.
func ProductSize(counts []int) int64 {
	size := int64(1)
	for _, c := range counts {
		if c <= 0 {
			return 0
		}
		if size > (1<<62)/int64(c) {
			return -1
		}
		size *= int64(c)
	}
	return size
}

// Nth returns the n-th combination of counts that skip does not reject,
// enumerating from the beginning every time. skip may be nil.
func Nth(n int, counts []int, skip SkipFunc) ([]int, bool) {
	if n < 0 {
		return nil, false
	}
	o := newOdometer(counts)
	seen := 0
	for !o.done {
		v := o.value()
		if skip == nil || !skip(v) {
			if seen == n {
				return slices.Clone(v), true
			}
			seen++
		}
		o.advance()
	}
	return nil, false
}
