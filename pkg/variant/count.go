package variant

import (
	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/pattern"
)

// TotalVariants returns the number of design ids for pinCount without
// enumerating them.
//
// A valid choice vector is built pin by pin from three kinds of step: an
// empty pin, one of SP1 1-pin patterns, or one of SP2 2-pin patterns covering
// the pin and the next one. So
//
//	F(n) = (SP1+1)·F(n-1) + SP2·F(n-2),  F(0) = 1, F(-1) = 0
//
// and the all-empty vector is excluded, giving F(n) - 1.
func TotalVariants(pinCount int) int {
	if pinCount < 1 {
		return 0
	}
	return recurrence(pinCount, pattern.SP1+1, pattern.SP2) - 1
}

// FullyPopulated returns the number of designs in which every pin is covered
// by a pattern: G(n) = SP1·G(n-1) + SP2·G(n-2), G(0) = 1.
func FullyPopulated(pinCount int) int {
	if pinCount < 1 {
		return 0
	}
	return recurrence(pinCount, pattern.SP1, pattern.SP2)
}

func recurrence(n, a, b int) int {
	prev, cur := 0, 1
	for i := 0; i < n; i++ {
		prev, cur = cur, a*cur+b*prev
	}
	return cur
}

// Rank returns the design id of a valid choice vector; the pin count is
// len(choices). It is the inverse of Planner.Choices and runs in
// O(len(choices)·Choices) without enumeration: for every position it counts
// the valid vectors that share the prefix but pick a smaller choice there.
func Rank(choices []int) (int, error) {
	n := len(choices)
	if err := errors.ValidatePinCount(n); err != nil {
		return 0, err
	}
	for i, c := range choices {
		if c < 0 || c >= Choices {
			return 0, errors.New(errors.ErrCodeInvalidInput, "pin %d choice %d outside [0, %d)", i+1, c, Choices)
		}
	}
	if Invalid(choices) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "choices %v do not form a valid design", choices)
	}

	rank := 0
	zeroPrefix := true
	for i, c := range choices {
		for v := 0; v < c; v++ {
			rank += completions(choices[:i], v, n, zeroPrefix)
		}
		if c != 0 {
			zeroPrefix = false
		}
	}
	return rank, nil
}

// Unrank returns the choice vector of design id on a chip with pinCount pins
// without enumeration. It is the inverse of Rank: at every position it skips
// whole blocks of completions until the block holding id is found.
func Unrank(id, pinCount int) ([]int, error) {
	if err := errors.ValidatePinCount(pinCount); err != nil {
		return nil, err
	}
	total := TotalVariants(pinCount)
	if id < 0 || id >= total {
		return nil, errors.OutOfRange("design variant", id, total)
	}

	choices := make([]int, 0, pinCount)
	zeroPrefix := true
	for i := 0; i < pinCount; i++ {
		v := 0
		for ; v < Choices; v++ {
			k := completions(choices, v, pinCount, zeroPrefix)
			if id < k {
				break
			}
			id -= k
		}
		if v == Choices {
			return nil, errors.New(errors.ErrCodeInternal, "unrank ran past pin %d", i+1)
		}
		choices = append(choices, v)
		if v != 0 {
			zeroPrefix = false
		}
	}
	return choices, nil
}

// completions counts valid length-n vectors starting with prefix followed
// by v.
func completions(prefix []int, v, n int, zeroPrefix bool) int {
	i := len(prefix)
	if i > 0 && prefix[i-1] >= pattern.NumOnePin && v != 0 {
		return 0
	}
	var k int
	if v >= pattern.NumOnePin {
		if i == n-1 {
			return 0
		}
		k = recurrence(n-i-2, pattern.SP1+1, pattern.SP2)
	} else {
		k = recurrence(n-i-1, pattern.SP1+1, pattern.SP2)
	}
	if zeroPrefix && v == 0 {
		k-- // the all-empty vector
	}
	return k
}
