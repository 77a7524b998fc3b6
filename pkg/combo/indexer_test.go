package combo

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/pinboard/pkg/errors"
)

func bothEven(c []int) bool {
	return c[0]%2 == 0 && c[1]%2 == 0
}

func joinAll(combos [][]int) string {
	parts := make([]string, len(combos))
	for i, c := range combos {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, " ")
}

func TestIndexer_Lexicographic(t *testing.T) {
	x := New([]int{3, 4}, nil)

	var got [][]int
	for i := 0; i < 12; i++ {
		c, ok := x.Get(i)
		if !ok {
			t.Fatalf("Get(%d) missing", i)
		}
		got = append(got, c)
	}

	want := "[0 0] [0 1] [0 2] [0 3] [1 0] [1 1] [1 2] [1 3] [2 0] [2 1] [2 2] [2 3]"
	if s := joinAll(got); s != want {
		t.Errorf("combos = %s, want %s", s, want)
	}

	if _, ok := x.Get(12); ok {
		t.Error("Get(12) should be out of range")
	}
	if _, ok := x.Get(100); ok {
		t.Error("Get(100) should be out of range")
	}
	if _, ok := x.Get(-1); ok {
		t.Error("Get(-1) should be out of range")
	}
}

func TestIndexer_Skip(t *testing.T) {
	x := New([]int{3, 3}, bothEven)

	var got [][]int
	for i := 0; ; i++ {
		c, ok := x.Get(i)
		if !ok {
			break
		}
		got = append(got, c)
	}

	want := "[0 1] [1 0] [1 1] [1 2] [2 1]"
	if s := joinAll(got); s != want {
		t.Errorf("combos = %s, want %s", s, want)
	}
	if n := x.TotalCount(); n != 5 {
		t.Errorf("TotalCount() = %d, want 5", n)
	}
}

func TestIndexer_TotalCount(t *testing.T) {
	tests := []struct {
		counts []int
		skip   SkipFunc
		want   int
	}{
		{[]int{3, 4}, nil, 12},
		{[]int{3, 3}, bothEven, 5},
		{[]int{2, 3, 2}, nil, 12},
		{[]int{}, nil, 1},
		{[]int{4, 0, 2}, nil, 0},
		{[]int{5}, func(c []int) bool { return true }, 0},
	}

	for _, tt := range tests {
		t.Run(ShapeKey(tt.counts), func(t *testing.T) {
			if got := New(tt.counts, tt.skip).TotalCount(); got != tt.want {
				t.Errorf("TotalCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIndexer_EveryComboOnce(t *testing.T) {
	counts := []int{3, 2, 4}
	skip := func(c []int) bool { return (c[0]+c[1]+c[2])%3 == 0 }
	x := New(counts, skip)

	seen := map[string]bool{}
	var prev []int
	total := x.TotalCount()
	for i := 0; i < total; i++ {
		c, _ := x.Get(i)
		key := fmt.Sprint(c)
		if seen[key] {
			t.Fatalf("combo %v returned twice", c)
		}
		seen[key] = true
		if skip(c) {
			t.Fatalf("combo %v should have been skipped", c)
		}
		if prev != nil && slices.Compare(prev, c) >= 0 {
			t.Fatalf("combos out of order: %v then %v", prev, c)
		}
		prev = c
	}

	// Brute force count of the survivors.
	want := 0
	for a := 0; a < 3; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 4; c++ {
				if !skip([]int{a, b, c}) {
					want++
				}
			}
		}
	}
	if total != want {
		t.Errorf("TotalCount() = %d, want %d", total, want)
	}
}

func TestIndexer_MatchesNth(t *testing.T) {
	counts := []int{2, 3, 2}
	skip := func(c []int) bool { return c[1] == 1 && c[2] == 0 }
	x := New(counts, skip)

	// Access out of order to exercise the memo.
	order := []int{5, 0, 7, 3, 1, 2, 8, 4, 6, 9, 12}
	for _, i := range order {
		got, gotOK := x.Get(i)
		want, wantOK := Nth(i, counts, skip)
		if gotOK != wantOK || !slices.Equal(got, want) {
			t.Errorf("Get(%d) = %v,%v; Nth = %v,%v", i, got, gotOK, want, wantOK)
		}
	}
}

func TestIndexer_ReturnsCopies(t *testing.T) {
	x := New([]int{2, 2}, nil)
	c, _ := x.Get(1)
	c[0] = 99

	again, _ := x.Get(1)
	if !slices.Equal(again, []int{0, 1}) {
		t.Errorf("Get(1) = %v after caller mutation, want [0 1]", again)
	}
}

func TestIndexer_LazyDiscovery(t *testing.T) {
	// 10^8 raw combinations; asking for an early one must not walk them all.
	x := New([]int{10, 10, 10, 10, 10, 10, 10, 10}, nil)
	c, ok := x.Get(42)
	if !ok || !slices.Equal(c, []int{0, 0, 0, 0, 0, 0, 4, 2}) {
		t.Fatalf("Get(42) = %v, %v", c, ok)
	}

	accepted, examined := x.Discovered()
	if accepted != 43 || examined != 43 {
		t.Errorf("Discovered() = %d, %d; want 43, 43", accepted, examined)
	}
}

func TestIndexer_At(t *testing.T) {
	x := New([]int{3, 3}, bothEven)

	if c, err := x.At(0); err != nil || !slices.Equal(c, []int{0, 1}) {
		t.Errorf("At(0) = %v, %v", c, err)
	}

	_, err := x.At(5)
	if !errors.Is(err, errors.ErrCodeVariantOutOfRange) {
		t.Fatalf("At(5) error = %v, want %s", err, errors.ErrCodeVariantOutOfRange)
	}
	if !strings.Contains(err.Error(), "[0, 5)") {
		t.Errorf("At(5) error %q should name the valid range", err)
	}
}

func TestIndexer_Bound(t *testing.T) {
	x := New([]int{3, 3}, bothEven)
	x.Bound(5)

	if c, ok := x.Get(7); ok {
		t.Errorf("Get(7) = %v, true; want miss", c)
	}
	_, err := x.At(9)
	if !errors.Is(err, errors.ErrCodeVariantOutOfRange) {
		t.Fatalf("At(9) error = %v, want %s", err, errors.ErrCodeVariantOutOfRange)
	}
	if !strings.Contains(err.Error(), "[0, 5)") {
		t.Errorf("At(9) error %q should name the valid range", err)
	}
	if accepted, examined := x.Discovered(); accepted != 0 || examined != 0 {
		t.Errorf("Discovered() = %d, %d; want 0, 0 (no walk past the bound)", accepted, examined)
	}

	if c, ok := x.Get(4); !ok || !slices.Equal(c, []int{2, 1}) {
		t.Errorf("Get(4) = %v, %v; want [2 1], true", c, ok)
	}
}

func TestIndexer_AtNegative(t *testing.T) {
	x := New([]int{3, 3}, bothEven)

	_, err := x.At(-1)
	if !errors.Is(err, errors.ErrCodeVariantOutOfRange) {
		t.Fatalf("At(-1) error = %v, want %s", err, errors.ErrCodeVariantOutOfRange)
	}
	if !strings.Contains(err.Error(), "[0, 5)") {
		t.Errorf("At(-1) error %q should name the valid range", err)
	}
}

func TestCursor(t *testing.T) {
	x := New([]int{3, 4}, nil)
	cur := x.Cursor()

	var got [][]int
	for {
		c, ok := cur.Next()
		if !ok {
			break
		}
		got = append(got, c)
	}
	if len(got) != 12 {
		t.Fatalf("cursor returned %d combos, want 12", len(got))
	}
	if cur.Position() != 12 {
		t.Errorf("Position() = %d, want 12", cur.Position())
	}

	cur.Seek(4)
	if c, _ := cur.Next(); !slices.Equal(c, []int{1, 0}) {
		t.Errorf("after Seek(4), Next() = %v, want [1 0]", c)
	}

	// Independent cursors do not disturb each other.
	other := x.Cursor()
	if c, _ := other.Next(); !slices.Equal(c, []int{0, 0}) {
		t.Errorf("fresh cursor Next() = %v, want [0 0]", c)
	}
}

func TestIndexer_ConcurrentGet(t *testing.T) {
	counts := []int{4, 4, 4, 4}
	skip := func(c []int) bool { return c[0] == c[3] }
	x := New(counts, skip)

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < 150; i += 3 {
				got, _ := x.Get(i)
				want, _ := Nth(i, counts, skip)
				if !slices.Equal(got, want) {
					errs <- fmt.Sprintf("Get(%d) = %v, want %v", i, got, want)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestProductSize(t *testing.T) {
	tests := []struct {
		counts []int
		want   int64
	}{
		{[]int{3, 4}, 12},
		{[]int{}, 1},
		{[]int{9, 0}, 0},
		{[]int{1 << 31, 1 << 31, 1 << 31}, -1},
	}
	for _, tt := range tests {
		if got := ProductSize(tt.counts); got != tt.want {
			t.Errorf("ProductSize(%v) = %d, want %d", tt.counts, got, tt.want)
		}
	}
}
