// Package collision finds overlapping bounding boxes with an R-tree.
//
// [Detect] loads every box into a github.com/tidwall/rtree index and queries it
// once per box, so a board of n boxes costs O(n log n) rather than the O(n²)
// of pairwise checks. A box never collides with itself or with another box of
// the same non-empty owner (a part and its own designator, for example).
// Touching edges count as overlap.
package collision

import (
	"fmt"
	"slices"

	"github.com/tidwall/rtree"

	"github.com/matzehuels/pinboard/pkg/geom"
)

// Pair is one colliding pair of boxes. A is the box that appears first in the
// input.
type Pair struct {
	A geom.Box `json:"a"`
	B geom.Box `json:"b"`
}

func (p Pair) String() string {
	return fmt.Sprintf("%s×%s", p.A.ElementID, p.B.ElementID)
}

// Info summarizes the collisions of one candidate layout.
type Info struct {
	HasCollisions bool   `json:"has_collisions"`
	Count         int    `json:"count"`
	Pairs         []Pair `json:"pairs,omitempty"`
}

// Detect reports every unordered pair of overlapping boxes. Pairs are ordered
// by the input position of their first box, then of their second.
func Detect(boxes []geom.Box) Info {
	if len(boxes) < 2 {
		return Info{}
	}

	var tr rtree.RTreeG[int]
	for i, b := range boxes {
		tr.Insert([2]float64{b.MinX, b.MinY}, [2]float64{b.MaxX, b.MaxY}, i)
	}

	type key struct{ a, b int }
	seen := make(map[key]struct{})
	var pairs []Pair

	for i, b := range boxes {
		var hits []int
		tr.Search([2]float64{b.MinX, b.MinY}, [2]float64{b.MaxX, b.MaxY},
			func(_, _ [2]float64, j int) bool {
				if j != i && !b.SameOwner(boxes[j]) {
					hits = append(hits, j)
				}
				return true
			})
		slices.Sort(hits)

		for _, j := range hits {
			k := key{min(i, j), max(i, j)}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			pairs = append(pairs, Pair{A: boxes[k.a], B: boxes[k.b]})
		}
	}

	return Info{
		HasCollisions: len(pairs) > 0,
		Count:         len(pairs),
		Pairs:         pairs,
	}
}

// DetectElements extracts boxes from rendered elements and detects
// collisions among them.
func DetectElements(elements []geom.Element) Info {
	return Detect(geom.Extract(elements))
}
