package slide_test

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/slide"
)

func ExampleWeights_Distance() {
	w := slide.DefaultWeights
	fmt.Printf("%.3f\n", w.Distance(slide.Variation{2, 0, 0}))
	fmt.Printf("%.3f\n", w.Distance(slide.Variation{0, 2, 1}))
	// Output:
	// 1.000
	// 1.732
}
