package generate_test

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/generate"
)

func ExamplePartition() {
	for _, r := range generate.Partition(0, 38, 4) {
		fmt.Println(r, r.Len())
	}
	// Output:
	// [0, 10) 10
	// [10, 20) 10
	// [20, 29) 9
	// [29, 38) 9
}
