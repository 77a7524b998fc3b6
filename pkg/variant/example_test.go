package variant_test

import (
	"fmt"

	"github.com/matzehuels/pinboard/pkg/variant"
)

func ExampleTotalVariants() {
	for pins := 2; pins <= 5; pins++ {
		fmt.Println(pins, variant.TotalVariants(pins), variant.FullyPopulated(pins))
	}
	// Output:
	// 2 5 5
	// 3 38 28
	// 4 251 155
	// 5 1628 859
}

func ExampleRank() {
	id, _ := variant.Rank([]int{4, 0, 0})
	choices, _ := variant.Default.Choices(id, 3)
	fmt.Println(choices)
	// Output: [4 0 0]
}
