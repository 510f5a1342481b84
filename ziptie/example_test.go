package ziptie_test

import (
	"fmt"

	"github.com/katalvlaran/ziptie/logging"
	"github.com/katalvlaran/ziptie/ziptie"
)

// ExampleZipTie_Step shows a pair of cables being bundled, then grown by a
// third cable that starts firing with them.
func ExampleZipTie_Step() {
	zt, err := ziptie.New(4,
		ziptie.WithName("demo"),
		ziptie.WithLogger(logging.Discard()),
		ziptie.WithOnBundle(func(ev ziptie.BundleEvent) {
			fmt.Printf("step %d: bundle %d %s from %v\n", ev.Step, ev.Bundle, ev.Kind, ev.Cables)
		}),
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	for i := 0; i < 11; i++ {
		_, _ = zt.Step([]float64{1, 1, 0, 0})
	}
	var out []float64
	for i := 0; i < 6; i++ {
		out, _ = zt.Step([]float64{1, 1, 1, 0})
	}
	fmt.Println("activities:", out)
	fmt.Print(zt.Describe())
	// Output:
	// step 11: bundle 0 nucleated from [0 1]
	// step 17: bundle 1 agglomerated from [2]
	// activities: [1 0 0 0]
	// ziptie 0
	//     bundle 0 cables: [0, 1]
	//     bundle 1 cables: [0, 1, 2]
}
