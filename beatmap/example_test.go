// SPDX-License-Identifier: EPL-2.0

package beatmap_test

import (
	"fmt"

	"github.com/ik5/beatswap/beatmap"
)

func ExampleTransform() {
	bm := beatmap.New(0, 10, 20, 30)

	half, err := beatmap.Transform(bm, beatmap.ScaleOp{Factor: 0.5})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(bm)
	fmt.Println(half)
	// Output:
	// [0 10 20 30]
	// [0 5 10 15 20 25]
}

func ExampleBeatMap_AutoInsert() {
	bm := beatmap.New(100, 130, 160)
	fmt.Println(bm.AutoInsert())
	// Output:
	// [10 40 70 100 130 160]
}
