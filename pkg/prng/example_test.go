package prng_test

import (
	"fmt"

	"ccengine/pkg/prng"
)

// ExampleNewSeeded demonstrates deterministic draws from a fixed seed.
func ExampleNewSeeded() {
	p := prng.NewSeeded(1)
	fmt.Println(p.Next())
	fmt.Println(p.Next())
	fmt.Println(p.Next())

	// Output:
	// 1103527590
	// 377401575
	// 662824084
}

// ExamplePermute3 shows how a fresh PRNG reorders a three-element slip
// candidate list.
func ExamplePermute3() {
	p := prng.NewSeeded(1)
	candidates := [3]string{"left", "back", "right"}
	prng.Permute3(p, &candidates)
	fmt.Println(candidates)

	// Output:
	// [right back left]
}
