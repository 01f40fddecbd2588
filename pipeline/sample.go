// SPDX-License-Identifier: MIT

package pipeline

import (
	"math"
	"math/rand"
	"sort"
)

// SampleIndices draws floor(p·n) distinct indices from [0,n) uniformly and
// returns them sorted.
func SampleIndices(rng *rand.Rand, n int, p float64) []int {
	k := int(math.Floor(p * float64(n)))
	if k <= 0 || n <= 0 {
		return []int{}
	}
	if k > n {
		k = n
	}
	picked := rng.Perm(n)[:k]
	sort.Ints(picked)

	return picked
}
