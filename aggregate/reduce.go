// SPDX-License-Identifier: MIT

package aggregate

// reduceWith folds values left to right seeded with the first value.
// An empty slice reduces to 0.
func reduceWith(fn func(acc, v float64) float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	acc := values[0]
	for _, v := range values[1:] {
		acc = fn(acc, v)
	}

	return acc
}

// exceedsOne reports whether any value is strictly above 1.
func exceedsOne(values []float64) bool {
	for _, v := range values {
		if v > 1 {
			return true
		}
	}

	return false
}
