// SPDX-License-Identifier: MIT

package technique

// Walk visits d and its descendants depth-first, pre-order.
// Returning an error from fn stops the walk.
func Walk(d Declaration, fn func(d Declaration, depth int) error) error {
	return walk(d, 0, fn)
}

func walk(d Declaration, depth int, fn func(Declaration, int) error) error {
	if err := fn(d, depth); err != nil {
		return err
	}
	for _, c := range d.Components() {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}

	return nil
}

// CountNodes returns the number of nodes in the tree rooted at d.
func CountNodes(d Declaration) int {
	n := 0
	_ = Walk(d, func(Declaration, int) error { n++; return nil })

	return n
}
