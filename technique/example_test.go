package technique_test

import (
	"fmt"

	"github.com/katalvlaran/lvltrace/technique"
)

// ExampleParse normalizes a loosely written technique to its canonical name.
func ExampleParse() {
	d, err := technique.Parse("(x (max independent) ((. (LSI NOT_TRACED) (0 1)) (. (LSI NT) (1 2))))")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(d.Kind(), d.Source(), d.Target())
	fmt.Println(d.Name())
	// Output:
	// transitive 0 2
	// (x (MAX INDEPENDENT) ((. (LSI NT) (0 1)) (. (LSI NT) (1 2))))
}
