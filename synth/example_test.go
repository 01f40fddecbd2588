package synth_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/matrix"
	"github.com/katalvlaran/lvltrace/synth"
)

// ExampleSynthesizer_SynthesizeMissing derives requirement-to-code traces
// through the design level.
func ExampleSynthesizer_SynthesizeMissing() {
	reqDesign, _ := matrix.NewFromRows([][]float64{{1}})
	designCode, _ := matrix.NewFromRows([][]float64{{0, 0, 1}})

	traces := dataset.NewMatrixMap()
	_ = traces.Set(dataset.TraceID{Source: 0, Target: 1}, reqDesign)
	_ = traces.Set(dataset.TraceID{Source: 1, Target: 2}, designCode)

	g, err := synth.BuildGraph(3, traces.IDs())
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = synth.New().SynthesizeMissing(context.Background(), g, traces); err != nil {
		fmt.Println(err)
		return
	}
	m, _ := traces.Get(dataset.TraceID{Source: 0, Target: 2})
	fmt.Print(m)
	// Output:
	// [0, 0, 1]
}
