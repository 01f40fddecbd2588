// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/matrix"
	"github.com/katalvlaran/lvltrace/technique"
)

// State is the mutable context shared by the stages of one evaluation.
type State struct {
	Dataset     dataset.Store
	Declaration technique.Declaration

	// Similarity is the result once the last stage has run.
	Similarity *matrix.Dense

	// Intermediate holds one matrix per chain link (transitive kinds).
	Intermediate []*matrix.Dense
}
