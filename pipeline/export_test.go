package pipeline

import "context"

// RunStage runs one named stage of st's pipeline, for white-box tests.
func RunStage(ctx context.Context, e *Evaluator, name string, st *State) error {
	stages, _ := pipelineFor(st.Declaration.Kind())
	for _, s := range stages {
		if s.name == name {
			return s.run(ctx, e, st)
		}
	}

	return ErrUnsupportedDeclaration
}
