// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvltrace/aggregate"
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/logger"
	"github.com/katalvlaran/lvltrace/synth"
)

const synthLongDesc string = `Complete a dataset's trace matrices and list every level pair.

Pairs without a known trace matrix are synthesized from the dependency graph
of known pairs and refined for the configured number of rounds.

Examples:
  lvltrace synth --dataset mock.yaml
  lvltrace synth --dataset mock.yaml --print`

const synthShortDesc string = "Synthesize missing trace matrices"

func newSynthCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: synthShortDesc,
		Long:  synthLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("dataset")
			show, _ := cmd.Flags().GetBool("print")
			return e.runSynth(cmd, path, show)
		},
	}

	cmd.Flags().String("dataset", "", "Dataset YAML file")
	cmd.Flags().Bool("print", false, "Print every trace matrix")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func (e *env) runSynth(cmd *cobra.Command, path string, show bool) error {
	d, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}
	log := e.log.With(zap.String(logger.FieldDataset, d.Name()))
	if _, err = e.synthesizer(log).Complete(cmd.Context(), d); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range d.Traces().IDs() {
		m, _ := d.Traces().Get(id)
		origin := "known"
		if _, err = d.OracleMatrix(id.Source, id.Target); errors.Is(err, dataset.ErrNoOracle) {
			origin = "synthesized"
		} else if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%dx%d\t%s\n", id, m.Rows(), m.Cols(), origin)
		if show {
			fmt.Fprint(out, m)
		}
	}

	return nil
}

// synthesizer builds a Synthesizer from the synthesis config.
func (e *env) synthesizer(log *zap.Logger) *synth.Synthesizer {
	method, err := aggregate.ParseMethod(e.cfg.Synthesis.Method)
	if err != nil {
		method = aggregate.MethodMax
	}

	return synth.New(
		synth.WithMethod(method),
		synth.WithRounds(e.cfg.Synthesis.Rounds),
		synth.WithLogger(log),
	)
}
