// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvltrace/cache"
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/logger"
	"github.com/katalvlaran/lvltrace/pipeline"
	"github.com/katalvlaran/lvltrace/technique"
)

const evalLongDesc string = `Evaluate a technique against a dataset and print the similarity matrix.

Missing trace matrices are synthesized first, so traced (T) links between
any two levels are available. Deterministic results are cached per dataset
and per synthesis setup (method and rounds, or "raw" with --skip-synthesis).

Examples:
  lvltrace eval --dataset mock.yaml --technique "(. (VSM NT) (0 2))"
  lvltrace eval --dataset mock.yaml --technique "(~ (MAX GLOBAL 0.5) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))" --seed 7`

const evalShortDesc string = "Evaluate a technique"

func newEvalCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: evalShortDesc,
		Long:  evalLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("dataset")
			expr, _ := cmd.Flags().GetString("technique")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			skipSynth, _ := cmd.Flags().GetBool("skip-synthesis")
			seed, _ := cmd.Flags().GetInt64("seed")
			return e.runEval(cmd, path, expr, !noCache, !skipSynth, seed)
		},
	}

	cmd.Flags().String("dataset", "", "Dataset YAML file")
	cmd.Flags().String("technique", "", "Technique expression")
	cmd.Flags().Bool("no-cache", false, "Bypass the similarity cache")
	cmd.Flags().Bool("skip-synthesis", false, "Do not synthesize missing trace matrices")
	cmd.Flags().Int64("seed", 0, "Seed for sampled techniques (0 seeds from the clock)")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("technique")

	return cmd
}

func (e *env) runEval(cmd *cobra.Command, path, expr string, useCache, synthesize bool, seed int64) error {
	ctx := cmd.Context()
	decl, err := technique.Parse(expr)
	if err != nil {
		return err
	}
	d, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}
	log := e.log.With(zap.String(logger.FieldDataset, d.Name()))
	if synthesize {
		if _, err = e.synthesizer(log).Complete(ctx, d); err != nil {
			return errors.Wrap(err, "synthesize traces")
		}
	}

	c := cache.Disabled()
	if useCache && e.cfg.Cache.Enabled {
		if c, err = e.openCache(log); err != nil {
			return err
		}
		defer func() {
			if cerr := c.Close(); cerr != nil {
				log.Warn("close cache", zap.Error(cerr))
			}
		}()
	}

	opts := []pipeline.Option{
		pipeline.WithCache(c),
		pipeline.WithLogger(log),
		pipeline.WithCacheNamespace(e.namespace(synthesize)),
	}
	if seed != 0 {
		opts = append(opts, pipeline.WithRand(rand.New(rand.NewSource(seed))))
	}
	m, err := pipeline.New(d, opts...).Evaluate(ctx, decl)
	if err != nil {
		return err
	}
	log.Info("technique evaluated",
		zap.String(logger.FieldTechnique, decl.Name()),
		zap.Int(logger.FieldRows, m.Rows()),
		zap.Int(logger.FieldCols, m.Cols()))

	_, err = fmt.Fprint(cmd.OutOrStdout(), m)

	return err
}

// namespace separates cache entries by how the trace store was prepared.
func (e *env) namespace(synthesize bool) string {
	if !synthesize {
		return "raw"
	}

	return e.synthesizer(nil).Label()
}

// openCache opens the configured backend.
func (e *env) openCache(log *zap.Logger) (*cache.Cache, error) {
	store, err := cache.OpenStore(e.cfg.Cache.Backend, e.cfg.Cache.Dir, log)
	if err != nil {
		return nil, err
	}
	log.Debug("cache opened",
		zap.String(logger.FieldBackend, e.cfg.Cache.Backend),
		zap.String(logger.FieldFile, e.cfg.Cache.Dir))

	return cache.New(store, cache.WithLogger(log)), nil
}
