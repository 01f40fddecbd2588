// SPDX-License-Identifier: MIT

// Package cli wires the lvltrace commands.
package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvltrace/config"
	"github.com/katalvlaran/lvltrace/logger"
)

const rootLongDesc string = `lvltrace evaluates traceability techniques over multi-level artifact datasets.

Techniques are written as s-expressions:
  (. (VSM NT) (0 2))                                      direct
  (x (MAX GLOBAL) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))  transitive
  (~ (SUM INDEPENDENT 0.5) (...))                         sampled artifacts
  ($ (MAX GLOBAL 0.25) (...))                             sampled traces
  (o (MAX) (TECHNIQUE TECHNIQUE ...))                     combined

Commands:
  lvltrace eval     Evaluate a technique against a dataset
  lvltrace name     Parse a technique and print its canonical name
  lvltrace synth    Complete a dataset's trace matrices
  lvltrace cache    Inspect or clean the similarity cache`

const rootShortDesc string = "lvltrace - traceability technique evaluator"

// env is the per-invocation runtime shared by subcommands.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the lvltrace command tree.
func NewRootCmd() *cobra.Command {
	e := &env{}
	cmd := &cobra.Command{
		Use:           "lvltrace",
		Short:         rootShortDesc,
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a config file (yaml, toml or json)")
	cmd.PersistentFlags().Bool("log-json", false, "Emit JSON logs")
	cmd.PersistentFlags().String("log-level", "", "Override the configured log level")

	cmd.AddCommand(newEvalCmd(e))
	cmd.AddCommand(newNameCmd())
	cmd.AddCommand(newSynthCmd(e))
	cmd.AddCommand(newCacheCmd(e))

	return cmd
}

func (e *env) init(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON, _ = cmd.Flags().GetBool("log-json")
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.log = log.With(zap.String(logger.FieldRunID, uuid.NewString()))

	return nil
}
