// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvltrace/pipeline"
)

const cacheLongDesc string = `Inspect or clean the similarity cache.

The backend and directory come from the cache section of the configuration.
Entries are grouped by the synthesis setup they were computed with; the
current synthesis config selects the group, --skip-synthesis the raw one.

Examples:
  lvltrace cache list --dataset MockDataset
  lvltrace cache clean --dataset MockDataset`

const cacheShortDesc string = "Manage the similarity cache"

func newCacheCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: cacheShortDesc,
		Long:  cacheLongDesc,
	}

	cmd.PersistentFlags().String("dataset", "", "Dataset name (the name field of the dataset file)")
	cmd.PersistentFlags().Bool("skip-synthesis", false, "Select entries computed without synthesis")
	_ = cmd.MarkPersistentFlagRequired("dataset")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached technique names of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runCacheList(cmd, e.cacheDataset(cmd))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove every cached entry of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runCacheClean(cmd, e.cacheDataset(cmd))
		},
	})

	return cmd
}

// cacheDataset maps the --dataset and --skip-synthesis flags to the name
// eval files entries under.
func (e *env) cacheDataset(cmd *cobra.Command) string {
	name, _ := cmd.Flags().GetString("dataset")
	skip, _ := cmd.Flags().GetBool("skip-synthesis")

	return pipeline.CacheDataset(name, e.namespace(!skip))
}

func (e *env) runCacheList(cmd *cobra.Command, name string) error {
	c, err := e.openCache(e.log)
	if err != nil {
		return err
	}
	defer c.Close()

	names, err := c.Store().List(cmd.Context(), name)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(cmd.OutOrStdout(), n)
	}

	return nil
}

func (e *env) runCacheClean(cmd *cobra.Command, name string) error {
	c, err := e.openCache(e.log)
	if err != nil {
		return err
	}
	defer c.Close()

	removed, err := c.Cleanup(cmd.Context(), name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)

	return nil
}
