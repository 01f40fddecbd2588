// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvltrace/technique"
)

const nameLongDesc string = `Parse a technique expression, print its canonical name and its tree.

The canonical name is the cache key of the technique and parses back to an
equal technique.

Examples:
  lvltrace name "(x (max global) ((. (vsm nt) (0 1)) (. (vsm nt) (1 2))))"`

const nameShortDesc string = "Print the canonical name of a technique"

func newNameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name EXPR",
		Short: nameShortDesc,
		Long:  nameLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _ := cmd.Flags().GetBool("tree")
			return runName(cmd, args[0], tree)
		},
	}

	cmd.Flags().Bool("tree", true, "Print the technique tree below the name")

	return cmd
}

func runName(cmd *cobra.Command, expr string, tree bool) error {
	d, err := technique.Parse(expr)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, d.Name())
	if !tree {
		return nil
	}

	return technique.Walk(d, func(n technique.Declaration, depth int) error {
		_, err := fmt.Fprintf(out, "%s%s %d-%d\n", strings.Repeat("  ", depth), n.Kind(), n.Source(), n.Target())
		return err
	})
}
