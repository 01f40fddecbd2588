// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/lvltrace/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
