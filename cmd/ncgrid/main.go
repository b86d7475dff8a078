// Command ncgrid inspects, decodes and re-encodes gridded NetCDF files.
package main

import (
	"fmt"
	"os"

	"github.com/arloliu/ncgrid/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
