// Command pdt builds and queries particle data tables.
package main

import (
	"os"

	"github.com/leapstack-labs/pdt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
