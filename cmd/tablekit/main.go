// Command tablekit views CSV and JSON files as virtualized terminal tables.
package main

import (
	"fmt"
	"os"

	"github.com/tablekit/tablekit/internal/cli"
	"github.com/tablekit/tablekit/pkg/version"
)

// run executes the root command and returns the process exit code.
func run() int {
	cmd := cli.NewRootCmd(version.GetVersion())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
