// Command seqgen is the CLI entrypoint for the generation engine: it loads
// configuration, builds the bundled dataset, runs its stages through the
// stage driver, and reports progress to an optional coordinator.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seqgen: %v\n", err)
		os.Exit(1)
	}
}
