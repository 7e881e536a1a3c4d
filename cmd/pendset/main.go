// Command pendset reads Newick trees, indexes their edges and reports
// pendant edges, lonely nodes and canonical reformattings of the input.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
