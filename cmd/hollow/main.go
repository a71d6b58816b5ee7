// Command hollow evaluates Hollow configuration documents and manifests
// the result as JSON, YAML, a document stream, or a multi-file map.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/hollow/cmd/hollow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
