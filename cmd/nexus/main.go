// Command nexus drives GitHub issues and Twitter posts through the nexus
// provider pipeline, and serves the same operations over MCP.
package main

import (
	"os"

	"github.com/onurkarakus/nexus/cmd/nexus/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
