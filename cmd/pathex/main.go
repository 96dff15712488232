// Command pathex extracts typed parameters from paths, resolves URIs against
// a template table, and serves both over MCP.
package main

import (
	"os"

	"github.com/reoring/pathex/cmd/pathex/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
