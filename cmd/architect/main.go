// Command architect compiles automation blueprints into a workflow graph, a
// technical document and an operator runbook.
package main

import (
	"os"

	"github.com/dyluth/architect/cmd/architect/commands"
)

// Stamped by the release build via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if commands.Execute() != nil {
		// Execute has already reported the error to stderr.
		os.Exit(1)
	}
}
