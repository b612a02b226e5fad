package main

import (
	"github.com/eclipse-ebr/ebr-cli/pkg/cmd"
	"github.com/eclipse-ebr/ebr-cli/pkg/types"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	types.Version = version
	types.Commit = commit
	types.Date = date

	cmd.Execute()
}
