// Command rewrite is a small operator-facing driver over pkg/rewrite's
// arithmetic example, demonstrating the engine end to end.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"

	"github.com/gitrdm/rewritekit/cmd/rewrite/command"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := cli.NewCLI("rewrite", "0.1.0")
	c.Args = args
	c.Commands = map[string]cli.CommandFactory{
		"fold":    command.NewFoldCommand,
		"rename":  command.NewRenameCommand,
		"collect": command.NewCollectCommand,
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitStatus
}
