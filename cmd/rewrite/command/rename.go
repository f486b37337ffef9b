package command

import (
	"flag"
	"fmt"

	"github.com/hashicorp/cli"

	"github.com/gitrdm/rewritekit/pkg/rewrite/arith"
)

// RenameCommand runs arith.RenameVar over the demo expression.
type RenameCommand struct {
	ui cli.Ui
}

// NewRenameCommand is a cli.CommandFactory for RenameCommand.
func NewRenameCommand() (cli.Command, error) {
	return &RenameCommand{ui: newUI()}, nil
}

func (c *RenameCommand) Help() string {
	return "Usage: rewrite rename [-from=x] [-to=y]\n\n  Renames every occurrence of -from to -to in the demo expression."
}

func (c *RenameCommand) Synopsis() string {
	return "Rename a variable throughout the demo expression"
}

func (c *RenameCommand) Run(args []string) int {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	from := fs.String("from", "x", "variable name to rename")
	to := fs.String("to", "y", "replacement variable name")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	expr := sample()
	c.ui.Output(fmt.Sprintf("input:  %s", expr))

	result, ok := arith.RenameVar(*from, *to).Apply(expr)
	if !ok {
		c.ui.Error("rename: strategy failed")
		return 1
	}
	c.ui.Output(fmt.Sprintf("output: %v", result))
	return 0
}
