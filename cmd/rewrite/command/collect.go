package command

import (
	"fmt"
	"strings"

	"github.com/hashicorp/cli"

	"github.com/gitrdm/rewritekit/pkg/rewrite/arith"
)

// CollectCommand reports the variable census and Add count over the demo
// expression, exercising arith.VarNames and arith.CountAdds.
type CollectCommand struct {
	ui cli.Ui
}

// NewCollectCommand is a cli.CommandFactory for CollectCommand.
func NewCollectCommand() (cli.Command, error) {
	return &CollectCommand{ui: newUI()}, nil
}

func (c *CollectCommand) Help() string {
	return "Usage: rewrite collect\n\n  Reports variable names and addition-node count in the demo expression."
}

func (c *CollectCommand) Synopsis() string {
	return "Census variables and addition nodes in the demo expression"
}

func (c *CollectCommand) Run(_ []string) int {
	expr := sample()
	c.ui.Output(fmt.Sprintf("input: %s", expr))

	names := arith.VarNames(expr)
	c.ui.Output(fmt.Sprintf("variables: %s", strings.Join(names, ", ")))
	c.ui.Output(fmt.Sprintf("add nodes: %d", arith.CountAdds(expr)))
	return 0
}
