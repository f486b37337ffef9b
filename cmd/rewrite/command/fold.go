package command

import (
	"fmt"

	"github.com/hashicorp/cli"

	"github.com/gitrdm/rewritekit/pkg/rewrite/arith"
)

// FoldCommand runs the constant-folding rule to a fixed point over the
// demo expression and prints the normal form.
type FoldCommand struct {
	ui cli.Ui
}

// NewFoldCommand is a cli.CommandFactory for FoldCommand.
func NewFoldCommand() (cli.Command, error) {
	return &FoldCommand{ui: newUI()}, nil
}

func (c *FoldCommand) Help() string {
	return "Usage: rewrite fold\n\n  Constant-folds the demo expression (2*x) + (10-x) with x bound to 5."
}

func (c *FoldCommand) Synopsis() string {
	return "Constant-fold the demo expression to a normal form"
}

func (c *FoldCommand) Run(_ []string) int {
	expr := bindX(sample(), 5)
	c.ui.Output(fmt.Sprintf("input:  %s", expr))

	result, ok := arith.Fold.Apply(expr)
	if !ok {
		c.ui.Error("fold: strategy failed")
		return 1
	}
	c.ui.Output(fmt.Sprintf("output: %v", result))
	return 0
}

// bindX replaces every Var named "x" in e with a Num holding value, via
// arith.BindVar.
func bindX(e arith.Add, value int) arith.Add {
	replaced, ok := arith.BindVar("x", value).Apply(e)
	if !ok {
		return e
	}
	return replaced.(arith.Add)
}
