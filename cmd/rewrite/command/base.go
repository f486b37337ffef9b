package command

import (
	"os"

	"github.com/hashicorp/cli"

	"github.com/gitrdm/rewritekit/pkg/rewrite/arith"
)

// sample builds the demo expression shared by every subcommand:
// (2 * x) + (10 - x), with the variable x appearing twice.
func sample() arith.Add {
	return arith.Add{
		L: arith.Mul{L: arith.Num{N: 2}, R: arith.Var{Name: "x"}},
		R: arith.Sub{L: arith.Num{N: 10}, R: arith.Var{Name: "x"}},
	}
}

func newUI() cli.Ui {
	return &cli.ColoredUi{
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
		OutputColor: cli.UiColorNone,
		InfoColor:   cli.UiColorNone,
		ErrorColor:  cli.UiColorRed,
		WarnColor:   cli.UiColorYellow,
	}
}
