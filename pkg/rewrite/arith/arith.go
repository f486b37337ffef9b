// Package arith is a tiny arithmetic AST (Num, Add, Sub, Mul, Var) used
// to exercise constant folding, renaming, and the query aggregators end
// to end against github.com/gitrdm/rewritekit/pkg/rewrite.
package arith

import "fmt"

// Num is a numeric literal. It is a plain exported struct rather than a
// Rewritable: the engine discovers its single field through reflection,
// demonstrating the Product shape.
type Num struct {
	N int
}

func (n Num) String() string { return fmt.Sprintf("%d", n.N) }

// Var is a variable reference, also left as a plain Product struct.
type Var struct {
	Name string
}

func (v Var) String() string { return v.Name }

// Add, Sub, and Mul implement rewrite.Rewritable directly, demonstrating
// the engine's other decomposition path: a host type that declares its
// own children and reconstruction instead of relying on reflection.

// Add is the sum of two subexpressions.
type Add struct {
	L, R any
}

// Arity reports Add's two children.
func (a Add) Arity() int { return 2 }

// Deconstruct returns {L, R}.
func (a Add) Deconstruct() []any { return []any{a.L, a.R} }

// Reconstruct builds a new Add from exactly two replacement children.
func (a Add) Reconstruct(children []any) any {
	return Add{L: children[0], R: children[1]}
}

func (a Add) String() string { return fmt.Sprintf("(%v + %v)", a.L, a.R) }

// Sub is the difference of two subexpressions.
type Sub struct {
	L, R any
}

func (s Sub) Arity() int          { return 2 }
func (s Sub) Deconstruct() []any  { return []any{s.L, s.R} }
func (s Sub) Reconstruct(c []any) any {
	return Sub{L: c[0], R: c[1]}
}
func (s Sub) String() string { return fmt.Sprintf("(%v - %v)", s.L, s.R) }

// Mul is the product of two subexpressions.
type Mul struct {
	L, R any
}

func (m Mul) Arity() int         { return 2 }
func (m Mul) Deconstruct() []any { return []any{m.L, m.R} }
func (m Mul) Reconstruct(c []any) any {
	return Mul{L: c[0], R: c[1]}
}
func (m Mul) String() string { return fmt.Sprintf("(%v * %v)", m.L, m.R) }
