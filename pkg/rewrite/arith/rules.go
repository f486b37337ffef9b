package arith

import "github.com/gitrdm/rewritekit/pkg/rewrite"

// Fold is the constant-folding strategy: Add/Sub/Mul nodes whose two
// children are both Num literals reduce to the literal holding their
// arithmetic result. Applied via rewrite.Innermost, it normalizes an
// expression as far as constant folding can take it.
var Fold = rewrite.Innermost(rewrite.Choice(
	rewrite.Rule(func(a Add) (rewrite.Term, bool) {
		l, lok := a.L.(Num)
		r, rok := a.R.(Num)
		if !lok || !rok {
			return nil, false
		}
		return Num{N: l.N + r.N}, true
	}),
	rewrite.Choice(
		rewrite.Rule(func(s Sub) (rewrite.Term, bool) {
			l, lok := s.L.(Num)
			r, rok := s.R.(Num)
			if !lok || !rok {
				return nil, false
			}
			return Num{N: l.N - r.N}, true
		}),
		rewrite.Rule(func(m Mul) (rewrite.Term, bool) {
			l, lok := m.L.(Num)
			r, rok := m.R.(Num)
			if !lok || !rok {
				return nil, false
			}
			return Num{N: l.N * r.N}, true
		}),
	),
))

// RenameVar rewrites every Var node named from to a Var node named to,
// wherever it occurs in the term.
func RenameVar(from, to string) rewrite.Strategy {
	return rewrite.Everywheretd(rewrite.Rule(func(v Var) (rewrite.Term, bool) {
		if v.Name != from {
			return nil, false
		}
		return Var{Name: to}, true
	}))
}

// BindVar builds a strategy substituting every Var node named name with a
// Num literal holding value, wherever it occurs in the term: the
// numeric-literal counterpart to RenameVar, used to close an expression
// over a variable before folding it.
func BindVar(name string, value int) rewrite.Strategy {
	return rewrite.Everywheretd(rewrite.Rule(func(v Var) (rewrite.Term, bool) {
		if v.Name != name {
			return nil, false
		}
		return Num{N: value}, true
	}))
}

// VarNames collects every Var node's name, top-down, left to right.
var VarNames = rewrite.Collect(func(v Var) (string, bool) {
	return v.Name, true
})

// CountAdds reports the number of Add nodes anywhere in the term.
var CountAdds = rewrite.Count(func(Add) (int, bool) {
	return 1, true
})

// IncrementOnce increments the first Num literal found top-down, leaving
// every other node untouched.
var IncrementOnce = rewrite.Oncetd(rewrite.Rule(func(n Num) (rewrite.Term, bool) {
	return Num{N: n.N + 1}, true
}))
