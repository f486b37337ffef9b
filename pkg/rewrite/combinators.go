package rewrite

// This file defines the library's compound traversals and control
// combinators, all expressed as straightforward compositions of the
// primitives in strategy.go and the one-level traversals in traversal.go.
// The combinators composed from other strategies that recurse into
// themselves (Topdown, Bottomup, Alltd, ...) wrap their recursive
// reference in Lazy so construction terminates; only applying the
// resulting Strategy ever forces the recursion, one level at a time. The
// few written directly with Mk (Leaves, AllTdFold, RepeatUntil) reach
// themselves through their body's closure, which also runs only on apply.

// Attempt tries s, falling back to Id (never fails) when s fails.
func Attempt(s Strategy) Strategy {
	return Choice(s, Id)
}

// Topdown applies s at the current node, then recurses into all children.
// Fails if s fails at any node visited before failure, since s itself is
// unconditional here; combine with Attempt for the common "best effort"
// reading.
func Topdown(s Strategy) Strategy {
	var self Strategy
	self = Seq(s, All(Lazy(func() Strategy { return self })))
	return self
}

// Bottomup recurses into all children first, then applies s at the
// current node.
func Bottomup(s Strategy) Strategy {
	var self Strategy
	self = Seq(All(Lazy(func() Strategy { return self })), s)
	return self
}

// Downup applies s once on the way down and once on the way back up at
// every node.
func Downup(s Strategy) Strategy {
	var self Strategy
	self = Seq(s, Seq(All(Lazy(func() Strategy { return self })), s))
	return self
}

// TopdownS is the "stop early" top-down traversal: apply s, then either
// let stop(TopdownS(s, stop)) decide to halt the descent at this node, or
// otherwise recurse into all children.
func TopdownS(s Strategy, stop func(Strategy) Strategy) Strategy {
	var self Strategy
	self = Seq(s, Choice(
		Lazy(func() Strategy { return stop(self) }),
		All(Lazy(func() Strategy { return self })),
	))
	return self
}

// Alltd applies s at the current node if it succeeds there; otherwise
// recurses into all children, applying Alltd(s) to each. This stops
// descending as soon as s matches anywhere on a path.
func Alltd(s Strategy) Strategy {
	var self Strategy
	self = Choice(s, All(Lazy(func() Strategy { return self })))
	return self
}

// Allbu is Alltd's bottom-up counterpart: recurse into all children
// first, and only where that full descent fails does s get a chance at
// the current node.
func Allbu(s Strategy) Strategy {
	var self Strategy
	self = Choice(All(Lazy(func() Strategy { return self })), s)
	return self
}

// Oncetd searches top-down, left to right, for the first node where s
// succeeds, and rewrites only that node.
func Oncetd(s Strategy) Strategy {
	var self Strategy
	self = Choice(s, One(Lazy(func() Strategy { return self })))
	return self
}

// Oncebu searches bottom-up for the first node (in post-order) where s
// succeeds, and rewrites only that node.
func Oncebu(s Strategy) Strategy {
	var self Strategy
	self = Choice(One(Lazy(func() Strategy { return self })), s)
	return self
}

// Sometd applies s top-down wherever it succeeds, requiring at least one
// success somewhere on the path from the root.
func Sometd(s Strategy) Strategy {
	var self Strategy
	self = Choice(s, Some(Lazy(func() Strategy { return self })))
	return self
}

// Somebu applies s bottom-up wherever it succeeds, requiring at least one
// success somewhere at or below the current node.
func Somebu(s Strategy) Strategy {
	var self Strategy
	self = Choice(Some(Lazy(func() Strategy { return self })), s)
	return self
}

// Innermost fully normalizes a term: it rewrites bottom-up, and after
// rewriting a node, re-normalizes the result, until no more rewrites apply
// anywhere. This is the workhorse for rules like constant folding that
// should run to a fixed point.
func Innermost(s Strategy) Strategy {
	var self Strategy
	self = Bottomup(Attempt(Lazy(func() Strategy { return Seq(s, self) })))
	return self
}

// Innermost2 is an alternative, simpler fixed-point normalizer: repeat
// "rewrite the first bottom-up match" until no match remains anywhere.
func Innermost2(s Strategy) Strategy {
	return Repeat(Oncebu(s))
}

// Outermost repeatedly rewrites the first top-down match until none
// remains.
func Outermost(s Strategy) Strategy {
	return Repeat(Oncetd(s))
}

// Reduce repeatedly applies s to some bottom-up match until no match
// remains anywhere in the term.
func Reduce(s Strategy) Strategy {
	return Repeat(Somebu(s))
}

// Manytd applies s top-down as many times as possible, requiring at
// least one success somewhere: where s succeeds at a node, the descent
// continues best-effort into the rewritten children; where it fails, at
// least one child subtree must yield a success.
func Manytd(s Strategy) Strategy {
	var self Strategy
	self = Choice(
		Seq(s, All(Lazy(func() Strategy { return Attempt(self) }))),
		Some(Lazy(func() Strategy { return self })),
	)
	return self
}

// Manybu is Manytd's bottom-up counterpart: rewrite as many children as
// possible first, then give s a best-effort pass at the current node; a
// node where no child succeeded still succeeds if s applies to it
// directly.
func Manybu(s Strategy) Strategy {
	var self Strategy
	self = Choice(
		Seq(Some(Lazy(func() Strategy { return self })), Attempt(s)),
		s,
	)
	return self
}

// Leaves applies s only at leaf nodes (Opaque-shaped subjects with no
// children), recursing through everything else.
func Leaves(s Strategy) Strategy {
	var self Strategy
	self = Mk("leaves", func(t Term) (Term, bool) {
		if _, _, _, ok := decompose(t); !ok {
			return s.Apply(t)
		}
		return All(self).Apply(t)
	})
	return self
}

// Everywheretd applies Attempt(s) at every node, top-down, never failing.
func Everywheretd(s Strategy) Strategy {
	return Topdown(Attempt(s))
}

// Everywherebu applies Attempt(s) at every node, bottom-up, never failing.
func Everywherebu(s Strategy) Strategy {
	return Bottomup(Attempt(s))
}

// EverywhereS generalizes Everywheretd to an explicit stop condition,
// mirroring TopdownS.
func EverywhereS(s Strategy, stop func(Strategy) Strategy) Strategy {
	return TopdownS(Attempt(s), stop)
}

// AllTdFold combines a top-down "stop and fold" traversal with an
// explicit combine step: at a node where s succeeds, its result is used
// directly; otherwise the node's children are each folded and then
// combined with seed via combine, left to right.
func AllTdFold(s Strategy, seed Term, combine func(acc, childResult Term) Term) Strategy {
	var self Strategy
	self = Mk("alltdfold", func(t Term) (Term, bool) {
		if r, ok := s.Apply(t); ok {
			return r, true
		}
		_, kids, _, ok := decompose(t)
		if !ok {
			return nil, false
		}
		acc := seed
		for _, k := range kids {
			r, ok := self.Apply(k)
			if !ok {
				return nil, false
			}
			acc = combine(acc, r)
		}
		return acc, true
	})
	return self
}

// AllDownUp2 applies s1 on the way down, recurses into all children, then
// applies s2 on the way back up, a two-strategy variant of Downup useful
// when the descending and ascending rewrites differ.
func AllDownUp2(s1, s2 Strategy) Strategy {
	var self Strategy
	self = Seq(s1, Seq(All(Lazy(func() Strategy { return self })), s2))
	return self
}

// Breadthfirst applies s level by level: first to each immediate child,
// then (recursively) one level deeper across every child's subtree,
// requiring s to succeed everywhere it is tried (combine with Attempt for
// a best-effort reading). The subject node itself is never rewritten,
// only its descendants.
func Breadthfirst(s Strategy) Strategy {
	var self Strategy
	self = Seq(All(s), All(Lazy(func() Strategy { return self })))
	return self
}

// Map lifts s element-wise over a ShapeSequence subject, rebuilding the
// sequence (or failing on the first element where s fails). It is
// equivalent to All(s) restricted to sequences, named separately because
// Stratego's `map` is commonly reached for directly rather than through
// the generic one-level traversal.
func Map(s Strategy) Strategy {
	return Mk("map", func(t Term) (Term, bool) {
		shape, _, _, ok := decompose(t)
		if !ok || shape != ShapeSequence {
			return nil, false
		}
		return All(s).Apply(t)
	})
}

// Not succeeds (returning the original subject) exactly when s fails, and
// fails exactly when s succeeds.
func Not(s Strategy) Strategy {
	return Guarded(s, Fail, Id)
}

// Where succeeds with the original subject exactly when s succeeds
// (discarding s's result); it is the engine's condition-testing
// combinator. Test is an alias for Where.
func Where(s Strategy) Strategy {
	return Mk("where", func(t Term) (Term, bool) {
		if _, ok := s.Apply(t); ok {
			return t, true
		}
		return nil, false
	})
}

// Test is an alias for Where.
func Test(s Strategy) Strategy { return Where(s) }

// And succeeds with the original subject when both p and q succeed on it
// (discarding both results), and fails otherwise.
func And(p, q Strategy) Strategy {
	return Where(Seq(Where(p), Where(q)))
}

// Or succeeds with the original subject when either p or q succeeds on
// it.
func Or(p, q Strategy) Strategy {
	return Where(Choice(Where(p), Where(q)))
}

// Ior is the non-deterministic "inclusive or" condition test: succeeds
// with the original subject whenever at least one of p, q succeeds.
func Ior(p, q Strategy) Strategy {
	return Where(Inclusive(Where(p), Where(q)))
}

// Repeat applies s repeatedly until it fails, succeeding with the last
// successful result (or the original subject if s never succeeded even
// once). Repeat never fails.
func Repeat(s Strategy) Strategy {
	var self Strategy
	self = Choice(Seq(s, Lazy(func() Strategy { return self })), Id)
	return self
}

// RepeatN unrolls Repeat a fixed n times, failing if any of the n
// applications fails (unlike the unbounded Repeat, which never fails).
func RepeatN(s Strategy, n int) Strategy {
	return Mk("repeat-n", func(t Term) (Term, bool) {
		cur := t
		for i := 0; i < n; i++ {
			r, ok := s.Apply(cur)
			if !ok {
				return nil, false
			}
			cur = r
		}
		return cur, true
	})
}

// Repeat1 applies s at least once, then repeats it until it fails.
func Repeat1(s Strategy) Strategy {
	return Seq(s, Repeat(s))
}

// RepeatUntil applies s, testing cond against the result after every
// application, stopping (and succeeding) as soon as cond succeeds. Fails
// if s ever fails before cond is satisfied.
func RepeatUntil(s, cond Strategy) Strategy {
	var self Strategy
	self = Mk("repeat-until", func(t Term) (Term, bool) {
		r, ok := s.Apply(t)
		if !ok {
			return nil, false
		}
		if _, done := cond.Apply(r); done {
			return r, true
		}
		return self.Apply(r)
	})
	return self
}

// Loop implements Stratego's conditional loop: while r succeeds, apply s
// and loop again; as soon as r fails, succeed with the current subject.
// Loop never fails.
func Loop(r, s Strategy) Strategy {
	var self Strategy
	self = Choice(Seq(r, Seq(s, Lazy(func() Strategy { return self }))), Id)
	return self
}

// LoopIter applies s to each element of a slice of subjects in turn,
// threading a single accumulator term through every application via acc,
// failing if s fails on any element. It returns the final accumulator.
func LoopIter(s Strategy, acc Term, items []Term, combine func(acc, item, result Term) Term) (Term, bool) {
	for _, item := range items {
		r, ok := s.Apply(item)
		if !ok {
			return nil, false
		}
		acc = combine(acc, item, r)
	}
	return acc, true
}

// LoopNot repeats s until it fails, succeeding (unconditionally, like
// Repeat) with the last successful result.
func LoopNot(s Strategy) Strategy {
	return Repeat(s)
}

// DoLoop applies s once, then loops while r succeeds, applying s again
// each iteration, Stratego's `do-while` reading of Loop.
func DoLoop(s, r Strategy) Strategy {
	return Seq(s, Loop(r, s))
}

// Restore applies s; on success, the result is returned as-is. On
// failure, r is applied to the original subject for its effect and the
// overall strategy still fails. Useful for running cleanup/rollback logic
// without masking the original failure.
func Restore(s, r Strategy) Strategy {
	return Choice(s, Seq(r, Fail))
}

// RestoreAlways applies s; if it succeeds, r is applied to its result,
// and the strategy succeeds with r's result. If s fails, r is applied to
// the original subject for its effect and the strategy fails.
func RestoreAlways(s, r Strategy) Strategy {
	return Choice(Seq(s, r), Seq(r, Fail))
}

// Lastly applies s; whether s succeeds or fails, f is applied to the
// relevant subject for its effect (its result, and its own success or
// failure, are discarded). The overall success/failure and result follow
// s alone.
func Lastly(s, f Strategy) Strategy {
	fin := Attempt(Where(f))
	return Guarded(s, fin, Seq(fin, Fail))
}
