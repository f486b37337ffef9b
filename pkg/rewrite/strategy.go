package rewrite

import "sync"

// Strategy is a named, lazily composable partial function from a subject
// Term to a (possibly transformed) Term. Applying a Strategy either
// succeeds, returning (result, true), or fails, returning (nil, false).
// Strategies are values: they can be stored, passed around, and referenced
// recursively before their bodies are ever invoked.
type Strategy struct {
	name string
	body func(Term) (Term, bool)
}

// Mk builds a Strategy from a name and a body function. Every other
// builder and combinator in this package is ultimately expressed in terms
// of Mk.
func Mk(name string, body func(Term) (Term, bool)) Strategy {
	return Strategy{name: name, body: body}
}

// Name returns the strategy's name, as given to Mk (or synthesized by a
// combinator that built it).
func (s Strategy) Name() string {
	if s.name == "" {
		return "<anonymous>"
	}
	return s.name
}

// Apply runs the strategy against subject.
func (s Strategy) Apply(subject Term) (Term, bool) {
	if s.body == nil {
		return nil, false
	}
	return s.body(subject)
}

// Id always succeeds, returning the subject unchanged (same object, not a
// copy).
var Id = Mk("id", func(t Term) (Term, bool) { return t, true })

// Fail always fails.
var Fail = Mk("fail", func(Term) (Term, bool) { return nil, false })

// Seq applies p; if it succeeds, applies q to p's result. Fails if either
// step fails.
func Seq(p, q Strategy) Strategy {
	return Mk("seq", func(t Term) (Term, bool) {
		t1, ok := p.Apply(t)
		if !ok {
			return nil, false
		}
		return q.Apply(t1)
	})
}

// Choice applies p; if p fails, applies q to the original subject.
// Deterministic: at most one of p, q ever contributes the result.
func Choice(p, q Strategy) Strategy {
	return Mk("choice", func(t Term) (Term, bool) {
		if t1, ok := p.Apply(t); ok {
			return t1, true
		}
		return q.Apply(t)
	})
}

// Guarded applies p; on success, applies q to p's result; on failure,
// applies r to the original subject. This is Stratego's `p < q + r`.
func Guarded(p, q, r Strategy) Strategy {
	return Mk("guarded", func(t Term) (Term, bool) {
		if t1, ok := p.Apply(t); ok {
			return q.Apply(t1)
		}
		return r.Apply(t)
	})
}

// Inclusive applies both p and q to the original subject (non-deterministic
// choice `+`, collapsed to its last-writer-wins deterministic result):
// succeeds with q's result when both succeed, with whichever one succeeds
// when only one does, and fails when both fail.
func Inclusive(p, q Strategy) Strategy {
	return Mk("inclusive", func(t Term) (Term, bool) {
		r1, ok1 := p.Apply(t)
		r2, ok2 := q.Apply(t)
		switch {
		case ok1 && ok2:
			return r2, true
		case ok2:
			return r2, true
		case ok1:
			return r1, true
		default:
			return nil, false
		}
	})
}

// lazyStrategy is a one-shot, thread-safe cell holding a combinator's
// resolved sub-strategy. Recursive combinators (Topdown, Bottomup, ...)
// capture their recursive reference behind Lazy so that constructing the
// combinator never forces the recursion; the knot is only forced, once,
// the first time the lazy strategy is actually applied.
type lazyStrategy struct {
	once    sync.Once
	resolve func() Strategy
	forced  Strategy
}

// Lazy defers evaluation of resolve until the returned Strategy is first
// applied, then caches the result for every subsequent application. It is
// the engine's answer to languages with built-in lazy values: Go evaluates
// function arguments eagerly, so a recursive combinator that referenced
// itself directly would recurse infinitely at construction time instead of
// at traversal time.
func Lazy(resolve func() Strategy) Strategy {
	cell := &lazyStrategy{resolve: resolve}
	return Mk("lazy", func(t Term) (Term, bool) {
		cell.once.Do(func() { cell.forced = cell.resolve() })
		return cell.forced.Apply(t)
	})
}
