package rewrite

import "reflect"

// This file lifts ordinary pattern matches and functions into Strategy
// values. The type-filtered builders (Rule, Rulefs, FromMatch, Query) use
// a Go type parameter to express "subject matches p": applying one of
// these to a subject whose runtime type is not T is a strategy failure,
// never a panic, via the comma-ok form of a type assertion on the
// type parameter (Go reifies T at runtime, so unlike a fully erased
// generic this never needs to recover from a coercion fault; the
// comma-ok assertion already reports the miss cleanly).

// Rule builds a Strategy from a partial function: if the subject has
// runtime type T and p(subject) reports ok, the strategy succeeds with
// p's result; otherwise it fails.
func Rule[T any](p func(T) (Term, bool)) Strategy {
	return Mk("rule", func(t Term) (Term, bool) {
		v, ok := t.(T)
		if !ok {
			return nil, false
		}
		return p(v)
	})
}

// Rulef builds a Strategy that always succeeds, returning f(subject).
func Rulef(f func(Term) Term) Strategy {
	return Mk("rulef", func(t Term) (Term, bool) { return f(t), true })
}

// Rulefs builds a Strategy from a partial function that, given a subject
// of type T, produces a sub-strategy to apply to that same subject.
func Rulefs[T any](p func(T) (Strategy, bool)) Strategy {
	return Mk("rulefs", func(t Term) (Term, bool) {
		v, ok := t.(T)
		if !ok {
			return nil, false
		}
		s, ok := p(v)
		if !ok {
			return nil, false
		}
		return s.Apply(t)
	})
}

// FromMatch builds a Strategy from a partial function on subjects of type
// T that returns an (optional) replacement term directly, Stratego's
// `strategy`.
func FromMatch[T any](p func(T) (Term, bool)) Strategy {
	return Mk("strategy", func(t Term) (Term, bool) {
		v, ok := t.(T)
		if !ok {
			return nil, false
		}
		return p(v)
	})
}

// FromFunc builds a Strategy from an ordinary function of the untyped
// subject that returns an (optional) replacement term, Stratego's
// `strategyf`.
func FromFunc(f func(Term) (Term, bool)) Strategy {
	return Mk("strategyf", f)
}

// Build always succeeds, ignoring the subject and returning t.
func Build(t Term) Strategy {
	return Mk("build", func(Term) (Term, bool) { return t, true })
}

// Literal succeeds, returning t unchanged, only when the subject equals t
// (Stratego's `term`/`!t` used as a match). Equality is tested with `==`
// when the subject's type is comparable; incomparable subjects (slices,
// maps, funcs) never match and the strategy fails.
func Literal(t Term) Strategy {
	return Mk("term", func(subject Term) (Term, bool) {
		if !equalTerm(subject, t) {
			return nil, false
		}
		return t, true
	})
}

func equalTerm(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

// FromOption succeeds with the unwrapped value when ok is true, and fails
// otherwise: Stratego's `option`, lifting a precomputed optional value
// rather than a function.
func FromOption(value Term, ok bool) Strategy {
	return Mk("option", func(Term) (Term, bool) { return value, ok })
}

// Query builds a Strategy that runs p for its side effect when the
// subject has runtime type T, succeeding with the subject unchanged. A
// subject of any other type is a strategy failure and p is not run.
func Query[T any](p func(T)) Strategy {
	return Mk("query", func(t Term) (Term, bool) {
		v, ok := t.(T)
		if !ok {
			return nil, false
		}
		p(v)
		return t, true
	})
}

// QueryF always runs f(subject) for its side effect and succeeds,
// returning the subject unchanged, Stratego's `queryf`.
func QueryF(f func(Term)) Strategy {
	return Mk("queryf", func(t Term) (Term, bool) {
		f(t)
		return t, true
	})
}
