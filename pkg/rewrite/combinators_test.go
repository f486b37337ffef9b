package rewrite_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/rewritekit/pkg/rewrite"
)

// Tree is a small recursive Product fixture: V is a leaf payload, L and R
// are either nested *Tree values or nil (opaque).
type Tree struct {
	V    int
	L, R rewrite.Term
}

func incrementLeaves(v int) (rewrite.Term, bool) { return v + 1, true }

// Topdown(Attempt(s)) terminates for any s whose bottom case
// is fail on leaves (here: only ints match, so Tree nodes always fail the
// rule and only their int leaves are ever rewritten).
func TestTopdownAttemptTerminates(t *testing.T) {
	tree := &Tree{V: 1, L: &Tree{V: 2, L: nil, R: nil}, R: nil}

	result, ok := rewrite.Topdown(rewrite.Attempt(rewrite.Rule(incrementLeaves))).Apply(tree)
	require.True(t, ok)

	want := &Tree{V: 2, L: &Tree{V: 3, L: nil, R: nil}, R: nil}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

// Innermost is idempotent: re-normalizing a normal form is a no-op.
func TestInnermostIdempotent(t *testing.T) {
	tree := &Tree{V: 1, L: &Tree{V: 1, L: nil, R: nil}, R: nil}
	capAt5 := rewrite.Rule(func(v int) (rewrite.Term, bool) {
		if v >= 5 {
			return nil, false
		}
		return v + 1, true
	})
	norm := rewrite.Innermost(capAt5)

	once, ok := norm.Apply(tree)
	require.True(t, ok)
	twice, ok := norm.Apply(once)
	require.True(t, ok)

	assert.Equal(t, once, twice)
}

func TestRepeatNeverFails(t *testing.T) {
	_, ok := rewrite.Repeat(rewrite.Fail).Apply(1)
	assert.True(t, ok)
}

func TestRepeat1RequiresFirstSuccess(t *testing.T) {
	_, ok := rewrite.Repeat1(rewrite.Fail).Apply(1)
	assert.False(t, ok)
}

func TestWhereDiscardsResult(t *testing.T) {
	isEven := rewrite.FromFunc(func(t rewrite.Term) (rewrite.Term, bool) {
		n, ok := t.(int)
		return n * 100, ok && n%2 == 0
	})

	result, ok := rewrite.Where(isEven).Apply(4)
	require.True(t, ok)
	assert.Equal(t, 4, result) // original subject, not isEven's 400

	_, ok = rewrite.Where(isEven).Apply(3)
	assert.False(t, ok)
}

func TestAndOrIor(t *testing.T) {
	isInt := rewrite.FromFunc(func(t rewrite.Term) (rewrite.Term, bool) {
		_, ok := t.(int)
		return t, ok
	})
	isPositive := rewrite.FromFunc(func(t rewrite.Term) (rewrite.Term, bool) {
		n, ok := t.(int)
		return t, ok && n > 0
	})

	_, ok := rewrite.And(isInt, isPositive).Apply(5)
	assert.True(t, ok)
	_, ok = rewrite.And(isInt, isPositive).Apply(-5)
	assert.False(t, ok)

	_, ok = rewrite.Or(isInt, isPositive).Apply("x")
	assert.False(t, ok)

	_, ok = rewrite.Ior(isInt, isPositive).Apply(5)
	assert.True(t, ok)
}

func TestLastlyRunsFinalizerOnBothPaths(t *testing.T) {
	var ranOnSuccess, ranOnFailure bool

	succeed := rewrite.Lastly(rewrite.Id, rewrite.QueryF(func(rewrite.Term) { ranOnSuccess = true }))
	_, ok := succeed.Apply(1)
	assert.True(t, ok)
	assert.True(t, ranOnSuccess)

	fail := rewrite.Lastly(rewrite.Fail, rewrite.QueryF(func(rewrite.Term) { ranOnFailure = true }))
	_, ok = fail.Apply(1)
	assert.False(t, ok)
	assert.True(t, ranOnFailure)
}

func TestLastlyFailingFinalizerDoesNotFlipOutcome(t *testing.T) {
	// The finalizer's own failure is discarded: s's success stands, and
	// s's failure is not masked either.
	result, ok := rewrite.Lastly(rewrite.Id, rewrite.Fail).Apply(1)
	require.True(t, ok)
	assert.Equal(t, 1, result)

	_, ok = rewrite.Lastly(rewrite.Fail, rewrite.Fail).Apply(1)
	assert.False(t, ok)
}

func TestLoopStopsWhenConditionFails(t *testing.T) {
	// r succeeds while the subject is above zero; s decrements. Loop
	// should stop exactly when r first fails.
	r := rewrite.FromFunc(func(t rewrite.Term) (rewrite.Term, bool) {
		n := t.(int)
		return n, n > 0
	})
	s := rewrite.Rulef(func(t rewrite.Term) rewrite.Term {
		return t.(int) - 1
	})

	result, ok := rewrite.Loop(r, s).Apply(3)
	require.True(t, ok)
	assert.Equal(t, 0, result)
}

func TestAlltdStopsDescendingAtFirstMatch(t *testing.T) {
	tree := &Tree{V: 1, L: &Tree{V: 2, L: nil, R: nil}, R: nil}

	// The rule matches whole *Tree nodes, so alltd rewrites the root and
	// never descends into the inner tree.
	swapToLeaf := rewrite.Rule(func(n *Tree) (rewrite.Term, bool) {
		return n.V * 10, true
	})
	result, ok := rewrite.Alltd(swapToLeaf).Apply(tree)
	require.True(t, ok)
	assert.Equal(t, 10, result)
}

func TestAllbuNeverFails(t *testing.T) {
	// The full-descent branch succeeds vacuously at every leaf, so allbu
	// succeeds unchanged even for a strategy that fails everywhere,
	// unlike Bottomup(Fail), which fails at the first leaf.
	tree := &Tree{V: 1, L: nil, R: nil}

	result, ok := rewrite.Allbu(rewrite.Fail).Apply(tree)
	require.True(t, ok)
	assert.Same(t, tree, result)

	_, ok = rewrite.Bottomup(rewrite.Fail).Apply(tree)
	assert.False(t, ok)
}

func TestManytdRewritesEveryMatch(t *testing.T) {
	inc := rewrite.Rule(incrementLeaves)
	p := Pair{A: 1, B: 2}

	result, ok := rewrite.Manytd(inc).Apply(p)
	require.True(t, ok)
	assert.Equal(t, Pair{A: 2, B: 3}, result)

	// At least one match is required somewhere.
	_, ok = rewrite.Manytd(inc).Apply(1) // bare int: s applies directly
	assert.True(t, ok)
	_, ok = rewrite.Manytd(rewrite.Fail).Apply(p)
	assert.False(t, ok)
}

func TestManybuRewritesEveryMatch(t *testing.T) {
	inc := rewrite.Rule(incrementLeaves)
	p := Pair{A: 1, B: 2}

	result, ok := rewrite.Manybu(inc).Apply(p)
	require.True(t, ok)
	assert.Equal(t, Pair{A: 2, B: 3}, result)

	_, ok = rewrite.Manybu(rewrite.Fail).Apply(p)
	assert.False(t, ok)
}

func TestBreadthfirstLeavesSubjectNodeAlone(t *testing.T) {
	inc := rewrite.Attempt(rewrite.Rule(incrementLeaves))
	tree := &Tree{V: 1, L: &Tree{V: 2, L: nil, R: nil}, R: nil}

	result, ok := rewrite.Breadthfirst(inc).Apply(tree)
	require.True(t, ok)
	want := &Tree{V: 2, L: &Tree{V: 3, L: nil, R: nil}, R: nil}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}

	// An opaque subject has no children to visit; it comes back unchanged
	// even though the rule would match it directly.
	leaf, ok := rewrite.Breadthfirst(inc).Apply(5)
	require.True(t, ok)
	assert.Equal(t, 5, leaf)
}

func TestReduceRunsToFixedPoint(t *testing.T) {
	capAt3 := rewrite.Rule(func(v int) (rewrite.Term, bool) {
		if v >= 3 {
			return nil, false
		}
		return v + 1, true
	})
	p := Pair{A: 0, B: 2}

	result, ok := rewrite.Reduce(capAt3).Apply(p)
	require.True(t, ok)
	assert.Equal(t, Pair{A: 3, B: 3}, result)
}

func TestRepeatNFailsOnShortfall(t *testing.T) {
	inc := rewrite.Rule(incrementLeaves)

	result, ok := rewrite.RepeatN(inc, 3).Apply(0)
	require.True(t, ok)
	assert.Equal(t, 3, result)

	capAt2 := rewrite.Rule(func(v int) (rewrite.Term, bool) {
		if v >= 2 {
			return nil, false
		}
		return v + 1, true
	})
	_, ok = rewrite.RepeatN(capAt2, 3).Apply(0)
	assert.False(t, ok)
}

func TestRepeatUntilStopsAtCondition(t *testing.T) {
	inc := rewrite.Rule(incrementLeaves)

	result, ok := rewrite.RepeatUntil(inc, rewrite.Literal(5)).Apply(1)
	require.True(t, ok)
	assert.Equal(t, 5, result)
}

func TestRestoreRunsRollbackOnlyOnFailure(t *testing.T) {
	var rolledBack bool
	rollback := rewrite.QueryF(func(rewrite.Term) { rolledBack = true })

	result, ok := rewrite.Restore(rewrite.Id, rollback).Apply(1)
	require.True(t, ok)
	assert.Equal(t, 1, result)
	assert.False(t, rolledBack)

	_, ok = rewrite.Restore(rewrite.Fail, rollback).Apply(1)
	assert.False(t, ok)
	assert.True(t, rolledBack)
}

func TestRestoreAlwaysRunsRollbackOnBothPaths(t *testing.T) {
	count := 0
	rollback := rewrite.QueryF(func(rewrite.Term) { count++ })

	_, ok := rewrite.RestoreAlways(rewrite.Id, rollback).Apply(1)
	assert.True(t, ok)
	_, ok = rewrite.RestoreAlways(rewrite.Fail, rollback).Apply(1)
	assert.False(t, ok)
	assert.Equal(t, 2, count)
}

func TestMapLiftsOverSequencesOnly(t *testing.T) {
	inc := rewrite.Rule(incrementLeaves)

	result, ok := rewrite.Map(inc).Apply([]any{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, []any{2, 3, 4}, result)

	_, ok = rewrite.Map(inc).Apply(Pair{A: 1, B: 2})
	assert.False(t, ok)

	// First element failure fails the whole map.
	_, ok = rewrite.Map(inc).Apply([]any{"x", 2})
	assert.False(t, ok)
}

func TestDoLoopAppliesAtLeastOnce(t *testing.T) {
	dec := rewrite.Rulef(func(t rewrite.Term) rewrite.Term { return t.(int) - 1 })
	positive := rewrite.FromFunc(func(t rewrite.Term) (rewrite.Term, bool) {
		n := t.(int)
		return n, n > 0
	})

	result, ok := rewrite.DoLoop(dec, positive).Apply(3)
	require.True(t, ok)
	assert.Equal(t, 0, result)

	// Even when the condition is false from the start, s runs once.
	result, ok = rewrite.DoLoop(dec, positive).Apply(0)
	require.True(t, ok)
	assert.Equal(t, -1, result)
}

func TestOncetdAndOncebuPickDifferentNodes(t *testing.T) {
	tree := &Tree{V: 1, L: &Tree{V: 2, L: nil, R: nil}, R: nil}

	// The rule collapses a whole *Tree node to its payload, so the top-down
	// and bottom-up searches match at different depths.
	collapse := rewrite.Rule(func(n *Tree) (rewrite.Term, bool) {
		return n.V, true
	})

	td, ok := rewrite.Oncetd(collapse).Apply(tree)
	require.True(t, ok)
	assert.Equal(t, 1, td) // root collapsed first

	bu, ok := rewrite.Oncebu(collapse).Apply(tree)
	require.True(t, ok)
	want := &Tree{V: 1, L: 2, R: nil} // deepest matching node collapsed, root kept
	if diff := cmp.Diff(want, bu); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}
