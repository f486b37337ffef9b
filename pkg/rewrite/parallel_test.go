package rewrite_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/rewritekit/internal/parallel"
	"github.com/gitrdm/rewritekit/pkg/rewrite"
)

func TestParallelAllMatchesAllSemantics(t *testing.T) {
	pool := parallel.New(4)
	defer pool.Shutdown()

	p := Pair{A: 1, B: 2}
	var calls int64
	bump := rewrite.Rule(func(n int) (rewrite.Term, bool) {
		atomic.AddInt64(&calls, 1)
		return n + 1, true
	})

	result, ok := rewrite.ParallelAll(bump, pool).Apply(p)
	require.True(t, ok)
	assert.Equal(t, Pair{A: 2, B: 3}, result)
	assert.Equal(t, int64(2), calls)
}

func TestParallelAllFailsIfAnyChildFails(t *testing.T) {
	pool := parallel.New(4)
	defer pool.Shutdown()

	p := Pair{A: 1, B: 2}
	failOnOdd := rewrite.FromFunc(func(sub rewrite.Term) (rewrite.Term, bool) {
		n, ok := sub.(int)
		return n, ok && n%2 == 0
	})

	_, ok := rewrite.ParallelAll(failOnOdd, pool).Apply(p)
	assert.False(t, ok)
}

func TestParallelAllNoOpReturnsSameObject(t *testing.T) {
	pool := parallel.New(2)
	defer pool.Shutdown()

	p := &Pair{A: 1, B: 2}
	result, ok := rewrite.ParallelAll(rewrite.Id, pool).Apply(p)
	require.True(t, ok)
	assert.Same(t, p, result)
}
