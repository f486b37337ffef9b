package rewrite

import (
	"context"

	"github.com/gitrdm/rewritekit/internal/parallel"
)

// ParallelAll behaves exactly like All(s), except each child is submitted
// to pool for concurrent evaluation rather than being visited in order.
// Like All, it requires s to succeed on every child; it fails as soon as
// any child fails, still waiting for the others to finish first so the
// pool's goroutines are never abandoned mid-task. Results are assembled
// back into the original child order regardless of completion order, so
// ParallelAll(s, pool)(t) is observably equivalent to All(s)(t) whenever s
// has no side effects that depend on visitation order, just faster when
// s is CPU-heavy per child and t has many children.
func ParallelAll(s Strategy, pool *parallel.Pool) Strategy {
	return Mk("parallel-all", func(t Term) (Term, bool) {
		_, kids, rebuild, ok := decompose(t)
		if !ok || len(kids) == 0 {
			return t, true // no children: vacuously succeeds, like All
		}

		results := make([]Term, len(kids))
		oks := make([]bool, len(kids))
		done := make(chan struct{}, len(kids))
		ctx := context.Background()

		for i, k := range kids {
			i, k := i, k
			err := pool.Submit(ctx, func() {
				defer func() { done <- struct{}{} }()
				r, applyOk := s.Apply(k)
				results[i], oks[i] = r, applyOk
			})
			if err != nil {
				// Pool rejected the task outright (shut down); run it
				// inline so the traversal still completes correctly.
				r, applyOk := s.Apply(k)
				results[i], oks[i] = r, applyOk
				done <- struct{}{}
			}
		}

		for range kids {
			<-done
		}

		changed := false
		for i, r := range results {
			if !oks[i] {
				return nil, false
			}
			if !sameTerm(r, kids[i]) {
				changed = true
			}
		}
		if !changed {
			return t, true
		}
		return rebuild(results), true
	})
}
