package rewrite

// The query aggregators walk a term top-down, left to right, folding or
// collecting information without producing a rewritten term. They are
// plain functions rather than Strategy values because their result is a
// collection, a count, or a fold accumulator rather than a rewritten
// term. They share the same Shape-driven decomposition as every traversal
// in this package and visit children left to right (a map's children in
// its own iteration order, consistent within a single traversal).

// Collect walks t top-down, left to right, and returns the results of f
// for every node whose runtime type is T and for which f reports ok.
func Collect[T any, R any](f func(T) (R, bool)) func(Term) []R {
	return func(t Term) []R {
		var acc []R
		visitTopDown(t, func(node Term) {
			if v, ok := node.(T); ok {
				if r, ok2 := f(v); ok2 {
					acc = append(acc, r)
				}
			}
		})
		return acc
	}
}

// CollectAll is Collect's variant for an f that itself returns a
// collection per matching node; all of the per-node collections are
// concatenated in visitation order.
func CollectAll[T any, R any](f func(T) ([]R, bool)) func(Term) []R {
	return func(t Term) []R {
		var acc []R
		visitTopDown(t, func(node Term) {
			if v, ok := node.(T); ok {
				if rs, ok2 := f(v); ok2 {
					acc = append(acc, rs...)
				}
			}
		})
		return acc
	}
}

// Count sums the integer values f reports across every node of runtime
// type T for which f succeeds.
func Count[T any](f func(T) (int, bool)) func(Term) int {
	return func(t Term) int {
		total := 0
		visitTopDown(t, func(node Term) {
			if v, ok := node.(T); ok {
				if n, ok2 := f(v); ok2 {
					total += n
				}
			}
		})
		return total
	}
}

// Everything folds f's result at every node of runtime type T into an
// accumulator seeded at seed, combining left to right with combine.
// Nodes where f does not match leave the accumulator untouched.
func Everything[T any, R any](seed R, combine func(acc, next R) R, f func(T) (R, bool)) func(Term) R {
	return func(t Term) R {
		acc := seed
		visitTopDown(t, func(node Term) {
			if v, ok := node.(T); ok {
				if r, ok2 := f(v); ok2 {
					acc = combine(acc, r)
				}
			}
		})
		return acc
	}
}

// Para implements the paramorphism: f is called on every node bottom-up,
// receiving the node itself and the already-folded results of its
// children (in order), and returns this node's folded result.
func Para[R any](f func(t Term, childResults []R) R) func(Term) R {
	var walk func(Term) R
	walk = func(t Term) R {
		_, kids, _, ok := decompose(t)
		var childResults []R
		if ok {
			childResults = make([]R, len(kids))
			for i, k := range kids {
				childResults[i] = walk(k)
			}
		}
		return f(t, childResults)
	}
	return walk
}

// visitTopDown calls visit on every node of t, itself included, in
// top-down left-to-right order.
func visitTopDown(t Term, visit func(Term)) {
	visit(t)
	_, kids, _, ok := decompose(t)
	if !ok {
		return
	}
	for _, k := range kids {
		visitTopDown(k, visit)
	}
}
