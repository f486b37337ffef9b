package rewrite

import (
	"fmt"
	"reflect"
)

// Child applies s to the i-th child (1-indexed) of the subject's children
// under its detected Shape. It fails if i is out of range, or if s fails
// on that child. A negative i is a programmer error and panics; only a
// too-small (zero) or too-large in-range miss is an ordinary failure. If
// s succeeds but returns the same child back (by sameTerm), the original
// subject is returned unchanged; otherwise the subject is rebuilt with
// only that position replaced.
func Child(i int, s Strategy) Strategy {
	if i < 0 {
		panic(errorf("rewrite: negative child index %d", i))
	}
	return Mk("child", func(t Term) (Term, bool) {
		_, kids, rebuild, ok := decompose(t)
		if !ok || i < 1 || i > len(kids) {
			return nil, false
		}
		idx := i - 1
		newChild, ok := s.Apply(kids[idx])
		if !ok {
			return nil, false
		}
		if sameTerm(newChild, kids[idx]) {
			return t, true
		}
		replaced := make([]Term, len(kids))
		copy(replaced, kids)
		replaced[idx] = newChild
		return rebuild(replaced), true
	})
}

// All applies s to every child, in order, failing as soon as any child
// fails. If every result is unchanged from its original child, the
// subject is returned unchanged (no allocation); otherwise it is rebuilt
// with all (possibly partially) replaced children.
func All(s Strategy) Strategy {
	return Mk("all", func(t Term) (Term, bool) {
		_, kids, rebuild, ok := decompose(t)
		if !ok {
			return t, true // no children: vacuously succeeds, same object
		}
		if len(kids) == 0 {
			return t, true
		}
		replaced := make([]Term, len(kids))
		changed := false
		for i, k := range kids {
			r, ok := s.Apply(k)
			if !ok {
				return nil, false
			}
			replaced[i] = r
			if !sameTerm(r, k) {
				changed = true
			}
		}
		if !changed {
			return t, true
		}
		return rebuild(replaced), true
	})
}

// One traverses children in order, succeeding the moment s succeeds on
// one of them. Later children are left untouched. Fails if s fails on
// every child (or if the subject has no children).
func One(s Strategy) Strategy {
	return Mk("one", func(t Term) (Term, bool) {
		_, kids, rebuild, ok := decompose(t)
		if !ok || len(kids) == 0 {
			return nil, false
		}
		for i, k := range kids {
			r, ok := s.Apply(k)
			if !ok {
				continue
			}
			if sameTerm(r, k) {
				return t, true
			}
			replaced := make([]Term, len(kids))
			copy(replaced, kids)
			replaced[i] = r
			return rebuild(replaced), true
		}
		return nil, false
	})
}

// Some applies s to every child, succeeding if it succeeds on at least
// one. Children where s failed keep their original value; children where
// s succeeded are replaced by its result. Fails only if s fails on every
// child.
func Some(s Strategy) Strategy {
	return Mk("some", func(t Term) (Term, bool) {
		_, kids, rebuild, ok := decompose(t)
		if !ok || len(kids) == 0 {
			return nil, false
		}
		replaced := make([]Term, len(kids))
		anySucceeded := false
		changed := false
		for i, k := range kids {
			r, ok := s.Apply(k)
			if !ok {
				replaced[i] = k
				continue
			}
			anySucceeded = true
			replaced[i] = r
			if !sameTerm(r, k) {
				changed = true
			}
		}
		if !anySucceeded {
			return nil, false
		}
		if !changed {
			return t, true
		}
		return rebuild(replaced), true
	})
}

// Congruence applies one sub-strategy per child, positionally: the i-th
// strategy to the i-th child. It only applies to Product- and
// Rewritable-shaped subjects (it has no sensible reading for maps or
// sequences of unknown length) and fails immediately if the number of
// strategies does not match the subject's arity.
func Congruence(ss ...Strategy) Strategy {
	return Mk("congruence", func(t Term) (Term, bool) {
		shape, kids, rebuild, ok := decompose(t)
		if !ok || shape != ShapeProduct && shape != ShapeRewritable {
			return nil, false
		}
		if len(ss) != len(kids) {
			return nil, false
		}
		replaced := make([]Term, len(kids))
		changed := false
		for i, k := range kids {
			r, ok := ss[i].Apply(k)
			if !ok {
				return nil, false
			}
			replaced[i] = r
			if !sameTerm(r, k) {
				changed = true
			}
		}
		if !changed {
			return t, true
		}
		return rebuild(replaced), true
	})
}

// decompose is the shared entry point the one-level traversals use to
// view a subject's children; ok is false for Opaque terms (no children to
// traverse at all).
func decompose(t Term) (shape Shape, kids []Term, rebuild func([]Term) Term, ok bool) {
	shape, kids, rebuild = shapeOf(t)
	return shape, kids, rebuild, shape != ShapeOpaque
}

// sameTerm reports whether new and old should be treated as "the same
// child" for the purposes of skipping a rebuild: reference equality for
// heap values (pointers, maps, slices), structural equality for
// comparable value types (primitives, value structs, KeyValue pairs).
func sameTerm(newValue, old Term) bool {
	if newValue == nil || old == nil {
		return newValue == nil && old == nil
	}
	nv := reflect.ValueOf(newValue)
	ov := reflect.ValueOf(old)
	if nv.Type() != ov.Type() {
		return false
	}
	switch nv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return nv.Pointer() == ov.Pointer()
	case reflect.Slice:
		return nv.Pointer() == ov.Pointer() && nv.Len() == ov.Len()
	default:
		if nv.Type().Comparable() {
			return newValue == old
		}
		return fmt.Sprintf("%#v", newValue) == fmt.Sprintf("%#v", old)
	}
}
