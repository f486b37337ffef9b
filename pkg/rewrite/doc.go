// Package rewrite implements a strategic term rewriting engine in the
// Stratego tradition: a library of small, composable, first-class
// strategies that traverse and transform immutable, heterogeneous
// tree-shaped values.
//
// A Strategy is a named partial function from a subject Term to a
// (possibly transformed) Term. It either succeeds, yielding a result term,
// or fails. Complex rewrites are built by combining the primitive
// strategies (Id, Fail, Rule, ...) with combinators (Seq, Choice, ...) and
// generic traversals (Child, All, One, Some, Topdown, Bottomup,
// Innermost, ...) that decompose arbitrary product-like nodes without
// knowing their constructors ahead of time, and reassemble them preserving
// type identity.
//
// The engine is single-threaded, apart from the opt-in ParallelAll
// traversal, and dynamically typed over a universal Term representation:
// any Go value. Type-filtered builders such as Rule
// fail (rather than panic) when applied to a subject of the wrong runtime
// type. Reconstruction always yields a value of the same concrete type as
// the subject it replaces, and a traversal that changes nothing returns
// the original subject unchanged, preserving sharing for callers that rely
// on pointer identity to detect "no rewrite happened".
package rewrite
