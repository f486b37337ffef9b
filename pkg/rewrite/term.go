package rewrite

import (
	"fmt"
	"reflect"
)

// Term is the universe of values the engine manipulates: any value the
// host language can hold. Terms are treated as immutable; rewriting
// produces new terms that share unchanged subtrees with their originals.
type Term = any

// Rewritable is a host-implemented capability that lets the engine
// decompose and reassemble a value without knowing its concrete shape.
// A type opts into generic traversal by implementing Rewritable instead
// of (or in addition to) exposing itself as a reflect-visible Product.
type Rewritable interface {
	// Arity reports how many children Deconstruct returns.
	Arity() int

	// Deconstruct returns the node's children in a fixed order.
	Deconstruct() []Term

	// Reconstruct builds a new value of the same concrete type from a
	// replacement children slice of exactly Arity() elements.
	Reconstruct(children []Term) Term
}

// Shape classifies how the engine will decompose a Term into children.
// Shapes are tried in this fixed order: Rewritable, then Product, then
// Mapping, then Sequence; anything else is Opaque and has no children.
type Shape int

const (
	// ShapeOpaque terms have no children and are left untouched by every
	// traversal.
	ShapeOpaque Shape = iota
	// ShapeRewritable terms implement the Rewritable interface.
	ShapeRewritable
	// ShapeProduct terms are structs (or pointers to structs) that do not
	// implement Rewritable; their exported fields, in declaration order,
	// are the children.
	ShapeProduct
	// ShapeMapping terms are Go maps; each child is a KeyValue pair.
	ShapeMapping
	// ShapeSequence terms are slices or arrays; each child is an element.
	ShapeSequence
)

// KeyValue is the child representation the engine uses for a single entry
// of a ShapeMapping term. The pair is replaced atomically: a rewrite of a
// KeyValue child replaces both the key and the value in the rebuilt map,
// never the value alone.
type KeyValue struct {
	Key   Term
	Value Term
}

// shapeOf classifies t and, for non-opaque shapes, returns its ordered
// children and a rebuild function that produces a new value of the exact
// same concrete type from a replacement children slice.
//
// For Rewritable terms and Products with at least one exported field,
// rebuild panics (a programmer error, not a strategy failure) if invoked
// with the wrong number of children; the Mapping and Sequence rebuilds
// build a map or slice from however many children they are given.
// Callers within this package only ever pass back slices of the same
// length they received.
func shapeOf(t Term) (shape Shape, kids []Term, rebuild func([]Term) Term) {
	if t == nil {
		return ShapeOpaque, nil, nil
	}

	if r, ok := t.(Rewritable); ok {
		kids = r.Deconstruct()
		if len(kids) != r.Arity() {
			panic(errorf("rewrite: Rewritable %T reports Arity()=%d but Deconstruct() returned %d children", t, r.Arity(), len(kids)))
		}
		return ShapeRewritable, kids, func(children []Term) Term {
			if len(children) != r.Arity() {
				panic(errorf("rewrite: Reconstruct on %T expects %d children, got %d", t, r.Arity(), len(children)))
			}
			return r.Reconstruct(children)
		}
	}

	rv := reflect.ValueOf(t)
	switch underlyingKind(rv) {
	case reflect.Struct:
		kids = productFields(rv)
		return ShapeProduct, kids, func(children []Term) Term {
			return duplicate(t, children)
		}
	case reflect.Map:
		kids = mapEntries(rv)
		return ShapeMapping, kids, func(children []Term) Term {
			return rebuildMap(rv.Type(), children)
		}
	case reflect.Slice, reflect.Array:
		kids = sequenceElements(rv)
		return ShapeSequence, kids, func(children []Term) Term {
			return rebuildSequence(t, rv, children)
		}
	default:
		return ShapeOpaque, nil, nil
	}
}

// underlyingKind dereferences pointers so that both T and *T values of a
// struct, map, or slice are classified identically.
func underlyingKind(rv reflect.Value) reflect.Kind {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Invalid
		}
		rv = rv.Elem()
	}
	return rv.Kind()
}

func derefValue(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	return rv
}

// productFields lists the exported field values of a struct (or pointer
// to struct) in declaration order. A struct with no exported fields
// yields an empty, non-nil slice: it is a canonical singleton, handled by
// the duplicator rather than excluded from the Product shape entirely.
func productFields(rv reflect.Value) []Term {
	sv := derefValue(rv)
	st := sv.Type()
	kids := make([]Term, 0, sv.NumField())
	for i := 0; i < sv.NumField(); i++ {
		if st.Field(i).PkgPath != "" {
			continue // unexported field: not part of the product's children
		}
		kids = append(kids, sv.Field(i).Interface())
	}
	return kids
}

func mapEntries(rv reflect.Value) []Term {
	mv := derefValue(rv)
	kids := make([]Term, 0, mv.Len())
	iter := mv.MapRange()
	for iter.Next() {
		kids = append(kids, KeyValue{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
	}
	return kids
}

func sequenceElements(rv reflect.Value) []Term {
	sv := derefValue(rv)
	kids := make([]Term, sv.Len())
	for i := 0; i < sv.Len(); i++ {
		kids[i] = sv.Index(i).Interface()
	}
	return kids
}

func rebuildMap(mapType reflect.Type, children []Term) Term {
	out := reflect.MakeMapWithSize(concreteMapType(mapType), len(children))
	var bad []error
	for i, c := range children {
		kv, ok := c.(KeyValue)
		if !ok {
			bad = append(bad, fmt.Errorf("child %d: expected KeyValue, got %T", i, c))
			continue
		}
		out.SetMapIndex(reflect.ValueOf(kv.Key), reflect.ValueOf(kv.Value))
	}
	if err := collectErrors(bad...); err != nil {
		panic(errorf("rewrite: mapping rebuild failed: %v", err))
	}
	if mapType.Kind() == reflect.Ptr {
		p := reflect.New(mapType.Elem())
		p.Elem().Set(out)
		return p.Interface()
	}
	return out.Interface()
}

func concreteMapType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

func rebuildSequence(original Term, rv reflect.Value, children []Term) Term {
	sv := derefValue(rv)
	elemType := sv.Type().Elem()
	out := reflect.MakeSlice(reflect.SliceOf(elemType), len(children), len(children))
	for i, c := range children {
		cv := reflect.ValueOf(c)
		if !cv.IsValid() {
			cv = reflect.Zero(elemType)
		}
		if !cv.Type().AssignableTo(elemType) && cv.Type().ConvertibleTo(elemType) {
			cv = cv.Convert(elemType)
		}
		out.Index(i).Set(cv)
	}
	if sv.Type() != reflect.SliceOf(elemType) {
		// Named slice type: convert back to preserve the concrete type.
		named := reflect.New(sv.Type()).Elem()
		named.Set(out.Convert(sv.Type()))
		out = named
	}
	if rv.Kind() == reflect.Ptr {
		p := reflect.New(out.Type())
		p.Elem().Set(out)
		return p.Interface()
	}
	return out.Interface()
}
