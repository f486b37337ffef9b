package rewrite

import (
	"reflect"
	"sync"
)

// duper rebuilds a value of one concrete struct type from a replacement
// children slice. It is derived once per type and cached rather than
// re-derived on every call.
type duper func(original reflect.Value, children []Term) Term

// duperCache maps a struct's reflect.Type to its duper. A sync.Map is
// used instead of a mutex-guarded map because inserts are idempotent
// (building the same duper twice is harmless) and lookups vastly
// outnumber insertions once a rewrite is under way.
var duperCache sync.Map // map[reflect.Type]duper

// duplicate produces a new product node of the exact runtime class of
// original, with fields taken from children. It is the engine's
// Duplicator: callers (the one-level traversals) are responsible for
// detecting "nothing changed" themselves and skipping this call entirely,
// since duplicate always allocates.
func duplicate(original Term, children []Term) Term {
	rv := reflect.ValueOf(original)
	isPtr := rv.Kind() == reflect.Ptr
	sv := derefValue(rv)
	st := sv.Type()

	d, ok := duperCache.Load(st)
	if !ok {
		d = buildDuper(st)
		duperCache.Store(st, d)
	}

	result := d.(duper)(sv, children)
	if isPtr {
		p := reflect.New(st)
		p.Elem().Set(reflect.ValueOf(result))
		return p.Interface()
	}
	return result
}

// buildDuper derives the duper for a struct type once, by locating its
// exported fields in declaration order. Canonical singletons (structs with
// no exported fields) get a duper that simply returns the original value:
// reconstruction of a one-inhabitant class is the identity.
func buildDuper(st reflect.Type) duper {
	type fieldSlot struct {
		index     int
		fieldType reflect.Type
	}
	var slots []fieldSlot
	for i := 0; i < st.NumField(); i++ {
		if st.Field(i).PkgPath != "" {
			continue
		}
		slots = append(slots, fieldSlot{index: i, fieldType: st.Field(i).Type})
	}

	if len(slots) == 0 {
		return func(original reflect.Value, children []Term) Term {
			return original.Interface()
		}
	}

	return func(original reflect.Value, children []Term) Term {
		if len(children) != len(slots) {
			panic(errorf("rewrite: duplication failed for class %s: expected %d children, got %d", st, len(slots), len(children)))
		}

		out := reflect.New(st).Elem()
		for i, slot := range slots {
			cv, err := coerceField(slot.fieldType, children[i])
			if err != nil {
				panic(errorf("rewrite: duplication failed for class %s field %d (%s): %v", st, i, st.Field(slot.index).Name, err))
			}
			out.Field(slot.index).Set(cv)
		}
		return out.Interface()
	}
}

// coerceField adapts a replacement child to a struct field's declared
// type. Primitive-typed fields accept a single-field "boxed wrapper"
// child by automatically unwrapping its payload, per the duplication
// algorithm's unboxing rule.
func coerceField(fieldType reflect.Type, child Term) (reflect.Value, error) {
	if child == nil {
		return reflect.Zero(fieldType), nil
	}
	cv := reflect.ValueOf(child)
	if cv.Type().AssignableTo(fieldType) {
		return cv, nil
	}

	if isPrimitiveKind(fieldType.Kind()) && cv.Kind() == reflect.Struct {
		if unwrapped, ok := unboxSingleField(cv); ok {
			if unwrapped.Type().AssignableTo(fieldType) {
				return unwrapped, nil
			}
			if unwrapped.Type().ConvertibleTo(fieldType) {
				return unwrapped.Convert(fieldType), nil
			}
		}
	}

	if cv.Type().ConvertibleTo(fieldType) {
		return cv.Convert(fieldType), nil
	}

	return reflect.Value{}, errorf("cannot assign %s to field of type %s", cv.Type(), fieldType)
}

// unboxSingleField returns the sole exported field's value of a one-field
// struct, matching the engine's "boxed wrapper" convention.
func unboxSingleField(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	exported := -1
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			continue
		}
		if exported != -1 {
			return reflect.Value{}, false // more than one exported field: not a wrapper
		}
		exported = i
	}
	if exported == -1 {
		return reflect.Value{}, false
	}
	return v.Field(exported), true
}

func isPrimitiveKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}
