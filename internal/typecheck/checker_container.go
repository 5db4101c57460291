package typecheck

import (
	"reflect"
)

func descParam(p any) *Descriptor {
	d, _ := p.(*Descriptor)
	return d
}

func isAnyDesc(p any) bool {
	d := descParam(p)
	return d != nil && d.Origin == OriginAny
}

func checkList(value any, origin Origin, params []any, ctx *CheckContext) error {
	if value == nil || reflect.ValueOf(value).Kind() != reflect.Slice {
		return NewTypeCheckError("is not a list")
	}

	if len(params) == 0 || isAnyDesc(params[0]) {
		return nil
	}
	elem := descParam(params[0])
	if elem == nil {
		return nil
	}
	for s := range ctx.Config.CollectionCheckStrategy.IterateSamples(iterateElements(value)) {
		if err := ctx.Check(s.Value, elem); err != nil {
			return withPath(err, "item %d", s.Index)
		}
	}
	return nil
}

func checkSequence(value any, origin Origin, params []any, ctx *CheckContext) error {
	if !isSequenceValue(value) {
		return NewTypeCheckError("is not a sequence")
	}

	if len(params) == 0 || isAnyDesc(params[0]) {
		return nil
	}
	elem := descParam(params[0])
	if elem == nil {
		return nil
	}
	for s := range ctx.Config.CollectionCheckStrategy.IterateSamples(iterateElements(value)) {
		if err := ctx.Check(s.Value, elem); err != nil {
			return withPath(err, "item %d", s.Index)
		}
	}
	return nil
}

func isSequenceValue(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.(SequenceValue); ok {
		return true
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		return true
	}
	return false
}

// checkMapping validates the dict/mapping/mutablemapping family. The
// requested origin decides the category: a plain dict requirement only
// accepts Go maps, while the mapping requirements also accept the
// substitution interfaces.
func checkMapping(value any, origin Origin, params []any, ctx *CheckContext) error {
	isGoMap := value != nil && reflect.ValueOf(value).Kind() == reflect.Map

	switch origin {
	case OriginDict:
		if !isGoMap {
			return NewTypeCheckError("is not a dict")
		}
	case OriginMutableMapping:
		if !isGoMap {
			if _, ok := value.(MutableMapping); !ok {
				return NewTypeCheckError("is not a mutable mapping")
			}
		}
	default:
		if !isGoMap {
			if _, ok := value.(Mapping); !ok {
				return NewTypeCheckError("is not a mapping")
			}
		}
	}

	if len(params) != 2 {
		return nil
	}
	keyDesc, valueDesc := descParam(params[0]), descParam(params[1])
	if (keyDesc == nil || keyDesc.Origin == OriginAny) && (valueDesc == nil || valueDesc.Origin == OriginAny) {
		return nil
	}

	for s := range ctx.Config.CollectionCheckStrategy.IterateSamples(iteratePairs(value)) {
		if keyDesc != nil {
			if err := ctx.Check(s.Key, keyDesc); err != nil {
				return withPath(err, "key %s", reprValue(s.Key))
			}
		}
		if valueDesc != nil {
			if err := ctx.Check(s.Value, valueDesc); err != nil {
				return withPath(err, "value of key %s", reprValue(s.Key))
			}
		}
	}
	return nil
}

// checkSet validates the set/frozenset family: the category must match
// the requested parametrization, and when an element type is given every
// sampled member is checked, with failures raised rather than truncated.
func checkSet(value any, origin Origin, params []any, ctx *CheckContext) error {
	if origin == OriginFrozenSet {
		if _, ok := value.(FrozenSetValue); !ok {
			return NewTypeCheckError("is not a frozenset")
		}
	} else if !isSetValue(value) {
		return NewTypeCheckError("is not a set")
	}

	if len(params) == 0 || isAnyDesc(params[0]) {
		return nil
	}
	elem := descParam(params[0])
	if elem == nil {
		return nil
	}
	for s := range ctx.Config.CollectionCheckStrategy.IterateSamples(iterateMembers(value)) {
		if err := ctx.Check(s.Value, elem); err != nil {
			return withPath(err, "[%s]", reprValue(s.Value))
		}
	}
	return nil
}

func isSetValue(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.(SetValue); ok {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Map &&
		rv.Type().Elem().Kind() == reflect.Struct &&
		rv.Type().Elem().NumField() == 0
}

func checkTuple(value any, origin Origin, params []any, ctx *CheckContext) error {
	if value == nil {
		return NewTypeCheckError("is not a tuple")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return NewTypeCheckError("is not a tuple")
	}

	if len(params) == 0 {
		// Unparameterized tuple: any tuple passes.
		return nil
	}

	if s, ok := params[len(params)-1].(sentinel); ok && s == EllipsisMarker {
		// Variadic homogeneous tuple: every element matches the single
		// preceding descriptor.
		elem := descParam(params[0])
		if elem == nil {
			return nil
		}
		for s := range ctx.Config.CollectionCheckStrategy.IterateSamples(iterateElements(value)) {
			if err := ctx.Check(s.Value, elem); err != nil {
				return withPath(err, "item %d", s.Index)
			}
		}
		return nil
	}

	if s, ok := params[0].(sentinel); ok && s == EmptyTupleMarker && len(params) == 1 {
		if rv.Len() != 0 {
			return NewTypeCheckError("is not an empty tuple")
		}
		return nil
	}

	if rv.Len() != len(params) {
		return NewTypeCheckError("has wrong number of elements (expected %d, got %d instead)",
			len(params), rv.Len())
	}
	for i, p := range params {
		elem := descParam(p)
		if elem == nil {
			continue
		}
		if err := ctx.Check(rv.Index(i).Interface(), elem); err != nil {
			return withPath(err, "item %d", i)
		}
	}
	return nil
}

// checkNamedTuple validates the record-like tuple variant: the value must
// be an instance of the exact declared tuple-record type, and each named
// field's attribute is checked against its declared descriptor.
func checkNamedTuple(value any, origin Origin, params []any, ctx *CheckContext) error {
	tr, ok := params[0].(*TupleRecord)
	if !ok || len(params) != 1 {
		return NewDeclarationError("named tuple descriptor has no tuple-record payload")
	}

	if !isInstance(value, tr.Type) {
		return NewTypeCheckError("is not a named tuple of type %s", tr.Type.String())
	}

	sv := reflect.Indirect(reflect.ValueOf(value))
	for _, field := range tr.Fields {
		fv := sv.FieldByName(field.Name)
		if !fv.IsValid() {
			return NewTypeCheckError("has no attribute named %q", field.Name)
		}
		if err := ctx.Check(fv.Interface(), field.Desc); err != nil {
			return withPath(err, "attribute '%s'", field.Name)
		}
	}
	return nil
}
