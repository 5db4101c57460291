package typecheck

import (
	"reflect"
)

// checkInternal is the recursive entry point of the engine: it resolves
// forward references, applies the Any/test-double exemptions, strips one
// layer of annotation metadata, decomposes the descriptor and hands the
// value to the first checker the registry resolves. The core itself adds
// no path segment; only structural checkers that recurse into sub-values
// do, at the point of recursion.
func (r *Registry) checkInternal(value any, d *Descriptor, ctx *CheckContext) error {
	if d == nil {
		return nil
	}

	if d.Origin == OriginRef {
		resolved, err := resolveForwardRef(d, ctx)
		if err != nil {
			return err
		}
		if resolved == nil {
			// Treated as unchecked per the forward-ref policy.
			return nil
		}
		return r.checkInternal(value, resolved, ctx)
	}

	if d.Origin == OriginAny {
		return nil
	}
	if _, ok := value.(TestDouble); ok {
		return nil
	}
	// A value whose declared type itself derives from the "anything"
	// marker is exempt as well (duck-typed stand-ins).
	if _, ok := value.(AnyValue); ok {
		return nil
	}

	var metadata []any
	if len(d.Metadata) > 0 {
		metadata = d.Metadata
		d = &Descriptor{Origin: d.Origin, Params: d.Params}
	}

	origin, params := d.Origin, d.Params

	// A tuple descriptor with an explicit but empty parameter list means
	// "exactly the empty tuple", unlike the fully-unparameterized form
	// (nil params) which accepts any tuple.
	if origin == OriginTuple && params != nil && len(params) == 0 {
		params = []any{EmptyTupleMarker}
	}

	if checker := r.lookupChecker(origin, params, metadata); checker != nil {
		return checker(value, origin, params, ctx)
	}

	switch origin {
	case OriginInstance:
		if t, ok := payloadType(params); ok {
			if !isInstance(value, t) {
				return NewTypeCheckError("is not an instance of %s", t.String())
			}
			return nil
		}
	case OriginRef:
		// A textual reference that slipped through resolution.
		warnf("skipping type check against %q; this looks like an unresolved forward reference", d.RefName())
	}
	return nil
}

// resolveForwardRef resolves a forward-reference descriptor against the
// context environment. A nil descriptor with nil error means the value is
// treated as unchecked per the configured policy.
func resolveForwardRef(d *Descriptor, ctx *CheckContext) (*Descriptor, error) {
	name := d.RefName()

	var (
		resolved *Descriptor
		err      error
	)
	if ctx.Env == nil {
		err = &ResolutionError{Name: name}
	} else {
		resolved, err = ctx.Env.Resolve(name)
	}
	if err == nil {
		return resolved, nil
	}

	switch ctx.Config.ForwardRefPolicy {
	case ForwardRefError:
		if re, ok := err.(*ResolutionError); ok {
			return nil, re
		}
		return nil, &ResolutionError{Name: name, Err: err}
	case ForwardRefWarn:
		warnf("cannot resolve forward reference %q", name)
	}
	return nil, nil
}

func payloadType(params []any) (reflect.Type, bool) {
	if len(params) != 1 {
		return nil, false
	}
	t, ok := params[0].(reflect.Type)
	return t, ok
}

// isInstance reports whether the value's dynamic type satisfies t:
// identical or assignable for concrete types, implementing for interface
// types. A nil value only satisfies the none descriptor, never an
// instance descriptor.
func isInstance(value any, t reflect.Type) bool {
	if value == nil {
		return false
	}
	vt := reflect.TypeOf(value)
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	return vt == t || vt.AssignableTo(t)
}

// isSubclass reports whether class object vt is substitutable where t is
// required. For interface requirements the pointer method set counts too,
// since the class covers both value and pointer instances.
func isSubclass(vt, t reflect.Type) bool {
	if vt == nil || t == nil {
		return false
	}
	if t.Kind() == reflect.Interface {
		return vt.Implements(t) || reflect.PointerTo(vt).Implements(t)
	}
	return vt == t || vt.AssignableTo(t)
}

// classOf returns the value as a class object when it is one.
func classOf(value any) (reflect.Type, bool) {
	t, ok := value.(reflect.Type)
	return t, ok
}
