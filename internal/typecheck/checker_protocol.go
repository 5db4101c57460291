package typecheck

import (
	"reflect"
)

// checkProtocol validates duck-typed conformance to a structural
// interface: every declared attribute must be present and conform to its
// declared type, and every declared method must be present, callable and
// signature-compatible. Members are visited in sorted order so error
// output is deterministic.
func checkProtocol(value any, origin Origin, params []any, ctx *CheckContext) error {
	decl, ok := params[0].(*InterfaceDecl)
	if !ok || len(params) != 1 {
		return NewDeclarationError("interface descriptor has no interface payload")
	}
	ifaceName := decl.Name
	if ifaceName == "" {
		ifaceName = "interface"
	}

	for _, name := range decl.MemberNames() {
		if attrDesc, isAttr := decl.Attrs[name]; isAttr {
			attr, found := attributeOf(value, name)
			if !found {
				return NewTypeCheckError(
					"is not compatible with the %s interface because it has no attribute named '%s'",
					ifaceName, name)
			}
			if err := ctx.Check(attr, attrDesc); err != nil {
				if tce, isCheck := asCheckError(err); isCheck {
					return NewTypeCheckError(
						"is not compatible with the %s interface because its '%s' attribute %s",
						ifaceName, name, tce.Error())
				}
				return err
			}
			continue
		}

		ifaceSig := decl.Methods[name]
		subjectSig, found, callable := methodOf(value, name)
		if !found {
			return NewTypeCheckError(
				"is not compatible with the %s interface because it has no method named '%s'",
				ifaceName, name)
		}
		if !callable {
			return NewTypeCheckError(
				"is not compatible with the %s interface because its '%s' attribute is not a callable",
				ifaceName, name)
		}
		if err := checkSignatureCompatible(subjectSig, ifaceSig); err != nil {
			if tce, isCheck := asCheckError(err); isCheck {
				return NewTypeCheckError(
					"is not compatible with the %s interface because its '%s' method %s",
					ifaceName, name, tce.Error())
			}
			return err
		}
	}
	return nil
}

// attributeOf fetches a same-named data attribute from the subject: an
// exported struct field, either directly or through a pointer. Class
// objects have no data attributes.
func attributeOf(value any, name string) (any, bool) {
	if value == nil {
		return nil, false
	}
	if _, isClass := classOf(value); isClass {
		return nil, false
	}
	rv := reflect.Indirect(reflect.ValueOf(value))
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	fv := rv.FieldByName(name)
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}
	return fv.Interface(), true
}

// methodOf locates the subject's same-named method and derives its
// signature. An explicitly provided signature (SignatureProvider) takes
// precedence over reflection; reflection yields unnamed
// positional-or-keyword parameters with no defaults. A func-typed struct
// field counts as a callable attribute.
func methodOf(value any, name string) (sig Signature, found bool, callable bool) {
	if provider, ok := value.(SignatureProvider); ok {
		if s, declared := provider.TypeSignatures()[name]; declared {
			return s, true, true
		}
	}

	// Class objects: look the method up on the type itself (and on its
	// pointer method set), dropping the explicit receiver input.
	if t, isClass := classOf(value); isClass {
		if m, ok := t.MethodByName(name); ok {
			return signatureFromFunc(m.Type, true), true, true
		}
		if t.Kind() != reflect.Pointer {
			if m, ok := reflect.PointerTo(t).MethodByName(name); ok {
				return signatureFromFunc(m.Type, true), true, true
			}
		}
		return Signature{}, false, false
	}

	if value == nil {
		return Signature{}, false, false
	}
	rv := reflect.ValueOf(value)
	if m := rv.MethodByName(name); m.IsValid() {
		return signatureFromFunc(m.Type(), false), true, true
	}

	sv := reflect.Indirect(rv)
	if sv.Kind() == reflect.Struct {
		fv := sv.FieldByName(name)
		if fv.IsValid() && fv.CanInterface() {
			if fv.Kind() == reflect.Func {
				return signatureFromFunc(fv.Type(), false), true, true
			}
			return Signature{}, true, false
		}
	}
	return Signature{}, false, false
}
