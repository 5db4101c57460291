package typecheck

import (
	"fmt"
	"strings"
)

func checkTypeVar(value any, origin Origin, params []any, ctx *CheckContext) error {
	decl, ok := params[0].(*TypeVarDecl)
	if !ok || len(params) != 1 {
		return NewDeclarationError("type variable descriptor has no declaration payload")
	}
	return checkTypeVarValue(value, decl, ctx, false)
}

// checkTypeVarValue validates a value against a type variable. In
// subclass mode the value is itself a class and must be a subclass of
// the bound (or of one of the constraints).
func checkTypeVarValue(value any, decl *TypeVarDecl, ctx *CheckContext, subclassCheck bool) error {
	if decl.Bound != nil {
		annotation := decl.Bound
		if subclassCheck {
			annotation = SubclassOf(decl.Bound)
		}
		return ctx.Check(value, annotation)
	}

	if len(decl.Constraints) == 0 {
		return nil
	}
	for _, constraint := range decl.Constraints {
		annotation := constraint
		if subclassCheck {
			annotation = SubclassOf(constraint)
		}
		err := ctx.Check(value, annotation)
		if err == nil {
			return nil
		}
		if _, isCheck := asCheckError(err); !isCheck {
			return err
		}
	}

	names := make([]string, len(decl.Constraints))
	for i, constraint := range decl.Constraints {
		names[i] = constraint.String()
	}
	return NewTypeCheckError("does not match any of the constraints (%s)", strings.Join(names, ", "))
}

// checkParamSpec always succeeds: parameter-specification placeholders
// have no runtime representation to validate against.
func checkParamSpec(value any, origin Origin, params []any, ctx *CheckContext) error {
	return nil
}

// checkAlias validates a new-type value against its underlying supertype.
func checkAlias(value any, origin Origin, params []any, ctx *CheckContext) error {
	decl, ok := params[0].(*AliasDecl)
	if !ok || len(params) != 1 {
		return NewDeclarationError("alias descriptor has no declaration payload")
	}
	return ctx.Check(value, decl.Super)
}

// checkNotRequired outside of a record position simply unwraps to the
// underlying descriptor.
func checkNotRequired(value any, origin Origin, params []any, ctx *CheckContext) error {
	inner := descParam(params[0])
	if inner == nil {
		return nil
	}
	return ctx.Check(value, inner)
}

func checkSelf(value any, origin Origin, params []any, ctx *CheckContext) error {
	if ctx.SelfType == nil {
		return NewTypeCheckError("cannot be checked against Self outside of a method call")
	}

	if vt, isClass := classOf(value); isClass {
		if !isSubclass(vt, ctx.SelfType) {
			return NewTypeCheckError("is not a subclass of the self type (%s)", ctx.SelfType.String())
		}
		return nil
	}
	if !isInstance(value, ctx.SelfType) {
		return NewTypeCheckError("is not an instance of the self type (%s)", ctx.SelfType.String())
	}
	return nil
}

// checkClass validates a class-object descriptor: the value must be a
// class object, optionally a subclass of the inner descriptor. The inner
// descriptor may itself be a union, a bound or constrained type
// variable, a structural interface or the self type; each recurses with
// subclass semantics.
func checkClass(value any, origin Origin, params []any, ctx *CheckContext) error {
	vt, isClass := classOf(value)
	if !isClass {
		return NewTypeCheckError("is not a class")
	}
	if len(params) == 0 {
		return nil
	}
	inner := descParam(params[0])
	if inner == nil {
		return nil
	}

	if inner.Origin == OriginRef {
		resolved, err := resolveForwardRef(inner, ctx)
		if err != nil {
			return err
		}
		if resolved == nil {
			return nil
		}
		inner = resolved
	}

	switch inner.Origin {
	case OriginAny:
		return nil
	case OriginSelf:
		return checkSelf(value, inner.Origin, inner.Params, ctx)
	case OriginInterface:
		return checkProtocol(value, inner.Origin, inner.Params, ctx)
	case OriginTypeVar:
		decl, ok := inner.Params[0].(*TypeVarDecl)
		if !ok {
			return NewDeclarationError("type variable descriptor has no declaration payload")
		}
		return checkTypeVarValue(value, decl, ctx, true)
	case OriginUnion:
		return checkClassUnion(value, inner.Params, ctx)
	case OriginInstance:
		t, ok := payloadType(inner.Params)
		if !ok {
			return NewDeclarationError("instance descriptor has no type payload")
		}
		if !isSubclass(vt, t) {
			return NewTypeCheckError("is not a subclass of %s", t.String())
		}
		return nil
	}
	return NewDeclarationError("type[...] parameter must be a class, union, type variable, interface or Self, not %s", inner)
}

// checkClassUnion applies subclass semantics across union alternatives.
func checkClassUnion(value any, members []any, ctx *CheckContext) error {
	type failure struct {
		name string
		err  *TypeCheckError
	}
	var failures []failure
	seen := make(map[string]int)

	for _, m := range members {
		member := descParam(m)
		if member == nil {
			continue
		}
		if member.Origin == OriginAny {
			return nil
		}
		err := checkClass(value, OriginSubclassOf, []any{member}, ctx)
		if err == nil {
			return nil
		}
		tce, isCheck := asCheckError(err)
		if !isCheck {
			return err
		}
		name := member.String()
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s#%d", name, n)
		}
		failures = append(failures, failure{name: name, err: tce})
	}

	var lines []string
	for _, f := range failures {
		lines = append(lines, f.name+": "+f.err.Error())
	}
	return NewTypeCheckError("did not match any element in the union:\n%s",
		indentLines(strings.Join(lines, "\n"), "  "))
}
