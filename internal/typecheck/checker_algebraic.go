package typecheck

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
)

// checkUnion tries each alternative in declaration order; the first
// success wins. When none succeed, the aggregate error enumerates every
// alternative's specific failure reason, keyed by the alternative's
// display name (made unique with a #n suffix on collisions).
func checkUnion(value any, origin Origin, params []any, ctx *CheckContext) error {
	if origin == OriginBareUnion && len(params) == 0 {
		// The bare alternation form: the value must itself be a union.
		if d, ok := value.(*Descriptor); ok && (d.Origin == OriginUnion || d.Origin == OriginBareUnion) {
			return nil
		}
		return NewTypeCheckError("is not a union")
	}

	type failure struct {
		name string
		err  *TypeCheckError
	}
	var failures []failure
	seen := make(map[string]int)

	for _, p := range params {
		member := descParam(p)
		if member == nil {
			continue
		}
		err := ctx.Check(value, member)
		if err == nil {
			return nil
		}
		tce, ok := asCheckError(err)
		if !ok {
			// Declaration and resolution errors are not candidate
			// failures; they propagate unchanged.
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

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// checkLiteral flattens nested literal descriptors into one allowed-value
// list and requires the value to be present with the exact same runtime
// type as the matched member, so true does not satisfy a 1 literal and
// vice versa.
func checkLiteral(value any, origin Origin, params []any, ctx *CheckContext) error {
	flattened, err := flattenLiteralParams(params)
	if err != nil {
		return err
	}

	for _, member := range flattened {
		if literalEqual(value, member) {
			return nil
		}
	}

	reprs := make([]string, len(flattened))
	for i, member := range flattened {
		reprs[i] = reprValue(member)
	}
	return NewTypeCheckError("is not any of (%s)", strings.Join(reprs, ", "))
}

// flattenLiteralParams expands literal-of-literals members and rejects
// any member that is not a legal literal value. Rejection is a
// declaration error: the descriptor itself is malformed and no value
// could ever satisfy it.
func flattenLiteralParams(params []any) ([]any, error) {
	var out []any
	for _, p := range params {
		if d, ok := p.(*Descriptor); ok {
			if d.Origin != OriginLiteral {
				return nil, NewDeclarationError("illegal literal value: %s", d.String())
			}
			nested, err := flattenLiteralParams(d.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			continue
		}
		if !isLegalLiteral(p) {
			return nil, NewDeclarationError("illegal literal value: %v", p)
		}
		out = append(out, p)
	}
	return out, nil
}

// isLegalLiteral allows nil, booleans, integers, strings, byte slices and
// enum members (values of a named integer- or string-kinded type).
func isLegalLiteral(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.([]byte); ok {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func literalEqual(value, member any) bool {
	if value == nil || member == nil {
		return value == nil && member == nil
	}
	if reflect.TypeOf(value) != reflect.TypeOf(member) {
		return false
	}
	if mb, ok := member.([]byte); ok {
		vb, _ := value.([]byte)
		return bytes.Equal(vb, mb)
	}
	return value == member
}

// checkLiteralString only requires the value to be a string.
func checkLiteralString(value any, origin Origin, params []any, ctx *CheckContext) error {
	return ctx.Check(value, strDescriptor)
}

// checkTypeGuard only requires the value to be a bool.
func checkTypeGuard(value any, origin Origin, params []any, ctx *CheckContext) error {
	return ctx.Check(value, boolDescriptor)
}

var (
	strDescriptor  = TypeOf[string]()
	boolDescriptor = TypeOf[bool]()
)
