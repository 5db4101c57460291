package typecheck

import (
	"reflect"
	"sort"
	"strings"
)

// checkRecord validates a structural dictionary with declared keys: no
// undeclared keys, every required key present, and each present key's
// value conforming to its (optionality-unwrapped) field descriptor.
func checkRecord(value any, origin Origin, params []any, ctx *CheckContext) error {
	if value == nil {
		return NewTypeCheckError("is not a dict")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return NewTypeCheckError("is not a dict")
	}

	fields := make([]RecordField, 0, len(params))
	declared := make(map[string]RecordField, len(params))
	for _, p := range params {
		f, ok := p.(RecordField)
		if !ok {
			return NewDeclarationError("record descriptor has a non-field parameter: %v", p)
		}
		fields = append(fields, f)
		declared[f.Name] = f
	}

	existing := make(map[string]bool, rv.Len())
	var extra []string
	for _, k := range rv.MapKeys() {
		name := k.String()
		existing[name] = true
		if _, ok := declared[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return NewTypeCheckError("has unexpected extra key(s): %s", quoteKeys(extra))
	}

	var missing []string
	for _, f := range fields {
		if fieldRequired(f) && !existing[f.Name] {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return NewTypeCheckError("is missing required key(s): %s", quoteKeys(missing))
	}

	keyType := rv.Type().Key()
	for _, f := range fields {
		if !existing[f.Name] {
			continue
		}
		key := reflect.ValueOf(f.Name).Convert(keyType)
		fieldValue := rv.MapIndex(key).Interface()
		if err := ctx.Check(fieldValue, unwrapNotRequired(f.Desc)); err != nil {
			return withPath(err, "value of key '%s'", f.Name)
		}
	}
	return nil
}

func fieldRequired(f RecordField) bool {
	return f.Desc == nil || f.Desc.Origin != OriginNotRequired
}

// unwrapNotRequired unwraps the per-field optionality override to the
// underlying descriptor used for the actual value check.
func unwrapNotRequired(d *Descriptor) *Descriptor {
	for d != nil && d.Origin == OriginNotRequired && len(d.Params) == 1 {
		inner := descParam(d.Params[0])
		if inner == nil {
			return d
		}
		d = inner
	}
	return d
}

func quoteKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = `"` + k + `"`
	}
	return strings.Join(quoted, ", ")
}
