package typecheck

import (
	"io"
	"reflect"
	"strings"
)

func checkNone(value any, origin Origin, params []any, ctx *CheckContext) error {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	}
	return NewTypeCheckError("is not nil")
}

// checkNumber implements the numeric widening tower: a complex
// requirement also accepts floats and integers, a float requirement also
// accepts integers.
func checkNumber(value any, origin Origin, params []any, ctx *CheckContext) error {
	kind := reflect.Invalid
	if value != nil {
		kind = reflect.TypeOf(value).Kind()
	}

	isInt := false
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		isInt = true
	}
	isFloat := kind == reflect.Float32 || kind == reflect.Float64
	isComplex := kind == reflect.Complex64 || kind == reflect.Complex128

	if origin == OriginComplex {
		if !isComplex && !isFloat && !isInt {
			return NewTypeCheckError("is neither complex, float or int")
		}
		return nil
	}
	if !isFloat && !isInt {
		return NewTypeCheckError("is neither float or int")
	}
	return nil
}

func checkBytesLike(value any, origin Origin, params []any, ctx *CheckContext) error {
	if value == nil {
		return NewTypeCheckError("is not bytes-like")
	}
	t := reflect.TypeOf(value)
	if (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() == reflect.Uint8 {
		return nil
	}
	return NewTypeCheckError("is not bytes-like")
}

var (
	readerType = reflect.TypeFor[io.Reader]()
	writerType = reflect.TypeFor[io.Writer]()
)

func checkIO(value any, origin Origin, params []any, ctx *CheckContext) error {
	switch origin {
	case OriginReader:
		if !isInstance(value, readerType) {
			return NewTypeCheckError("is not a readable I/O object")
		}
	case OriginWriter:
		if !isInstance(value, writerType) {
			return NewTypeCheckError("is not a writable I/O object")
		}
	default:
		if !isInstance(value, readerType) || !isInstance(value, writerType) {
			return NewTypeCheckError("is not a read-write I/O object")
		}
	}
	return nil
}

// checkCallable verifies that a value is callable and, when argument
// descriptors are declared, that its arity can satisfy them. Argument and
// return types are not evaluated.
func checkCallable(value any, origin Origin, params []any, ctx *CheckContext) error {
	var sig Signature
	switch cv := value.(type) {
	case CallableValue:
		sig = cv.Signature()
	default:
		if value == nil || reflect.ValueOf(value).Kind() != reflect.Func {
			return NewTypeCheckError("is not callable")
		}
		sig = signatureFromFunc(reflect.TypeOf(value), false)
	}

	if len(params) == 0 {
		return nil
	}
	argList, ok := params[0].([]any)
	if !ok {
		return nil
	}
	for _, arg := range argList {
		if d := descParam(arg); d != nil && d.Origin == OriginParamSpec {
			return nil
		}
	}

	var unfulfilled []string
	for _, p := range sig.Params {
		if p.Kind == KeywordOnly && !p.HasDefault {
			unfulfilled = append(unfulfilled, p.Name)
		}
	}
	if len(unfulfilled) > 0 {
		return NewTypeCheckError("has mandatory keyword-only arguments in its declaration: %s",
			strings.Join(unfulfilled, ", "))
	}

	numPositional := 0
	numMandatoryPositional := 0
	hasVarArgs := false
	for _, p := range sig.Params {
		switch p.Kind {
		case PositionalOnly, PositionalOrKeyword:
			numPositional++
			if !p.HasDefault {
				numMandatoryPositional++
			}
		case VarPositional:
			hasVarArgs = true
		}
	}

	if numMandatoryPositional > len(argList) {
		return NewTypeCheckError(
			"has too many mandatory positional arguments in its declaration; "+
				"expected %d but %d mandatory positional argument(s) declared",
			len(argList), numMandatoryPositional)
	}
	if !hasVarArgs && numPositional < len(argList) {
		return NewTypeCheckError(
			"has too few arguments in its declaration; expected %d but %d argument(s) declared",
			len(argList), numPositional)
	}
	return nil
}
