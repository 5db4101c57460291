// Package typecheck implements the descriptor-dispatch validation engine:
// it validates an arbitrary runtime value against a type descriptor and
// reports, on mismatch, a structural path to the point of failure.
//
// A descriptor is a tree of (origin, params, metadata) nodes. The engine
// decomposes a descriptor into its origin and parameters, looks up the
// matching structural checker in an ordered registry, and applies checkers
// recursively to sub-values, accumulating a navigable error path.
package typecheck

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Origin is the unparameterized shape tag of a descriptor.
type Origin int

const (
	OriginInvalid Origin = iota

	OriginAny
	OriginNone
	OriginInstance
	OriginFloat
	OriginComplex
	OriginBytesLike

	OriginList
	OriginSequence
	OriginSet
	OriginFrozenSet
	OriginDict
	OriginMapping
	OriginMutableMapping
	OriginTuple
	OriginNamedTuple
	OriginRecord

	OriginUnion
	OriginBareUnion
	OriginLiteral
	OriginLiteralString
	OriginTypeGuard

	OriginInterface
	OriginCallable
	OriginReader
	OriginWriter
	OriginReadWriter

	OriginTypeVar
	OriginParamSpec
	OriginAlias
	OriginSelf
	OriginSubclassOf
	OriginNotRequired
	OriginRef
)

var originNames = map[Origin]string{
	OriginAny:            "any",
	OriginNone:           "nil",
	OriginInstance:       "instance",
	OriginFloat:          "float",
	OriginComplex:        "complex",
	OriginBytesLike:      "bytes",
	OriginList:           "list",
	OriginSequence:       "sequence",
	OriginSet:            "set",
	OriginFrozenSet:      "frozenset",
	OriginDict:           "dict",
	OriginMapping:        "mapping",
	OriginMutableMapping: "mutablemapping",
	OriginTuple:          "tuple",
	OriginNamedTuple:     "namedtuple",
	OriginRecord:         "record",
	OriginUnion:          "union",
	OriginBareUnion:      "union",
	OriginLiteral:        "literal",
	OriginLiteralString:  "literalstring",
	OriginTypeGuard:      "typeguard",
	OriginInterface:      "interface",
	OriginCallable:       "callable",
	OriginReader:         "reader",
	OriginWriter:         "writer",
	OriginReadWriter:     "readwriter",
	OriginTypeVar:        "typevar",
	OriginParamSpec:      "paramspec",
	OriginAlias:          "alias",
	OriginSelf:           "Self",
	OriginSubclassOf:     "type",
	OriginNotRequired:    "notrequired",
	OriginRef:            "ref",
}

func (o Origin) Name() string {
	if n, ok := originNames[o]; ok {
		return n
	}
	return fmt.Sprintf("origin(%d)", int(o))
}

// Sentinel parameter values. EllipsisMarker terminates a variadic
// homogeneous tuple; EmptyTupleMarker distinguishes "must be exactly the
// empty tuple" from the fully-unparameterized tuple form.
type sentinel int

const (
	EllipsisMarker sentinel = iota
	EmptyTupleMarker
)

func (s sentinel) String() string {
	if s == EllipsisMarker {
		return "..."
	}
	return "()"
}

// Descriptor is a single node of a type declaration: origin plus an
// ordered sequence of parameters (nested descriptors, literal values or
// sentinels) plus opaque annotation metadata. Descriptors are immutable
// once built; the engine only decomposes them.
type Descriptor struct {
	Origin   Origin
	Params   []any
	Metadata []any
}

// RecordField is one declared key of a record (or one named field of a
// tuple-record). A field whose descriptor is wrapped in NotRequired is
// optional.
type RecordField struct {
	Name string
	Desc *Descriptor
}

// TupleRecord is the payload of a named-record tuple descriptor: the
// concrete struct type plus its individually-typed fields.
type TupleRecord struct {
	Type   reflect.Type
	Fields []RecordField
}

// InterfaceDecl is the payload of a structural-interface descriptor.
// Members are attributes (data, checked recursively) and methods
// (checked by signature compatibility only).
type InterfaceDecl struct {
	Name    string
	Attrs   map[string]*Descriptor
	Methods map[string]Signature
}

// MemberNames returns all declared member names, sorted for deterministic
// error ordering.
func (d *InterfaceDecl) MemberNames() []string {
	names := make([]string, 0, len(d.Attrs)+len(d.Methods))
	for n := range d.Attrs {
		names = append(names, n)
	}
	for n := range d.Methods {
		if _, dup := d.Attrs[n]; !dup {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// TypeVarDecl is the payload of a type-variable descriptor. A type
// variable has either a bound or a list of constraints, never both.
type TypeVarDecl struct {
	Name        string
	Bound       *Descriptor
	Constraints []*Descriptor
}

// AliasDecl is the payload of an alias (new-type) descriptor: a name
// layered over an underlying supertype.
type AliasDecl struct {
	Name  string
	Super *Descriptor
}

// Descriptor constructors.

func Any() *Descriptor  { return &Descriptor{Origin: OriginAny} }
func None() *Descriptor { return &Descriptor{Origin: OriginNone} }

// InstanceOf declares that a value must be an instance of the concrete
// type t (identical, assignable, or implementing t when t is an
// interface type).
func InstanceOf(t reflect.Type) *Descriptor {
	return &Descriptor{Origin: OriginInstance, Params: []any{t}}
}

// TypeOf is the generic convenience form of InstanceOf.
func TypeOf[T any]() *Descriptor {
	return InstanceOf(reflect.TypeFor[T]())
}

func Bool() *Descriptor    { return TypeOf[bool]() }
func Int() *Descriptor     { return TypeOf[int]() }
func Str() *Descriptor     { return TypeOf[string]() }
func Float() *Descriptor   { return &Descriptor{Origin: OriginFloat} }
func Complex() *Descriptor { return &Descriptor{Origin: OriginComplex} }
func Bytes() *Descriptor   { return &Descriptor{Origin: OriginBytesLike} }

func ListOf(elem *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginList, Params: []any{elem}}
}

func List() *Descriptor { return &Descriptor{Origin: OriginList} }

func SequenceOf(elem *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginSequence, Params: []any{elem}}
}

func SetOf(elem *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginSet, Params: []any{elem}}
}

func FrozenSetOf(elem *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginFrozenSet, Params: []any{elem}}
}

func DictOf(key, value *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginDict, Params: []any{key, value}}
}

func MappingOf(key, value *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginMapping, Params: []any{key, value}}
}

func MutableMappingOf(key, value *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginMutableMapping, Params: []any{key, value}}
}

// TupleOf declares a fixed-arity heterogeneous tuple. Pass EllipsisMarker
// as the trailing element for a variadic homogeneous tuple.
func TupleOf(elems ...any) *Descriptor {
	if elems == nil {
		// An explicit empty parameter list is the empty-tuple sentinel,
		// unlike the unparameterized Tuple() form.
		elems = []any{}
	}
	return &Descriptor{Origin: OriginTuple, Params: elems}
}

// Tuple is the fully-unparameterized tuple form: any tuple passes.
func Tuple() *Descriptor { return &Descriptor{Origin: OriginTuple} }

// EmptyTuple requires the value to be exactly the empty tuple.
func EmptyTuple() *Descriptor {
	return &Descriptor{Origin: OriginTuple, Params: []any{EmptyTupleMarker}}
}

// NamedTupleOf declares a record-like tuple: the value must be an
// instance of the given struct type and each named field is checked
// against its declared descriptor.
func NamedTupleOf(t reflect.Type, fields ...RecordField) *Descriptor {
	return &Descriptor{Origin: OriginNamedTuple, Params: []any{&TupleRecord{Type: t, Fields: fields}}}
}

// RecordOf declares a structural dictionary with a fixed set of named,
// individually-typed keys. Wrap a field descriptor in NotRequired to mark
// the key optional.
func RecordOf(fields ...RecordField) *Descriptor {
	params := make([]any, len(fields))
	for i, f := range fields {
		params[i] = f
	}
	return &Descriptor{Origin: OriginRecord, Params: params}
}

// NotRequired marks a record field optional. It unwraps to the underlying
// descriptor for the actual value check.
func NotRequired(d *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginNotRequired, Params: []any{d}}
}

func UnionOf(members ...*Descriptor) *Descriptor {
	params := make([]any, len(members))
	for i, m := range members {
		params[i] = m
	}
	return &Descriptor{Origin: OriginUnion, Params: params}
}

// BareUnion is the alternation form with no enumerated members: the value
// must itself be a union descriptor.
func BareUnion() *Descriptor { return &Descriptor{Origin: OriginBareUnion} }

// LiteralOf declares a set of allowed literal values. Members may be nil,
// booleans, integers, strings, byte slices, enum members (values of a
// named integer- or string-kinded type) or nested literal descriptors.
func LiteralOf(values ...any) *Descriptor {
	return &Descriptor{Origin: OriginLiteral, Params: values}
}

func LiteralString() *Descriptor { return &Descriptor{Origin: OriginLiteralString} }
func TypeGuard() *Descriptor     { return &Descriptor{Origin: OriginTypeGuard} }

// InterfaceOf declares a structural interface (duck-typed contract).
func InterfaceOf(decl *InterfaceDecl) *Descriptor {
	return &Descriptor{Origin: OriginInterface, Params: []any{decl}}
}

// CallableWith declares a callable with the given argument descriptors.
// The arity and keyword-completeness of the value are verified; argument
// and return types are not.
func CallableWith(args []any, ret *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginCallable, Params: []any{args, ret}}
}

// Callable declares any callable, with no arity requirement.
func Callable() *Descriptor { return &Descriptor{Origin: OriginCallable} }

func Reader() *Descriptor     { return &Descriptor{Origin: OriginReader} }
func Writer() *Descriptor     { return &Descriptor{Origin: OriginWriter} }
func ReadWriter() *Descriptor { return &Descriptor{Origin: OriginReadWriter} }

// TypeVarOf declares a type variable with the given declaration.
func TypeVarOf(decl *TypeVarDecl) *Descriptor {
	return &Descriptor{Origin: OriginTypeVar, Params: []any{decl}}
}

func ParamSpec(name string) *Descriptor {
	return &Descriptor{Origin: OriginParamSpec, Params: []any{name}}
}

// AliasOf declares a new-type: a distinct name over an underlying
// supertype. Values are checked against the supertype.
func AliasOf(name string, super *Descriptor) *Descriptor {
	return &Descriptor{Origin: OriginAlias, Params: []any{&AliasDecl{Name: name, Super: super}}}
}

// Self declares "the same type as the enclosing method's receiver",
// resolved from the bound self type of the check context.
func Self() *Descriptor { return &Descriptor{Origin: OriginSelf} }

// SubclassOf declares that the value must be a class object
// (reflect.Type), optionally a subclass of the inner descriptor.
func SubclassOf(inner *Descriptor) *Descriptor {
	if inner == nil {
		return &Descriptor{Origin: OriginSubclassOf}
	}
	return &Descriptor{Origin: OriginSubclassOf, Params: []any{inner}}
}

// RefTo declares a forward reference, deferred to resolve at check time
// against the context's environment.
func RefTo(name string) *Descriptor {
	return &Descriptor{Origin: OriginRef, Params: []any{name}}
}

// Annotated attaches opaque metadata extras to a descriptor. The engine
// strips one metadata layer before dispatch and otherwise does not
// interpret it; extras are visible to checker lookup providers.
func Annotated(d *Descriptor, extras ...any) *Descriptor {
	return &Descriptor{Origin: d.Origin, Params: d.Params, Metadata: extras}
}

// RefName returns the deferred name of a forward-reference descriptor.
func (d *Descriptor) RefName() string {
	if d.Origin == OriginRef && len(d.Params) == 1 {
		if s, ok := d.Params[0].(string); ok {
			return s
		}
	}
	return ""
}

// String renders a stable display name for the descriptor, used as the
// alternative-identifying key in aggregate union errors.
func (d *Descriptor) String() string {
	switch d.Origin {
	case OriginInstance:
		if len(d.Params) == 1 {
			if t, ok := d.Params[0].(reflect.Type); ok {
				return t.String()
			}
		}
		return "instance"
	case OriginUnion:
		parts := make([]string, 0, len(d.Params))
		for _, p := range d.Params {
			if m, ok := p.(*Descriptor); ok {
				parts = append(parts, m.String())
			}
		}
		return strings.Join(parts, " | ")
	case OriginLiteral:
		parts := make([]string, 0, len(d.Params))
		for _, p := range d.Params {
			parts = append(parts, reprValue(p))
		}
		return "literal[" + strings.Join(parts, ", ") + "]"
	case OriginInterface:
		if decl, ok := payload[*InterfaceDecl](d); ok && decl.Name != "" {
			return decl.Name
		}
		return "interface"
	case OriginTypeVar:
		if decl, ok := payload[*TypeVarDecl](d); ok && decl.Name != "" {
			return decl.Name
		}
		return "typevar"
	case OriginAlias:
		if decl, ok := payload[*AliasDecl](d); ok && decl.Name != "" {
			return decl.Name
		}
		return "alias"
	case OriginNamedTuple:
		if tr, ok := payload[*TupleRecord](d); ok && tr.Type != nil {
			return tr.Type.String()
		}
		return "namedtuple"
	case OriginRef:
		return fmt.Sprintf("ref(%q)", d.RefName())
	case OriginSubclassOf:
		if len(d.Params) == 1 {
			if inner, ok := d.Params[0].(*Descriptor); ok {
				return "type[" + inner.String() + "]"
			}
		}
		return "type"
	case OriginParamSpec:
		if len(d.Params) == 1 {
			if s, ok := d.Params[0].(string); ok {
				return "paramspec(" + s + ")"
			}
		}
		return "paramspec"
	}

	if len(d.Params) == 0 {
		return d.Origin.Name()
	}
	parts := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		switch v := p.(type) {
		case *Descriptor:
			parts = append(parts, v.String())
		case sentinel:
			parts = append(parts, v.String())
		default:
			parts = append(parts, reprValue(p))
		}
	}
	return d.Origin.Name() + "[" + strings.Join(parts, ", ") + "]"
}

// payload extracts a single typed payload parameter from a descriptor.
func payload[T any](d *Descriptor) (T, bool) {
	var zero T
	if len(d.Params) != 1 {
		return zero, false
	}
	v, ok := d.Params[0].(T)
	return v, ok
}

// reprValue renders a literal value for error messages: strings are
// single-quoted, byte slices rendered as bytes(...), everything else via
// the default format.
func reprValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return "'" + t + "'"
	case []byte:
		return fmt.Sprintf("bytes(%q)", t)
	case *Descriptor:
		return t.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return "'" + rv.String() + "'"
	}
	return fmt.Sprintf("%v", v)
}

// AnyValue is the marker interface for values whose declared type derives
// from the "anything" marker; such values are exempt from all checks.
type AnyValue interface {
	AnyValue()
}

// TestDouble is the marker interface for explicitly-exempted test
// doubles (mocks); such values pass every check.
type TestDouble interface {
	TestDouble()
}

// Mapping is the substitution interface for mapping-like containers that
// are not Go maps.
type Mapping interface {
	Len() int
	Keys() []any
	Get(key any) (any, bool)
}

// MutableMapping is a Mapping that supports in-place mutation.
type MutableMapping interface {
	Mapping
	Set(key, value any)
}

// SequenceValue is the substitution interface for sequence-like
// containers that are not Go slices, arrays or strings.
type SequenceValue interface {
	Len() int
	At(i int) any
}

// SetValue is the substitution interface for set-like containers. Go maps
// with an empty-struct element type also count as sets.
type SetValue interface {
	Len() int
	Items() []any
}

// FrozenSetValue marks a SetValue as immutable; only frozen sets satisfy
// a frozenset descriptor.
type FrozenSetValue interface {
	SetValue
	Frozen()
}
