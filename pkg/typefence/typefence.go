// Package typefence is the public surface of the validation engine: it
// re-exports the descriptor constructors, configuration and registry
// types from the internal engine and adds process-wide convenience
// entry points backed by the shared default registry.
package typefence

import (
	"reflect"

	"github.com/typefence/typefence/internal/typecheck"
)

// Core types aliases
type Descriptor = typecheck.Descriptor
type Origin = typecheck.Origin
type RecordField = typecheck.RecordField
type TupleRecord = typecheck.TupleRecord
type InterfaceDecl = typecheck.InterfaceDecl
type TypeVarDecl = typecheck.TypeVarDecl
type AliasDecl = typecheck.AliasDecl

// Origin tags
const (
	OriginAny            = typecheck.OriginAny
	OriginNone           = typecheck.OriginNone
	OriginInstance       = typecheck.OriginInstance
	OriginFloat          = typecheck.OriginFloat
	OriginComplex        = typecheck.OriginComplex
	OriginBytesLike      = typecheck.OriginBytesLike
	OriginList           = typecheck.OriginList
	OriginSequence       = typecheck.OriginSequence
	OriginSet            = typecheck.OriginSet
	OriginFrozenSet      = typecheck.OriginFrozenSet
	OriginDict           = typecheck.OriginDict
	OriginMapping        = typecheck.OriginMapping
	OriginMutableMapping = typecheck.OriginMutableMapping
	OriginTuple          = typecheck.OriginTuple
	OriginNamedTuple     = typecheck.OriginNamedTuple
	OriginRecord         = typecheck.OriginRecord
	OriginUnion          = typecheck.OriginUnion
	OriginBareUnion      = typecheck.OriginBareUnion
	OriginLiteral        = typecheck.OriginLiteral
	OriginLiteralString  = typecheck.OriginLiteralString
	OriginTypeGuard      = typecheck.OriginTypeGuard
	OriginInterface      = typecheck.OriginInterface
	OriginCallable       = typecheck.OriginCallable
	OriginReader         = typecheck.OriginReader
	OriginWriter         = typecheck.OriginWriter
	OriginReadWriter     = typecheck.OriginReadWriter
	OriginTypeVar        = typecheck.OriginTypeVar
	OriginParamSpec      = typecheck.OriginParamSpec
	OriginAlias          = typecheck.OriginAlias
	OriginSelf           = typecheck.OriginSelf
	OriginSubclassOf     = typecheck.OriginSubclassOf
	OriginNotRequired    = typecheck.OriginNotRequired
	OriginRef            = typecheck.OriginRef
)

// Error types aliases
type TypeCheckError = typecheck.TypeCheckError
type DeclarationError = typecheck.DeclarationError
type ResolutionError = typecheck.ResolutionError

func NewTypeCheckError(format string, args ...any) *TypeCheckError {
	return typecheck.NewTypeCheckError(format, args...)
}

func NewDeclarationError(format string, args ...any) *DeclarationError {
	return typecheck.NewDeclarationError(format, args...)
}

// Configuration aliases
type CheckConfig = typecheck.CheckConfig
type ForwardRefPolicy = typecheck.ForwardRefPolicy
type CollectionCheckStrategy = typecheck.CollectionCheckStrategy
type AllElements = typecheck.AllElements
type FirstN = typecheck.FirstN
type Sample = typecheck.Sample

const (
	ForwardRefError  = typecheck.ForwardRefError
	ForwardRefWarn   = typecheck.ForwardRefWarn
	ForwardRefIgnore = typecheck.ForwardRefIgnore
)

// Registry aliases
type Registry = typecheck.Registry
type CheckContext = typecheck.CheckContext
type Checker = typecheck.Checker
type LookupFunc = typecheck.LookupFunc
type Extension = typecheck.Extension
type Registration = typecheck.Registration
type CheckOption = typecheck.CheckOption

// Environment aliases
type Env = typecheck.Env
type MapEnv = typecheck.MapEnv

// Signature model aliases
type Signature = typecheck.Signature
type Parameter = typecheck.Parameter
type ParamKind = typecheck.ParamKind
type MethodKind = typecheck.MethodKind
type SignatureProvider = typecheck.SignatureProvider
type CallableValue = typecheck.CallableValue

const (
	PositionalOnly      = typecheck.PositionalOnly
	PositionalOrKeyword = typecheck.PositionalOrKeyword
	VarPositional       = typecheck.VarPositional
	KeywordOnly         = typecheck.KeywordOnly
	VarKeyword          = typecheck.VarKeyword
)

const (
	InstanceMethod = typecheck.InstanceMethod
	ClassMethod    = typecheck.ClassMethod
	StaticMethod   = typecheck.StaticMethod
)

// Substitution interface aliases
type Mapping = typecheck.Mapping
type MutableMapping = typecheck.MutableMapping
type SequenceValue = typecheck.SequenceValue
type SetValue = typecheck.SetValue
type FrozenSetValue = typecheck.FrozenSetValue
type AnyValue = typecheck.AnyValue
type TestDouble = typecheck.TestDouble

// Sentinels
var (
	EllipsisMarker   = typecheck.EllipsisMarker
	EmptyTupleMarker = typecheck.EmptyTupleMarker
)

var ErrRegistrySealed = typecheck.ErrRegistrySealed

// Check validates value against the descriptor using the shared default
// registry. It returns nil on conformance; on mismatch the error is a
// *TypeCheckError carrying the structural path to the failure.
func Check(value any, d *Descriptor, opts ...CheckOption) error {
	return typecheck.Default().Check(value, d, opts...)
}

// CheckValue validates value against the descriptor derived from the
// type parameter, a shorthand for Check(value, TypeOf[T]()).
func CheckValue[T any](value any, opts ...CheckOption) error {
	return Check(value, TypeOf[T](), opts...)
}

// NewRegistry creates an isolated registry holding only the built-in
// checkers, for callers that need their own extension set.
func NewRegistry() *Registry { return typecheck.NewRegistry() }

// DefaultRegistry returns the shared process-wide registry.
func DefaultRegistry() *Registry { return typecheck.Default() }

// Check options

func WithConfig(cfg CheckConfig) CheckOption     { return typecheck.WithConfig(cfg) }
func WithSelfType(t reflect.Type) CheckOption    { return typecheck.WithSelfType(t) }
func WithEnv(env Env) CheckOption                { return typecheck.WithEnv(env) }
func DefaultConfig() CheckConfig                 { return typecheck.DefaultConfig() }
func LoadConfig(path string) (CheckConfig, error) { return typecheck.LoadConfig(path) }

// Descriptor constructors

func Any() *Descriptor                       { return typecheck.Any() }
func None() *Descriptor                      { return typecheck.None() }
func InstanceOf(t reflect.Type) *Descriptor  { return typecheck.InstanceOf(t) }
func Bool() *Descriptor                      { return typecheck.Bool() }
func Int() *Descriptor                       { return typecheck.Int() }
func Str() *Descriptor                       { return typecheck.Str() }
func Float() *Descriptor                     { return typecheck.Float() }
func Complex() *Descriptor                   { return typecheck.Complex() }
func Bytes() *Descriptor                     { return typecheck.Bytes() }
func List() *Descriptor                      { return typecheck.List() }
func ListOf(elem *Descriptor) *Descriptor    { return typecheck.ListOf(elem) }
func SequenceOf(elem *Descriptor) *Descriptor { return typecheck.SequenceOf(elem) }
func SetOf(elem *Descriptor) *Descriptor     { return typecheck.SetOf(elem) }
func FrozenSetOf(elem *Descriptor) *Descriptor { return typecheck.FrozenSetOf(elem) }

func DictOf(key, value *Descriptor) *Descriptor    { return typecheck.DictOf(key, value) }
func MappingOf(key, value *Descriptor) *Descriptor { return typecheck.MappingOf(key, value) }
func MutableMappingOf(key, value *Descriptor) *Descriptor {
	return typecheck.MutableMappingOf(key, value)
}

func Tuple() *Descriptor                 { return typecheck.Tuple() }
func TupleOf(elems ...any) *Descriptor   { return typecheck.TupleOf(elems...) }
func EmptyTuple() *Descriptor            { return typecheck.EmptyTuple() }
func NamedTupleOf(t reflect.Type, fields ...RecordField) *Descriptor {
	return typecheck.NamedTupleOf(t, fields...)
}
func RecordOf(fields ...RecordField) *Descriptor { return typecheck.RecordOf(fields...) }
func NotRequired(d *Descriptor) *Descriptor      { return typecheck.NotRequired(d) }

func UnionOf(members ...*Descriptor) *Descriptor { return typecheck.UnionOf(members...) }
func BareUnion() *Descriptor                     { return typecheck.BareUnion() }
func LiteralOf(values ...any) *Descriptor        { return typecheck.LiteralOf(values...) }
func LiteralString() *Descriptor                 { return typecheck.LiteralString() }
func TypeGuard() *Descriptor                     { return typecheck.TypeGuard() }

func InterfaceOf(decl *InterfaceDecl) *Descriptor { return typecheck.InterfaceOf(decl) }
func Callable() *Descriptor                       { return typecheck.Callable() }
func CallableWith(args []any, ret *Descriptor) *Descriptor {
	return typecheck.CallableWith(args, ret)
}
func Reader() *Descriptor     { return typecheck.Reader() }
func Writer() *Descriptor     { return typecheck.Writer() }
func ReadWriter() *Descriptor { return typecheck.ReadWriter() }

func TypeVarOf(decl *TypeVarDecl) *Descriptor { return typecheck.TypeVarOf(decl) }
func ParamSpec(name string) *Descriptor       { return typecheck.ParamSpec(name) }
func AliasOf(name string, super *Descriptor) *Descriptor {
	return typecheck.AliasOf(name, super)
}
func Self() *Descriptor                          { return typecheck.Self() }
func SubclassOf(inner *Descriptor) *Descriptor   { return typecheck.SubclassOf(inner) }
func RefTo(name string) *Descriptor              { return typecheck.RefTo(name) }
func Annotated(d *Descriptor, extras ...any) *Descriptor {
	return typecheck.Annotated(d, extras...)
}

// TypeOf is the generic convenience form of InstanceOf.
func TypeOf[T any]() *Descriptor { return typecheck.TypeOf[T]() }

// Parsing and schema loading

func ParseDescriptor(src string) (*Descriptor, error) { return typecheck.ParseDescriptor(src) }
func LoadSchema(path string) (MapEnv, error)          { return typecheck.LoadSchema(path) }
func ParseSchema(data []byte, path string) (MapEnv, error) {
	return typecheck.ParseSchema(data, path)
}

// SetWarningHandler replaces the engine's diagnostic sink and returns a
// function restoring the previous one.
func SetWarningHandler(h func(msg string)) (restore func()) {
	return typecheck.SetWarningHandler(h)
}
