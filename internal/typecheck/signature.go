package typecheck

import (
	"reflect"
	"sort"
	"strings"
)

//go:generate go tool stringer -type=ParamKind -output=paramkind_string.go
//go:generate go tool stringer -type=MethodKind -output=methodkind_string.go

// ParamKind classifies how a parameter can be supplied at a call site.
// Go erases parameter names and keyword-ness at runtime, so richer kinds
// than PositionalOrKeyword only arise from explicitly declared
// signatures (see SignatureProvider).
type ParamKind int

const (
	PositionalOnly ParamKind = iota
	PositionalOrKeyword
	VarPositional
	KeywordOnly
	VarKeyword
)

// MethodKind classifies how a method binds to its class.
type MethodKind int

const (
	InstanceMethod MethodKind = iota
	ClassMethod
	StaticMethod
)

func (k MethodKind) label() string {
	switch k {
	case ClassMethod:
		return "class"
	case StaticMethod:
		return "static"
	}
	return "instance"
}

// Parameter is one declared parameter of a method signature. The
// implicit receiver is never part of the parameter list. An empty Name
// means the name is unknown (reflect-derived signature); name-based
// compatibility rules are skipped for such parameters.
type Parameter struct {
	Name       string
	Kind       ParamKind
	HasDefault bool
}

// Signature is the build-time-declared parameter descriptor of a method,
// the unit signature compatibility operates on. Parameter and return
// types are deliberately absent: compatibility never evaluates them.
type Signature struct {
	Kind   MethodKind
	Params []Parameter
}

// SignatureProvider lets a subject supply explicit signatures for its
// members, keyed by member name. Without it, signatures are derived via
// reflection with unknown names and no defaults.
type SignatureProvider interface {
	TypeSignatures() map[string]Signature
}

// CallableValue lets a callable value supply an explicit signature for
// arity checking beyond what reflection exposes.
type CallableValue interface {
	Signature() Signature
}

// signatureFromFunc derives a Signature from a function type. When the
// function type still carries its receiver (method looked up on a class
// object), skipReceiver drops the first input.
func signatureFromFunc(ft reflect.Type, skipReceiver bool) Signature {
	sig := Signature{Kind: InstanceMethod}
	start := 0
	if skipReceiver {
		start = 1
	}
	n := ft.NumIn()
	for i := start; i < n; i++ {
		kind := PositionalOrKeyword
		if ft.IsVariadic() && i == n-1 {
			kind = VarPositional
		}
		sig.Params = append(sig.Params, Parameter{Kind: kind})
	}
	return sig
}

func (s Signature) hasVarArgs() bool {
	for _, p := range s.Params {
		if p.Kind == VarPositional {
			return true
		}
	}
	return false
}

func (s Signature) hasVarKeywords() bool {
	for _, p := range s.Params {
		if p.Kind == VarKeyword {
			return true
		}
	}
	return false
}

func (s Signature) positional() []Parameter {
	var out []Parameter
	for _, p := range s.Params {
		if p.Kind == PositionalOnly || p.Kind == PositionalOrKeyword {
			out = append(out, p)
		}
	}
	return out
}

func (s Signature) keywordOnly() map[string]Parameter {
	out := make(map[string]Parameter)
	for _, p := range s.Params {
		if p.Kind == KeywordOnly {
			out[p.Name] = p
		}
	}
	return out
}

// checkSignatureCompatible verifies that the subject's method signature
// can satisfy every call shape the interface's method declaration
// admits. This is compatibility, not type unification: only kinds,
// arity, names and keyword-completeness are compared.
func checkSignatureCompatible(subject, iface Signature) error {
	if iface.Kind == InstanceMethod && subject.Kind != InstanceMethod {
		return NewTypeCheckError("should be an instance method but it's a %s method", subject.Kind.label())
	}
	if iface.Kind != InstanceMethod && subject.Kind == InstanceMethod {
		return NewTypeCheckError("should be a %s method but it's an instance method", iface.Kind.label())
	}

	subjectVarArgs := subject.hasVarArgs()
	if iface.hasVarArgs() && !subjectVarArgs {
		return NewTypeCheckError("should accept variable positional arguments but doesn't")
	}

	ifaceVarKeywords := iface.hasVarKeywords()
	subjectVarKeywords := subject.hasVarKeywords()
	if ifaceVarKeywords && !subjectVarKeywords {
		return NewTypeCheckError("should accept variable keyword arguments but doesn't")
	}

	if !subjectVarArgs {
		ifacePos := iface.positional()
		subjectPos := subject.positional()
		for i := 0; i < len(ifacePos) || i < len(subjectPos); i++ {
			if i >= len(ifacePos) {
				if !subjectPos[i].HasDefault {
					return NewTypeCheckError("has too many mandatory positional arguments")
				}
				break
			}
			if i >= len(subjectPos) {
				return NewTypeCheckError("has too few positional arguments")
			}

			ifaceArg, subjectArg := ifacePos[i], subjectPos[i]
			if ifaceArg.Kind == PositionalOrKeyword && subjectArg.Kind == PositionalOnly {
				return NewTypeCheckError("has an argument (%s) that should not be positional-only", subjectArg.Name)
			}
			if ifaceArg.Kind == PositionalOrKeyword && ifaceArg.Name != "" && subjectArg.Name != "" &&
				ifaceArg.Name != subjectArg.Name {
				return NewTypeCheckError("has a positional argument (%s) that should be named '%s' at this position",
					subjectArg.Name, ifaceArg.Name)
			}
		}
	}

	ifaceKeywordOnly := iface.keywordOnly()
	subjectKeywordOnly := subject.keywordOnly()

	if !subjectVarKeywords {
		var missing []string
		for name := range ifaceKeywordOnly {
			if _, ok := subjectKeywordOnly[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return NewTypeCheckError("is missing keyword-only arguments: %s", strings.Join(missing, ", "))
		}
	}

	if !ifaceVarKeywords {
		var extra []string
		for name, p := range subjectKeywordOnly {
			if _, ok := ifaceKeywordOnly[name]; !ok && !p.HasDefault {
				extra = append(extra, name)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			return NewTypeCheckError("has mandatory keyword-only arguments not present in the interface: %s",
				strings.Join(extra, ", "))
		}
	}

	return nil
}
