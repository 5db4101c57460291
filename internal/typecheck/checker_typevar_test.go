package typecheck

import (
	"reflect"
	"strings"
	"testing"
)

func TestCheckTypeVar(t *testing.T) {
	r := NewRegistry()

	bounded := TypeVarOf(&TypeVarDecl{Name: "T", Bound: Float()})
	if err := r.Check(3.14, bounded); err != nil {
		t.Fatalf("bound satisfied: %v", err)
	}
	wantCheckError(t, r.Check("x", bounded), "is neither float or int")

	constrained := TypeVarOf(&TypeVarDecl{Name: "AnyStr", Constraints: []*Descriptor{Str(), Bytes()}})
	if err := r.Check("x", constrained); err != nil {
		t.Fatalf("first constraint: %v", err)
	}
	if err := r.Check([]byte("x"), constrained); err != nil {
		t.Fatalf("second constraint: %v", err)
	}
	wantCheckError(t, r.Check(3, constrained),
		"does not match any of the constraints (string, bytes)")

	unconstrained := TypeVarOf(&TypeVarDecl{Name: "T"})
	if err := r.Check(struct{}{}, unconstrained); err != nil {
		t.Fatalf("unconstrained: %v", err)
	}
}

func TestCheckParamSpec(t *testing.T) {
	r := NewRegistry()
	if err := r.Check(12345, ParamSpec("P")); err != nil {
		t.Fatalf("paramspec never fails: %v", err)
	}
}

func TestCheckAlias(t *testing.T) {
	r := NewRegistry()
	userID := AliasOf("UserID", Int())

	if err := r.Check(7, userID); err != nil {
		t.Fatalf("underlying type: %v", err)
	}
	wantCheckError(t, r.Check("7", userID), "is not an instance of int")
}

func TestCheckSelf(t *testing.T) {
	type account struct{}
	r := NewRegistry()
	selfType := reflect.TypeFor[account]()

	if err := r.Check(account{}, Self(), WithSelfType(selfType)); err != nil {
		t.Fatalf("instance of self: %v", err)
	}
	wantCheckError(t, r.Check("x", Self(), WithSelfType(selfType)),
		"is not an instance of the self type (typecheck.account)")

	// Class objects get subclass semantics.
	if err := r.Check(selfType, Self(), WithSelfType(selfType)); err != nil {
		t.Fatalf("class of self: %v", err)
	}
	wantCheckError(t, r.Check(reflect.TypeFor[int](), Self(), WithSelfType(selfType)),
		"is not a subclass of the self type (typecheck.account)")

	wantCheckError(t, r.Check(account{}, Self()),
		"cannot be checked against Self outside of a method call")
}

func TestCheckClass(t *testing.T) {
	type animal struct{}
	r := NewRegistry()
	animalType := reflect.TypeFor[animal]()

	tests := []struct {
		name    string
		value   any
		desc    *Descriptor
		wantErr string
	}{
		{name: "bare type", value: animalType, desc: SubclassOf(nil)},
		{name: "not a class", value: 5, desc: SubclassOf(nil), wantErr: "is not a class"},
		{name: "exact class", value: animalType, desc: SubclassOf(TypeOf[animal]())},
		{name: "wrong class", value: reflect.TypeFor[int](), desc: SubclassOf(TypeOf[animal]()),
			wantErr: "is not a subclass of typecheck.animal"},
		{name: "any parameter", value: animalType, desc: SubclassOf(Any())},
		{name: "interface parameter",
			value: reflect.TypeFor[strings.Reader](),
			desc:  SubclassOf(TypeOf[interface{ Read([]byte) (int, error) }]())},
		{name: "typevar parameter",
			value: animalType,
			desc:  SubclassOf(TypeVarOf(&TypeVarDecl{Name: "T", Bound: TypeOf[animal]()}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Check(tt.value, tt.desc)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			wantCheckError(t, err, tt.wantErr)
		})
	}
}

func TestCheckClassUnion(t *testing.T) {
	type cat struct{}
	type dog struct{}
	r := NewRegistry()

	desc := SubclassOf(UnionOf(TypeOf[cat](), TypeOf[dog]()))
	if err := r.Check(reflect.TypeFor[dog](), desc); err != nil {
		t.Fatalf("union member: %v", err)
	}

	wantCheckError(t, r.Check(reflect.TypeFor[int](), desc),
		"did not match any element in the union:\n"+
			"  typecheck.cat: is not a subclass of typecheck.cat\n"+
			"  typecheck.dog: is not a subclass of typecheck.dog")
}

func TestCheckClassBadParameter(t *testing.T) {
	r := NewRegistry()
	err := r.Check(reflect.TypeFor[int](), SubclassOf(ListOf(Int())))
	if _, ok := err.(*DeclarationError); !ok {
		t.Fatalf("expected *DeclarationError, got %T: %v", err, err)
	}
}

func TestCheckNotRequiredStandalone(t *testing.T) {
	r := NewRegistry()
	if err := r.Check(5, NotRequired(Int())); err != nil {
		t.Fatalf("unwraps to inner: %v", err)
	}
	wantCheckError(t, r.Check("x", NotRequired(Int())), "is not an instance of int")
}
