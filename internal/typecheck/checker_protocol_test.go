package typecheck

import (
	"reflect"
	"testing"
)

type namedThing struct {
	Name string
}

func (namedThing) Describe(prefix string) string { return prefix }

type silentThing struct{}

// declaredWorker supplies explicit signatures instead of relying on
// reflection, so names and keyword kinds survive.
type declaredWorker struct{}

func (declaredWorker) TypeSignatures() map[string]Signature {
	return map[string]Signature{
		"Run": {Params: []Parameter{
			{Name: "task", Kind: PositionalOrKeyword},
			{Name: "timeout", Kind: KeywordOnly, HasDefault: true},
		}},
	}
}

func TestCheckProtocolAttributes(t *testing.T) {
	r := NewRegistry()
	iface := InterfaceOf(&InterfaceDecl{
		Name:  "Named",
		Attrs: map[string]*Descriptor{"Name": Str()},
	})

	if err := r.Check(namedThing{Name: "x"}, iface); err != nil {
		t.Fatalf("conforming struct: %v", err)
	}
	if err := r.Check(&namedThing{Name: "x"}, iface); err != nil {
		t.Fatalf("pointer to conforming struct: %v", err)
	}

	wantCheckError(t, r.Check(silentThing{}, iface),
		"is not compatible with the Named interface because it has no attribute named 'Name'")

	numbered := InterfaceOf(&InterfaceDecl{
		Name:  "Named",
		Attrs: map[string]*Descriptor{"Name": Int()},
	})
	wantCheckError(t, r.Check(namedThing{Name: "x"}, numbered),
		"is not compatible with the Named interface because its 'Name' attribute is not an instance of int")
}

func TestCheckProtocolMethods(t *testing.T) {
	r := NewRegistry()

	oneArg := InterfaceOf(&InterfaceDecl{
		Name: "Describer",
		Methods: map[string]Signature{
			"Describe": {Params: []Parameter{{Name: "prefix", Kind: PositionalOrKeyword}}},
		},
	})
	if err := r.Check(namedThing{}, oneArg); err != nil {
		t.Fatalf("matching arity: %v", err)
	}

	wantCheckError(t, r.Check(silentThing{}, oneArg),
		"is not compatible with the Describer interface because it has no method named 'Describe'")

	twoArgs := InterfaceOf(&InterfaceDecl{
		Name: "Describer",
		Methods: map[string]Signature{
			"Describe": {Params: []Parameter{
				{Name: "prefix", Kind: PositionalOrKeyword},
				{Name: "count", Kind: PositionalOrKeyword},
			}},
		},
	})
	wantCheckError(t, r.Check(namedThing{}, twoArgs),
		"is not compatible with the Describer interface because its 'Describe' method has too few positional arguments")
}

func TestCheckProtocolDeclaredSignatures(t *testing.T) {
	r := NewRegistry()

	iface := InterfaceOf(&InterfaceDecl{
		Name: "Worker",
		Methods: map[string]Signature{
			"Run": {Params: []Parameter{{Name: "task", Kind: PositionalOrKeyword}}},
		},
	})
	if err := r.Check(declaredWorker{}, iface); err != nil {
		t.Fatalf("declared signature: %v", err)
	}

	renamed := InterfaceOf(&InterfaceDecl{
		Name: "Worker",
		Methods: map[string]Signature{
			"Run": {Params: []Parameter{{Name: "job", Kind: PositionalOrKeyword}}},
		},
	})
	wantCheckError(t, r.Check(declaredWorker{}, renamed),
		"is not compatible with the Worker interface because its 'Run' method "+
			"has a positional argument (task) that should be named 'job' at this position")
}

func TestCheckProtocolCallableFields(t *testing.T) {
	r := NewRegistry()
	iface := InterfaceOf(&InterfaceDecl{
		Name: "Handler",
		Methods: map[string]Signature{
			"Handle": {Params: []Parameter{{Kind: PositionalOrKeyword}}},
		},
	})

	// A func-typed field counts as a callable member.
	withFunc := struct{ Handle func(int) }{Handle: func(int) {}}
	if err := r.Check(withFunc, iface); err != nil {
		t.Fatalf("func field: %v", err)
	}

	withValue := struct{ Handle int }{Handle: 3}
	wantCheckError(t, r.Check(withValue, iface),
		"is not compatible with the Handler interface because its 'Handle' attribute is not a callable")
}

func TestCheckProtocolClassObject(t *testing.T) {
	r := NewRegistry()
	iface := InterfaceOf(&InterfaceDecl{
		Name: "Describer",
		Methods: map[string]Signature{
			"Describe": {Params: []Parameter{{Name: "prefix", Kind: PositionalOrKeyword}}},
		},
	})

	// A class object conforms through its method set, receiver dropped.
	if err := r.Check(reflect.TypeFor[namedThing](), iface); err != nil {
		t.Fatalf("class object: %v", err)
	}

	attrs := InterfaceOf(&InterfaceDecl{
		Name:  "Named",
		Attrs: map[string]*Descriptor{"Name": Str()},
	})
	wantCheckError(t, r.Check(reflect.TypeFor[namedThing](), attrs),
		"is not compatible with the Named interface because it has no attribute named 'Name'")
}
