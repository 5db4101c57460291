package typecheck

import (
	"reflect"
	"testing"
)

func TestDescriptorString(t *testing.T) {
	tests := []struct {
		name string
		desc *Descriptor
		want string
	}{
		{name: "instance", desc: Int(), want: "int"},
		{name: "any", desc: Any(), want: "any"},
		{name: "none", desc: None(), want: "nil"},
		{name: "list", desc: ListOf(Int()), want: "list[int]"},
		{name: "dict", desc: DictOf(Str(), ListOf(Int())), want: "dict[string, list[int]]"},
		{name: "union", desc: UnionOf(Int(), Str()), want: "int | string"},
		{name: "literal", desc: LiteralOf(1, "a", true), want: "literal[1, 'a', true]"},
		{name: "variadic tuple", desc: TupleOf(Int(), EllipsisMarker), want: "tuple[int, ...]"},
		{name: "empty tuple", desc: EmptyTuple(), want: "tuple[()]"},
		{name: "bare tuple", desc: Tuple(), want: "tuple"},
		{name: "ref", desc: RefTo("Movie"), want: `ref("Movie")`},
		{name: "subclass", desc: SubclassOf(Int()), want: "type[int]"},
		{name: "bare subclass", desc: SubclassOf(nil), want: "type"},
		{name: "typevar", desc: TypeVarOf(&TypeVarDecl{Name: "T"}), want: "T"},
		{name: "alias", desc: AliasOf("UserID", Int()), want: "UserID"},
		{name: "interface", desc: InterfaceOf(&InterfaceDecl{Name: "Named"}), want: "Named"},
		{name: "paramspec", desc: ParamSpec("P"), want: "paramspec(P)"},
		{name: "self", desc: Self(), want: "Self"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReprValue(t *testing.T) {
	type color string

	tests := []struct {
		value any
		want  string
	}{
		{value: nil, want: "nil"},
		{value: "a", want: "'a'"},
		{value: 5, want: "5"},
		{value: true, want: "true"},
		{value: color("red"), want: "'red'"},
		{value: []byte("ab"), want: `bytes("ab")`},
	}
	for _, tt := range tests {
		if got := reprValue(tt.value); got != tt.want {
			t.Errorf("reprValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestRefName(t *testing.T) {
	if got := RefTo("X").RefName(); got != "X" {
		t.Errorf("RefName = %q", got)
	}
	if got := Int().RefName(); got != "" {
		t.Errorf("non-ref RefName = %q, want empty", got)
	}
}

func TestInterfaceDeclMemberNames(t *testing.T) {
	decl := &InterfaceDecl{
		Attrs: map[string]*Descriptor{"b": Str(), "a": Int()},
		Methods: map[string]Signature{
			"c": {},
			"a": {}, // shadowed by the attribute of the same name
		},
	}
	got := decl.MemberNames()
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MemberNames() = %v, want %v", got, want)
	}
}

func TestTypeCheckErrorPath(t *testing.T) {
	err := NewTypeCheckError("is not an instance of int")
	err.PrependPath("item 2")
	err.PrependPath("value of key 'x'")
	want := "value of key 'x' -> item 2: is not an instance of int"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAnnotatedKeepsShape(t *testing.T) {
	d := Annotated(ListOf(Int()), "doc")
	if d.Origin != OriginList {
		t.Errorf("Origin = %v", d.Origin)
	}
	if len(d.Metadata) != 1 || d.Metadata[0] != "doc" {
		t.Errorf("Metadata = %v", d.Metadata)
	}
}
