package typecheck

import (
	"testing"
)

func TestCheckUnion(t *testing.T) {
	r := NewRegistry()

	// First matching alternative wins, in declaration order.
	if err := r.Check(5, UnionOf(Str(), Int())); err != nil {
		t.Fatalf("int alternative: %v", err)
	}
	if err := r.Check("x", UnionOf(Str(), Int())); err != nil {
		t.Fatalf("string alternative: %v", err)
	}

	// No match: the aggregate error lists every alternative's reason in
	// declaration order.
	wantCheckError(t, r.Check(3.14, UnionOf(Str(), Int())),
		"did not match any element in the union:\n"+
			"  string: is not an instance of string\n"+
			"  int: is not an instance of int")
}

func TestCheckUnionDuplicateDisplayNames(t *testing.T) {
	r := NewRegistry()

	// Two alternatives with the same display name stay distinguishable.
	first := LiteralOf(1, 2)
	second := LiteralOf(1, 2)
	err := r.Check(9, UnionOf(first, second))
	wantCheckError(t, err,
		"did not match any element in the union:\n"+
			"  literal[1, 2]: is not any of (1, 2)\n"+
			"  literal[1, 2]#2: is not any of (1, 2)")
}

func TestCheckUnionPropagatesDeclarationErrors(t *testing.T) {
	r := NewRegistry()

	err := r.Check(9, UnionOf(LiteralOf(3.14), Int()))
	if _, ok := err.(*DeclarationError); !ok {
		t.Fatalf("expected *DeclarationError, got %T: %v", err, err)
	}
}

func TestCheckBareUnion(t *testing.T) {
	r := NewRegistry()

	if err := r.Check(UnionOf(Int(), Str()), BareUnion()); err != nil {
		t.Fatalf("union descriptor value: %v", err)
	}
	wantCheckError(t, r.Check(5, BareUnion()), "is not a union")
	wantCheckError(t, r.Check(Int(), BareUnion()), "is not a union")
}

type fruit string

const (
	apple  fruit = "apple"
	banana fruit = "banana"
)

func TestCheckLiteral(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		value   any
		desc    *Descriptor
		wantErr string
	}{
		{name: "int member", value: 1, desc: LiteralOf(1, "a", true)},
		{name: "string member", value: "a", desc: LiteralOf(1, "a", true)},
		{name: "bool member", value: true, desc: LiteralOf(1, "a", true)},
		{name: "no member", value: 2, desc: LiteralOf(1, "a", true),
			wantErr: "is not any of (1, 'a', true)"},
		// Exact runtime type: a bool never satisfies an integer literal
		// even where the values would convert.
		{name: "bool vs int literal", value: true, desc: LiteralOf(1),
			wantErr: "is not any of (1)"},
		{name: "int vs bool literal", value: 1, desc: LiteralOf(true),
			wantErr: "is not any of (true)"},
		{name: "int64 vs int literal", value: int64(1), desc: LiteralOf(1),
			wantErr: "is not any of (1)"},
		// Enum members are values of a named kind.
		{name: "enum member", value: apple, desc: LiteralOf(apple, banana)},
		{name: "enum underlying mismatch", value: "apple", desc: LiteralOf(apple, banana),
			wantErr: "is not any of ('apple', 'banana')"},
		{name: "nil member", value: nil, desc: LiteralOf(nil, 0)},
		{name: "bytes member", value: []byte{1, 2}, desc: LiteralOf([]byte{1, 2})},
		// Nested literal descriptors flatten into one allowed-value list.
		{name: "nested flattening", value: 3, desc: LiteralOf(1, LiteralOf(2, LiteralOf(3)))},
		{name: "nested flattening miss", value: 4, desc: LiteralOf(1, LiteralOf(2, 3)),
			wantErr: "is not any of (1, 2, 3)"},
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

func TestCheckLiteralIllegalMember(t *testing.T) {
	r := NewRegistry()

	// A non-literal member poisons the declaration for every value.
	for _, value := range []any{3.14, "anything"} {
		err := r.Check(value, LiteralOf(3.14))
		if _, ok := err.(*DeclarationError); !ok {
			t.Fatalf("value %v: expected *DeclarationError, got %T: %v", value, err, err)
		}
	}

	err := r.Check(1, LiteralOf(ListOf(Int())))
	if _, ok := err.(*DeclarationError); !ok {
		t.Fatalf("nested non-literal descriptor: expected *DeclarationError, got %T: %v", err, err)
	}
}

func TestCheckLiteralString(t *testing.T) {
	r := NewRegistry()
	if err := r.Check("s", LiteralString()); err != nil {
		t.Fatalf("string: %v", err)
	}
	wantCheckError(t, r.Check(1, LiteralString()), "is not an instance of string")
}

func TestCheckTypeGuard(t *testing.T) {
	r := NewRegistry()
	if err := r.Check(true, TypeGuard()); err != nil {
		t.Fatalf("bool: %v", err)
	}
	wantCheckError(t, r.Check("no", TypeGuard()), "is not an instance of bool")
}
