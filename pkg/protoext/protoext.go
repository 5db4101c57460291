// Package protoext plugs protobuf awareness into the validation engine.
// Its lookup provider claims instance descriptors whose required type is
// a protobuf message and matches values by message full name instead of
// Go type identity, so dynamic messages interchange freely with
// generated ones.
package protoext

import (
	"reflect"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/typefence/typefence/pkg/typefence"
)

var messageType = reflect.TypeFor[proto.Message]()

// MessageNamed declares that a value must be a protobuf message with the
// given full name, regardless of which Go representation carries it.
func MessageNamed(name protoreflect.FullName) *typefence.Descriptor {
	return typefence.Annotated(typefence.TypeOf[proto.Message](), name)
}

// MessageOf declares that a value must carry the same message type as
// the given message, matched by full name.
func MessageOf(msg proto.Message) *typefence.Descriptor {
	return MessageNamed(msg.ProtoReflect().Descriptor().FullName())
}

// Extension wraps the provider for Registry.LoadExtensions.
func Extension() typefence.Extension {
	return typefence.Extension{
		Name: "protoext",
		Provide: func() (typefence.LookupFunc, error) {
			return Lookup, nil
		},
	}
}

// Register installs the provider on the given registry.
func Register(r *typefence.Registry) (typefence.Registration, error) {
	return r.RegisterLookup("protoext", Lookup)
}

// Lookup claims instance descriptors that either carry a full-name
// annotation or require a concrete message type. Everything else is
// declined.
func Lookup(origin typefence.Origin, params []any, metadata []any) typefence.Checker {
	if origin != typefence.OriginInstance || len(params) != 1 {
		return nil
	}
	t, ok := params[0].(reflect.Type)
	if !ok {
		return nil
	}

	for _, extra := range metadata {
		if name, ok := extra.(protoreflect.FullName); ok {
			if t == messageType || t.Implements(messageType) {
				return checkMessageName(name)
			}
		}
	}

	if t == messageType || t.Kind() == reflect.Interface || !t.Implements(messageType) {
		return nil
	}
	name, ok := fullNameOfType(t)
	if !ok {
		return nil
	}
	return checkMessageName(name)
}

func checkMessageName(want protoreflect.FullName) typefence.Checker {
	return func(value any, origin typefence.Origin, params []any, ctx *typefence.CheckContext) error {
		msg, ok := value.(proto.Message)
		if !ok {
			return typefence.NewTypeCheckError("is not a protobuf message")
		}
		got := msg.ProtoReflect().Descriptor().FullName()
		if got != want {
			return typefence.NewTypeCheckError("is not a %s message (got %s)", want, got)
		}
		return nil
	}
}

// fullNameOfType derives the message full name from a zero instance of
// the concrete message type.
func fullNameOfType(t reflect.Type) (protoreflect.FullName, bool) {
	var zero reflect.Value
	if t.Kind() == reflect.Pointer {
		zero = reflect.New(t.Elem())
	} else {
		zero = reflect.Zero(t)
	}
	msg, ok := zero.Interface().(proto.Message)
	if !ok {
		return "", false
	}
	return msg.ProtoReflect().Descriptor().FullName(), true
}
