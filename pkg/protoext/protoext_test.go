package protoext_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/typefence/typefence/pkg/protoext"
	"github.com/typefence/typefence/pkg/typefence"
)

func newProtoRegistry(t *testing.T) *typefence.Registry {
	t.Helper()
	r := typefence.NewRegistry()
	_, err := protoext.Register(r)
	require.NoError(t, err)
	return r
}

func TestConcreteMessageType(t *testing.T) {
	t.Parallel()

	r := newProtoRegistry(t)
	desc := typefence.TypeOf[*timestamppb.Timestamp]()

	now := timestamppb.Now()
	assert.NoError(t, r.Check(now, desc))

	err := r.Check(durationpb.New(time.Second), desc)
	require.Error(t, err)
	assert.Equal(t,
		"is not a google.protobuf.Timestamp message (got google.protobuf.Duration)",
		err.Error())

	err = r.Check("not a message", desc)
	require.Error(t, err)
	assert.Equal(t, "is not a protobuf message", err.Error())
}

func TestDynamicMessageInterchange(t *testing.T) {
	t.Parallel()

	r := newProtoRegistry(t)
	desc := typefence.TypeOf[*timestamppb.Timestamp]()

	// A dynamic message with the right full name satisfies the concrete
	// descriptor even though its Go type differs.
	dyn := dynamicpb.NewMessage((&timestamppb.Timestamp{}).ProtoReflect().Descriptor())
	assert.NoError(t, r.Check(dyn, desc))
}

func TestMessageNamed(t *testing.T) {
	t.Parallel()

	r := newProtoRegistry(t)
	desc := protoext.MessageNamed("google.protobuf.Duration")

	assert.NoError(t, r.Check(durationpb.New(time.Second), desc))

	err := r.Check(timestamppb.Now(), desc)
	require.Error(t, err)
	assert.Equal(t,
		"is not a google.protobuf.Duration message (got google.protobuf.Timestamp)",
		err.Error())
}

func TestMessageOf(t *testing.T) {
	t.Parallel()

	r := newProtoRegistry(t)
	desc := protoext.MessageOf(&durationpb.Duration{})

	assert.NoError(t, r.Check(durationpb.New(time.Minute), desc))
	assert.Error(t, r.Check(timestamppb.Now(), desc))
}

func TestLookupDeclines(t *testing.T) {
	t.Parallel()

	// Without a message type involved the provider declines and the
	// built-in checkers still serve.
	r := newProtoRegistry(t)
	assert.NoError(t, r.Check(5, typefence.Int()))
	assert.NoError(t, r.Check([]int{1}, typefence.ListOf(typefence.Int())))

	// Messages still pass plain non-proto descriptors untouched.
	assert.NoError(t, r.Check(timestamppb.Now(), typefence.Any()))
}

func TestExtensionLoading(t *testing.T) {
	t.Parallel()

	r := typefence.NewRegistry()
	regs := r.LoadExtensions([]typefence.Extension{protoext.Extension()})
	require.Len(t, regs, 1)
	assert.Equal(t, "protoext", regs[0].Name)

	assert.NoError(t, r.Check(timestamppb.Now(), typefence.TypeOf[*timestamppb.Timestamp]()))
}
