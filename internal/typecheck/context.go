package typecheck

import (
	"fmt"
	"reflect"
)

// Env is the name-resolution scope for deferred type references. Resolve
// returns the descriptor a name stands for, or an error when the name is
// unknown in this environment.
type Env interface {
	Resolve(name string) (*Descriptor, error)
}

// MapEnv is the basic environment: a fixed name-to-descriptor table.
type MapEnv map[string]*Descriptor

func (m MapEnv) Resolve(name string) (*Descriptor, error) {
	if d, ok := m[name]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("name %q is not defined", name)
}

// CheckContext is the read-only bundle threaded through a recursive
// descent: configuration, the class bound to Self during a method-scoped
// check, the forward-reference environment and the owning registry.
// It is constructed once per top-level call and never mutated.
type CheckContext struct {
	Config   CheckConfig
	SelfType reflect.Type
	Env      Env

	registry *Registry
}

// Check recursively validates a sub-value against a nested descriptor.
// Structural checkers and extension checkers use this for recursion; the
// path segment for the recursion point is added by the caller.
func (ctx *CheckContext) Check(value any, d *Descriptor) error {
	return ctx.registry.checkInternal(value, d, ctx)
}

// CheckOption customizes a single top-level validation call.
type CheckOption func(*CheckContext)

// WithConfig overrides the default configuration for this call.
func WithConfig(cfg CheckConfig) CheckOption {
	return func(ctx *CheckContext) { ctx.Config = cfg }
}

// WithSelfType binds the class checked against Self descriptors,
// normally the receiver type of the enclosing method.
func WithSelfType(t reflect.Type) CheckOption {
	return func(ctx *CheckContext) { ctx.SelfType = t }
}

// WithEnv sets the forward-reference resolution environment.
func WithEnv(env Env) CheckOption {
	return func(ctx *CheckContext) { ctx.Env = env }
}
