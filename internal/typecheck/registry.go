package typecheck

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Checker validates a decomposed descriptor against a value. Checkers are
// stateless; they recurse into sub-values through ctx.Check.
type Checker func(value any, origin Origin, params []any, ctx *CheckContext) error

// LookupFunc resolves a checker for an (origin, params, metadata) triple,
// or returns nil to decline.
type LookupFunc func(origin Origin, params []any, metadata []any) Checker

// Extension is a discovered checker lookup provider. Provide is invoked
// once during registry initialization; a failing or panicking provider is
// skipped with a warning and never aborts initialization.
type Extension struct {
	Name    string
	Provide func() (LookupFunc, error)
}

// Registration identifies one registered lookup provider.
type Registration struct {
	ID   uuid.UUID
	Name string
}

// ErrRegistrySealed is returned when a lookup provider is registered
// after the registry served its first check.
var ErrRegistrySealed = errors.New("typecheck: registry is sealed after first use")

type lookupEntry struct {
	reg    Registration
	lookup LookupFunc
}

// Registry holds the ordered list of checker lookup providers. Externally
// registered providers are consulted before the built-in provider, most
// recently registered first, allowing overrides. The registry is mutable
// only during initialization: the first check seals it, after which
// concurrent reads require no locking.
type Registry struct {
	mu      sync.Mutex
	seal    sync.Once
	sealed  bool
	entries []lookupEntry
}

// NewRegistry returns a registry holding only the built-in provider.
func NewRegistry() *Registry {
	r := &Registry{}
	r.entries = []lookupEntry{{
		reg:    Registration{ID: uuid.New(), Name: "builtin"},
		lookup: builtinCheckerLookup,
	}}
	return r
}

// RegisterLookup prepends a lookup provider, ahead of every provider
// registered before it and ahead of the built-in provider.
func (r *Registry) RegisterLookup(name string, fn LookupFunc) (Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return Registration{}, ErrRegistrySealed
	}
	reg := Registration{ID: uuid.New(), Name: name}
	r.entries = append([]lookupEntry{{reg: reg, lookup: fn}}, r.entries...)
	return reg, nil
}

// Remove unregisters a previously registered lookup provider. Like
// RegisterLookup it is only legal during initialization.
func (r *Registry) Remove(reg Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrRegistrySealed
	}
	for i, e := range r.entries {
		if e.reg.ID == reg.ID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("typecheck: no registration with id %s", reg.ID)
}

// LoadExtensions registers discovered providers. Each extension is
// isolated: a provider that errors, panics or yields a nil lookup is
// skipped with a diagnostic. Returns the successful registrations.
func (r *Registry) LoadExtensions(exts []Extension) []Registration {
	var regs []Registration
	for _, ext := range exts {
		lookup, err := provideExtension(ext)
		if err != nil {
			warnf("failed to load extension %q: %v", ext.Name, err)
			continue
		}
		reg, err := r.RegisterLookup(ext.Name, lookup)
		if err != nil {
			warnf("failed to load extension %q: %v", ext.Name, err)
			continue
		}
		regs = append(regs, reg)
	}
	return regs
}

func provideExtension(ext Extension) (lookup LookupFunc, err error) {
	defer func() {
		if p := recover(); p != nil {
			lookup, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	if ext.Provide == nil {
		return nil, errors.New("extension has no provider")
	}
	lookup, err = ext.Provide()
	if err != nil {
		return nil, err
	}
	if lookup == nil {
		return nil, errors.New("provider returned a nil lookup")
	}
	return lookup, nil
}

// Check validates value against the descriptor and returns nil on
// conformance, a *TypeCheckError on structural mismatch, a
// *DeclarationError when the descriptor itself is malformed, or a
// *ResolutionError for a fatal unresolvable forward reference.
//
// The first call seals the registry: initialization happens-before any
// concurrent check, and sealed lookups are read without locking.
func (r *Registry) Check(value any, d *Descriptor, opts ...CheckOption) error {
	r.seal.Do(func() {
		r.mu.Lock()
		r.sealed = true
		r.mu.Unlock()
	})

	ctx := &CheckContext{
		Config:   DefaultConfig(),
		registry: r,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return r.checkInternal(value, d, ctx)
}

// lookupChecker queries each registered provider in order and returns
// the first non-nil checker.
func (r *Registry) lookupChecker(origin Origin, params []any, metadata []any) Checker {
	for _, entry := range r.entries {
		if checker := entry.lookup(origin, params, metadata); checker != nil {
			return checker
		}
	}
	return nil
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// Default returns the shared process-wide registry, created on first use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
