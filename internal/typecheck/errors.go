package typecheck

import (
	"fmt"
	"strings"
)

// TypeCheckError is the structural-mismatch outcome of a failed check. It
// carries a base reason plus an ordered list of path segments, prepended
// by each enclosing frame that introduced structural context, so the
// final rendering reads outer-to-inner:
//
//	value of key 'x' -> item 2: is not an instance of int
type TypeCheckError struct {
	Reason string
	Path   []string
}

func NewTypeCheckError(format string, args ...any) *TypeCheckError {
	return &TypeCheckError{Reason: fmt.Sprintf(format, args...)}
}

// PrependPath adds a structural path segment for the enclosing frame.
// Only frames that recurse into a sub-value add a segment; a checker that
// does not add context must not alter the path.
func (e *TypeCheckError) PrependPath(segment string) *TypeCheckError {
	e.Path = append([]string{segment}, e.Path...)
	return e
}

func (e *TypeCheckError) Error() string {
	if len(e.Path) == 0 {
		return e.Reason
	}
	return strings.Join(e.Path, " -> ") + ": " + e.Reason
}

// DeclarationError reports a malformed type descriptor (for example an
// illegal literal member). It is distinct from TypeCheckError because no
// value could ever satisfy the declaration.
type DeclarationError struct {
	Reason string
}

func NewDeclarationError(format string, args ...any) *DeclarationError {
	return &DeclarationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *DeclarationError) Error() string {
	return e.Reason
}

// ResolutionError reports a forward reference that could not be resolved
// against the context's environment under the Error policy.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot resolve forward reference %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("cannot resolve forward reference %q", e.Name)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// asCheckError narrows err to a TypeCheckError. Declaration and
// resolution errors pass through enclosing frames untouched.
func asCheckError(err error) (*TypeCheckError, bool) {
	tce, ok := err.(*TypeCheckError)
	return tce, ok
}

// withPath prepends a path segment when err is a structural mismatch and
// returns err unchanged otherwise.
func withPath(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if tce, ok := asCheckError(err); ok {
		return tce.PrependPath(fmt.Sprintf(format, args...))
	}
	return err
}
