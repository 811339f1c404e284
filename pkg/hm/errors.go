package hm

import (
	"errors"
	"fmt"
)

// UnificationError reports two terms that cannot be made equal, including
// terms of different sorts.
type UnificationError struct {
	A, B Type
}

func (e UnificationError) Error() string {
	if e.A.Sort() != e.B.Sort() {
		return fmt.Sprintf("cannot unify %s (%s) with %s (%s)", e.A, e.A.Sort(), e.B, e.B.Sort())
	}
	return fmt.Sprintf("cannot unify %s with %s", e.A, e.B)
}

// InfiniteTypeError reports an occurs-check violation: binding Var would
// produce a term containing itself.
type InfiniteTypeError struct {
	Var TypeVariable
	T   Type
}

func (e InfiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Var, e.T)
}

// UnificationMismatchError reports two type lists of different lengths.
type UnificationMismatchError struct {
	A, B Types
}

func (e UnificationMismatchError) Error() string {
	return fmt.Sprintf("mismatched arity: %d types against %d", len(e.A), len(e.B))
}

// UnboundVariableError reports a name absent from the typing context.
// A linear resource that has already been consumed reports this on its
// second use.
type UnboundVariableError struct {
	Name string
}

func (e UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// AmbiguousTypeError reports a constraint set the solver could not fully
// resolve. The core solver itself either succeeds or returns a concrete
// unification failure, so it never constructs this; it is reserved for
// front ends layered on the solver that defer constraints (class
// dictionaries, defaulting) and need to surface leftovers.
type AmbiguousTypeError struct {
	Constraints Constraints
}

func (e AmbiguousTypeError) Error() string {
	return fmt.Sprintf("ambiguous type: %d unresolved constraints", len(e.Constraints))
}

// ModeError reports a sort or linearity discipline violation, such as the
// two sides of an external choice disagreeing on mode.
type ModeError struct {
	Msg string
}

// Modef constructs a ModeError from a format string.
func Modef(format string, args ...any) ModeError {
	return ModeError{Msg: fmt.Sprintf(format, args...)}
}

func (e ModeError) Error() string {
	return "mode mismatch: " + e.Msg
}

// NormalizeError reports a scheme whose body mentions a variable outside its
// quantified set. It signals a generalization bug in the checker itself, not
// a fault in the checked program.
type NormalizeError struct {
	Var TypeVariable
}

func (e NormalizeError) Error() string {
	return fmt.Sprintf("type variable %s is not bound by its scheme", e.Var)
}

// IsInternal reports whether err is an invariant violation of the checker
// rather than a diagnostic about the checked program.
func IsInternal(err error) bool {
	var ne NormalizeError
	return errors.As(err, &ne)
}
