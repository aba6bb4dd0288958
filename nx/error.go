package nx

import (
	"errors"
	"fmt"
)

// Sentinel errors callers can match against with errors.Is.
var (
	// ErrCompile is the sentinel wrapped by every CompileError.
	ErrCompile = errors.New("nx: compile error")
	// ErrCapacity is the sentinel wrapped by every CapacityError.
	ErrCapacity = errors.New("nx: capacity exceeded")
	// ErrInvalidInput is the sentinel wrapped by every InvalidInputError.
	ErrInvalidInput = errors.New("nx: invalid input")
)

// CompileError reports a syntactic problem in a pattern expression: an
// unbalanced bracket, empty alternation, inverted range, or unknown escape
// (§4.1, §7: COMPILE_ERROR). Offset is the byte offset into the original
// expression where the problem was detected. CompileError is never retried
// internally.
type CompileError struct {
	Expr    string
	Offset  int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("nx: compile error at byte %d in %q: %s", e.Offset, e.Expr, e.Message)
}

func (e *CompileError) Unwrap() error { return ErrCompile }

// CapacityError reports that compilation exceeded the state budget
// (MaxStates) (§7: CAPACITY_ERROR). Compile does not check Flags.FuzzCap
// against any limit, so a large fuzz cap never produces a CapacityError.
type CapacityError struct {
	Expr    string
	Message string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("nx: capacity error in %q: %s", e.Expr, e.Message)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }

// InvalidInputError reports that Match was called with a string that is not
// in canonical form (§7: INVALID_INPUT). Debug builds of a caller should
// treat this as a programmer error; Match itself always returns cleanly
// with accepted=false rather than panicking.
type InvalidInputError struct {
	Input string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("nx: input %q is not in canonical form", e.Input)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }
