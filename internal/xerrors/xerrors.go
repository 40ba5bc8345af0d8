// Package xerrors implements the three-way error taxonomy from spec
// section 7: fatal resource errors, contract violations, and the
// (non-error) empty-frontier loop termination signal.
//
// Grounded on cluster_bfs.go's use of github.com/pkg/errors for wrapped,
// stack-trace-carrying error values returned up through the call chain,
// generalized here into named constructors per taxonomy category so
// callers (and tests) can classify an error with errors.As instead of
// string matching.
package xerrors

import "github.com/pkg/errors"

// Kind classifies an error into one of the taxonomy's two error
// categories (empty-frontier is deliberately not a Kind: it is normal
// termination, surfaced via vertexsubset.IsEmpty, never an error).
type Kind int

const (
	// FatalResource covers allocator exhaustion and oversubscription:
	// the process cannot make progress and should abort with a
	// diagnostic.
	FatalResource Kind = iota
	// ContractViolation covers a caller passing a graph or algorithm
	// combination the core does not support, e.g. an asymmetric graph
	// where a symmetric one is required.
	ContractViolation
)

func (k Kind) String() string {
	switch k {
	case FatalResource:
		return "fatal_resource"
	case ContractViolation:
		return "contract_violation"
	default:
		return "unknown"
	}
}

// Error wraps an underlying cause with a taxonomy Kind.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.cause.Error() }
func (e *Error) Unwrap() error { return e.cause }

// FatalResourcef builds a FatalResource error with a formatted message.
func FatalResourcef(format string, args ...any) error {
	return &Error{Kind: FatalResource, cause: errors.Errorf(format, args...)}
}

// ContractViolationf builds a ContractViolation error with a formatted
// message.
func ContractViolationf(format string, args ...any) error {
	return &Error{Kind: ContractViolation, cause: errors.Errorf(format, args...)}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
