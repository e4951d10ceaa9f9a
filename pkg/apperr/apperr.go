// Package apperr defines the typed error taxonomy used by the structural
// mutation engine and the HTTP layer. Business-rule failures carry a stable
// kind and a human message so transactions can commit-or-abort
// deterministically and callers never see raw store error text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error outcome.
type Kind int

const (
	// KindInternal is an unexpected store or programming error.
	KindInternal Kind = iota
	// KindNotFound means the entity is absent.
	KindNotFound
	// KindForbidden means owner mismatch or cross-tenant access.
	KindForbidden
	// KindDuplicatePath means a name collision on an active path.
	KindDuplicatePath
	// KindInvalidState means operating on a trashed entity where an active
	// one is required, or vice versa.
	KindInvalidState
	// KindValidation means malformed input, caught before any transaction.
	KindValidation
	// KindDependency means a remote collaborator call failed; the enclosing
	// transaction must abort.
	KindDependency
)

// String returns a stable identifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindDuplicatePath:
		return "duplicate_path"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation"
	case KindDependency:
		return "dependency_failure"
	case KindInternal:
		return "internal"
	default:
		return "internal"
	}
}

// Error is a classified error with an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error while keeping it unwrappable.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind of an error; unclassified errors are Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}

	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user-facing message of an error. Unclassified errors
// get a generic message so internal store text never leaks to callers.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}

	return "internal error"
}

// HTTPStatus maps an error kind to a stable HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindDuplicatePath, KindInvalidState:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindDependency:
		return http.StatusBadGateway
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
