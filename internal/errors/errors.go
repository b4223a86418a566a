package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors used to mark error categories. Errors produced by the
// builder are marked with exactly one of these so callers can classify
// them with errors.Is without depending on message contents.
var (
	// ErrValidation marks a structural invariant violated locally
	// (tier ordering, bound violations, missing required parameter).
	ErrValidation = errors.New("validation_error")

	// ErrNotFound marks a lookup that produced no result.
	ErrNotFound = errors.New("not_found")

	// ErrAlreadyExists marks a uniqueness conflict.
	ErrAlreadyExists = errors.New("already_exists")

	// ErrInvalidOperation marks an operation attempted against an entity
	// whose state forbids it, e.g. cancelling a past-effective slot
	// transaction. These are contract violations, not user errors.
	ErrInvalidOperation = errors.New("invalid_operation")

	// ErrHTTPClient marks a failed call to a remote service.
	ErrHTTPClient = errors.New("http_client_error")

	// ErrPermissionDenied marks an authorization failure.
	ErrPermissionDenied = errors.New("permission_denied")

	// ErrDatabase marks a storage layer failure.
	ErrDatabase = errors.New("database_error")

	// ErrSystem marks an unexpected internal failure.
	ErrSystem = errors.New("system_error")
)

// InternalError is the concrete error type produced by the builder. It
// carries a user-facing hint and structured details alongside the cause.
type InternalError struct {
	cause   error
	hint    string
	details map[string]interface{}
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.hint
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *InternalError) Unwrap() error {
	return e.cause
}

// Hint returns the user-facing hint attached to the error.
func (e *InternalError) Hint() string {
	return e.hint
}

// Details returns the reportable details attached to the error.
func (e *InternalError) Details() map[string]interface{} {
	return e.details
}

// Hint extracts the hint from an error chain, falling back to the error
// message when no hint was attached.
func Hint(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) && ie.hint != "" {
		return ie.hint
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Details extracts the reportable details from an error chain.
func Details(err error) map[string]interface{} {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.details
	}
	return nil
}

// Classification helpers.

func IsValidation(err error) bool       { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool         { return errors.Is(err, ErrNotFound) }
func IsAlreadyExists(err error) bool    { return errors.Is(err, ErrAlreadyExists) }
func IsInvalidOperation(err error) bool { return errors.Is(err, ErrInvalidOperation) }
func IsHTTPClient(err error) bool       { return errors.Is(err, ErrHTTPClient) }
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }
func IsDatabase(err error) bool         { return errors.Is(err, ErrDatabase) }

// HTTPStatusFromErr maps an error to the HTTP status the API layer
// should respond with.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsInvalidOperation(err):
		return http.StatusConflict
	case IsPermissionDenied(err):
		return http.StatusForbidden
	case IsHTTPClient(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
