package resolver

import (
	"errors"
	"fmt"
)

// Sentinel errors for resolution failures. They can be tested with
// errors.Is() regardless of how many layers wrapped them.
var (
	// ErrVersionMismatch indicates an identifier whose ARK URL version
	// differs from the version this deployment serves.
	ErrVersionMismatch = errors.New("ark url version mismatch")

	// ErrVersion0NotAllowed indicates a legacy identifier for a project
	// that does not accept version 0 identifiers.
	ErrVersion0NotAllowed = errors.New("version 0 ark id not allowed for this project")

	// ErrProjectNotFound indicates the project id is not present in the
	// project registry.
	ErrProjectNotFound = errors.New("project not configured")

	// ErrTemplateNotFound indicates a redirect template or setting is
	// missing for the project and absent from the registry defaults.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrProjectIDRequired indicates a project-scoped redirect was
	// requested for an identifier without a project id.
	ErrProjectIDRequired = errors.New("project id required")

	// ErrRedirectTemplateUndetermined indicates no redirect template
	// matches the identifier's level and timestamp combination.
	ErrRedirectTemplateUndetermined = errors.New("redirect template undetermined")
)

// Error kinds categorize resolution errors.
const (
	// KindValidation represents malformed or rejected identifiers.
	KindValidation = "validation"

	// KindNotFound represents missing projects or templates.
	KindNotFound = "not_found"

	// KindConfiguration represents broken registry entries.
	KindConfiguration = "configuration"

	// KindInternal represents internal resolution errors.
	KindInternal = "internal"
)

// Error is a structured error that wraps an underlying error with the
// operation that failed and the category of failure. It supports
// errors.Is() and errors.As() through Unwrap.
type Error struct {
	// Op is the operation that failed (e.g., "Engine.Parse").
	Op string

	// Kind categorizes the error (e.g., KindValidation).
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resolver: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("resolver: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches either another *Error with the same Kind (and Op, when the
// target specifies one) or any error in the wrapped chain.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindNotFound, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}
