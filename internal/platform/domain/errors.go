package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError so transports can map it to a status code.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindForbidden    ErrorKind = "forbidden"
	KindUnauthorized ErrorKind = "unauthorized"
	KindInvalidState ErrorKind = "invalid_state"
	KindUpstream     ErrorKind = "upstream"
)

// DomainError is an error carrying a kind and a user-facing message.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *DomainError) Unwrap() error { return e.Err }

// NewValidationError returns a validation error with the given message.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewRuleViolation returns a validation error wrapping a sentinel rule error,
// so callers can match it with errors.Is.
func NewRuleViolation(rule error, detail string) *DomainError {
	msg := rule.Error()
	if detail != "" {
		msg = msg + ": " + detail
	}
	return &DomainError{Kind: KindValidation, Message: msg, Err: rule}
}

// NewNotFoundError returns a not-found error for the given entity and id.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s introuvable: %s", entity, id)}
}

// NewConflictError returns a conflict error.
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// NewForbiddenError returns a forbidden error.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

// NewUnauthorizedError returns an unauthorized error.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

// NewInvalidStateError reports a disallowed state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: fmt.Sprintf("transition impossible de %s vers %s", from, to)}
}

// NewUpstreamError wraps a failure of a downstream dependency.
func NewUpstreamError(message string, err error) *DomainError {
	return &DomainError{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf returns the kind of the first DomainError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
