// Package errors defines the single normalized failure type the account
// service reports at its boundary, and the translation rules that rewrite
// internal failures into it.
package errors

import (
	"fmt"
	"strings"

	"accountd/internal/errors"
)

// Kind classifies a normalized service failure.
type Kind string

// The externally visible failure kinds. Every failure the service reports
// carries exactly one of these.
const (
	KindEmptyInput         Kind = "EMPTY_INPUT"
	KindNotRegistered      Kind = "NOT_REGISTERED"
	KindAlreadyRegistered  Kind = "ALREADY_REGISTERED"
	KindValidationFailed   Kind = "VALIDATION_FAILED"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
)

// Message templates for the normalized failures.
const (
	emptyParametersMsg   = "Service is not accepting an empty parameters."
	notRegisteredMsg     = "Account with name %s is not registered within system."
	alreadyRegisteredMsg = "Account with name %s is already registered."
	wrongPasswordMsg     = "Wrong password."
)

// Error is the normalized failure type. It is the only error type the
// account service lets cross its boundary for expected failures.
type Error struct {
	kind    Kind
	message string
}

// New creates a normalized error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Error implements the error interface. The text is the human-readable
// message alone, so callers comparing messages see no wrapping noise.
func (e *Error) Error() string {
	return e.message
}

// Kind returns the failure kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the human-readable error message.
func (e *Error) Message() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *Error) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// IsKind reports whether err carries a normalized error of the given kind
// anywhere in its tree.
func IsKind(err error, kind Kind) bool {
	var norm *Error
	if !errors.As(err, &norm) {
		return false
	}

	return norm.kind == kind
}

// EmptyInput reports that one or more required arguments were missing.
func EmptyInput() *Error {
	return New(KindEmptyInput, emptyParametersMsg)
}

// NotRegistered reports that no account exists for the given username.
func NotRegistered(username string) *Error {
	return New(KindNotRegistered, fmt.Sprintf(notRegisteredMsg, username))
}

// AlreadyRegistered reports a registration attempt for a taken username.
func AlreadyRegistered(username string) *Error {
	return New(KindAlreadyRegistered, fmt.Sprintf(alreadyRegisteredMsg, username))
}

// WrongPassword reports a password that does not match the stored hash.
func WrongPassword() *Error {
	return New(KindInvalidCredentials, wrongPasswordMsg)
}

// ValidationFailed reports one or more violated field rules. The message
// aggregates all violations, joined with ":" and bracketed.
func ValidationFailed(violations Violations) *Error {
	return New(KindValidationFailed, violations.Error())
}

// Violations aggregates field-rule failures raised while validating input.
// It is an internal error type; the translator rewrites it into a
// ValidationFailed error before it reaches the caller.
type Violations []string

// Error renders all violation messages joined with ":" inside brackets,
// e.g. "[must be a well-formed email address]".
func (v Violations) Error() string {
	return "[" + strings.Join(v, ":") + "]"
}
