package errors

import (
	"accountd/internal/errors"
)

// BuildFunc constructs a normalized error for a matched internal failure.
// The subject is the username the failed operation referred to; the cause is
// the original internal error.
type BuildFunc func(subject string, cause error) *Error

type rule struct {
	sentinel error
	build    BuildFunc
}

// Translator rewrites internal failures into normalized errors at the
// service boundary. The mapping is built explicitly at process start and
// injected into the service; there is no runtime discovery step.
type Translator struct {
	rules []rule
}

// NewTranslator creates an empty translator.
func NewTranslator() *Translator {
	return &Translator{}
}

// Register binds an internal sentinel error to a normalized-error
// constructor. It returns the translator for chaining.
func (t *Translator) Register(sentinel error, build BuildFunc) *Translator {
	t.rules = append(t.rules, rule{sentinel: sentinel, build: build})

	return t
}

// Translate maps err to its normalized form.
//
// An error that already carries a normalized Error is surfaced as that
// Error, dropping any wrapping context so the caller sees the clean
// message. Violations aggregate into a single ValidationFailed error.
// Registered sentinels map through their constructors. Anything else is
// returned unchanged: an unregistered failure stays visible rather than
// being silently swallowed.
func (t *Translator) Translate(subject string, err error) error {
	if err == nil {
		return nil
	}

	var norm *Error
	if errors.As(err, &norm) {
		return norm
	}

	var violations Violations
	if errors.As(err, &violations) {
		return ValidationFailed(violations)
	}

	for _, r := range t.rules {
		if errors.Is(err, r.sentinel) {
			return r.build(subject, err)
		}
	}

	return err
}
