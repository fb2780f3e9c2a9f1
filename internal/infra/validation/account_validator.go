// Package validation implements the account field rules on top of
// go-playground/validator.
package validation

import (
	domainerrors "accountd/internal/domain/errors"
	"accountd/internal/domain/service"
	"accountd/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Rule messages reported per violated field.
const (
	usernameSizeMsg    = "size must be between 3 and 10"
	wellFormedEmailMsg = "must be a well-formed email address"
)

// registrationInput carries the validated registration fields and their rules.
type registrationInput struct {
	Username string `validate:"required,min=3,max=10"`
	Email    string `validate:"required,email"`
}

type accountValidator struct {
	validate *validator.Validate
}

// NewAccountValidator is the constructor for accountValidator.
func NewAccountValidator() service.AccountValidator {
	return &accountValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateRegistration checks username and email against the account field
// rules. All violated rules are reported together as a single Violations
// value so the caller sees every failure at once.
func (v *accountValidator) ValidateRegistration(username, email string) error {
	err := v.validate.Struct(registrationInput{Username: username, Email: email})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate registration input")
	}

	violations := make(domainerrors.Violations, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		switch fieldErr.Field() {
		case "Username":
			violations = append(violations, usernameSizeMsg)
		case "Email":
			violations = append(violations, wellFormedEmailMsg)
		}
	}

	return violations
}
