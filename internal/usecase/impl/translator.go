package impl

import (
	domainerrors "accountd/internal/domain/errors"
	"accountd/internal/domain/repository"
)

// NewAccountTranslator builds the translator that normalizes persistence
// sentinels into the account error taxonomy. Errors without a registered
// rule pass through unchanged.
func NewAccountTranslator() *domainerrors.Translator {
	return domainerrors.NewTranslator().
		Register(repository.ErrAccountNotFound, func(subject string, _ error) *domainerrors.Error {
			return domainerrors.NotRegistered(subject)
		}).
		Register(repository.ErrUsernameTaken, func(subject string, _ error) *domainerrors.Error {
			return domainerrors.AlreadyRegistered(subject)
		})
}
