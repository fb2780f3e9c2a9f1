// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accountd/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when no account matches the lookup key.
var ErrAccountNotFound = errors.New("account not found")

// ErrUsernameTaken is returned by Save when the username uniqueness
// constraint is violated. Stores must enforce the constraint themselves,
// independent of any service-level existence check, so that two racing
// registrations can never both persist.
var ErrUsernameTaken = errors.New("username already taken")

// AccountRepository is the persistence port the account service depends on.
// It holds all durable state and applies no business rules of its own.
type AccountRepository interface {
	// Save inserts the account when its ID is the zero UUID, otherwise
	// updates it in place. It returns the stored representation, including
	// any assigned ID, and the write is visible to subsequent reads before
	// Save returns.
	Save(ctx context.Context, account *entity.Account) (*entity.Account, error)

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUsername retrieves a single account by its username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Delete removes the account's durable record.
	Delete(ctx context.Context, account *entity.Account) error
}
