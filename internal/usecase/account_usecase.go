// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"accountd/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required for an account holder to log in.
type LoginInput struct {
	Username string
	Password string
}

// AccountUsecase defines the interface for account credential operations.
// This is the contract that the delivery layer (e.g., the CLI) will depend on.
type AccountUsecase interface {
	// Register creates a new account with a salted password hash and
	// returns its stored representation.
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)
	// Login checks the supplied credentials and records the login time on
	// success.
	Login(ctx context.Context, input *LoginInput) (*entity.Account, error)
	// HasLoggedInSince reports whether the account's most recent login
	// happened at or after the given instant.
	HasLoggedInSince(ctx context.Context, username string, since time.Time) (bool, error)
	// DeleteAccount permanently removes the account.
	DeleteAccount(ctx context.Context, username string) error
}
