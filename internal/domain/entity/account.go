// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents one registered identity together with its credentials
// and login history. The persistence layer assigns ID on first save; the
// username never changes after registration.
type Account struct {
	ID           uuid.UUID  // Unique identifier, zero until the account is first saved.
	Username     string     // Login name, unique across all accounts, 3-10 characters.
	Email        string     // Contact address, syntactically valid at registration time.
	PasswordHash []byte     // Encoded output of the password hash primitive, never the plaintext.
	Salt         string     // Per-account random value fed into the hash, generated once at registration.
	LastLogin    *time.Time // Nil until the first successful login, then the time of each successful login.
	CreatedAt    time.Time  // Timestamp of when this account was created.
	UpdatedAt    time.Time  // Timestamp of the last modification to this account.
}

// Registered reports whether the account carries complete credentials.
// An account is either fully registered or does not exist; there is no
// partial state.
func (a *Account) Registered() bool {
	return len(a.PasswordHash) > 0 && a.Salt != ""
}

// Clone returns a deep copy of the account. Stores hand out copies so
// callers cannot mutate durable state behind the repository's back.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.PasswordHash = append([]byte(nil), a.PasswordHash...)
	if a.LastLogin != nil {
		lastLogin := *a.LastLogin
		cloned.LastLogin = &lastLogin
	}

	return &cloned
}
