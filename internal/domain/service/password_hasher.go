// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for salted password hashing and
// verification. The concrete algorithm is a pluggable primitive; it must be
// slow, salted, and render its parameters into the encoded output so a hash
// can be verified against credentials stored with different cost settings.
type PasswordHasher interface {
	// GenerateSalt returns a fresh random salt, encoded for storage
	// alongside the account.
	GenerateSalt() (string, error)

	// Hash derives the encoded hash of password using the given salt.
	Hash(password, salt string) (string, error)

	// Verify reports whether password and the stored salt reproduce the
	// stored encoded hash. Cost parameters are taken from the encoded hash
	// itself, so hashes created under older settings still verify.
	Verify(password, salt string, encoded []byte) bool
}
