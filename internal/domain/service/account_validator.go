package service

// AccountValidator checks registration input against the account field
// rules: username size 3-10 and a well-formed email address. Implementations
// report all violated rules at once as a domain errors.Violations value.
type AccountValidator interface {
	ValidateRegistration(username, email string) error
}
