package ports

// PasswordHasher hashes passwords with a slow, salted one-way function.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// CredentialValidator checks raw form input. Errors are *domain.ValidationError.
type CredentialValidator interface {
	ValidateSignup(username, email, password string) error
	ValidateLoginEmail(email string) error
}
