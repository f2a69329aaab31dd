package domain

// Account models a registered member. Accounts are created on signup and
// never mutated afterwards.
type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Identity is what a protected handler learns about its caller.
type Identity struct {
	Username string
}
