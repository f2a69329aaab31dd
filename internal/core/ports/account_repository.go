package ports

import (
	"context"

	"github.com/99minutos/members-auth/internal/core/domain"
)

// AccountRepository is the gateway to account persistence.
//
// Email uniqueness is not enforced here: FindByEmail may return several
// accounts and callers must treat anything other than exactly one as a
// failed lookup.
type AccountRepository interface {
	Insert(ctx context.Context, account *domain.Account) error
	// FindByEmail returns only the fields needed to verify a login.
	FindByEmail(ctx context.Context, email string) ([]domain.Account, error)
}
