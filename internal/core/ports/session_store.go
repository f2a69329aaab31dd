package ports

import (
	"context"

	"github.com/99minutos/members-auth/internal/core/domain"
)

// SessionStore persists sessions keyed by token. Implementations must expire
// entries on their own once ExpiresAt passes.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	// Find returns domain.ErrSessionNotFound for unknown and expired tokens alike.
	Find(ctx context.Context, token string) (*domain.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
}

// SessionManager owns the session lifecycle.
type SessionManager interface {
	Create(ctx context.Context, username string) (*domain.Session, error)
	// Read returns a nil session, not an error, when the token is empty,
	// unknown or expired.
	Read(ctx context.Context, token string) (*domain.Session, error)
	Destroy(ctx context.Context, token string) error
}
