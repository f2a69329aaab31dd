package service

import (
	"time"

	"github.com/99minutos/members-auth/internal/core/domain"
)

// AccessGate decides whether a session may reach a protected operation.
type AccessGate struct {
	now func() time.Time
}

func NewAccessGate() *AccessGate {
	return &AccessGate{now: time.Now}
}

// Require returns the caller's identity or domain.ErrUnauthorized. The error
// never says why the session was rejected.
func (g *AccessGate) Require(sess *domain.Session) (domain.Identity, error) {
	if sess == nil || !sess.Authenticated || sess.Username == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if sess.Expired(g.now()) {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return domain.Identity{Username: sess.Username}, nil
}
