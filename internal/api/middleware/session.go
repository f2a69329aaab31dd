package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/members-auth/internal/core/domain"
)

// SessionReader resolves a session token; nil means anonymous.
type SessionReader interface {
	Read(ctx context.Context, token string) (*domain.Session, error)
}

// Gate is the access check applied to protected handlers.
type Gate interface {
	Require(sess *domain.Session) (domain.Identity, error)
}

// TokenSource extracts the session token carried by a request.
type TokenSource interface {
	Token(r *http.Request) string
}

// IdentityHandler serves a protected route for an authenticated caller.
type IdentityHandler func(c echo.Context, id domain.Identity) error

// VisitorHandler serves a public route; id is nil for anonymous callers.
type VisitorHandler func(c echo.Context, id *domain.Identity) error

// Sessions adapts session-aware handlers to echo.HandlerFunc. The resolved
// identity is passed as an argument rather than stored on the echo.Context.
type Sessions struct {
	reader SessionReader
	tokens TokenSource
	gate   Gate
	denied prometheus.Counter
}

// NewSessions wires the session adapter. denied may be nil.
func NewSessions(reader SessionReader, tokens TokenSource, gate Gate, denied prometheus.Counter) *Sessions {
	return &Sessions{reader: reader, tokens: tokens, gate: gate, denied: denied}
}

// Protect runs h only for authenticated callers and redirects everyone else
// to "/". Store failures propagate to the error handler.
func (s *Sessions) Protect(h IdentityHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok, err := s.identify(c)
		if err != nil {
			return err
		}
		if !ok {
			if s.denied != nil {
				s.denied.Inc()
			}
			return c.Redirect(http.StatusFound, "/")
		}
		return h(c, id)
	}
}

// Visitor runs h for every caller, passing the identity when there is one.
func (s *Sessions) Visitor(h VisitorHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok, err := s.identify(c)
		if err != nil {
			return err
		}
		if !ok {
			return h(c, nil)
		}
		return h(c, &id)
	}
}

func (s *Sessions) identify(c echo.Context) (domain.Identity, bool, error) {
	sess, err := s.reader.Read(c.Request().Context(), s.tokens.Token(c.Request()))
	if err != nil {
		return domain.Identity{}, false, err
	}
	id, err := s.gate.Require(sess)
	if err != nil {
		return domain.Identity{}, false, nil
	}
	return id, true, nil
}
