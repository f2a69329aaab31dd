package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/members-auth/internal/core/domain"
	"github.com/99minutos/members-auth/internal/core/ports"
)

// SessionTTL is fixed from creation; sessions are never extended on activity.
const SessionTTL = time.Hour

const tokenBytes = 32

// SessionManager implements ports.SessionManager on top of a SessionStore.
type SessionManager struct {
	store    ports.SessionStore
	log      zerolog.Logger
	now      func() time.Time
	newToken func() (string, error)
}

func NewSessionManager(store ports.SessionStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:    store,
		log:      log,
		now:      time.Now,
		newToken: newSessionToken,
	}
}

// Create starts an authenticated session for username.
func (m *SessionManager) Create(ctx context.Context, username string) (*domain.Session, error) {
	if username == "" {
		return nil, domain.ErrEmptyIdentity
	}

	token, err := m.newToken()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	sess := &domain.Session{
		Token:         token,
		Username:      username,
		Authenticated: true,
		ExpiresAt:     m.now().Add(SessionTTL).UTC(),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	m.log.Debug().Str("username", username).Time("expires_at", sess.ExpiresAt).Msg("session created")
	return sess, nil
}

// Read resolves token. Missing, unknown and expired tokens all yield (nil, nil).
func (m *SessionManager) Read(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := m.store.Find(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	// The store's own expiry is passive and may lag.
	if sess.Expired(m.now()) {
		return nil, nil
	}
	return sess, nil
}

// Destroy ends the session behind token. Unknown and empty tokens are not errors.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	m.log.Debug().Msg("session destroyed")
	return nil
}

func newSessionToken() (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
