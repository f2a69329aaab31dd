package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/members-auth/internal/core/domain"
)

const keyPrefix = "sess:"

// SessionStore implements ports.SessionStore as one hash per session.
// Key format: sess:<token>, expiring at the session's ExpiresAt.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	if !sess.ExpiresAt.After(s.now()) {
		return fmt.Errorf("save session: expiry %s is in the past", sess.ExpiresAt.Format(time.RFC3339))
	}

	key := s.key(sess.Token)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"username", sess.Username,
		"authenticated", strconv.FormatBool(sess.Authenticated),
		"expires_at", strconv.FormatInt(sess.ExpiresAt.UnixMilli(), 10),
	)
	pipe.ExpireAt(ctx, key, sess.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return &domain.StoreError{Op: "save session", Err: err}
	}
	return nil
}

func (s *SessionStore) Find(ctx context.Context, token string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, &domain.StoreError{Op: "find session", Err: err}
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	ms, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, &domain.StoreError{Op: "decode session", Err: err}
	}
	authenticated, err := strconv.ParseBool(fields["authenticated"])
	if err != nil {
		return nil, &domain.StoreError{Op: "decode session", Err: err}
	}

	sess := &domain.Session{
		Token:         token,
		Username:      fields["username"],
		Authenticated: authenticated,
		ExpiresAt:     time.UnixMilli(ms).UTC(),
	}
	if sess.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes the session key. Deleting a missing key is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return &domain.StoreError{Op: "delete session", Err: err}
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return keyPrefix + token
}
