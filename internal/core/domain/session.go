package domain

import "time"

// Session is the server-side state behind a session token. The client only
// ever holds Token.
type Session struct {
	Token         string
	Username      string
	Authenticated bool
	ExpiresAt     time.Time
}

// Expired reports whether the session is past its absolute expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
