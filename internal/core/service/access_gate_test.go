package service

import (
	"testing"
	"time"

	"github.com/99minutos/members-auth/internal/core/domain"
)

func TestAccessGate_Require(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	gate := &AccessGate{now: func() time.Time { return now }}

	valid := &domain.Session{Token: "t", Username: "alice", Authenticated: true, ExpiresAt: now.Add(time.Minute)}
	id, err := gate.Require(valid)
	if err != nil {
		t.Fatalf("expected access, got %v", err)
	}
	if id.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", id)
	}

	denied := map[string]*domain.Session{
		"nil session":       nil,
		"not authenticated": {Token: "t", Username: "alice", ExpiresAt: now.Add(time.Minute)},
		"empty username":    {Token: "t", Authenticated: true, ExpiresAt: now.Add(time.Minute)},
		"expired":           {Token: "t", Username: "alice", Authenticated: true, ExpiresAt: now.Add(-time.Second)},
		"expires now":       {Token: "t", Username: "alice", Authenticated: true, ExpiresAt: now},
	}
	for name, sess := range denied {
		t.Run(name, func(t *testing.T) {
			id, err := gate.Require(sess)
			if err != domain.ErrUnauthorized {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
			if id != (domain.Identity{}) {
				t.Fatalf("expected zero identity, got %+v", id)
			}
		})
	}
}
