package ports

import (
	"context"

	"github.com/99minutos/members-auth/internal/core/domain"
)

// AuditSink accepts audit events without blocking the caller.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
