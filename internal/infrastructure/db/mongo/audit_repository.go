package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/members-auth/internal/core/domain"
)

const collectionAuthEvents = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionAuthEvents)}
}

// InsertEvent appends an event to the auth_events collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"kind":        string(event.Kind),
		"success":     event.Success,
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Email != "" {
		doc["email"] = event.Email
	}
	if event.Username != "" {
		doc["username"] = event.Username
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return &domain.StoreError{Op: "insert auth event", Err: err}
	}
	return nil
}
