package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/members-auth/internal/core/domain"
)

const collectionSessions = "sessions"

// SessionStore implements ports.SessionStore on a collection with a TTL
// index on expires_at.
type SessionStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{coll: db.Collection(collectionSessions), now: time.Now}
}

type mongoSession struct {
	Token         string    `bson:"_id"`
	Username      string    `bson:"username"`
	Authenticated bool      `bson:"authenticated"`
	ExpiresAt     time.Time `bson:"expires_at"`
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	doc := mongoSession{
		Token:         sess.Token,
		Username:      sess.Username,
		Authenticated: sess.Authenticated,
		ExpiresAt:     sess.ExpiresAt.UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return &domain.StoreError{Op: "save session", Err: err}
	}
	return nil
}

// Find filters on expires_at as well, since the TTL monitor only runs about
// once a minute.
func (s *SessionStore) Find(ctx context.Context, token string) (*domain.Session, error) {
	now := s.now().UTC()
	filter := bson.M{"_id": token, "expires_at": bson.M{"$gt": now}}

	var doc mongoSession
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, &domain.StoreError{Op: "find session", Err: err}
	}

	sess := &domain.Session{
		Token:         doc.Token,
		Username:      doc.Username,
		Authenticated: doc.Authenticated,
		ExpiresAt:     doc.ExpiresAt,
	}
	if sess.Expired(now) {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return &domain.StoreError{Op: "delete session", Err: err}
	}
	return nil
}

// EnsureIndexes installs the TTL index that removes sessions once expires_at passes.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
