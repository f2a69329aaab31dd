package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/99minutos/members-auth/internal/core/domain"
)

func sessionDoc(token, username string, expiresAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: token},
		{Key: "username", Value: username},
		{Key: "authenticated", Value: true},
		{Key: "expires_at", Value: expiresAt},
	}
}

func TestSessionStore_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewSessionStore(mt.DB)

		err := store.Save(context.Background(), &domain.Session{
			Token: "tok", Username: "alice", Authenticated: true, ExpiresAt: time.Now().Add(time.Hour),
		})
		require.NoError(mt, err)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "down"}))
		store := NewSessionStore(mt.DB)

		err := store.Save(context.Background(), &domain.Session{Token: "tok", Username: "alice", Authenticated: true})
		var se *domain.StoreError
		require.True(mt, errors.As(err, &se))
	})
}

func TestSessionStore_Find(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "members.sessions"

	mt.Run("live session", func(mt *mtest.T) {
		expires := time.Now().Add(30 * time.Minute).UTC()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, sessionDoc("tok", "bob", expires)))
		store := NewSessionStore(mt.DB)

		sess, err := store.Find(context.Background(), "tok")
		require.NoError(mt, err)
		require.Equal(mt, "tok", sess.Token)
		require.Equal(mt, "bob", sess.Username)
		require.True(mt, sess.Authenticated)
		require.WithinDuration(mt, expires, sess.ExpiresAt, time.Millisecond)
	})

	mt.Run("unknown token", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		store := NewSessionStore(mt.DB)

		_, err := store.Find(context.Background(), "missing")
		require.ErrorIs(mt, err, domain.ErrSessionNotFound)
	})

	mt.Run("stale document not yet reaped", func(mt *mtest.T) {
		expires := time.Now().Add(time.Minute)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, sessionDoc("tok", "carol", expires)))
		store := NewSessionStore(mt.DB)
		store.now = func() time.Time { return expires.Add(time.Second) }

		_, err := store.Find(context.Background(), "tok")
		require.ErrorIs(mt, err, domain.ErrSessionNotFound)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"}))
		store := NewSessionStore(mt.DB)

		_, err := store.Find(context.Background(), "tok")
		require.NotErrorIs(mt, err, domain.ErrSessionNotFound)
		var se *domain.StoreError
		require.True(mt, errors.As(err, &se))
	})
}

func TestSessionStore_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing token is not an error", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		store := NewSessionStore(mt.DB)

		require.NoError(mt, store.Delete(context.Background(), "tok"))
		require.NoError(mt, store.Delete(context.Background(), "tok"))
	})
}
