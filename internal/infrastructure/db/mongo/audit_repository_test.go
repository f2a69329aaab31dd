package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/99minutos/members-auth/internal/core/domain"
)

func TestAuditRepository_InsertEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewAuditRepository(mt.DB)

		err := repo.InsertEvent(context.Background(), &domain.AuthEvent{
			Kind:       domain.EventLogin,
			Email:      "erin@example.com",
			Success:    false,
			Reason:     "bad_password",
			OccurredAt: time.Now(),
		})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		require.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "down"}))
		repo := NewAuditRepository(mt.DB)

		err := repo.InsertEvent(context.Background(), &domain.AuthEvent{Kind: domain.EventSignup, OccurredAt: time.Now()})
		require.Error(mt, err)
	})
}
