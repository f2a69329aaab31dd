package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/members-auth/internal/core/domain"
)

const collectionUsers = "users"

// AccountRepository implements ports.AccountRepository using MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(collectionUsers)}
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
}

// loginProjection limits lookups to what credential verification needs.
var loginProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "username", Value: 1},
	{Key: "email", Value: 1},
	{Key: "password", Value: 1},
}

// Insert stores a new account. Duplicate emails are accepted.
func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) error {
	doc := mongoAccount{
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return &domain.StoreError{Op: "insert account", Err: err}
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid.Hex()
	}
	return nil
}

// FindByEmail returns every account registered under email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) ([]domain.Account, error) {
	cur, err := r.coll.Find(ctx, bson.M{"email": email}, options.Find().SetProjection(loginProjection))
	if err != nil {
		return nil, &domain.StoreError{Op: "find accounts", Err: err}
	}

	var docs []mongoAccount
	if err := cur.All(ctx, &docs); err != nil {
		return nil, &domain.StoreError{Op: "decode accounts", Err: err}
	}

	accounts := make([]domain.Account, 0, len(docs))
	for _, d := range docs {
		accounts = append(accounts, domain.Account{
			ID:           d.ID.Hex(),
			Username:     d.Username,
			Email:        d.Email,
			PasswordHash: d.PasswordHash,
		})
	}
	return accounts, nil
}

// EnsureIndexes creates a non-unique email index. Uniqueness is deliberately
// left out so existing duplicate rows keep loading.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	return err
}
