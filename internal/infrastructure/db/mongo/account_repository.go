package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/examplews/greeting-service/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository implements ports.AccountRepository. Role assignments are
// stored as references into the roles collection.
type AccountRepository struct {
	coll  *mongo.Collection
	roles *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		coll:  db.Collection(accountCollection),
		roles: db.Collection(roleCollection),
	}
}

type mongoAccount struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty"`
	Username           string               `bson:"username"`
	PasswordHash       string               `bson:"password_hash"`
	Enabled            bool                 `bson:"enabled"`
	CredentialsExpired bool                 `bson:"credentials_expired"`
	Expired            bool                 `bson:"expired"`
	Locked             bool                 `bson:"locked"`
	RoleIDs            []primitive.ObjectID `bson:"role_ids"`
	CreatedAt          time.Time            `bson:"created_at"`
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roleIDs := make([]primitive.ObjectID, 0, len(account.Roles))
	for _, role := range account.Roles {
		oid, err := primitive.ObjectIDFromHex(role.ID)
		if err != nil {
			return nil, fmt.Errorf("insert account: role %q has invalid id: %w", role.Code, err)
		}
		roleIDs = append(roleIDs, oid)
	}

	doc := mongoAccount{
		Username:           account.Username,
		PasswordHash:       account.Password,
		Enabled:            account.Enabled,
		CredentialsExpired: account.CredentialsExpired,
		Expired:            account.Expired,
		Locked:             account.Locked,
		RoleIDs:            roleIDs,
		CreatedAt:          account.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByUsername loads the account and its assigned roles.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	roles := []domain.Role{}
	if len(ma.RoleIDs) > 0 {
		cur, err := r.roles.Find(ctx, bson.M{"_id": bson.M{"$in": ma.RoleIDs}})
		if err != nil {
			return nil, fmt.Errorf("find account roles: %w", err)
		}
		var docs []mongoRole
		if err := cur.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("decode account roles: %w", err)
		}
		for _, d := range docs {
			roles = append(roles, d.toDomain())
		}
	}

	return &domain.Account{
		ID:                 ma.ID.Hex(),
		Username:           ma.Username,
		Password:           ma.PasswordHash,
		Enabled:            ma.Enabled,
		CredentialsExpired: ma.CredentialsExpired,
		Expired:            ma.Expired,
		Locked:             ma.Locked,
		Roles:              roles,
		CreatedAt:          ma.CreatedAt,
	}, nil
}

// EnsureIndexes makes usernames unique.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: uniqueIndex(),
	})
	return err
}
