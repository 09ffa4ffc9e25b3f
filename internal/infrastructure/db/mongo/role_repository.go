package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/examplews/greeting-service/internal/core/domain"
)

const roleCollection = "roles"

// RoleRepository implements ports.RoleRepository.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRole struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Code        string             `bson:"code"`
	Label       string             `bson:"label"`
	Ordinal     int                `bson:"ordinal"`
	EffectiveAt time.Time          `bson:"effective_at"`
	ExpiresAt   *time.Time         `bson:"expires_at"`
}

func (m mongoRole) toDomain() domain.Role {
	r := domain.Role{
		ID:          m.ID.Hex(),
		Code:        m.Code,
		Label:       m.Label,
		Ordinal:     m.Ordinal,
		EffectiveAt: m.EffectiveAt.UTC(),
	}
	if m.ExpiresAt != nil {
		exp := m.ExpiresAt.UTC()
		r.ExpiresAt = &exp
	}
	return r
}

// effectiveFilter matches roles with effective_at <= now and expires_at
// either unset or strictly after now.
func effectiveFilter(now time.Time) bson.M {
	now = now.UTC()
	return bson.M{
		"effective_at": bson.M{"$lte": now},
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": now}},
		},
	}
}

func (r *RoleRepository) FindEffective(ctx context.Context, now time.Time) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "ordinal", Value: 1}})
	cur, err := r.coll.Find(ctx, effectiveFilter(now), opts)
	if err != nil {
		return nil, fmt.Errorf("find effective roles: %w", err)
	}

	var docs []mongoRole
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	roles := make([]domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, d.toDomain())
	}
	return roles, nil
}

func (r *RoleRepository) FindEffectiveByCode(ctx context.Context, code string, now time.Time) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := effectiveFilter(now)
	filter["code"] = code

	var doc mongoRole
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	role := doc.toDomain()
	return &role, nil
}

// Upsert writes role keyed by its code and returns the stored document.
func (r *RoleRepository) Upsert(ctx context.Context, role domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"label":        role.Label,
		"ordinal":      role.Ordinal,
		"effective_at": role.EffectiveAt.UTC(),
		"expires_at":   role.ExpiresAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc mongoRole
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"code": role.Code}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("upsert role %s: %w", role.Code, err)
	}
	saved := doc.toDomain()
	return &saved, nil
}

// EnsureIndexes makes role codes unique.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: uniqueIndex(),
	})
	return err
}
