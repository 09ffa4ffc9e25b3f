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

const collectionGreetings = "greetings"

type GreetingRepository struct {
	col *mongo.Collection
}

func NewGreetingRepository(db *mongo.Database) *GreetingRepository {
	return &GreetingRepository{col: db.Collection(collectionGreetings)}
}

type mongoGreeting struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Text         string             `bson:"text"`
	domain.Audit `bson:",inline"`
}

func (m mongoGreeting) toDomain() *domain.Greeting {
	return &domain.Greeting{ID: m.ID.Hex(), Text: m.Text, Audit: m.Audit}
}

func (r *GreetingRepository) List(ctx context.Context) ([]*domain.Greeting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list greetings: %w", err)
	}
	var docs []mongoGreeting
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode greetings: %w", err)
	}

	out := make([]*domain.Greeting, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *GreetingRepository) FindByID(ctx context.Context, id string) (*domain.Greeting, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGreetingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoGreeting
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGreetingNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// Create inserts a new greeting document at version 0.
func (r *GreetingRepository) Create(ctx context.Context, g *domain.Greeting) (*domain.Greeting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoGreeting{Text: g.Text, Audit: g.Audit}
	doc.Version = 0

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert greeting: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// Update applies g only when the stored version still equals g.Version.
func (r *GreetingRepository) Update(ctx context.Context, g *domain.Greeting) (*domain.Greeting, error) {
	oid, err := primitive.ObjectIDFromHex(g.ID)
	if err != nil {
		return nil, domain.ErrGreetingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "version": g.Version}
	update := bson.M{
		"$set": bson.M{
			"text":       g.Text,
			"updated_by": g.UpdatedBy,
			"updated_at": g.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoGreeting
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update greeting: %w", err)
	}

	n, cerr := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if cerr != nil {
		return nil, fmt.Errorf("update greeting: %w", cerr)
	}
	if n == 0 {
		return nil, domain.ErrGreetingNotFound
	}
	return nil, domain.ErrVersionConflict
}

func (r *GreetingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGreetingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete greeting: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGreetingNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the greetings collection.
func (r *GreetingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference_id", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
