package mongo

import (
	"context"
	"errors"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const typeCollectionName = "types"

// mongoTypeRepository implements repository.TypeRepository using MongoDB.
type mongoTypeRepository struct {
	collection *mongo.Collection
}

// NewMongoTypeRepository creates a new membership type repository backed by db.
func NewMongoTypeRepository(db *mongo.Database) repository.TypeRepository {
	return &mongoTypeRepository{collection: db.Collection(typeCollectionName)}
}

// FindAll returns all membership types sorted by name, ascending.
func (r *mongoTypeRepository) FindAll(ctx context.Context) ([]domain.MembershipType, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var types []domain.MembershipType
	if err = cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *mongoTypeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error) {
	var t domain.MembershipType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByName returns the type with the exact (case-sensitive) name.
func (r *mongoTypeRepository) FindByName(ctx context.Context, name string) (*domain.MembershipType, error) {
	var t domain.MembershipType
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *mongoTypeRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoTypeRepository) Insert(ctx context.Context, t *domain.MembershipType) (primitive.ObjectID, error) {
	t.ID = primitive.NewObjectID()
	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoTypeRepository) ReplaceByID(ctx context.Context, id primitive.ObjectID, t *domain.MembershipType) error {
	t.ID = id
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, t)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoTypeRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTypeIndexes creates the indexes for the types collection.
// The unique name index backs the create-time de-duplication check.
func EnsureTypeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
