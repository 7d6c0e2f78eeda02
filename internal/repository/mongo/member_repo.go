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

const memberCollectionName = "members"

// mongoMemberRepository implements repository.MemberRepository using MongoDB.
// Reference resolution ("populate") is an explicit, flag-controlled join: the
// repository batch-fetches the referenced trainers/plans/types and attaches
// them to the returned members.
type mongoMemberRepository struct {
	members  *mongo.Collection
	trainers *mongo.Collection
	plans    *mongo.Collection
	types    *mongo.Collection
}

// NewMongoMemberRepository creates a new member repository backed by db.
func NewMongoMemberRepository(db *mongo.Database) repository.MemberRepository {
	return &mongoMemberRepository{
		members:  db.Collection(memberCollectionName),
		trainers: db.Collection(trainerCollectionName),
		plans:    db.Collection(planCollectionName),
		types:    db.Collection(typeCollectionName),
	}
}

func (r *mongoMemberRepository) FindAll(ctx context.Context, populate bool) ([]domain.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "family_name", Value: 1}})
	cursor, err := r.members.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	if populate {
		if err = r.populate(ctx, members); err != nil {
			return nil, err
		}
	}
	return members, nil
}

func (r *mongoMemberRepository) FindByID(ctx context.Context, id primitive.ObjectID, populate bool) (*domain.Member, error) {
	var member domain.Member
	err := r.members.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if populate {
		one := []domain.Member{member}
		if err = r.populate(ctx, one); err != nil {
			return nil, err
		}
		member = one[0]
	}
	return &member, nil
}

func (r *mongoMemberRepository) FindByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Member, error) {
	return r.findFiltered(ctx, bson.M{"trainer": trainerID})
}

func (r *mongoMemberRepository) FindByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Member, error) {
	return r.findFiltered(ctx, bson.M{"plan": planID})
}

func (r *mongoMemberRepository) FindByTypeID(ctx context.Context, typeID primitive.ObjectID) ([]domain.Member, error) {
	return r.findFiltered(ctx, bson.M{"type": typeID})
}

func (r *mongoMemberRepository) findFiltered(ctx context.Context, filter bson.M) ([]domain.Member, error) {
	cursor, err := r.members.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *mongoMemberRepository) Count(ctx context.Context) (int64, error) {
	return r.members.CountDocuments(ctx, bson.M{})
}

func (r *mongoMemberRepository) Insert(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	member.ID = primitive.NewObjectID()
	result, err := r.members.InsertOne(ctx, member)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoMemberRepository) ReplaceByID(ctx context.Context, id primitive.ObjectID, member *domain.Member) error {
	member.ID = id // identity is carried explicitly, never regenerated
	result, err := r.members.ReplaceOne(ctx, bson.M{"_id": id}, member)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoMemberRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.members.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// populate resolves the trainer/plan/type references of the given members
// into embedded records with three batched $in lookups.
func (r *mongoMemberRepository) populate(ctx context.Context, members []domain.Member) error {
	if len(members) == 0 {
		return nil
	}

	trainerIDs := make([]primitive.ObjectID, 0, len(members))
	planIDs := make([]primitive.ObjectID, 0, len(members))
	typeIDs := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		if m.TrainerID != primitive.NilObjectID {
			trainerIDs = append(trainerIDs, m.TrainerID)
		}
		if m.PlanID != nil {
			planIDs = append(planIDs, *m.PlanID)
		}
		if m.TypeID != nil {
			typeIDs = append(typeIDs, *m.TypeID)
		}
	}

	trainers := make(map[primitive.ObjectID]*domain.Trainer)
	if len(trainerIDs) > 0 {
		cursor, err := r.trainers.Find(ctx, bson.M{"_id": bson.M{"$in": trainerIDs}})
		if err != nil {
			return err
		}
		var found []domain.Trainer
		if err = cursor.All(ctx, &found); err != nil {
			return err
		}
		for i := range found {
			trainers[found[i].ID] = &found[i]
		}
	}

	plans := make(map[primitive.ObjectID]*domain.Plan)
	if len(planIDs) > 0 {
		cursor, err := r.plans.Find(ctx, bson.M{"_id": bson.M{"$in": planIDs}})
		if err != nil {
			return err
		}
		var found []domain.Plan
		if err = cursor.All(ctx, &found); err != nil {
			return err
		}
		for i := range found {
			plans[found[i].ID] = &found[i]
		}
	}

	types := make(map[primitive.ObjectID]*domain.MembershipType)
	if len(typeIDs) > 0 {
		cursor, err := r.types.Find(ctx, bson.M{"_id": bson.M{"$in": typeIDs}})
		if err != nil {
			return err
		}
		var found []domain.MembershipType
		if err = cursor.All(ctx, &found); err != nil {
			return err
		}
		for i := range found {
			types[found[i].ID] = &found[i]
		}
	}

	for i := range members {
		members[i].TrainerRef = trainers[members[i].TrainerID]
		if members[i].PlanID != nil {
			members[i].PlanRef = plans[*members[i].PlanID]
		}
		if members[i].TypeID != nil {
			members[i].TypeRef = types[*members[i].TypeID]
		}
	}
	return nil
}

// EnsureMemberIndexes creates the indexes for the members collection.
// Call once during application startup.
func EnsureMemberIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "trainer", Value: 1}}, Options: options.Index()},
		{Keys: bson.D{{Key: "plan", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetSparse(true)},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
