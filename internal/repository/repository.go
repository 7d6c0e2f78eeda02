package repository

import (
	"context"

	"localgym/gym-admin/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MemberRepository defines the interface for interacting with member records.
// The populate flag controls whether trainer/plan/type references are resolved
// into embedded records on the returned members.
type MemberRepository interface {
	FindAll(ctx context.Context, populate bool) ([]domain.Member, error)
	FindByID(ctx context.Context, id primitive.ObjectID, populate bool) (*domain.Member, error)
	FindByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Member, error)
	FindByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Member, error)
	FindByTypeID(ctx context.Context, typeID primitive.ObjectID) ([]domain.Member, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	ReplaceByID(ctx context.Context, id primitive.ObjectID, member *domain.Member) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// TrainerRepository defines the interface for interacting with trainer records.
type TrainerRepository interface {
	FindAll(ctx context.Context) ([]domain.Trainer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	ReplaceByID(ctx context.Context, id primitive.ObjectID, trainer *domain.Trainer) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// PlanRepository defines the interface for interacting with plan records.
type PlanRepository interface {
	FindAll(ctx context.Context) ([]domain.Plan, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	FindByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Plan, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	Insert(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	ReplaceByID(ctx context.Context, id primitive.ObjectID, plan *domain.Plan) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// TypeRepository defines the interface for interacting with membership types.
type TypeRepository interface {
	FindAll(ctx context.Context) ([]domain.MembershipType, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error)
	FindByName(ctx context.Context, name string) (*domain.MembershipType, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, t *domain.MembershipType) (primitive.ObjectID, error)
	ReplaceByID(ctx context.Context, id primitive.ObjectID, t *domain.MembershipType) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// AccountRepository defines the interface for interacting with staff accounts.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, account *domain.Account) (primitive.ObjectID, error)
}
