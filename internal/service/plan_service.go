package service

import (
	"context"
	"errors"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound = errors.New("plan not found")
)

// PlanService owns plan CRUD rules, including the guard against deleting a
// plan that members are still on.
type PlanService interface {
	List(ctx context.Context) ([]domain.Plan, error)
	Detail(ctx context.Context, id primitive.ObjectID) (*domain.Plan, []domain.Member, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, plan *domain.Plan) error
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Plan, []domain.Member, error)
}

type planService struct {
	planRepo   repository.PlanRepository
	memberRepo repository.MemberRepository
}

// NewPlanService creates a new plan service.
func NewPlanService(planRepo repository.PlanRepository, memberRepo repository.MemberRepository) PlanService {
	return &planService{planRepo: planRepo, memberRepo: memberRepo}
}

func (s *planService) List(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.FindAll(ctx)
}

// Detail fetches the plan and the members on it, concurrently.
func (s *planService) Detail(ctx context.Context, id primitive.ObjectID) (*domain.Plan, []domain.Member, error) {
	var (
		plan    *domain.Plan
		members []domain.Member
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		plan, err = s.planRepo.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		members, err = s.memberRepo.FindByPlanID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}
	return plan, members, nil
}

func (s *planService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.Status == "" {
		plan.Status = domain.PlanActive
	}
	return s.planRepo.Insert(ctx, plan)
}

func (s *planService) Update(ctx context.Context, id primitive.ObjectID, plan *domain.Plan) error {
	err := s.planRepo.ReplaceByID(ctx, id, plan)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// Delete re-checks the plan's members at submit time before removing the
// record.
func (s *planService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Plan, []domain.Member, error) {
	plan, members, err := s.Detail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(members) > 0 {
		return plan, members, nil
	}
	if err := s.planRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}
	return plan, nil, nil
}
