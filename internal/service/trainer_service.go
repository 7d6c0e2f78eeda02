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
	ErrTrainerNotFound = errors.New("trainer not found")
)

// TrainerService owns trainer CRUD rules, including the guard against
// deleting a trainer who still has members.
type TrainerService interface {
	List(ctx context.Context) ([]domain.Trainer, error)
	Detail(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, []domain.Member, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, trainer *domain.Trainer) error
	// Delete removes the trainer unless members still reference it; the
	// blocking members are returned instead of an error.
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, []domain.Member, error)
}

type trainerService struct {
	trainerRepo repository.TrainerRepository
	memberRepo  repository.MemberRepository
}

// NewTrainerService creates a new trainer service.
func NewTrainerService(trainerRepo repository.TrainerRepository, memberRepo repository.MemberRepository) TrainerService {
	return &trainerService{trainerRepo: trainerRepo, memberRepo: memberRepo}
}

func (s *trainerService) List(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.FindAll(ctx)
}

// Detail fetches the trainer and the members they train, concurrently.
func (s *trainerService) Detail(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, []domain.Member, error) {
	var (
		trainer *domain.Trainer
		members []domain.Member
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		trainer, err = s.trainerRepo.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		members, err = s.memberRepo.FindByTrainerID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrTrainerNotFound
		}
		return nil, nil, err
	}
	return trainer, members, nil
}

func (s *trainerService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

func (s *trainerService) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	return s.trainerRepo.Insert(ctx, trainer)
}

func (s *trainerService) Update(ctx context.Context, id primitive.ObjectID, trainer *domain.Trainer) error {
	err := s.trainerRepo.ReplaceByID(ctx, id, trainer)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTrainerNotFound
	}
	return err
}

// Delete re-checks the trainer's members at submit time before removing the
// record.
func (s *trainerService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, []domain.Member, error) {
	trainer, members, err := s.Detail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(members) > 0 {
		return trainer, members, nil
	}
	if err := s.trainerRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}
	return trainer, nil, nil
}
