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
	ErrTypeNotFound = errors.New("type not found")
)

// TypeService owns membership type CRUD rules: create-time de-duplication by
// name and the guard against deleting a type members still carry.
type TypeService interface {
	List(ctx context.Context) ([]domain.MembershipType, error)
	Detail(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, []domain.Member, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error)
	// CreateOrExisting inserts the type unless one with the same name
	// already exists, in which case the existing record is returned with
	// existed = true and nothing is inserted.
	CreateOrExisting(ctx context.Context, t *domain.MembershipType) (*domain.MembershipType, bool, error)
	Update(ctx context.Context, id primitive.ObjectID, t *domain.MembershipType) error
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, []domain.Member, error)
}

type typeService struct {
	typeRepo   repository.TypeRepository
	memberRepo repository.MemberRepository
}

// NewTypeService creates a new membership type service.
func NewTypeService(typeRepo repository.TypeRepository, memberRepo repository.MemberRepository) TypeService {
	return &typeService{typeRepo: typeRepo, memberRepo: memberRepo}
}

func (s *typeService) List(ctx context.Context) ([]domain.MembershipType, error) {
	return s.typeRepo.FindAll(ctx)
}

// Detail fetches the type and the members carrying it, concurrently.
func (s *typeService) Detail(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, []domain.Member, error) {
	var (
		t       *domain.MembershipType
		members []domain.Member
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t, err = s.typeRepo.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		members, err = s.memberRepo.FindByTypeID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrTypeNotFound
		}
		return nil, nil, err
	}
	return t, members, nil
}

func (s *typeService) Get(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error) {
	t, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *typeService) CreateOrExisting(ctx context.Context, t *domain.MembershipType) (*domain.MembershipType, bool, error) {
	existing, err := s.typeRepo.FindByName(ctx, t.Name)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	if _, err := s.typeRepo.Insert(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost the race against a concurrent create of the same name;
			// the unique index closed it. Resolve to the winner.
			existing, findErr := s.typeRepo.FindByName(ctx, t.Name)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, true, nil
		}
		return nil, false, err
	}
	return t, false, nil
}

func (s *typeService) Update(ctx context.Context, id primitive.ObjectID, t *domain.MembershipType) error {
	err := s.typeRepo.ReplaceByID(ctx, id, t)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTypeNotFound
	}
	return err
}

// Delete re-checks the type's members at submit time before removing the
// record.
func (s *typeService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, []domain.Member, error) {
	t, members, err := s.Detail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(members) > 0 {
		return t, members, nil
	}
	if err := s.typeRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}
	return t, nil, nil
}
