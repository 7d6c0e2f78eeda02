package service

import (
	"context"
	"errors"
	"io"
	"time"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/repository"
	"localgym/gym-admin/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrMemberNotFound = errors.New("member not found")
)

// MemberFormData carries the reference lists a member form needs for its
// selection controls.
type MemberFormData struct {
	Trainers []domain.Trainer
	Plans    []domain.Plan
	Types    []domain.MembershipType
}

// MemberService owns member CRUD rules, including the dependent-plan guard
// on deletion and member photo handling.
type MemberService interface {
	List(ctx context.Context) ([]domain.Member, error)
	Detail(ctx context.Context, id primitive.ObjectID) (*domain.Member, []domain.Plan, error)
	FormData(ctx context.Context) (*MemberFormData, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
	Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, member *domain.Member) error
	// Delete removes the member unless plans still list it; blocking plans
	// are returned instead of an error (a refusal, not a failure).
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Member, []domain.Plan, error)

	UploadPhoto(ctx context.Context, contentType string, body io.Reader) (string, error)
	PhotoURL(ctx context.Context, key string) (string, error)
}

type memberService struct {
	memberRepo  repository.MemberRepository
	trainerRepo repository.TrainerRepository
	planRepo    repository.PlanRepository
	typeRepo    repository.TypeRepository
	photos      storage.PhotoStorage
}

// NewMemberService creates a new member service.
func NewMemberService(
	memberRepo repository.MemberRepository,
	trainerRepo repository.TrainerRepository,
	planRepo repository.PlanRepository,
	typeRepo repository.TypeRepository,
	photos storage.PhotoStorage,
) MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		trainerRepo: trainerRepo,
		planRepo:    planRepo,
		typeRepo:    typeRepo,
		photos:      photos,
	}
}

func (s *memberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.memberRepo.FindAll(ctx, true)
}

// Detail fetches the member (references resolved) and the plans listing it,
// concurrently.
func (s *memberService) Detail(ctx context.Context, id primitive.ObjectID) (*domain.Member, []domain.Plan, error) {
	var (
		member *domain.Member
		plans  []domain.Plan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		member, err = s.memberRepo.FindByID(gctx, id, true)
		return err
	})
	g.Go(func() (err error) {
		plans, err = s.planRepo.FindByMemberID(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}
	return member, plans, nil
}

// FormData fetches all trainers, plans and types concurrently for the
// member form's selection controls.
func (s *memberService) FormData(ctx context.Context) (*MemberFormData, error) {
	data := &MemberFormData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Trainers, err = s.trainerRepo.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Plans, err = s.planRepo.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Types, err = s.typeRepo.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *memberService) Get(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// Create inserts a new member. The trainer reference must point at an
// existing trainer.
func (s *memberService) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	if _, err := s.trainerRepo.FindByID(ctx, member.TrainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrTrainerNotFound
		}
		return primitive.NilObjectID, err
	}
	return s.memberRepo.Insert(ctx, member)
}

func (s *memberService) Update(ctx context.Context, id primitive.ObjectID, member *domain.Member) error {
	err := s.memberRepo.ReplaceByID(ctx, id, member)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMemberNotFound
	}
	return err
}

// Delete re-checks the dependent plans at submit time before removing the
// member. The check-then-delete window is not transactional; the residual
// race is accepted.
func (s *memberService) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Member, []domain.Plan, error) {
	member, plans, err := s.Detail(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if len(plans) > 0 {
		return member, plans, nil
	}
	if err := s.memberRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, err
	}
	if member.PhotoKey != "" {
		// Best effort; an orphaned object is not worth failing the delete.
		_ = s.photos.DeleteObject(ctx, member.PhotoKey)
	}
	return member, nil, nil
}

// UploadPhoto stores a member photo under a fresh object key.
func (s *memberService) UploadPhoto(ctx context.Context, contentType string, body io.Reader) (string, error) {
	key := "members/" + uuid.NewString()
	if err := s.photos.UploadObject(ctx, key, contentType, body); err != nil {
		return "", err
	}
	return key, nil
}

// PhotoURL returns a presigned download URL for the given photo key, or an
// empty string when photos are unavailable.
func (s *memberService) PhotoURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return s.photos.GeneratePresignedDownloadURL(ctx, key, 15*time.Minute)
}
