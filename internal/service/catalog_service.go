package service

import (
	"context"

	"localgym/gym-admin/internal/repository"

	"golang.org/x/sync/errgroup"
)

// CatalogCounts are the record counts shown on the catalog home page.
type CatalogCounts struct {
	Members     int64
	Trainers    int64
	Plans       int64
	ActivePlans int64
	Types       int64
}

// CatalogService aggregates the counts for the catalog home page.
type CatalogService interface {
	Counts(ctx context.Context) (*CatalogCounts, error)
}

type catalogService struct {
	memberRepo  repository.MemberRepository
	trainerRepo repository.TrainerRepository
	planRepo    repository.PlanRepository
	typeRepo    repository.TypeRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	memberRepo repository.MemberRepository,
	trainerRepo repository.TrainerRepository,
	planRepo repository.PlanRepository,
	typeRepo repository.TypeRepository,
) CatalogService {
	return &catalogService{
		memberRepo:  memberRepo,
		trainerRepo: trainerRepo,
		planRepo:    planRepo,
		typeRepo:    typeRepo,
	}
}

// Counts issues the five count queries concurrently.
func (s *catalogService) Counts(ctx context.Context) (*CatalogCounts, error) {
	counts := &CatalogCounts{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Members, err = s.memberRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Trainers, err = s.trainerRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Plans, err = s.planRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.ActivePlans, err = s.planRepo.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Types, err = s.typeRepo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}
