package service

import (
	"context"
	"testing"

	"localgym/gym-admin/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCatalogCounts(t *testing.T) {
	trainerID := primitive.NewObjectID()
	svc := NewCatalogService(
		newMemberRepoStub(
			domain.Member{ID: primitive.NewObjectID(), TrainerID: trainerID},
			domain.Member{ID: primitive.NewObjectID(), TrainerID: trainerID},
		),
		newTrainerRepoStub(domain.Trainer{ID: trainerID}),
		newPlanRepoStub(
			domain.Plan{ID: primitive.NewObjectID(), Status: domain.PlanActive},
			domain.Plan{ID: primitive.NewObjectID(), Status: domain.PlanInactive},
		),
		newTypeRepoStub(domain.MembershipType{ID: primitive.NewObjectID(), Name: "Student"}),
	)

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	want := CatalogCounts{Members: 2, Trainers: 1, Plans: 2, ActivePlans: 1, Types: 1}
	if *counts != want {
		t.Errorf("got %+v, want %+v", *counts, want)
	}
}
