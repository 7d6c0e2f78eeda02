package service

import (
	"context"
	"errors"
	"testing"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateOrExistingInsertsNewType(t *testing.T) {
	typeRepo := newTypeRepoStub()
	svc := NewTypeService(typeRepo, newMemberRepoStub())

	created, existed, err := svc.CreateOrExisting(context.Background(), &domain.MembershipType{Name: "Student"})
	if err != nil {
		t.Fatalf("CreateOrExisting: %v", err)
	}
	if existed {
		t.Error("expected existed = false for a fresh name")
	}
	if created.ID.IsZero() {
		t.Error("expected an assigned id")
	}
	if n, _ := typeRepo.Count(context.Background()); n != 1 {
		t.Errorf("expected 1 stored type, got %d", n)
	}
}

func TestCreateOrExistingReturnsExistingWithoutInserting(t *testing.T) {
	existing := domain.MembershipType{ID: primitive.NewObjectID(), Name: "Student"}
	typeRepo := newTypeRepoStub(existing)
	svc := NewTypeService(typeRepo, newMemberRepoStub())

	got, existed, err := svc.CreateOrExisting(context.Background(), &domain.MembershipType{Name: "Student"})
	if err != nil {
		t.Fatalf("CreateOrExisting: %v", err)
	}
	if !existed {
		t.Error("expected existed = true")
	}
	if got.ID != existing.ID {
		t.Errorf("expected the existing record, got id %s", got.ID.Hex())
	}
	if n, _ := typeRepo.Count(context.Background()); n != 1 {
		t.Errorf("second record was inserted, count = %d", n)
	}
}

func TestCreateOrExistingResolvesDuplicateKeyRace(t *testing.T) {
	winner := domain.MembershipType{ID: primitive.NewObjectID(), Name: "Student"}
	typeRepo := newTypeRepoStub(winner)
	typeRepo.missFirstFindByName = true
	typeRepo.insertErr = repository.ErrDuplicateKey
	svc := NewTypeService(typeRepo, newMemberRepoStub())

	got, existed, err := svc.CreateOrExisting(context.Background(), &domain.MembershipType{Name: "Student"})
	if err != nil {
		t.Fatalf("CreateOrExisting: %v", err)
	}
	if !existed {
		t.Error("expected existed = true after losing the insert race")
	}
	if got.ID != winner.ID {
		t.Errorf("expected the winning record, got id %s", got.ID.Hex())
	}
}

func TestTypeDeleteRefusedWhileMembersCarryIt(t *testing.T) {
	typ := domain.MembershipType{ID: primitive.NewObjectID(), Name: "Student"}
	member := domain.Member{
		ID:        primitive.NewObjectID(),
		FirstName: "Jonas",
		TrainerID: primitive.NewObjectID(),
		TypeID:    &typ.ID,
	}
	typeRepo := newTypeRepoStub(typ)
	svc := NewTypeService(typeRepo, newMemberRepoStub(member))

	got, blocking, err := svc.Delete(context.Background(), typ.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(blocking) != 1 || blocking[0].ID != member.ID {
		t.Fatalf("expected the carrying member to block, got %v", blocking)
	}
	if got.ID != typ.ID {
		t.Errorf("expected the type back with the refusal")
	}
	if n, _ := typeRepo.Count(context.Background()); n != 1 {
		t.Errorf("refused delete removed the record, count = %d", n)
	}
}

func TestTypeDeleteRemovesUnusedType(t *testing.T) {
	typ := domain.MembershipType{ID: primitive.NewObjectID(), Name: "Student"}
	typeRepo := newTypeRepoStub(typ)
	svc := NewTypeService(typeRepo, newMemberRepoStub())

	_, blocking, err := svc.Delete(context.Background(), typ.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(blocking) != 0 {
		t.Fatalf("unexpected blocking members: %v", blocking)
	}
	if n, _ := typeRepo.Count(context.Background()); n != 0 {
		t.Errorf("expected the type to be removed, count = %d", n)
	}
}

func TestTypeDetailUnknownID(t *testing.T) {
	svc := NewTypeService(newTypeRepoStub(), newMemberRepoStub())

	_, _, err := svc.Detail(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}
}
