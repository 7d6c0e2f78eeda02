package service

import (
	"context"
	"sync"

	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository stubs shared by the service tests. They hold records
// in maps and take a mutex because the services fan queries out concurrently.

type memberRepoStub struct {
	mu      sync.Mutex
	members map[primitive.ObjectID]domain.Member
}

func newMemberRepoStub(members ...domain.Member) *memberRepoStub {
	s := &memberRepoStub{members: make(map[primitive.ObjectID]domain.Member)}
	for _, m := range members {
		s.members[m.ID] = m
	}
	return s
}

func (s *memberRepoStub) FindAll(ctx context.Context, populate bool) ([]domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	return out, nil
}

func (s *memberRepoStub) FindByID(ctx context.Context, id primitive.ObjectID, populate bool) (*domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (s *memberRepoStub) FindByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Member
	for _, m := range s.members {
		if m.TrainerID == trainerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memberRepoStub) FindByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Member
	for _, m := range s.members {
		if m.PlanID != nil && *m.PlanID == planID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memberRepoStub) FindByTypeID(ctx context.Context, typeID primitive.ObjectID) ([]domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Member
	for _, m := range s.members {
		if m.TypeID != nil && *m.TypeID == typeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memberRepoStub) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.members)), nil
}

func (s *memberRepoStub) Insert(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	s.members[member.ID] = *member
	return member.ID, nil
}

func (s *memberRepoStub) ReplaceByID(ctx context.Context, id primitive.ObjectID, member *domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return repository.ErrNotFound
	}
	member.ID = id
	s.members[id] = *member
	return nil
}

func (s *memberRepoStub) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.members, id)
	return nil
}

type trainerRepoStub struct {
	mu       sync.Mutex
	trainers map[primitive.ObjectID]domain.Trainer
}

func newTrainerRepoStub(trainers ...domain.Trainer) *trainerRepoStub {
	s := &trainerRepoStub{trainers: make(map[primitive.ObjectID]domain.Trainer)}
	for _, t := range trainers {
		s.trainers[t.ID] = t
	}
	return s
}

func (s *trainerRepoStub) FindAll(ctx context.Context) ([]domain.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Trainer, 0, len(s.trainers))
	for _, t := range s.trainers {
		out = append(out, t)
	}
	return out, nil
}

func (s *trainerRepoStub) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *trainerRepoStub) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.trainers)), nil
}

func (s *trainerRepoStub) Insert(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if trainer.ID.IsZero() {
		trainer.ID = primitive.NewObjectID()
	}
	s.trainers[trainer.ID] = *trainer
	return trainer.ID, nil
}

func (s *trainerRepoStub) ReplaceByID(ctx context.Context, id primitive.ObjectID, trainer *domain.Trainer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	trainer.ID = id
	s.trainers[id] = *trainer
	return nil
}

func (s *trainerRepoStub) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.trainers, id)
	return nil
}

type planRepoStub struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]domain.Plan
}

func newPlanRepoStub(plans ...domain.Plan) *planRepoStub {
	s := &planRepoStub{plans: make(map[primitive.ObjectID]domain.Plan)}
	for _, p := range plans {
		s.plans[p.ID] = p
	}
	return s
}

func (s *planRepoStub) FindAll(ctx context.Context) ([]domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p)
	}
	return out, nil
}

func (s *planRepoStub) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *planRepoStub) FindByMemberID(ctx context.Context, memberID primitive.ObjectID) ([]domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Plan
	for _, p := range s.plans {
		for _, id := range p.MemberIDs {
			if id == memberID {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *planRepoStub) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.plans)), nil
}

func (s *planRepoStub) CountActive(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.plans {
		if p.Status == domain.PlanActive {
			n++
		}
	}
	return n, nil
}

func (s *planRepoStub) Insert(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	s.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (s *planRepoStub) ReplaceByID(ctx context.Context, id primitive.ObjectID, plan *domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return repository.ErrNotFound
	}
	plan.ID = id
	s.plans[id] = *plan
	return nil
}

func (s *planRepoStub) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.plans, id)
	return nil
}

type typeRepoStub struct {
	mu    sync.Mutex
	types map[primitive.ObjectID]domain.MembershipType

	// insertErr, when set, is returned by Insert instead of inserting.
	insertErr error
	// missFirstFindByName makes the first FindByName call report a miss even
	// when the name exists. Simulates the window a concurrent create wins.
	missFirstFindByName bool
}

func newTypeRepoStub(types ...domain.MembershipType) *typeRepoStub {
	s := &typeRepoStub{types: make(map[primitive.ObjectID]domain.MembershipType)}
	for _, t := range types {
		s.types[t.ID] = t
	}
	return s
}

func (s *typeRepoStub) FindAll(ctx context.Context) ([]domain.MembershipType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MembershipType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	return out, nil
}

func (s *typeRepoStub) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *typeRepoStub) FindByName(ctx context.Context, name string) (*domain.MembershipType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missFirstFindByName {
		s.missFirstFindByName = false
		return nil, repository.ErrNotFound
	}
	for _, t := range s.types {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *typeRepoStub) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.types)), nil
}

func (s *typeRepoStub) Insert(ctx context.Context, t *domain.MembershipType) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return primitive.NilObjectID, s.insertErr
	}
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.types[t.ID] = *t
	return t.ID, nil
}

func (s *typeRepoStub) ReplaceByID(ctx context.Context, id primitive.ObjectID, t *domain.MembershipType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[id]; !ok {
		return repository.ErrNotFound
	}
	t.ID = id
	s.types[id] = *t
	return nil
}

func (s *typeRepoStub) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.types, id)
	return nil
}

type accountRepoStub struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
}

func newAccountRepoStub(accounts ...domain.Account) *accountRepoStub {
	s := &accountRepoStub{accounts: make(map[string]domain.Account)}
	for _, a := range accounts {
		s.accounts[a.Username] = a
	}
	return s
}

func (s *accountRepoStub) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (s *accountRepoStub) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.accounts)), nil
}

func (s *accountRepoStub) Insert(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Username]; ok {
		return primitive.NilObjectID, repository.ErrDuplicateKey
	}
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	s.accounts[account.Username] = *account
	return account.ID, nil
}
