package api

import (
	"context"
	"io"

	"localgym/gym-admin/internal/config"
	"localgym/gym-admin/internal/domain"
	"localgym/gym-admin/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hand-written service mocks for the handler tests. Each holds the records
// it should serve and counts the mutating calls so the tests can assert
// nothing was written.

type authServiceMock struct {
	account  *domain.Account
	password string
}

func (m *authServiceMock) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	if m.account != nil && username == m.account.Username && password == m.password {
		a := *m.account
		return &a, nil
	}
	return nil, service.ErrAuthenticationFailed
}

func (m *authServiceMock) EnsureAdminAccount(ctx context.Context, admin config.AdminConfig) error {
	return nil
}

type memberServiceMock struct {
	member      *domain.Member
	plans       []domain.Plan
	formData    service.MemberFormData
	createCalls int
	deleteCalls int
}

func (m *memberServiceMock) List(ctx context.Context) ([]domain.Member, error) {
	if m.member == nil {
		return nil, nil
	}
	return []domain.Member{*m.member}, nil
}

func (m *memberServiceMock) Detail(ctx context.Context, id primitive.ObjectID) (*domain.Member, []domain.Plan, error) {
	if m.member == nil || m.member.ID != id {
		return nil, nil, service.ErrMemberNotFound
	}
	return m.member, m.plans, nil
}

func (m *memberServiceMock) FormData(ctx context.Context) (*service.MemberFormData, error) {
	data := m.formData
	return &data, nil
}

func (m *memberServiceMock) Get(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	if m.member == nil || m.member.ID != id {
		return nil, service.ErrMemberNotFound
	}
	return m.member, nil
}

func (m *memberServiceMock) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	m.createCalls++
	return primitive.NewObjectID(), nil
}

func (m *memberServiceMock) Update(ctx context.Context, id primitive.ObjectID, member *domain.Member) error {
	return nil
}

func (m *memberServiceMock) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Member, []domain.Plan, error) {
	if m.member == nil || m.member.ID != id {
		return nil, nil, service.ErrMemberNotFound
	}
	if len(m.plans) > 0 {
		return m.member, m.plans, nil
	}
	m.deleteCalls++
	return m.member, nil, nil
}

func (m *memberServiceMock) UploadPhoto(ctx context.Context, contentType string, body io.Reader) (string, error) {
	return "", nil
}

func (m *memberServiceMock) PhotoURL(ctx context.Context, key string) (string, error) {
	return "", nil
}

type trainerServiceMock struct {
	trainer     *domain.Trainer
	members     []domain.Member
	deleteCalls int
}

func (m *trainerServiceMock) List(ctx context.Context) ([]domain.Trainer, error) {
	if m.trainer == nil {
		return nil, nil
	}
	return []domain.Trainer{*m.trainer}, nil
}

func (m *trainerServiceMock) Detail(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, []domain.Member, error) {
	if m.trainer == nil || m.trainer.ID != id {
		return nil, nil, service.ErrTrainerNotFound
	}
	return m.trainer, m.members, nil
}

func (m *trainerServiceMock) Get(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	if m.trainer == nil || m.trainer.ID != id {
		return nil, service.ErrTrainerNotFound
	}
	return m.trainer, nil
}

func (m *trainerServiceMock) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (m *trainerServiceMock) Update(ctx context.Context, id primitive.ObjectID, trainer *domain.Trainer) error {
	return nil
}

func (m *trainerServiceMock) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, []domain.Member, error) {
	if m.trainer == nil || m.trainer.ID != id {
		return nil, nil, service.ErrTrainerNotFound
	}
	if len(m.members) > 0 {
		return m.trainer, m.members, nil
	}
	m.deleteCalls++
	return m.trainer, nil, nil
}

type planServiceMock struct {
	plan    *domain.Plan
	members []domain.Member
}

func (m *planServiceMock) List(ctx context.Context) ([]domain.Plan, error) {
	if m.plan == nil {
		return nil, nil
	}
	return []domain.Plan{*m.plan}, nil
}

func (m *planServiceMock) Detail(ctx context.Context, id primitive.ObjectID) (*domain.Plan, []domain.Member, error) {
	if m.plan == nil || m.plan.ID != id {
		return nil, nil, service.ErrPlanNotFound
	}
	return m.plan, m.members, nil
}

func (m *planServiceMock) Get(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	if m.plan == nil || m.plan.ID != id {
		return nil, service.ErrPlanNotFound
	}
	return m.plan, nil
}

func (m *planServiceMock) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (m *planServiceMock) Update(ctx context.Context, id primitive.ObjectID, plan *domain.Plan) error {
	return nil
}

func (m *planServiceMock) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Plan, []domain.Member, error) {
	if m.plan == nil || m.plan.ID != id {
		return nil, nil, service.ErrPlanNotFound
	}
	return m.plan, m.members, nil
}

type typeServiceMock struct {
	existing    *domain.MembershipType
	members     []domain.Member
	insertCalls int
}

func (m *typeServiceMock) List(ctx context.Context) ([]domain.MembershipType, error) {
	if m.existing == nil {
		return nil, nil
	}
	return []domain.MembershipType{*m.existing}, nil
}

func (m *typeServiceMock) Detail(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, []domain.Member, error) {
	if m.existing == nil || m.existing.ID != id {
		return nil, nil, service.ErrTypeNotFound
	}
	return m.existing, m.members, nil
}

func (m *typeServiceMock) Get(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, error) {
	if m.existing == nil || m.existing.ID != id {
		return nil, service.ErrTypeNotFound
	}
	return m.existing, nil
}

func (m *typeServiceMock) CreateOrExisting(ctx context.Context, t *domain.MembershipType) (*domain.MembershipType, bool, error) {
	if m.existing != nil && m.existing.Name == t.Name {
		return m.existing, true, nil
	}
	m.insertCalls++
	t.ID = primitive.NewObjectID()
	return t, false, nil
}

func (m *typeServiceMock) Update(ctx context.Context, id primitive.ObjectID, t *domain.MembershipType) error {
	return nil
}

func (m *typeServiceMock) Delete(ctx context.Context, id primitive.ObjectID) (*domain.MembershipType, []domain.Member, error) {
	if m.existing == nil || m.existing.ID != id {
		return nil, nil, service.ErrTypeNotFound
	}
	return m.existing, m.members, nil
}

type catalogServiceMock struct {
	counts service.CatalogCounts
}

func (m *catalogServiceMock) Counts(ctx context.Context) (*service.CatalogCounts, error) {
	counts := m.counts
	return &counts, nil
}
