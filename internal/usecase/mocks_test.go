package usecase

import (
	"context"
	"time"

	"github.com/refinly/loan-referral/internal/entity"
	"github.com/refinly/loan-referral/internal/infra/integration/whatsapp"
	"github.com/stretchr/testify/mock"
)

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, to, body string) whatsapp.SendResult {
	args := m.Called(ctx, to, body)
	return args.Get(0).(whatsapp.SendResult)
}

type mockCompleter struct{ mock.Mock }

func (m *mockCompleter) Complete(ctx context.Context, userText string) (string, error) {
	args := m.Called(ctx, userText)
	return args.String(0), args.Error(1)
}

type mockPresets struct{ mock.Mock }

func (m *mockPresets) Match(text string) (string, bool) {
	args := m.Called(text)
	return args.String(0), args.Bool(1)
}

type mockDedupe struct{ mock.Mock }

func (m *mockDedupe) FirstSeen(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyNewLead(ctx context.Context, n LeadNotification) error {
	return m.Called(ctx, n).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendNewLead(to []string, n LeadNotification) error {
	return m.Called(to, n).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockLeadRepo struct{ mock.Mock }

func (m *mockLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *mockLeadRepo) ListStale(ctx context.Context, status entity.LeadStatus, olderThan time.Time) ([]*entity.Lead, error) {
	args := m.Called(ctx, status, olderThan)
	if l := args.Get(0); l != nil {
		return l.([]*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPackageRepo struct{ mock.Mock }

func (m *mockPackageRepo) FindAll(ctx context.Context) ([]*entity.BankPackage, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]*entity.BankPackage), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(hash, password string) bool {
	return m.Called(hash, password).Bool(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) CreateAccessToken(userID int64, role, email string) (string, error) {
	args := m.Called(userID, role, email)
	return args.String(0), args.Error(1)
}

func (m *mockTokens) TTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

func ptr[T any](v T) *T { return &v }
