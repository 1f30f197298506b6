package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/quantonganh/codebinge"
)

// SubscriptionService is a testify mock of codebinge.SubscriptionService
type SubscriptionService struct {
	mock.Mock
}

var _ codebinge.SubscriptionService = (*SubscriptionService)(nil)

func (m *SubscriptionService) Subscribe(ctx context.Context, email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *SubscriptionService) Unsubscribe(ctx context.Context, email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *SubscriptionService) FindActive(ctx context.Context) ([]string, error) {
	args := m.Called()
	emails, _ := args.Get(0).([]string)
	return emails, args.Error(1)
}

func (m *SubscriptionService) CountActive(ctx context.Context) (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// ProfileService is a testify mock of codebinge.ProfileService
type ProfileService struct {
	mock.Mock
}

var _ codebinge.ProfileService = (*ProfileService)(nil)

func (m *ProfileService) FindByEmail(ctx context.Context, email string) (*codebinge.Profile, error) {
	args := m.Called(email)
	p, _ := args.Get(0).(*codebinge.Profile)
	return p, args.Error(1)
}

func (m *ProfileService) Save(ctx context.Context, p *codebinge.Profile) error {
	args := m.Called(p)
	return args.Error(0)
}
