package http

import (
	"context"

	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/service"
	"github.com/YusovID/service-dispatch/internal/session"
	"github.com/stretchr/testify/mock"
)

type AccountServiceMock struct {
	mock.Mock
}

var _ service.AccountService = (*AccountServiceMock)(nil)

func (m *AccountServiceMock) SignUp(ctx context.Context, in service.SignUpInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *AccountServiceMock) SignIn(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *AccountServiceMock) SignOut(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *AccountServiceMock) Resolve(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *AccountServiceMock) Current(sess *session.Session) (*service.SessionView, error) {
	args := m.Called(sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *AccountServiceMock) UpdateProfile(ctx context.Context, sess *session.Session, in service.ProfileUpdate) (*domain.Profile, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Profile), args.Error(1)
}

type CustomerServiceMock struct {
	mock.Mock
}

var _ service.CustomerService = (*CustomerServiceMock)(nil)

func (m *CustomerServiceMock) ListCategories(ctx context.Context, group domain.ServiceGroup) ([]domain.ServiceCategory, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ServiceCategory), args.Error(1)
}

func (m *CustomerServiceMock) CreateRequest(ctx context.Context, sess *session.Session, in service.CreateRequestInput) (*service.RequestView, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RequestView), args.Error(1)
}

func (m *CustomerServiceMock) ListRequests(ctx context.Context, sess *session.Session) ([]service.RequestView, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]service.RequestView), args.Error(1)
}

func (m *CustomerServiceMock) GetRequest(ctx context.Context, sess *session.Session, requestID string) (*service.CustomerRequestDetail, error) {
	args := m.Called(ctx, sess, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.CustomerRequestDetail), args.Error(1)
}

func (m *CustomerServiceMock) SubmitReview(ctx context.Context, sess *session.Session, in service.ReviewInput) (*domain.ServiceReview, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceReview), args.Error(1)
}

type ProviderServiceMock struct {
	mock.Mock
}

var _ service.ProviderService = (*ProviderServiceMock)(nil)

func (m *ProviderServiceMock) Dashboard(ctx context.Context, sess *session.Session, query string) (*service.Dashboard, error) {
	args := m.Called(ctx, sess, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *ProviderServiceMock) Profile(ctx context.Context, sess *session.Session) (*domain.ServiceProvider, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceProvider), args.Error(1)
}

func (m *ProviderServiceMock) Claim(ctx context.Context, sess *session.Session, requestID string) (*service.RequestView, error) {
	args := m.Called(ctx, sess, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.RequestView), args.Error(1)
}

func (m *ProviderServiceMock) GetRequest(ctx context.Context, sess *session.Session, requestID string) (*service.ProviderRequestDetail, error) {
	args := m.Called(ctx, sess, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ProviderRequestDetail), args.Error(1)
}

func (m *ProviderServiceMock) SaveQuote(ctx context.Context, sess *session.Session, requestID string, in service.QuoteInput) (*domain.ServicePayment, error) {
	args := m.Called(ctx, sess, requestID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

func (m *ProviderServiceMock) Start(ctx context.Context, sess *session.Session, requestID string) error {
	args := m.Called(ctx, sess, requestID)
	return args.Error(0)
}

func (m *ProviderServiceMock) Complete(ctx context.Context, sess *session.Session, requestID string, confirmed bool) error {
	args := m.Called(ctx, sess, requestID, confirmed)
	return args.Error(0)
}

type PaymentServiceMock struct {
	mock.Mock
}

var _ service.PaymentService = (*PaymentServiceMock)(nil)

func (m *PaymentServiceMock) GetPayment(ctx context.Context, sess *session.Session, paymentID string) (*domain.ServicePayment, error) {
	args := m.Called(ctx, sess, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

func (m *PaymentServiceMock) PayByCard(ctx context.Context, sess *session.Session, paymentID string, card service.Card) (*domain.ServicePayment, error) {
	args := m.Called(ctx, sess, paymentID, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

type AdminServiceMock struct {
	mock.Mock
}

var _ service.AdminService = (*AdminServiceMock)(nil)

func (m *AdminServiceMock) Stats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AdminStats), args.Error(1)
}
