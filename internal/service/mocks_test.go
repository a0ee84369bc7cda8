package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/YusovID/service-dispatch/internal/auth"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type AuthRepositoryMock struct {
	mock.Mock
}

var _ repository.AuthRepository = (*AuthRepositoryMock)(nil)

func (m *AuthRepositoryMock) CreateUser(ctx context.Context, tx *sqlx.Tx, email string, passwordHash string) (*domain.AuthUser, error) {
	args := m.Called(ctx, tx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AuthUser), args.Error(1)
}

func (m *AuthRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*domain.AuthUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.AuthUser), args.Error(1)
}

type ProfileRepositoryMock struct {
	mock.Mock
}

var _ repository.ProfileRepository = (*ProfileRepositoryMock)(nil)

func (m *ProfileRepositoryMock) CreateProfile(ctx context.Context, tx *sqlx.Tx, profile *domain.Profile) (*domain.Profile, error) {
	args := m.Called(ctx, tx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *ProfileRepositoryMock) GetProfileByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *ProfileRepositoryMock) UpdateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Profile), args.Error(1)
}

type CatalogRepositoryMock struct {
	mock.Mock
}

var _ repository.CatalogRepository = (*CatalogRepositoryMock)(nil)

func (m *CatalogRepositoryMock) ListCategoriesByGroup(ctx context.Context, group domain.ServiceGroup) ([]domain.ServiceCategory, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ServiceCategory), args.Error(1)
}

func (m *CatalogRepositoryMock) GetCategoryByID(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceCategory), args.Error(1)
}

type ProviderRepositoryMock struct {
	mock.Mock
}

var _ repository.ProviderRepository = (*ProviderRepositoryMock)(nil)

func (m *ProviderRepositoryMock) GetProviderByUserID(ctx context.Context, userID string) (*domain.ServiceProvider, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceProvider), args.Error(1)
}

func (m *ProviderRepositoryMock) IncrementCompleted(ctx context.Context, tx *sqlx.Tx, providerID string) error {
	args := m.Called(ctx, tx, providerID)
	return args.Error(0)
}

type RequestQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.RequestQueryRepository = (*RequestQueryRepositoryMock)(nil)

func (m *RequestQueryRepositoryMock) GetRequestByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *RequestQueryRepositoryMock) ListRequestsByCustomer(ctx context.Context, customerID string) ([]domain.ServiceRequest, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ServiceRequest), args.Error(1)
}

func (m *RequestQueryRepositoryMock) ListProviderQueue(ctx context.Context, providerID string) ([]domain.ServiceRequest, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ServiceRequest), args.Error(1)
}

func (m *RequestQueryRepositoryMock) GenerateTrackingNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *RequestQueryRepositoryMock) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Bool(0), args.Error(1)
}

type RequestCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.RequestCommandRepository = (*RequestCommandRepositoryMock)(nil)

func (m *RequestCommandRepositoryMock) CreateRequest(ctx context.Context, req domain.NewRequest) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *RequestCommandRepositoryMock) ClaimRequest(ctx context.Context, requestID string, providerID string) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, requestID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *RequestCommandRepositoryMock) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, id string) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *RequestCommandRepositoryMock) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, id string, from, to domain.RequestStatus) error {
	args := m.Called(ctx, tx, id, from, to)
	return args.Error(0)
}

func (m *RequestCommandRepositoryMock) CompleteRequest(ctx context.Context, tx *sqlx.Tx, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type PaymentRepositoryMock struct {
	mock.Mock
}

var _ repository.PaymentRepository = (*PaymentRepositoryMock)(nil)

func (m *PaymentRepositoryMock) GetPaymentByID(ctx context.Context, id string) (*domain.ServicePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

func (m *PaymentRepositoryMock) GetPaymentByRequestID(ctx context.Context, ext sqlx.ExtContext, requestID string) (*domain.ServicePayment, error) {
	args := m.Called(ctx, ext, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

func (m *PaymentRepositoryMock) CreatePayment(ctx context.Context, tx *sqlx.Tx, requestID string, quote domain.Quote) (*domain.ServicePayment, error) {
	args := m.Called(ctx, tx, requestID, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

func (m *PaymentRepositoryMock) UpdatePaymentAmounts(ctx context.Context, tx *sqlx.Tx, paymentID string, quote domain.Quote) (*domain.ServicePayment, error) {
	args := m.Called(ctx, tx, paymentID, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

func (m *PaymentRepositoryMock) MarkPaymentPaid(ctx context.Context, paymentID string, method string, paidAt time.Time) (*domain.ServicePayment, error) {
	args := m.Called(ctx, paymentID, method, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServicePayment), args.Error(1)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) CreateReview(ctx context.Context, review *domain.ServiceReview) (*domain.ServiceReview, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.ServiceReview), args.Error(1)
}

func (m *ReviewRepositoryMock) ReviewExists(ctx context.Context, requestID string) (bool, error) {
	args := m.Called(ctx, requestID)
	return args.Bool(0), args.Error(1)
}

type StatsRepositoryMock struct {
	mock.Mock
}

var _ repository.StatsRepository = (*StatsRepositoryMock)(nil)

func (m *StatsRepositoryMock) CountProfiles(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *StatsRepositoryMock) CountRequests(ctx context.Context, status *domain.RequestStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *StatsRepositoryMock) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *StatsRepositoryMock) CountActiveProviders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type RevocationStoreMock struct {
	mock.Mock
}

var _ repository.RevocationStore = (*RevocationStoreMock)(nil)

func (m *RevocationStoreMock) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *RevocationStoreMock) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

type TokenIssuerMock struct {
	mock.Mock
}

var _ TokenIssuer = (*TokenIssuerMock)(nil)

func (m *TokenIssuerMock) Issue(userID string) (*auth.Token, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*auth.Token), args.Error(1)
}

func (m *TokenIssuerMock) Parse(value string) (*auth.Token, error) {
	args := m.Called(value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*auth.Token), args.Error(1)
}
