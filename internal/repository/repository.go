// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"
	"time"

	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// AuthRepository stores the identities issued by the authentication collaborator.
type AuthRepository interface {
	// CreateUser inserts an identity inside tx.
	// It returns *apperrors.EmailTakenError if the email is already registered.
	CreateUser(ctx context.Context, tx *sqlx.Tx, email string, passwordHash string) (*domain.AuthUser, error)

	// GetUserByEmail returns apperrors.ErrNotFound for an unknown email.
	GetUserByEmail(ctx context.Context, email string) (*domain.AuthUser, error)
}

type ProfileRepository interface {
	// CreateProfile inserts a profile whose id equals the identity id.
	CreateProfile(ctx context.Context, tx *sqlx.Tx, profile *domain.Profile) (*domain.Profile, error)

	// GetProfileByID returns apperrors.ErrNotFound if the identity has no profile row.
	GetProfileByID(ctx context.Context, id string) (*domain.Profile, error)

	// UpdateProfile overwrites the editable fields of the profile.
	UpdateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}

type CatalogRepository interface {
	// ListCategoriesByGroup returns categories of a group ordered by name.
	ListCategoriesByGroup(ctx context.Context, group domain.ServiceGroup) ([]domain.ServiceCategory, error)

	// GetCategoryByID returns apperrors.ErrNotFound for an unknown category.
	GetCategoryByID(ctx context.Context, id string) (*domain.ServiceCategory, error)
}

type ProviderRepository interface {
	// GetProviderByUserID resolves the provider business record owned by a profile.
	// It returns apperrors.ErrNotFound if the user has none.
	GetProviderByUserID(ctx context.Context, userID string) (*domain.ServiceProvider, error)

	// IncrementCompleted bumps the provider's total completed count inside tx.
	IncrementCompleted(ctx context.Context, tx *sqlx.Tx, providerID string) error
}

// RequestQueryRepository defines read-only operations on service requests.
type RequestQueryRepository interface {
	// GetRequestByID returns apperrors.ErrNotFound if the request does not exist.
	GetRequestByID(ctx context.Context, id string) (*domain.ServiceRequest, error)

	// ListRequestsByCustomer returns the customer's requests, newest first.
	ListRequestsByCustomer(ctx context.Context, customerID string) ([]domain.ServiceRequest, error)

	// ListProviderQueue returns requests claimed by the provider together with
	// every pending request, newest first.
	ListProviderQueue(ctx context.Context, providerID string) ([]domain.ServiceRequest, error)

	// GenerateTrackingNumber calls the store-side tracking number procedure.
	GenerateTrackingNumber(ctx context.Context) (string, error)

	// TrackingNumberExists reports whether any request already uses the number.
	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)
}

// RequestCommandRepository defines write and locking operations on service requests.
type RequestCommandRepository interface {
	// CreateRequest inserts a pending request. The appointment text is parsed by the store;
	// apperrors.ErrInvalidAppointment is returned if it rejects it and
	// apperrors.ErrAlreadyExists if the tracking number is taken.
	CreateRequest(ctx context.Context, req domain.NewRequest) (*domain.ServiceRequest, error)

	// ClaimRequest attaches the provider to a request that is still pending.
	// It returns apperrors.ErrAlreadyClaimed if the request has left pending.
	ClaimRequest(ctx context.Context, requestID string, providerID string) (*domain.ServiceRequest, error)

	// GetRequestByIDWithLock reads the request with a row lock ("FOR UPDATE").
	GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, id string) (*domain.ServiceRequest, error)

	// UpdateRequestStatus moves the request from one status to another. It returns
	// *apperrors.TransitionError if the request is not in from.
	UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, id string, from, to domain.RequestStatus) error

	// CompleteRequest moves an in-progress request to completed only while a
	// payment row exists for it; otherwise apperrors.ErrPaymentRequired.
	CompleteRequest(ctx context.Context, tx *sqlx.Tx, id string) error
}

type PaymentRepository interface {
	// GetPaymentByID returns apperrors.ErrNotFound if the payment does not exist.
	GetPaymentByID(ctx context.Context, id string) (*domain.ServicePayment, error)

	// GetPaymentByRequestID returns the single payment of a request or apperrors.ErrNotFound.
	// The ext argument allows this method to be executed within a transaction; nil means the DB.
	GetPaymentByRequestID(ctx context.Context, ext sqlx.ExtContext, requestID string) (*domain.ServicePayment, error)

	// CreatePayment inserts a pending payment carrying the quote and its total.
	CreatePayment(ctx context.Context, tx *sqlx.Tx, requestID string, quote domain.Quote) (*domain.ServicePayment, error)

	// UpdatePaymentAmounts rewrites the three amounts and the total.
	UpdatePaymentAmounts(ctx context.Context, tx *sqlx.Tx, paymentID string, quote domain.Quote) (*domain.ServicePayment, error)

	// MarkPaymentPaid sets a pending payment to paid. It returns
	// apperrors.ErrPaymentNotPending if the payment is no longer pending.
	MarkPaymentPaid(ctx context.Context, paymentID string, method string, paidAt time.Time) (*domain.ServicePayment, error)
}

type ReviewRepository interface {
	// CreateReview inserts a review; a second review of the same request
	// yields *apperrors.ReviewExistsError.
	CreateReview(ctx context.Context, review *domain.ServiceReview) (*domain.ServiceReview, error)

	// ReviewExists reports whether the request already has a review.
	ReviewExists(ctx context.Context, requestID string) (bool, error)
}

// StatsRepository holds the independent aggregate queries of the admin dashboard.
type StatsRepository interface {
	CountProfiles(ctx context.Context) (int, error)

	// CountRequests counts all requests, or only those in status when it is not nil.
	CountRequests(ctx context.Context, status *domain.RequestStatus) (int, error)

	// SumPaidRevenue sums total_amount over paid payments.
	SumPaidRevenue(ctx context.Context) (decimal.Decimal, error)

	CountActiveProviders(ctx context.Context) (int, error)
}

// RevocationStore remembers signed-out session tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
