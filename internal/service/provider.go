package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/repository"
	"github.com/YusovID/service-dispatch/internal/session"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// QuoteInput holds the three amounts as the provider typed them.
type QuoteInput struct {
	ServiceFee   string
	LaborCost    string
	MaterialCost string
}

// Parse checks that every amount is present, a non-negative number with at most
// two decimal places, and that the total fits the money column.
func (in QuoteInput) Parse() (domain.Quote, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"service_fee", in.ServiceFee},
		{"labor_cost", in.LaborCost},
		{"material_cost", in.MaterialCost},
	}

	amounts := make([]decimal.Decimal, len(fields))

	for i, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.Quote{}, fmt.Errorf("%w: field '%s' is required", apperrors.ErrValidation, f.name)
		}

		amount, err := domain.ParseAmount(f.value)
		if err != nil {
			return domain.Quote{}, fmt.Errorf("%w: field '%s' %w", apperrors.ErrValidation, f.name, err)
		}

		amounts[i] = amount
	}

	quote := domain.Quote{ServiceFee: amounts[0], LaborCost: amounts[1], MaterialCost: amounts[2]}
	if quote.Total().GreaterThan(domain.MaxAmount) {
		return domain.Quote{}, fmt.Errorf("%w: total amount %w", apperrors.ErrValidation, domain.ErrAmountTooLarge)
	}

	return quote, nil
}

type ProviderService interface {
	Dashboard(ctx context.Context, sess *session.Session, query string) (*Dashboard, error)
	Profile(ctx context.Context, sess *session.Session) (*domain.ServiceProvider, error)
	Claim(ctx context.Context, sess *session.Session, requestID string) (*RequestView, error)
	GetRequest(ctx context.Context, sess *session.Session, requestID string) (*ProviderRequestDetail, error)
	SaveQuote(ctx context.Context, sess *session.Session, requestID string, in QuoteInput) (*domain.ServicePayment, error)
	Start(ctx context.Context, sess *session.Session, requestID string) error
	Complete(ctx context.Context, sess *session.Session, requestID string, confirmed bool) error
}

type ProviderServiceImpl struct {
	BaseService
	providers repository.ProviderRepository
	profiles  repository.ProfileRepository
	reqQuery  repository.RequestQueryRepository
	reqCmd    repository.RequestCommandRepository
	payments  repository.PaymentRepository
}

func NewProviderService(
	db Transactor,
	log *slog.Logger,
	providers repository.ProviderRepository,
	profiles repository.ProfileRepository,
	reqQuery repository.RequestQueryRepository,
	reqCmd repository.RequestCommandRepository,
	payments repository.PaymentRepository,
) *ProviderServiceImpl {
	return &ProviderServiceImpl{
		BaseService: NewBaseService(db, log),
		providers:   providers,
		profiles:    profiles,
		reqQuery:    reqQuery,
		reqCmd:      reqCmd,
		payments:    payments,
	}
}

// Dashboard lists the provider's own requests and the whole pending queue.
// Counts are taken over everything fetched, before the text filter applies.
// A user without a provider record gets an empty dashboard.
func (s *ProviderServiceImpl) Dashboard(ctx context.Context, sess *session.Session, query string) (*Dashboard, error) {
	const op = "internal.service.provider.Dashboard"

	dashboard := &Dashboard{Requests: []RequestView{}}

	provider, err := s.providers.GetProviderByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dashboard, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	dashboard.Provider = provider

	reqs, err := s.reqQuery.ListProviderQueue(ctx, provider.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, r := range reqs {
		switch r.Status {
		case domain.StatusPending:
			dashboard.Stats.Pending++
		case domain.StatusInProgress:
			dashboard.Stats.InProgress++
		case domain.StatusCompleted:
			dashboard.Stats.Completed++
		}
	}

	dashboard.Requests = newRequestViews(filterRequests(reqs, query))

	return dashboard, nil
}

// filterRequests keeps requests whose tracking number or description contains
// query, ignoring case.
func filterRequests(reqs []domain.ServiceRequest, query string) []domain.ServiceRequest {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return reqs
	}

	filtered := make([]domain.ServiceRequest, 0, len(reqs))

	for _, r := range reqs {
		if strings.Contains(strings.ToLower(r.TrackingNumber), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

func (s *ProviderServiceImpl) Profile(ctx context.Context, sess *session.Session) (*domain.ServiceProvider, error) {
	return s.provider(ctx, sess)
}

func (s *ProviderServiceImpl) Claim(ctx context.Context, sess *session.Session, requestID string) (*RequestView, error) {
	const op = "internal.service.provider.Claim"

	provider, err := s.provider(ctx, sess)
	if err != nil {
		return nil, err
	}

	claimed, err := s.reqCmd.ClaimRequest(ctx, requestID, provider.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("request claimed",
		slog.String("op", op), slog.String("request_id", requestID), slog.String("provider_id", provider.ID))

	view := newRequestView(claimed)

	return &view, nil
}

// GetRequest shows pending requests and the provider's own ones; anything
// else is reported as not found.
func (s *ProviderServiceImpl) GetRequest(ctx context.Context, sess *session.Session, requestID string) (*ProviderRequestDetail, error) {
	const op = "internal.service.provider.GetRequest"

	provider, err := s.provider(ctx, sess)
	if err != nil {
		return nil, err
	}

	req, err := s.reqQuery.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	owned := ownedBy(req, provider)
	if !owned && req.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: request with id '%s'", apperrors.ErrNotFound, requestID)
	}

	customer, err := s.profiles.GetProfileByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load customer: %w", op, err)
	}

	payment, err := findPayment(ctx, s.payments, requestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ProviderRequestDetail{
		Request:  newRequestView(req),
		Customer: customer,
		Payment:  payment,
		Actions: ProviderActions{
			CanClaim:     req.Status == domain.StatusPending,
			CanEditQuote: owned && req.Status.QuoteEditable() && quoteOpen(payment),
			CanStart:     owned && req.Status.CanStart(),
			CanComplete:  owned && req.Status.CanComplete(payment != nil),
		},
	}, nil
}

// SaveQuote creates the request's payment row or rewrites its amounts. The
// request row is locked for the duration so a concurrent completion can not
// interleave.
func (s *ProviderServiceImpl) SaveQuote(ctx context.Context, sess *session.Session, requestID string, in QuoteInput) (*domain.ServicePayment, error) {
	const op = "internal.service.provider.SaveQuote"
	log := s.log.With(slog.String("op", op), slog.String("request_id", requestID))

	quote, err := in.Parse()
	if err != nil {
		return nil, err
	}

	provider, err := s.provider(ctx, sess)
	if err != nil {
		return nil, err
	}

	var payment *domain.ServicePayment

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		req, err := s.reqCmd.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if !ownedBy(req, provider) {
			return apperrors.ErrNotRequestOwner
		}

		if !req.Status.QuoteEditable() {
			return fmt.Errorf("%w: request is '%s'", apperrors.ErrQuoteLocked, req.Status)
		}

		existing, err := s.payments.GetPaymentByRequestID(ctx, tx, requestID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}

		if existing == nil {
			payment, err = s.payments.CreatePayment(ctx, tx, requestID, quote)
			return err
		}

		if !quoteOpen(existing) {
			return fmt.Errorf("%w: payment is '%s'", apperrors.ErrQuoteLocked, existing.Status)
		}

		payment, err = s.payments.UpdatePaymentAmounts(ctx, tx, existing.ID, quote)

		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("quote saved", slog.String("total_amount", payment.TotalAmount.String()))

	return payment, nil
}

func (s *ProviderServiceImpl) Start(ctx context.Context, sess *session.Session, requestID string) error {
	const op = "internal.service.provider.Start"

	provider, err := s.provider(ctx, sess)
	if err != nil {
		return err
	}

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		req, err := s.reqCmd.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if !ownedBy(req, provider) {
			return apperrors.ErrNotRequestOwner
		}

		if !req.Status.CanStart() {
			return &apperrors.TransitionError{From: string(req.Status), To: string(domain.StatusInProgress)}
		}

		return s.reqCmd.UpdateRequestStatus(ctx, tx, requestID, domain.StatusAssigned, domain.StatusInProgress)
	})
	if err != nil {
		return err
	}

	s.log.Info("work started", slog.String("op", op), slog.String("request_id", requestID))

	return nil
}

// Complete finishes an in-progress request. The store only accepts the change
// while a payment row exists, whatever the caller believed.
func (s *ProviderServiceImpl) Complete(ctx context.Context, sess *session.Session, requestID string, confirmed bool) error {
	const op = "internal.service.provider.Complete"

	if !confirmed {
		return apperrors.ErrConfirmRequired
	}

	provider, err := s.provider(ctx, sess)
	if err != nil {
		return err
	}

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		req, err := s.reqCmd.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if !ownedBy(req, provider) {
			return apperrors.ErrNotRequestOwner
		}

		if req.Status != domain.StatusInProgress {
			return &apperrors.TransitionError{From: string(req.Status), To: string(domain.StatusCompleted)}
		}

		if err := s.reqCmd.CompleteRequest(ctx, tx, requestID); err != nil {
			return err
		}

		return s.providers.IncrementCompleted(ctx, tx, provider.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info("request completed", slog.String("op", op), slog.String("request_id", requestID))

	return nil
}

func (s *ProviderServiceImpl) provider(ctx context.Context, sess *session.Session) (*domain.ServiceProvider, error) {
	const op = "internal.service.provider.provider"

	provider, err := s.providers.GetProviderByUserID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoProviderRecord
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return provider, nil
}

func ownedBy(req *domain.ServiceRequest, provider *domain.ServiceProvider) bool {
	return req.ProviderID != nil && *req.ProviderID == provider.ID
}

// quoteOpen reports whether the amounts may still change: no payment yet, or
// one that has not been paid.
func quoteOpen(payment *domain.ServicePayment) bool {
	return payment == nil || payment.Status == domain.PaymentPending
}
