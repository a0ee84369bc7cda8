package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/repository"
	"github.com/YusovID/service-dispatch/internal/session"
)

// createAttempts bounds how often a request insert is retried with a fresh
// tracking number after losing a uniqueness race.
const createAttempts = 3

// CreateRequestInput is a request as typed by the customer. Date is
// "DD.MM.YYYY" and Time is "HH:MM"; only their presence is checked here.
type CreateRequestInput struct {
	CategoryID  string
	Description string
	Date        string
	Time        string
}

type ReviewInput struct {
	RequestID     string
	QualityRating int
	SpeedRating   int
	Comment       *string
}

type CustomerService interface {
	ListCategories(ctx context.Context, group domain.ServiceGroup) ([]domain.ServiceCategory, error)
	CreateRequest(ctx context.Context, sess *session.Session, in CreateRequestInput) (*RequestView, error)
	ListRequests(ctx context.Context, sess *session.Session) ([]RequestView, error)
	GetRequest(ctx context.Context, sess *session.Session, requestID string) (*CustomerRequestDetail, error)
	SubmitReview(ctx context.Context, sess *session.Session, in ReviewInput) (*domain.ServiceReview, error)
}

type CustomerServiceImpl struct {
	BaseService
	catalog  repository.CatalogRepository
	reqQuery repository.RequestQueryRepository
	reqCmd   repository.RequestCommandRepository
	payments repository.PaymentRepository
	reviews  repository.ReviewRepository
	tracking *trackingAllocator
}

func NewCustomerService(
	db Transactor,
	log *slog.Logger,
	catalog repository.CatalogRepository,
	reqQuery repository.RequestQueryRepository,
	reqCmd repository.RequestCommandRepository,
	payments repository.PaymentRepository,
	reviews repository.ReviewRepository,
) *CustomerServiceImpl {
	base := NewBaseService(db, log)

	return &CustomerServiceImpl{
		BaseService: base,
		catalog:     catalog,
		reqQuery:    reqQuery,
		reqCmd:      reqCmd,
		payments:    payments,
		reviews:     reviews,
		tracking:    &trackingAllocator{BaseService: base, requests: reqQuery},
	}
}

func (s *CustomerServiceImpl) ListCategories(ctx context.Context, group domain.ServiceGroup) ([]domain.ServiceCategory, error) {
	const op = "internal.service.customer.ListCategories"

	if !group.Valid() {
		return nil, fmt.Errorf("%w: unknown service group '%s'", apperrors.ErrValidation, group)
	}

	categories, err := s.catalog.ListCategoriesByGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

func (s *CustomerServiceImpl) CreateRequest(ctx context.Context, sess *session.Session, in CreateRequestInput) (*RequestView, error) {
	const op = "internal.service.customer.CreateRequest"
	log := s.log.With(slog.String("op", op), slog.String("customer_id", sess.UserID))

	if in.Description == "" || in.Date == "" || in.Time == "" {
		return nil, fmt.Errorf("%w: description, date and time are required", apperrors.ErrValidation)
	}

	category, err := s.catalog.GetCategoryByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	newReq := domain.NewRequest{
		CustomerID:  sess.UserID,
		CategoryID:  category.ID,
		Group:       category.Group,
		Description: in.Description,
		Appointment: in.Date + " " + in.Time + ":00",
		Address:     sess.Profile.AddressSnapshot(),
	}

	for attempt := 1; ; attempt++ {
		newReq.TrackingNumber, err = s.tracking.next(ctx)
		if err != nil {
			return nil, err
		}

		created, err := s.reqCmd.CreateRequest(ctx, newReq)
		if err == nil {
			requestsCreatedTotal.WithLabelValues(string(created.Group)).Inc()
			log.Info("request created", slog.String("tracking_number", created.TrackingNumber))

			view := newRequestView(created)

			return &view, nil
		}

		if !errors.Is(err, apperrors.ErrAlreadyExists) || attempt == createAttempts {
			return nil, err
		}

		log.Warn("tracking number collided on insert, retrying",
			slog.String("tracking_number", newReq.TrackingNumber), slog.Int("attempt", attempt))
	}
}

func (s *CustomerServiceImpl) ListRequests(ctx context.Context, sess *session.Session) ([]RequestView, error) {
	const op = "internal.service.customer.ListRequests"

	reqs, err := s.reqQuery.ListRequestsByCustomer(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return newRequestViews(reqs), nil
}

func (s *CustomerServiceImpl) GetRequest(ctx context.Context, sess *session.Session, requestID string) (*CustomerRequestDetail, error) {
	const op = "internal.service.customer.GetRequest"

	req, err := s.ownRequest(ctx, sess, requestID)
	if err != nil {
		return nil, err
	}

	payment, err := s.optionalPayment(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	detail := &CustomerRequestDetail{
		Request: newRequestView(req),
		Payment: payment,
	}

	detail.Actions.CanPay = payment != nil && payment.Status == domain.PaymentPending

	if domain.Reviewable(req, payment) {
		reviewed, err := s.reviews.ReviewExists(ctx, requestID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		detail.Actions.CanReview = !reviewed
	}

	return detail, nil
}

func (s *CustomerServiceImpl) SubmitReview(ctx context.Context, sess *session.Session, in ReviewInput) (*domain.ServiceReview, error) {
	const op = "internal.service.customer.SubmitReview"
	log := s.log.With(slog.String("op", op), slog.String("request_id", in.RequestID))

	if !validRating(in.QualityRating) || !validRating(in.SpeedRating) {
		return nil, fmt.Errorf("%w: ratings must be between 1 and 5", apperrors.ErrValidation)
	}

	req, err := s.ownRequest(ctx, sess, in.RequestID)
	if err != nil {
		return nil, err
	}

	payment, err := s.optionalPayment(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !domain.Reviewable(req, payment) {
		return nil, apperrors.ErrNotReviewable
	}

	reviewed, err := s.reviews.ReviewExists(ctx, in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if reviewed {
		return nil, &apperrors.ReviewExistsError{RequestID: in.RequestID}
	}

	review, err := s.reviews.CreateReview(ctx, &domain.ServiceReview{
		RequestID:     in.RequestID,
		CustomerID:    sess.UserID,
		QualityRating: in.QualityRating,
		SpeedRating:   in.SpeedRating,
		Comment:       in.Comment,
	})
	if err != nil {
		return nil, err
	}

	log.Info("review submitted")

	return review, nil
}

// ownRequest hides requests of other customers behind ErrNotFound.
func (s *CustomerServiceImpl) ownRequest(ctx context.Context, sess *session.Session, requestID string) (*domain.ServiceRequest, error) {
	req, err := s.reqQuery.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != sess.UserID {
		return nil, fmt.Errorf("%w: request with id '%s'", apperrors.ErrNotFound, requestID)
	}

	return req, nil
}

func (s *CustomerServiceImpl) optionalPayment(ctx context.Context, requestID string) (*domain.ServicePayment, error) {
	return findPayment(ctx, s.payments, requestID)
}

func findPayment(ctx context.Context, payments repository.PaymentRepository, requestID string) (*domain.ServicePayment, error) {
	payment, err := payments.GetPaymentByRequestID(ctx, nil, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return payment, nil
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}
