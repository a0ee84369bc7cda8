package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/repository"
	"github.com/YusovID/service-dispatch/internal/session"
)

// Card is the captured card form. Only its format is checked, by the
// transport layer; the simulated payment never looks at the values.
type Card struct {
	Number string
	Name   string
	Expiry string
	CVV    string
}

type PaymentService interface {
	GetPayment(ctx context.Context, sess *session.Session, paymentID string) (*domain.ServicePayment, error)
	PayByCard(ctx context.Context, sess *session.Session, paymentID string, card Card) (*domain.ServicePayment, error)
}

type PaymentServiceImpl struct {
	BaseService
	payments repository.PaymentRepository
	reqQuery repository.RequestQueryRepository
	delay    time.Duration
	after    func(time.Duration) <-chan time.Time
}

func NewPaymentService(
	db Transactor,
	log *slog.Logger,
	payments repository.PaymentRepository,
	reqQuery repository.RequestQueryRepository,
	delay time.Duration,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		BaseService: NewBaseService(db, log),
		payments:    payments,
		reqQuery:    reqQuery,
		delay:       delay,
		after:       time.After,
	}
}

func (s *PaymentServiceImpl) GetPayment(ctx context.Context, sess *session.Session, paymentID string) (*domain.ServicePayment, error) {
	payment, err := s.payments.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	req, err := s.reqQuery.GetRequestByID(ctx, payment.RequestID)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != sess.UserID {
		return nil, fmt.Errorf("%w: payment with id '%s'", apperrors.ErrNotFound, paymentID)
	}

	return payment, nil
}

// PayByCard simulates a card charge: after a fixed delay the payment is
// marked paid. The wait ends early if ctx is cancelled.
func (s *PaymentServiceImpl) PayByCard(ctx context.Context, sess *session.Session, paymentID string, _ Card) (*domain.ServicePayment, error) {
	const op = "internal.service.payment.PayByCard"
	log := s.log.With(slog.String("op", op), slog.String("payment_id", paymentID))

	payment, err := s.GetPayment(ctx, sess, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status != domain.PaymentPending {
		return nil, fmt.Errorf("%w: payment is '%s'", apperrors.ErrPaymentNotPending, payment.Status)
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	case <-s.after(s.delay):
	}

	paid, err := s.payments.MarkPaymentPaid(ctx, paymentID, domain.PaymentMethodCreditCard, s.now())
	if err != nil {
		return nil, err
	}

	paymentsPaidTotal.Inc()
	log.Info("payment completed", slog.String("total_amount", paid.TotalAmount.String()))

	return paid, nil
}
