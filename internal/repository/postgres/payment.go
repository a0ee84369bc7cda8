package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/jmoiron/sqlx"
)

var paymentColumns = []string{
	"id", "request_id", "service_fee", "labor_cost", "material_cost", "total_amount",
	"payment_status", "payment_method", "paid_at", "created_at",
}

type PaymentRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewPaymentRepository(db *sqlx.DB, log *slog.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PaymentRepository) GetPaymentByID(ctx context.Context, id string) (*domain.ServicePayment, error) {
	const op = "internal.repository.postgres.GetPaymentByID"

	query, args, err := r.sq.Select(paymentColumns...).
		From("service_payments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var p domain.ServicePayment
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: payment with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get payment: %w", op, err)
	}

	return &p, nil
}

func (r *PaymentRepository) GetPaymentByRequestID(ctx context.Context, ext sqlx.ExtContext, requestID string) (*domain.ServicePayment, error) {
	const op = "internal.repository.postgres.GetPaymentByRequestID"

	query, args, err := r.sq.Select(paymentColumns...).
		From("service_payments").
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if ext == nil {
		ext = r.db
	}

	var p domain.ServicePayment
	if err := sqlx.GetContext(ctx, ext, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: payment for request '%s'", op, apperrors.ErrNotFound, requestID)
		}

		return nil, fmt.Errorf("%s: failed to get payment: %w", op, err)
	}

	return &p, nil
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, tx *sqlx.Tx, requestID string, quote domain.Quote) (*domain.ServicePayment, error) {
	const op = "internal.repository.postgres.CreatePayment"

	query, args, err := r.sq.Insert("service_payments").
		Columns("request_id", "service_fee", "labor_cost", "material_cost", "total_amount", "payment_status").
		Values(requestID, quote.ServiceFee, quote.LaborCost, quote.MaterialCost, quote.Total(), domain.PaymentPending).
		Suffix("RETURNING " + joinColumns(paymentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var p domain.ServicePayment
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&p); err != nil {
		switch code := pqCode(err); code {
		case codeUniqueViolation:
			return nil, fmt.Errorf("%s: %w: payment for request '%s'", op, apperrors.ErrAlreadyExists, requestID)
		case codeForeignKeyViolation:
			return nil, fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrNotFound, requestID)
		case codeCheckViolation, codeNumericOutOfRange:
			return nil, fmt.Errorf("%s: %w: amounts rejected by the store (%s)", op, apperrors.ErrValidation, code)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return &p, nil
}

func (r *PaymentRepository) UpdatePaymentAmounts(ctx context.Context, tx *sqlx.Tx, paymentID string, quote domain.Quote) (*domain.ServicePayment, error) {
	const op = "internal.repository.postgres.UpdatePaymentAmounts"

	query, args, err := r.sq.Update("service_payments").
		Set("service_fee", quote.ServiceFee).
		Set("labor_cost", quote.LaborCost).
		Set("material_cost", quote.MaterialCost).
		Set("total_amount", quote.Total()).
		Where(sq.Eq{"id": paymentID}).
		Suffix("RETURNING " + joinColumns(paymentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var p domain.ServicePayment
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: payment with id '%s'", op, apperrors.ErrNotFound, paymentID)
		}

		if code := pqCode(err); code == codeCheckViolation || code == codeNumericOutOfRange {
			return nil, fmt.Errorf("%s: %w: amounts rejected by the store (%s)", op, apperrors.ErrValidation, code)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &p, nil
}

func (r *PaymentRepository) MarkPaymentPaid(ctx context.Context, paymentID string, method string, paidAt time.Time) (*domain.ServicePayment, error) {
	const op = "internal.repository.postgres.MarkPaymentPaid"
	log := r.log.With(slog.String("op", op), slog.String("payment_id", paymentID))

	query, args, err := r.sq.Update("service_payments").
		Set("payment_status", domain.PaymentPaid).
		Set("payment_method", method).
		Set("paid_at", paidAt).
		Where(sq.Eq{"id": paymentID, "payment_status": domain.PaymentPending}).
		Suffix("RETURNING " + joinColumns(paymentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var p domain.ServicePayment
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&p); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
		}

		if _, getErr := r.GetPaymentByID(ctx, paymentID); getErr != nil {
			return nil, getErr
		}

		return nil, fmt.Errorf("%s: %w: payment with id '%s'", op, apperrors.ErrPaymentNotPending, paymentID)
	}

	log.Info("payment marked paid", slog.String("total_amount", p.TotalAmount.String()))

	return &p, nil
}
