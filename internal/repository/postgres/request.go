package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/jmoiron/sqlx"
)

// appointmentLayout is the Postgres template the customer's "DD.MM.YYYY" date
// and "HH:MM" time are parsed with once joined and suffixed with ":00".
const appointmentLayout = "DD.MM.YYYY HH24:MI:SS"

var requestColumns = []string{
	"id", "tracking_number", "customer_id", "provider_id", "category_id", "service_group",
	"description", "appointment_date", "status", "address", "created_at", "updated_at",
}

type RequestRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewRequestRepository(db *sqlx.DB, log *slog.Logger) *RequestRepository {
	return &RequestRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RequestRepository) GenerateTrackingNumber(ctx context.Context) (string, error) {
	const op = "internal.repository.postgres.GenerateTrackingNumber"

	var trackingNumber string
	if err := r.db.GetContext(ctx, &trackingNumber, "SELECT generate_tracking_number()"); err != nil {
		return "", fmt.Errorf("%s: failed to call procedure: %w", op, err)
	}

	return trackingNumber, nil
}

func (r *RequestRepository) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	const op = "internal.repository.postgres.TrackingNumberExists"

	query, args, err := r.sq.Select("1").
		From("service_requests").
		Where(sq.Eq{"tracking_number": trackingNumber}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return exists, nil
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req domain.NewRequest) (*domain.ServiceRequest, error) {
	const op = "internal.repository.postgres.CreateRequest"
	log := r.log.With(slog.String("op", op), slog.String("tracking_number", req.TrackingNumber))

	query, args, err := r.sq.Insert("service_requests").
		Columns("tracking_number", "customer_id", "category_id", "service_group",
			"description", "appointment_date", "status", "address").
		Values(req.TrackingNumber, req.CustomerID, req.CategoryID, req.Group,
			req.Description, sq.Expr("to_timestamp(?, ?)", req.Appointment, appointmentLayout),
			domain.StatusPending, req.Address).
		Suffix("RETURNING " + joinColumns(requestColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var created domain.ServiceRequest
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		switch {
		case isInvalidAppointment(err):
			return nil, fmt.Errorf("%s: %w: '%s'", op, apperrors.ErrInvalidAppointment, req.Appointment)
		case pqCode(err) == codeUniqueViolation:
			return nil, fmt.Errorf("%s: %w: tracking number '%s'", op, apperrors.ErrAlreadyExists, req.TrackingNumber)
		case pqCode(err) == codeForeignKeyViolation:
			return nil, fmt.Errorf("%s: %w: category with id '%s'", op, apperrors.ErrNotFound, req.CategoryID)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	log.Info("service request created", slog.String("request_id", created.ID))

	return &created, nil
}

func (r *RequestRepository) GetRequestByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	const op = "internal.repository.postgres.GetRequestByID"

	query, args, err := r.sq.Select(requestColumns...).
		From("service_requests").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var req domain.ServiceRequest
	if err := r.db.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get request: %w", op, err)
	}

	return &req, nil
}

func (r *RequestRepository) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, id string) (*domain.ServiceRequest, error) {
	const op = "internal.repository.postgres.GetRequestByIDWithLock"

	query, args, err := r.sq.Select(requestColumns...).
		From("service_requests").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var req domain.ServiceRequest
	if err := tx.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get request with lock: %w", op, err)
	}

	return &req, nil
}

func (r *RequestRepository) ListRequestsByCustomer(ctx context.Context, customerID string) ([]domain.ServiceRequest, error) {
	const op = "internal.repository.postgres.ListRequestsByCustomer"

	query, args, err := r.sq.Select(requestColumns...).
		From("service_requests").
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	requests := []domain.ServiceRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return requests, nil
}

func (r *RequestRepository) ListProviderQueue(ctx context.Context, providerID string) ([]domain.ServiceRequest, error) {
	const op = "internal.repository.postgres.ListProviderQueue"

	query, args, err := r.sq.Select(requestColumns...).
		From("service_requests").
		Where(sq.Or{
			sq.Eq{"provider_id": providerID},
			sq.Eq{"status": domain.StatusPending},
		}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	requests := []domain.ServiceRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return requests, nil
}

func (r *RequestRepository) ClaimRequest(ctx context.Context, requestID string, providerID string) (*domain.ServiceRequest, error) {
	const op = "internal.repository.postgres.ClaimRequest"
	log := r.log.With(slog.String("op", op), slog.String("request_id", requestID))

	query, args, err := r.sq.Update("service_requests").
		Set("provider_id", providerID).
		Set("status", domain.StatusAssigned).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": requestID, "status": domain.StatusPending}).
		Suffix("RETURNING " + joinColumns(requestColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var claimed domain.ServiceRequest
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&claimed); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
		}

		// Nothing matched: either the id is unknown or another provider won.
		if _, getErr := r.GetRequestByID(ctx, requestID); getErr != nil {
			return nil, getErr
		}

		log.Info("claim lost, request is no longer pending")

		return nil, fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrAlreadyClaimed, requestID)
	}

	log.Info("request claimed", slog.String("provider_id", providerID))

	return &claimed, nil
}

func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, id string, from, to domain.RequestStatus) error {
	const op = "internal.repository.postgres.UpdateRequestStatus"

	query, args, err := r.sq.Update("service_requests").
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return &apperrors.TransitionError{From: string(from), To: string(to)}
	}

	return nil
}

func (r *RequestRepository) CompleteRequest(ctx context.Context, tx *sqlx.Tx, id string) error {
	const op = "internal.repository.postgres.CompleteRequest"

	query, args, err := r.sq.Update("service_requests").
		Set("status", domain.StatusCompleted).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": domain.StatusInProgress}).
		Where("EXISTS (SELECT 1 FROM service_payments p WHERE p.request_id = service_requests.id)").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrPaymentRequired, id)
	}

	return nil
}
