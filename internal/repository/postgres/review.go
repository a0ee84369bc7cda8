package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *domain.ServiceReview) (*domain.ServiceReview, error) {
	const op = "internal.repository.postgres.CreateReview"

	query, args, err := r.sq.Insert("service_reviews").
		Columns("request_id", "customer_id", "quality_rating", "speed_rating", "comment").
		Values(review.RequestID, review.CustomerID, review.QualityRating, review.SpeedRating, review.Comment).
		Suffix("RETURNING id, request_id, customer_id, quality_rating, speed_rating, comment, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var created domain.ServiceReview
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return nil, &apperrors.ReviewExistsError{RequestID: review.RequestID}
		case codeForeignKeyViolation:
			return nil, fmt.Errorf("%s: %w: request with id '%s'", op, apperrors.ErrNotFound, review.RequestID)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	r.log.Info("review created",
		slog.String("op", op),
		slog.String("request_id", created.RequestID),
		slog.Int("quality_rating", created.QualityRating),
		slog.Int("speed_rating", created.SpeedRating),
	)

	return &created, nil
}

func (r *ReviewRepository) ReviewExists(ctx context.Context, requestID string) (bool, error) {
	const op = "internal.repository.postgres.ReviewExists"

	query, args, err := r.sq.Select("1").
		From("service_reviews").
		Where(sq.Eq{"request_id": requestID}).
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
