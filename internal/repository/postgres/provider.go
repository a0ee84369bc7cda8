package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ProviderRepository struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewProviderRepository(db *sqlx.DB) *ProviderRepository {
	return &ProviderRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProviderRepository) GetProviderByUserID(ctx context.Context, userID string) (*domain.ServiceProvider, error) {
	const op = "internal.repository.postgres.GetProviderByUserID"

	query, args, err := r.sq.Select("id", "user_id", "company_name", "tax_number",
		"rating", "total_services", "is_active", "created_at").
		From("service_providers").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var p domain.ServiceProvider
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: provider for user '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &p, nil
}

func (r *ProviderRepository) IncrementCompleted(ctx context.Context, tx *sqlx.Tx, providerID string) error {
	const op = "internal.repository.postgres.IncrementCompleted"

	query, args, err := r.sq.Update("service_providers").
		Set("total_services", sq.Expr("total_services + 1")).
		Where(sq.Eq{"id": providerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: provider with id '%s'", op, apperrors.ErrNotFound, providerID)
	}

	return nil
}
