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

type CatalogRepository struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CatalogRepository) ListCategoriesByGroup(ctx context.Context, group domain.ServiceGroup) ([]domain.ServiceCategory, error) {
	const op = "internal.repository.postgres.ListCategoriesByGroup"

	query, args, err := r.sq.Select("id", "name", "group_type", "icon", "created_at").
		From("service_categories").
		Where(sq.Eq{"group_type": group}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	categories := []domain.ServiceCategory{}
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return categories, nil
}

func (r *CatalogRepository) GetCategoryByID(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	const op = "internal.repository.postgres.GetCategoryByID"

	query, args, err := r.sq.Select("id", "name", "group_type", "icon", "created_at").
		From("service_categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var c domain.ServiceCategory
	if err := r.db.GetContext(ctx, &c, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: category with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &c, nil
}
