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

var profileColumns = []string{
	"id", "user_type", "full_name", "phone", "city", "district", "neighborhood",
	"site_name", "block", "floor_apartment", "created_at", "updated_at",
}

type ProfileRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewProfileRepository(db *sqlx.DB, log *slog.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProfileRepository) CreateProfile(ctx context.Context, tx *sqlx.Tx, p *domain.Profile) (*domain.Profile, error) {
	const op = "internal.repository.postgres.CreateProfile"

	query, args, err := r.sq.Insert("profiles").
		Columns("id", "user_type", "full_name", "phone", "city", "district",
			"neighborhood", "site_name", "block", "floor_apartment").
		Values(p.ID, p.Role, p.FullName, p.Phone, p.City, p.District,
			p.Neighborhood, p.SiteName, p.Block, p.FloorApartment).
		Suffix("RETURNING " + joinColumns(profileColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var created domain.Profile
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return nil, fmt.Errorf("%s: %w: profile '%s'", op, apperrors.ErrAlreadyExists, p.ID)
		case codeForeignKeyViolation:
			return nil, fmt.Errorf("%s: %w: identity '%s'", op, apperrors.ErrNotFound, p.ID)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return &created, nil
}

func (r *ProfileRepository) GetProfileByID(ctx context.Context, id string) (*domain.Profile, error) {
	const op = "internal.repository.postgres.GetProfileByID"

	query, args, err := r.sq.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var p domain.Profile
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: profile with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &p, nil
}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	const op = "internal.repository.postgres.UpdateProfile"
	log := r.log.With(slog.String("op", op), slog.String("profile_id", p.ID))

	query, args, err := r.sq.Update("profiles").
		SetMap(map[string]interface{}{
			"full_name":       p.FullName,
			"phone":           p.Phone,
			"city":            p.City,
			"district":        p.District,
			"neighborhood":    p.Neighborhood,
			"site_name":       p.SiteName,
			"block":           p.Block,
			"floor_apartment": p.FloorApartment,
			"updated_at":      sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": p.ID}).
		Suffix("RETURNING " + joinColumns(profileColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var updated domain.Profile
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: profile with id '%s'", op, apperrors.ErrNotFound, p.ID)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	log.Info("profile updated")

	return &updated, nil
}
