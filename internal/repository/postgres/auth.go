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

type AuthRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAuthRepository(db *sqlx.DB, log *slog.Logger) *AuthRepository {
	return &AuthRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AuthRepository) CreateUser(ctx context.Context, tx *sqlx.Tx, email string, passwordHash string) (*domain.AuthUser, error) {
	const op = "internal.repository.postgres.CreateUser"

	query, args, err := r.sq.Insert("auth_users").
		Columns("email", "password_hash").
		Values(email, passwordHash).
		Suffix("RETURNING id, email, password_hash, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var user domain.AuthUser
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&user); err != nil {
		if pqCode(err) == codeUniqueViolation {
			return nil, &apperrors.EmailTakenError{Email: email}
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	r.log.Info("auth user created", slog.String("op", op), slog.String("user_id", user.ID))

	return &user, nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*domain.AuthUser, error) {
	const op = "internal.repository.postgres.GetUserByEmail"

	query, args, err := r.sq.Select("id", "email", "password_hash", "created_at").
		From("auth_users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.AuthUser
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with email '%s'", op, apperrors.ErrNotFound, email)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &user, nil
}
