package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type StatsRepository struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StatsRepository) CountProfiles(ctx context.Context) (int, error) {
	const op = "internal.repository.postgres.CountProfiles"

	return r.count(ctx, op, r.sq.Select("COUNT(*)").From("profiles"))
}

func (r *StatsRepository) CountRequests(ctx context.Context, status *domain.RequestStatus) (int, error) {
	const op = "internal.repository.postgres.CountRequests"

	builder := r.sq.Select("COUNT(*)").From("service_requests")
	if status != nil {
		builder = builder.Where(sq.Eq{"status": *status})
	}

	return r.count(ctx, op, builder)
}

func (r *StatsRepository) CountActiveProviders(ctx context.Context) (int, error) {
	const op = "internal.repository.postgres.CountActiveProviders"

	return r.count(ctx, op, r.sq.Select("COUNT(*)").From("service_providers").Where(sq.Eq{"is_active": true}))
}

func (r *StatsRepository) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	const op = "internal.repository.postgres.SumPaidRevenue"

	query, args, err := r.sq.Select("COALESCE(SUM(total_amount), 0)").
		From("service_payments").
		Where(sq.Eq{"payment_status": domain.PaymentPaid}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var sum decimal.Decimal
	if err := r.db.GetContext(ctx, &sum, query, args...); err != nil {
		return decimal.Zero, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return sum, nil
}

func (r *StatsRepository) count(ctx context.Context, op string, builder sq.SelectBuilder) (int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return n, nil
}
