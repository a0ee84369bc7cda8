package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/repository"
)

type AdminService interface {
	Stats(ctx context.Context) (*domain.AdminStats, error)
}

type AdminServiceImpl struct {
	log   *slog.Logger
	stats repository.StatsRepository
}

func NewAdminService(log *slog.Logger, stats repository.StatsRepository) *AdminServiceImpl {
	return &AdminServiceImpl{log: log, stats: stats}
}

// Stats recomputes every figure on each call.
func (s *AdminServiceImpl) Stats(ctx context.Context) (*domain.AdminStats, error) {
	const op = "internal.service.admin.Stats"

	var (
		stats     domain.AdminStats
		err       error
		pending   = domain.StatusPending
		completed = domain.StatusCompleted
	)

	if stats.TotalUsers, err = s.stats.CountProfiles(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if stats.TotalRequests, err = s.stats.CountRequests(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if stats.PendingRequests, err = s.stats.CountRequests(ctx, &pending); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if stats.CompletedRequests, err = s.stats.CountRequests(ctx, &completed); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if stats.TotalRevenue, err = s.stats.SumPaidRevenue(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if stats.TotalProviders, err = s.stats.CountActiveProviders(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &stats, nil
}
