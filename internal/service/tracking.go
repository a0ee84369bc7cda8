package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/repository"
	"github.com/YusovID/service-dispatch/pkg/logger/sl"
)

const (
	trackingPrefix          = "360TS"
	trackingFallbackRetries = 5
)

type trackingAllocator struct {
	BaseService
	requests repository.RequestQueryRepository
}

// next asks the store for a tracking number. When the store procedure fails it
// falls back to 360TS<unix-ms>, re-checking uniqueness and appending -1, -2, ...
// until a free number is found. The unique constraint on insert stays the
// final arbiter.
func (a *trackingAllocator) next(ctx context.Context) (string, error) {
	const op = "internal.service.tracking.next"
	log := a.log.With(slog.String("op", op))

	number, err := a.requests.GenerateTrackingNumber(ctx)
	if err == nil && number != "" {
		return number, nil
	}

	log.Warn("tracking number procedure failed, using local fallback", sl.Err(err))

	base := fmt.Sprintf("%s%d", trackingPrefix, a.now().UnixMilli())

	for attempt := 0; attempt <= trackingFallbackRetries; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		exists, err := a.requests.TrackingNumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%s: failed to check tracking number: %w", op, err)
		}

		if !exists {
			trackingFallbacksTotal.Inc()
			return candidate, nil
		}

		log.Info("fallback tracking number taken", slog.String("tracking_number", candidate))
	}

	return "", fmt.Errorf("%s: %w", op, apperrors.ErrTrackingNumberUnavailable)
}
