package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homestay/infras/otel"
	"homestay/internal/domains/booking/service"
	"homestay/shared/constant"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// RefreshStatusJob keeps the stored status column in line with the status derived for today.
// Reads never depend on it; it only serves exports and ad-hoc SQL.
type RefreshStatusJob struct {
	bookings service.Booking
	otel     otel.Otel
}

func NewRefreshStatusJob(bookings service.Booking, otel otel.Otel) *RefreshStatusJob {
	return &RefreshStatusJob{
		bookings: bookings,
		otel:     otel,
	}
}

func (j *RefreshStatusJob) Handle(ctx context.Context, task *asynq.Task) (err error) {
	ctx, scope := j.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+"."+TaskBookingRefreshStatus)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var payload RefreshStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Str("task", task.Type()).Msg("discarding malformed task")

		return fmt.Errorf("malformed %s payload: %w", TaskBookingRefreshStatus, asynq.SkipRetry)
	}

	started := time.Now()

	updated, err := j.bookings.RefreshStatuses(ctx)
	if err != nil {
		log.Error().Err(err).Int("updated", updated).Msg("failed to refresh booking statuses")

		return fmt.Errorf("failed to refresh booking statuses: %w", err)
	}

	log.Info().
		Str("trigger", payload.Trigger).
		Int("updated", updated).
		Dur("took", time.Since(started)).
		Msg("booking statuses refreshed")

	return nil
}
