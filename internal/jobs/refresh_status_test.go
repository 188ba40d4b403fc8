package jobs_test

import (
	"context"
	"errors"
	"testing"

	otelMocks "homestay/infras/otel/mocks"
	"homestay/internal/domains/booking/service/mocks"
	"homestay/internal/jobs"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockBooking, *jobs.RefreshStatusJob) {
	t.Helper()

	bookings := mocks.NewMockBooking(gomock.NewController(t))

	return bookings, jobs.NewRefreshStatusJob(bookings, otelMocks.NewOtel())
}

func TestNewRefreshStatusTask(t *testing.T) {
	task, err := jobs.NewRefreshStatusTask(jobs.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, jobs.TaskBookingRefreshStatus, task.Type())
	assert.JSONEq(t, `{"trigger":"manual"}`, string(task.Payload()))
}

func TestRefreshStatusJob_Handle(t *testing.T) {
	t.Run("refreshes", func(t *testing.T) {
		bookings, job := setup(t)

		bookings.EXPECT().RefreshStatuses(gomock.Any()).Return(3, nil)

		task, err := jobs.NewRefreshStatusTask(jobs.TriggerSchedule)
		require.NoError(t, err)

		assert.NoError(t, job.Handle(context.Background(), task))
	})

	t.Run("failure is retried", func(t *testing.T) {
		bookings, job := setup(t)

		bookings.EXPECT().RefreshStatuses(gomock.Any()).Return(1, assert.AnError)

		task, err := jobs.NewRefreshStatusTask(jobs.TriggerSchedule)
		require.NoError(t, err)

		err = job.Handle(context.Background(), task)

		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("malformed payload is not retried", func(t *testing.T) {
		_, job := setup(t)

		err := job.Handle(context.Background(), asynq.NewTask(jobs.TaskBookingRefreshStatus, []byte("{")))

		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
