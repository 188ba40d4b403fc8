package jobs

import (
	"context"
	"fmt"

	"homestay/config"
	"homestay/shared/timezone"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Worker runs queued tasks and registers the periodic ones.
type Worker struct {
	server    processor
	handler   asynq.Handler
	scheduler cron
}

func NewWorker(cfg *config.Config, redisOpt asynq.RedisClientOpt, refresh *RefreshStatusJob) (*Worker, error) {
	queue := cfg.Worker.StatusRefreshQueue

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Queues:      map[string]int{queue: 1},
		Logger:      logger{},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBookingRefreshStatus, refresh.Handle)

	task, err := NewRefreshStatusTask(TriggerSchedule)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: timezone.GetLocation(),
		Logger:   logger{},
	})

	if _, err := scheduler.Register(cfg.Worker.StatusRefreshCron, task, asynq.Queue(queue), asynq.MaxRetry(3), asynq.Unique(cronUniqueTTL)); err != nil {
		return nil, fmt.Errorf("failed to schedule %s: %w", TaskBookingRefreshStatus, err)
	}

	return &Worker{server: server, handler: mux, scheduler: scheduler}, nil
}

// processor and cron are the parts of asynq the worker drives.
type processor interface {
	Start(handler asynq.Handler) error
	Shutdown()
}

type cron interface {
	Start() error
	Shutdown()
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.handler); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()

		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	log.Info().Msg("worker started")

	<-ctx.Done()

	w.scheduler.Shutdown()
	w.server.Shutdown()

	log.Info().Msg("worker stopped")

	return nil
}
