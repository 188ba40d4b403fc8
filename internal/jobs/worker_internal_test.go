package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	startErr error
	started  bool
	stopped  bool
}

func (f *fakeProcessor) Start(asynq.Handler) error {
	f.started = true

	return f.startErr
}

func (f *fakeProcessor) Shutdown() { f.stopped = true }

type fakeCron struct {
	startErr error
	stopped  bool
}

func (f *fakeCron) Start() error { return f.startErr }

func (f *fakeCron) Shutdown() { f.stopped = true }

func TestWorker_Run(t *testing.T) {
	t.Run("clean shutdown on cancel", func(t *testing.T) {
		server, scheduler := &fakeProcessor{}, &fakeCron{}
		worker := &Worker{server: server, handler: asynq.NewServeMux(), scheduler: scheduler}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() { done <- worker.Run(ctx) }()

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("worker did not stop")
		}

		assert.True(t, server.started)
		assert.True(t, server.stopped)
		assert.True(t, scheduler.stopped)
	})

	t.Run("server fails to start", func(t *testing.T) {
		server, scheduler := &fakeProcessor{startErr: errors.New("redis down")}, &fakeCron{}
		worker := &Worker{server: server, handler: asynq.NewServeMux(), scheduler: scheduler}

		err := worker.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis down")
		assert.False(t, scheduler.stopped)
	})

	t.Run("scheduler fails to start", func(t *testing.T) {
		server, scheduler := &fakeProcessor{}, &fakeCron{startErr: errors.New("bad cron")}
		worker := &Worker{server: server, handler: asynq.NewServeMux(), scheduler: scheduler}

		err := worker.Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad cron")
		assert.True(t, server.stopped)
	})
}
