package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

// Task is a one-shot unit of background work. It should return when ctx is cancelled.
type Task func(ctx context.Context) error

// Supervisor runs background tasks on their own goroutines and waits for them on Stop.
// A failing or panicking task is logged and never takes the process down.
type Supervisor struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *logger_i.Logger
}

func NewSupervisor(ctx context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(ctx)
	return &Supervisor{
		ctx:    ctx,
		cancel: cancel,
		logger: logger_i.NewLogger("Supervisor"),
	}
}

// Go starts task. done, when not nil, receives the task's result.
func (s *Supervisor) Go(name string, task Task, done func(error)) {
	s.wg.Add(1)
	metrics.IncrementBackgroundTasks()
	s.logger.Info("Starting background task", "task", name)

	go func() {
		defer s.wg.Done()
		defer metrics.DecrementBackgroundTasks()

		start := time.Now()
		err := s.run(task)
		if err != nil {
			s.logger.Error("Background task failed", "task", name, "error", err, "elapsed", time.Since(start))
		} else {
			s.logger.Info("Background task finished", "task", name, "elapsed", time.Since(start))
		}
		if done != nil {
			done(err)
		}
	}()
}

func (s *Supervisor) run(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(s.ctx)
}

// Stop cancels running tasks and waits up to timeout for them to return.
func (s *Supervisor) Stop(timeout time.Duration) bool {
	s.cancel()

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		s.logger.Info("All background tasks stopped")
		return true
	case <-time.After(timeout):
		s.logger.Warn("Background tasks still running after timeout", "timeout", timeout)
		return false
	}
}
