// Package scheduler runs periodic maintenance tasks on a quartz clock.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/fadedpez/cardroyale/internal/logging"
)

// Task represents a scheduled task
type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(context.Context) error
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	clock   quartz.Clock
	log     *logging.Logger
	tasks   []*Task
	running bool
	mutex   sync.Mutex
	cancel  context.CancelFunc
}

// NewScheduler creates a new scheduler
func NewScheduler(clock quartz.Clock, logger *logging.Logger) *Scheduler {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Scheduler{
		clock: clock,
		log:   logger.Or().WithPrefix("scheduler"),
		tasks: make([]*Task, 0),
	}
}

// AddTask adds a task to the scheduler. Tasks added after Start wait for the
// next Start.
func (s *Scheduler) AddTask(name string, interval time.Duration, fn func(context.Context) error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
}

// Tasks returns the registered task names in order
func (s *Scheduler) Tasks() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	names := make([]string, 0, len(s.tasks))
	for _, task := range s.tasks {
		names = append(names, task.Name)
	}
	return names
}

// Start runs every task once, then on its interval until ctx is done or Stop
// is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, task := range s.tasks {
		s.log.Debug("Running task %s immediately on startup", task.Name)
		s.run(ctx, task)

		if task.Interval <= 0 {
			continue
		}
		task := task
		s.clock.TickerFunc(ctx, task.Interval, func() error {
			s.log.Debug("Running scheduled task: %s", task.Name)
			s.run(ctx, task)
			// A failing task keeps its schedule
			return nil
		}, "scheduler", task.Name)
	}

	s.log.Info("Scheduler started with %d tasks", len(s.tasks))
}

// Running reports whether Start has been called without a matching Stop
func (s *Scheduler) Running() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, task *Task) {
	if err := task.Fn(ctx); err != nil {
		s.log.Error("Error running task %s: %v", task.Name, err)
	}
}
