package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucobet/internal/logging"
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
	wg      sync.WaitGroup
}

// NewScheduler creates a new scheduler
func NewScheduler(clock quartz.Clock, logger *logging.Logger) *Scheduler {
	return &Scheduler{
		clock: clock,
		log:   logger.WithPrefix("scheduler"),
		tasks: make([]*Task, 0),
	}
}

// AddTask adds a task to the scheduler. Tasks added after Start run on the next Start.
func (s *Scheduler) AddTask(name string, interval time.Duration, fn func(context.Context) error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
}

// Start starts the scheduler
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
		// Tickers exist before Start returns so no tick is missed
		ticker := s.clock.NewTicker(task.Interval, "scheduler", task.Name)
		s.wg.Add(1)
		go s.runTask(ctx, task, ticker)
	}

	s.log.Info("Scheduler started with %d tasks", len(s.tasks))
}

// Stop stops the scheduler and waits for running tasks to return
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mutex.Unlock()

	s.wg.Wait()
	s.log.Info("Scheduler stopped")
}

// Run starts the scheduler and blocks until ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start(ctx)
	<-ctx.Done()
	s.Stop()
	return nil
}

// runTask runs a task at the specified interval
func (s *Scheduler) runTask(ctx context.Context, task *Task, ticker *quartz.Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()

	// Run the task immediately on startup
	s.log.Debug("Running task %s immediately on startup", task.Name)
	s.execute(ctx, task)

	for {
		select {
		case <-ticker.C:
			s.log.Debug("Running scheduled task: %s", task.Name)
			s.execute(ctx, task)
		case <-ctx.Done():
			s.log.Debug("Task %s stopped", task.Name)
			return
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, task *Task) {
	if err := task.Fn(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("Error running task %s: %v", task.Name, err)
	}
}
