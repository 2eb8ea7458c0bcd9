package scheduler

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/tucobet/internal/logging"
)

// ReaperTaskName is the name the idle session reaper is registered under
const ReaperTaskName = "session_reaper"

// IdleReaper removes sessions that have been idle for longer than maxIdle
type IdleReaper interface {
	ReapIdle(ctx context.Context, maxIdle time.Duration) (int, error)
}

// NewSessionReaper returns a scheduler with the idle session reaper registered
func NewSessionReaper(reaper IdleReaper, maxIdle, interval time.Duration, clock quartz.Clock, logger *logging.Logger) *Scheduler {
	s := NewScheduler(clock, logger)
	s.AddTask(ReaperTaskName, interval, func(ctx context.Context) error {
		reaped, err := reaper.ReapIdle(ctx, maxIdle)
		if err != nil {
			return err
		}
		if reaped > 0 {
			s.log.Info("Reaped %d sessions idle for more than %s", reaped, maxIdle)
		}
		return nil
	})
	return s
}
