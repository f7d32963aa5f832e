package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the expired-session purge every 15 minutes.
const DefaultSweepSchedule = "@every 15m"

type sessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionSweeper periodically deletes expired sessions.
type SessionSweeper struct {
	cron   *cron.Cron
	purger sessionPurger
}

// NewSessionSweeper schedules the purge. schedule is any expression
// robfig/cron accepts, including "@every <duration>".
func NewSessionSweeper(purger sessionPurger, schedule string) (*SessionSweeper, error) {
	s := &SessionSweeper{cron: cron.New(), purger: purger}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the schedule in the background.
func (s *SessionSweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep purges expired sessions once.
func (s *SessionSweeper) Sweep() {
	n, err := s.purger.PurgeExpired(context.Background())
	if err != nil {
		slog.Error("sweep sessions", "error", err)
		return
	}
	if n > 0 {
		slog.Info("expired sessions purged", "count", n)
	}
}
