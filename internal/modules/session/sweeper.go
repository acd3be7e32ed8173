// README: Cron-driven sweeper applying the eviction policy to repositories that need it.
package session

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Evictable is implemented by repositories without native expiry.
type Evictable interface {
	EvictIdle(ctx context.Context, policy EvictionPolicy, now time.Time) (int, error)
}

type Sweeper struct {
	repo    Repository
	policy  EvictionPolicy
	cron    *cron.Cron
	logger  *zap.Logger
	now     func() time.Time
	onSweep func(evicted, remaining int)
}

// NewSweeper schedules a sweep on the given cron spec (e.g. "@every 5m").
func NewSweeper(repo Repository, policy EvictionPolicy, spec string, logger *zap.Logger) (*Sweeper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sweeper{
		repo:   repo,
		policy: policy,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.SweepOnce(context.Background()); err != nil {
			s.logger.Warn("session sweep failed", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// OnSweep registers a callback invoked after every sweep.
func (s *Sweeper) OnSweep(fn func(evicted, remaining int)) {
	s.onSweep = fn
}

// SweepOnce evicts idle sessions and reports how many were removed.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	evicted := 0
	if ev, ok := s.repo.(Evictable); ok && s.policy.Enabled() {
		n, err := ev.EvictIdle(ctx, s.policy, s.now())
		if err != nil {
			return 0, err
		}
		evicted = n
	}
	remaining, err := s.repo.Count(ctx)
	if err != nil {
		return evicted, err
	}
	if evicted > 0 {
		s.logger.Info("evicted idle sessions", zap.Int("evicted", evicted), zap.Int("remaining", remaining))
	}
	if s.onSweep != nil {
		s.onSweep(evicted, remaining)
	}
	return evicted, nil
}

// Run starts the schedule and blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
