// README: Session eviction policy.
package session

import "time"

// EvictionPolicy expires sessions idle for longer than IdleTTL. Zero disables eviction.
type EvictionPolicy struct {
	IdleTTL time.Duration
}

func (p EvictionPolicy) Enabled() bool { return p.IdleTTL > 0 }

func (p EvictionPolicy) Cutoff(now time.Time) time.Time {
	return now.Add(-p.IdleTTL)
}

func (p EvictionPolicy) Expired(s *Session, now time.Time) bool {
	return p.Enabled() && s.UpdatedAt.Before(p.Cutoff(now))
}
