// README: Session store serializes all mutation of one session behind a per-session lock.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodiespot/internal/types"
)

var (
	ErrNotFound          = errors.New("session not found")
	ErrBadRequest        = errors.New("bad request")
	ErrInvalidTransition = errors.New("invalid dialogue transition")
)

// Repository persists sessions. Implementations store copies: callers may
// mutate what Get returns without affecting stored state until Save.
type Repository interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type Store struct {
	repo  Repository
	locks *keyedLocker
	now   func() time.Time
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo, locks: newKeyedLocker(), now: time.Now}
}

// WithSession loads or lazily creates the session, runs fn while holding the
// session's lock and saves the result. If fn fails nothing is saved.
func (s *Store) WithSession(ctx context.Context, id string, fn func(*Session) error) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrBadRequest
	}
	unlock, err := s.locks.lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	sess, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		sess = newSession(id, s.now())
	} else if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if err := fn(sess); err != nil {
		return err
	}
	sess.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetOrCreate returns a copy of the session, creating it on first use.
func (s *Store) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	var out *Session
	err := s.WithSession(ctx, id, func(sess *Session) error {
		out = sess.Clone()
		return nil
	})
	return out, err
}

// Get returns a copy of an existing session without creating one.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.Get(ctx, id)
}

func (s *Store) MergeSlots(ctx context.Context, id string, values types.BookingSlots, isModification bool) ([]string, error) {
	var changes []string
	err := s.WithSession(ctx, id, func(sess *Session) error {
		changes = sess.MergeSlots(values, isModification)
		return nil
	})
	return changes, err
}

func (s *Store) MissingFields(ctx context.Context, id string) ([]types.Field, error) {
	sess, err := s.GetOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.MissingFields(), nil
}

func (s *Store) CommitAndReset(ctx context.Context, id string) error {
	return s.WithSession(ctx, id, func(sess *Session) error {
		sess.CommitAndReset()
		return nil
	})
}

func (s *Store) Reset(ctx context.Context, id string) error {
	return s.WithSession(ctx, id, func(sess *Session) error {
		sess.Reset()
		return nil
	})
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
