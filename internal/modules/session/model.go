// README: Conversation session aggregate and its slot-merge rules.
package session

import (
	"fmt"
	"strings"
	"time"

	"foodiespot/internal/types"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"timestamp"`
}

type Session struct {
	ID             string              `json:"id"`
	Booking        types.BookingSlots  `json:"booking"`
	LastSuccessful *types.BookingSlots `json:"last_successful,omitempty"`
	State          types.DialogueState `json:"state"`
	LastIntent     string              `json:"last_intent,omitempty"`
	History        []Turn              `json:"history"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     types.StateInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	if s.LastSuccessful != nil {
		snap := *s.LastSuccessful
		c.LastSuccessful = &snap
	}
	c.History = make([]Turn, len(s.History))
	copy(c.History, s.History)
	return &c
}

func (s *Session) Append(role Role, text string, at time.Time) {
	s.History = append(s.History, Turn{Role: role, Text: text, At: at})
}

// Transition moves the dialogue state, rejecting moves the table does not allow.
func (s *Session) Transition(to types.DialogueState) error {
	if s.State == to {
		return nil
	}
	if !types.CanTransition(s.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
	}
	s.State = to
	return nil
}

// BeginModification enters MODIFYING. The last successful booking is restored
// only when nothing has been collected for the current booking, so a fresh
// booking in progress is never overwritten by an older one.
func (s *Session) BeginModification() (restored bool) {
	if s.LastSuccessful != nil && s.Booking.Empty() {
		s.Booking = *s.LastSuccessful
		restored = true
	}
	s.State = types.StateModifying
	return restored
}

// MergeSlots copies every field set in values into the current booking and
// describes each change. A modification that changes nothing leaves the
// session untouched, including its dialogue state.
func (s *Session) MergeSlots(values types.BookingSlots, isModification bool) []string {
	next := *s
	if isModification {
		next.BeginModification()
	}
	var changes []string
	for _, f := range values.Present() {
		old := next.Booking.Value(f)
		next.Booking.Set(f, values)
		v := next.Booking.Value(f)
		if old == v {
			continue
		}
		if isModification && old != "" {
			changes = append(changes, fmt.Sprintf("%s: %s → %s", f, old, v))
		} else {
			changes = append(changes, fmt.Sprintf("Added %s: %s", f, v))
		}
	}
	if isModification && len(changes) == 0 {
		return nil
	}
	*s = next
	return changes
}

func (s *Session) MissingFields() []types.Field {
	return s.Booking.Missing()
}

// CommitAndReset snapshots the booking as the last successful one and clears it.
func (s *Session) CommitAndReset() {
	snap := s.Booking
	s.LastSuccessful = &snap
	s.Booking = types.BookingSlots{}
	s.State = types.StateCompleted
}

// Reset starts over: no partial booking, no snapshot, INITIAL state. History is kept.
func (s *Session) Reset() {
	s.Booking = types.BookingSlots{}
	s.LastSuccessful = nil
	s.State = types.StateInitial
}

// Summary renders the known fields, e.g. "Restaurant: Ocean View, Time: 19:00".
func (s *Session) Summary() string {
	return Summarize(s.Booking)
}

func Summarize(b types.BookingSlots) string {
	var parts []string
	for _, f := range b.Present() {
		parts = append(parts, fieldLabel(f)+": "+b.Value(f))
	}
	if len(parts) == 0 {
		return NoDetails
	}
	return strings.Join(parts, ", ")
}

const NoDetails = "No booking details yet"

func fieldLabel(f types.Field) string {
	switch f {
	case types.FieldRestaurant:
		return "Restaurant"
	case types.FieldDate:
		return "Date"
	case types.FieldTime:
		return "Time"
	case types.FieldPartySize:
		return "Party size"
	}
	return string(f)
}
