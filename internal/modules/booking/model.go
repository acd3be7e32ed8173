// README: Confirmed booking record and commit outcomes.
package booking

import (
	"time"

	"foodiespot/internal/types"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
)

// Booking is created only by a successful commit and never mutated afterwards.
type Booking struct {
	ID             types.ID  `json:"id"`
	RestaurantName string    `json:"restaurant_name"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	PartySize      int       `json:"party_size"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Outcome classifies a commit attempt. Every value except OutcomeConfirmed is a
// recoverable rejection that the dialogue turns into a prompt.
type Outcome string

const (
	OutcomeConfirmed         Outcome = "confirmed"
	OutcomeIncomplete        Outcome = "incomplete"
	OutcomeUnknownRestaurant Outcome = "unknown_restaurant"
	OutcomeTimeUnavailable   Outcome = "time_unavailable"
	OutcomeOverCapacity      Outcome = "over_capacity"
)

type CommitResult struct {
	Outcome Outcome
	Message string
	Booking *Booking
}

func (r CommitResult) Success() bool { return r.Outcome == OutcomeConfirmed }

// BookingID is empty unless the commit succeeded.
func (r CommitResult) BookingID() types.ID {
	if r.Booking == nil {
		return ""
	}
	return r.Booking.ID
}
