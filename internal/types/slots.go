// README: Booking slot value object shared by extraction, session, and booking modules.
package types

import "strconv"

// Field names one slot of a booking.
type Field string

const (
	FieldRestaurant Field = "restaurant"
	FieldDate       Field = "date"
	FieldTime       Field = "time"
	FieldPartySize  Field = "party size"
)

// Fields lists every slot in prompt order.
var Fields = []Field{FieldRestaurant, FieldDate, FieldTime, FieldPartySize}

// BookingSlots is a partial or complete booking. The zero value of a field means unset;
// PartySize is only meaningful when positive.
type BookingSlots struct {
	Restaurant string `json:"restaurant_name,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	PartySize  int    `json:"party_size,omitempty"`
}

func (b BookingSlots) Has(f Field) bool {
	switch f {
	case FieldRestaurant:
		return b.Restaurant != ""
	case FieldDate:
		return b.Date != ""
	case FieldTime:
		return b.Time != ""
	case FieldPartySize:
		return b.PartySize > 0
	}
	return false
}

// Value renders a field as text; empty when unset.
func (b BookingSlots) Value(f Field) string {
	if !b.Has(f) {
		return ""
	}
	switch f {
	case FieldRestaurant:
		return b.Restaurant
	case FieldDate:
		return b.Date
	case FieldTime:
		return b.Time
	case FieldPartySize:
		return strconv.Itoa(b.PartySize)
	}
	return ""
}

// Set copies field f from src into b.
func (b *BookingSlots) Set(f Field, src BookingSlots) {
	switch f {
	case FieldRestaurant:
		b.Restaurant = src.Restaurant
	case FieldDate:
		b.Date = src.Date
	case FieldTime:
		b.Time = src.Time
	case FieldPartySize:
		b.PartySize = src.PartySize
	}
}

// Present returns the fields that are set, in prompt order.
func (b BookingSlots) Present() []Field {
	var out []Field
	for _, f := range Fields {
		if b.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Missing returns the fields that are unset, in prompt order.
func (b BookingSlots) Missing() []Field {
	var out []Field
	for _, f := range Fields {
		if !b.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (b BookingSlots) Complete() bool { return len(b.Missing()) == 0 }

func (b BookingSlots) Empty() bool { return len(b.Present()) == 0 }
