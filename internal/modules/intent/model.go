// README: Intent enumeration and the ordered rule type the classifier evaluates.
package intent

import "foodiespot/internal/types"

type Intent string

const (
	BookReservation    Intent = "book_reservation"
	ModifyBooking      Intent = "modify_booking"
	ProvideInfo        Intent = "provide_info"
	ConfirmBooking     Intent = "confirm_booking"
	GetRecommendations Intent = "get_recommendations"
	CheckAvailability  Intent = "check_availability"
	GeneralInquiry     Intent = "general_inquiry"
	ContinueBooking    Intent = "continue_booking"
)

// All lists every intent in declaration order.
var All = []Intent{
	BookReservation, ModifyBooking, ProvideInfo, ConfirmBooking,
	GetRecommendations, CheckAvailability, GeneralInquiry, ContinueBooking,
}

func Parse(s string) (Intent, bool) {
	for _, i := range All {
		if string(i) == s {
			return i, true
		}
	}
	return "", false
}

// Utterance is the classifier input: lower-cased, trimmed text plus dialogue state.
type Utterance struct {
	Text  string
	State types.DialogueState
}

// Rule maps a predicate to an intent. Rules are evaluated top to bottom and the first match wins.
// A rule with a non-nil When only applies in the states it accepts.
type Rule struct {
	Name   string
	Intent Intent
	When   func(types.DialogueState) bool
	Match  func(Utterance) bool
}

func (r Rule) applies(u Utterance) bool {
	if r.When != nil && !r.When(u.State) {
		return false
	}
	return r.Match(u)
}
