// README: Reply composition: follow-up prompts, recommendations, availability, greeting.
package dialogue

import (
	"fmt"
	"strings"

	"foodiespot/internal/modules/catalog"
	"foodiespot/internal/modules/extract"
	"foodiespot/internal/modules/session"
	"foodiespot/internal/types"
)

const (
	generalReply = `Hello! I'm your FoodieSpot AI assistant. I can help you with:

🍽️ **Restaurant Reservations** - Book tables at great restaurants
🔍 **Restaurant Recommendations** - Find the perfect place to dine
📋 **Availability Checks** - See restaurant details and open times

What would you like to do?`

	clarifyModification = "I didn't catch what you'd like to change. Could you be more specific?"

	recommendationLimit = 3
)

var singleFieldQuestions = map[types.Field]string{
	types.FieldRestaurant: "Which restaurant would you like to book?",
	types.FieldDate:       "What date would you prefer?",
	types.FieldTime:       "What time works best for you?",
	types.FieldPartySize:  "How many people will be dining?",
}

// FollowUp asks for the missing fields: a tailored question for one field,
// a conjunctive list for several.
func FollowUp(missing []types.Field) string {
	switch len(missing) {
	case 0:
		return ""
	case 1:
		return singleFieldQuestions[missing[0]]
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("I still need the %s and %s.", strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
}

// prompt summarizes what is known and asks for the rest.
func (o *Orchestrator) prompt(sess *session.Session, header string) string {
	missing := sess.MissingFields()
	follow := FollowUp(missing)
	switch {
	case header != "" && follow != "":
		return header + "\n\n" + follow
	case header != "":
		return header
	case len(missing) == 0:
		return "I have: " + sess.Summary() + "\n\nShall I confirm this booking?"
	case sess.Booking.Empty():
		return "I'd be happy to help you make a reservation! " + follow
	}
	return "Great! I have: " + sess.Summary() + "\n\n" + follow
}

func (o *Orchestrator) recommend(message string) string {
	lower := strings.ToLower(message)
	var f catalog.Filter
	for _, c := range o.catalog.Cuisines() {
		if strings.Contains(lower, strings.ToLower(c)) {
			f.Cuisine = c
			break
		}
	}
	for _, l := range o.catalog.Locations() {
		if strings.Contains(lower, strings.ToLower(l)) {
			f.Location = l
			break
		}
	}
	if f.Empty() {
		return "I can help you find great restaurants! What type of cuisine are you looking for? " +
			"We have " + joinAnd(o.catalog.Cuisines()) + "."
	}

	matches := o.catalog.Search(f)
	if len(matches) == 0 {
		return "I couldn't find a restaurant matching that. What other cuisine or area would you like?"
	}
	if len(matches) > recommendationLimit {
		matches = matches[:recommendationLimit]
	}
	var b strings.Builder
	b.WriteString("Here are some places I'd recommend:\n")
	for _, r := range matches {
		fmt.Fprintf(&b, "\n• %s (%s, %s, %s, rated %.1f)", r.Name, r.Cuisine, r.Location, r.PriceRange, r.Rating)
	}
	b.WriteString("\n\nWould you like me to book a table at one of them?")
	return b.String()
}

func (o *Orchestrator) availability(message string) string {
	lower := strings.ToLower(message)
	for _, r := range o.catalog.ListAll() {
		if !strings.Contains(lower, strings.ToLower(r.Name)) {
			continue
		}
		times := strings.Join(r.AvailableTimes, ", ")
		if t := extract.FindTime(lower); t != "" {
			if r.Offers(t) {
				return fmt.Sprintf("Yes, %s has tables at %s. Would you like me to book one?", r.Name, t)
			}
			return fmt.Sprintf("Sorry, %s doesn't offer %s. Available times: %s", r.Name, t, times)
		}
		return fmt.Sprintf("%s has tables at %s and seats up to %d guests. Would you like me to book one?",
			r.Name, times, r.Capacity)
	}
	return "I can check availability for you. Which restaurant are you interested in?"
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
