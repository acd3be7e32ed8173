// README: Default rule table: correction cues, contextual replies, topics, fallbacks.
package intent

import (
	"regexp"
	"strings"

	"foodiespot/internal/types"
)

var (
	modificationCues = []*regexp.Regexp{
		regexp.MustCompile(`\bactually\b`),
		regexp.MustCompile(`\binstead\b`),
		regexp.MustCompile(`\brather\b`),
		regexp.MustCompile(`\bchange\b.*\bto\b`),
		regexp.MustCompile(`\bmake\s+it\b`),
		regexp.MustCompile(`\bswitch\b.*\bto\b`),
		regexp.MustCompile(`\bupdate\b.*\bto\b`),
		regexp.MustCompile(`\bmodify\b.*\bto\b`),
		regexp.MustCompile(`\band\s+change\b`),
		regexp.MustCompile(`\balter\b.*\bto\b`),
		regexp.MustCompile(`\bchange[ds]?\b.*\bmind\b`),
		regexp.MustCompile(`\bdifferent\b`),
		regexp.MustCompile(`\banother\b`),
	}

	confirmWords  = regexp.MustCompile(`\b(?:yes|yeah|yep|confirm|correct|ok|okay)\b`)
	countWithUnit = regexp.MustCompile(`\b\d+\s*(?:people|persons?|guests?|pax)\b`)
	timeToken     = regexp.MustCompile(`\b\d{1,2}\s*(?:am|pm)\b|\b\d{1,2}:\d{2}\b`)
	dateToken     = regexp.MustCompile(`\b(?:today|tomorrow|tonight)\b|\bthis\s+evening\b|\b\d{1,2}/\d{1,2}\b`)
	bareCount     = regexp.MustCompile(`^(?:for\s+)?\d{1,2}[.!]?$`)
	anyDigit      = regexp.MustCompile(`\d`)

	bookingTopic = []*regexp.Regexp{
		regexp.MustCompile(`\bbook\b.*\btable\b|\bmake\b.*\breservation\b|\breserve\b.*\btable\b`),
		regexp.MustCompile(`\bbook\b.*\bfor\b|\btable\b.*\bfor\b|\breservation\b.*\bfor\b`),
		regexp.MustCompile(`\bwant\b.*\btable\b|\bneed\b.*\btable\b|\blike\b.*\bbook\b`),
		regexp.MustCompile(`\bget\b.*\btable\b|\bfind\b.*\btable\b`),
		regexp.MustCompile(`\b(?:dinner|lunch)\b.*\breservation\b`),
	}
	recommendationTopic = []*regexp.Regexp{
		regexp.MustCompile(`\brecommend|\bsuggest|\bfind\b.*\brestaurant`),
		regexp.MustCompile(`\bwhat\b.*\brestaurant|\bwhere\b.*\beat\b|\bgood\b.*\bplace\b`),
		regexp.MustCompile(`\blooking\b.*\bfor\b.*\bfood\b|\bwant\b.*\bto\b.*\beat\b`),
		regexp.MustCompile(`\bshow\b.*\bme\b.*\brestaurant|\bbest\b.*\brestaurant`),
	}
	availabilityTopic = []*regexp.Regexp{
		regexp.MustCompile(`\bavailab|\bopen\b|\bfree\b.*\btable\b`),
		regexp.MustCompile(`\bcheck\b.*\bavailability\b|\bis\b.*\bopen\b`),
		regexp.MustCompile(`\bcan\b.*\bget\b.*\btable\b|\bdo\b.*\byou\b.*\bhave\b`),
	}
	confirmationTopic = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:yes|yeah|yep|confirm|correct|right|ok|okay)\b`),
		regexp.MustCompile(`\bthat\b.*\bright\b|\bsounds\b.*\bgood\b|\bperfect\b`),
	}
)

func anyOf(patterns []*regexp.Regexp) func(Utterance) bool {
	return func(u Utterance) bool {
		for _, re := range patterns {
			if re.MatchString(u.Text) {
				return true
			}
		}
		return false
	}
}

func matches(re *regexp.Regexp) func(Utterance) bool {
	return func(u Utterance) bool { return re.MatchString(u.Text) }
}

func always(Utterance) bool { return true }

func collecting(s types.DialogueState) bool { return s.Collecting() }

func mentionsAny(names []string) func(Utterance) bool {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	return func(u Utterance) bool {
		for _, n := range lowered {
			if strings.Contains(u.Text, n) {
				return true
			}
		}
		return false
	}
}

// DefaultRules builds the rule table in priority order. Correction language
// comes first because it often embeds booking words ("change the reservation to ...").
func DefaultRules(restaurantNames []string) []Rule {
	mentionsRestaurant := mentionsAny(restaurantNames)
	return []Rule{
		{Name: "modification-cue", Intent: ModifyBooking, Match: anyOf(modificationCues)},

		{Name: "context-confirm", Intent: ConfirmBooking, When: collecting, Match: matches(confirmWords)},
		{Name: "context-restaurant", Intent: ProvideInfo, When: collecting, Match: mentionsRestaurant},
		{Name: "context-party-size", Intent: ProvideInfo, When: collecting, Match: matches(countWithUnit)},
		{Name: "context-bare-count", Intent: ProvideInfo, When: collecting, Match: matches(bareCount)},
		{Name: "context-time", Intent: ProvideInfo, When: collecting, Match: matches(timeToken)},
		{Name: "context-date", Intent: ProvideInfo, When: collecting, Match: matches(dateToken)},
		{Name: "context-continue", Intent: ContinueBooking, When: collecting, Match: always},

		{Name: "topic-booking", Intent: BookReservation, Match: anyOf(bookingTopic)},
		{Name: "topic-recommendation", Intent: GetRecommendations, Match: anyOf(recommendationTopic)},
		{Name: "topic-availability", Intent: CheckAvailability, Match: anyOf(availabilityTopic)},
		{Name: "topic-confirmation", Intent: ConfirmBooking, Match: anyOf(confirmationTopic)},

		{Name: "fallback-restaurant", Intent: ProvideInfo, Match: mentionsRestaurant},
		{Name: "fallback-digit", Intent: ProvideInfo, Match: matches(anyDigit)},
		{Name: "default", Intent: GeneralInquiry, Match: always},
	}
}
