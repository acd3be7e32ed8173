// README: Slot extractor maps free text to a partial set of booking fields.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"foodiespot/internal/types"
)

// Extractor is stateless apart from the restaurant names it matches against.
type Extractor struct {
	names []string
}

func New(restaurantNames []string) *Extractor {
	names := make([]string, len(restaurantNames))
	copy(names, restaurantNames)
	return &Extractor{names: names}
}

// Extract never fails; fields it cannot find are left unset in the result.
func (e *Extractor) Extract(text string, mode Mode) types.BookingSlots {
	lower := strings.ToLower(text)
	if mode == ModeModification {
		if out := e.modification(lower); !out.Empty() {
			return out
		}
	}
	return e.fresh(lower)
}

func (e *Extractor) fresh(lower string) types.BookingSlots {
	var out types.BookingSlots
	out.Restaurant = e.firstRestaurant(lower)
	out.Time = FindTime(lower)
	out.PartySize = firstPartySize(lower, freshPartyPatterns)
	out.Date = FindDate(lower)
	return out
}

func (e *Extractor) modification(lower string) types.BookingSlots {
	var out types.BookingSlots
	out.PartySize = firstPartySize(lower, modificationPartyPatterns)
	out.Time = modificationTime(lower)
	out.Restaurant = e.cuedRestaurant(lower)
	out.Date = FindDate(lower)
	return out
}

// firstRestaurant returns the first catalog name contained in the text, in catalog order.
func (e *Extractor) firstRestaurant(lower string) string {
	for _, name := range e.names {
		if strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}

// cuedRestaurant prefers a name appearing after the first correction cue,
// so "switch from Ocean View to Zen Garden" resolves to Zen Garden.
func (e *Extractor) cuedRestaurant(lower string) string {
	loc := restaurantCue.FindStringIndex(lower)
	if loc != nil {
		best, bestPos := "", -1
		for _, name := range e.names {
			idx := strings.Index(lower[loc[1]:], strings.ToLower(name))
			if idx < 0 {
				continue
			}
			if bestPos < 0 || idx < bestPos {
				best, bestPos = name, idx
			}
		}
		if best != "" {
			return best
		}
	}
	return e.firstRestaurant(lower)
}

// MentionsRestaurant reports whether any catalog name occurs in the text.
func (e *Extractor) MentionsRestaurant(text string) bool {
	return e.firstRestaurant(strings.ToLower(text)) != ""
}

// FindTime returns the first clock time in canonical HH:MM form, or "".
// Meridiem forms ("7pm", "7:30 pm") are preferred over bare "H:MM".
func FindTime(lower string) string {
	if t := firstClock(lower, meridiemTime); t != "" {
		return t
	}
	return firstClock(lower, colonTime)
}

func modificationTime(lower string) string {
	for _, re := range modificationTimeCues {
		if t := firstClock(lower, re); t != "" {
			return t
		}
	}
	return FindTime(lower)
}

func firstClock(lower string, re *regexp.Regexp) string {
	for _, m := range re.FindAllStringSubmatchIndex(lower, -1) {
		if unitSuffix.MatchString(lower[m[1]:]) {
			continue
		}
		hour := group(lower, m, 1)
		minute := group(lower, m, 2)
		meridiem := ""
		if len(m) >= 8 {
			meridiem = group(lower, m, 3)
		}
		if t, ok := Canonical(hour, minute, meridiem); ok {
			return t
		}
	}
	return ""
}

// Canonical converts hour, optional minute and optional am/pm to 24-hour HH:MM.
func Canonical(hour, minute, meridiem string) (string, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return "", false
	}
	m := 0
	if minute != "" {
		if m, err = strconv.Atoi(minute); err != nil || m > 59 {
			return "", false
		}
	}
	switch strings.ToLower(meridiem) {
	case "am":
		if h < 1 || h > 12 {
			return "", false
		}
		if h == 12 {
			h = 0
		}
	case "pm":
		if h < 1 || h > 12 {
			return "", false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h > 23 {
			return "", false
		}
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

func firstPartySize(lower string, patterns []*regexp.Regexp) int {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatchIndex(lower, -1) {
			if clockSuffix.MatchString(lower[m[3]:]) {
				continue
			}
			n, err := strconv.Atoi(group(lower, m, 1))
			if err != nil || n < MinPartySize || n > MaxPartySize {
				continue
			}
			return n
		}
	}
	return 0
}

// FindDate recognizes only today, tomorrow, tonight and this evening.
func FindDate(lower string) string {
	for _, kw := range dateKeywords {
		if kw.pattern.MatchString(lower) {
			return kw.value
		}
	}
	return ""
}

// BareCount reads a reply that is only a head count ("4", "for 4", "6 people").
func BareCount(text string) (int, bool) {
	m := barePartyReply.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < MinPartySize || n > MaxPartySize {
		return 0, false
	}
	return n, true
}

func group(s string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}
