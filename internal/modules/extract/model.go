// README: Extraction modes and the pattern tables they use.
package extract

import "regexp"

// Mode selects the pattern priorities used by Extract.
type Mode string

const (
	ModeFresh        Mode = "fresh"
	ModeModification Mode = "modification"
)

const (
	MinPartySize = 1
	MaxPartySize = 20
)

const unitWords = `(?:people|persons?|guests?|pax)`

var (
	// A time token directly followed by a unit word is a head count, not an hour.
	unitSuffix = regexp.MustCompile(`^\s*` + unitWords + `\b`)
	// A count directly followed by a clock marker is an hour, not a head count.
	clockSuffix = regexp.MustCompile(`^\s*(?:am\b|pm\b|:\d)`)

	meridiemTime = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	colonTime    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)

	freshPartyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\btable\s+for|\bbook.*?\bfor|\breservation.*?\bfor)\s+(\d+)\s+` + unitWords + `\b`),
		regexp.MustCompile(`(?:\btable\s+for|\bbook.*?\bfor|\breservation.*?\bfor)\s+(\d+)\b`),
		regexp.MustCompile(`\b(\d+)\s*` + unitWords + `\b`),
		regexp.MustCompile(`\bparty\s+of\s+(\d+)\b`),
	}

	modificationPartyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:\bmake\s+it|\bchange.*?\bto|\bactually|\binstead|\bswitch.*?\bto)\D*?\b(\d+)\s*` + unitWords + `\b`),
		regexp.MustCompile(`\b(\d+)\s*` + unitWords + `\b.*\binstead\b`),
		regexp.MustCompile(`\bparty(?:\s+size)?\s+(?:to|of)\s+(\d+)\b`),
		regexp.MustCompile(`(?:\bmake\s+it|\bactually|\binstead)\s+(?:for\s+)?(\d+)\b`),
		regexp.MustCompile(`\btable\s+for\s+(\d+)\b`),
		regexp.MustCompile(`\b(\d+)\s*` + unitWords + `\b`),
	}

	// Times that follow a correction cue win over earlier times in the same message.
	modificationTimeCues = []*regexp.Regexp{
		regexp.MustCompile(`(?:\bto|\bmake\s+it|\bactually|\binstead|\brather)\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`),
		regexp.MustCompile(`(?:\bto|\bmake\s+it|\bactually|\binstead|\brather)\s+(?:at\s+)?(\d{1,2}):(\d{2})\b`),
	}

	restaurantCue = regexp.MustCompile(`\b(?:to|make\s+it|actually|instead|try)\b`)

	barePartyReply = regexp.MustCompile(`^\s*(?:for\s+)?(\d{1,2})\s*(?:` + unitWords + `)?\s*[.!]?\s*$`)
)

// dateKeywords is checked in order; the first keyword present wins.
var dateKeywords = []struct {
	pattern *regexp.Regexp
	value   string
}{
	{regexp.MustCompile(`\btoday\b`), "today"},
	{regexp.MustCompile(`\btomorrow\b`), "tomorrow"},
	{regexp.MustCompile(`\btonight\b`), "today"},
	{regexp.MustCompile(`\bthis\s+evening\b`), "today"},
}
