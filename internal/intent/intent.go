// Package intent maps a raw utterance to a conversation intent using
// whole-word phrase matching. Rules are tried in a fixed priority order and
// the first match wins.
package intent

import (
	"regexp"
	"strings"
)

type Intent int

const (
	Unknown Intent = iota
	Greeting
	Booking
	Price
	Farewell
	About
)

func (i Intent) String() string {
	switch i {
	case Greeting:
		return "greeting"
	case Booking:
		return "booking"
	case Price:
		return "price"
	case Farewell:
		return "farewell"
	case About:
		return "about"
	default:
		return "unknown"
	}
}

type rule struct {
	re     *regexp.Regexp
	intent Intent
}

// New phrases are additive: extend a pattern's alternation or append a rule.
var rules = []rule{
	{regexp.MustCompile(`\b(hi|hello|hey)\b`), Greeting},
	{regexp.MustCompile(`\b(book|reserve|room)\b`), Booking},
	{regexp.MustCompile(`\b(price|cost|how much)\b`), Price},
	{regexp.MustCompile(`\b(goodbye|bye|see you)\b`), Farewell},
	{regexp.MustCompile(`\b(name|who are you)\b`), About},
}

func Classify(text string) Intent {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.intent
		}
	}

	return Unknown
}
