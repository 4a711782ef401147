package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hotelsara/concierge/internal/booking"
)

var (
	adultsRe   = regexp.MustCompile(`(\d+)\s*adults?`)
	childrenRe = regexp.MustCompile(`(\d+)\s*child(?:ren)?`)
	agesRe     = regexp.MustCompile(`ages?\s*([\d,\s]+)`)
	guestCSVRe = regexp.MustCompile(`^(\d+),\s*(\d+)(,\s*\d+)*$`)
)

// Guests parses a guest description into adults, children, and children's
// ages. Grammars, in priority order: "N adults, M children, ages ..." with
// a count/ages consistency check; a bare comma-separated integer list
// (adults, children, ages...); "N adults" alone. Anything else errors with
// the accepted formats. The caller enforces adults >= 1.
func Guests(text string) (booking.GuestSpec, error) {
	raw := strings.ToLower(strings.TrimSpace(text))

	am := adultsRe.FindStringSubmatch(raw)
	cm := childrenRe.FindStringSubmatch(raw)

	switch {
	case am != nil && cm != nil:
		adults, _ := strconv.Atoi(am[1])
		children, _ := strconv.Atoi(cm[1])

		var ages []int

		if children > 0 {
			if m := agesRe.FindStringSubmatch(raw); m != nil {
				ages = intList(m[1])
			}

			if len(ages) != children {
				return booking.GuestSpec{}, inputErr("guests", "The number of children and ages don't match.")
			}
		}

		return booking.GuestSpec{Adults: adults, Children: children, ChildrenAges: ages}, nil

	case guestCSVRe.MatchString(raw):
		parts := intList(raw)

		adults, children := parts[0], parts[1]
		ages := parts[2:]

		if len(ages) == 0 {
			ages = nil
		}

		if children > 0 && len(ages) != children {
			return booking.GuestSpec{}, inputErr("guests", "The number of children and ages don't match.")
		}

		return booking.GuestSpec{Adults: adults, Children: children, ChildrenAges: ages}, nil

	case am != nil:
		adults, _ := strconv.Atoi(am[1])

		return booking.GuestSpec{Adults: adults}, nil

	default:
		return booking.GuestSpec{}, inputErr("guests",
			"Invalid format. Please specify at least the number of adults. "+
				"Use '2 adults' or '2,0' or '2 adults, 1 child, ages 5'.")
	}
}

func intList(s string) []int {
	var out []int

	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)

		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}

	return out
}
