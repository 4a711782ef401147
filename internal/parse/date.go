// Package parse converts free-form booking fragments into validated
// structured data: stay dates, guest counts, and room selections.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hotelsara/concierge/internal/booking"
)

// DateInterpreter is the best-effort natural-language fallback for date
// text the deterministic paths do not recognize. Implementations report
// ok=false when nothing in the text reads as a calendar date.
type DateInterpreter interface {
	Interpret(text string, base time.Time) (time.Time, bool)
}

// dateLayouts are the explicit formats tried, in order, before the loose
// fallback.
var dateLayouts = []string{"2006.01.02", "2006-01-02"}

var nightsRe = regexp.MustCompile(`for (\d+) nights?|(\d+) nights?`)

// DateResult carries whatever Parse could resolve. Start and End are nil
// when unresolved; Nights is 0 when no count was found.
type DateResult struct {
	Start  *time.Time
	End    *time.Time
	Nights int
}

// Dates parses date expressions and night counts. Now is injectable for
// tests; WindowYears bounds how far ahead a stay may begin.
type Dates struct {
	Now         func() time.Time
	Loose       DateInterpreter
	WindowYears int
}

func NewDates(loose DateInterpreter, windowYears int) *Dates {
	return &Dates{
		Now:         time.Now,
		Loose:       loose,
		WindowYears: windowYears,
	}
}

// Parse resolves a start date from relative keywords, explicit formats, or
// the loose interpreter, validates it against the booking window, and
// independently extracts a nights count. Text that resolves nothing returns
// an empty result with no error; only window violations are errors.
func (d *Dates) Parse(text string) (DateResult, error) {
	raw := strings.ToLower(strings.TrimSpace(text))
	today := midnight(d.Now())

	var (
		start time.Time
		found bool
	)

	switch {
	case strings.Contains(raw, "day after tomorrow"):
		start, found = today.AddDate(0, 0, 2), true
	case strings.Contains(raw, "tomorrow"):
		start, found = today.AddDate(0, 0, 1), true
	case strings.Contains(raw, "today"):
		start, found = today, true
	default:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				start, found = t, true

				break
			}
		}

		if !found && d.Loose != nil {
			if t, ok := d.Loose.Interpret(raw, d.Now()); ok {
				start, found = t, true
			}
		}
	}

	if found {
		start = midnight(start)

		if start.Before(today) {
			return DateResult{}, inputErr("date", fmt.Sprintf(
				"The date %q is not valid. Please enter a valid date (e.g., '2025-07-16' or 'tomorrow').", text,
			))
		}

		if start.After(today.AddDate(d.WindowYears, 0, 0)) {
			return DateResult{}, inputErr("date", fmt.Sprintf(
				"Booking can be done up to %d years in advance. Please enter an earlier date.", d.WindowYears,
			))
		}
	}

	var res DateResult

	if m := nightsRe.FindStringSubmatch(raw); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}

		if n, err := strconv.Atoi(digits); err == nil {
			res.Nights = n
		}
	}

	if found {
		res.Start = &start

		if res.Nights > 0 {
			end := start.AddDate(0, 0, res.Nights)
			res.End = &end
		}
	}

	return res, nil
}

// midnight drops the time-of-day, keeping the calendar day on the single
// canonical (zone-free) calendar.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inputErr(field, msg string) *booking.InputError {
	ie := booking.NewInputError()
	ie.Add(field, msg)

	return ie
}
