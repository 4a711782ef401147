package booking

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used everywhere: in the record store,
// in user-visible messages, and in overlap arithmetic. Dates carry no
// time-of-day and no timezone; the whole system lives on one canonical
// calendar.
const DateLayout = "2006-01-02"

// RoomType is one configured category of bookable room. Inventory is the
// absolute ceiling for overlapping bookings of this type.
type RoomType struct {
	Name        string
	Price       float64
	Description string
	MaxGuests   int
	Inventory   int
}

// Catalog is the fixed, ordered set of room types.
type Catalog []RoomType

// Find matches a room type by name, case-insensitively.
func (c Catalog) Find(name string) (RoomType, bool) {
	for _, rt := range c {
		if strings.EqualFold(rt.Name, name) {
			return rt, true
		}
	}

	return RoomType{}, false
}

// Names returns the catalog's room names in configured order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, rt := range c {
		names = append(names, rt.Name)
	}

	return names
}

// DateRange is a stay: End = Start + Nights days, half-open, so a booking
// ending on a day does not collide with one starting that same day.
type DateRange struct {
	Start  time.Time
	End    time.Time
	Nights int
}

func NewDateRange(start time.Time, nights int) DateRange {
	return DateRange{
		Start:  start,
		End:    start.AddDate(0, 0, nights),
		Nights: nights,
	}
}

// Overlaps reports whether the range shares at least one night with
// [start, end) under half-open semantics.
func (r DateRange) Overlaps(start, end time.Time) bool {
	return r.End.After(start) && end.After(r.Start)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// GuestSpec is a validated guest description. ChildrenAges has exactly
// Children entries whenever Children > 0.
type GuestSpec struct {
	Adults       int
	Children     int
	ChildrenAges []int
}

func (g GuestSpec) Total() int {
	return g.Adults + g.Children
}

func (g GuestSpec) String() string {
	ages := "N/A"

	if len(g.ChildrenAges) > 0 {
		parts := make([]string, 0, len(g.ChildrenAges))
		for _, a := range g.ChildrenAges {
			parts = append(parts, strconv.Itoa(a))
		}

		ages = strings.Join(parts, ", ")
	}

	return fmt.Sprintf("%d adults, %d children (%s)", g.Adults, g.Children, ages)
}

// RoomSelection maps room type name to requested quantity.
type RoomSelection map[string]int

// Capacity sums quantity times max occupancy over the selection.
func (s RoomSelection) Capacity(catalog Catalog) int {
	total := 0

	for name, qty := range s {
		if rt, ok := catalog.Find(name); ok {
			total += rt.MaxGuests * qty
		}
	}

	return total
}

// SortedNames returns the selected room names in a stable order.
func (s RoomSelection) SortedNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Summary serializes the selection in the record-store form
// "<qty> <RoomName>; <qty> <RoomName>".
func (s RoomSelection) Summary() string {
	parts := make([]string, 0, len(s))
	for _, name := range s.SortedNames() {
		parts = append(parts, fmt.Sprintf("%d %s", s[name], name))
	}

	return strings.Join(parts, "; ")
}

var summaryEntryRe = regexp.MustCompile(`^(\d+)\s*(.+)$`)

// ParseRoomSummary reads a stored room-selection summary back into per-type
// quantities. Entries that do not match the layout are skipped.
func ParseRoomSummary(summary string) RoomSelection {
	sel := RoomSelection{}

	for _, entry := range strings.Split(summary, ";") {
		entry = strings.TrimSpace(entry)

		m := summaryEntryRe.FindStringSubmatch(entry)
		if m == nil {
			continue
		}

		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		sel[strings.TrimSpace(m[2])] += qty
	}

	return sel
}

// PaymentInfo is the collected payment detail. Only the last four card
// digits are ever retained.
type PaymentInfo struct {
	Method    string
	CardLast4 string
	Expiry    string
	Email     string
	Details   string
}

// Summary renders the payment detail the way the record store holds it.
func (p PaymentInfo) Summary() string {
	switch p.Method {
	case "credit card":
		return fmt.Sprintf("credit card: %s, Expiry: %s, CVV: XXX", p.CardLast4, p.Expiry)
	case "paypal":
		return fmt.Sprintf("paypal: %s", p.Email)
	default:
		return p.Details
	}
}

// SpecialRequirements is the collected extras selection.
type SpecialRequirements struct {
	Shuttle    bool
	Disability bool
	Other      string
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}

	return "No"
}

func (s SpecialRequirements) Summary() string {
	other := s.Other
	if other == "" {
		other = "None"
	}

	return fmt.Sprintf("Shuttle: %s, Disability: %s, Other: %s", yesNo(s.Shuttle), yesNo(s.Disability), other)
}

// Draft is a booking in progress: everything collected from the guest,
// not yet persisted.
type Draft struct {
	Name      string
	Phone     string
	Range     DateRange
	Guests    GuestSpec
	Selection RoomSelection
	Breakfast bool
	Special   SpecialRequirements
	Payment   PaymentInfo
}

// Record is one persisted booking row. Records are append-only: never
// mutated or deleted once written.
type Record struct {
	Name        string
	Phone       string
	Start       string
	End         string
	Nights      int
	Guests      string
	Rooms       string
	ConfirmedAt string
	Payment     string
	Special     string
	Reference   string
}

// Costs is the price breakdown for a draft.
type Costs struct {
	RoomTotal     float64
	BreakfastCost float64
	ShuttleCost   float64
	Total         float64
	Tax           float64
	GrandTotal    float64
}

// Pricing holds the configured rates the cost model applies.
type Pricing struct {
	BreakfastPerGuestNight float64
	ShuttleFee             float64
	TaxRate                float64
}
