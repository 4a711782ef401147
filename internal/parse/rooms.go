package parse

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hotelsara/concierge/internal/booking"
)

type availabilityChecker interface {
	IsAvailable(ctx context.Context, roomType string, qty int, r booking.DateRange) (bool, error)
}

var segmentRe = regexp.MustCompile(`^(\d+)\s*(.+)$`)

// Rooms parses multi-room selection expressions against a fixed catalog and
// checks availability for every selected type.
type Rooms struct {
	catalog booking.Catalog
	checker availabilityChecker
}

func NewRooms(catalog booking.Catalog, checker availabilityChecker) *Rooms {
	return &Rooms{
		catalog: catalog,
		checker: checker,
	}
}

// Parse converts "1 King Room, 1 Two Bed Room" into a selection, verifying
// total capacity covers totalGuests and that every selected type is
// available over the range. Empty input or a cancel keyword returns
// booking.ErrCancelled. The selection fails as a whole: no partial
// selection is ever returned.
func (p *Rooms) Parse(ctx context.Context, text string, totalGuests int, r booking.DateRange) (booking.RoomSelection, int, error) {
	raw := strings.ToLower(strings.TrimSpace(text))
	if raw == "" || raw == "cancel" || raw == "exit" {
		return nil, 0, booking.ErrCancelled
	}

	sel := booking.RoomSelection{}
	capacity := 0

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)

		m := segmentRe.FindStringSubmatch(part)
		if m == nil {
			return nil, 0, inputErr("rooms", fmt.Sprintf(
				"Invalid format in %q. Use '1 King Room' or '1 King Room, 1 Two Bed Room'.", part,
			))
		}

		qty, _ := strconv.Atoi(m[1])
		if qty < 1 {
			return nil, 0, inputErr("rooms", fmt.Sprintf("Quantity must be at least 1 in %q.", part))
		}

		rt, ok := p.match(strings.TrimSpace(m[2]))
		if !ok {
			return nil, 0, inputErr("rooms", fmt.Sprintf(
				"Unknown room type in %q. Available: %s.", part, strings.Join(p.catalog.Names(), ", "),
			))
		}

		sel[rt.Name] += qty
		capacity += rt.MaxGuests * qty
	}

	if len(sel) == 0 {
		return nil, 0, inputErr("rooms",
			"Please select at least 1 room type. For example: '1 Family Suite' or '1 King Room, 1 Two Bed Room'.")
	}

	if capacity < totalGuests {
		return nil, 0, inputErr("rooms", fmt.Sprintf(
			"The selected rooms can accommodate %d guests, but you have %d guests. "+
				"Try adding more rooms or choosing rooms with higher capacity.", capacity, totalGuests,
		))
	}

	availErr := booking.NewAvailabilityError()

	for _, name := range sel.SortedNames() {
		ok, err := p.checker.IsAvailable(ctx, name, sel[name], r)
		if err != nil {
			return nil, 0, fmt.Errorf("check availability of %q: %w", name, err)
		}

		if !ok {
			availErr.AddUnavailableSelection(sel[name], name, r)
		}
	}

	if availErr.Count() > 0 {
		return nil, 0, availErr
	}

	return sel, capacity, nil
}

// match resolves a room name against the catalog, tolerating the common
// truncation "roo" for "room".
func (p *Rooms) match(name string) (booking.RoomType, bool) {
	if rt, ok := p.catalog.Find(name); ok {
		return rt, true
	}

	return p.catalog.Find(strings.ReplaceAll(name, "roo", "room"))
}
