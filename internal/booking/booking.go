package booking

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hotelsara/concierge/internal/logger"
)

type referenceGenerator interface {
	Ref(ctx context.Context) (string, error)
}

type storageReader interface {
	ListRecords(ctx context.Context) ([]Record, error)
}

type storageWriter interface {
	AppendRecord(ctx context.Context, rec Record) error
}

type storage interface {
	storageReader
	storageWriter
}

// Manager owns the availability engine, the cost model, and booking
// confirmation. It never owns records: availability reads a snapshot from
// the store at query time.
type Manager struct {
	l       *logger.Logger
	storage storage
	refs    referenceGenerator
	catalog Catalog
	pricing Pricing
	now     func() time.Time
}

func New(l *logger.Logger, storage storage, refs referenceGenerator, catalog Catalog, pricing Pricing) *Manager {
	return &Manager{
		l:       l,
		storage: storage,
		refs:    refs,
		catalog: catalog,
		pricing: pricing,
		now:     time.Now,
	}
}

// IsAvailable reports whether qty more rooms of the given type can be booked
// over the requested range without exceeding the type's inventory. Existing
// records that overlap the range (half-open) contribute their quantity of
// the type; malformed rows are skipped, not fatal.
func (m *Manager) IsAvailable(ctx context.Context, roomType string, qty int, r DateRange) (bool, error) {
	rt, ok := m.catalog.Find(roomType)
	if !ok {
		return false, fmt.Errorf("room type %q: %w", roomType, ErrUnknownRoom)
	}

	records, err := m.storage.ListRecords(ctx)
	if err != nil {
		return false, fmt.Errorf("list booking records: %w", err)
	}

	booked := 0

	for _, rec := range records {
		sel := ParseRoomSummary(rec.Rooms)

		n, ok := sel[rt.Name]
		if !ok {
			continue
		}

		start, err := time.Parse(DateLayout, rec.Start)
		if err != nil {
			m.l.LogWarnf("Skipping record %s: bad start date %q", rec.Reference, rec.Start)

			continue
		}

		end, err := time.Parse(DateLayout, rec.End)
		if err != nil {
			m.l.LogWarnf("Skipping record %s: bad end date %q", rec.Reference, rec.End)

			continue
		}

		if r.Overlaps(start, end) {
			booked += n
		}
	}

	return booked+qty <= rt.Inventory, nil
}

// CostInput names everything the cost model needs from a draft.
type CostInput struct {
	Selection RoomSelection
	Nights    int
	Guests    int
	Breakfast bool
	Shuttle   bool
}

// Costs computes the full price breakdown. Tax is rounded to cents.
func (m *Manager) Costs(in CostInput) Costs {
	var c Costs

	for name, qty := range in.Selection {
		if rt, ok := m.catalog.Find(name); ok {
			c.RoomTotal += rt.Price * float64(qty) * float64(in.Nights)
		}
	}

	if in.Breakfast {
		c.BreakfastCost = m.pricing.BreakfastPerGuestNight * float64(in.Guests) * float64(in.Nights)
	}

	if in.Shuttle {
		c.ShuttleCost = m.pricing.ShuttleFee
	}

	c.Total = c.RoomTotal + c.BreakfastCost + c.ShuttleCost
	c.Tax = math.Round(c.Total*m.pricing.TaxRate*100) / 100
	c.GrandTotal = c.Total + c.Tax

	return c
}

// Confirm turns a fully collected draft into a persisted record. On any
// persistence failure the booking is not confirmed and the error carries
// the underlying cause.
func (m *Manager) Confirm(ctx context.Context, d Draft) (Record, error) {
	ref, err := m.refs.Ref(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrReference, err)
	}

	rec := Record{
		Name:        sanitize(d.Name),
		Phone:       sanitize(d.Phone),
		Start:       d.Range.Start.Format(DateLayout),
		End:         d.Range.End.Format(DateLayout),
		Nights:      d.Range.Nights,
		Guests:      d.Guests.String(),
		Rooms:       d.Selection.Summary(),
		ConfirmedAt: m.now().Format("2006-01-02 15:04:05"),
		Payment:     d.Payment.Summary(),
		Special:     d.Special.Summary(),
		Reference:   ref,
	}

	if err := m.storage.AppendRecord(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("save booking record: %w", err)
	}

	m.l.LogInfo("Booking %s confirmed for %s (%s)", rec.Reference, rec.Name, d.Range)

	return rec, nil
}

// sanitize strips the record-store delimiters from free-text fields so a
// stored row always reads back into the same values.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ";", "")

	return strings.TrimSpace(s)
}
