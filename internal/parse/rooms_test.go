package parse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelsara/concierge/internal/booking"
)

type stubChecker struct {
	unavailable map[string]bool
	err         error
	calls       int
}

func (c *stubChecker) IsAvailable(_ context.Context, roomType string, _ int, _ booking.DateRange) (bool, error) {
	c.calls++

	if c.err != nil {
		return false, c.err
	}

	return !c.unavailable[roomType], nil
}

func testCatalog() booking.Catalog {
	return booking.Catalog{
		{Name: "Single Room", Price: 79, MaxGuests: 1, Inventory: 10},
		{Name: "King Room", Price: 109, MaxGuests: 2, Inventory: 7},
		{Name: "Two Bed Room", Price: 109, MaxGuests: 2, Inventory: 8},
		{Name: "Family Suite", Price: 159, MaxGuests: 6, Inventory: 5},
	}
}

func testRange() booking.DateRange {
	return booking.NewDateRange(time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), 3)
}

func TestRoomsParse(t *testing.T) {
	checker := &stubChecker{}
	p := NewRooms(testCatalog(), checker)

	t.Run("single type", func(t *testing.T) {
		sel, capacity, err := p.Parse(context.Background(), "1 family suite", 4, testRange())
		require.NoError(t, err)
		assert.Equal(t, booking.RoomSelection{"Family Suite": 1}, sel)
		assert.Equal(t, 6, capacity)
	})

	t.Run("multiple types", func(t *testing.T) {
		sel, capacity, err := p.Parse(context.Background(), "1 King Room, 2 Single Room", 4, testRange())
		require.NoError(t, err)
		assert.Equal(t, booking.RoomSelection{"King Room": 1, "Single Room": 2}, sel)
		assert.Equal(t, 4, capacity)
	})

	t.Run("repeated type accumulates", func(t *testing.T) {
		sel, _, err := p.Parse(context.Background(), "1 king room, 1 king room", 4, testRange())
		require.NoError(t, err)
		assert.Equal(t, booking.RoomSelection{"King Room": 2}, sel)
	})

	t.Run("truncated room token", func(t *testing.T) {
		sel, _, err := p.Parse(context.Background(), "2 king roo", 4, testRange())
		require.NoError(t, err)
		assert.Equal(t, booking.RoomSelection{"King Room": 2}, sel)
	})
}

func TestRoomsParseCancel(t *testing.T) {
	p := NewRooms(testCatalog(), &stubChecker{})

	for _, text := range []string{"", "  ", "cancel", "exit"} {
		_, _, err := p.Parse(context.Background(), text, 2, testRange())
		assert.ErrorIs(t, err, booking.ErrCancelled, "text: %q", text)
	}
}

func TestRoomsParseInputErrors(t *testing.T) {
	checker := &stubChecker{}
	p := NewRooms(testCatalog(), checker)

	cases := []struct {
		name string
		text string
		msg  string
	}{
		{"missing quantity", "king room", "Invalid format"},
		{"zero quantity", "0 king room", "at least 1"},
		{"unknown type", "1 presidential suite", "Unknown room type"},
		{"capacity shortfall", "1 single room", "accommodate 1 guests, but you have 5 guests"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guests := 2
			if tc.name == "capacity shortfall" {
				guests = 5
			}

			sel, _, err := p.Parse(context.Background(), tc.text, guests, testRange())
			require.Error(t, err)
			assert.NotNil(t, booking.IsInputError(err))
			assert.Contains(t, err.Error(), tc.msg)
			assert.Nil(t, sel)
		})
	}

	assert.Zero(t, checker.calls, "availability is not consulted when parsing fails")
}

func TestRoomsParseUnavailable(t *testing.T) {
	t.Run("one type unavailable fails whole selection", func(t *testing.T) {
		checker := &stubChecker{unavailable: map[string]bool{"King Room": true}}
		p := NewRooms(testCatalog(), checker)

		sel, _, err := p.Parse(context.Background(), "1 king room, 1 single room", 2, testRange())
		require.Error(t, err)
		assert.NotNil(t, booking.IsAvailabilityError(err))
		assert.Contains(t, err.Error(), "1 King Room(s) not available")
		assert.Nil(t, sel)
		assert.Equal(t, 2, checker.calls, "every type is checked before reporting")
	})

	t.Run("checker error is wrapped", func(t *testing.T) {
		boom := errors.New("store unreachable")
		p := NewRooms(testCatalog(), &stubChecker{err: boom})

		_, _, err := p.Parse(context.Background(), "1 king room", 2, testRange())
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, booking.IsAvailabilityError(err))
	})
}
