package dialog

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelsara/concierge/internal/booking"
	"github.com/hotelsara/concierge/internal/config"
	"github.com/hotelsara/concierge/internal/logger"
	"github.com/hotelsara/concierge/internal/parse"
	"github.com/hotelsara/concierge/internal/refgen/simple"
	"github.com/hotelsara/concierge/internal/storage/csvfile"
)

// script joins input lines the way a terminal session would deliver them.
func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func testSession(t *testing.T, input string) (*Session, *bytes.Buffer, *csvfile.Store) {
	t.Helper()

	cfg := config.Default()

	catalog := make(booking.Catalog, 0, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		catalog = append(catalog, booking.RoomType{
			Name:        r.Name,
			Price:       r.Price,
			Description: r.Description,
			MaxGuests:   r.MaxGuests,
			Inventory:   r.Inventory,
		})
	}

	pricing := booking.Pricing{
		BreakfastPerGuestNight: cfg.Pricing.BreakfastPerGuestNight,
		ShuttleFee:             cfg.Pricing.ShuttleFee,
		TaxRate:                cfg.Pricing.TaxRate,
	}

	store := csvfile.New(csvfile.Config{
		L:    logger.Discard(),
		Path: filepath.Join(t.TempDir(), "bookings.csv"),
	})

	manager := booking.New(logger.Discard(), store, simple.New(), catalog, pricing)

	out := &bytes.Buffer{}

	sess := New(Conf{
		L:         logger.Discard(),
		In:        strings.NewReader(input),
		Out:       out,
		Hotel:     cfg.Hotel,
		Responses: cfg.Responses,
		Catalog:   catalog,
		Pricing:   pricing,
	}, manager, parse.NewDates(nil, cfg.Booking.WindowYears), parse.NewRooms(catalog, manager))

	return sess, out, store
}

func TestSessionFullBooking(t *testing.T) {
	sess, out, store := testSession(t, script(
		"book",
		"John Smith",
		"+49 123 456 789",
		"tomorrow for 2 nights",
		"2 adults, 1 child, ages 5",
		"1 family suite",
		"yes", // breakfast
		"no",  // shuttle
		"no",  // disability
		"no",  // other requests
		"cash",
		"yes", // confirm
		"",    // completed-booking menu
		"view",
		"",
		"exit",
	))

	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Hello! Welcome to Hotel Sara.")
	assert.Contains(t, text, "Booking Summary:")
	assert.Contains(t, text, "Your booking is confirmed. Booking Reference: BR-")
	assert.Contains(t, text, "Hotel Information:")
	assert.Contains(t, text, "Final Reservation Summary:")
	assert.Contains(t, text, "Thank you for visiting!")

	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "John Smith", rec.Name)
	assert.Equal(t, "+49 123 456 789", rec.Phone)
	assert.Equal(t, time.Now().AddDate(0, 0, 1).Format(booking.DateLayout), rec.Start)
	assert.Equal(t, time.Now().AddDate(0, 0, 3).Format(booking.DateLayout), rec.End)
	assert.Equal(t, 2, rec.Nights)
	assert.Equal(t, "2 adults, 1 children (5)", rec.Guests)
	assert.Equal(t, "1 Family Suite", rec.Rooms)
	assert.Equal(t, "Payment due at check-in", rec.Payment)
	assert.Contains(t, rec.Special, "Shuttle: No")
	assert.Regexp(t, `^BR-[0-9A-F]{8}$`, rec.Reference)
}

func TestSessionCancelMidFlow(t *testing.T) {
	sess, out, store := testSession(t, script(
		"book",
		"John Smith",
		"cancel",
		"bye",
	))

	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "Booking canceled.")

	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSessionDeclineConfirmation(t *testing.T) {
	sess, out, store := testSession(t, script(
		"book",
		"John Smith",
		"+49 123 456 789",
		"tomorrow for 1 night",
		"1 adult",
		"1 single room",
		"no",
		"no",
		"no",
		"no",
		"cash",
		"no", // decline at confirmation
		"bye",
	))

	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "Booking canceled.")

	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSessionRepromptsOnBadInput(t *testing.T) {
	sess, out, store := testSession(t, script(
		"book",
		"John Smith",
		"not a phone",
		"+49 123 456 789",
		"someday soonish",
		"tomorrow for 1 night",
		"a couple",
		"2 adults",
		"1 penthouse",
		"1 king room",
		"maybe", // breakfast needs yes/no
		"no",
		"no",
		"no",
		"no",
		"bank transfer",
		"cash",
		"yes",
		"bye",
	))

	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid phone number format.")
	assert.Contains(t, text, "I couldn't understand that date.")
	assert.Contains(t, text, "Invalid format. Please specify at least the number of adults.")
	assert.Contains(t, text, "Unknown room type")
	assert.Contains(t, text, "Please answer 'yes' or 'no'.")
	assert.Contains(t, text, "Invalid payment method.")

	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1 King Room", records[0].Rooms)
}

func TestSessionIntents(t *testing.T) {
	sess, out, _ := testSession(t, script(
		"hello",
		"how much does it cost",
		"what is your name",
		"zzzz",
		"",
		"goodbye",
	))

	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Hello! Welcome to Hotel Sara."), "greeting repeats on greeting intent")
	assert.Contains(t, text, "Room prices start at 79€/night for a Single Room")
	assert.Contains(t, text, "I'm SaraBot")
	assert.Contains(t, text, "I'm not sure I understood that.")
	assert.Contains(t, text, "Please type something to continue.")
	assert.Contains(t, text, "Thank you for visiting!")
}

func TestSessionEndsOnEOF(t *testing.T) {
	sess, out, _ := testSession(t, "hi\n")

	require.NoError(t, sess.Run(context.Background()))
	assert.Contains(t, out.String(), "Hello! Welcome to Hotel Sara.")
}

func TestSessionCreditCardPayment(t *testing.T) {
	sess, out, store := testSession(t, script(
		"book",
		"Jane Doe",
		"+49 111 222 333",
		"tomorrow for 1 night",
		"2 adults",
		"1 king room",
		"no",
		"no",
		"no",
		"no",
		"credit card",
		"123", // too short
		"4111111111111111",
		"13/30", // bad month
		"01/20", // expired
		"12/30",
		"12", // bad cvv
		"123",
		"yes",
		"bye",
	))

	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid card number.")
	assert.Contains(t, text, "Invalid expiration date.")
	assert.Contains(t, text, "Expiration date is in the past.")
	assert.Contains(t, text, "Invalid CVV.")

	records, err := store.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "credit card: 1111, Expiry: 12/30, CVV: XXX", records[0].Payment)
}
