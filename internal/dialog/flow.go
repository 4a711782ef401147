package dialog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hotelsara/concierge/internal/booking"
	"github.com/hotelsara/concierge/internal/parse"
)

var phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{7,20}$`)

// runBooking walks the collection steps in order. Any step may return
// booking.ErrCancelled, which aborts the whole flow with nothing persisted.
func (s *Session) runBooking(ctx context.Context) error {
	s.say(s.conf.Responses.Booking)

	d := &booking.Draft{}

	steps := []func(context.Context, *booking.Draft) error{
		s.stepName,
		s.stepPhone,
		s.stepDates,
		s.stepGuests,
		s.stepRooms,
		s.stepBreakfast,
		s.stepSpecial,
		s.stepPayment,
	}

	for _, step := range steps {
		if err := step(ctx, d); err != nil {
			return err
		}
	}

	costs := s.manager.Costs(booking.CostInput{
		Selection: d.Selection,
		Nights:    d.Range.Nights,
		Guests:    d.Guests.Total(),
		Breakfast: d.Breakfast,
		Shuttle:   d.Special.Shuttle,
	})

	s.printSummary(d, costs, booking.Record{}, false)

	answer, err := s.prompt(ctx, "Confirm booking? (yes/no)")
	if err != nil {
		return err
	}

	if !isYes(answer) {
		return booking.ErrCancelled
	}

	rec, err := s.manager.Confirm(ctx, *d)
	if err != nil {
		s.l.LogErrorf("Confirm booking: %v", err)
		s.sayf("Failed to save your booking: %v. The booking is not confirmed, please try again.", err)

		return nil
	}

	s.last = &completed{draft: *d, costs: costs, rec: rec}

	s.sayf("Thank you, %s! Your booking is confirmed. Booking Reference: %s", rec.Name, rec.Reference)
	s.say("Hotel Information:")
	fmt.Fprintf(s.out, "- Name: %s\n- Address: %s\n- Phone: %s\n- Email: %s\n",
		s.conf.Hotel.Name, s.conf.Hotel.Address, s.conf.Hotel.Phone, s.conf.Hotel.Email)

	return nil
}

func (s *Session) stepName(ctx context.Context, d *booking.Draft) error {
	name, err := s.prompt(ctx, "Your full name?")
	if err != nil {
		return err
	}

	d.Name = name

	return nil
}

func (s *Session) stepPhone(ctx context.Context, d *booking.Draft) error {
	for {
		phone, err := s.prompt(ctx, "Your phone number?")
		if err != nil {
			return err
		}

		if !phoneRe.MatchString(phone) {
			s.say("Invalid phone number format. Please enter a valid phone number (e.g., +49 123 456 789).")

			continue
		}

		d.Phone = phone

		return nil
	}
}

func (s *Session) stepDates(ctx context.Context, d *booking.Draft) error {
	for {
		text, err := s.prompt(ctx, "What dates would you like to book? (e.g., 'tomorrow' or '2025-07-16')")
		if err != nil {
			return err
		}

		res, perr := s.dates.Parse(text)
		if perr != nil {
			s.say(perr.Error())

			continue
		}

		if res.Start == nil {
			s.say("I couldn't understand that date. Please try again (e.g., '2025-07-16' or 'tomorrow').")

			continue
		}

		nights := res.Nights
		if nights == 0 {
			answer, err := s.prompt(ctx, "How many nights would you like to stay?")
			if err != nil {
				return err
			}

			n, convErr := strconv.Atoi(answer)
			if convErr != nil || n < 1 {
				n = 1

				s.say("Invalid input. Assuming 1 night.")
			}

			nights = n
		}

		d.Range = booking.NewDateRange(*res.Start, nights)

		s.sayf("Booking from %s to %s for %d nights.",
			d.Range.Start.Format(booking.DateLayout), d.Range.End.Format(booking.DateLayout), nights)

		return nil
	}
}

func (s *Session) stepGuests(ctx context.Context, d *booking.Draft) error {
	for {
		text, err := s.prompt(ctx, "Please enter number of adults, children, and their ages (e.g., '2 adults, 1 child, ages 5' or '2,1,5'):")
		if err != nil {
			return err
		}

		guests, perr := parse.Guests(text)
		if perr != nil {
			s.say(perr.Error())

			continue
		}

		if guests.Adults < 1 {
			s.say("At least one adult is required.")

			continue
		}

		d.Guests = guests

		ages := "N/A"
		if len(guests.ChildrenAges) > 0 {
			parts := make([]string, 0, len(guests.ChildrenAges))
			for _, a := range guests.ChildrenAges {
				parts = append(parts, strconv.Itoa(a))
			}

			ages = strings.Join(parts, ", ")
		}

		s.sayf("Got it. Adults: %d, Children: %d, Ages: %s", guests.Adults, guests.Children, ages)

		return nil
	}
}

func (s *Session) stepRooms(ctx context.Context, d *booking.Draft) error {
	total := d.Guests.Total()

	s.sayf("Based on %d guests, available room options:", total)

	for _, rt := range s.conf.Catalog {
		fmt.Fprintf(s.out, "- %s: %s/night, %s, ensuite bathroom, TV, Wi-Fi (up to %d guests)\n",
			rt.Name, eur(rt.Price), rt.Description, rt.MaxGuests)
	}

	for {
		text, err := s.prompt(ctx, "Please select one or more room types and quantities (e.g., '1 Family Suite' or '1 King Room, 1 Two Bed Room') or type 'cancel' to exit:")
		if err != nil {
			return err
		}

		sel, _, perr := s.rooms.Parse(ctx, text, total, d.Range)
		if errors.Is(perr, booking.ErrCancelled) {
			return perr
		}

		if perr != nil {
			s.say(perr.Error())

			continue
		}

		d.Selection = sel

		return nil
	}
}

func (s *Session) stepBreakfast(ctx context.Context, d *booking.Draft) error {
	include, err := s.askYesNo(ctx, fmt.Sprintf("Include breakfast for %s per person per night? (yes/no)", eur(s.conf.Pricing.BreakfastPerGuestNight)))
	if err != nil {
		return err
	}

	d.Breakfast = include

	return nil
}

func (s *Session) stepSpecial(ctx context.Context, d *booking.Draft) error {
	shuttle, err := s.askYesNo(ctx, fmt.Sprintf("Do you need an airport shuttle for %s (up to 4 guests)? (yes/no):", eur(s.conf.Pricing.ShuttleFee)))
	if err != nil {
		return err
	}

	d.Special.Shuttle = shuttle

	disability, err := s.askYesNo(ctx, "Do you require disability accommodations? (yes/no):")
	if err != nil {
		return err
	}

	if disability {
		s.say("We will provide a disability-friendly room with accessible features.")
	}

	d.Special.Disability = disability

	return s.stepOtherRequests(ctx, d)
}

func (s *Session) stepOtherRequests(ctx context.Context, d *booking.Draft) error {
	for {
		answer, err := s.prompt(ctx, "Any other special requests? (yes/no):")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "no", "n", "none":
			return nil
		case "yes", "y":
			return s.collectOtherRequests(ctx, d)
		}

		s.say("Please answer 'yes' or 'no'.")
	}
}

func (s *Session) collectOtherRequests(ctx context.Context, d *booking.Draft) error {
	for {
		text, err := s.prompt(ctx, "Please enter what special requests you have (e.g., extra pillows, late checkout):")
		if err != nil {
			return err
		}

		if strings.EqualFold(text, "none") {
			return nil
		}

		if text == "" {
			s.say("Please specify your requests or type 'none'.")

			continue
		}

		d.Special.Other = stripDelims(text)

		s.sayf("Thank you, we have noted your special requests: %s.", d.Special.Other)

		return nil
	}
}

// stripDelims removes the record-store delimiters from free text.
func stripDelims(s string) string {
	s = strings.ReplaceAll(s, ",", "")

	return strings.ReplaceAll(s, ";", "")
}
