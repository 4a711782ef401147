package dialog

import (
	"fmt"

	"github.com/hotelsara/concierge/internal/booking"
)

// printSummary renders the booking summary. The final variant (after
// confirmation) additionally shows the phone number, the confirmation
// timestamp, and the payment method.
func (s *Session) printSummary(d *booking.Draft, costs booking.Costs, rec booking.Record, final bool) {
	w := s.out

	if final {
		s.say("Final Reservation Summary:")
	} else {
		s.say("Booking Summary:")
	}

	fmt.Fprintln(w, "--- Guest Details ---")
	fmt.Fprintf(w, "- Guest Name: %s\n", d.Name)

	if final {
		fmt.Fprintf(w, "- Phone: %s\n", d.Phone)
	}

	ref := "Pending"
	if rec.Reference != "" {
		ref = rec.Reference
	}

	fmt.Fprintf(w, "- Booking Reference: %s\n", ref)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Booking Details ---")
	fmt.Fprintf(w, "- Check-in: %s\n", d.Range.Start.Format(booking.DateLayout))
	fmt.Fprintf(w, "- Check-out: %s\n", d.Range.End.Format(booking.DateLayout))
	fmt.Fprintf(w, "- Duration: %d nights\n", d.Range.Nights)
	fmt.Fprintf(w, "- Guests: %s\n", d.Guests)
	fmt.Fprintln(w, "- Rooms:")

	for _, name := range d.Selection.SortedNames() {
		qty := d.Selection[name]

		rt, ok := s.conf.Catalog.Find(name)
		if !ok {
			continue
		}

		lineTotal := float64(qty) * rt.Price * float64(d.Range.Nights)
		fmt.Fprintf(w, "  - %d %s @ %s/night x %d nights = %s\n", qty, name, eur(rt.Price), d.Range.Nights, eur(lineTotal))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Special Requirements ---")

	shuttle := "No (Not included)"
	if d.Special.Shuttle {
		shuttle = fmt.Sprintf("Yes (%s)", eur(s.conf.Pricing.ShuttleFee))
	}

	other := d.Special.Other
	if other == "" {
		other = "None"
	}

	fmt.Fprintf(w, "- Airport Shuttle: %s\n", shuttle)
	fmt.Fprintf(w, "- Disability Accommodations: %s\n", yesNo(d.Special.Disability))
	fmt.Fprintf(w, "- Other Requests: %s\n", other)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Cost Breakdown ---")
	fmt.Fprintf(w, "- Room Cost: %s\n", eur(costs.RoomTotal))

	breakfast := "Not included"
	if d.Breakfast {
		breakfast = fmt.Sprintf("Included (%s)", eur(costs.BreakfastCost))
	}

	fmt.Fprintf(w, "- Breakfast: %s\n", breakfast)
	fmt.Fprintf(w, "- Airport Shuttle: %s\n", eur(costs.ShuttleCost))
	fmt.Fprintf(w, "- Total (excluding taxes): %s\n", eur(costs.Total))
	fmt.Fprintf(w, "- Taxes (%.0f%%): %s\n", s.conf.Pricing.TaxRate*100, eur(costs.Tax))
	fmt.Fprintf(w, "- Grand Total: %s\n", eur(costs.GrandTotal))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Cancellation Policy ---")
	fmt.Fprintln(w, "- Free cancellation up to 48 hours before arrival. Contact us to modify or cancel your booking.")

	if final {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "--- Confirmation ---")
		fmt.Fprintf(w, "- Booking Confirmed: %s\n", rec.ConfirmedAt)
		fmt.Fprintf(w, "- Payment: %s\n", paymentDisplay(d.Payment))
	}
}

func paymentDisplay(p booking.PaymentInfo) string {
	switch p.Method {
	case "credit card":
		return fmt.Sprintf("Credit Card (Card ending: %s)", p.CardLast4)
	case "paypal":
		return fmt.Sprintf("PayPal (Email: %s)", p.Email)
	default:
		return fmt.Sprintf("Cash (%s)", p.Details)
	}
}
