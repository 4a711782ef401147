package dialog

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/hotelsara/concierge/internal/booking"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func (s *Session) stepPayment(ctx context.Context, d *booking.Draft) error {
	for {
		method, err := s.prompt(ctx, "Payment method? (credit card, PayPal, cash)")
		if err != nil {
			return err
		}

		switch strings.ToLower(method) {
		case "cash":
			d.Payment = booking.PaymentInfo{Method: "cash", Details: "Payment due at check-in"}

			return nil
		case "credit card":
			return s.collectCard(ctx, d)
		case "paypal":
			return s.collectPayPal(ctx, d)
		}

		s.say("Invalid payment method. Please choose from 'credit card', 'paypal', or 'cash'.")
	}
}

// collectCard validates the card fields and keeps only the last four
// digits of the number. The CVV is checked and immediately discarded.
func (s *Session) collectCard(ctx context.Context, d *booking.Draft) error {
	var number string

	for {
		answer, err := s.prompt(ctx, "Please enter your 16-digit credit card number (no spaces):")
		if err != nil {
			return err
		}

		if !cardNumberRe.MatchString(answer) {
			s.say("Invalid card number. Please enter a 16-digit number.")

			continue
		}

		number = answer

		break
	}

	var expiry string

	for {
		answer, err := s.prompt(ctx, "Please enter card expiration date (MM/YY):")
		if err != nil {
			return err
		}

		if !expiryRe.MatchString(answer) {
			s.say("Invalid expiration date. Please use MM/YY format (e.g., 12/25).")

			continue
		}

		if s.expiryInPast(answer) {
			s.say("Expiration date is in the past. Please try again.")

			continue
		}

		expiry = answer

		break
	}

	for {
		answer, err := s.prompt(ctx, "Please enter your 3- or 4-digit CVV:")
		if err != nil {
			return err
		}

		if !cvvRe.MatchString(answer) {
			s.say("Invalid CVV. Please enter a 3- or 4-digit number.")

			continue
		}

		break
	}

	d.Payment = booking.PaymentInfo{
		Method:    "credit card",
		CardLast4: number[len(number)-4:],
		Expiry:    expiry,
	}

	return nil
}

func (s *Session) collectPayPal(ctx context.Context, d *booking.Draft) error {
	for {
		answer, err := s.prompt(ctx, "Please enter your PayPal email address:")
		if err != nil {
			return err
		}

		if !emailRe.MatchString(answer) {
			s.say("Invalid email address. Please enter a valid PayPal email.")

			continue
		}

		d.Payment = booking.PaymentInfo{Method: "paypal", Email: answer}

		return nil
	}
}

// expiryInPast reports whether a validated MM/YY expiry is before the
// current month. Two-digit years map to 2000+YY.
func (s *Session) expiryInPast(expiry string) bool {
	parts := strings.Split(expiry, "/")

	month, _ := strconv.Atoi(parts[0])
	yy, _ := strconv.Atoi(parts[1])
	year := 2000 + yy

	now := s.now()

	return year < now.Year() || (year == now.Year() && month < int(now.Month()))
}
