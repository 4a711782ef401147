// Package dialog drives the line-by-line conversation with the guest: it
// classifies utterances, walks the booking flow as a sequence of discrete
// collection steps, and renders summaries. Every step accepts a cancel
// token, which unwinds the whole in-progress booking with nothing
// persisted.
package dialog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hotelsara/concierge/internal/booking"
	"github.com/hotelsara/concierge/internal/config"
	"github.com/hotelsara/concierge/internal/intent"
	"github.com/hotelsara/concierge/internal/logger"
	"github.com/hotelsara/concierge/internal/parse"
)

type Conf struct {
	L         *logger.Logger
	In        io.Reader
	Out       io.Writer
	Hotel     config.HotelConfig
	Responses config.ResponsesConfig
	Catalog   booking.Catalog
	Pricing   booking.Pricing
	Now       func() time.Time
}

// completed keeps the last confirmed booking around so the guest can view
// its final summary again.
type completed struct {
	draft booking.Draft
	costs booking.Costs
	rec   booking.Record
}

type Session struct {
	l       *logger.Logger
	in      *bufio.Scanner
	out     io.Writer
	conf    Conf
	manager *booking.Manager
	dates   *parse.Dates
	rooms   *parse.Rooms
	now     func() time.Time
	last    *completed
}

func New(conf Conf, manager *booking.Manager, dates *parse.Dates, rooms *parse.Rooms) *Session {
	now := conf.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		l:       conf.L,
		in:      bufio.NewScanner(conf.In),
		out:     conf.Out,
		conf:    conf,
		manager: manager,
		dates:   dates,
		rooms:   rooms,
		now:     now,
	}
}

// Run is the top conversation loop. It returns nil when the guest says
// goodbye or the input ends.
func (s *Session) Run(ctx context.Context) error {
	s.say(s.conf.Responses.Greeting)

	for {
		line, err := s.readLine(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}

		if err != nil {
			return err
		}

		if line == "" {
			if s.last == nil {
				s.say("Please type something to continue.")

				continue
			}

			quit, err := s.lastBookingMenu(ctx)
			if err != nil {
				return s.finish(err)
			}

			if quit {
				return nil
			}

			continue
		}

		switch intent.Classify(line) {
		case intent.Farewell:
			s.say(s.conf.Responses.Goodbye)

			return nil
		case intent.Booking:
			if err := s.startBooking(ctx); err != nil {
				return s.finish(err)
			}
		case intent.Greeting:
			s.say(s.conf.Responses.Greeting)
		case intent.Price:
			s.say(s.priceLine())
		case intent.About:
			s.say(s.conf.Responses.About)
		default:
			s.say(s.conf.Responses.Unknown)
		}
	}
}

// finish maps end-of-input and context cancellation to a clean stop.
func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// lastBookingMenu offers view/book/exit after a completed booking. The
// returned bool reports whether the session should end.
func (s *Session) lastBookingMenu(ctx context.Context) (bool, error) {
	s.say("Would you like to view your last booking summary, make another booking, or exit? (view/book/exit)")

	line, err := s.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "view":
		s.printSummary(&s.last.draft, s.last.costs, s.last.rec, true)
		s.say("What would you like to do next? (e.g., 'book', 'exit')")
	case "book":
		if err := s.startBooking(ctx); err != nil {
			return false, err
		}
	case "exit":
		s.say(s.conf.Responses.Goodbye)

		return true, nil
	default:
		s.say("Please choose 'view', 'book', or 'exit'.")
	}

	return false, nil
}

// startBooking runs the booking flow and absorbs cancellation: a cancelled
// booking returns the conversation to idle.
func (s *Session) startBooking(ctx context.Context) error {
	err := s.runBooking(ctx)
	if errors.Is(err, booking.ErrCancelled) {
		s.say("Booking canceled. Let me know how I can assist you further!")

		return nil
	}

	return err
}

// priceLine builds the price overview from the catalog.
func (s *Session) priceLine() string {
	parts := make([]string, 0, len(s.conf.Catalog))

	for i, rt := range s.conf.Catalog {
		if i == 0 {
			parts = append(parts, fmt.Sprintf("%s/night for a %s", eur(rt.Price), rt.Name))

			continue
		}

		parts = append(parts, fmt.Sprintf("%s for %s", eur(rt.Price), rt.Name))
	}

	return "Room prices start at " + strings.Join(parts, ", ") + "."
}

func (s *Session) say(msg string) {
	fmt.Fprintf(s.out, "%s: %s\n", s.conf.Hotel.Assistant, msg)
}

func (s *Session) sayf(format string, v ...any) {
	s.say(fmt.Sprintf(format, v...))
}

// readLine reads one trimmed input line. It does not treat cancel tokens
// specially; that is prompt's job inside the booking flow.
func (s *Session) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(s.out, "You: ")

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimSpace(s.in.Text()), nil
}

// prompt asks a question and reads the answer, converting a cancel token
// into booking.ErrCancelled.
func (s *Session) prompt(ctx context.Context, q string) (string, error) {
	s.say(q)

	line, err := s.readLine(ctx)
	if err != nil {
		return "", err
	}

	if isCancel(line) {
		return "", booking.ErrCancelled
	}

	return line, nil
}

// askYesNo re-prompts until the guest answers yes or no.
func (s *Session) askYesNo(ctx context.Context, q string) (bool, error) {
	for {
		answer, err := s.prompt(ctx, q)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}

		s.say("Please answer 'yes' or 'no'.")
	}
}

func isCancel(text string) bool {
	t := strings.ToLower(text)

	return t == "cancel" || t == "exit"
}

func isYes(text string) bool {
	t := strings.ToLower(text)

	return t == "yes" || t == "y"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}

	return "No"
}

func eur(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "€"
}
