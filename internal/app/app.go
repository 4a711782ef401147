package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hotelsara/concierge/internal/booking"
	"github.com/hotelsara/concierge/internal/config"
	"github.com/hotelsara/concierge/internal/dialog"
	"github.com/hotelsara/concierge/internal/logger"
	"github.com/hotelsara/concierge/internal/parse"
	"github.com/hotelsara/concierge/internal/refgen/simple"
	"github.com/hotelsara/concierge/internal/storage/csvfile"
)

func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	// Load config

	var (
		cfg *config.Config
		err error
	)

	if path := os.Getenv("CONCIERGE_CONFIG"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config from %s: %w", path, err)
		}

		l.LogInfo("Configuration loaded from %s", path)
	} else {
		cfg = config.Default()
	}

	if path := os.Getenv("CONCIERGE_BOOKINGS"); path != "" {
		cfg.Store.Path = path
	}

	catalog := make(booking.Catalog, 0, len(cfg.Rooms))
	for _, rc := range cfg.Rooms {
		catalog = append(catalog, booking.RoomType{
			Name:        rc.Name,
			Price:       rc.Price,
			Description: rc.Description,
			MaxGuests:   rc.MaxGuests,
			Inventory:   rc.Inventory,
		})
	}

	pricing := booking.Pricing{
		BreakfastPerGuestNight: cfg.Pricing.BreakfastPerGuestNight,
		ShuttleFee:             cfg.Pricing.ShuttleFee,
		TaxRate:                cfg.Pricing.TaxRate,
	}

	store := csvfile.New(csvfile.Config{
		L:     l,
		Path:  cfg.Store.Path,
		Title: cfg.Hotel.Name + " Booking Records",
	})

	refGen := simple.New()
	bookManager := booking.New(l, store, refGen, catalog, pricing)

	dates := parse.NewDates(parse.NewWhenInterpreter(), cfg.Booking.WindowYears)
	rooms := parse.NewRooms(catalog, bookManager)

	sessConf := dialog.Conf{
		L:         l,
		In:        os.Stdin,
		Out:       os.Stdout,
		Hotel:     cfg.Hotel,
		Responses: cfg.Responses,
		Catalog:   catalog,
		Pricing:   pricing,
	}

	sess := dialog.New(sessConf, bookManager, dates, rooms)

	l.LogInfo("Assistant ready, bookings stored at %s", cfg.Store.Path)

	if err := sess.Run(ctx); err != nil {
		return fmt.Errorf("run session: %w", err)
	}

	l.LogInfo("Session ended")

	return nil
}
