// Package csvfile is the record store adapter: an append-only CSV file of
// confirmed bookings. Reads return a snapshot of the rows that parse; rows
// that do not are skipped, never treated as store corruption. A missing
// file reads as an empty store.
//
// Access is guarded by an in-process mutex only. Appending from multiple
// processes at once is not safe; concurrent writers are a known limitation
// of this design.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/hotelsara/concierge/internal/booking"
	"github.com/hotelsara/concierge/internal/logger"
)

const recordFields = 11

var header = []string{
	"Name", "Phone", "Check-in Date", "Check-out Date", "Nights", "Guests",
	"Rooms", "Confirmation Date", "Payment Info", "Special Requirements", "Booking Reference",
}

type Config struct {
	L     *logger.Logger
	Path  string
	Title string
}

type Store struct {
	mu    sync.Mutex
	l     *logger.Logger
	path  string
	title string
}

func New(conf Config) *Store {
	title := conf.Title
	if title == "" {
		title = "Booking Records"
	}

	return &Store{
		l:     conf.L,
		path:  conf.Path,
		title: title,
	}
}

// ListRecords returns every stored booking row, in file order.
func (s *Store) ListRecords(_ context.Context) ([]booking.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("open booking store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records []booking.Record

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.l.LogWarnf("Skipping unreadable row %d in %s: %v", parseErr.Line, s.path, err)

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("read booking store: %w", err)
		}

		rec, ok := rowToRecord(row)
		if !ok {
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

// AppendRecord appends one booking row, creating the backing file (with its
// title and header rows) and any parent directory when absent.
func (s *Store) AppendRecord(_ context.Context, rec booking.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create booking store directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open booking store for append: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat booking store: %w", err)
	}

	w := csv.NewWriter(f)

	if info.Size() == 0 {
		if err := w.Write([]string{"# " + s.title}); err != nil {
			return fmt.Errorf("write booking store title: %w", err)
		}

		if err := w.Write(header); err != nil {
			return fmt.Errorf("write booking store header: %w", err)
		}
	}

	if err := w.Write(recordToRow(rec)); err != nil {
		return fmt.Errorf("write booking row: %w", err)
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("flush booking store: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close booking store: %w", err)
	}

	return nil
}

func recordToRow(rec booking.Record) []string {
	return []string{
		rec.Name,
		rec.Phone,
		rec.Start,
		rec.End,
		strconv.Itoa(rec.Nights),
		rec.Guests,
		rec.Rooms,
		rec.ConfirmedAt,
		rec.Payment,
		rec.Special,
		rec.Reference,
	}
}

func rowToRecord(row []string) (booking.Record, bool) {
	if len(row) < recordFields {
		return booking.Record{}, false
	}

	// Title and header rows are not records.
	if strings.HasPrefix(row[0], "#") || row[0] == "Name" {
		return booking.Record{}, false
	}

	nights, err := strconv.Atoi(row[4])
	if err != nil {
		return booking.Record{}, false
	}

	return booking.Record{
		Name:        row[0],
		Phone:       row[1],
		Start:       row[2],
		End:         row[3],
		Nights:      nights,
		Guests:      row[5],
		Rooms:       row[6],
		ConfirmedAt: row[7],
		Payment:     row[8],
		Special:     row[9],
		Reference:   row[10],
	}, true
}
