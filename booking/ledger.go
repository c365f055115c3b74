package booking

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"tickethub-cli/model"
	"tickethub-cli/store"
)

const maxIDAttempts = 8

// Ledger commits seat selections into the booking store. Its mutex makes
// the read-append-write of a commit one step for everything sharing the
// ledger.
type Ledger struct {
	mu   sync.Mutex
	repo store.Repository[model.Booking]
	ids  IDGenerator
	now  func() time.Time
	log  logrus.FieldLogger
}

type LedgerOption func(*Ledger)

func WithIDGenerator(ids IDGenerator) LedgerOption {
	return func(l *Ledger) {
		if ids != nil {
			l.ids = ids
		}
	}
}

func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

func WithLogger(log logrus.FieldLogger) LedgerOption {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

func NewLedger(repo store.Repository[model.Booking], opts ...LedgerOption) *Ledger {
	l := &Ledger{
		repo: repo,
		ids:  NewTimeIDs(),
		now:  time.Now,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Availability returns a resolver over the same store the ledger writes to.
func (l *Ledger) Availability() *Availability {
	return NewAvailability(l.repo)
}

// Commit turns seats into a confirmed booking for event. Availability is
// checked again against the store, so seats taken since they were picked
// produce a SeatConflictError and nothing is written.
func (l *Ledger) Commit(event model.Event, seats []model.SeatID) (model.Booking, error) {
	seats = dedupeSeats(seats)
	if len(seats) == 0 {
		return model.Booking{}, ErrEmptySelection
	}
	if len(seats) > MaxSeatsPerBooking {
		return model.Booking{}, ErrCapacityExceeded
	}
	for _, seat := range seats {
		if !seat.Valid() {
			return model.Booking{}, errors.Wrapf(ErrInvalidSeat, "%q", seat)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bookings, err := l.repo.Load()
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "load bookings")
	}

	occupied := occupiedIn(bookings, event.Id)
	var contested []model.SeatID
	for _, seat := range seats {
		if occupied.Has(seat) {
			contested = append(contested, seat)
		}
	}
	if len(contested) > 0 {
		l.log.WithFields(logrus.Fields{
			"event_id": event.Id,
			"seats":    contested,
		}).Warn("seat conflict on commit")
		return model.Booking{}, newSeatConflict(event.Id, contested)
	}

	id, err := l.uniqueID(bookings)
	if err != nil {
		return model.Booking{}, err
	}

	created := model.Booking{
		Id:          id,
		EventId:     event.Id,
		EventTitle:  event.Title,
		EventDate:   event.Date,
		EventTime:   event.Time,
		EventVenue:  event.Venue,
		Seats:       seats,
		TotalAmount: float64(len(seats)) * event.Price,
		BookingDate: l.now(),
		Status:      model.BookingConfirmed,
	}

	next := make([]model.Booking, 0, len(bookings)+1)
	next = append(next, bookings...)
	next = append(next, created)
	if err := l.repo.Save(next); err != nil {
		return model.Booking{}, errors.Wrap(err, "save bookings")
	}

	l.log.WithFields(logrus.Fields{
		"booking_id": created.Id,
		"event_id":   created.EventId,
		"seats":      len(created.Seats),
		"bookings":   len(next),
	}).Info("booking confirmed")
	return created, nil
}

// Bookings returns every stored booking in commit order.
func (l *Ledger) Bookings() ([]model.Booking, error) {
	return l.repo.Load()
}

// Recent returns the stored bookings newest first.
func (l *Ledger) Recent() ([]model.Booking, error) {
	bookings, err := l.repo.Load()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(bookings)-1; i < j; i, j = i+1, j-1 {
		bookings[i], bookings[j] = bookings[j], bookings[i]
	}
	return bookings, nil
}

// Count is the total number of stored bookings.
func (l *Ledger) Count() int {
	bookings, err := l.repo.Load()
	if err != nil {
		return 0
	}
	return len(bookings)
}

func (l *Ledger) uniqueID(bookings []model.Booking) (string, error) {
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		taken[b.Id] = true
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := l.ids.NewID()
		if id != "" && !taken[id] {
			return id, nil
		}
	}
	return "", errors.Newf("could not generate a unique booking id after %d attempts", maxIDAttempts)
}

func dedupeSeats(seats []model.SeatID) []model.SeatID {
	seen := make(map[model.SeatID]bool, len(seats))
	out := make([]model.SeatID, 0, len(seats))
	for _, seat := range seats {
		if seen[seat] {
			continue
		}
		seen[seat] = true
		out = append(out, seat)
	}
	return out
}
