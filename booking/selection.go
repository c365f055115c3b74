package booking

import (
	"slices"

	"github.com/cockroachdb/errors"
	"tickethub-cli/model"
)

// MaxSeatsPerBooking caps a single selection.
const MaxSeatsPerBooking = 8

// Selection holds the seats a user has picked for one event before
// committing. It lives only while the event's seat map is open.
type Selection struct {
	eventID  int
	occupied SeatSet
	selected []model.SeatID
}

func NewSelection(eventID int, occupied SeatSet) *Selection {
	if occupied == nil {
		occupied = SeatSet{}
	}
	return &Selection{eventID: eventID, occupied: occupied}
}

func (s *Selection) EventID() int {
	return s.eventID
}

// Toggle deselects a picked seat or picks a free one. Picking an occupied
// seat or going past the cap leaves the selection untouched.
func (s *Selection) Toggle(seat model.SeatID) (selected bool, err error) {
	if i := slices.Index(s.selected, seat); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return false, nil
	}
	if !seat.Valid() {
		return false, errors.Wrapf(ErrInvalidSeat, "%q", seat)
	}
	if s.occupied.Has(seat) {
		return false, errors.Wrapf(ErrSeatOccupied, "%s", seat)
	}
	if len(s.selected) >= MaxSeatsPerBooking {
		return false, ErrCapacityExceeded
	}
	s.selected = append(s.selected, seat)
	return true, nil
}

func (s *Selection) Deselect(seat model.SeatID) {
	if i := slices.Index(s.selected, seat); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
	}
}

func (s *Selection) Clear() {
	s.selected = nil
}

func (s *Selection) IsSelected(seat model.SeatID) bool {
	return slices.Contains(s.selected, seat)
}

func (s *Selection) IsOccupied(seat model.SeatID) bool {
	return s.occupied.Has(seat)
}

// Seats returns a copy of the picked seats in pick order.
func (s *Selection) Seats() []model.SeatID {
	return slices.Clone(s.selected)
}

func (s *Selection) Count() int {
	return len(s.selected)
}

func (s *Selection) Total(pricePerSeat float64) float64 {
	return float64(len(s.selected)) * pricePerSeat
}

// Reconcile swaps in a fresh occupied set and drops picked seats that are
// now taken. It returns the dropped seats.
func (s *Selection) Reconcile(occupied SeatSet) []model.SeatID {
	if occupied == nil {
		occupied = SeatSet{}
	}
	s.occupied = occupied

	var dropped []model.SeatID
	kept := s.selected[:0]
	for _, seat := range s.selected {
		if occupied.Has(seat) {
			dropped = append(dropped, seat)
			continue
		}
		kept = append(kept, seat)
	}
	s.selected = kept
	return dropped
}

// Summary is what the booking panel shows for the current selection.
type Summary struct {
	EventTitle string
	DateTime   string
	Seats      []model.SeatID
	Count      int
	Price      float64
	Total      float64
}

func (s *Selection) Summary(event model.Event) Summary {
	return Summary{
		EventTitle: event.Title,
		DateTime:   event.DateTime(),
		Seats:      s.Seats(),
		Count:      s.Count(),
		Price:      event.Price,
		Total:      s.Total(event.Price),
	}
}
