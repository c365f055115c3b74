package booking

import (
	"sort"

	"golang.org/x/exp/maps"
	"tickethub-cli/model"
	"tickethub-cli/store"
)

// SeatSet is an unordered collection of seat identifiers.
type SeatSet map[model.SeatID]struct{}

func NewSeatSet(seats ...model.SeatID) SeatSet {
	set := make(SeatSet, len(seats))
	for _, seat := range seats {
		set[seat] = struct{}{}
	}
	return set
}

func (s SeatSet) Has(seat model.SeatID) bool {
	_, ok := s[seat]
	return ok
}

func (s SeatSet) Len() int {
	return len(s)
}

// Sorted returns the seats in seat map order.
func (s SeatSet) Sorted() []model.SeatID {
	seats := maps.Keys(s)
	sort.Slice(seats, func(i, j int) bool {
		return model.SeatLess(seats[i], seats[j])
	})
	return seats
}

// Availability answers which seats are taken by reading the booking store.
// Every call reads the store again; results must not be reused across a
// commit.
type Availability struct {
	repo store.Repository[model.Booking]
}

func NewAvailability(repo store.Repository[model.Booking]) *Availability {
	return &Availability{repo: repo}
}

// Occupied is the union of seats over every booking for eventID. A store
// that cannot be read counts as having no bookings.
func (a *Availability) Occupied(eventID int) SeatSet {
	bookings, err := a.repo.Load()
	if err != nil {
		return SeatSet{}
	}
	return occupiedIn(bookings, eventID)
}

func occupiedIn(bookings []model.Booking, eventID int) SeatSet {
	occupied := SeatSet{}
	for _, b := range bookings {
		if b.EventId != eventID {
			continue
		}
		for _, seat := range b.Seats {
			occupied[seat] = struct{}{}
		}
	}
	return occupied
}
