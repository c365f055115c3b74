package booking

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"tickethub-cli/model"
)

var (
	ErrEmptySelection   = errors.New("select at least one seat")
	ErrSeatConflict     = errors.New("seats no longer available")
	ErrCapacityExceeded = errors.Newf("you can select maximum %d seats at a time", MaxSeatsPerBooking)
	ErrSeatOccupied     = errors.New("seat already booked")
	ErrInvalidSeat      = errors.New("invalid seat")
)

// SeatConflictError names the seats that were booked between selection and
// commit. It matches ErrSeatConflict with errors.Is.
type SeatConflictError struct {
	EventID int
	Seats   []model.SeatID
}

func (e *SeatConflictError) Error() string {
	labels := make([]string, 0, len(e.Seats))
	for _, seat := range e.Seats {
		labels = append(labels, string(seat))
	}
	return fmt.Sprintf("%s: %s", ErrSeatConflict.Error(), strings.Join(labels, ", "))
}

func (e *SeatConflictError) Is(target error) bool {
	return target == ErrSeatConflict
}

func newSeatConflict(eventID int, seats []model.SeatID) error {
	return errors.Mark(&SeatConflictError{EventID: eventID, Seats: seats}, ErrSeatConflict)
}

// ConflictingSeats extracts the contested seats from err, if any.
func ConflictingSeats(err error) []model.SeatID {
	var conflict *SeatConflictError
	if errors.As(err, &conflict) {
		return conflict.Seats
	}
	return nil
}
