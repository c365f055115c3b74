package model

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
)

const (
	SeatRows    = 10
	SeatColumns = 12
)

// SeatID names one seat of the fixed grid, e.g. "A1" or "J12".
type SeatID string

// NewSeatID builds the identifier for a 1-based row and column.
func NewSeatID(row, column int) SeatID {
	return SeatID(fmt.Sprintf("%c%d", rune('A'+row-1), column))
}

// ParseSeatID returns the 1-based row and column of id. Only the form
// NewSeatID produces is accepted.
func ParseSeatID(id SeatID) (row int, column int, err error) {
	s := string(id)
	if len(s) < 2 {
		return 0, 0, errors.Newf("invalid seat %q", s)
	}
	letter := s[0]
	if letter < 'A' || letter >= 'A'+SeatRows {
		return 0, 0, errors.Newf("invalid seat row in %q", s)
	}
	if s[1] == '0' {
		return 0, 0, errors.Newf("invalid seat column in %q", s)
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return 0, 0, errors.Newf("invalid seat column in %q", s)
		}
	}
	column, err = strconv.Atoi(s[1:])
	if err != nil || column < 1 || column > SeatColumns {
		return 0, 0, errors.Newf("invalid seat column in %q", s)
	}
	row = int(letter-'A') + 1
	// Only the canonical spelling names a seat, so set lookups never alias.
	if NewSeatID(row, column) != id {
		return 0, 0, errors.Newf("invalid seat %q", s)
	}
	return row, column, nil
}

func (id SeatID) Valid() bool {
	_, _, err := ParseSeatID(id)
	return err == nil
}

// RowLabel returns the letter shown at the start of a seat map row.
func RowLabel(row int) string {
	return string(rune('A' + row - 1))
}

// AllSeats lists the whole grid in row-major order.
func AllSeats() []SeatID {
	seats := make([]SeatID, 0, SeatRows*SeatColumns)
	for row := 1; row <= SeatRows; row++ {
		for column := 1; column <= SeatColumns; column++ {
			seats = append(seats, NewSeatID(row, column))
		}
	}
	return seats
}

// SeatLess orders seats row first, then by column, so "A2" sorts before "A10".
func SeatLess(a, b SeatID) bool {
	ar, ac, aerr := ParseSeatID(a)
	br, bc, berr := ParseSeatID(b)
	if aerr != nil || berr != nil {
		return a < b
	}
	if ar != br {
		return ar < br
	}
	return ac < bc
}
