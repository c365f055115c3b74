package booking

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tickethub-cli/model"
)

func TestToggle_SelectAndDeselect(t *testing.T) {
	sel := NewSelection(1, nil)

	selected, err := sel.Toggle("A1")
	require.NoError(t, err)
	assert.True(t, selected)
	assert.Equal(t, []model.SeatID{"A1"}, sel.Seats())

	selected, err = sel.Toggle("A1")
	require.NoError(t, err)
	assert.False(t, selected)
	assert.Empty(t, sel.Seats())
}

func TestToggle_KeepsPickOrder(t *testing.T) {
	sel := NewSelection(1, nil)
	for _, seat := range []model.SeatID{"C3", "A1", "B2"} {
		_, err := sel.Toggle(seat)
		require.NoError(t, err)
	}

	assert.Equal(t, []model.SeatID{"C3", "A1", "B2"}, sel.Seats())
}

func TestToggle_RejectsOccupiedSeat(t *testing.T) {
	sel := NewSelection(1, NewSeatSet("A1"))

	_, err := sel.Toggle("A1")

	assert.True(t, errors.Is(err, ErrSeatOccupied))
	assert.Equal(t, 0, sel.Count())
}

func TestToggle_RejectsSeatOutsideGrid(t *testing.T) {
	sel := NewSelection(1, nil)

	_, err := sel.Toggle("K1")

	assert.True(t, errors.Is(err, ErrInvalidSeat))
}

func TestToggle_NinthSeatIsCapacityWarning(t *testing.T) {
	sel := NewSelection(1, nil)
	for column := 1; column <= MaxSeatsPerBooking; column++ {
		_, err := sel.Toggle(model.NewSeatID(1, column))
		require.NoError(t, err)
	}
	before := sel.Seats()

	selected, err := sel.Toggle("B1")

	assert.False(t, selected)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, MaxSeatsPerBooking, sel.Count())
	assert.Equal(t, before, sel.Seats())
}

func TestToggle_DeselectAllowedAtCapacity(t *testing.T) {
	sel := NewSelection(1, nil)
	for column := 1; column <= MaxSeatsPerBooking; column++ {
		_, _ = sel.Toggle(model.NewSeatID(1, column))
	}

	_, err := sel.Toggle("A3")

	require.NoError(t, err)
	assert.Equal(t, MaxSeatsPerBooking-1, sel.Count())
}

func TestDeselect_UnknownSeatIsNoop(t *testing.T) {
	sel := NewSelection(1, nil)
	_, _ = sel.Toggle("A1")

	sel.Deselect("F6")

	assert.Equal(t, []model.SeatID{"A1"}, sel.Seats())
}

func TestClearAndTotal(t *testing.T) {
	sel := NewSelection(1, nil)
	_, _ = sel.Toggle("A1")
	_, _ = sel.Toggle("A2")
	_, _ = sel.Toggle("A3")

	assert.Equal(t, 750.0, sel.Total(250))

	sel.Clear()
	assert.Equal(t, 0.0, sel.Total(250))
	assert.Empty(t, sel.Seats())
}

func TestReconcile_DropsNewlyOccupiedSeats(t *testing.T) {
	sel := NewSelection(1, nil)
	_, _ = sel.Toggle("A1")
	_, _ = sel.Toggle("A2")
	_, _ = sel.Toggle("A3")

	dropped := sel.Reconcile(NewSeatSet("A2", "H8"))

	assert.Equal(t, []model.SeatID{"A2"}, dropped)
	assert.Equal(t, []model.SeatID{"A1", "A3"}, sel.Seats())
	assert.True(t, sel.IsOccupied("H8"))
}

func TestSummary(t *testing.T) {
	event := model.Event{Id: 1, Title: "Rock Night", Date: "2026-05-01", Time: "20:00", Price: 250}
	sel := NewSelection(event.Id, nil)
	_, _ = sel.Toggle("A1")
	_, _ = sel.Toggle("A2")

	summary := sel.Summary(event)

	assert.Equal(t, "Rock Night", summary.EventTitle)
	assert.Equal(t, "2026-05-01 20:00", summary.DateTime)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 500.0, summary.Total)
	assert.Equal(t, []model.SeatID{"A1", "A2"}, summary.Seats)
}
