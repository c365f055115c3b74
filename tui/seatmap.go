package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"tickethub-cli/booking"
	"tickethub-cli/model"
)

func (m appModel) handleSeatMapKey(key string) (appModel, tea.Cmd, bool) {
	if m.selection == nil {
		return m, nil, false
	}
	switch key {
	case "up", "k":
		if m.cursorRow > 1 {
			m.cursorRow--
		}
	case "down", "j":
		if m.cursorRow < model.SeatRows {
			m.cursorRow++
		}
	case "left", "h":
		if m.cursorCol > 1 {
			m.cursorCol--
		}
	case "right", "l":
		if m.cursorCol < model.SeatColumns {
			m.cursorCol++
		}
	case " ", "x":
		m.toggleSeat(model.NewSeatID(m.cursorRow, m.cursorCol))
	case "n":
		m.showSeatNumbers = !m.showSeatNumbers
	case "enter":
		return m.confirmBooking()
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *appModel) toggleSeat(seat model.SeatID) {
	m.clearNotice()
	_, err := m.selection.Toggle(seat)
	switch {
	case err == nil:
	case errors.Is(err, booking.ErrSeatOccupied):
		m.setNotice(fmt.Sprintf("Seat %s is already booked.", seat), true)
	case errors.Is(err, booking.ErrCapacityExceeded):
		m.setNotice(capitalize(booking.ErrCapacityExceeded.Error())+".", true)
	default:
		m.setNotice(err.Error(), true)
	}
}

func (m appModel) confirmBooking() (appModel, tea.Cmd, bool) {
	m.clearNotice()
	created, err := m.ledger.Commit(m.event, m.selection.Seats())
	switch {
	case err == nil:
	case errors.Is(err, booking.ErrEmptySelection):
		m.setNotice("Please select at least one seat.", true)
		return m, nil, true
	case errors.Is(err, booking.ErrSeatConflict):
		m.selection.Reconcile(m.ledger.Availability().Occupied(m.event.Id))
		m.setNotice(fmt.Sprintf("Seats %s were just booked by someone else. Pick again.",
			joinSeats(booking.ConflictingSeats(err))), true)
		return m, nil, true
	default:
		return m, errCmd(err, stateShowSeatMap), true
	}

	m.confirmed = created
	m.bookingCount = m.ledger.Count()
	m.leaveEvent()
	m.event = model.Event{Id: created.EventId, Title: created.EventTitle, Venue: created.EventVenue}
	m.setNotice("Booking Confirmed!", false)
	m.state = stateConfirmed
	return m, nil, true
}

type seatCell struct {
	seat     model.SeatID
	token    string
	occupied bool
	selected bool
	cursor   bool
}

func (m appModel) seatMapView() string {
	if m.selection == nil {
		return "No event selected."
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSeatMap(), "    ", m.summaryView())
}

func (m appModel) renderSeatMap() string {
	cellWidth := 2
	if m.showSeatNumbers {
		cellWidth = 3
	}
	rowWidth := 1

	seatStyleAvailable := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleOccupied := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleSelected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	gridWidth := model.SeatColumns*(cellWidth+1) - 1
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))
	screenBar := screenBarBlock(gridWidth, "SCREEN")

	var b strings.Builder
	indent := strings.Repeat(" ", rowWidth+1)
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n\n")

	for row := 1; row <= model.SeatRows; row++ {
		label := model.RowLabel(row)
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, label))
		for col := 1; col <= model.SeatColumns; col++ {
			cell := m.seatCell(row, col)
			text := cell.token
			if m.showSeatNumbers && !cell.occupied && !cell.selected {
				text = fmt.Sprintf("%d", col)
			}
			rendered := padCell(text, cellWidth)
			switch {
			case cell.selected:
				rendered = seatStyleSelected.Render(rendered)
			case cell.occupied:
				rendered = seatStyleOccupied.Render(rendered)
			default:
				rendered = seatStyleAvailable.Render(rendered)
			}
			if cell.cursor {
				rendered = cursorStyle.Render(rendered)
			}
			b.WriteString(rendered)
			if col < model.SeatColumns {
				b.WriteString(" ")
			}
		}
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, label))
	}

	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(seatStyleAvailable.Render("[]") + " available  ")
	b.WriteString(seatStyleSelected.Render("**") + " selected  ")
	b.WriteString(seatStyleOccupied.Render("XX") + " booked")
	b.WriteString("\n")
	b.WriteString(indent + hint(fmt.Sprintf("Cursor: %s", model.NewSeatID(m.cursorRow, m.cursorCol))))
	return b.String()
}

func (m appModel) seatCell(row, col int) seatCell {
	seat := model.NewSeatID(row, col)
	cell := seatCell{
		seat:   seat,
		token:  "[]",
		cursor: row == m.cursorRow && col == m.cursorCol,
	}
	switch {
	case m.selection.IsSelected(seat):
		cell.selected = true
		cell.token = "**"
	case m.selection.IsOccupied(seat):
		cell.occupied = true
		cell.token = "XX"
	}
	return cell
}

func (m appModel) summaryView() string {
	summary := m.selection.Summary(m.event)
	seats := "None"
	if summary.Count > 0 {
		seats = joinSeats(summary.Seats)
	}
	label := lipgloss.NewStyle().Faint(true)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Booking Summary"),
		"",
		label.Render("Event: ") + summary.EventTitle,
		label.Render("Date & Time: ") + summary.DateTime,
		label.Render("Selected Seats: ") + seats,
		label.Render("Seat Count: ") + fmt.Sprintf("%d / %d", summary.Count, booking.MaxSeatsPerBooking),
		label.Render("Price per Seat: ") + model.FormatPrice(summary.Price),
		label.Render("Total Amount: ") + lipgloss.NewStyle().Bold(true).Render(model.FormatPrice(summary.Total)),
		"",
	}
	if summary.Count == 0 {
		lines = append(lines, hint("Select seats to continue"))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("enter  Confirm Booking"))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("5")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) confirmedView() string {
	b := m.confirmed
	label := lipgloss.NewStyle().Faint(true)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render("Your tickets have been booked successfully."),
		"",
		label.Render("Booking ID: ") + b.Id,
		label.Render("Event: ") + b.EventTitle,
		label.Render("Date & Time: ") + strings.TrimSpace(b.EventDate+" "+b.EventTime),
		label.Render("Venue: ") + b.EventVenue,
		label.Render("Seats: ") + b.SeatList(),
		label.Render("Total Amount: ") + model.FormatPrice(b.TotalAmount),
		label.Render("Status: ") + string(b.Status),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("2")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func joinSeats(seats []model.SeatID) string {
	return model.Booking{Seats: seats}.SeatList()
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
