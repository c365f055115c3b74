package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"tickethub-cli/model"
)

type eventItem struct {
	event model.Event
}

func (e eventItem) Title() string {
	return e.event.Title
}

func (e eventItem) Description() string {
	parts := []string{}
	if dt := e.event.DateTime(); dt != "" {
		parts = append(parts, dt)
	}
	if e.event.Venue != "" {
		parts = append(parts, e.event.Venue)
	}
	if e.event.Duration != "" {
		parts = append(parts, e.event.Duration)
	}
	parts = append(parts, model.FormatPrice(e.event.Price))
	if e.event.Category != "" {
		parts = append(parts, e.event.Category)
	}
	return strings.Join(parts, " • ")
}

// FilterValue covers title and description so typing searches both.
func (e eventItem) FilterValue() string {
	return e.event.Title + " " + e.event.Description
}

func buildEventItems(events []model.Event) []list.Item {
	items := make([]list.Item, 0, len(events))
	for _, event := range events {
		items = append(items, eventItem{event: event})
	}
	return items
}

type bookingItem struct {
	booking model.Booking
}

func (b bookingItem) Title() string {
	return fmt.Sprintf("%s • %s", b.booking.EventTitle, b.booking.Status)
}

func (b bookingItem) Description() string {
	parts := []string{
		strings.TrimSpace(b.booking.EventDate + " " + b.booking.EventTime),
	}
	if b.booking.EventVenue != "" {
		parts = append(parts, b.booking.EventVenue)
	}
	parts = append(parts,
		"Seats: "+b.booking.SeatList(),
		"Total: "+model.FormatPrice(b.booking.TotalAmount),
		b.booking.Id,
	)
	if !b.booking.BookingDate.IsZero() {
		parts = append(parts, "booked "+b.booking.BookingDate.Format("2006-01-02 15:04"))
	}
	return strings.Join(parts, " • ")
}

func (b bookingItem) FilterValue() string {
	return b.booking.EventTitle + " " + b.booking.Id
}

func buildBookingItems(bookings []model.Booking) []list.Item {
	items := make([]list.Item, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, bookingItem{booking: b})
	}
	return items
}

type contactItem struct {
	position   int
	submission model.ContactSubmission
}

func (c contactItem) Title() string {
	return fmt.Sprintf("#%d %s <%s>", c.position, c.submission.Name, c.submission.Email)
}

func (c contactItem) Description() string {
	message := c.submission.Message
	if runes := []rune(message); len(runes) > 60 {
		message = string(runes[:57]) + "..."
	}
	return strings.Join([]string{c.submission.Subject, c.submission.Phone, message, c.submission.Date}, " • ")
}

func (c contactItem) FilterValue() string {
	return c.submission.Name + " " + c.submission.Subject
}

func buildContactItems(subs []model.ContactSubmission) []list.Item {
	items := make([]list.Item, 0, len(subs))
	for i, s := range subs {
		items = append(items, contactItem{position: i + 1, submission: s})
	}
	return items
}
