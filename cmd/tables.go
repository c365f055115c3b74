package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"tickethub-cli/model"
)

func renderEvents(w io.Writer, events []model.Event) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Event", "Date", "Time", "Venue", "Category", "Price"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 30},
		{Number: 5, WidthMax: 24},
	})
	for _, event := range events {
		t.AppendRow(table.Row{
			event.Id,
			event.Title,
			event.Date,
			event.Time,
			event.Venue,
			event.Category,
			model.FormatPrice(event.Price),
		})
	}
	t.SetCaption("%d events", len(events))
	t.Render()
}

func renderBookings(w io.Writer, bookings []model.Booking) {
	rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Booking", "Event", "Date & Time", "Venue", "Seats", "Total", "Status", "Booked On"}, rowConfigAutoMerge)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true, WidthMax: 24},
		{Number: 5, WidthMax: 30},
	})
	t.Style().Options.SeparateRows = true
	for _, b := range bookings {
		booked := ""
		if !b.BookingDate.IsZero() {
			booked = b.BookingDate.Local().Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{
			b.Id,
			b.EventTitle,
			b.EventDate + " " + b.EventTime,
			b.EventVenue,
			b.SeatList(),
			model.FormatPrice(b.TotalAmount),
			string(b.Status),
			booked,
		}, rowConfigAutoMerge)
	}
	t.Render()
}

func renderContacts(w io.Writer, subs []model.ContactSubmission) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Email", "Phone", "Subject", "Message", "Date"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, WidthMax: 40},
	})
	t.Style().Options.SeparateRows = true
	for i, s := range subs {
		t.AppendRow(table.Row{i + 1, s.Name, s.Email, s.Phone, s.Subject, s.Message, s.Date})
	}
	t.Render()
}
