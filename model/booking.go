package model

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
)

type Booking struct {
	Id          string        `json:"id"`
	EventId     int           `json:"eventId"`
	EventTitle  string        `json:"eventTitle"`
	EventDate   string        `json:"eventDate"`
	EventTime   string        `json:"eventTime"`
	EventVenue  string        `json:"eventVenue"`
	Seats       []SeatID      `json:"seats"`
	TotalAmount float64       `json:"totalAmount"`
	BookingDate time.Time     `json:"bookingDate"`
	Status      BookingStatus `json:"status"`
}

func (b Booking) SeatList() string {
	labels := make([]string, 0, len(b.Seats))
	for _, seat := range b.Seats {
		labels = append(labels, string(seat))
	}
	return strings.Join(labels, ", ")
}
