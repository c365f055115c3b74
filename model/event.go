package model

import "strconv"

type Event struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Venue       string  `json:"venue"`
	Duration    string  `json:"duration"`
	Category    string  `json:"category"`
}

func (e Event) DateTime() string {
	if e.Time == "" {
		return e.Date
	}
	return e.Date + " " + e.Time
}

type Catalog struct {
	Events []Event `json:"events"`
}

// FormatPrice renders an amount the way tickets show it: "$250", "$12.5".
func FormatPrice(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}
