package booking

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// ParseStatus accepts exactly the four booking lifecycle values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRejected, StatusPaid:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

type Booking struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	DestinationID int64     `json:"destination_id"`
	VenueID       int64     `json:"venue_id"`
	BookingDate   string    `json:"booking_date"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined display names, populated on listings. Empty when the referenced
	// row was deleted after the booking was made.
	DestName  string `json:"dest_name,omitempty"`
	VenueName string `json:"venue_name,omitempty"`
}

// Summary is the per-status breakdown shown on the booking status page.
type Summary struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Paid     int `json:"paid"`
}

func Summarize(bookings []Booking) Summary {
	s := Summary{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case StatusPending:
			s.Pending++
		case StatusAccepted:
			s.Accepted++
		case StatusRejected:
			s.Rejected++
		case StatusPaid:
			s.Paid++
		}
	}
	return s
}
