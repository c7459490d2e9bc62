package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking request.
// Transitions are unrestricted except that entering StatusConfirmed is gated
// by the conflict check in the service layer.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
	StatusCompleted BookingStatus = "Completed"
)

// Valid reports whether s is one of the four known statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status occupies calendar dates.
// Cancelled and Completed bookings never block the calendar.
func (s BookingStatus) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is a reservation request for a rental unit.
//
// CheckIn/CheckOut form the half-open interval [CheckIn, CheckOut) at day
// granularity, midnight UTC.  UnitID is advisory: it names the house or space
// being booked but carries no referential enforcement.  The ID is an opaque
// UUID assigned at creation and never changed.
type Booking struct {
	ID         string        `json:"id"`
	UnitID     string        `json:"unitId"`
	GuestName  string        `json:"guestName"`
	GuestEmail string        `json:"guestEmail"`
	GuestPhone string        `json:"guestPhone"`
	CheckIn    time.Time     `json:"checkIn"`
	CheckOut   time.Time     `json:"checkOut"`
	Adults     int           `json:"adults"`
	Children   int           `json:"children"`
	Message    string        `json:"message,omitempty"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Interval returns the stay as a half-open date interval.
func (b *Booking) Interval() DateInterval {
	return DateInterval{Start: b.CheckIn, End: b.CheckOut}
}

// BookedInterval is the availability read model served to calendar widgets.
// End carries the display-exclusion convention: it is the night before the
// stored (exclusive) checkout, so the checkout day itself shows as available
// for a new arrival.  Both public and admin views use this one shape.
type BookedInterval struct {
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
	BookingID string        `json:"bookingId"`
}
