// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into outbound notifications.
package queue

// NotificationQueue is the durable queue all notification events go through.
const NotificationQueue = "notifications"

// Notification kinds.  Booking kinds correspond to lifecycle transitions
// that trigger guest/admin email; contact messages come from the public
// contact form.
const (
	KindBookingCreated   = "booking.created"
	KindBookingConfirmed = "booking.confirmed"
	KindBookingCancelled = "booking.cancelled"
	KindContactMessage   = "contact.message"
)

// BookingNotification carries enough booking detail for a downstream mailer
// to render guest and admin messages without querying the database.
type BookingNotification struct {
	BookingID  string `json:"booking_id"`
	UnitID     string `json:"unit_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
	Message    string `json:"message,omitempty"`
}

// ContactNotification carries a contact-form submission for forwarding to
// the site administrator.
type ContactNotification struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Notification is the envelope published to NotificationQueue.  Exactly one
// of Booking or Contact is set, matching Kind.
type Notification struct {
	Kind       string               `json:"kind"`
	Booking    *BookingNotification `json:"booking,omitempty"`
	Contact    *ContactNotification `json:"contact,omitempty"`
	OccurredAt string               `json:"occurred_at"`
}
