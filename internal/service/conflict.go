package service

import "github.com/tingitingi/rental-booking/internal/model"

// ConflictResult is the outcome of a conflict scan.  When Conflict is true,
// ConflictingBookingID names the first confirmed booking whose interval
// overlaps the candidate's.
type ConflictResult struct {
	Conflict             bool
	ConflictingBookingID string
}

// CheckConflict decides whether confirming the candidate booking is safe
// against the given set of bookings for the same unit.  Only Confirmed
// bookings constitute conflicts: pending inquiries may pile up on the same
// dates and the first one confirmed wins.  The candidate itself is skipped,
// so re-confirming or editing an already-confirmed booking never collides
// with its own record.
//
// The scan is advisory at the instant it runs; the service layer provides
// atomicity by invoking it inside the same transaction that writes the
// status.
func CheckConflict(candidate model.Booking, existing []model.Booking) ConflictResult {
	want := candidate.Interval()
	for i := range existing {
		b := &existing[i]
		if b.ID == candidate.ID {
			continue
		}
		if b.Status != model.StatusConfirmed {
			continue
		}
		if want.Overlaps(b.Interval()) {
			return ConflictResult{Conflict: true, ConflictingBookingID: b.ID}
		}
	}
	return ConflictResult{}
}
