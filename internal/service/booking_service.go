// Package service implements the booking lifecycle controller: creation of
// pending requests, admin edits, the conflict-gated transition into
// Confirmed, deletion, and the availability read model.  Notification side
// effects are fire-and-forget relative to state transitions.
package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/queue"
)

// BookingStore is the persistence capability the lifecycle controller needs.
// Implementations must return repository.ErrBookingNotFound for missing ids.
// Transact runs fn against a transaction-bound store; the write guarded by a
// conflict check runs inside it so two racing confirmations cannot both pass
// the read phase.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f BookingFilter) ([]model.Booking, int, error)
	ListBlocking(ctx context.Context, unitID string) ([]model.Booking, error)
	ListConfirmedForUnit(ctx context.Context, unitID string) ([]model.Booking, error)
	Transact(ctx context.Context, fn func(BookingStore) error) error
}

// EventPublisher dispatches notification events to the broker.  Failures are
// logged by the caller and never fail the surrounding mutation.
type EventPublisher interface {
	Publish(ctx context.Context, n queue.Notification) error
}

// BookingFilter narrows and orders admin booking listings.
type BookingFilter struct {
	Status model.BookingStatus // zero value means all statuses
	Search string              // matches guest name or email, case-insensitive
	SortBy string              // createdAt_desc (default), createdAt_asc, checkIn_asc, checkIn_desc
	Page   int
	Limit  int
}

// BookingPage is one page of an admin listing.
type BookingPage struct {
	Bookings []model.Booking `json:"bookings"`
	Page     int             `json:"page"`
	Pages    int             `json:"pages"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
}

// CreateBookingInput is a public booking submission.  Dates may carry
// arbitrary time-of-day; they are normalized to midnight UTC here and
// nowhere else.
type CreateBookingInput struct {
	UnitID     string
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	Message    string
}

// UpdateBookingInput is a partial admin edit.  Nil fields are left
// untouched.
type UpdateBookingInput struct {
	UnitID     *string
	GuestName  *string
	GuestEmail *string
	GuestPhone *string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Adults     *int
	Children   *int
	Message    *string
	Status     *model.BookingStatus
}

// BookingService orchestrates all booking mutations.  Direct field writes
// bypassing it are not supported: every path through here re-validates the
// date invariant and re-runs the conflict check when the outcome is a
// confirmed booking.
type BookingService struct {
	store  BookingStore
	events EventPublisher
	log    *zap.Logger
}

// NewBookingService constructs the service.  events may be nil when no
// broker is configured; log may be nil.
func NewBookingService(store BookingStore, events EventPublisher, log *zap.Logger) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{store: store, events: events, log: log}
}

// Create registers a new booking request in Pending status and dispatches a
// created notification.  All guest fields are trimmed, the email is
// format-checked, and the stay must span at least one night.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	b := &model.Booking{
		ID:         uuid.NewString(),
		UnitID:     strings.TrimSpace(in.UnitID),
		GuestName:  strings.TrimSpace(in.GuestName),
		GuestEmail: strings.ToLower(strings.TrimSpace(in.GuestEmail)),
		GuestPhone: strings.TrimSpace(in.GuestPhone),
		CheckIn:    model.NormalizeDate(in.CheckIn),
		CheckOut:   model.NormalizeDate(in.CheckOut),
		Adults:     in.Adults,
		Children:   in.Children,
		Message:    strings.TrimSpace(in.Message),
		Status:     model.StatusPending,
	}
	if err := validateBooking(b); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	s.notify(ctx, queue.KindBookingCreated, b)
	return b, nil
}

// Get returns a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	return s.store.GetByID(ctx, id)
}

// List returns one page of bookings for the admin back office.
func (s *BookingService) List(ctx context.Context, f BookingFilter) (*BookingPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 15
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("status", "unknown status filter")
	}
	bookings, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	pages := (total + f.Limit - 1) / f.Limit
	return &BookingPage{
		Bookings: bookings,
		Page:     f.Page,
		Pages:    pages,
		Total:    total,
		Limit:    f.Limit,
	}, nil
}

// ChangeStatus moves a booking to the given status.  Entering Confirmed is
// gated by the conflict check; the load, check and write all run inside one
// serializable transaction so a refused transition leaves the record
// untouched and two overlapping confirmations cannot slip past each other.
func (s *BookingService) ChangeStatus(ctx context.Context, id string, next model.BookingStatus) (*model.Booking, error) {
	if !next.Valid() {
		return nil, invalid("status", "must be one of Pending, Confirmed, Cancelled, Completed")
	}
	var (
		updated *model.Booking
		prev    model.BookingStatus
	)
	err := s.store.Transact(ctx, func(tx BookingStore) error {
		b, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		prev = b.Status
		if next == model.StatusConfirmed && prev != model.StatusConfirmed {
			confirmed, err := tx.ListConfirmedForUnit(ctx, b.UnitID)
			if err != nil {
				return err
			}
			if res := CheckConflict(*b, confirmed); res.Conflict {
				return &ConflictError{ConflictingBookingID: res.ConflictingBookingID}
			}
		}
		b.Status = next
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyTransition(ctx, prev, updated)
	return updated, nil
}

// Update applies a partial edit.  The date invariant is re-validated on
// every edit regardless of status, and when the resulting status is
// Confirmed the conflict check re-runs against the final dates and unit.
func (s *BookingService) Update(ctx context.Context, id string, in UpdateBookingInput) (*model.Booking, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, invalid("status", "must be one of Pending, Confirmed, Cancelled, Completed")
	}
	var (
		updated *model.Booking
		prev    model.BookingStatus
	)
	err := s.store.Transact(ctx, func(tx BookingStore) error {
		b, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		prev = b.Status
		applyEdit(b, in)
		if err := validateBooking(b); err != nil {
			return err
		}
		if b.Status == model.StatusConfirmed {
			confirmed, err := tx.ListConfirmedForUnit(ctx, b.UnitID)
			if err != nil {
				return err
			}
			if res := CheckConflict(*b, confirmed); res.Conflict {
				return &ConflictError{ConflictingBookingID: res.ConflictingBookingID}
			}
		}
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyTransition(ctx, prev, updated)
	return updated, nil
}

// Delete removes a booking permanently.  Deleting frees the unit for those
// dates; there is no soft delete and no conflict implication.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// BookedIntervals returns the date ranges to block on calendars for a unit.
// Only Pending and Confirmed bookings appear.  The returned end date is the
// night before the stored exclusive checkout, uniformly for every consumer,
// so that the checkout day itself stays selectable for a new arrival.
func (s *BookingService) BookedIntervals(ctx context.Context, unitID string) ([]model.BookedInterval, error) {
	bookings, err := s.store.ListBlocking(ctx, unitID)
	if err != nil {
		return nil, err
	}
	out := make([]model.BookedInterval, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		out = append(out, model.BookedInterval{
			Start:     b.CheckIn,
			End:       b.CheckOut.AddDate(0, 0, -1),
			Status:    b.Status,
			BookingID: b.ID,
		})
	}
	return out, nil
}

func applyEdit(b *model.Booking, in UpdateBookingInput) {
	if in.UnitID != nil {
		b.UnitID = strings.TrimSpace(*in.UnitID)
	}
	if in.GuestName != nil {
		b.GuestName = strings.TrimSpace(*in.GuestName)
	}
	if in.GuestEmail != nil {
		b.GuestEmail = strings.ToLower(strings.TrimSpace(*in.GuestEmail))
	}
	if in.GuestPhone != nil {
		b.GuestPhone = strings.TrimSpace(*in.GuestPhone)
	}
	if in.CheckIn != nil {
		b.CheckIn = model.NormalizeDate(*in.CheckIn)
	}
	if in.CheckOut != nil {
		b.CheckOut = model.NormalizeDate(*in.CheckOut)
	}
	if in.Adults != nil {
		b.Adults = *in.Adults
	}
	if in.Children != nil {
		b.Children = *in.Children
	}
	if in.Message != nil {
		b.Message = strings.TrimSpace(*in.Message)
	}
	if in.Status != nil {
		b.Status = *in.Status
	}
}

func validateBooking(b *model.Booking) error {
	if b.UnitID == "" {
		return invalid("unitId", "required")
	}
	if b.GuestName == "" {
		return invalid("guestName", "required")
	}
	if b.GuestEmail == "" {
		return invalid("guestEmail", "required")
	}
	if _, err := mail.ParseAddress(b.GuestEmail); err != nil {
		return invalid("guestEmail", "not a valid email address")
	}
	if b.GuestPhone == "" {
		return invalid("guestPhone", "required")
	}
	if b.Adults < 1 {
		return invalid("adults", "must be at least 1")
	}
	if b.Children < 0 {
		return invalid("children", "must not be negative")
	}
	if !b.Interval().Valid() {
		return invalid("checkOut", "check-out must be after check-in")
	}
	return nil
}

// notifyTransition dispatches confirmed/cancelled notifications after a
// committed status change.
func (s *BookingService) notifyTransition(ctx context.Context, prev model.BookingStatus, b *model.Booking) {
	switch {
	case b.Status == model.StatusConfirmed && prev != model.StatusConfirmed:
		s.notify(ctx, queue.KindBookingConfirmed, b)
	case b.Status == model.StatusCancelled && prev != model.StatusCancelled:
		s.notify(ctx, queue.KindBookingCancelled, b)
	}
}

// notify publishes a booking notification.  The mutation that triggered it
// has already been committed, so a dispatch failure is logged and dropped.
func (s *BookingService) notify(ctx context.Context, kind string, b *model.Booking) {
	if s.events == nil {
		return
	}
	n := queue.Notification{
		Kind: kind,
		Booking: &queue.BookingNotification{
			BookingID:  b.ID,
			UnitID:     b.UnitID,
			GuestName:  b.GuestName,
			GuestEmail: b.GuestEmail,
			CheckIn:    b.CheckIn.Format("2006-01-02"),
			CheckOut:   b.CheckOut.Format("2006-01-02"),
			Adults:     b.Adults,
			Children:   b.Children,
			Message:    b.Message,
		},
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, n); err != nil {
		s.log.Warn("notification dispatch failed",
			zap.String("kind", kind),
			zap.String("booking_id", b.ID),
			zap.Error(err))
	}
}
