package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/queue"
	"github.com/tingitingi/rental-booking/internal/repository"
	"github.com/tingitingi/rental-booking/internal/service"
)

// memStore is an in-memory service.BookingStore.  Transact runs the callback
// against the store itself; serializability is the real repository's concern
// and is not simulated here.
type memStore struct {
	bookings map[string]*model.Booking
}

func newMemStore(seed ...model.Booking) *memStore {
	s := &memStore{bookings: map[string]*model.Booking{}}
	for i := range seed {
		b := seed[i]
		s.bookings[b.ID] = &b
	}
	return s
}

func (s *memStore) Create(_ context.Context, b *model.Booking) error {
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) Update(_ context.Context, b *model.Booking) error {
	if _, ok := s.bookings[b.ID]; !ok {
		return repository.ErrBookingNotFound
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	if _, ok := s.bookings[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *memStore) List(_ context.Context, f service.BookingFilter) ([]model.Booking, int, error) {
	out := []model.Booking{}
	for _, b := range s.bookings {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(b.GuestName), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (s *memStore) ListBlocking(_ context.Context, unitID string) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range s.bookings {
		if b.UnitID == unitID && b.Status.Blocks() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memStore) ListConfirmedForUnit(_ context.Context, unitID string) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range s.bookings {
		if b.UnitID == unitID && b.Status == model.StatusConfirmed {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memStore) Transact(_ context.Context, fn func(service.BookingStore) error) error {
	return fn(s)
}

// memPublisher records notifications and can be forced to fail.
type memPublisher struct {
	published []queue.Notification
	err       error
}

func (p *memPublisher) Publish(_ context.Context, n queue.Notification) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

func (p *memPublisher) kinds() []string {
	out := make([]string, 0, len(p.published))
	for _, n := range p.published {
		out = append(out, n.Kind)
	}
	return out
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func stay(id, unitID string, status model.BookingStatus, checkIn, checkOut int) model.Booking {
	return model.Booking{
		ID:         id,
		UnitID:     unitID,
		GuestName:  "Guest " + id,
		GuestEmail: id + "@example.com",
		GuestPhone: "+33600000000",
		CheckIn:    day(checkIn),
		CheckOut:   day(checkOut),
		Adults:     2,
		Status:     status,
	}
}

func validInput() service.CreateBookingInput {
	return service.CreateBookingInput{
		UnitID:     "oxala",
		GuestName:  "Aline Costa",
		GuestEmail: "Aline.Costa@Example.com ",
		GuestPhone: "+55 71 99999-0000",
		CheckIn:    time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 6, 14, 11, 0, 0, 0, time.UTC),
		Adults:     2,
		Children:   1,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	pub := &memPublisher{}
	svc := service.NewBookingService(store, pub, nil)

	b, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Status != model.StatusPending {
		t.Errorf("new booking status = %q, want Pending", b.Status)
	}
	if b.ID == "" {
		t.Error("expected a generated booking id")
	}
	if !b.CheckIn.Equal(day(10)) || !b.CheckOut.Equal(day(14)) {
		t.Errorf("dates not normalized: %v / %v", b.CheckIn, b.CheckOut)
	}
	if b.GuestEmail != "aline.costa@example.com" {
		t.Errorf("email not canonicalized: %q", b.GuestEmail)
	}
	if got := pub.kinds(); len(got) != 1 || got[0] != queue.KindBookingCreated {
		t.Errorf("published kinds = %v, want [%s]", got, queue.KindBookingCreated)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewBookingService(newMemStore(), &memPublisher{}, nil)

	tests := []struct {
		name      string
		mutate    func(*service.CreateBookingInput)
		wantField string
	}{
		{"missing unit", func(in *service.CreateBookingInput) { in.UnitID = " " }, "unitId"},
		{"missing name", func(in *service.CreateBookingInput) { in.GuestName = "" }, "guestName"},
		{"bad email", func(in *service.CreateBookingInput) { in.GuestEmail = "not-an-email" }, "guestEmail"},
		{"missing phone", func(in *service.CreateBookingInput) { in.GuestPhone = "" }, "guestPhone"},
		{"zero adults", func(in *service.CreateBookingInput) { in.Adults = 0 }, "adults"},
		{"negative children", func(in *service.CreateBookingInput) { in.Children = -1 }, "children"},
		{"checkout equals checkin", func(in *service.CreateBookingInput) { in.CheckOut = in.CheckIn }, "checkOut"},
		{"checkout before checkin", func(in *service.CreateBookingInput) { in.CheckOut = in.CheckIn.AddDate(0, 0, -1) }, "checkOut"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(ctx, in)
			var verr *service.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestConfirmRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(
		stay("held", "oxala", model.StatusConfirmed, 10, 14),
		stay("candidate", "oxala", model.StatusPending, 12, 16),
	)
	pub := &memPublisher{}
	svc := service.NewBookingService(store, pub, nil)

	_, err := svc.ChangeStatus(ctx, "candidate", model.StatusConfirmed)
	var cerr *service.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if cerr.ConflictingBookingID != "held" {
		t.Errorf("ConflictingBookingID = %q, want %q", cerr.ConflictingBookingID, "held")
	}

	// the refused transition must leave the record untouched
	got, err := svc.Get(ctx, "candidate")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != model.StatusPending {
		t.Errorf("status after refused confirm = %q, want Pending", got.Status)
	}
	if len(pub.published) != 0 {
		t.Errorf("no notification expected, got %v", pub.kinds())
	}
}

func TestFirstConfirmationWins(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(
		stay("first", "oxala", model.StatusPending, 10, 14),
		stay("second", "oxala", model.StatusPending, 10, 14),
	)
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	if _, err := svc.ChangeStatus(ctx, "first", model.StatusConfirmed); err != nil {
		t.Fatalf("first confirmation: %v", err)
	}

	_, err := svc.ChangeStatus(ctx, "second", model.StatusConfirmed)
	var cerr *service.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("second confirmation err = %v, want ConflictError", err)
	}
	if cerr.ConflictingBookingID != "first" {
		t.Errorf("ConflictingBookingID = %q, want %q", cerr.ConflictingBookingID, "first")
	}
}

func TestInactiveBookingsNeverBlock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(
		stay("cancelled", "oxala", model.StatusCancelled, 10, 14),
		stay("completed", "oxala", model.StatusCompleted, 10, 14),
		stay("candidate", "oxala", model.StatusPending, 10, 14),
	)
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	if _, err := svc.ChangeStatus(ctx, "candidate", model.StatusConfirmed); err != nil {
		t.Fatalf("confirm over cancelled/completed stays: %v", err)
	}
}

func TestConfirmOtherUnitDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(
		stay("held", "oxala", model.StatusConfirmed, 10, 14),
		stay("candidate", "tingi", model.StatusPending, 10, 14),
	)
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	if _, err := svc.ChangeStatus(ctx, "candidate", model.StatusConfirmed); err != nil {
		t.Fatalf("confirm on a different unit: %v", err)
	}
}

func TestChangeStatusUnknownBooking(t *testing.T) {
	svc := service.NewBookingService(newMemStore(), &memPublisher{}, nil)
	_, err := svc.ChangeStatus(context.Background(), "ghost", model.StatusConfirmed)
	if !errors.Is(err, repository.ErrBookingNotFound) {
		t.Errorf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestUpdateRevalidatesDates(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(stay("b1", "oxala", model.StatusPending, 10, 14))
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	badOut := day(10)
	_, err := svc.Update(ctx, "b1", service.UpdateBookingInput{CheckOut: &badOut})
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	got, _ := svc.Get(ctx, "b1")
	if !got.CheckOut.Equal(day(14)) {
		t.Errorf("refused edit mutated the record: checkOut = %v", got.CheckOut)
	}
}

func TestUpdateConfirmedReRunsConflictCheck(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(
		stay("held", "oxala", model.StatusConfirmed, 10, 14),
		stay("mine", "oxala", model.StatusConfirmed, 20, 24),
	)
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	t.Run("moving onto occupied dates is refused", func(t *testing.T) {
		in, out := day(12), day(16)
		_, err := svc.Update(ctx, "mine", service.UpdateBookingInput{CheckIn: &in, CheckOut: &out})
		var cerr *service.ConflictError
		if !errors.As(err, &cerr) {
			t.Fatalf("err = %v, want ConflictError", err)
		}
		if cerr.ConflictingBookingID != "held" {
			t.Errorf("ConflictingBookingID = %q, want %q", cerr.ConflictingBookingID, "held")
		}
	})

	t.Run("editing own dates without collision succeeds", func(t *testing.T) {
		in, out := day(20), day(26)
		b, err := svc.Update(ctx, "mine", service.UpdateBookingInput{CheckIn: &in, CheckOut: &out})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if !b.CheckOut.Equal(day(26)) {
			t.Errorf("checkOut = %v, want %v", b.CheckOut, day(26))
		}
	})
}

func TestBookedIntervals(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(
		stay("pending", "oxala", model.StatusPending, 10, 14),
		stay("confirmed", "oxala", model.StatusConfirmed, 20, 22),
		stay("cancelled", "oxala", model.StatusCancelled, 1, 5),
		stay("completed", "oxala", model.StatusCompleted, 2, 6),
		stay("elsewhere", "tingi", model.StatusConfirmed, 10, 14),
	)
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	intervals, err := svc.BookedIntervals(ctx, "oxala")
	if err != nil {
		t.Fatalf("BookedIntervals: %v", err)
	}
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2: %+v", len(intervals), intervals)
	}
	byID := map[string]model.BookedInterval{}
	for _, iv := range intervals {
		byID[iv.BookingID] = iv
	}
	// the display end is the last occupied night, one day before checkout
	if iv := byID["pending"]; !iv.End.Equal(day(13)) {
		t.Errorf("pending end = %v, want %v", iv.End, day(13))
	}
	if iv := byID["confirmed"]; !iv.End.Equal(day(21)) {
		t.Errorf("confirmed end = %v, want %v", iv.End, day(21))
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(stay("b1", "oxala", model.StatusConfirmed, 10, 14))
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	if err := svc.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "b1"); !errors.Is(err, repository.ErrBookingNotFound) {
		t.Errorf("second delete err = %v, want ErrBookingNotFound", err)
	}
}

func TestStatusTransitionNotifications(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(stay("b1", "oxala", model.StatusPending, 10, 14))
	pub := &memPublisher{}
	svc := service.NewBookingService(store, pub, nil)

	if _, err := svc.ChangeStatus(ctx, "b1", model.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, "b1", model.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// completing is administrative and sends nothing
	store.bookings["b1"].Status = model.StatusPending
	if _, err := svc.ChangeStatus(ctx, "b1", model.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	want := []string{queue.KindBookingConfirmed, queue.KindBookingCancelled}
	got := pub.kinds()
	if len(got) != len(want) {
		t.Fatalf("published kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	pub := &memPublisher{err: errors.New("broker down")}
	svc := service.NewBookingService(store, pub, nil)

	b, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create with failing publisher: %v", err)
	}
	if _, err := svc.Get(ctx, b.ID); err != nil {
		t.Errorf("booking not persisted: %v", err)
	}
}

func TestListDefaults(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(stay("b1", "oxala", model.StatusPending, 10, 14))
	svc := service.NewBookingService(store, &memPublisher{}, nil)

	page, err := svc.List(ctx, service.BookingFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Page != 1 || page.Limit != 15 {
		t.Errorf("defaults = page %d limit %d, want 1/15", page.Page, page.Limit)
	}
	if page.Total != 1 || page.Pages != 1 {
		t.Errorf("total/pages = %d/%d, want 1/1", page.Total, page.Pages)
	}

	if _, err := svc.List(ctx, service.BookingFilter{Status: "Weird"}); err == nil {
		t.Error("expected error for unknown status filter")
	}
}
