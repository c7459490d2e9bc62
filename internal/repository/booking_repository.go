package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/service"
)

// dbtx is the subset of *sql.DB and *sql.Tx the repositories run against,
// letting the same methods serve both transactional and plain calls.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BookingRepo provides CRUD and availability queries for bookings.  Dates
// are stored as DATE columns; with parseTime and loc=UTC on the connection
// they scan back as midnight-UTC time.Time values, matching the canonical
// form the service layer writes.
type BookingRepo struct {
	db *sql.DB
	q  dbtx
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db, q: db}
}

const bookingCols = `id, unit_id, guest_name, guest_email, guest_phone,
       check_in, check_out, adults, children, message, status, created_at, updated_at`

// Transact runs fn against a transaction-bound copy of the repository.  The
// serializable isolation level makes the read-check-write sequence of a
// confirmation atomic: two racing confirmations for overlapping dates cannot
// both observe a conflict-free state.
func (r *BookingRepo) Transact(ctx context.Context, fn func(service.BookingStore) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&BookingRepo{db: r.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Create inserts a new booking and queries the row back to populate the
// database-assigned timestamps.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
       (id, unit_id, guest_name, guest_email, guest_phone, check_in, check_out, adults, children, message, status)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q,
		b.ID, b.UnitID, b.GuestName, b.GuestEmail, b.GuestPhone,
		b.CheckIn, b.CheckOut, b.Adults, b.Children, b.Message, string(b.Status))
	if err != nil {
		return err
	}
	return r.reload(ctx, b)
}

// GetByID returns a booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.q.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// Update persists every mutable field of the booking and refreshes the
// updated_at timestamp.
func (r *BookingRepo) Update(ctx context.Context, b *model.Booking) error {
	const q = `UPDATE bookings
       SET unit_id = ?, guest_name = ?, guest_email = ?, guest_phone = ?,
           check_in = ?, check_out = ?, adults = ?, children = ?, message = ?, status = ?
       WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, q,
		b.UnitID, b.GuestName, b.GuestEmail, b.GuestPhone,
		b.CheckIn, b.CheckOut, b.Adults, b.Children, b.Message, string(b.Status),
		b.ID); err != nil {
		return err
	}
	return r.reload(ctx, b)
}

// Delete removes a booking permanently.  A second delete of the same id
// reports ErrBookingNotFound rather than succeeding silently.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// List returns one page of bookings plus the total match count for the
// admin back office.
func (r *BookingRepo) List(ctx context.Context, f service.BookingFilter) ([]model.Booking, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Search != "" {
		where = append(where, "(guest_name LIKE ? OR guest_email LIKE ?)")
		pat := "%" + f.Search + "%"
		args = append(args, pat, pat)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch f.SortBy {
	case "createdAt_asc":
		order = "created_at ASC"
	case "checkIn_asc":
		order = "check_in ASC"
	case "checkIn_desc":
		order = "check_in DESC"
	}

	q := fmt.Sprintf(`SELECT %s FROM bookings%s ORDER BY %s LIMIT ? OFFSET ?`, bookingCols, cond, order)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListBlocking returns the unit's bookings that occupy calendar dates,
// i.e. those in Pending or Confirmed status.
func (r *BookingRepo) ListBlocking(ctx context.Context, unitID string) ([]model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE unit_id = ? AND status IN (?, ?)`
	rows, err := r.q.QueryContext(ctx, q, unitID,
		string(model.StatusPending), string(model.StatusConfirmed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListConfirmedForUnit returns all confirmed bookings for a unit, the input
// set of the conflict check.  Inside Transact the serializable isolation
// level pins this read until the surrounding commit.
func (r *BookingRepo) ListConfirmedForUnit(ctx context.Context, unitID string) ([]model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE unit_id = ? AND status = ?`
	rows, err := r.q.QueryContext(ctx, q, unitID, string(model.StatusConfirmed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// reload re-reads the row to pick up database-assigned defaults and
// timestamps.
func (r *BookingRepo) reload(ctx context.Context, b *model.Booking) error {
	q := `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	fresh, err := scanBooking(r.q.QueryRowContext(ctx, q, b.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b      model.Booking
		msg    sql.NullString
		status string
	)
	err := row.Scan(&b.ID, &b.UnitID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.CheckIn, &b.CheckOut, &b.Adults, &b.Children, &msg, &status,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if msg.Valid {
		b.Message = msg.String
	}
	b.Status = model.BookingStatus(status)
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}
