package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/tingitingi/rental-booking/internal/model"
)

// UnitRepo provides persistence for rentable units.  The gallery of image
// URLs is stored as a JSON column and (un)marshalled here so the rest of the
// application only ever sees a string slice.
type UnitRepo struct {
	db *sql.DB
}

// NewUnitRepo returns a UnitRepo bound to the given database.
func NewUnitRepo(db *sql.DB) *UnitRepo { return &UnitRepo{db: db} }

const unitCols = `id, kind, name, short_description, long_description,
       image, images, capacity, manually_unavailable, created_at, updated_at`

// Create inserts a new unit.  A slug collision surfaces as ErrDuplicate.
func (r *UnitRepo) Create(ctx context.Context, u *model.Unit) error {
	images, err := json.Marshal(u.Images)
	if err != nil {
		return err
	}
	const q = `INSERT INTO units
       (id, kind, name, short_description, long_description, image, images, capacity, manually_unavailable)
       VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		u.ID, string(u.Kind), u.Name, u.ShortDescription, u.LongDescription,
		u.Image, images, u.Capacity, u.ManuallyUnavailable); err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return r.reload(ctx, u)
}

// GetByID returns a unit of the given kind or ErrUnitNotFound.  The kind is
// part of the lookup so a house id cannot be fetched through the spaces API.
func (r *UnitRepo) GetByID(ctx context.Context, kind model.UnitKind, id string) (*model.Unit, error) {
	q := `SELECT ` + unitCols + ` FROM units WHERE id = ? AND kind = ?`
	u, err := scanUnit(r.db.QueryRowContext(ctx, q, id, string(kind)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnitNotFound
	}
	return u, err
}

// ListByKind returns all units of a kind.  With publicOnly set, units marked
// manually unavailable are hidden, matching the public catalog behaviour.
func (r *UnitRepo) ListByKind(ctx context.Context, kind model.UnitKind, publicOnly bool) ([]model.Unit, error) {
	q := `SELECT ` + unitCols + ` FROM units WHERE kind = ?`
	if publicOnly {
		q += ` AND manually_unavailable = 0`
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Unit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Update persists every mutable field of the unit.
func (r *UnitRepo) Update(ctx context.Context, u *model.Unit) error {
	images, err := json.Marshal(u.Images)
	if err != nil {
		return err
	}
	const q = `UPDATE units
       SET name = ?, short_description = ?, long_description = ?,
           image = ?, images = ?, capacity = ?, manually_unavailable = ?
       WHERE id = ? AND kind = ?`
	if _, err := r.db.ExecContext(ctx, q,
		u.Name, u.ShortDescription, u.LongDescription,
		u.Image, images, u.Capacity, u.ManuallyUnavailable,
		u.ID, string(u.Kind)); err != nil {
		return err
	}
	// Zero rows affected can mean missing or unchanged; reload settles which.
	return r.reload(ctx, u)
}

// Delete removes a unit.  Bookings referencing the id are left in place:
// unit references are advisory by design.
func (r *UnitRepo) Delete(ctx context.Context, kind model.UnitKind, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = ? AND kind = ?`, id, string(kind))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUnitNotFound
	}
	return nil
}

func (r *UnitRepo) reload(ctx context.Context, u *model.Unit) error {
	q := `SELECT ` + unitCols + ` FROM units WHERE id = ? AND kind = ?`
	fresh, err := scanUnit(r.db.QueryRowContext(ctx, q, u.ID, string(u.Kind)))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnitNotFound
	}
	if err != nil {
		return err
	}
	*u = *fresh
	return nil
}

func scanUnit(row rowScanner) (*model.Unit, error) {
	var (
		u       model.Unit
		kind    string
		shortD  sql.NullString
		longD   sql.NullString
		image   sql.NullString
		images  []byte
		blocked bool
	)
	err := row.Scan(&u.ID, &kind, &u.Name, &shortD, &longD,
		&image, &images, &u.Capacity, &blocked, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Kind = model.UnitKind(kind)
	u.ShortDescription = shortD.String
	u.LongDescription = longD.String
	u.Image = image.String
	u.ManuallyUnavailable = blocked
	if len(images) > 0 {
		if err := json.Unmarshal(images, &u.Images); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// isDuplicate reports whether err is a MySQL duplicate-key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
