package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tingitingi/rental-booking/internal/model"
)

// AdminUserRepo provides persistence for back-office accounts.  Accounts
// are provisioned by the seed command; the API only ever reads them during
// login.
type AdminUserRepo struct {
	db *sql.DB
}

// NewAdminUserRepo returns an AdminUserRepo bound to the given database.
func NewAdminUserRepo(db *sql.DB) *AdminUserRepo { return &AdminUserRepo{db: db} }

// Create inserts an admin account with an already-hashed password.  An
// email collision surfaces as ErrDuplicate.
func (r *AdminUserRepo) Create(ctx context.Context, email, passwordHash string) error {
	const q = `INSERT INTO admin_users (email, password_hash) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, strings.ToLower(strings.TrimSpace(email)), passwordHash); err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByEmail returns the admin account for an email address, compared
// case-insensitively, or ErrAdminUserNotFound.
func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	const q = `SELECT id, email, password_hash, created_at FROM admin_users WHERE email = ?`
	var u model.AdminUser
	err := r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
