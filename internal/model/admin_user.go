package model

import "time"

// AdminUser is a back-office account.  Only the bcrypt hash of the password
// is ever stored.
type AdminUser struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
