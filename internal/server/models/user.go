package models

import "time"

// User is an account record as stored in the users table. PasswordHash is a
// bcrypt digest and must never appear in API responses; use PublicInfo.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// PublicUser is the externally visible view of an account.
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicInfo returns the public view of the user.
func (u *User) PublicInfo() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
