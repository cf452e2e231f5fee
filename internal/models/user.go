package models

import "time"

// User captures application-facing fields for an authenticated identity.
// PasswordHash never leaves the process: it is excluded from JSON and
// blanked by the services before a user is handed back to a caller.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitized returns a copy with the password hash blanked.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
