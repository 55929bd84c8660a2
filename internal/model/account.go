package model

import "time"

// Account represents a registered user identity.
// PasswordHash holds a bcrypt digest and is never serialized; the plaintext
// password exists only transiently during signup and login.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
