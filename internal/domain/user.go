package domain

import "time"

// User is an identity record. Unique by Email. The auth pathway reads and
// creates users but never mutates them.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // argon2id, PHC encoded
	Role         Role
	ContactInfo  *string // optional free-form contact details
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
