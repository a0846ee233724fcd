package users

import "time"

// User is the stored identity record. Owned by the credential store; the
// auth service never retains one beyond the request.
type User struct {
	ID           string    `json:"id"`
	ExternalID   string    `json:"external_id,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	City         string    `json:"city,omitempty"`
	Level        string    `json:"level,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
