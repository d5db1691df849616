package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProfilePicture is the storage key rendered for accounts that
// registered without uploading a picture.
const DefaultProfilePicture = "profile_pics/default.png"

// AccountDB represents an account record in the database
type AccountDB struct {
	AccountID      uuid.UUID `json:"account_id" db:"account_id"`           // Primary key
	Username       string    `json:"username" db:"username"`               // Unique username
	Email          string    `json:"email" db:"email"`                     // Unique email
	PasswordHash   string    `json:"-" db:"password_hash"`                 // bcrypt hash, never the plaintext
	ProfilePicture string    `json:"profile_picture" db:"profile_picture"` // Storage key of the picture
	IsActive       bool      `json:"is_active" db:"is_active"`             // Active flag
	CreatedAt      time.Time `json:"created_at" db:"created_at"`           // Creation timestamp
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`           // Last update timestamp
}
