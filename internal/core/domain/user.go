package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account in the mock auth store. Accounts live only
// for the lifetime of the process; there is no backing user database.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
