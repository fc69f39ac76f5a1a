// Package admin holds the back-office operator identity. Admin sessions are a
// separate token kind from customer sessions and are never interchangeable.
package admin

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office operator account.
type User struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}

// New creates an operator account.
func New(username, fullName, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Username:     username,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}
