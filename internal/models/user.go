package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	HashedPassword string
}
