package domain

import (
	"time"

	"github.com/google/uuid"
)

// Set is one LEGO set in a user's collection. SetNumber is unique per owner,
// not globally; two users can both own set 10030.
type Set struct {
	ID        int64
	UserID    uuid.UUID
	SetNumber int64
	Name      string
	CreatedAt time.Time
}
