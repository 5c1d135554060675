package seeker

import (
	"time"

	"github.com/google/uuid"
)

type Seeker struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Phonenumber *string
	CityID      *uuid.UUID
	CityName    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
