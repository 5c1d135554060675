package provider

import (
	"time"

	"github.com/google/uuid"
)

type Provider struct {
	ID          uuid.UUID
	CompanyName string
	Email       string
	Phonenumber *string
	CityID      *uuid.UUID
	CityName    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
