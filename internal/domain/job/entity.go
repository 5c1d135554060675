package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidType = errors.New("invalid job type")

type Type string

const (
	TypeFullTime Type = "full-time"
	TypePartTime Type = "part-time"
	TypeContract Type = "contract"
	TypeRemote   Type = "remote"
)

func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypeFullTime, TypePartTime, TypeContract, TypeRemote:
		return Type(raw), nil
	default:
		return "", ErrInvalidType
	}
}

type Posting struct {
	ID                  uuid.UUID
	ProviderID          uuid.UUID
	Title               string
	Description         string
	Salary              *float64
	Type                Type
	CityID              *uuid.UUID
	CityName            *string
	ExpiryDate          *time.Time
	CoverLetterRequired bool
	QuestionRequired    bool
	CategoryIDs         []uuid.UUID
	SkillIDs            []uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Expired reports whether the posting's optional expiry date has passed.
func (p Posting) Expired(now time.Time) bool {
	if p.ExpiryDate == nil {
		return false
	}
	return now.After(*p.ExpiryDate)
}
