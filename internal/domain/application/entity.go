package application

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID                 uuid.UUID
	JobID              uuid.UUID
	SeekerID           uuid.UUID
	CVID               uuid.UUID
	Status             Status
	MatchedSkillsCount int
	CoverLetter        *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
