package dto

import (
	"time"

	"github.com/google/uuid"

	"jobboard/internal/domain/application"
)

type ApplicationResponse struct {
	ID                 uuid.UUID `json:"id"`
	JobID              uuid.UUID `json:"job_id"`
	SeekerID           uuid.UUID `json:"seeker_id"`
	CVID               uuid.UUID `json:"cv_id"`
	Status             string    `json:"status"`
	AllowedActions     []string  `json:"allowed_actions"`
	MatchedSkillsCount int       `json:"matched_skills_count"`
	CoverLetter        *string   `json:"cover_letter,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewApplicationResponse includes the actions legal from the current status so
// clients can render action buttons without duplicating the transition table.
func NewApplicationResponse(a application.Application) ApplicationResponse {
	actions := application.AllowedActions(a.Status)
	names := make([]string, 0, len(actions))
	for _, act := range actions {
		names = append(names, string(act))
	}

	return ApplicationResponse{
		ID:                 a.ID,
		JobID:              a.JobID,
		SeekerID:           a.SeekerID,
		CVID:               a.CVID,
		Status:             string(a.Status),
		AllowedActions:     names,
		MatchedSkillsCount: a.MatchedSkillsCount,
		CoverLetter:        a.CoverLetter,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func NewApplicationListResponse(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
